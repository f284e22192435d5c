package handler

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"rmod/internal/cli/output"
	"rmod/internal/core"
	"rmod/internal/core/domain"
	"rmod/internal/ports"
)

type ModifierCommandHandler struct {
	store      *core.ModifierStore
	fileSystem ports.FileSystem
	codec      ports.ManifestCodec
	printer    *output.Printer
}

func ProvideModifierCommandHandler(
	store *core.ModifierStore,
	fileSystem ports.FileSystem,
	codec ports.ManifestCodec,
	printer *output.Printer,
) ModifierCommandHandler {
	return ModifierCommandHandler{
		store:      store,
		fileSystem: fileSystem,
		codec:      codec,
		printer:    printer,
	}
}

func (h *ModifierCommandHandler) HandleList(ctx context.Context) error {
	modifiers, err := h.store.List(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(modifiers))
	for _, m := range modifiers {
		rows = append(rows, []string{m.Name, strconv.Itoa(len(m.Selectors)), strconv.Itoa(len(m.Actions))})
	}
	h.printer.PrintTable([]string{"NAME", "SELECTORS", "ACTIONS"}, rows, "no modifiers in "+h.store.Namespace())
	return nil
}

func (h *ModifierCommandHandler) HandleShow(ctx context.Context, name, format string) error {
	modifier, err := h.store.Get(ctx, name)
	if err != nil {
		return err
	}
	if format == "" || format == "table" {
		h.printModifier(modifier)
		return nil
	}
	data, err := encodeDocument(domain.ToRestoreModifier(modifier, h.store.Namespace()), format)
	if err != nil {
		return err
	}
	_, err = h.printer.Write(data)
	return err
}

func (h *ModifierCommandHandler) printModifier(modifier domain.Modifier) {
	h.printer.PrintHeader(fmt.Sprintf("%s (%s)", modifier.Name, h.store.Namespace()))

	selectorRows := make([][]string, 0, len(modifier.Selectors))
	for _, s := range modifier.Selectors {
		selectorRows = append(selectorRows, []string{s.ID, formatCriteria(s.Criteria)})
	}
	h.printer.PrintTable([]string{"ID", "CRITERIA"}, selectorRows, "no selectors")

	actionRows := make([][]string, 0, len(modifier.Actions))
	for i, a := range modifier.Actions {
		spec := domain.ActionToSpec(a)
		actionRows = append(actionRows, []string{
			strconv.Itoa(i),
			spec.SelectorID,
			spec.Action,
			spec.Path,
			formatValue(spec.Value),
			formatValue(spec.NewValue),
			spec.Parameters,
		})
	}
	h.printer.PrintTable([]string{"#", "SELECTOR", "ACTION", "PATH", "VALUE", "NEW VALUE", "PARAMETERS"}, actionRows, "no actions")
}

func formatCriteria(criteria []domain.Criterion) string {
	parts := make([]string, 0, len(criteria))
	for _, c := range criteria {
		switch c := c.(type) {
		case domain.KindCriterion:
			parts = append(parts, "kind="+c.Pattern)
		case domain.NameCriterion:
			parts = append(parts, "name="+c.Pattern)
		case domain.NamespaceCriterion:
			parts = append(parts, "namespace="+c.Pattern)
		case domain.LabelsCriterion:
			keys := make([]string, 0, len(c.Labels))
			for k := range c.Labels {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			pairs := make([]string, 0, len(keys))
			for _, k := range keys {
				pairs = append(pairs, k+"="+c.Labels[k])
			}
			parts = append(parts, "labels{"+strings.Join(pairs, ",")+"}")
		case domain.FieldCriterion:
			op := "~"
			if c.Exact {
				op = "=="
			}
			if c.Criteria == domain.DoesNotContain {
				op = "!" + op
			}
			parts = append(parts, fmt.Sprintf("field %s %s %q", c.Path, op, c.Value))
		}
	}
	return strings.Join(parts, ", ")
}

func formatValue(v interface{}) string {
	if v == nil {
		return ""
	}
	return domain.Stringify(v)
}

type CreateModifierRequest struct {
	Name string
	// File seeds the modifier from a RestoreModifier document.
	File string
	// Replace overwrites an existing modifier of the same name.
	Replace bool
}

func (h *ModifierCommandHandler) HandleCreate(ctx context.Context, request CreateModifierRequest) error {
	builder := core.NewModifierBuilder(request.Name)
	if request.File != "" {
		modifiers, err := readModifierDocuments(h.fileSystem, h.codec, request.File)
		if err != nil {
			return err
		}
		if len(modifiers) != 1 {
			return fmt.Errorf("%s must contain exactly one RestoreModifier, found %d", request.File, len(modifiers))
		}
		builder = core.FromModifier(modifiers[0])
		if request.Name != "" {
			builder.Named(request.Name)
		}
	}

	var (
		saved domain.Modifier
		err   error
	)
	if request.Replace {
		saved, err = builder.Save(ctx, h.store)
	} else {
		var modifier domain.Modifier
		modifier, err = builder.Build()
		if err == nil {
			saved, err = h.store.Create(ctx, modifier)
		}
	}
	if err != nil {
		return err
	}

	h.printer.PrintSuccess(fmt.Sprintf(
		"Saved modifier '%s' with %d %s and %d %s",
		saved.Name,
		len(saved.Selectors), output.Plural(len(saved.Selectors), "selector", "selectors"),
		len(saved.Actions), output.Plural(len(saved.Actions), "action", "actions"),
	))
	return nil
}

func (h *ModifierCommandHandler) HandleDelete(ctx context.Context, name string) error {
	if err := h.store.Delete(ctx, name); err != nil {
		return err
	}
	h.printer.PrintSuccess(fmt.Sprintf("Deleted modifier '%s'", name))
	return nil
}
