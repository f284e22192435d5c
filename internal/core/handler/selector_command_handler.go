package handler

import (
	"context"
	"fmt"

	"rmod/internal/cli/output"
	"rmod/internal/core"
	"rmod/internal/core/domain"
)

type SelectorCommandHandler struct {
	store   *core.ModifierStore
	printer *output.Printer
}

func ProvideSelectorCommandHandler(store *core.ModifierStore, printer *output.Printer) SelectorCommandHandler {
	return SelectorCommandHandler{store: store, printer: printer}
}

// AddSelectorRequest carries the criteria of one selector. Empty fields are
// left out; at least one criterion must be set.
type AddSelectorRequest struct {
	ID         string
	Kind       string
	Name       string
	Namespace  string
	Labels     map[string]string
	FieldPath  string
	FieldValue string
	Exact      bool
	Criteria   string
}

func (r AddSelectorRequest) selector() (domain.Selector, error) {
	selector := domain.Selector{ID: r.ID}
	if r.Kind != "" {
		selector.Criteria = append(selector.Criteria, domain.KindCriterion{Pattern: r.Kind})
	}
	if r.Name != "" {
		selector.Criteria = append(selector.Criteria, domain.NameCriterion{Pattern: r.Name})
	}
	if r.Namespace != "" {
		selector.Criteria = append(selector.Criteria, domain.NamespaceCriterion{Pattern: r.Namespace})
	}
	if len(r.Labels) > 0 {
		selector.Criteria = append(selector.Criteria, domain.LabelsCriterion{Labels: r.Labels})
	}
	if r.FieldPath != "" {
		criteria, err := domain.ParseFieldCriteria(r.Criteria)
		if err != nil {
			return domain.Selector{}, err
		}
		selector.Criteria = append(selector.Criteria, domain.FieldCriterion{
			Path:     r.FieldPath,
			Value:    r.FieldValue,
			Exact:    r.Exact,
			Criteria: criteria,
		})
	} else if r.FieldValue != "" || r.Exact || r.Criteria != "" {
		return domain.Selector{}, fmt.Errorf("field value, exact and criteria need a field path")
	}
	if len(selector.Criteria) == 0 {
		return domain.Selector{}, fmt.Errorf("a selector needs at least one of kind, name, namespace, label or field path")
	}
	return selector, nil
}

func (h *SelectorCommandHandler) HandleAdd(ctx context.Context, modifier string, request AddSelectorRequest) error {
	selector, err := request.selector()
	if err != nil {
		return err
	}
	added, err := h.store.AddSelector(ctx, modifier, selector)
	if err != nil {
		return err
	}
	h.printer.PrintSuccess(fmt.Sprintf("Added selector '%s' to modifier '%s'", added.ID, modifier))
	h.printer.PrintSecondary(formatCriteria(added.Criteria))
	return nil
}

func (h *SelectorCommandHandler) HandleDelete(ctx context.Context, modifier, selectorID string) error {
	if err := h.store.DeleteSelector(ctx, modifier, selectorID); err != nil {
		return err
	}
	h.printer.PrintSuccess(fmt.Sprintf("Deleted selector '%s' from modifier '%s'", selectorID, modifier))
	return nil
}
