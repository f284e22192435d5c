package handler

import (
	"context"
	"fmt"

	"rmod/internal/cli/output"
	"rmod/internal/core"
	"rmod/internal/core/domain"
)

type ActionCommandHandler struct {
	store   *core.ModifierStore
	printer *output.Printer
}

func ProvideActionCommandHandler(store *core.ModifierStore, printer *output.Printer) ActionCommandHandler {
	return ActionCommandHandler{store: store, printer: printer}
}

type AddActionRequest struct {
	SelectorID string
	Action     string
	Path       string
	Value      string
	NewValue   string
	Parameters string

	// ValueSet and NewValueSet tell an empty value apart from a missing one.
	ValueSet    bool
	NewValueSet bool
}

// action converts flag input into a domain action. Add values and exact
// Modify replacements are read as YAML scalars; guards and Contains
// operands are compared as text and stay strings.
func (r AddActionRequest) action() (domain.Action, error) {
	actionType, err := domain.ParseActionType(r.Action)
	if err != nil {
		return nil, err
	}
	switch actionType {
	case domain.ActionAdd:
		if !r.ValueSet {
			return nil, fmt.Errorf("an Add action needs a value")
		}
		return domain.AddAction{Selector: r.SelectorID, Path: r.Path, Value: parseScalar(r.Value)}, nil
	case domain.ActionDelete:
		if r.Value != "" || r.NewValue != "" {
			return nil, fmt.Errorf("a Delete action takes no value")
		}
		return domain.DeleteAction{Selector: r.SelectorID, Path: r.Path}, nil
	}

	parameters, err := domain.ParseModifyParameters(r.Parameters)
	if err != nil {
		return nil, err
	}
	var value, newValue interface{}
	if r.Value != "" {
		value = r.Value
	}
	if r.NewValueSet {
		newValue = r.NewValue
		if parameters == domain.ModifyExact {
			newValue = parseScalar(r.NewValue)
		}
	}
	return domain.ModifyAction{
		Selector:   r.SelectorID,
		Path:       r.Path,
		Value:      value,
		NewValue:   newValue,
		Parameters: parameters,
	}, nil
}

func (h *ActionCommandHandler) HandleAdd(ctx context.Context, modifier string, request AddActionRequest) error {
	action, err := request.action()
	if err != nil {
		return err
	}
	updated, err := h.store.AddAction(ctx, modifier, action)
	if err != nil {
		return err
	}
	h.printer.PrintSuccess(fmt.Sprintf(
		"Added action %d (%s %s) to modifier '%s'",
		len(updated.Actions)-1, action.Type(), action.TargetPath(), modifier,
	))
	return nil
}

func (h *ActionCommandHandler) HandleDelete(ctx context.Context, modifier string, index int) error {
	updated, err := h.store.DeleteAction(ctx, modifier, index)
	if err != nil {
		return err
	}
	h.printer.PrintSuccess(fmt.Sprintf(
		"Deleted action %d from modifier '%s', %d %s left",
		index, modifier, len(updated.Actions), output.Plural(len(updated.Actions), "action", "actions"),
	))
	return nil
}
