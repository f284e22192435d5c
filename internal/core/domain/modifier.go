package domain

import (
	"fmt"
	"strings"

	"rmod/internal/core/fieldpath"

	"github.com/bmatcuk/doublestar/v4"
	"k8s.io/apimachinery/pkg/util/validation"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

const MaxCriteriaPerSelector = 5

type CriterionType string

const (
	CriterionKind      CriterionType = "kind"
	CriterionName      CriterionType = "name"
	CriterionNamespace CriterionType = "namespace"
	CriterionLabels    CriterionType = "labels"
	CriterionField     CriterionType = "field"
)

// Criterion is one predicate of a selector. The set of implementations is
// closed: KindCriterion, NameCriterion, NamespaceCriterion, LabelsCriterion
// and FieldCriterion.
type Criterion interface {
	Type() CriterionType
}

type KindCriterion struct {
	Pattern string
}

func (KindCriterion) Type() CriterionType { return CriterionKind }

type NameCriterion struct {
	Pattern string
}

func (NameCriterion) Type() CriterionType { return CriterionName }

type NamespaceCriterion struct {
	Pattern string
}

func (NamespaceCriterion) Type() CriterionType { return CriterionNamespace }

type LabelsCriterion struct {
	Labels map[string]string
}

func (LabelsCriterion) Type() CriterionType { return CriterionLabels }

type FieldCriteria string

const (
	Contains       FieldCriteria = "Contains"
	DoesNotContain FieldCriteria = "DoesNotContain"
)

func ParseFieldCriteria(s string) (FieldCriteria, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "contains":
		return Contains, nil
	case "doesnotcontain", "notcontains":
		return DoesNotContain, nil
	}
	return "", fmt.Errorf("unknown field criteria %q, expected Contains or DoesNotContain", s)
}

type FieldCriterion struct {
	Path     string
	Value    string
	Exact    bool
	Criteria FieldCriteria
}

func (FieldCriterion) Type() CriterionType { return CriterionField }

// Selector matches a manifest when all of its criteria match.
type Selector struct {
	ID       string
	Criteria []Criterion
}

func (s Selector) Criterion(t CriterionType) (Criterion, bool) {
	for _, c := range s.Criteria {
		if c.Type() == t {
			return c, true
		}
	}
	return nil, false
}

type ActionType string

const (
	ActionAdd    ActionType = "Add"
	ActionDelete ActionType = "Delete"
	ActionModify ActionType = "Modify"
)

func ParseActionType(s string) (ActionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add":
		return ActionAdd, nil
	case "delete":
		return ActionDelete, nil
	case "modify":
		return ActionModify, nil
	}
	return "", fmt.Errorf("unknown action %q, expected Add, Delete or Modify", s)
}

// Action is a mutation gated by the selector it references. The set of
// implementations is closed: AddAction, DeleteAction and ModifyAction.
type Action interface {
	Type() ActionType
	SelectorID() string
	TargetPath() string
}

type AddAction struct {
	Selector string
	Path     string
	Value    interface{}
}

func (AddAction) Type() ActionType { return ActionAdd }
func (a AddAction) SelectorID() string { return a.Selector }
func (a AddAction) TargetPath() string { return a.Path }

type DeleteAction struct {
	Selector string
	Path     string
}

func (DeleteAction) Type() ActionType { return ActionDelete }
func (a DeleteAction) SelectorID() string { return a.Selector }
func (a DeleteAction) TargetPath() string { return a.Path }

type ModifyParameters string

const (
	ModifyExact    ModifyParameters = "Exact"
	ModifyContains ModifyParameters = "Contains"
)

func ParseModifyParameters(s string) (ModifyParameters, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exact", "replace":
		return ModifyExact, nil
	case "contains":
		return ModifyContains, nil
	}
	return "", fmt.Errorf("unknown modify parameters %q, expected Exact or Contains", s)
}

type ModifyAction struct {
	Selector   string
	Path       string
	Value      interface{}
	NewValue   interface{}
	Parameters ModifyParameters
}

func (ModifyAction) Type() ActionType { return ActionModify }
func (a ModifyAction) SelectorID() string { return a.Selector }
func (a ModifyAction) TargetPath() string { return a.Path }

// Modifier is a named rule applied to manifests during a restore.
type Modifier struct {
	Name      string
	Selectors []Selector
	Actions   []Action
}

func (m *Modifier) Selector(id string) (*Selector, bool) {
	for i := range m.Selectors {
		if m.Selectors[i].ID == id {
			return &m.Selectors[i], true
		}
	}
	return nil, false
}

// ActionsReferencing returns the indexes of the actions gated by selector id.
func (m *Modifier) ActionsReferencing(id string) []int {
	var indexes []int
	for i, action := range m.Actions {
		if action.SelectorID() == id {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

func (m Modifier) Clone() Modifier {
	clone := Modifier{Name: m.Name}
	if m.Selectors != nil {
		clone.Selectors = make([]Selector, len(m.Selectors))
		for i, s := range m.Selectors {
			clone.Selectors[i] = cloneSelector(s)
		}
	}
	if m.Actions != nil {
		clone.Actions = make([]Action, len(m.Actions))
		for i, a := range m.Actions {
			clone.Actions[i] = cloneAction(a)
		}
	}
	return clone
}

func cloneSelector(s Selector) Selector {
	out := Selector{ID: s.ID}
	if s.Criteria != nil {
		out.Criteria = make([]Criterion, len(s.Criteria))
	}
	for i, c := range s.Criteria {
		if labels, ok := c.(LabelsCriterion); ok {
			copied := make(map[string]string, len(labels.Labels))
			for k, v := range labels.Labels {
				copied[k] = v
			}
			c = LabelsCriterion{Labels: copied}
		}
		out.Criteria[i] = c
	}
	return out
}

func cloneAction(a Action) Action {
	switch action := a.(type) {
	case AddAction:
		action.Value = CopyValue(action.Value)
		return action
	case ModifyAction:
		action.Value = CopyValue(action.Value)
		action.NewValue = CopyValue(action.NewValue)
		return action
	}
	return a
}

// Validate returns a *ValidationError listing every problem, or nil.
func (m Modifier) Validate() error {
	var errs field.ErrorList

	namePath := field.NewPath("metadata", "name")
	if m.Name == "" {
		errs = append(errs, field.Required(namePath, "modifier name is required"))
	} else {
		for _, msg := range validation.IsDNS1123Subdomain(m.Name) {
			errs = append(errs, field.Invalid(namePath, m.Name, msg))
		}
	}

	ids := make(map[string]bool, len(m.Selectors))
	selectorsPath := field.NewPath("selectors")
	for i, s := range m.Selectors {
		p := selectorsPath.Index(i)
		errs = append(errs, ValidateSelector(s, p)...)
		if s.ID == "" {
			continue
		}
		if ids[s.ID] {
			errs = append(errs, field.Duplicate(p.Child("id"), s.ID))
		}
		ids[s.ID] = true
	}

	var cause error
	actionsPath := field.NewPath("modifiers")
	for i, a := range m.Actions {
		p := actionsPath.Index(i)
		if a == nil {
			errs = append(errs, field.Required(p, "action is required"))
			continue
		}
		if a.SelectorID() == "" {
			errs = append(errs, field.Required(p.Child("selectorId"), "action must reference a selector"))
		} else if !ids[a.SelectorID()] {
			errs = append(errs, field.NotFound(p.Child("selectorId"), a.SelectorID()))
			cause = ErrSelectorNotFound
		}
		errs = append(errs, validateAction(a, p)...)
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs, Cause: cause}
	}
	return nil
}

// ValidateSelector checks one selector in isolation; references between
// selectors and actions are checked by Modifier.Validate.
func ValidateSelector(s Selector, p *field.Path) field.ErrorList {
	var errs field.ErrorList
	if s.ID == "" {
		errs = append(errs, field.Required(p.Child("id"), "selector id is required"))
	}
	switch {
	case len(s.Criteria) == 0:
		errs = append(errs, field.Required(p, "selector must have at least one criterion"))
	case len(s.Criteria) > MaxCriteriaPerSelector:
		errs = append(errs, field.TooMany(p, len(s.Criteria), MaxCriteriaPerSelector))
	}

	seen := make(map[CriterionType]bool, len(s.Criteria))
	for _, c := range s.Criteria {
		if c == nil {
			errs = append(errs, field.Required(p, "criterion is required"))
			continue
		}
		cp := p.Child(string(c.Type()))
		if seen[c.Type()] {
			errs = append(errs, field.Duplicate(cp, string(c.Type())))
			continue
		}
		seen[c.Type()] = true

		switch criterion := c.(type) {
		case KindCriterion:
			errs = append(errs, validatePattern(criterion.Pattern, cp)...)
		case NameCriterion:
			errs = append(errs, validatePattern(criterion.Pattern, cp)...)
		case NamespaceCriterion:
			errs = append(errs, validatePattern(criterion.Pattern, cp)...)
		case LabelsCriterion:
			if len(criterion.Labels) == 0 {
				errs = append(errs, field.Required(cp, "at least one label is required"))
			}
			for key := range criterion.Labels {
				if key == "" {
					errs = append(errs, field.Invalid(cp, key, "label key must not be empty"))
				}
			}
		case FieldCriterion:
			if _, err := fieldpath.Parse(criterion.Path); err != nil {
				errs = append(errs, field.Invalid(cp.Child("path"), criterion.Path, err.Error()))
			}
			if criterion.Criteria != Contains && criterion.Criteria != DoesNotContain {
				errs = append(errs, field.NotSupported(
					cp.Child("criteria"),
					criterion.Criteria,
					[]string{string(Contains), string(DoesNotContain)},
				))
			}
		default:
			errs = append(errs, field.Invalid(p, c.Type(), "unsupported criterion"))
		}
	}
	return errs
}

func validatePattern(pattern string, p *field.Path) field.ErrorList {
	if pattern == "" {
		return field.ErrorList{field.Required(p, "pattern must not be empty")}
	}
	if !doublestar.ValidatePattern(pattern) {
		return field.ErrorList{field.Invalid(p, pattern, "malformed wildcard pattern")}
	}
	return nil
}

func validateAction(a Action, p *field.Path) field.ErrorList {
	var errs field.ErrorList
	if _, err := fieldpath.Parse(a.TargetPath()); err != nil {
		errs = append(errs, field.Invalid(p.Child("path"), a.TargetPath(), err.Error()))
	}

	switch action := a.(type) {
	case AddAction:
		if action.Value == nil {
			errs = append(errs, field.Required(p.Child("value"), "add requires a value"))
		}
	case DeleteAction:
	case ModifyAction:
		if action.NewValue == nil {
			errs = append(errs, field.Required(p.Child("newValue"), "modify requires a new value"))
		}
		switch action.Parameters {
		case "", ModifyExact:
		case ModifyContains:
			if IsEmptyValue(action.Value) {
				errs = append(errs, field.Required(p.Child("value"), "contains requires the value to find"))
			}
		default:
			errs = append(errs, field.NotSupported(
				p.Child("parameters"),
				action.Parameters,
				[]string{string(ModifyExact), string(ModifyContains)},
			))
		}
	default:
		errs = append(errs, field.Invalid(p.Child("action"), a.Type(), "unsupported action"))
	}
	return errs
}
