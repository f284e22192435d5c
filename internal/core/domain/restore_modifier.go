package domain

import (
	"fmt"
	"sort"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

const (
	RestoreModifierGroup     = "k8s.cv.io"
	RestoreModifierVersion   = "v1"
	RestoreModifierKind      = "RestoreModifier"
	RestoreModifierListKind  = "RestoreModifierList"
	RestoreModifierResource  = "restoremodifiers"
	RestoreModifierNamespace = "cv-config"
)

var RestoreModifierGVR = schema.GroupVersionResource{
	Group:    RestoreModifierGroup,
	Version:  RestoreModifierVersion,
	Resource: RestoreModifierResource,
}

var RestoreModifierGVK = schema.GroupVersionKind{
	Group:   RestoreModifierGroup,
	Version: RestoreModifierVersion,
	Kind:    RestoreModifierKind,
}

// RestoreModifier is the persisted custom resource.
type RestoreModifier struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Selectors []SelectorSpec `json:"selectors"`
	Modifiers []ActionSpec   `json:"modifiers"`
}

type RestoreModifierList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`

	Items []RestoreModifier `json:"items"`
}

type SelectorSpec struct {
	ID        string            `json:"id"`
	Name      string            `json:"name,omitempty"`
	Namespace string            `json:"namespace,omitempty"`
	Kind      string            `json:"kind,omitempty"`
	Labels    map[string]string `json:"labels,omitempty"`
	Field     *FieldSpec        `json:"field,omitempty"`
}

type FieldSpec struct {
	Path     string      `json:"path"`
	Value    interface{} `json:"value,omitempty"`
	Exact    bool        `json:"exact"`
	Criteria string      `json:"criteria,omitempty"`
}

type ActionSpec struct {
	SelectorID string      `json:"selectorId"`
	Action     string      `json:"action"`
	Path       string      `json:"path"`
	Value      interface{} `json:"value,omitempty"`
	NewValue   interface{} `json:"newValue,omitempty"`
	Parameters string      `json:"parameters,omitempty"`
}

func NewRestoreModifier(name, namespace string) *RestoreModifier {
	if namespace == "" {
		namespace = RestoreModifierNamespace
	}
	return &RestoreModifier{
		TypeMeta: metav1.TypeMeta{
			APIVersion: RestoreModifierGVK.GroupVersion().String(),
			Kind:       RestoreModifierKind,
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
		Selectors: []SelectorSpec{},
		Modifiers: []ActionSpec{},
	}
}

// ToRestoreModifier renders a modifier as a custom resource in namespace.
func ToRestoreModifier(m Modifier, namespace string) *RestoreModifier {
	rm := NewRestoreModifier(m.Name, namespace)
	for _, s := range m.Selectors {
		rm.Selectors = append(rm.Selectors, SelectorToSpec(s))
	}
	for _, a := range m.Actions {
		rm.Modifiers = append(rm.Modifiers, ActionToSpec(a))
	}
	return rm
}

// FromRestoreModifier converts a custom resource back into a modifier. The
// result is not validated.
func FromRestoreModifier(rm *RestoreModifier) (Modifier, error) {
	m := Modifier{Name: rm.Name}
	for i, spec := range rm.Selectors {
		s, err := SelectorFromSpec(spec)
		if err != nil {
			return Modifier{}, fmt.Errorf("selector %d of %s: %w", i, rm.Name, err)
		}
		m.Selectors = append(m.Selectors, s)
	}
	for i, spec := range rm.Modifiers {
		a, err := ActionFromSpec(spec)
		if err != nil {
			return Modifier{}, fmt.Errorf("modifier %d of %s: %w", i, rm.Name, err)
		}
		m.Actions = append(m.Actions, a)
	}
	return m, nil
}

func SelectorToSpec(s Selector) SelectorSpec {
	spec := SelectorSpec{ID: s.ID}
	for _, c := range s.Criteria {
		switch criterion := c.(type) {
		case KindCriterion:
			spec.Kind = criterion.Pattern
		case NameCriterion:
			spec.Name = criterion.Pattern
		case NamespaceCriterion:
			spec.Namespace = criterion.Pattern
		case LabelsCriterion:
			spec.Labels = make(map[string]string, len(criterion.Labels))
			for k, v := range criterion.Labels {
				spec.Labels[k] = v
			}
		case FieldCriterion:
			spec.Field = &FieldSpec{
				Path:     criterion.Path,
				Value:    criterion.Value,
				Exact:    criterion.Exact,
				Criteria: string(criterion.Criteria),
			}
		}
	}
	return spec
}

// SelectorFromSpec expands the flat persisted entry into criteria, ordered
// kind, name, namespace, labels, field.
func SelectorFromSpec(spec SelectorSpec) (Selector, error) {
	s := Selector{ID: spec.ID}
	if spec.Kind != "" {
		s.Criteria = append(s.Criteria, KindCriterion{Pattern: spec.Kind})
	}
	if spec.Name != "" {
		s.Criteria = append(s.Criteria, NameCriterion{Pattern: spec.Name})
	}
	if spec.Namespace != "" {
		s.Criteria = append(s.Criteria, NamespaceCriterion{Pattern: spec.Namespace})
	}
	if len(spec.Labels) > 0 {
		labels := make(map[string]string, len(spec.Labels))
		for k, v := range spec.Labels {
			labels[k] = v
		}
		s.Criteria = append(s.Criteria, LabelsCriterion{Labels: labels})
	}
	if spec.Field != nil {
		criteria, err := ParseFieldCriteria(spec.Field.Criteria)
		if err != nil {
			return Selector{}, err
		}
		value := ""
		if spec.Field.Value != nil {
			value = Stringify(spec.Field.Value)
		}
		s.Criteria = append(s.Criteria, FieldCriterion{
			Path:     spec.Field.Path,
			Value:    value,
			Exact:    spec.Field.Exact,
			Criteria: criteria,
		})
	}
	return s, nil
}

func ActionToSpec(a Action) ActionSpec {
	spec := ActionSpec{
		SelectorID: a.SelectorID(),
		Action:     string(a.Type()),
		Path:       a.TargetPath(),
	}
	switch action := a.(type) {
	case AddAction:
		spec.Value = CopyValue(action.Value)
	case ModifyAction:
		spec.Value = CopyValue(action.Value)
		spec.NewValue = CopyValue(action.NewValue)
		spec.Parameters = string(action.Parameters)
		if spec.Parameters == "" {
			spec.Parameters = string(ModifyExact)
		}
	}
	return spec
}

func ActionFromSpec(spec ActionSpec) (Action, error) {
	actionType, err := ParseActionType(spec.Action)
	if err != nil {
		return nil, err
	}
	switch actionType {
	case ActionAdd:
		return AddAction{Selector: spec.SelectorID, Path: spec.Path, Value: CopyValue(spec.Value)}, nil
	case ActionDelete:
		return DeleteAction{Selector: spec.SelectorID, Path: spec.Path}, nil
	default:
		parameters, err := ParseModifyParameters(spec.Parameters)
		if err != nil {
			return nil, err
		}
		return ModifyAction{
			Selector:   spec.SelectorID,
			Path:       spec.Path,
			Value:      CopyValue(spec.Value),
			NewValue:   CopyValue(spec.NewValue),
			Parameters: parameters,
		}, nil
	}
}

func SortRestoreModifiers(items []RestoreModifier) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})
}
