package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sigsyaml "sigs.k8s.io/yaml"
)

const restoreModifierYAML = `apiVersion: k8s.cv.io/v1
kind: RestoreModifier
metadata:
  name: web-tier
  namespace: cv-config
selectors:
  - id: secrets-in-ns
    kind: Secret
    namespace: ns
  - id: nginx-port
    name: nginx-*
    field:
      path: /spec/ports/0/port
      value: 80
      exact: true
      criteria: Contains
modifiers:
  - selectorId: secrets-in-ns
    action: add
    path: /metadata/labels/restored
    value: "true"
  - selectorId: nginx-port
    action: modify
    path: /spec/ports/0/port
    value: 80
    newValue: 81
    parameters: Exact
  - selectorId: secrets-in-ns
    action: Delete
    path: /metadata/annotations
`

func TestFromRestoreModifier(t *testing.T) {
	var rm RestoreModifier
	require.NoError(t, sigsyaml.Unmarshal([]byte(restoreModifierYAML), &rm))

	m, err := FromRestoreModifier(&rm)

	require.NoError(t, err)
	assert.Equal(t, "web-tier", m.Name)
	assert.Equal(t, []Selector{
		{ID: "secrets-in-ns", Criteria: []Criterion{
			KindCriterion{Pattern: "Secret"},
			NamespaceCriterion{Pattern: "ns"},
		}},
		{ID: "nginx-port", Criteria: []Criterion{
			NameCriterion{Pattern: "nginx-*"},
			FieldCriterion{Path: "/spec/ports/0/port", Value: "80", Exact: true, Criteria: Contains},
		}},
	}, m.Selectors)
	require.Len(t, m.Actions, 3)
	assert.Equal(t, AddAction{Selector: "secrets-in-ns", Path: "/metadata/labels/restored", Value: "true"}, m.Actions[0])
	assert.Equal(t, ModifyAction{
		Selector:   "nginx-port",
		Path:       "/spec/ports/0/port",
		Value:      float64(80),
		NewValue:   float64(81),
		Parameters: ModifyExact,
	}, m.Actions[1])
	assert.Equal(t, DeleteAction{Selector: "secrets-in-ns", Path: "/metadata/annotations"}, m.Actions[2])
	assert.NoError(t, m.Validate())
}

func TestFromRestoreModifier_UnknownAction(t *testing.T) {
	rm := NewRestoreModifier("bad", "")
	rm.Selectors = []SelectorSpec{{ID: "s", Kind: "Pod"}}
	rm.Modifiers = []ActionSpec{{SelectorID: "s", Action: "Patch", Path: "spec"}}

	_, err := FromRestoreModifier(rm)

	assert.ErrorContains(t, err, "unknown action")
}

func TestToRestoreModifier(t *testing.T) {
	m := Modifier{
		Name: "labels",
		Selectors: []Selector{
			{ID: "apps", Criteria: []Criterion{
				LabelsCriterion{Labels: map[string]string{"tier": "web"}},
				FieldCriterion{Path: "spec.replicas", Value: "0", Criteria: DoesNotContain},
			}},
		},
		Actions: []Action{
			ModifyAction{Selector: "apps", Path: "spec.image", Value: "v1", NewValue: "v2", Parameters: ModifyContains},
			ModifyAction{Selector: "apps", Path: "spec.replicas", NewValue: 2},
		},
	}

	rm := ToRestoreModifier(m, "")

	assert.Equal(t, "k8s.cv.io/v1", rm.APIVersion)
	assert.Equal(t, RestoreModifierKind, rm.Kind)
	assert.Equal(t, "labels", rm.Name)
	assert.Equal(t, RestoreModifierNamespace, rm.Namespace)
	assert.Equal(t, []SelectorSpec{{
		ID:     "apps",
		Labels: map[string]string{"tier": "web"},
		Field:  &FieldSpec{Path: "spec.replicas", Value: "0", Criteria: "DoesNotContain"},
	}}, rm.Selectors)
	assert.Equal(t, []ActionSpec{
		{SelectorID: "apps", Action: "Modify", Path: "spec.image", Value: "v1", NewValue: "v2", Parameters: "Contains"},
		{SelectorID: "apps", Action: "Modify", Path: "spec.replicas", NewValue: int64(2), Parameters: "Exact"},
	}, rm.Modifiers)
}

func TestToRestoreModifier_RoundTripsThroughFromRestoreModifier(t *testing.T) {
	m := validModifier()

	back, err := FromRestoreModifier(ToRestoreModifier(m, "restore"))

	require.NoError(t, err)
	assert.Equal(t, m, back)
}

func TestToRestoreModifier_EmptyListsSerialize(t *testing.T) {
	data, err := sigsyaml.Marshal(ToRestoreModifier(Modifier{Name: "empty"}, ""))

	require.NoError(t, err)
	assert.Contains(t, string(data), "selectors: []")
	assert.Contains(t, string(data), "modifiers: []")
}

func TestSortRestoreModifiers(t *testing.T) {
	items := []RestoreModifier{
		*NewRestoreModifier("b", ""),
		*NewRestoreModifier("c", ""),
		*NewRestoreModifier("a", ""),
	}

	SortRestoreModifiers(items)

	assert.Equal(t, "a", items[0].Name)
	assert.Equal(t, "b", items[1].Name)
	assert.Equal(t, "c", items[2].Name)
}
