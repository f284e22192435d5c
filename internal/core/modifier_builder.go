package core

import (
	"context"
	"fmt"

	"rmod/internal/core/domain"

	"github.com/google/uuid"
)

// ModifierBuilder collects selectors and actions in memory. Nothing is
// validated or persisted until Build or Save.
type ModifierBuilder struct {
	name      string
	selectors []domain.Selector
	actions   []domain.Action
}

func NewModifierBuilder(name string) *ModifierBuilder {
	return &ModifierBuilder{name: name}
}

// FromModifier seeds a builder with a copy of an existing modifier.
func FromModifier(modifier domain.Modifier) *ModifierBuilder {
	clone := modifier.Clone()
	return &ModifierBuilder{
		name:      clone.Name,
		selectors: clone.Selectors,
		actions:   clone.Actions,
	}
}

func (b *ModifierBuilder) Named(name string) *ModifierBuilder {
	b.name = name
	return b
}

func (b *ModifierBuilder) WithSelector(selector domain.Selector) *ModifierBuilder {
	if selector.ID == "" {
		selector.ID = NewSelectorID(selector)
	}
	b.selectors = append(b.selectors, selector)
	return b
}

// AddSelector appends a selector made of criteria and returns its generated id.
func (b *ModifierBuilder) AddSelector(criteria ...domain.Criterion) string {
	selector := domain.Selector{Criteria: criteria}
	selector.ID = NewSelectorID(selector)
	b.selectors = append(b.selectors, selector)
	return selector.ID
}

func (b *ModifierBuilder) WithAction(action domain.Action) *ModifierBuilder {
	b.actions = append(b.actions, action)
	return b
}

func (b *ModifierBuilder) Build() (domain.Modifier, error) {
	modifier := domain.Modifier{
		Name:      b.name,
		Selectors: b.selectors,
		Actions:   b.actions,
	}.Clone()
	if err := modifier.Validate(); err != nil {
		return domain.Modifier{}, err
	}
	return modifier, nil
}

// Save builds the modifier and stores it with a single write.
func (b *ModifierBuilder) Save(ctx context.Context, store *ModifierStore) (domain.Modifier, error) {
	modifier, err := b.Build()
	if err != nil {
		return domain.Modifier{}, err
	}
	return store.Save(ctx, modifier)
}

// NewSelectorID derives a readable unique id from the first criterion,
// e.g. "kind-1f0c9a2e".
func NewSelectorID(selector domain.Selector) string {
	prefix := "selector"
	if len(selector.Criteria) > 0 && selector.Criteria[0] != nil {
		prefix = string(selector.Criteria[0].Type())
	}
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}
