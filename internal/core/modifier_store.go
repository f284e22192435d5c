package core

import (
	"context"
	"errors"
	"fmt"

	"rmod/internal/core/domain"
	"rmod/internal/ports"

	"github.com/charmbracelet/log"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// ModifierStore manages the restore modifiers of one namespace. Every
// mutation loads the stored modifier, changes a copy, validates the whole
// modifier and writes it back once; nothing is written when validation fails.
type ModifierStore struct {
	repository  ports.RestoreModifierRepository
	namespace   string
	transformer *Transformer
}

func NewModifierStore(repository ports.RestoreModifierRepository, namespace string, transformer *Transformer) *ModifierStore {
	if namespace == "" {
		namespace = domain.RestoreModifierNamespace
	}
	return &ModifierStore{
		repository:  repository,
		namespace:   namespace,
		transformer: transformer,
	}
}

func ProvideModifierStore(
	repository ports.RestoreModifierRepository,
	configRepository ConfigRepository,
	transformer *Transformer,
) (*ModifierStore, error) {
	currentContext, err := configRepository.LoadCurrentContext()
	if err != nil {
		return nil, err
	}
	return NewModifierStore(repository, currentContext.EffectiveNamespace(), transformer), nil
}

func (s *ModifierStore) Namespace() string {
	return s.namespace
}

func (s *ModifierStore) Create(ctx context.Context, modifier domain.Modifier) (domain.Modifier, error) {
	if err := modifier.Validate(); err != nil {
		return domain.Modifier{}, err
	}
	created, err := s.repository.Create(ctx, domain.ToRestoreModifier(modifier, s.namespace))
	if err != nil {
		return domain.Modifier{}, fmt.Errorf("failed to create modifier %s: %w", modifier.Name, err)
	}
	log.Debug("modifier created", "name", modifier.Name, "namespace", s.namespace)
	return domain.FromRestoreModifier(created)
}

// Save creates the modifier or replaces the stored one with the same name.
func (s *ModifierStore) Save(ctx context.Context, modifier domain.Modifier) (domain.Modifier, error) {
	if err := modifier.Validate(); err != nil {
		return domain.Modifier{}, err
	}

	existing, err := s.repository.Get(ctx, s.namespace, modifier.Name)
	if errors.Is(err, domain.ErrModifierNotFound) {
		return s.Create(ctx, modifier)
	}
	if err != nil {
		return domain.Modifier{}, fmt.Errorf("failed to load modifier %s: %w", modifier.Name, err)
	}
	return s.write(ctx, existing, modifier)
}

func (s *ModifierStore) List(ctx context.Context) ([]domain.Modifier, error) {
	items, err := s.repository.List(ctx, s.namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to list modifiers in %s: %w", s.namespace, err)
	}
	domain.SortRestoreModifiers(items)

	modifiers := make([]domain.Modifier, 0, len(items))
	for i := range items {
		modifier, err := domain.FromRestoreModifier(&items[i])
		if err != nil {
			return nil, fmt.Errorf("failed to decode modifier %s: %w", items[i].Name, err)
		}
		modifiers = append(modifiers, modifier)
	}
	return modifiers, nil
}

func (s *ModifierStore) Get(ctx context.Context, name string) (domain.Modifier, error) {
	_, modifier, err := s.load(ctx, name)
	return modifier, err
}

func (s *ModifierStore) Delete(ctx context.Context, name string) error {
	if err := s.repository.Delete(ctx, s.namespace, name); err != nil {
		return fmt.Errorf("failed to delete modifier %s: %w", name, err)
	}
	log.Debug("modifier deleted", "name", name, "namespace", s.namespace)
	return nil
}

// AddSelector appends a selector, generating an id when none is given.
func (s *ModifierStore) AddSelector(ctx context.Context, name string, selector domain.Selector) (domain.Selector, error) {
	if selector.ID == "" {
		selector.ID = NewSelectorID(selector)
	}
	_, err := s.mutate(ctx, name, func(m *domain.Modifier) error {
		m.Selectors = append(m.Selectors, selector)
		return nil
	})
	if err != nil {
		return domain.Selector{}, err
	}
	return selector, nil
}

// DeleteSelector refuses to remove a selector that an action still
// references; delete those actions first.
func (s *ModifierStore) DeleteSelector(ctx context.Context, name, selectorID string) error {
	_, err := s.mutate(ctx, name, func(m *domain.Modifier) error {
		if _, ok := m.Selector(selectorID); !ok {
			return fmt.Errorf("%w: %s in modifier %s", domain.ErrSelectorNotFound, selectorID, name)
		}
		if refs := m.ActionsReferencing(selectorID); len(refs) > 0 {
			return fmt.Errorf("%w: %s is used by actions %v", domain.ErrSelectorInUse, selectorID, refs)
		}
		selectors := m.Selectors[:0]
		for _, selector := range m.Selectors {
			if selector.ID != selectorID {
				selectors = append(selectors, selector)
			}
		}
		m.Selectors = selectors
		return nil
	})
	return err
}

func (s *ModifierStore) AddAction(ctx context.Context, name string, action domain.Action) (domain.Modifier, error) {
	return s.mutate(ctx, name, func(m *domain.Modifier) error {
		if _, ok := m.Selector(action.SelectorID()); !ok {
			return domain.NewValidationError(
				domain.ErrSelectorNotFound,
				field.NotFound(field.NewPath("modifiers").Index(len(m.Actions)).Child("selectorId"), action.SelectorID()),
			)
		}
		m.Actions = append(m.Actions, action)
		return nil
	})
}

// DeleteAction removes the action at a 0-based index.
func (s *ModifierStore) DeleteAction(ctx context.Context, name string, index int) (domain.Modifier, error) {
	return s.mutate(ctx, name, func(m *domain.Modifier) error {
		if index < 0 || index >= len(m.Actions) {
			return fmt.Errorf("%w: index %d, modifier %s has %d actions", domain.ErrActionNotFound, index, name, len(m.Actions))
		}
		m.Actions = append(m.Actions[:index], m.Actions[index+1:]...)
		return nil
	})
}

// Test runs the stored modifier over a copy of manifest without writing
// anything.
func (s *ModifierStore) Test(ctx context.Context, name string, manifest map[string]interface{}) (TransformResult, error) {
	modifier, err := s.Get(ctx, name)
	if err != nil {
		return TransformResult{}, err
	}
	return s.transformer.Transform(manifest, modifier)
}

func (s *ModifierStore) load(ctx context.Context, name string) (*domain.RestoreModifier, domain.Modifier, error) {
	rm, err := s.repository.Get(ctx, s.namespace, name)
	if err != nil {
		return nil, domain.Modifier{}, fmt.Errorf("failed to load modifier %s: %w", name, err)
	}
	modifier, err := domain.FromRestoreModifier(rm)
	if err != nil {
		return nil, domain.Modifier{}, fmt.Errorf("failed to decode modifier %s: %w", name, err)
	}
	return rm, modifier, nil
}

func (s *ModifierStore) mutate(ctx context.Context, name string, change func(m *domain.Modifier) error) (domain.Modifier, error) {
	rm, current, err := s.load(ctx, name)
	if err != nil {
		return domain.Modifier{}, err
	}

	updated := current.Clone()
	if err := change(&updated); err != nil {
		return domain.Modifier{}, err
	}
	if err := updated.Validate(); err != nil {
		return domain.Modifier{}, err
	}
	return s.write(ctx, rm, updated)
}

// write replaces the body of existing with modifier and keeps its metadata,
// resourceVersion included.
func (s *ModifierStore) write(ctx context.Context, existing *domain.RestoreModifier, modifier domain.Modifier) (domain.Modifier, error) {
	next := domain.ToRestoreModifier(modifier, existing.Namespace)
	next.ObjectMeta = existing.ObjectMeta

	stored, err := s.repository.Update(ctx, next)
	if err != nil {
		return domain.Modifier{}, fmt.Errorf("failed to update modifier %s: %w", modifier.Name, err)
	}
	log.Debug("modifier updated",
		"name", modifier.Name,
		"selectors", len(modifier.Selectors),
		"actions", len(modifier.Actions),
	)
	return domain.FromRestoreModifier(stored)
}
