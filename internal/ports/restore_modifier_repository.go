package ports

import (
	"context"

	"rmod/internal/core/domain"
)

// RestoreModifierRepository persists RestoreModifier resources. Get, Update
// and Delete return domain.ErrModifierNotFound for unknown names, Create
// returns domain.ErrModifierExists for taken ones.
type RestoreModifierRepository interface {
	List(ctx context.Context, namespace string) ([]domain.RestoreModifier, error)
	Get(ctx context.Context, namespace, name string) (*domain.RestoreModifier, error)
	Create(ctx context.Context, rm *domain.RestoreModifier) (*domain.RestoreModifier, error)
	Update(ctx context.Context, rm *domain.RestoreModifier) (*domain.RestoreModifier, error)
	Delete(ctx context.Context, namespace, name string) error
}
