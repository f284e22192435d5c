package testutil

import (
	"context"

	"rmod/internal/core/domain"
	"rmod/internal/ports"

	"github.com/stretchr/testify/mock"
)

var _ ports.RestoreModifierRepository = (*MockRestoreModifierRepository)(nil)

// MockRestoreModifierRepository provides a testify mock for ports.RestoreModifierRepository.
// Create and Update also accept a func(*domain.RestoreModifier) *domain.RestoreModifier
// as return value, which is called with the argument.
type MockRestoreModifierRepository struct {
	mock.Mock
}

func (m *MockRestoreModifierRepository) List(ctx context.Context, namespace string) ([]domain.RestoreModifier, error) {
	args := m.Called(ctx, namespace)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RestoreModifier), args.Error(1)
}

func (m *MockRestoreModifierRepository) Get(ctx context.Context, namespace, name string) (*domain.RestoreModifier, error) {
	args := m.Called(ctx, namespace, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RestoreModifier), args.Error(1)
}

func (m *MockRestoreModifierRepository) Create(ctx context.Context, rm *domain.RestoreModifier) (*domain.RestoreModifier, error) {
	args := m.Called(ctx, rm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if fn, ok := args.Get(0).(func(*domain.RestoreModifier) *domain.RestoreModifier); ok {
		return fn(rm), args.Error(1)
	}
	return args.Get(0).(*domain.RestoreModifier), args.Error(1)
}

func (m *MockRestoreModifierRepository) Update(ctx context.Context, rm *domain.RestoreModifier) (*domain.RestoreModifier, error) {
	args := m.Called(ctx, rm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if fn, ok := args.Get(0).(func(*domain.RestoreModifier) *domain.RestoreModifier); ok {
		return fn(rm), args.Error(1)
	}
	return args.Get(0).(*domain.RestoreModifier), args.Error(1)
}

func (m *MockRestoreModifierRepository) Delete(ctx context.Context, namespace, name string) error {
	args := m.Called(ctx, namespace, name)
	return args.Error(0)
}
