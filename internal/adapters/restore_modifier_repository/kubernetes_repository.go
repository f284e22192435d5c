package restore_modifier_repository

import (
	"context"
	"encoding/json"
	"fmt"

	"rmod/internal/core/domain"
	"rmod/internal/ports"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	utiljson "k8s.io/apimachinery/pkg/util/json"
	"k8s.io/client-go/dynamic"
)

var _ ports.RestoreModifierRepository = (*KubernetesRepository)(nil)

// KubernetesRepository stores modifiers as RestoreModifier custom resources
// through the dynamic client.
type KubernetesRepository struct {
	client dynamic.Interface
}

func NewKubernetesRepository(client dynamic.Interface) *KubernetesRepository {
	return &KubernetesRepository{client: client}
}

func (r *KubernetesRepository) resource(namespace string) dynamic.ResourceInterface {
	return r.client.Resource(domain.RestoreModifierGVR).Namespace(namespace)
}

func (r *KubernetesRepository) List(ctx context.Context, namespace string) ([]domain.RestoreModifier, error) {
	list, err := r.resource(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, mapError(err)
	}
	items := make([]domain.RestoreModifier, 0, len(list.Items))
	for i := range list.Items {
		rm, err := fromUnstructured(&list.Items[i])
		if err != nil {
			return nil, err
		}
		items = append(items, *rm)
	}
	return items, nil
}

func (r *KubernetesRepository) Get(ctx context.Context, namespace, name string) (*domain.RestoreModifier, error) {
	obj, err := r.resource(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, mapError(err)
	}
	return fromUnstructured(obj)
}

func (r *KubernetesRepository) Create(ctx context.Context, rm *domain.RestoreModifier) (*domain.RestoreModifier, error) {
	obj, err := toUnstructured(rm)
	if err != nil {
		return nil, err
	}
	created, err := r.resource(rm.Namespace).Create(ctx, obj, metav1.CreateOptions{})
	if err != nil {
		return nil, mapError(err)
	}
	return fromUnstructured(created)
}

func (r *KubernetesRepository) Update(ctx context.Context, rm *domain.RestoreModifier) (*domain.RestoreModifier, error) {
	obj, err := toUnstructured(rm)
	if err != nil {
		return nil, err
	}
	updated, err := r.resource(rm.Namespace).Update(ctx, obj, metav1.UpdateOptions{})
	if err != nil {
		return nil, mapError(err)
	}
	return fromUnstructured(updated)
}

func (r *KubernetesRepository) Delete(ctx context.Context, namespace, name string) error {
	if err := r.resource(namespace).Delete(ctx, name, metav1.DeleteOptions{}); err != nil {
		return mapError(err)
	}
	return nil
}

func mapError(err error) error {
	switch {
	case apierrors.IsNotFound(err):
		return fmt.Errorf("%w: %v", domain.ErrModifierNotFound, err)
	case apierrors.IsAlreadyExists(err):
		return fmt.Errorf("%w: %v", domain.ErrModifierExists, err)
	case apierrors.IsConflict(err):
		return fmt.Errorf("modifier was changed concurrently, reload and retry: %w", err)
	}
	return err
}

func toUnstructured(rm *domain.RestoreModifier) (*unstructured.Unstructured, error) {
	data, err := json.Marshal(rm)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", rm.Name, err)
	}
	obj := map[string]interface{}{}
	if err := utiljson.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", rm.Name, err)
	}
	u := &unstructured.Unstructured{Object: obj}
	u.SetGroupVersionKind(domain.RestoreModifierGVK)
	return u, nil
}

func fromUnstructured(u *unstructured.Unstructured) (*domain.RestoreModifier, error) {
	data, err := u.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", u.GetName(), err)
	}
	var rm domain.RestoreModifier
	if err := utiljson.Unmarshal(data, &rm); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", u.GetName(), err)
	}
	return &rm, nil
}
