package restore_modifier_repository

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"rmod/internal/core/domain"
	"rmod/internal/ports"

	"github.com/google/uuid"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	utiljson "k8s.io/apimachinery/pkg/util/json"
	sigsyaml "sigs.k8s.io/yaml"
)

var _ ports.RestoreModifierRepository = (*FileRepository)(nil)

// FileRepository keeps RestoreModifier documents in one local YAML file
// shaped like a RestoreModifierList. It mimics the API server: resource
// versions increase on every write and stale updates are rejected.
type FileRepository struct {
	fileSystem ports.FileSystem
	path       string
	mu         sync.Mutex
}

func NewFileRepository(fileSystem ports.FileSystem, path string) *FileRepository {
	return &FileRepository{fileSystem: fileSystem, path: path}
}

func (r *FileRepository) List(_ context.Context, namespace string) ([]domain.RestoreModifier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.read()
	if err != nil {
		return nil, err
	}
	items := []domain.RestoreModifier{}
	for _, item := range list.Items {
		if item.Namespace == namespace {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *FileRepository) Get(_ context.Context, namespace, name string) (*domain.RestoreModifier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.read()
	if err != nil {
		return nil, err
	}
	index := find(list, namespace, name)
	if index < 0 {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrModifierNotFound, namespace, name)
	}
	item := list.Items[index]
	return &item, nil
}

func (r *FileRepository) Create(_ context.Context, rm *domain.RestoreModifier) (*domain.RestoreModifier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.read()
	if err != nil {
		return nil, err
	}
	if find(list, rm.Namespace, rm.Name) >= 0 {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrModifierExists, rm.Namespace, rm.Name)
	}

	created := *rm
	created.TypeMeta = metav1.TypeMeta{APIVersion: domain.RestoreModifierGVK.GroupVersion().String(), Kind: domain.RestoreModifierKind}
	created.UID = types.UID(uuid.NewString())
	created.CreationTimestamp = metav1.Now()
	created.ResourceVersion = nextResourceVersion(list)
	list.Items = append(list.Items, created)
	list.ResourceVersion = created.ResourceVersion

	if err := r.write(list); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *FileRepository) Update(_ context.Context, rm *domain.RestoreModifier) (*domain.RestoreModifier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.read()
	if err != nil {
		return nil, err
	}
	index := find(list, rm.Namespace, rm.Name)
	if index < 0 {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrModifierNotFound, rm.Namespace, rm.Name)
	}
	stored := list.Items[index]
	if rm.ResourceVersion != "" && rm.ResourceVersion != stored.ResourceVersion {
		return nil, fmt.Errorf(
			"modifier was changed concurrently, reload and retry: %s/%s has resourceVersion %s, got %s",
			rm.Namespace, rm.Name, stored.ResourceVersion, rm.ResourceVersion,
		)
	}

	updated := *rm
	updated.TypeMeta = stored.TypeMeta
	updated.UID = stored.UID
	updated.CreationTimestamp = stored.CreationTimestamp
	updated.ResourceVersion = nextResourceVersion(list)
	list.Items[index] = updated
	list.ResourceVersion = updated.ResourceVersion

	if err := r.write(list); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *FileRepository) Delete(_ context.Context, namespace, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.read()
	if err != nil {
		return err
	}
	index := find(list, namespace, name)
	if index < 0 {
		return fmt.Errorf("%w: %s/%s", domain.ErrModifierNotFound, namespace, name)
	}
	list.Items = append(list.Items[:index], list.Items[index+1:]...)
	list.ResourceVersion = nextResourceVersion(list)
	return r.write(list)
}

func (r *FileRepository) read() (*domain.RestoreModifierList, error) {
	list := &domain.RestoreModifierList{
		TypeMeta: metav1.TypeMeta{
			APIVersion: domain.RestoreModifierGVK.GroupVersion().String(),
			Kind:       domain.RestoreModifierListKind,
		},
	}
	exists, err := r.fileSystem.FileExists(r.path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return list, nil
	}

	data, err := r.fileSystem.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read modifier store %s: %w", r.path, err)
	}
	jsonData, err := sigsyaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse modifier store %s: %w", r.path, err)
	}
	if string(jsonData) == "null" {
		return list, nil
	}
	if err := utiljson.Unmarshal(jsonData, list); err != nil {
		return nil, fmt.Errorf("failed to parse modifier store %s: %w", r.path, err)
	}
	return list, nil
}

func (r *FileRepository) write(list *domain.RestoreModifierList) error {
	data, err := sigsyaml.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode modifier store: %w", err)
	}
	if err := r.fileSystem.WriteFile(r.path, data, ports.ReadWrite); err != nil {
		return fmt.Errorf("failed to write modifier store %s: %w", r.path, err)
	}
	return nil
}

func find(list *domain.RestoreModifierList, namespace, name string) int {
	for i, item := range list.Items {
		if item.Namespace == namespace && item.Name == name {
			return i
		}
	}
	return -1
}

func nextResourceVersion(list *domain.RestoreModifierList) string {
	current, _ := strconv.ParseInt(list.ResourceVersion, 10, 64)
	return strconv.FormatInt(current+1, 10)
}
