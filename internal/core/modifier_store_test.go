package core

import (
	"context"
	"errors"
	"testing"

	"rmod/internal/core/domain"
	"rmod/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func storedModifier() *domain.RestoreModifier {
	rm := domain.ToRestoreModifier(domain.Modifier{
		Name: "web-tier",
		Selectors: []domain.Selector{
			{ID: "nginx", Criteria: []domain.Criterion{domain.NameCriterion{Pattern: "nginx-*"}}},
		},
		Actions: []domain.Action{
			domain.AddAction{Selector: "nginx", Path: "metadata.labels.restored", Value: "true"},
		},
	}, domain.RestoreModifierNamespace)
	rm.ResourceVersion = "42"
	rm.UID = "b7c1"
	return rm
}

func newStore() (*ModifierStore, *testutil.MockRestoreModifierRepository) {
	repository := new(testutil.MockRestoreModifierRepository)
	return NewModifierStore(repository, "", NewTransformer()), repository
}

func echo(rm *domain.RestoreModifier) *domain.RestoreModifier {
	return rm
}

func TestProvideModifierStore_UsesContextNamespace(t *testing.T) {
	configRepository := new(testutil.MockConfigRepository)
	configRepository.On("LoadCurrentContext").Return(&domain.Context{Name: "lab", Namespace: "restore"}, nil)

	sut, err := ProvideModifierStore(new(testutil.MockRestoreModifierRepository), configRepository, NewTransformer())

	require.NoError(t, err)
	assert.Equal(t, "restore", sut.Namespace())
}

func TestProvideModifierStore_ContextError(t *testing.T) {
	configRepository := new(testutil.MockConfigRepository)
	configRepository.On("LoadCurrentContext").Return(nil, errors.New("no current context"))

	_, err := ProvideModifierStore(new(testutil.MockRestoreModifierRepository), configRepository, NewTransformer())

	assert.ErrorContains(t, err, "no current context")
}

func TestModifierStore_Create(t *testing.T) {
	sut, repository := newStore()
	ctx := context.Background()
	repository.On("Create", ctx, mock.MatchedBy(func(rm *domain.RestoreModifier) bool {
		return rm.Name == "empty" && rm.Namespace == domain.RestoreModifierNamespace && rm.Kind == domain.RestoreModifierKind
	})).Return(domain.NewRestoreModifier("empty", ""), nil)

	created, err := sut.Create(ctx, domain.Modifier{Name: "empty"})

	require.NoError(t, err)
	assert.Equal(t, "empty", created.Name)
	repository.AssertExpectations(t)
}

func TestModifierStore_Create_Invalid(t *testing.T) {
	sut, repository := newStore()

	_, err := sut.Create(context.Background(), domain.Modifier{Name: "Not_Valid"})

	assert.ErrorIs(t, err, domain.ErrValidation)
	repository.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestModifierStore_Create_Exists(t *testing.T) {
	sut, repository := newStore()
	repository.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrModifierExists)

	_, err := sut.Create(context.Background(), domain.Modifier{Name: "web-tier"})

	assert.ErrorIs(t, err, domain.ErrModifierExists)
}

func TestModifierStore_Save_CreatesWhenAbsent(t *testing.T) {
	sut, repository := newStore()
	ctx := context.Background()
	repository.On("Get", ctx, domain.RestoreModifierNamespace, "web-tier").Return(nil, domain.ErrModifierNotFound)
	repository.On("Create", ctx, mock.Anything).Return(storedModifier(), nil)
	modifier, err := domain.FromRestoreModifier(storedModifier())
	require.NoError(t, err)

	saved, err := sut.Save(ctx, modifier)

	require.NoError(t, err)
	assert.Equal(t, modifier, saved)
	repository.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestModifierStore_Save_ReplacesKeepingMetadata(t *testing.T) {
	sut, repository := newStore()
	ctx := context.Background()
	repository.On("Get", ctx, domain.RestoreModifierNamespace, "web-tier").Return(storedModifier(), nil)
	repository.On("Update", ctx, mock.Anything).Return(echo, nil)

	saved, err := sut.Save(ctx, domain.Modifier{Name: "web-tier"})

	require.NoError(t, err)
	assert.Empty(t, saved.Selectors)
	updated := repository.Calls[1].Arguments.Get(1).(*domain.RestoreModifier)
	assert.Equal(t, "42", updated.ResourceVersion)
	assert.Equal(t, "b7c1", string(updated.UID))
	assert.Empty(t, updated.Modifiers)
}

func TestModifierStore_List_SortedByName(t *testing.T) {
	sut, repository := newStore()
	repository.On("List", mock.Anything, domain.RestoreModifierNamespace).Return([]domain.RestoreModifier{
		*domain.NewRestoreModifier("zeta", ""),
		*storedModifier(),
		*domain.NewRestoreModifier("alpha", ""),
	}, nil)

	modifiers, err := sut.List(context.Background())

	require.NoError(t, err)
	require.Len(t, modifiers, 3)
	assert.Equal(t, "alpha", modifiers[0].Name)
	assert.Equal(t, "web-tier", modifiers[1].Name)
	assert.Equal(t, "zeta", modifiers[2].Name)
}

func TestModifierStore_Get_NotFound(t *testing.T) {
	sut, repository := newStore()
	repository.On("Get", mock.Anything, domain.RestoreModifierNamespace, "ghost").Return(nil, domain.ErrModifierNotFound)

	_, err := sut.Get(context.Background(), "ghost")

	assert.ErrorIs(t, err, domain.ErrModifierNotFound)
}

func TestModifierStore_Delete(t *testing.T) {
	sut, repository := newStore()
	repository.On("Delete", mock.Anything, domain.RestoreModifierNamespace, "web-tier").Return(nil)
	repository.On("Delete", mock.Anything, domain.RestoreModifierNamespace, "ghost").Return(domain.ErrModifierNotFound)

	assert.NoError(t, sut.Delete(context.Background(), "web-tier"))
	assert.ErrorIs(t, sut.Delete(context.Background(), "ghost"), domain.ErrModifierNotFound)
}

func TestModifierStore_AddSelector(t *testing.T) {
	sut, repository := newStore()
	repository.On("Get", mock.Anything, domain.RestoreModifierNamespace, "web-tier").Return(storedModifier(), nil)
	repository.On("Update", mock.Anything, mock.Anything).Return(echo, nil)

	added, err := sut.AddSelector(context.Background(), "web-tier", domain.Selector{
		Criteria: []domain.Criterion{domain.KindCriterion{Pattern: "Secret"}},
	})

	require.NoError(t, err)
	assert.Regexp(t, `^kind-[0-9a-f]{8}$`, added.ID)
	updated := repository.Calls[1].Arguments.Get(1).(*domain.RestoreModifier)
	require.Len(t, updated.Selectors, 2)
	assert.Equal(t, "Secret", updated.Selectors[1].Kind)
	assert.Equal(t, "42", updated.ResourceVersion)
}

func TestModifierStore_AddSelector_DuplicateID(t *testing.T) {
	sut, repository := newStore()
	repository.On("Get", mock.Anything, mock.Anything, "web-tier").Return(storedModifier(), nil)

	_, err := sut.AddSelector(context.Background(), "web-tier", domain.Selector{
		ID:       "nginx",
		Criteria: []domain.Criterion{domain.KindCriterion{Pattern: "Secret"}},
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	repository.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestModifierStore_DeleteSelector_RejectsWhenReferenced(t *testing.T) {
	sut, repository := newStore()
	repository.On("Get", mock.Anything, mock.Anything, "web-tier").Return(storedModifier(), nil)

	err := sut.DeleteSelector(context.Background(), "web-tier", "nginx")

	assert.ErrorIs(t, err, domain.ErrSelectorInUse)
	repository.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestModifierStore_DeleteSelector_Unknown(t *testing.T) {
	sut, repository := newStore()
	repository.On("Get", mock.Anything, mock.Anything, "web-tier").Return(storedModifier(), nil)

	err := sut.DeleteSelector(context.Background(), "web-tier", "ghost")

	assert.ErrorIs(t, err, domain.ErrSelectorNotFound)
}

func TestModifierStore_DeleteSelector_Unreferenced(t *testing.T) {
	sut, repository := newStore()
	rm := storedModifier()
	rm.Selectors = append(rm.Selectors, domain.SelectorSpec{ID: "unused", Kind: "Pod"})
	repository.On("Get", mock.Anything, mock.Anything, "web-tier").Return(rm, nil)
	repository.On("Update", mock.Anything, mock.Anything).Return(echo, nil)

	err := sut.DeleteSelector(context.Background(), "web-tier", "unused")

	require.NoError(t, err)
	updated := repository.Calls[1].Arguments.Get(1).(*domain.RestoreModifier)
	assert.Equal(t, []domain.SelectorSpec{{ID: "nginx", Name: "nginx-*"}}, updated.Selectors)
}

func TestModifierStore_AddAction(t *testing.T) {
	sut, repository := newStore()
	repository.On("Get", mock.Anything, mock.Anything, "web-tier").Return(storedModifier(), nil)
	repository.On("Update", mock.Anything, mock.Anything).Return(echo, nil)

	modifier, err := sut.AddAction(context.Background(), "web-tier", domain.DeleteAction{Selector: "nginx", Path: "status"})

	require.NoError(t, err)
	require.Len(t, modifier.Actions, 2)
	assert.Equal(t, domain.DeleteAction{Selector: "nginx", Path: "status"}, modifier.Actions[1])
}

func TestModifierStore_AddAction_UnknownSelectorLeavesStoreUnchanged(t *testing.T) {
	sut, repository := newStore()
	stored := storedModifier()
	repository.On("Get", mock.Anything, mock.Anything, "web-tier").Return(stored, nil)

	_, err := sut.AddAction(context.Background(), "web-tier", domain.DeleteAction{Selector: "ghost", Path: "status"})

	assert.ErrorIs(t, err, domain.ErrSelectorNotFound)
	assert.ErrorIs(t, err, domain.ErrValidation)
	repository.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	assert.Equal(t, storedModifier(), stored)
}

func TestModifierStore_AddAction_InvalidAction(t *testing.T) {
	sut, repository := newStore()
	repository.On("Get", mock.Anything, mock.Anything, "web-tier").Return(storedModifier(), nil)

	_, err := sut.AddAction(context.Background(), "web-tier", domain.AddAction{Selector: "nginx", Path: "metadata.labels.x"})

	assert.ErrorIs(t, err, domain.ErrValidation)
	repository.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestModifierStore_DeleteAction(t *testing.T) {
	sut, repository := newStore()
	repository.On("Get", mock.Anything, mock.Anything, "web-tier").Return(storedModifier(), nil)
	repository.On("Update", mock.Anything, mock.Anything).Return(echo, nil)

	modifier, err := sut.DeleteAction(context.Background(), "web-tier", 0)

	require.NoError(t, err)
	assert.Empty(t, modifier.Actions)
}

func TestModifierStore_DeleteAction_OutOfRange(t *testing.T) {
	sut, repository := newStore()
	repository.On("Get", mock.Anything, mock.Anything, "web-tier").Return(storedModifier(), nil)

	for _, index := range []int{-1, 1, 7} {
		_, err := sut.DeleteAction(context.Background(), "web-tier", index)
		assert.ErrorIs(t, err, domain.ErrActionNotFound)
	}
	repository.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestModifierStore_Test_IsSideEffectFree(t *testing.T) {
	sut, repository := newStore()
	repository.On("Get", mock.Anything, mock.Anything, "web-tier").Return(storedModifier(), nil)
	manifest := map[string]interface{}{
		"metadata": map[string]interface{}{"name": "nginx-deploy"},
	}

	result, err := sut.Test(context.Background(), "web-tier", manifest)

	require.NoError(t, err)
	assert.Equal(t, "true", get(t, result.Manifest, "metadata.labels.restored"))
	assert.Equal(t, map[string]interface{}{
		"metadata": map[string]interface{}{"name": "nginx-deploy"},
	}, manifest)
	repository.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	repository.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestModifierStore_Save_KeepsObjectMetaLabels(t *testing.T) {
	sut, repository := newStore()
	stored := storedModifier()
	stored.Labels = map[string]string{"owner": "qa"}
	stored.CreationTimestamp = metav1.Now()
	repository.On("Get", mock.Anything, mock.Anything, "web-tier").Return(stored, nil)
	repository.On("Update", mock.Anything, mock.Anything).Return(echo, nil)

	_, err := sut.Save(context.Background(), domain.Modifier{Name: "web-tier"})

	require.NoError(t, err)
	updated := repository.Calls[1].Arguments.Get(1).(*domain.RestoreModifier)
	assert.Equal(t, map[string]string{"owner": "qa"}, updated.Labels)
}
