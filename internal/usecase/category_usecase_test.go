package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/pos-terminal/internal/domain"
	"github.com/DRSN-tech/pos-terminal/pkg/e"
	"github.com/DRSN-tech/pos-terminal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seededCategories(t *testing.T) (*CategoryUseCase, *mockCategories) {
	t.Helper()

	svc := &mockCategories{}
	svc.On("ListCategories", mock.Anything).Return([]domain.Category{
		{ID: 1, Name: "Bebidas"},
		{ID: 2, Name: "Lacteos"},
	}, nil).Once()

	uc := NewCategoryUC(svc, logger.NewNopLogger())
	_, err := uc.List(context.Background(), false)
	require.NoError(t, err)
	return uc, svc
}

func TestCategoryUseCase_Rename_ReplacesWithServerRecord(t *testing.T) {
	uc, svc := seededCategories(t)
	svc.On("UpdateCategory", mock.Anything, int64(2), "Lácteos").
		Return(&domain.Category{ID: 2, Name: "Lácteos y derivados"}, nil)

	got, err := uc.Rename(context.Background(), 2, "  Lácteos ")
	require.NoError(t, err)
	assert.Equal(t, "Lácteos y derivados", got.Name)

	snap := uc.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "Lácteos y derivados", snap[1].Name)
}

func TestCategoryUseCase_Rename_RollsBackOnFailure(t *testing.T) {
	uc, svc := seededCategories(t)
	svc.On("UpdateCategory", mock.Anything, int64(1), "Gaseosas").Return(nil, errors.New("status 500"))

	_, err := uc.Rename(context.Background(), 1, "Gaseosas")
	require.Error(t, err)

	snap := uc.Snapshot()
	assert.Equal(t, "Bebidas", snap[0].Name)
	assert.Equal(t, "Lacteos", snap[1].Name)
}

func TestCategoryUseCase_Rename_UnknownIDAppends(t *testing.T) {
	uc, svc := seededCategories(t)
	svc.On("UpdateCategory", mock.Anything, int64(9), "Limpieza").
		Return(&domain.Category{ID: 9, Name: "Limpieza"}, nil)

	_, err := uc.Rename(context.Background(), 9, "Limpieza")
	require.NoError(t, err)
	assert.Len(t, uc.Snapshot(), 3)
}

func TestCategoryUseCase_Create(t *testing.T) {
	uc, svc := seededCategories(t)

	_, err := uc.Create(context.Background(), "   ")
	assert.ErrorIs(t, err, e.ErrStatusBadRequest)

	svc.On("CreateCategory", mock.Anything, "Snacks").Return(&domain.Category{ID: 3, Name: "Snacks"}, nil)
	created, err := uc.Create(context.Background(), "Snacks ")
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
	assert.Len(t, uc.Snapshot(), 3)
}

func TestCategoryUseCase_List_ServesLocalCopy(t *testing.T) {
	uc, svc := seededCategories(t)
	svc.On("UpdateCategory", mock.Anything, int64(1), "Gaseosas").
		Return(&domain.Category{ID: 1, Name: "Gaseosas"}, nil)

	_, err := uc.Rename(context.Background(), 1, "Gaseosas")
	require.NoError(t, err)

	list, err := uc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "Gaseosas", list[0].Name)
	svc.AssertNumberOfCalls(t, "ListCategories", 1)

	svc.On("ListCategories", mock.Anything).Return([]domain.Category{{ID: 1, Name: "Bebidas"}}, nil).Once()
	list, err = uc.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Bebidas", uc.Snapshot()[0].Name)
}

func TestCategoryUseCase_List_FirstCallFailure(t *testing.T) {
	svc := &mockCategories{}
	svc.On("ListCategories", mock.Anything).Return(nil, e.ErrBackendUnavailable).Once()
	svc.On("ListCategories", mock.Anything).Return([]domain.Category{{ID: 4, Name: "Limpieza"}}, nil).Once()
	uc := NewCategoryUC(svc, logger.NewNopLogger())

	_, err := uc.List(context.Background(), false)
	require.ErrorIs(t, err, e.ErrBackendUnavailable)

	list, err := uc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCategoryUseCase_Rename_RollbackKeepsConcurrentCreate(t *testing.T) {
	uc, svc := seededCategories(t)

	started := make(chan struct{})
	release := make(chan struct{})
	svc.On("UpdateCategory", mock.Anything, int64(1), "Gaseosas").
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(nil, errors.New("status 500"))
	svc.On("CreateCategory", mock.Anything, "Snacks").Return(&domain.Category{ID: 9, Name: "Snacks"}, nil)

	done := make(chan error, 1)
	go func() {
		_, err := uc.Rename(context.Background(), 1, "Gaseosas")
		done <- err
	}()

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("rename did not reach the backend")
	}

	list, err := uc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "Gaseosas", list[0].Name)

	_, err = uc.Create(context.Background(), "Snacks")
	require.NoError(t, err)

	close(release)
	require.Error(t, <-done)

	snap := uc.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "Bebidas", snap[0].Name)
	assert.Equal(t, "Lacteos", snap[1].Name)
	assert.Equal(t, int64(9), snap[2].ID)
}
