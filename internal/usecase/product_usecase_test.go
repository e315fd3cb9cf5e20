package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/pos-terminal/internal/domain"
	"github.com/DRSN-tech/pos-terminal/pkg/e"
	"github.com/DRSN-tech/pos-terminal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductUseCase_GetProduct_CacheHit(t *testing.T) {
	products := &mockProducts{}
	cache := &mockProductCache{}
	uc := NewProductUC(products, cache, logger.NewNopLogger())

	cached := *catalogProduct(1, "3.20", 4)
	cache.On("GetProducts", mock.Anything, []int64{1}).Return(map[int64]domain.Product{1: cached}, nil)

	got, err := uc.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, cached, *got)
	products.AssertNotCalled(t, "GetProduct", mock.Anything, mock.Anything)
}

func TestProductUseCase_GetProduct_CacheMissFillsCache(t *testing.T) {
	products := &mockProducts{}
	cache := &mockProductCache{}
	uc := NewProductUC(products, cache, logger.NewNopLogger())

	fresh := catalogProduct(2, "1.00", 10)
	cache.On("GetProducts", mock.Anything, []int64{2}).Return(map[int64]domain.Product{}, nil)
	products.On("GetProduct", mock.Anything, int64(2)).Return(fresh, nil).Once()

	filled := make(chan []domain.Product, 1)
	cache.On("SetProducts", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { filled <- args.Get(1).([]domain.Product) }).
		Return(nil)

	got, err := uc.GetProduct(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ID)
	assert.NotSame(t, fresh, got)

	select {
	case list := <-filled:
		require.Len(t, list, 1)
		assert.Equal(t, int64(2), list[0].ID)
	case <-time.After(time.Second):
		t.Fatal("cache was not filled")
	}
}

func TestProductUseCase_GetProduct_CacheErrorFallsBackToBackend(t *testing.T) {
	products := &mockProducts{}
	cache := &mockProductCache{}
	uc := NewProductUC(products, cache, logger.NewNopLogger())

	cache.On("GetProducts", mock.Anything, mock.Anything).Return(nil, errors.New("redis down"))
	cache.On("SetProducts", mock.Anything, mock.Anything).Return(nil).Maybe()
	products.On("GetProduct", mock.Anything, int64(3)).Return(catalogProduct(3, "2.00", 1), nil)

	got, err := uc.GetProduct(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
}

func TestProductUseCase_GetProduct_NotFound(t *testing.T) {
	products := &mockProducts{}
	cache := &mockProductCache{}
	uc := NewProductUC(products, cache, logger.NewNopLogger())

	cache.On("GetProducts", mock.Anything, mock.Anything).Return(map[int64]domain.Product{}, nil)
	products.On("GetProduct", mock.Anything, int64(4)).Return(nil, e.ErrProductNotFound)

	_, err := uc.GetProduct(context.Background(), 4)
	assert.ErrorIs(t, err, e.ErrProductNotFound)
	cache.AssertNotCalled(t, "SetProducts", mock.Anything, mock.Anything)
}

func TestProductUseCase_GetProduct_SharesConcurrentMisses(t *testing.T) {
	products := &mockProducts{}
	cache := &mockProductCache{}
	uc := NewProductUC(products, cache, logger.NewNopLogger())

	release := make(chan struct{})
	cache.On("GetProducts", mock.Anything, mock.Anything).Return(map[int64]domain.Product{}, nil)
	cache.On("SetProducts", mock.Anything, mock.Anything).Return(nil).Maybe()
	products.On("GetProduct", mock.Anything, int64(5)).
		Run(func(mock.Arguments) { <-release }).
		Return(catalogProduct(5, "1.00", 1), nil)

	const callers = 5
	var wg sync.WaitGroup
	wg.Add(callers)
	for range callers {
		go func() {
			defer wg.Done()
			_, err := uc.GetProduct(context.Background(), 5)
			assert.NoError(t, err)
		}()
	}

	// Даем всем вызывающим дойти до общего вызова, пока он не вернулся
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	products.AssertNumberOfCalls(t, "GetProduct", 1)
}

func TestProductUseCase_SearchProducts_NormalizesPaging(t *testing.T) {
	tests := []struct {
		name string
		in   SearchProductsReq
		want SearchProductsReq
	}{
		{name: "defaults", in: SearchProductsReq{}, want: SearchProductsReq{Page: 1, Limit: 10}},
		{name: "cap", in: SearchProductsReq{SearchTerm: "arroz", Page: 3, Limit: 500}, want: SearchProductsReq{SearchTerm: "arroz", Page: 3, Limit: 100}},
		{name: "kept", in: SearchProductsReq{Page: 2, Limit: 25}, want: SearchProductsReq{Page: 2, Limit: 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := &mockProducts{}
			cache := &mockProductCache{}
			uc := NewProductUC(products, cache, logger.NewNopLogger())

			want := tt.want
			products.On("SearchProducts", mock.Anything, &want).
				Return(&domain.Page[domain.Product]{Page: want.Page, Limit: want.Limit}, nil)

			page, err := uc.SearchProducts(context.Background(), &tt.in)
			require.NoError(t, err)
			assert.Equal(t, want.Page, page.Page)
			cache.AssertNotCalled(t, "SetProducts", mock.Anything, mock.Anything)
		})
	}
}

func TestProductUseCase_InvalidateProducts(t *testing.T) {
	cache := &mockProductCache{}
	uc := NewProductUC(&mockProducts{}, cache, logger.NewNopLogger())

	require.NoError(t, uc.InvalidateProducts(context.Background()))
	cache.AssertNotCalled(t, "DeleteProducts", mock.Anything, mock.Anything)

	cache.On("DeleteProducts", mock.Anything, []int64{3, 4}).Return(nil).Once()
	require.NoError(t, uc.InvalidateProducts(context.Background(), 3, 4))

	cache.On("DeleteProducts", mock.Anything, []int64{5}).Return(errors.New("redis down")).Once()
	assert.Error(t, uc.InvalidateProducts(context.Background(), 5))
}
