package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/pos-terminal/internal/domain"
	"github.com/DRSN-tech/pos-terminal/pkg/e"
	"github.com/DRSN-tech/pos-terminal/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var receptionDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func reception(id, productID int64, quantity int) domain.Reception {
	return domain.Reception{
		ID:            id,
		ProductID:     productID,
		Quantity:      quantity,
		PurchasePrice: decimal.RequireFromString("2.50"),
		SupplierID:    3,
		UserID:        7,
		Date:          receptionDate,
		ProductName:   "Arroz",
	}
}

func receptionPage(items ...domain.Reception) *domain.Page[domain.Reception] {
	return &domain.Page[domain.Reception]{Items: items, Page: 1, Limit: 10, Total: len(items), TotalPages: 1}
}

func firstPage(term string) *ListReceptionsReq {
	return &ListReceptionsReq{SearchTerm: term, Page: 1, Limit: 10}
}

func seededReceptions(t *testing.T) (*ReceptionUseCase, *mockReceptions, *mockInvalidator) {
	t.Helper()

	svc := &mockReceptions{}
	inv := &mockInvalidator{}
	svc.On("ListReceptions", mock.Anything, firstPage("")).
		Return(receptionPage(reception(1, 10, 5), reception(2, 11, 8)), nil).Once()

	uc := NewReceptionUC(svc, inv, logger.NewNopLogger())
	_, err := uc.List(context.Background(), &ListReceptionsReq{})
	require.NoError(t, err)
	return uc, svc, inv
}

func TestReceptionUseCase_List_ServesLocalPage(t *testing.T) {
	uc, svc, _ := seededReceptions(t)

	page, err := uc.List(context.Background(), &ListReceptionsReq{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	svc.AssertNumberOfCalls(t, "ListReceptions", 1)

	svc.On("ListReceptions", mock.Anything, firstPage("arroz")).Return(receptionPage(reception(1, 10, 5)), nil).Once()
	page, err = uc.List(context.Background(), &ListReceptionsReq{SearchTerm: " arroz "})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)

	svc.On("ListReceptions", mock.Anything, firstPage("arroz")).Return(receptionPage(), nil).Once()
	page, err = uc.List(context.Background(), &ListReceptionsReq{SearchTerm: "arroz", Refresh: true})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	svc.AssertExpectations(t)
}

func TestReceptionUseCase_List_Error(t *testing.T) {
	svc := &mockReceptions{}
	svc.On("ListReceptions", mock.Anything, mock.Anything).Return(nil, e.ErrBackendUnavailable)
	uc := NewReceptionUC(svc, &mockInvalidator{}, logger.NewNopLogger())

	_, err := uc.List(context.Background(), &ListReceptionsReq{})
	assert.ErrorIs(t, err, e.ErrBackendUnavailable)
}

func TestReceptionUseCase_Create_ReloadsPageAndForgetsProduct(t *testing.T) {
	uc, svc, inv := seededReceptions(t)
	cashier := domain.Identity{UserID: 7, Role: "cashier"}

	in := &domain.ReceptionInput{
		ProductID:     12,
		Quantity:      4,
		PurchasePrice: decimal.RequireFromString("1.10"),
		SupplierID:    3,
		UserID:        99,
		Date:          receptionDate,
	}
	created := reception(3, 12, 4)
	svc.On("CreateReception", mock.Anything, mock.MatchedBy(func(got *domain.ReceptionInput) bool {
		return got.UserID == 7 && got.ProductID == 12
	})).Return(&created, nil)
	svc.On("ListReceptions", mock.Anything, firstPage("")).
		Return(receptionPage(reception(3, 12, 4), reception(1, 10, 5), reception(2, 11, 8)), nil).Once()
	inv.On("InvalidateProducts", mock.Anything, []int64{12}).Return(nil)

	got, err := uc.Create(context.Background(), cashier, in)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
	assert.Equal(t, int64(99), in.UserID)

	assert.Len(t, uc.Snapshot(), 3)
	svc.AssertExpectations(t)
	inv.AssertExpectations(t)
}

func TestReceptionUseCase_Create_ReloadFailureIsNotFatal(t *testing.T) {
	uc, svc, inv := seededReceptions(t)

	created := reception(3, 12, 4)
	svc.On("CreateReception", mock.Anything, mock.Anything).Return(&created, nil)
	svc.On("ListReceptions", mock.Anything, mock.Anything).Return(nil, e.ErrBackendUnavailable).Once()
	inv.On("InvalidateProducts", mock.Anything, mock.Anything).Return(errors.New("redis down"))

	got, err := uc.Create(context.Background(), domain.Identity{UserID: 7}, &domain.ReceptionInput{
		ProductID: 12, Quantity: 4, SupplierID: 3, Date: receptionDate,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
	assert.Len(t, uc.Snapshot(), 2)
}

func TestReceptionUseCase_Create_Invalid(t *testing.T) {
	uc, svc, _ := seededReceptions(t)

	_, err := uc.Create(context.Background(), domain.Identity{UserID: 7}, &domain.ReceptionInput{
		ProductID: 12, Quantity: 0, SupplierID: 3, Date: receptionDate,
	})
	assert.ErrorIs(t, err, e.ErrInvalidReception)
	svc.AssertNotCalled(t, "CreateReception", mock.Anything, mock.Anything)
}

func TestReceptionUseCase_Update_ReplacesWithServerRecord(t *testing.T) {
	uc, svc, inv := seededReceptions(t)

	quantity := 6
	product := int64(15)
	patch := &domain.ReceptionPatch{Quantity: &quantity, ProductID: &product}

	server := reception(2, 15, 6)
	server.ProductName = "Azucar"
	svc.On("UpdateReception", mock.Anything, int64(2), patch).Return(&server, nil)
	inv.On("InvalidateProducts", mock.Anything, []int64{15, 11}).Return(nil)

	got, err := uc.Update(context.Background(), 2, patch)
	require.NoError(t, err)
	assert.Equal(t, "Azucar", got.ProductName)

	snap := uc.Snapshot()
	assert.Equal(t, "Azucar", snap[1].ProductName)
	assert.Equal(t, 6, snap[1].Quantity)
	inv.AssertExpectations(t)
}

func TestReceptionUseCase_Update_RollsBackOnlyThatRecord(t *testing.T) {
	uc, svc, inv := seededReceptions(t)

	started := make(chan struct{})
	release := make(chan struct{})
	quantity := 50
	patch := &domain.ReceptionPatch{Quantity: &quantity}
	svc.On("UpdateReception", mock.Anything, int64(1), patch).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(nil, e.ErrReceptionNotFound)

	done := make(chan error, 1)
	go func() {
		_, err := uc.Update(context.Background(), 1, patch)
		done <- err
	}()

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("update did not reach the backend")
	}
	assert.Equal(t, 50, uc.Snapshot()[0].Quantity)

	other := reception(2, 11, 9)
	svc.On("UpdateReception", mock.Anything, int64(2), mock.Anything).Return(&other, nil)
	inv.On("InvalidateProducts", mock.Anything, []int64{11}).Return(nil)
	nine := 9
	_, err := uc.Update(context.Background(), 2, &domain.ReceptionPatch{Quantity: &nine})
	require.NoError(t, err)
	close(release)
	assert.ErrorIs(t, <-done, e.ErrReceptionNotFound)

	snap := uc.Snapshot()
	assert.Equal(t, 5, snap[0].Quantity)
	assert.Equal(t, 9, snap[1].Quantity)
}

func TestReceptionUseCase_Update_Invalid(t *testing.T) {
	uc, svc, _ := seededReceptions(t)

	_, err := uc.Update(context.Background(), 1, &domain.ReceptionPatch{})
	assert.ErrorIs(t, err, e.ErrInvalidReception)
	svc.AssertNotCalled(t, "UpdateReception", mock.Anything, mock.Anything, mock.Anything)
}
