package usecase

import (
	"context"
	"encoding/json"
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

var (
	cashier  = domain.Identity{UserID: 7, Role: "cashier"}
	fixedNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
)

type registerFixture struct {
	uc        *RegisterUseCase
	sessions  *memSessions
	catalog   *mockCatalog
	customers *mockCustomers
	sales     *mockSales
	journal   *mockJournal
	outbox    *mockOutbox
	archiver  *recordingArchiver
}

func newRegisterFixture(t *testing.T) *registerFixture {
	t.Helper()

	f := &registerFixture{
		sessions:  newMemSessions(),
		catalog:   &mockCatalog{},
		customers: &mockCustomers{},
		sales:     &mockSales{},
		journal:   &mockJournal{},
		outbox:    &mockOutbox{},
		archiver:  &recordingArchiver{},
	}
	f.uc = NewRegisterUC(
		f.sessions,
		f.catalog,
		f.customers,
		f.sales,
		f.journal,
		f.outbox,
		inlineTx{},
		f.archiver,
		RegisterSettings{
			HighlightDuration: 1500 * time.Millisecond,
			SubmitTimeout:     time.Second,
			ArchiveReceipts:   true,
		},
		logger.NewNopLogger(),
	)
	f.uc.now = func() time.Time { return fixedNow }
	return f
}

func catalogProduct(id int64, price string, stock int) *domain.Product {
	return domain.NewProduct(id, "p", decimal.RequireFromString(price), stock)
}

// readyForSale сохраняет кассу с A x2 по 10.00, B x1 по 5.50,
// зарегистрированным клиентом, оплатой наличными и операцией OP-1.
func (f *registerFixture) readyForSale(t *testing.T) {
	t.Helper()

	reg := domain.NewRegister(SessionID(cashier))
	require.NoError(t, reg.Cart.AddProduct(*catalogProduct(1, "10.00", 5)))
	require.NoError(t, reg.Cart.AddProduct(*catalogProduct(1, "10.00", 5)))
	require.NoError(t, reg.Cart.AddProduct(*catalogProduct(2, "5.50", 5)))
	reg.SelectCustomer(&domain.Customer{ID: 11, DNI: "12345678", Name: "Ana", FirstSurname: "Quispe"}, "12345678")
	reg.PaymentMethod = "cash"
	reg.OperationNumber = "OP-1"
	require.NoError(t, f.sessions.Save(context.Background(), reg))
}

func TestRegister_GetRegister_NewSessionIsEmpty(t *testing.T) {
	f := newRegisterFixture(t)

	view, err := f.uc.GetRegister(context.Background(), cashier)
	require.NoError(t, err)

	assert.Equal(t, "user:7", view.Register.SessionID)
	assert.True(t, view.Register.Cart.IsEmpty())
	assert.True(t, view.Total.IsZero())
}

func TestRegister_AddProduct(t *testing.T) {
	f := newRegisterFixture(t)
	ctx := context.Background()
	f.catalog.On("GetProduct", mock.Anything, int64(1)).Return(catalogProduct(1, "10.00", 3), nil)

	_, err := f.uc.AddProduct(ctx, cashier, 1)
	require.NoError(t, err)
	view, err := f.uc.AddProduct(ctx, cashier, 1)
	require.NoError(t, err)

	require.Len(t, view.Register.Cart.Lines, 1)
	assert.Equal(t, 2, view.Register.Cart.Lines[0].Quantity)
	assert.Equal(t, "20", view.Total.String())
	assert.Equal(t, int64(1), view.HighlightedID)

	stored := f.sessions.stored("user:7")
	assert.Equal(t, 2, stored.Cart.Lines[0].Quantity)
}

func TestRegister_AddProduct_OutOfStockKeepsCart(t *testing.T) {
	f := newRegisterFixture(t)
	ctx := context.Background()
	f.catalog.On("GetProduct", mock.Anything, int64(1)).Return(catalogProduct(1, "10.00", 3), nil)
	f.catalog.On("GetProduct", mock.Anything, int64(2)).Return(catalogProduct(2, "4.00", 0), nil)

	_, err := f.uc.AddProduct(ctx, cashier, 1)
	require.NoError(t, err)
	savesBefore := f.sessions.saves

	_, err = f.uc.AddProduct(ctx, cashier, 2)
	assert.ErrorIs(t, err, e.ErrOutOfStock)
	assert.Equal(t, savesBefore, f.sessions.saves)
	assert.Len(t, f.sessions.stored("user:7").Cart.Lines, 1)
}

func TestRegister_AddProduct_LookupFailure(t *testing.T) {
	f := newRegisterFixture(t)
	f.catalog.On("GetProduct", mock.Anything, int64(9)).Return(nil, e.ErrProductNotFound)

	_, err := f.uc.AddProduct(context.Background(), cashier, 9)
	assert.ErrorIs(t, err, e.ErrProductNotFound)
	assert.Nil(t, f.sessions.stored("user:7"))
}

func TestRegister_UpdateQuantityAndRemove(t *testing.T) {
	f := newRegisterFixture(t)
	f.readyForSale(t)
	ctx := context.Background()

	view, err := f.uc.UpdateQuantity(ctx, cashier, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, "42", view.Total.String())

	view, err = f.uc.UpdateQuantity(ctx, cashier, 2, 0)
	require.NoError(t, err)
	assert.Len(t, view.Register.Cart.Lines, 1)

	view, err = f.uc.RemoveProduct(ctx, cashier, 99)
	require.NoError(t, err)
	assert.Len(t, view.Register.Cart.Lines, 1)

	view, err = f.uc.ClearCart(ctx, cashier)
	require.NoError(t, err)
	assert.True(t, view.Register.Cart.IsEmpty())
	assert.Equal(t, int64(11), view.Register.Customer.ID)
}

func TestRegister_SearchCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid dni", func(t *testing.T) {
		f := newRegisterFixture(t)

		_, err := f.uc.SearchCustomer(ctx, cashier, "1234")
		assert.ErrorIs(t, err, e.ErrInvalidDNI)
		f.customers.AssertNotCalled(t, "SearchByDNI", mock.Anything, mock.Anything)
	})

	t.Run("found", func(t *testing.T) {
		f := newRegisterFixture(t)
		f.customers.On("SearchByDNI", mock.Anything, "12345678").
			Return(&domain.Customer{ID: 3, DNI: "12345678", Name: "Rosa"}, nil)

		res, err := f.uc.SearchCustomer(ctx, cashier, "12345678")
		require.NoError(t, err)
		assert.True(t, res.Found)
		assert.Equal(t, int64(3), res.View.Register.Customer.ID)
		assert.Equal(t, "12345678", res.View.Register.DNISearch)
	})

	t.Run("not found selects placeholder", func(t *testing.T) {
		f := newRegisterFixture(t)
		f.customers.On("SearchByDNI", mock.Anything, "87654321").Return(nil, e.ErrCustomerNotFound)

		res, err := f.uc.SearchCustomer(ctx, cashier, "87654321")
		require.NoError(t, err)
		assert.False(t, res.Found)
		require.NotNil(t, res.View.Register.Customer)
		assert.Equal(t, int64(0), res.View.Register.Customer.ID)
		assert.Equal(t, "87654321", res.View.Register.Customer.DNI)
	})

	t.Run("backend failure", func(t *testing.T) {
		f := newRegisterFixture(t)
		f.customers.On("SearchByDNI", mock.Anything, "87654321").Return(nil, e.ErrBackendUnavailable)

		_, err := f.uc.SearchCustomer(ctx, cashier, "87654321")
		assert.ErrorIs(t, err, e.ErrBackendUnavailable)
	})
}

func TestRegister_SaveCustomer(t *testing.T) {
	ctx := context.Background()
	f := newRegisterFixture(t)
	f.customers.On("SearchByDNI", mock.Anything, "87654321").Return(nil, e.ErrCustomerNotFound)

	_, err := f.uc.SearchCustomer(ctx, cashier, "87654321")
	require.NoError(t, err)

	_, err = f.uc.SaveCustomer(ctx, cashier)
	assert.ErrorIs(t, err, e.ErrCustomerIncomplete)
	f.customers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	_, err = f.uc.EditCustomer(ctx, cashier, &EditCustomerReq{Name: " Luis ", FirstSurname: "Rojas"})
	require.NoError(t, err)

	f.customers.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Customer) bool {
		return c.DNI == "87654321" && c.Name == "Luis" && c.FirstSurname == "Rojas"
	})).Return(&domain.Customer{ID: 40, DNI: "87654321", Name: "Luis", FirstSurname: "Rojas"}, nil)

	view, err := f.uc.SaveCustomer(ctx, cashier)
	require.NoError(t, err)
	assert.Equal(t, int64(40), view.Register.Customer.ID)

	_, err = f.uc.EditCustomer(ctx, cashier, &EditCustomerReq{Name: "X", FirstSurname: "Y"})
	assert.ErrorIs(t, err, e.ErrCustomerReadOnly)
}

func TestRegister_SubmitSale_Success(t *testing.T) {
	f := newRegisterFixture(t)
	f.readyForSale(t)
	ctx := context.Background()

	var sent *domain.SaleDraft
	f.sales.On("CreateSale", mock.Anything, mock.Anything, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { sent = args.Get(1).(*domain.SaleDraft) }).
		Return(&domain.SaleReceipt{SaleID: 501, Total: decimal.RequireFromString("25.50")}, nil)
	f.journal.On("Create", mock.Anything, mock.Anything).Return(&JournaledSale{ID: 1}, nil)
	f.outbox.On("Create", mock.Anything, mock.Anything).Return(&OutboxEvent{ID: 1}, nil)

	res, err := f.uc.SubmitSale(ctx, cashier)
	require.NoError(t, err)

	require.NotNil(t, sent)
	assert.Equal(t, int64(7), sent.UserID)
	assert.Equal(t, int64(11), sent.CustomerID)
	assert.Equal(t, fixedNow, sent.Date)
	require.Len(t, sent.Details, 2)
	assert.Equal(t, "10", sent.Details[0].UnitPrice.String())
	assert.Equal(t, 2, sent.Details[0].Quantity)
	assert.Equal(t, "5.5", sent.Details[1].UnitPrice.String())

	assert.Equal(t, int64(501), res.Receipt.SaleID)
	stored := f.sessions.stored("user:7")
	assert.True(t, stored.Cart.IsEmpty())
	assert.Nil(t, stored.Customer)
	assert.Empty(t, stored.DNISearch)
	assert.Equal(t, "cash", stored.PaymentMethod)

	f.journal.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(j *JournaledSale) bool {
		return j.SaleID == 501 && j.Lines == 2 && j.Total.Equal(decimal.RequireFromString("25.50"))
	}))
	f.outbox.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(ev *OutboxEvent) bool {
		var payload SaleRegisteredEvent
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			return false
		}
		return ev.EventType == SaleRegistered && ev.AggregateID == 501 && payload.SaleID == 501 && len(payload.Details) == 2
	}))
	assert.Equal(t, 1, f.archiver.count())
}

func TestRegister_SubmitSale_UsesPriceCapturedInCart(t *testing.T) {
	f := newRegisterFixture(t)
	f.readyForSale(t)

	// Изменение цены в каталоге после добавления товара не должно попасть в продажу
	f.catalog.On("GetProduct", mock.Anything, int64(1)).Return(catalogProduct(1, "99.00", 5), nil).Maybe()

	f.sales.On("CreateSale", mock.Anything, mock.MatchedBy(func(s *domain.SaleDraft) bool {
		return s.Details[0].UnitPrice.Equal(decimal.RequireFromString("10.00"))
	}), mock.Anything).Return(&domain.SaleReceipt{SaleID: 1}, nil)
	f.journal.On("Create", mock.Anything, mock.Anything).Return(&JournaledSale{}, nil)
	f.outbox.On("Create", mock.Anything, mock.Anything).Return(&OutboxEvent{}, nil)

	res, err := f.uc.SubmitSale(context.Background(), cashier)
	require.NoError(t, err)
	assert.Equal(t, "25.50", res.Receipt.Total.StringFixed(2))
}

func TestRegister_SubmitSale_FailureLeavesRegister(t *testing.T) {
	f := newRegisterFixture(t)
	f.readyForSale(t)
	before := f.sessions.stored("user:7")

	f.sales.On("CreateSale", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("status 500"))

	_, err := f.uc.SubmitSale(context.Background(), cashier)
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrSubmissionFailed)
	assert.Contains(t, err.Error(), "status 500")

	assert.Equal(t, before, f.sessions.stored("user:7"))
	f.journal.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Equal(t, 0, f.archiver.count())

	// Блокировка снята, кассир может повторить
	ok, err := f.sessions.AcquireSubmitLock(context.Background(), "user:7", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegister_SubmitSale_ValidationSkipsBackend(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *domain.Register)
		wantErr error
	}{
		{
			name: "empty cart regardless of other fields",
			mutate: func(r *domain.Register) {
				r.Cart.Clear()
				r.Customer = nil
				r.PaymentMethod = ""
			},
			wantErr: e.ErrEmptyCart,
		},
		{name: "placeholder customer", mutate: func(r *domain.Register) { r.Customer.ID = 0 }, wantErr: e.ErrNoCustomer},
		{name: "no payment", mutate: func(r *domain.Register) { r.PaymentMethod = "" }, wantErr: e.ErrNoPaymentMethod},
		{name: "no operation", mutate: func(r *domain.Register) { r.OperationNumber = "" }, wantErr: e.ErrNoOperationNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRegisterFixture(t)
			f.readyForSale(t)
			reg := f.sessions.stored("user:7")
			tt.mutate(reg)
			require.NoError(t, f.sessions.Save(context.Background(), reg))

			_, err := f.uc.SubmitSale(context.Background(), cashier)
			assert.ErrorIs(t, err, tt.wantErr)
			f.sales.AssertNotCalled(t, "CreateSale", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRegister_SubmitSale_InProgress(t *testing.T) {
	f := newRegisterFixture(t)
	f.readyForSale(t)
	f.sessions.lockBusy = true

	_, err := f.uc.SubmitSale(context.Background(), cashier)
	assert.ErrorIs(t, err, e.ErrSubmissionInProgress)
	f.sales.AssertNotCalled(t, "CreateSale", mock.Anything, mock.Anything, mock.Anything)
	assert.False(t, f.sessions.stored("user:7").Cart.IsEmpty())
}

func TestRegister_SubmitSale_JournalFailureIsNotFatal(t *testing.T) {
	f := newRegisterFixture(t)
	f.readyForSale(t)

	f.sales.On("CreateSale", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.SaleReceipt{SaleID: 9, Total: decimal.NewFromInt(1)}, nil)
	f.journal.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	res, err := f.uc.SubmitSale(context.Background(), cashier)
	require.NoError(t, err)
	assert.Equal(t, int64(9), res.Receipt.SaleID)
	assert.True(t, f.sessions.stored("user:7").Cart.IsEmpty())
	f.outbox.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Equal(t, 1, f.archiver.count())
}

func TestRegister_ListSales_NormalizesPaging(t *testing.T) {
	f := newRegisterFixture(t)
	page := &domain.Page[domain.Sale]{Page: 1, Limit: 10}
	f.sales.On("ListSales", mock.Anything, &ListSalesReq{Page: 1, Limit: 10}).Return(page, nil)

	res, err := f.uc.ListSales(context.Background(), &ListSalesReq{Page: 0, Limit: -1})
	require.NoError(t, err)
	assert.Same(t, page, res)
}
