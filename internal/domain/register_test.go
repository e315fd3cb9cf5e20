package domain

import (
	"testing"
	"time"

	"github.com/DRSN-tech/pos-terminal/pkg/e"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readyRegister(t *testing.T) *Register {
	t.Helper()

	r := NewRegister("cashier-1")
	require.NoError(t, r.Cart.AddProduct(product(1, "10.00", 5)))
	require.NoError(t, r.Cart.AddProduct(product(1, "10.00", 5)))
	require.NoError(t, r.Cart.AddProduct(product(2, "5.50", 5)))
	r.SelectCustomer(&Customer{ID: 9, DNI: "12345678", Name: "Ana", FirstSurname: "Quispe"}, "12345678")
	r.PaymentMethod = "cash"
	r.OperationNumber = "OP-1"
	return r
}

func TestRegister_Validate_Order(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Register)
		wantErr error
	}{
		{name: "valid", mutate: func(*Register) {}},
		{
			name: "empty cart wins over everything",
			mutate: func(r *Register) {
				r.Cart.Clear()
				r.Customer = nil
				r.PaymentMethod = ""
				r.OperationNumber = ""
			},
			wantErr: e.ErrEmptyCart,
		},
		{
			name:    "no customer",
			mutate:  func(r *Register) { r.Customer = nil; r.PaymentMethod = "" },
			wantErr: e.ErrNoCustomer,
		},
		{
			name:    "placeholder customer",
			mutate:  func(r *Register) { r.Customer = NewPlaceholderCustomer("87654321") },
			wantErr: e.ErrNoCustomer,
		},
		{
			name:    "no payment method",
			mutate:  func(r *Register) { r.PaymentMethod = ""; r.OperationNumber = "" },
			wantErr: e.ErrNoPaymentMethod,
		},
		{
			name:    "no operation number",
			mutate:  func(r *Register) { r.OperationNumber = "" },
			wantErr: e.ErrNoOperationNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := readyRegister(t)
			tt.mutate(r)

			err := r.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegister_AssembleSale(t *testing.T) {
	r := readyRegister(t)
	now := time.Date(2024, 3, 10, 15, 4, 5, 0, time.FixedZone("PET", -5*3600))

	draft, err := r.AssembleSale(3, now)
	require.NoError(t, err)

	assert.Equal(t, int64(3), draft.UserID)
	assert.Equal(t, int64(9), draft.CustomerID)
	assert.Equal(t, "cash", draft.PaymentMethod)
	assert.Equal(t, "OP-1", draft.OperationNumber)
	assert.Equal(t, time.UTC, draft.Date.Location())
	assert.True(t, now.Equal(draft.Date))
	assert.Equal(t, SaleCustomer{Name: "Ana", FirstSurname: "Quispe"}, draft.Customer)

	require.Len(t, draft.Details, len(r.Cart.Lines))
	for i, l := range r.Cart.Lines {
		assert.Equal(t, l.Product.ID, draft.Details[i].ProductID)
		assert.Equal(t, l.Quantity, draft.Details[i].Quantity)
		assert.True(t, l.Product.Price.Equal(draft.Details[i].UnitPrice))
	}
	assert.True(t, decimal.RequireFromString("25.50").Equal(draft.Total()))
}

func TestRegister_AssembleSale_EmptyRegister(t *testing.T) {
	r := NewRegister("s")

	draft, err := r.AssembleSale(1, time.Now())
	assert.Nil(t, draft)
	assert.ErrorIs(t, err, e.ErrEmptyCart)
}

func TestRegister_Reset(t *testing.T) {
	r := readyRegister(t)

	r.Reset()

	assert.True(t, r.Cart.IsEmpty())
	assert.Nil(t, r.Customer)
	assert.Empty(t, r.DNISearch)
	assert.Equal(t, "cash", r.PaymentMethod)
	assert.Equal(t, "OP-1", r.OperationNumber)
}

func TestRegister_EditCustomerNames(t *testing.T) {
	r := NewRegister("s")
	assert.ErrorIs(t, r.EditCustomerNames("a", "b", "c"), e.ErrNoCustomer)

	r.SelectCustomer(NewPlaceholderCustomer("11112222"), "11112222")
	require.NoError(t, r.EditCustomerNames("Luis", "Rojas", ""))
	assert.True(t, r.Customer.HasRequiredNames())
	assert.Equal(t, "11112222", r.Customer.DNI)

	r.Customer.ID = 5
	assert.ErrorIs(t, r.EditCustomerNames("x", "y", "z"), e.ErrCustomerReadOnly)
	assert.Equal(t, "Luis", r.Customer.Name)
}

func TestValidDNI(t *testing.T) {
	assert.True(t, ValidDNI("01234567"))
	assert.False(t, ValidDNI("1234567"))
	assert.False(t, ValidDNI("123456789"))
	assert.False(t, ValidDNI("1234567a"))
	assert.False(t, ValidDNI(""))
}
