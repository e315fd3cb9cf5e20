package domain

import (
	"testing"
	"time"

	"github.com/DRSN-tech/pos-terminal/pkg/e"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestReceptionInput_Validate(t *testing.T) {
	valid := ReceptionInput{
		ProductID:     1,
		Quantity:      3,
		PurchasePrice: decimal.RequireFromString("2.40"),
		SupplierID:    2,
		UserID:        7,
		Date:          time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, valid.Validate())

	tests := map[string]func(in *ReceptionInput){
		"no product":     func(in *ReceptionInput) { in.ProductID = 0 },
		"zero quantity":  func(in *ReceptionInput) { in.Quantity = 0 },
		"negative price": func(in *ReceptionInput) { in.PurchasePrice = decimal.NewFromInt(-1) },
		"no supplier":    func(in *ReceptionInput) { in.SupplierID = 0 },
		"no user":        func(in *ReceptionInput) { in.UserID = 0 },
		"no date":        func(in *ReceptionInput) { in.Date = time.Time{} },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			in := valid
			mutate(&in)
			assert.ErrorIs(t, in.Validate(), e.ErrInvalidReception)
		})
	}
}

func TestReceptionPatch(t *testing.T) {
	assert.ErrorIs(t, ReceptionPatch{}.Validate(), e.ErrInvalidReception)

	zero := 0
	assert.ErrorIs(t, ReceptionPatch{Quantity: &zero}.Validate(), e.ErrInvalidReception)

	negative := decimal.NewFromInt(-2)
	assert.ErrorIs(t, ReceptionPatch{PurchasePrice: &negative}.Validate(), e.ErrInvalidReception)

	quantity := 9
	price := decimal.RequireFromString("3.00")
	patch := ReceptionPatch{Quantity: &quantity, PurchasePrice: &price}
	assert.NoError(t, patch.Validate())

	r := Reception{ID: 1, ProductID: 4, Quantity: 2, SupplierID: 5}
	r.Apply(patch)
	assert.Equal(t, 9, r.Quantity)
	assert.True(t, r.PurchasePrice.Equal(price))
	assert.Equal(t, int64(4), r.ProductID)
	assert.Equal(t, int64(5), r.SupplierID)
}
