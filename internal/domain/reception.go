package domain

import (
	"time"

	"github.com/DRSN-tech/pos-terminal/pkg/e"
	"github.com/shopspring/decimal"
)

// Reception - приход товара на склад. Увеличивает остаток продукта,
// по которому касса проверяет наличие.
type Reception struct {
	ID            int64
	ProductID     int64
	Quantity      int
	PurchasePrice decimal.Decimal
	SupplierID    int64
	UserID        int64
	Date          time.Time

	// Заполняются бэкендом
	ProductName  string
	Price        decimal.Decimal
	SupplierName string
	UserName     string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// ReceptionInput - поля новой приёмки.
type ReceptionInput struct {
	ProductID     int64
	Quantity      int
	PurchasePrice decimal.Decimal
	SupplierID    int64
	UserID        int64
	Date          time.Time
}

func (in ReceptionInput) Validate() error {
	switch {
	case in.ProductID <= 0:
		return e.Wrap("product is required", e.ErrInvalidReception)
	case in.SupplierID <= 0:
		return e.Wrap("supplier is required", e.ErrInvalidReception)
	case in.UserID <= 0:
		return e.Wrap("user is required", e.ErrInvalidReception)
	case in.Date.IsZero():
		return e.Wrap("date is required", e.ErrInvalidReception)
	}
	return validateAmounts(in.Quantity, in.PurchasePrice)
}

// ReceptionPatch - частичное изменение приёмки, nil поля не меняются.
type ReceptionPatch struct {
	ProductID     *int64
	Quantity      *int
	PurchasePrice *decimal.Decimal
	SupplierID    *int64
	Date          *time.Time
}

func (p ReceptionPatch) Validate() error {
	if p.ProductID == nil && p.Quantity == nil && p.PurchasePrice == nil && p.SupplierID == nil && p.Date == nil {
		return e.Wrap("nothing to update", e.ErrInvalidReception)
	}
	if p.ProductID != nil && *p.ProductID <= 0 {
		return e.Wrap("product is required", e.ErrInvalidReception)
	}
	if p.SupplierID != nil && *p.SupplierID <= 0 {
		return e.Wrap("supplier is required", e.ErrInvalidReception)
	}
	if p.Date != nil && p.Date.IsZero() {
		return e.Wrap("date is required", e.ErrInvalidReception)
	}
	if p.Quantity != nil {
		if err := validateAmounts(*p.Quantity, decimal.Zero); err != nil {
			return err
		}
	}
	if p.PurchasePrice != nil {
		if err := validateAmounts(1, *p.PurchasePrice); err != nil {
			return err
		}
	}
	return nil
}

// Apply накладывает изменения на приёмку до ответа бэкенда.
func (r *Reception) Apply(p ReceptionPatch) {
	if p.ProductID != nil {
		r.ProductID = *p.ProductID
	}
	if p.Quantity != nil {
		r.Quantity = *p.Quantity
	}
	if p.PurchasePrice != nil {
		r.PurchasePrice = *p.PurchasePrice
	}
	if p.SupplierID != nil {
		r.SupplierID = *p.SupplierID
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
}

func validateAmounts(quantity int, price decimal.Decimal) error {
	if quantity <= 0 {
		return e.Wrap("quantity must be positive", e.ErrInvalidReception)
	}
	if price.IsNegative() {
		return e.Wrap("purchase price must not be negative", e.ErrInvalidReception)
	}
	return nil
}
