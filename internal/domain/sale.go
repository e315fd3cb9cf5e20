package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleCustomer - имена клиента внутри продажи.
type SaleCustomer struct {
	Name          string
	FirstSurname  string
	SecondSurname string
}

// SaleDetail - одна проданная позиция. UnitPrice берется из строки корзины,
// а не из актуального каталога.
type SaleDetail struct {
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
}

// SaleDraft - собранная, но еще не сохраненная продажа.
type SaleDraft struct {
	UserID          int64
	CustomerID      int64
	PaymentMethod   string
	OperationNumber string
	Date            time.Time
	Customer        SaleCustomer
	Details         []SaleDetail
}

// Total суммирует количество на цену по всем позициям.
func (s *SaleDraft) Total() decimal.Decimal {
	total := decimal.Zero
	for _, d := range s.Details {
		total = total.Add(d.UnitPrice.Mul(decimal.NewFromInt(int64(d.Quantity))))
	}
	return total
}

// SaleReceipt - ответ бэкенда после сохранения продажи.
type SaleReceipt struct {
	SaleID int64
	Total  decimal.Decimal
}

// Sale - сохраненная продажа из списка бэкенда.
type Sale struct {
	ID              int64
	UserID          int64
	CustomerID      int64
	PaymentMethod   string
	OperationNumber string
	Date            time.Time
	Total           decimal.Decimal
	Customer        SaleCustomer
	Details         []SaleDetail
}
