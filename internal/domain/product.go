package domain

import "github.com/shopspring/decimal"

// Product - товар каталога глазами кассы. Им владеет бэкенд склада,
// локально он не изменяется.
type Product struct {
	ID          int64
	SKU         string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	UnitType    string
	CategoryID  int64
	Active      bool
}

func NewProduct(id int64, name string, price decimal.Decimal, stock int) *Product {
	return &Product{
		ID:     id,
		Name:   name,
		Price:  price,
		Stock:  stock,
		Active: true,
	}
}

// InStock сообщает, можно ли добавить товар в корзину.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// Page - одна страница постраничного списка бэкенда.
type Page[T any] struct {
	Items      []T
	Page       int
	Limit      int
	Total      int
	TotalPages int
}
