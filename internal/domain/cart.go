package domain

import (
	"time"

	"github.com/DRSN-tech/pos-terminal/pkg/e"
	"github.com/shopspring/decimal"
)

// CartLine - снимок товара и количество не меньше 1.
type CartLine struct {
	Product  Product
	Quantity int
}

// Subtotal - количество, умноженное на цену, зафиксированную при создании строки.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart хранит не больше одной строки на товар в порядке добавления.
type Cart struct {
	Lines []CartLine

	// Последняя строка, затронутая AddProduct, для временной подсветки в UI
	HighlightedID  int64
	HighlightUntil time.Time
}

// AddProduct добавляет одну единицу p. Существующая строка увеличивается,
// иначе добавляется новая с количеством 1. Товар без остатка корзину не меняет.
func (c *Cart) AddProduct(p Product) error {
	if !p.InStock() {
		return e.ErrOutOfStock
	}

	if i := c.indexOf(p.ID); i != -1 {
		c.Lines[i].Quantity++
		return nil
	}

	c.Lines = append(c.Lines, CartLine{Product: p, Quantity: 1})
	return nil
}

// UpdateQuantity заменяет количество в строке. Отрицательные значения
// приводятся к нулю, нулевое количество удаляет строку. Остаток здесь не проверяется.
func (c *Cart) UpdateQuantity(productID int64, quantity int) {
	quantity = max(0, quantity)
	if quantity == 0 {
		c.RemoveProduct(productID)
		return
	}

	if i := c.indexOf(productID); i != -1 {
		c.Lines[i].Quantity = quantity
	}
}

// RemoveProduct удаляет строку productID. Отсутствующие id игнорируются.
func (c *Cart) RemoveProduct(productID int64) {
	i := c.indexOf(productID)
	if i == -1 {
		return
	}

	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	if c.HighlightedID == productID {
		c.clearHighlight()
	}
}

func (c *Cart) Clear() {
	c.Lines = nil
	c.clearHighlight()
}

// Total считается по текущим строкам при каждом вызове.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Line возвращает строку productID, если она есть.
func (c *Cart) Line(productID int64) (CartLine, bool) {
	if i := c.indexOf(productID); i != -1 {
		return c.Lines[i], true
	}
	return CartLine{}, false
}

// Highlight подсвечивает productID до момента until.
func (c *Cart) Highlight(productID int64, until time.Time) {
	c.HighlightedID = productID
	c.HighlightUntil = until
}

// HighlightedProduct возвращает подсвеченный товар, пока подсветка не истекла.
func (c *Cart) HighlightedProduct(now time.Time) (int64, bool) {
	if c.HighlightedID == 0 || !now.Before(c.HighlightUntil) {
		return 0, false
	}
	return c.HighlightedID, true
}

func (c *Cart) clearHighlight() {
	c.HighlightedID = 0
	c.HighlightUntil = time.Time{}
}

func (c *Cart) indexOf(productID int64) int {
	for i, l := range c.Lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}
