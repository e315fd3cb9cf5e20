package converter

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductRedisModel struct {
	ID          int64           `json:"id"`
	SKU         string          `json:"sku,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	UnitType    string          `json:"unit_type,omitempty"`
	CategoryID  int64           `json:"category_id,omitempty"`
	Active      bool            `json:"active"`
}

type CartLineRedisModel struct {
	Product  ProductRedisModel `json:"product"`
	Quantity int               `json:"quantity"`
}

type CustomerRedisModel struct {
	ID            int64  `json:"id"`
	DNI           string `json:"dni"`
	Name          string `json:"name"`
	FirstSurname  string `json:"first_surname"`
	SecondSurname string `json:"second_surname"`
}

type RegisterRedisModel struct {
	SessionID       string               `json:"session_id"`
	Lines           []CartLineRedisModel `json:"lines"`
	HighlightedID   int64                `json:"highlighted_id,omitempty"`
	HighlightUntil  time.Time            `json:"highlight_until"`
	Customer        *CustomerRedisModel  `json:"customer,omitempty"`
	PaymentMethod   string               `json:"payment_method"`
	OperationNumber string               `json:"operation_number"`
	DNISearch       string               `json:"dni_search"`
	UpdatedAt       time.Time            `json:"updated_at"`
}
