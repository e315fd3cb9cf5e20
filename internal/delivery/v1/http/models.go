package http

import (
	"time"

	"github.com/DRSN-tech/pos-terminal/internal/domain"
	"github.com/DRSN-tech/pos-terminal/internal/usecase"
	"github.com/shopspring/decimal"
)

// REQUESTS

type AddItemRequest struct {
	ProductID int64 `json:"id_product" validate:"required,gt=0"`
}

// UpdateQuantityRequest принимает отрицательные значения, они приводятся к нулю.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type SearchCustomerRequest struct {
	DNI string `json:"dni" validate:"required"`
}

type EditCustomerRequest struct {
	Name          string `json:"name" validate:"max=100"`
	FirstSurname  string `json:"first_surname" validate:"max=100"`
	SecondSurname string `json:"second_surname" validate:"max=100"`
}

type SetPaymentRequest struct {
	PaymentMethod   string `json:"payment_method" validate:"max=50"`
	OperationNumber string `json:"operation_number" validate:"max=100"`
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// ReceptionRequest - новая приёмка. id_user берётся из токена.
type ReceptionRequest struct {
	ProductID     int64            `json:"id_product" validate:"required,gt=0"`
	Quantity      int              `json:"quantity" validate:"required,gt=0"`
	PurchasePrice *decimal.Decimal `json:"purchase_price" validate:"required" swaggertype:"number"`
	SupplierID    int64            `json:"id_supplier" validate:"required,gt=0"`
	Date          string           `json:"date" validate:"required,datetime=2006-01-02"`
}

// UpdateReceptionRequest - частичное изменение, пропущенные поля не меняются.
type UpdateReceptionRequest struct {
	ProductID     *int64           `json:"id_product" validate:"omitempty,gt=0"`
	Quantity      *int             `json:"quantity" validate:"omitempty,gt=0"`
	PurchasePrice *decimal.Decimal `json:"purchase_price" swaggertype:"number"`
	SupplierID    *int64           `json:"id_supplier" validate:"omitempty,gt=0"`
	Date          *string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// RESPONSES

type ProductResponse struct {
	ID          int64           `json:"id_product"`
	SKU         string          `json:"sku,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price" swaggertype:"string"`
	Stock       int             `json:"stock"`
	UnitType    string          `json:"unit_type,omitempty"`
	CategoryID  int64           `json:"id_category,omitempty"`
}

type CartLineResponse struct {
	Product  ProductResponse `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal" swaggertype:"string"`
}

type CustomerResponse struct {
	ID            int64  `json:"id_customer"`
	DNI           string `json:"dni"`
	Name          string `json:"name"`
	FirstSurname  string `json:"first_surname"`
	SecondSurname string `json:"second_surname"`
	Registered    bool   `json:"registered"`
}

type RegisterResponse struct {
	Lines           []CartLineResponse `json:"lines"`
	Total           decimal.Decimal    `json:"total" swaggertype:"string"`
	HighlightedID   int64              `json:"highlighted_product,omitempty"`
	Customer        *CustomerResponse  `json:"customer"`
	DNISearch       string             `json:"dni_search"`
	PaymentMethod   string             `json:"payment_method"`
	OperationNumber string             `json:"operation_number"`
}

type CustomerSearchResponse struct {
	Found    bool              `json:"found"`
	Register *RegisterResponse `json:"register"`
}

type SaleDetailResponse struct {
	ProductID int64           `json:"id_product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" swaggertype:"string"`
}

type SaleCustomerResponse struct {
	Name          string `json:"name"`
	FirstSurname  string `json:"first_surname"`
	SecondSurname string `json:"second_surname"`
}

type SaleResponse struct {
	ID              int64                `json:"id_sale,omitempty"`
	UserID          int64                `json:"id_user"`
	CustomerID      int64                `json:"id_customer"`
	PaymentMethod   string               `json:"payment_method"`
	OperationNumber string               `json:"operation_number"`
	Date            time.Time            `json:"date"`
	Total           decimal.Decimal      `json:"total" swaggertype:"string"`
	Customer        SaleCustomerResponse `json:"customer"`
	Details         []SaleDetailResponse `json:"details"`
}

type SubmitSaleResponse struct {
	SaleID   int64             `json:"id_sale"`
	Total    decimal.Decimal   `json:"total" swaggertype:"string"`
	Sale     SaleResponse      `json:"sale"`
	Register *RegisterResponse `json:"register"`
}

type CategoryResponse struct {
	ID        int64      `json:"id_category"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type ReceptionResponse struct {
	ID            int64           `json:"id_reception"`
	ProductID     int64           `json:"id_product"`
	Quantity      int             `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price" swaggertype:"string"`
	SupplierID    int64           `json:"id_supplier"`
	UserID        int64           `json:"id_user"`
	Date          string          `json:"date"`
	ProductName   string          `json:"product_name,omitempty"`
	Price         decimal.Decimal `json:"price" swaggertype:"string"`
	SupplierName  string          `json:"supplier_name,omitempty"`
	UserName      string          `json:"user_name,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     *time.Time      `json:"updatedAt,omitempty"`
}

// PageResponse повторяет формат пагинации бэкенда склада.
type PageResponse[T any] struct {
	Limit      int `json:"limit"`
	Page       int `json:"page"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
	Data       []T `json:"data"`
}

// MAPPERS

func toProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		UnitType:    p.UnitType,
		CategoryID:  p.CategoryID,
	}
}

func toRegisterResponse(v *usecase.RegisterView) *RegisterResponse {
	r := v.Register
	lines := make([]CartLineResponse, 0, len(r.Cart.Lines))
	for _, l := range r.Cart.Lines {
		lines = append(lines, CartLineResponse{
			Product:  toProductResponse(l.Product),
			Quantity: l.Quantity,
			Subtotal: l.Subtotal(),
		})
	}

	res := &RegisterResponse{
		Lines:           lines,
		Total:           v.Total,
		HighlightedID:   v.HighlightedID,
		DNISearch:       r.DNISearch,
		PaymentMethod:   r.PaymentMethod,
		OperationNumber: r.OperationNumber,
	}
	if c := r.Customer; c != nil {
		res.Customer = &CustomerResponse{
			ID:            c.ID,
			DNI:           c.DNI,
			Name:          c.Name,
			FirstSurname:  c.FirstSurname,
			SecondSurname: c.SecondSurname,
			Registered:    c.IsPersisted(),
		}
	}
	return res
}

func toSaleDetailsResponse(details []domain.SaleDetail) []SaleDetailResponse {
	res := make([]SaleDetailResponse, 0, len(details))
	for _, d := range details {
		res = append(res, SaleDetailResponse{
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
		})
	}
	return res
}

func toSubmitSaleResponse(res *usecase.SubmitSaleRes) *SubmitSaleResponse {
	sale := res.Sale
	return &SubmitSaleResponse{
		SaleID: res.Receipt.SaleID,
		Total:  res.Receipt.Total,
		Sale: SaleResponse{
			ID:              res.Receipt.SaleID,
			UserID:          sale.UserID,
			CustomerID:      sale.CustomerID,
			PaymentMethod:   sale.PaymentMethod,
			OperationNumber: sale.OperationNumber,
			Date:            sale.Date,
			Total:           res.Receipt.Total,
			Customer: SaleCustomerResponse{
				Name:          sale.Customer.Name,
				FirstSurname:  sale.Customer.FirstSurname,
				SecondSurname: sale.Customer.SecondSurname,
			},
			Details: toSaleDetailsResponse(sale.Details),
		},
		Register: toRegisterResponse(res.View),
	}
}

func toSaleResponse(s domain.Sale) SaleResponse {
	return SaleResponse{
		ID:              s.ID,
		UserID:          s.UserID,
		CustomerID:      s.CustomerID,
		PaymentMethod:   s.PaymentMethod,
		OperationNumber: s.OperationNumber,
		Date:            s.Date,
		Total:           s.Total,
		Customer: SaleCustomerResponse{
			Name:          s.Customer.Name,
			FirstSurname:  s.Customer.FirstSurname,
			SecondSurname: s.Customer.SecondSurname,
		},
		Details: toSaleDetailsResponse(s.Details),
	}
}

func toCategoryResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toReceptionResponse(r domain.Reception) ReceptionResponse {
	return ReceptionResponse{
		ID:            r.ID,
		ProductID:     r.ProductID,
		Quantity:      r.Quantity,
		PurchasePrice: r.PurchasePrice,
		SupplierID:    r.SupplierID,
		UserID:        r.UserID,
		Date:          r.Date.Format(receptionDateLayout),
		ProductName:   r.ProductName,
		Price:         r.Price,
		SupplierName:  r.SupplierName,
		UserName:      r.UserName,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func toPageResponse[T, R any](p *domain.Page[T], conv func(T) R) *PageResponse[R] {
	data := make([]R, 0, len(p.Items))
	for _, item := range p.Items {
		data = append(data, conv(item))
	}
	return &PageResponse[R]{
		Limit:      p.Limit,
		Page:       p.Page,
		Total:      p.Total,
		TotalPages: p.TotalPages,
		Data:       data,
	}
}
