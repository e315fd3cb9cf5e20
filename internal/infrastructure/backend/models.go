package backend

import (
	"fmt"
	"strings"
	"time"

	"github.com/DRSN-tech/pos-terminal/internal/domain"
	"github.com/shopspring/decimal"
)

// Модели обмена с бэкендом склада. Имена полей повторяют его JSON API.

type pageDTO[T any] struct {
	Limit      int `json:"limit"`
	Page       int `json:"page"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
	Data       []T `json:"data"`
}

type productDTO struct {
	ID          int64           `json:"id_product"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	SKU         *string         `json:"sku"`
	Price       decimal.Decimal `json:"price"`
	UnitType    string          `json:"unit_type"`
	Status      bool            `json:"status"`
	CategoryID  int64           `json:"id_category"`
	Stock       int             `json:"stock"`
}

type customerDTO struct {
	ID            int64  `json:"id_customer,omitempty"`
	DNI           string `json:"dni"`
	Name          string `json:"name"`
	FirstSurname  string `json:"first_surname"`
	SecondSurname string `json:"second_surname"`
}

type customerSearchDTO struct {
	Found bool         `json:"found"`
	Data  *customerDTO `json:"data"`
}

type saleCustomerDTO struct {
	Name          string `json:"name"`
	FirstSurname  string `json:"first_surname"`
	SecondSurname string `json:"second_surname"`
}

type saleDetailDTO struct {
	ProductID int64   `json:"id_product"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type createSaleDTO struct {
	UserID          int64           `json:"id_user"`
	CustomerID      int64           `json:"id_customer"`
	PaymentMethod   string          `json:"payment_method"`
	OperationNumber string          `json:"operation_number"`
	Date            time.Time       `json:"date"`
	Customer        saleCustomerDTO `json:"customer"`
	Details         []saleDetailDTO `json:"details"`
}

type saleDetailResDTO struct {
	ProductID int64           `json:"id_product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type saleDTO struct {
	ID              int64              `json:"id_sale"`
	UserID          int64              `json:"id_user"`
	CustomerID      int64              `json:"id_customer"`
	PaymentMethod   string             `json:"payment_method"`
	OperationNumber string             `json:"operation_number"`
	Date            time.Time          `json:"date"`
	Total           *decimal.Decimal   `json:"total"`
	Customer        saleCustomerDTO    `json:"customer"`
	Details         []saleDetailResDTO `json:"details"`
}

type categoryDTO struct {
	ID        int64      `json:"id_category"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

type categoryReqDTO struct {
	Name string `json:"name"`
}

type receptionDTO struct {
	ID            int64           `json:"id_reception"`
	ProductID     int64           `json:"id_product"`
	Quantity      int             `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SupplierID    int64           `json:"id_supplier"`
	UserID        int64           `json:"id_user"`
	Date          wireDate        `json:"date"`
	ProductName   string          `json:"product_name"`
	Price         decimal.Decimal `json:"price"`
	SupplierName  string          `json:"supplier_name"`
	UserName      string          `json:"user_name"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     *time.Time      `json:"updatedAt"`
}

type createReceptionDTO struct {
	ProductID     int64    `json:"id_product"`
	Quantity      int      `json:"quantity"`
	PurchasePrice float64  `json:"purchase_price"`
	SupplierID    int64    `json:"id_supplier"`
	UserID        int64    `json:"id_user"`
	Date          wireDate `json:"date"`
}

// updateReceptionDTO - частичное обновление, отсутствующие поля не отправляются.
type updateReceptionDTO struct {
	ProductID     *int64    `json:"id_product,omitempty"`
	Quantity      *int      `json:"quantity,omitempty"`
	PurchasePrice *float64  `json:"purchase_price,omitempty"`
	SupplierID    *int64    `json:"id_supplier,omitempty"`
	Date          *wireDate `json:"date,omitempty"`
}

// wireDate - дата приёмки. Бэкенд принимает YYYY-MM-DD, а отдаёт то же
// или полную метку RFC 3339.
type wireDate struct{ time.Time }

const wireDateLayout = "2006-01-02"

func (d wireDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.UTC().Format(wireDateLayout) + `"`), nil
}

func (d *wireDate) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}

	for _, layout := range []string{time.RFC3339Nano, wireDateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("unsupported date %q", s)
}

// CONVERTERS

func toDomainProduct(p productDTO) domain.Product {
	res := domain.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		UnitType:    p.UnitType,
		CategoryID:  p.CategoryID,
		Active:      p.Status,
	}
	if p.SKU != nil {
		res.SKU = *p.SKU
	}
	return res
}

func toDomainProductPage(p pageDTO[productDTO]) *domain.Page[domain.Product] {
	items := make([]domain.Product, 0, len(p.Data))
	for _, dto := range p.Data {
		items = append(items, toDomainProduct(dto))
	}
	return &domain.Page[domain.Product]{
		Items:      items,
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      p.Total,
		TotalPages: p.TotalPages,
	}
}

func toDomainCustomer(c customerDTO) *domain.Customer {
	return &domain.Customer{
		ID:            c.ID,
		DNI:           c.DNI,
		Name:          c.Name,
		FirstSurname:  c.FirstSurname,
		SecondSurname: c.SecondSurname,
	}
}

func toCustomerDTO(c *domain.Customer) customerDTO {
	return customerDTO{
		DNI:           c.DNI,
		Name:          c.Name,
		FirstSurname:  c.FirstSurname,
		SecondSurname: c.SecondSurname,
	}
}

func toCreateSaleDTO(s *domain.SaleDraft) createSaleDTO {
	details := make([]saleDetailDTO, 0, len(s.Details))
	for _, d := range s.Details {
		details = append(details, saleDetailDTO{
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice.InexactFloat64(),
		})
	}

	return createSaleDTO{
		UserID:          s.UserID,
		CustomerID:      s.CustomerID,
		PaymentMethod:   s.PaymentMethod,
		OperationNumber: s.OperationNumber,
		Date:            s.Date,
		Customer: saleCustomerDTO{
			Name:          s.Customer.Name,
			FirstSurname:  s.Customer.FirstSurname,
			SecondSurname: s.Customer.SecondSurname,
		},
		Details: details,
	}
}

func toDomainSale(s saleDTO) domain.Sale {
	details := make([]domain.SaleDetail, 0, len(s.Details))
	for _, d := range s.Details {
		details = append(details, domain.SaleDetail{
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
		})
	}

	res := domain.Sale{
		ID:              s.ID,
		UserID:          s.UserID,
		CustomerID:      s.CustomerID,
		PaymentMethod:   s.PaymentMethod,
		OperationNumber: s.OperationNumber,
		Date:            s.Date,
		Customer: domain.SaleCustomer{
			Name:          s.Customer.Name,
			FirstSurname:  s.Customer.FirstSurname,
			SecondSurname: s.Customer.SecondSurname,
		},
		Details: details,
	}
	if s.Total != nil {
		res.Total = *s.Total
	}
	return res
}

func toDomainReception(r receptionDTO) domain.Reception {
	return domain.Reception{
		ID:            r.ID,
		ProductID:     r.ProductID,
		Quantity:      r.Quantity,
		PurchasePrice: r.PurchasePrice,
		SupplierID:    r.SupplierID,
		UserID:        r.UserID,
		Date:          r.Date.Time,
		ProductName:   r.ProductName,
		Price:         r.Price,
		SupplierName:  r.SupplierName,
		UserName:      r.UserName,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func toCreateReceptionDTO(in *domain.ReceptionInput) createReceptionDTO {
	return createReceptionDTO{
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		PurchasePrice: in.PurchasePrice.InexactFloat64(),
		SupplierID:    in.SupplierID,
		UserID:        in.UserID,
		Date:          wireDate{in.Date},
	}
}

func toUpdateReceptionDTO(p *domain.ReceptionPatch) updateReceptionDTO {
	res := updateReceptionDTO{
		ProductID:  p.ProductID,
		Quantity:   p.Quantity,
		SupplierID: p.SupplierID,
	}
	if p.PurchasePrice != nil {
		price := p.PurchasePrice.InexactFloat64()
		res.PurchasePrice = &price
	}
	if p.Date != nil {
		res.Date = &wireDate{*p.Date}
	}
	return res
}

func toDomainCategory(c categoryDTO) domain.Category {
	return domain.Category{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
