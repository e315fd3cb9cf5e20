package usecase

import (
	"context"

	"github.com/DRSN-tech/pos-terminal/internal/domain"
)

// ProductService - часть бэкенда склада, отвечающая за товары.
type ProductService interface {
	SearchProducts(ctx context.Context, req *SearchProductsReq) (*domain.Page[domain.Product], error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

type CustomerService interface {
	// SearchByDNI возвращает e.ErrCustomerNotFound, если клиента с таким DNI нет
	SearchByDNI(ctx context.Context, dni string) (*domain.Customer, error)
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
}

// SaleService сохраняет продажи. Для вызывающего CreateSale атомарна.
type SaleService interface {
	CreateSale(ctx context.Context, sale *domain.SaleDraft, idempotencyKey string) (*domain.SaleReceipt, error)
	ListSales(ctx context.Context, req *ListSalesReq) (*domain.Page[domain.Sale], error)
}

type CategoryService interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id int64, name string) (*domain.Category, error)
}

// ReceptionService - приёмки товара на бэкенде.
type ReceptionService interface {
	ListReceptions(ctx context.Context, req *ListReceptionsReq) (*domain.Page[domain.Reception], error)
	CreateReception(ctx context.Context, in *domain.ReceptionInput) (*domain.Reception, error)
	// UpdateReception возвращает e.ErrReceptionNotFound для неизвестного id.
	UpdateReception(ctx context.Context, id int64, patch *domain.ReceptionPatch) (*domain.Reception, error)
}

// ProductCacheInvalidator сбрасывает закэшированные продукты, чей остаток изменился.
type ProductCacheInvalidator interface {
	InvalidateProducts(ctx context.Context, ids ...int64) error
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// ReceiptArchiver сохраняет чеки в фоне.
type ReceiptArchiver interface {
	Archive(receipt *Receipt)
}
