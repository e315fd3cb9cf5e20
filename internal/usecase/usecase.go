package usecase

import (
	"context"

	"github.com/DRSN-tech/pos-terminal/internal/domain"
)

type RegisterUC interface {
	GetRegister(ctx context.Context, id domain.Identity) (*RegisterView, error)
	AddProduct(ctx context.Context, id domain.Identity, productID int64) (*RegisterView, error)
	UpdateQuantity(ctx context.Context, id domain.Identity, productID int64, quantity int) (*RegisterView, error)
	RemoveProduct(ctx context.Context, id domain.Identity, productID int64) (*RegisterView, error)
	ClearCart(ctx context.Context, id domain.Identity) (*RegisterView, error)
	SearchCustomer(ctx context.Context, id domain.Identity, dni string) (*CustomerSearchRes, error)
	EditCustomer(ctx context.Context, id domain.Identity, req *EditCustomerReq) (*RegisterView, error)
	SaveCustomer(ctx context.Context, id domain.Identity) (*RegisterView, error)
	SetPayment(ctx context.Context, id domain.Identity, req *SetPaymentReq) (*RegisterView, error)
	SubmitSale(ctx context.Context, id domain.Identity) (*SubmitSaleRes, error)
	ListSales(ctx context.Context, req *ListSalesReq) (*domain.Page[domain.Sale], error)
}

type CatalogUC interface {
	SearchProducts(ctx context.Context, req *SearchProductsReq) (*domain.Page[domain.Product], error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

type CategoryUC interface {
	List(ctx context.Context, refresh bool) ([]domain.Category, error)
	Create(ctx context.Context, name string) (*domain.Category, error)
	Rename(ctx context.Context, id int64, name string) (*domain.Category, error)
}

type ReceptionUC interface {
	List(ctx context.Context, req *ListReceptionsReq) (*domain.Page[domain.Reception], error)
	Create(ctx context.Context, id domain.Identity, in *domain.ReceptionInput) (*domain.Reception, error)
	Update(ctx context.Context, receptionID int64, patch *domain.ReceptionPatch) (*domain.Reception, error)
}
