package http

import (
	"net/http"

	_ "github.com/DRSN-tech/pos-terminal/docs" // swagger
	"github.com/DRSN-tech/pos-terminal/internal/usecase"
	"github.com/DRSN-tech/pos-terminal/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "pos-terminal"

type Router struct {
	router   *chi.Mux
	validate *validator.Validate
	logger   logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, validate: validator.New(), logger: logger}
}

type Usecases struct {
	Register  usecase.RegisterUC
	Catalog   usecase.CatalogUC
	Category  usecase.CategoryUC
	Reception usecase.ReceptionUC
}

func (r *Router) Init(ucs Usecases, decoder IdentityDecoder, swaggerURL string) {
	r.router.Use(middleware.RequestID, middleware.Recoverer)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(swaggerURL),
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(AuthMiddleware(decoder, r.logger))

		regHandler := NewRegisterHandler(ucs.Register, r.validate, r.logger)
		registerRegisterRoutes(v1, regHandler)

		catHandler := NewCatalogHandler(ucs.Catalog, ucs.Category, ucs.Register, r.validate, r.logger)
		registerCatalogRoutes(v1, catHandler)

		recHandler := NewReceptionHandler(ucs.Reception, r.validate, r.logger)
		registerReceptionRoutes(v1, recHandler)
	})
}

// Handler возвращает роутер, обернутый в серверную инструментацию OpenTelemetry.
func (r *Router) Handler() http.Handler {
	return otelhttp.NewHandler(r.router, serviceName)
}

func registerRegisterRoutes(router chi.Router, h *RegisterHandler) {
	router.Route("/register", func(reg chi.Router) {
		reg.Get("/", h.getRegister)

		reg.Post("/items", h.addItem)
		reg.Delete("/items", h.clearCart)
		reg.Put("/items/{product_id}", h.updateItem)
		reg.Delete("/items/{product_id}", h.removeItem)

		reg.Post("/customer/search", h.searchCustomer)
		reg.Put("/customer", h.editCustomer)
		reg.Post("/customer", h.saveCustomer)

		reg.Put("/payment", h.setPayment)
		reg.Post("/sale", h.submitSale)
	})
}

func registerCatalogRoutes(router chi.Router, h *CatalogHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", h.searchProducts)
		pr.Get("/{id}", h.getProduct)
	})

	router.Get("/sales", h.listSales)

	router.Route("/categories", func(cat chi.Router) {
		cat.Get("/", h.listCategories)
		cat.Post("/", h.createCategory)
		cat.Put("/{id}", h.renameCategory)
	})
}

func registerReceptionRoutes(router chi.Router, h *ReceptionHandler) {
	router.Route("/receptions", func(rec chi.Router) {
		rec.Get("/", h.listReceptions)
		rec.Post("/", h.createReception)
		rec.Put("/{id}", h.updateReception)
	})
}
