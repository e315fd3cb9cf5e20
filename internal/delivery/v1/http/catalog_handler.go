package http

import (
	"net/http"

	"github.com/DRSN-tech/pos-terminal/internal/domain"
	"github.com/DRSN-tech/pos-terminal/internal/usecase"
	"github.com/DRSN-tech/pos-terminal/pkg/logger"
	"github.com/go-playground/validator/v10"
)

// CatalogHandler проксирует чтение каталога из бэкенда склада
// и ведет справочник категорий.
type CatalogHandler struct {
	catalogUC  usecase.CatalogUC
	categoryUC usecase.CategoryUC
	registerUC usecase.RegisterUC
	validate   *validator.Validate
	logger     logger.Logger
}

func NewCatalogHandler(
	catalogUC usecase.CatalogUC,
	categoryUC usecase.CategoryUC,
	registerUC usecase.RegisterUC,
	validate *validator.Validate,
	logger logger.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		catalogUC:  catalogUC,
		categoryUC: categoryUC,
		registerUC: registerUC,
		validate:   validate,
		logger:     logger,
	}
}

// searchProducts
//
//	@Summary	Поиск товаров
//	@Tags		products
//	@Produce	json
//	@Security	BearerAuth
//	@Param		searchTerm	query		string	false	"Name or SKU"
//	@Param		page		query		int		false	"Page, starting at 1"
//	@Param		limit		query		int		false	"Page size"
//	@Success	200			{object}	PageResponse[ProductResponse]
//	@Failure	503			{object}	ErrorResponse
//	@Router		/products [get]
func (h *CatalogHandler) searchProducts(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	res, err := h.catalogUC.SearchProducts(r.Context(), &usecase.SearchProductsReq{
		SearchTerm: r.URL.Query().Get("searchTerm"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		writeFailure(h.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toPageResponse(res, toProductResponse))
}

// getProduct
//
//	@Summary	Получение товара
//	@Tags		products
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int	true	"Product id"
//	@Success	200	{object}	ProductResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [get]
func (h *CatalogHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeFailure(h.logger, w, r, err)
		return
	}

	product, err := h.catalogUC.GetProduct(r.Context(), id)
	if err != nil {
		writeFailure(h.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(*product))
}

// listSales
//
//	@Summary	Список зарегистрированных продаж
//	@Tags		sales
//	@Produce	json
//	@Security	BearerAuth
//	@Param		search	query		string	false	"Free text filter"
//	@Param		page	query		int		false	"Page, starting at 1"
//	@Param		limit	query		int		false	"Page size"
//	@Success	200		{object}	PageResponse[SaleResponse]
//	@Router		/sales [get]
func (h *CatalogHandler) listSales(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	res, err := h.registerUC.ListSales(r.Context(), &usecase.ListSalesReq{
		Search: r.URL.Query().Get("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		writeFailure(h.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toPageResponse(res, toSaleResponse))
}

// listCategories
//
//	@Summary	Список категорий
//	@Tags		categories
//	@Produce	json
//	@Security	BearerAuth
//	@Param		refresh	query	bool	false	"Reload from the backend"
//	@Success	200		{array}	CategoryResponse
//	@Router		/categories [get]
func (h *CatalogHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	list, err := h.categoryUC.List(r.Context(), refreshParam(r))
	if err != nil {
		writeFailure(h.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCategoriesResponse(list))
}

// createCategory
//
//	@Summary	Создание категории
//	@Tags		categories
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		CategoryRequest	true	"Category"
//	@Success	201		{object}	CategoryResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/categories [post]
func (h *CatalogHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := decodeBody(w, r, h.validate, &req); err != nil {
		writeFailure(h.logger, w, r, err)
		return
	}

	category, err := h.categoryUC.Create(r.Context(), req.Name)
	if err != nil {
		writeFailure(h.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toCategoryResponse(*category))
}

// renameCategory
//
//	@Summary		Переименование категории
//	@Description	Сначала обновляется локальный список, при отказе бэкенда изменение откатывается
//	@Tags			categories
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		int				true	"Category id"
//	@Param			request	body		CategoryRequest	true	"Category"
//	@Success		200		{object}	CategoryResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/categories/{id} [put]
func (h *CatalogHandler) renameCategory(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeFailure(h.logger, w, r, err)
		return
	}

	var req CategoryRequest
	if err := decodeBody(w, r, h.validate, &req); err != nil {
		writeFailure(h.logger, w, r, err)
		return
	}

	category, err := h.categoryUC.Rename(r.Context(), id, req.Name)
	if err != nil {
		writeFailure(h.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCategoryResponse(*category))
}

func toCategoriesResponse(list []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, 0, len(list))
	for _, c := range list {
		res = append(res, toCategoryResponse(c))
	}
	return res
}
