package http

import (
	"net/http"

	"github.com/DRSN-tech/pos-terminal/internal/infrastructure/auth"
	"github.com/DRSN-tech/pos-terminal/internal/usecase"
	"github.com/DRSN-tech/pos-terminal/pkg/logger"
	"github.com/go-playground/validator/v10"
)

type RegisterHandler struct {
	registerUC usecase.RegisterUC
	validate   *validator.Validate
	logger     logger.Logger
}

func NewRegisterHandler(registerUC usecase.RegisterUC, validate *validator.Validate, logger logger.Logger) *RegisterHandler {
	return &RegisterHandler{registerUC: registerUC, validate: validate, logger: logger}
}

// getRegister
//
//	@Summary		Текущая касса
//	@Description	Возвращает корзину, клиента и поля оплаты текущей продажи кассира
//	@Tags			register
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	RegisterResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/register [get]
func (h *RegisterHandler) getRegister(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	view, err := h.registerUC.GetRegister(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toRegisterResponse(view))
}

// addItem
//
//	@Summary		Добавление товара в корзину
//	@Description	Добавляет одну единицу. Существующая строка увеличивается и подсвечивается.
//	@Tags			register
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		AddItemRequest	true	"Product"
//	@Success		200		{object}	RegisterResponse
//	@Failure		404		{object}	ErrorResponse	"Unknown product"
//	@Failure		422		{object}	ErrorResponse	"Out of stock"
//	@Router			/register/items [post]
func (h *RegisterHandler) addItem(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	var req AddItemRequest
	if err := decodeBody(w, r, h.validate, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	view, err := h.registerUC.AddProduct(r.Context(), id, req.ProductID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toRegisterResponse(view))
}

// updateItem
//
//	@Summary		Изменение количества в строке
//	@Description	Отрицательное количество приводится к нулю, ноль удаляет строку
//	@Tags			register
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			product_id	path		int						true	"Product id"
//	@Param			request		body		UpdateQuantityRequest	true	"Quantity"
//	@Success		200			{object}	RegisterResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/register/items/{product_id} [put]
func (h *RegisterHandler) updateItem(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	productID, err := int64Param(r, "product_id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req UpdateQuantityRequest
	if err := decodeBody(w, r, h.validate, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	view, err := h.registerUC.UpdateQuantity(r.Context(), id, productID, *req.Quantity)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toRegisterResponse(view))
}

// removeItem
//
//	@Summary	Удаление строки корзины
//	@Tags		register
//	@Produce	json
//	@Security	BearerAuth
//	@Param		product_id	path		int	true	"Product id"
//	@Success	200			{object}	RegisterResponse
//	@Router		/register/items/{product_id} [delete]
func (h *RegisterHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	productID, err := int64Param(r, "product_id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	view, err := h.registerUC.RemoveProduct(r.Context(), id, productID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toRegisterResponse(view))
}

// clearCart
//
//	@Summary	Очистка корзины
//	@Tags		register
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	RegisterResponse
//	@Router		/register/items [delete]
func (h *RegisterHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	view, err := h.registerUC.ClearCart(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toRegisterResponse(view))
}

// searchCustomer
//
//	@Summary		Поиск клиента по DNI
//	@Description	При промахе выбирается незарегистрированный клиент с этим DNI, чтобы можно было ввести имена
//	@Tags			register
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		SearchCustomerRequest	true	"DNI, 8 digits"
//	@Success		200		{object}	CustomerSearchResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/register/customer/search [post]
func (h *RegisterHandler) searchCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	var req SearchCustomerRequest
	if err := decodeBody(w, r, h.validate, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := h.registerUC.SearchCustomer(r.Context(), id, req.DNI)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, &CustomerSearchResponse{
		Found:    res.Found,
		Register: toRegisterResponse(res.View),
	})
}

// editCustomer
//
//	@Summary	Изменение имен незарегистрированного клиента
//	@Tags		register
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		EditCustomerRequest	true	"Names"
//	@Success	200		{object}	RegisterResponse
//	@Failure	422		{object}	ErrorResponse	"Customer already registered"
//	@Router		/register/customer [put]
func (h *RegisterHandler) editCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	var req EditCustomerRequest
	if err := decodeBody(w, r, h.validate, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	view, err := h.registerUC.EditCustomer(r.Context(), id, &usecase.EditCustomerReq{
		Name:          req.Name,
		FirstSurname:  req.FirstSurname,
		SecondSurname: req.SecondSurname,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toRegisterResponse(view))
}

// saveCustomer
//
//	@Summary	Регистрация выбранного клиента в бэкенде
//	@Tags		register
//	@Produce	json
//	@Security	BearerAuth
//	@Success	201	{object}	RegisterResponse
//	@Failure	422	{object}	ErrorResponse	"Name and first surname are required"
//	@Router		/register/customer [post]
func (h *RegisterHandler) saveCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	view, err := h.registerUC.SaveCustomer(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toRegisterResponse(view))
}

// setPayment
//
//	@Summary	Способ оплаты и номер операции
//	@Tags		register
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		SetPaymentRequest	true	"Payment"
//	@Success	200		{object}	RegisterResponse
//	@Router		/register/payment [put]
func (h *RegisterHandler) setPayment(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	var req SetPaymentRequest
	if err := decodeBody(w, r, h.validate, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	view, err := h.registerUC.SetPayment(r.Context(), id, &usecase.SetPaymentReq{
		PaymentMethod:   req.PaymentMethod,
		OperationNumber: req.OperationNumber,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toRegisterResponse(view))
}

// submitSale
//
//	@Summary		Регистрация продажи
//	@Description	Проверяет кассу, отправляет продажу в бэкенд и при успехе сбрасывает кассу
//	@Tags			register
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201	{object}	SubmitSaleResponse
//	@Failure		409	{object}	ErrorResponse	"Submission already in progress"
//	@Failure		422	{object}	ErrorResponse	"Register not ready"
//	@Failure		502	{object}	ErrorResponse	"Backend failed to store the sale"
//	@Router			/register/sale [post]
func (h *RegisterHandler) submitSale(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.registerUC.SubmitSale(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.Infof("sale %d registered by user %d", res.Receipt.SaleID, id.UserID)
	WriteSuccess(w, http.StatusCreated, toSubmitSaleResponse(res))
}

func (h *RegisterHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	writeFailure(h.logger, w, r, err)
}
