package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/DRSN-tech/pos-terminal/internal/domain"
	"github.com/DRSN-tech/pos-terminal/internal/infrastructure/auth"
	"github.com/DRSN-tech/pos-terminal/internal/usecase"
	"github.com/DRSN-tech/pos-terminal/pkg/e"
	"github.com/DRSN-tech/pos-terminal/pkg/logger"
	"github.com/go-playground/validator/v10"
)

const receptionDateLayout = "2006-01-02"

// ReceptionHandler - приёмки товара на склад.
type ReceptionHandler struct {
	receptionUC usecase.ReceptionUC
	validate    *validator.Validate
	logger      logger.Logger
}

func NewReceptionHandler(receptionUC usecase.ReceptionUC, validate *validator.Validate, logger logger.Logger) *ReceptionHandler {
	return &ReceptionHandler{receptionUC: receptionUC, validate: validate, logger: logger}
}

// listReceptions
//
//	@Summary		Список поступлений
//	@Description	Отдается последняя загруженная страница, если запрос не изменился и не задан refresh
//	@Tags			receptions
//	@Produce		json
//	@Security		BearerAuth
//	@Param			searchTerm	query		string	false	"Product or supplier"
//	@Param			page		query		int		false	"Page, starting at 1"
//	@Param			limit		query		int		false	"Page size"
//	@Param			refresh		query		bool	false	"Reload from the backend"
//	@Success		200			{object}	PageResponse[ReceptionResponse]
//	@Router			/receptions [get]
func (h *ReceptionHandler) listReceptions(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	res, err := h.receptionUC.List(r.Context(), &usecase.ListReceptionsReq{
		SearchTerm: r.URL.Query().Get("searchTerm"),
		Page:       page,
		Limit:      limit,
		Refresh:    refreshParam(r),
	})
	if err != nil {
		writeFailure(h.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toPageResponse(res, toReceptionResponse))
}

// createReception
//
//	@Summary	Регистрация поступления
//	@Tags		receptions
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		ReceptionRequest	true	"Reception"
//	@Success	201		{object}	ReceptionResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/receptions [post]
func (h *ReceptionHandler) createReception(w http.ResponseWriter, r *http.Request) {
	id, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	var req ReceptionRequest
	if err := decodeBody(w, r, h.validate, &req); err != nil {
		writeFailure(h.logger, w, r, err)
		return
	}

	date, err := parseReceptionDate(req.Date)
	if err != nil {
		writeFailure(h.logger, w, r, err)
		return
	}

	created, err := h.receptionUC.Create(r.Context(), id, &domain.ReceptionInput{
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		PurchasePrice: *req.PurchasePrice,
		SupplierID:    req.SupplierID,
		Date:          date,
	})
	if err != nil {
		writeFailure(h.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toReceptionResponse(*created))
}

// updateReception
//
//	@Summary		Изменение поступления
//	@Description	Сначала обновляется локальная страница, при отказе бэкенда изменение откатывается
//	@Tags			receptions
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		int						true	"Reception id"
//	@Param			request	body		UpdateReceptionRequest	true	"Changed fields"
//	@Success		200		{object}	ReceptionResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/receptions/{id} [put]
func (h *ReceptionHandler) updateReception(w http.ResponseWriter, r *http.Request) {
	receptionID, err := int64Param(r, "id")
	if err != nil {
		writeFailure(h.logger, w, r, err)
		return
	}

	var req UpdateReceptionRequest
	if err := decodeBody(w, r, h.validate, &req); err != nil {
		writeFailure(h.logger, w, r, err)
		return
	}

	patch := &domain.ReceptionPatch{
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		SupplierID:    req.SupplierID,
	}
	if req.Date != nil {
		date, err := parseReceptionDate(*req.Date)
		if err != nil {
			writeFailure(h.logger, w, r, err)
			return
		}
		patch.Date = &date
	}

	updated, err := h.receptionUC.Update(r.Context(), receptionID, patch)
	if err != nil {
		writeFailure(h.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toReceptionResponse(*updated))
}

func parseReceptionDate(s string) (time.Time, error) {
	date, err := time.Parse(receptionDateLayout, s)
	if err != nil {
		return time.Time{}, errors.Join(e.ErrStatusBadRequest, err)
	}
	return date, nil
}
