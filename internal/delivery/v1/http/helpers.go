package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/DRSN-tech/pos-terminal/pkg/e"
	"github.com/DRSN-tech/pos-terminal/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jimlawless/whereami"
)

const maxBodySize = 1 << 20

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// ToHTTPResponse сопоставляет ошибку usecase со статус-кодом и сообщением,
// которое можно показать кассиру.
func ToHTTPResponse(err error) (int, string) {
	switch {
	// SubmissionFailed оборачивает причину, поэтому проверяется раньше ошибок бэкенда
	case errors.Is(err, e.ErrSubmissionFailed):
		return http.StatusBadGateway, e.ErrSubmissionFailed.Error()
	case errors.Is(err, e.ErrSubmissionInProgress):
		return http.StatusConflict, e.ErrSubmissionInProgress.Error()

	case errors.Is(err, e.ErrUnauthorized):
		return http.StatusUnauthorized, e.ErrUnauthorized.Error()

	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrInvalidDNI):
		return http.StatusBadRequest, e.ErrInvalidDNI.Error()
	case errors.Is(err, e.ErrInvalidReception):
		return http.StatusBadRequest, e.ErrInvalidReception.Error()

	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrCategoryNotFound):
		return http.StatusNotFound, e.ErrCategoryNotFound.Error()
	case errors.Is(err, e.ErrCustomerNotFound):
		return http.StatusNotFound, e.ErrCustomerNotFound.Error()
	case errors.Is(err, e.ErrReceptionNotFound):
		return http.StatusNotFound, e.ErrReceptionNotFound.Error()

	case errors.Is(err, e.ErrOutOfStock):
		return http.StatusUnprocessableEntity, e.ErrOutOfStock.Error()
	case errors.Is(err, e.ErrEmptyCart):
		return http.StatusUnprocessableEntity, e.ErrEmptyCart.Error()
	case errors.Is(err, e.ErrNoCustomer):
		return http.StatusUnprocessableEntity, e.ErrNoCustomer.Error()
	case errors.Is(err, e.ErrNoPaymentMethod):
		return http.StatusUnprocessableEntity, e.ErrNoPaymentMethod.Error()
	case errors.Is(err, e.ErrNoOperationNumber):
		return http.StatusUnprocessableEntity, e.ErrNoOperationNumber.Error()
	case errors.Is(err, e.ErrCustomerReadOnly):
		return http.StatusUnprocessableEntity, e.ErrCustomerReadOnly.Error()
	case errors.Is(err, e.ErrCustomerIncomplete):
		return http.StatusUnprocessableEntity, e.ErrCustomerIncomplete.Error()

	case errors.Is(err, e.ErrBackendRejected):
		return http.StatusBadGateway, e.ErrBackendRejected.Error()
	case errors.Is(err, e.ErrBackendUnavailable):
		return http.StatusServiceUnavailable, e.ErrBackendUnavailable.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeFailure логирует err с уровнем по статус-коду и пишет ответ.
func writeFailure(log logger.Logger, w http.ResponseWriter, r *http.Request, err error) {
	code, _ := ToHTTPResponse(err)
	if code >= http.StatusInternalServerError {
		log.Errorf(err, "%s %s", r.Method, r.URL.Path)
	} else {
		log.Warnf("%d %s %s: %s", code, r.Method, r.URL.Path, err.Error())
	}
	WriteError(w, err)
}

// decodeBody читает JSON-тело в dst и проверяет теги валидации.
func decodeBody(w http.ResponseWriter, r *http.Request, v *validator.Validate, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return e.Wrap(whereami.WhereAmI(), errors.Join(e.ErrStatusBadRequest, err))
	}

	if err := v.Struct(dst); err != nil {
		return e.Wrap(whereami.WhereAmI(), errors.Join(e.ErrStatusBadRequest, err))
	}
	return nil
}

func int64Param(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, e.Wrap(name, e.ErrStatusBadRequest)
	}
	return id, nil
}

// pageParams читает page и limit. Отсутствующие или битые значения становятся 0,
// значения по умолчанию подставляет usecase.
func pageParams(r *http.Request) (page, limit int) {
	q := r.URL.Query()
	page, _ = strconv.Atoi(q.Get("page"))
	limit, _ = strconv.Atoi(q.Get("limit"))
	return page, limit
}

// refreshParam - ?refresh=true просит перечитать список с бэкенда.
func refreshParam(r *http.Request) bool {
	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))
	return refresh
}
