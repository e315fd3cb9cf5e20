package minio

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/DRSN-tech/pos-terminal/internal/infrastructure"
	"github.com/DRSN-tech/pos-terminal/internal/usecase"
	"github.com/DRSN-tech/pos-terminal/pkg/e"
	"github.com/DRSN-tech/pos-terminal/pkg/jitter"
	"github.com/DRSN-tech/pos-terminal/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	uploadAttempts  = 3
	uploadRetryBase = time.Second
	uploadRetryMax  = 8 * time.Second
	uploadTimeout   = 30 * time.Second
	defaultParallel = 4
)

// ReceiptInfrastructure архивирует чеки в MinIO в фоне. Неудачная загрузка
// повторяется с backoff; если чек так и не загрузился, ошибка только логируется,
// сама продажа уже сохранена бэкендом.
type ReceiptInfrastructure struct {
	repo        usecase.ReceiptRepository
	logger      logger.Logger
	shutdownCtx context.Context
	wg          sync.WaitGroup
	sem         chan struct{}
	retryBase   time.Duration
}

func NewReceiptInfrastructure(repo usecase.ReceiptRepository, logger logger.Logger, shutdownCtx context.Context) *ReceiptInfrastructure {
	return &ReceiptInfrastructure{
		repo:        repo,
		logger:      logger,
		shutdownCtx: shutdownCtx,
		sem:         make(chan struct{}, defaultParallel),
		retryBase:   uploadRetryBase,
	}
}

type receiptDocument struct {
	SaleID          int64           `json:"sale_id"`
	SessionID       string          `json:"session_id"`
	UserID          int64           `json:"user_id"`
	CustomerID      int64           `json:"customer_id"`
	Customer        receiptCustomer `json:"customer"`
	PaymentMethod   string          `json:"payment_method"`
	OperationNumber string          `json:"operation_number"`
	Date            time.Time       `json:"date"`
	Lines           []receiptLine   `json:"lines"`
	Total           decimal.Decimal `json:"total"`
}

type receiptCustomer struct {
	Name          string `json:"name"`
	FirstSurname  string `json:"first_surname"`
	SecondSurname string `json:"second_surname,omitempty"`
}

type receiptLine struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Archive ставит загрузку в очередь и сразу возвращает управление.
func (m *ReceiptInfrastructure) Archive(receipt *usecase.Receipt) {
	if receipt == nil || receipt.Sale == nil {
		return
	}

	m.wg.Add(1)
	go m.archive(receipt)
}

func (m *ReceiptInfrastructure) archive(receipt *usecase.Receipt) {
	defer m.wg.Done()
	const op = "ReceiptInfrastructure.archive"

	select {
	case m.sem <- struct{}{}:
		defer func() { <-m.sem }()
	case <-m.shutdownCtx.Done():
		m.logger.Warnf("receipt for sale %d dropped on shutdown", receipt.SaleID)
		return
	}

	obj, err := newReceiptObject(receipt)
	if err != nil {
		m.logger.Errorf(err, "%s: failed to build receipt for sale %d", op, receipt.SaleID)
		return
	}

	ctx, cancel := context.WithTimeout(m.shutdownCtx, uploadTimeout)
	defer cancel()

	for attempt := 0; attempt < uploadAttempts; attempt++ {
		key, err := m.repo.Upload(ctx, obj)
		if err == nil {
			m.logger.Debugf("receipt for sale %d archived as %s", receipt.SaleID, key)
			return
		}

		if attempt == uploadAttempts-1 {
			m.logger.Errorf(e.Wrap(op, err), "giving up on receipt for sale %d", receipt.SaleID)
			return
		}

		m.logger.Warnf("receipt upload for sale %d failed (attempt %d): %v", receipt.SaleID, attempt+1, err)
		if !jitter.Sleep(ctx.Done(), m.retryBase, uploadRetryMax, attempt) {
			m.logger.Warnf("receipt upload for sale %d interrupted by shutdown", receipt.SaleID)
			return
		}
	}
}

// WaitForArchive ждет завершения запланированных загрузок или дедлайна остановки.
func (m *ReceiptInfrastructure) WaitForArchive(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("receipt archive timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}

func newReceiptObject(r *usecase.Receipt) (*usecase.ReceiptObject, error) {
	lines := make([]receiptLine, 0, len(r.Sale.Details))
	for _, d := range r.Sale.Details {
		lines = append(lines, receiptLine{
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			Subtotal:  d.UnitPrice.Mul(decimal.NewFromInt(int64(d.Quantity))),
		})
	}

	body, err := json.Marshal(receiptDocument{
		SaleID:     r.SaleID,
		SessionID:  r.SessionID,
		UserID:     r.Sale.UserID,
		CustomerID: r.Sale.CustomerID,
		Customer: receiptCustomer{
			Name:          r.Sale.Customer.Name,
			FirstSurname:  r.Sale.Customer.FirstSurname,
			SecondSurname: r.Sale.Customer.SecondSurname,
		},
		PaymentMethod:   r.Sale.PaymentMethod,
		OperationNumber: r.Sale.OperationNumber,
		Date:            r.Sale.Date,
		Lines:           lines,
		Total:           r.Total,
	})
	if err != nil {
		return nil, err
	}

	return &usecase.ReceiptObject{
		Key:         infrastructure.ReceiptObjectKey(r.SaleID, r.Sale.Date, uuid.NewString()),
		Body:        body,
		ContentType: infrastructure.ReceiptContentType,
	}, nil
}
