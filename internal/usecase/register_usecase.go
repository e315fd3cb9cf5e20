package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/pos-terminal/internal/domain"
	"github.com/DRSN-tech/pos-terminal/pkg/e"
	"github.com/DRSN-tech/pos-terminal/pkg/logger"
	"github.com/google/uuid"
)

// submitLockGrace держит блокировку отправки чуть дольше таймаута отправки.
const submitLockGrace = 5 * time.Second

// RegisterSettings настраивает поведение кассы.
type RegisterSettings struct {
	HighlightDuration time.Duration
	SubmitTimeout     time.Duration
	ArchiveReceipts   bool
}

// RegisterUseCase ведет форму продажи каждого кассира. Каждая операция загружает
// кассу из сессии вызывающего, применяет одно изменение и сохраняет ее обратно.
type RegisterUseCase struct {
	sessions  SessionRepository
	catalog   CatalogUC
	customers CustomerService
	sales     SaleService
	journal   SaleJournalRepository
	outbox    OutboxRepository
	txRunner  TxRunner
	archiver  ReceiptArchiver
	settings  RegisterSettings
	logger    logger.Logger

	locks sync.Map // id сессии -> *sync.Mutex
	now   func() time.Time
}

func NewRegisterUC(
	sessions SessionRepository,
	catalog CatalogUC,
	customers CustomerService,
	sales SaleService,
	journal SaleJournalRepository,
	outbox OutboxRepository,
	txRunner TxRunner,
	archiver ReceiptArchiver,
	settings RegisterSettings,
	logger logger.Logger,
) *RegisterUseCase {
	return &RegisterUseCase{
		sessions:  sessions,
		catalog:   catalog,
		customers: customers,
		sales:     sales,
		journal:   journal,
		outbox:    outbox,
		txRunner:  txRunner,
		archiver:  archiver,
		settings:  settings,
		logger:    logger,
		now:       time.Now,
	}
}

// SessionID вычисляет ключ кассы кассира.
func SessionID(id domain.Identity) string {
	return fmt.Sprintf("user:%d", id.UserID)
}

func (r *RegisterUseCase) GetRegister(ctx context.Context, id domain.Identity) (*RegisterView, error) {
	const op = "RegisterUseCase.GetRegister"

	unlock := r.lock(id)
	defer unlock()

	reg, err := r.load(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewRegisterView(reg, r.now()), nil
}

// AddProduct находит товар и добавляет одну его единицу в корзину.
func (r *RegisterUseCase) AddProduct(ctx context.Context, id domain.Identity, productID int64) (*RegisterView, error) {
	const op = "RegisterUseCase.AddProduct"

	product, err := r.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return r.mutate(ctx, op, id, func(reg *domain.Register) error {
		if err := reg.Cart.AddProduct(*product); err != nil {
			return err
		}
		reg.Cart.Highlight(product.ID, r.now().Add(r.settings.HighlightDuration))
		return nil
	})
}

func (r *RegisterUseCase) UpdateQuantity(ctx context.Context, id domain.Identity, productID int64, quantity int) (*RegisterView, error) {
	return r.mutate(ctx, "RegisterUseCase.UpdateQuantity", id, func(reg *domain.Register) error {
		reg.Cart.UpdateQuantity(productID, quantity)
		return nil
	})
}

func (r *RegisterUseCase) RemoveProduct(ctx context.Context, id domain.Identity, productID int64) (*RegisterView, error) {
	return r.mutate(ctx, "RegisterUseCase.RemoveProduct", id, func(reg *domain.Register) error {
		reg.Cart.RemoveProduct(productID)
		return nil
	})
}

func (r *RegisterUseCase) ClearCart(ctx context.Context, id domain.Identity) (*RegisterView, error) {
	return r.mutate(ctx, "RegisterUseCase.ClearCart", id, func(reg *domain.Register) error {
		reg.Cart.Clear()
		return nil
	})
}

// SearchCustomer ищет клиента по DNI. Если никто не найден, выбирается
// клиент-заготовка с этим DNI.
func (r *RegisterUseCase) SearchCustomer(ctx context.Context, id domain.Identity, dni string) (*CustomerSearchRes, error) {
	const op = "RegisterUseCase.SearchCustomer"

	dni = strings.TrimSpace(dni)
	if !domain.ValidDNI(dni) {
		return nil, e.Wrap(op, e.ErrInvalidDNI)
	}

	found := true
	customer, err := r.customers.SearchByDNI(ctx, dni)
	switch {
	case errors.Is(err, e.ErrCustomerNotFound):
		found = false
		customer = domain.NewPlaceholderCustomer(dni)
	case err != nil:
		return nil, e.Wrap(op, err)
	}

	view, err := r.mutate(ctx, op, id, func(reg *domain.Register) error {
		reg.SelectCustomer(customer, dni)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CustomerSearchRes{Found: found, View: view}, nil
}

// EditCustomer заполняет имена клиента-заготовки.
func (r *RegisterUseCase) EditCustomer(ctx context.Context, id domain.Identity, req *EditCustomerReq) (*RegisterView, error) {
	return r.mutate(ctx, "RegisterUseCase.EditCustomer", id, func(reg *domain.Register) error {
		return reg.EditCustomerNames(
			strings.TrimSpace(req.Name),
			strings.TrimSpace(req.FirstSurname),
			strings.TrimSpace(req.SecondSurname),
		)
	})
}

// SaveCustomer регистрирует клиента-заготовку в бэкенде и выбирает
// сохраненную запись.
func (r *RegisterUseCase) SaveCustomer(ctx context.Context, id domain.Identity) (*RegisterView, error) {
	const op = "RegisterUseCase.SaveCustomer"

	unlock := r.lock(id)
	defer unlock()

	reg, err := r.load(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	switch {
	case reg.Customer == nil:
		return nil, e.Wrap(op, e.ErrNoCustomer)
	case reg.Customer.IsPersisted():
		return nil, e.Wrap(op, e.ErrCustomerReadOnly)
	case !reg.Customer.HasRequiredNames():
		return nil, e.Wrap(op, e.ErrCustomerIncomplete)
	}

	created, err := r.customers.Create(ctx, reg.Customer)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	reg.SelectCustomer(created, reg.DNISearch)
	if err := r.save(ctx, reg); err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewRegisterView(reg, r.now()), nil
}

func (r *RegisterUseCase) SetPayment(ctx context.Context, id domain.Identity, req *SetPaymentReq) (*RegisterView, error) {
	return r.mutate(ctx, "RegisterUseCase.SetPayment", id, func(reg *domain.Register) error {
		reg.PaymentMethod = strings.TrimSpace(req.PaymentMethod)
		reg.OperationNumber = strings.TrimSpace(req.OperationNumber)
		return nil
	})
}

// SubmitSale проверяет кассу, отправляет продажу в бэкенд и сбрасывает кассу
// после того, как бэкенд ее принял. Неудачная отправка оставляет кассу как была.
func (r *RegisterUseCase) SubmitSale(ctx context.Context, id domain.Identity) (*SubmitSaleRes, error) {
	const op = "RegisterUseCase.SubmitSale"

	unlock := r.lock(id)
	defer unlock()

	reg, err := r.load(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	draft, err := reg.AssembleSale(id.UserID, r.now())
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	acquired, err := r.sessions.AcquireSubmitLock(ctx, reg.SessionID, r.settings.SubmitTimeout+submitLockGrace)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if !acquired {
		return nil, e.Wrap(op, e.ErrSubmissionInProgress)
	}
	defer func() {
		if err := r.sessions.ReleaseSubmitLock(context.WithoutCancel(ctx), reg.SessionID); err != nil {
			r.logger.Warnf("release submit lock for %s: %v", reg.SessionID, e.Wrap(op, err))
		}
	}()

	receipt, err := r.createSale(ctx, draft)
	if err != nil {
		return nil, e.Wrap(op, fmt.Errorf("%w: %w", e.ErrSubmissionFailed, err))
	}
	if receipt.Total.IsZero() {
		receipt.Total = draft.Total()
	}

	r.logger.Infof("sale %d registered by user %d, total %s", receipt.SaleID, id.UserID, receipt.Total.StringFixed(2))

	reg.Reset()
	if err := r.save(context.WithoutCancel(ctx), reg); err != nil {
		// Продажа уже есть в бэкенде, старую корзину нельзя отправить повторно
		r.logger.Errorf(err, "failed to reset register %s after sale %d", reg.SessionID, receipt.SaleID)
		if err := r.sessions.Delete(context.WithoutCancel(ctx), reg.SessionID); err != nil {
			r.logger.Errorf(err, "failed to drop register %s", reg.SessionID)
		}
	}

	r.record(context.WithoutCancel(ctx), reg.SessionID, receipt, draft)

	return &SubmitSaleRes{
		Receipt: receipt,
		Sale:    draft,
		View:    NewRegisterView(reg, r.now()),
	}, nil
}

// ListSales листает продажи, сохраненные в бэкенде.
func (r *RegisterUseCase) ListSales(ctx context.Context, req *ListSalesReq) (*domain.Page[domain.Sale], error) {
	const op = "RegisterUseCase.ListSales"

	page, err := r.sales.ListSales(ctx, &ListSalesReq{
		Search: req.Search,
		Page:   max(1, req.Page),
		Limit:  normalizeLimit(req.Limit),
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return page, nil
}

func (r *RegisterUseCase) createSale(ctx context.Context, draft *domain.SaleDraft) (*domain.SaleReceipt, error) {
	if r.settings.SubmitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.settings.SubmitTimeout)
		defer cancel()
	}

	return r.sales.CreateSale(ctx, draft, uuid.NewString())
}

// record записывает продажу в журнал вместе с событием outbox и архивирует чек.
// Ошибки здесь не отменяют продажу и только логируются.
func (r *RegisterUseCase) record(ctx context.Context, sessionID string, receipt *domain.SaleReceipt, draft *domain.SaleDraft) {
	const op = "RegisterUseCase.record"

	eventID := uuid.NewString()
	payload, err := json.Marshal(NewSaleRegisteredEvent(eventID, receipt, draft))
	if err != nil {
		r.logger.Warnf("marshal sale event: %v", e.Wrap(op, err))
		return
	}

	err = r.txRunner.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := r.journal.Create(ctx, NewJournaledSale(sessionID, receipt, draft)); err != nil {
			return err
		}

		_, err := r.outbox.Create(ctx, &OutboxEvent{
			EventID:     eventID,
			EventType:   SaleRegistered,
			AggregateID: receipt.SaleID,
			Payload:     payload,
			Status:      Pending,
			CreatedAt:   r.now(),
		})
		return err
	})
	if err != nil {
		r.logger.Warnf("failed to journal sale %d: %v", receipt.SaleID, e.Wrap(op, err))
	}

	if r.settings.ArchiveReceipts {
		r.archiver.Archive(&Receipt{
			SaleID:    receipt.SaleID,
			SessionID: sessionID,
			Sale:      draft,
			Total:     receipt.Total,
		})
	}
}

// mutate применяет fn к кассе вызывающего под блокировкой сессии и сохраняет
// результат. Если fn вернула ошибку, ничего не сохраняется.
func (r *RegisterUseCase) mutate(ctx context.Context, op string, id domain.Identity, fn func(reg *domain.Register) error) (*RegisterView, error) {
	unlock := r.lock(id)
	defer unlock()

	reg, err := r.load(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := fn(reg); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := r.save(ctx, reg); err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewRegisterView(reg, r.now()), nil
}

func (r *RegisterUseCase) load(ctx context.Context, id domain.Identity) (*domain.Register, error) {
	sessionID := SessionID(id)

	reg, err := r.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return domain.NewRegister(sessionID), nil
	}

	reg.SessionID = sessionID
	return reg, nil
}

func (r *RegisterUseCase) save(ctx context.Context, reg *domain.Register) error {
	reg.UpdatedAt = r.now()
	return r.sessions.Save(ctx, reg)
}

func (r *RegisterUseCase) lock(id domain.Identity) func() {
	v, _ := r.locks.LoadOrStore(SessionID(id), &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
