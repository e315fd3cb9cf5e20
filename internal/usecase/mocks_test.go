package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/pos-terminal/internal/domain"
	"github.com/stretchr/testify/mock"
)

// memSessions хранит глубокие копии, чтобы несохраненные изменения не попадали в хранилище.
type memSessions struct {
	mu       sync.Mutex
	data     map[string]*domain.Register
	locked   map[string]bool
	saves    int
	saveErr  error
	lockBusy bool
}

func newMemSessions() *memSessions {
	return &memSessions{
		data:   make(map[string]*domain.Register),
		locked: make(map[string]bool),
	}
}

func (m *memSessions) Get(_ context.Context, sessionID string) (*domain.Register, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reg, ok := m.data[sessionID]
	if !ok {
		return nil, nil
	}
	return cloneRegister(reg), nil
}

func (m *memSessions) Save(_ context.Context, reg *domain.Register) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.data[reg.SessionID] = cloneRegister(reg)
	return nil
}

func (m *memSessions) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, sessionID)
	return nil
}

func (m *memSessions) AcquireSubmitLock(_ context.Context, sessionID string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lockBusy || m.locked[sessionID] {
		return false, nil
	}
	m.locked[sessionID] = true
	return true, nil
}

func (m *memSessions) ReleaseSubmitLock(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locked, sessionID)
	return nil
}

func (m *memSessions) stored(sessionID string) *domain.Register {
	m.mu.Lock()
	defer m.mu.Unlock()
	if reg, ok := m.data[sessionID]; ok {
		return cloneRegister(reg)
	}
	return nil
}

func cloneRegister(r *domain.Register) *domain.Register {
	c := *r
	c.Cart.Lines = append([]domain.CartLine(nil), r.Cart.Lines...)
	if r.Customer != nil {
		cust := *r.Customer
		c.Customer = &cust
	}
	return &c
}

type mockCatalog struct{ mock.Mock }

func (m *mockCatalog) SearchProducts(ctx context.Context, req *SearchProductsReq) (*domain.Page[domain.Product], error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*domain.Page[domain.Product]), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalog) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCustomers struct{ mock.Mock }

func (m *mockCustomers) SearchByDNI(ctx context.Context, dni string) (*domain.Customer, error) {
	args := m.Called(ctx, dni)
	if res := args.Get(0); res != nil {
		return res.(*domain.Customer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCustomers) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	args := m.Called(ctx, customer)
	if res := args.Get(0); res != nil {
		return res.(*domain.Customer), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSales struct{ mock.Mock }

func (m *mockSales) CreateSale(ctx context.Context, sale *domain.SaleDraft, idempotencyKey string) (*domain.SaleReceipt, error) {
	args := m.Called(ctx, sale, idempotencyKey)
	if res := args.Get(0); res != nil {
		return res.(*domain.SaleReceipt), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSales) ListSales(ctx context.Context, req *ListSalesReq) (*domain.Page[domain.Sale], error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*domain.Page[domain.Sale]), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockJournal struct{ mock.Mock }

func (m *mockJournal) Create(ctx context.Context, sale *JournaledSale) (*JournaledSale, error) {
	args := m.Called(ctx, sale)
	if res := args.Get(0); res != nil {
		return res.(*JournaledSale), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockOutbox struct{ mock.Mock }

func (m *mockOutbox) Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	args := m.Called(ctx, event)
	if res := args.Get(0); res != nil {
		return res.(*OutboxEvent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOutbox) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	args := m.Called(ctx, limit)
	if res := args.Get(0); res != nil {
		return res.([]*OutboxEvent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOutbox) MarkAsProcessed(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockOutbox) ReturnToPending(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockOutbox) ReclaimStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

// inlineTx выполняет fn без базы данных.
type inlineTx struct{}

func (inlineTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingArchiver struct {
	mu       sync.Mutex
	receipts []*Receipt
}

func (a *recordingArchiver) Archive(r *Receipt) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.receipts = append(a.receipts, r)
}

func (a *recordingArchiver) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.receipts)
}

type mockProducts struct{ mock.Mock }

func (m *mockProducts) SearchProducts(ctx context.Context, req *SearchProductsReq) (*domain.Page[domain.Product], error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*domain.Page[domain.Product]), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProducts) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockProductCache struct{ mock.Mock }

func (m *mockProductCache) GetProducts(ctx context.Context, ids []int64) (map[int64]domain.Product, error) {
	args := m.Called(ctx, ids)
	if res := args.Get(0); res != nil {
		return res.(map[int64]domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductCache) SetProducts(ctx context.Context, products []domain.Product) error {
	return m.Called(ctx, products).Error(0)
}

func (m *mockProductCache) DeleteProducts(ctx context.Context, ids []int64) error {
	return m.Called(ctx, ids).Error(0)
}

type mockCategories struct{ mock.Mock }

func (m *mockCategories) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]domain.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategories) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	args := m.Called(ctx, name)
	if res := args.Get(0); res != nil {
		return res.(*domain.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategories) UpdateCategory(ctx context.Context, id int64, name string) (*domain.Category, error) {
	args := m.Called(ctx, id, name)
	if res := args.Get(0); res != nil {
		return res.(*domain.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockReceptions struct{ mock.Mock }

func (m *mockReceptions) ListReceptions(ctx context.Context, req *ListReceptionsReq) (*domain.Page[domain.Reception], error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*domain.Page[domain.Reception]), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReceptions) CreateReception(ctx context.Context, in *domain.ReceptionInput) (*domain.Reception, error) {
	args := m.Called(ctx, in)
	if res := args.Get(0); res != nil {
		return res.(*domain.Reception), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReceptions) UpdateReception(ctx context.Context, id int64, patch *domain.ReceptionPatch) (*domain.Reception, error) {
	args := m.Called(ctx, id, patch)
	if res := args.Get(0); res != nil {
		return res.(*domain.Reception), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockInvalidator struct{ mock.Mock }

func (m *mockInvalidator) InvalidateProducts(ctx context.Context, ids ...int64) error {
	return m.Called(ctx, ids).Error(0)
}
