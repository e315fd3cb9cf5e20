package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/pos-terminal/internal/domain"
)

// SessionRepository хранит одну кассу на сессию кассира.
type SessionRepository interface {
	// Get возвращает nil без ошибки, если сессии еще нет
	Get(ctx context.Context, sessionID string) (*domain.Register, error)
	Save(ctx context.Context, register *domain.Register) error
	Delete(ctx context.Context, sessionID string) error
	// AcquireSubmitLock возвращает false, если блокировку держит другая отправка
	AcquireSubmitLock(ctx context.Context, sessionID string, ttl time.Duration) (bool, error)
	ReleaseSubmitLock(ctx context.Context, sessionID string) error
}

// ProductCacheRepository - короткоживущий кэш товаров каталога.
type ProductCacheRepository interface {
	GetProducts(ctx context.Context, ids []int64) (map[int64]domain.Product, error)
	SetProducts(ctx context.Context, products []domain.Product) error
	DeleteProducts(ctx context.Context, ids []int64) error
}

// SaleJournalRepository ведет локальный журнал принятых продаж. Работает только внутри транзакции.
type SaleJournalRepository interface {
	Create(ctx context.Context, sale *JournaledSale) (*JournaledSale, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	ReturnToPending(ctx context.Context, id int64) error
	// ReclaimStale возвращает в pending события, захваченные раньше чем olderThan назад
	ReclaimStale(ctx context.Context, olderThan time.Duration) (int64, error)
}

type ReceiptRepository interface {
	Upload(ctx context.Context, obj *ReceiptObject) (string, error)
	Delete(ctx context.Context, key string) error
}

// TxRunner выполняет fn в транзакции БД, которая лежит в переданном fn ctx.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
