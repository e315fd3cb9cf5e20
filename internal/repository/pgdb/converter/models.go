package converter

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleJournalModel - строка таблицы sale_journal.
type SaleJournalModel struct {
	ID              int64           `db:"id"`
	SaleID          int64           `db:"sale_id"`
	SessionID       string          `db:"session_id"`
	UserID          int64           `db:"user_id"`
	CustomerID      int64           `db:"customer_id"`
	PaymentMethod   string          `db:"payment_method"`
	OperationNumber string          `db:"operation_number"`
	Total           decimal.Decimal `db:"total"`
	Lines           int             `db:"lines"`
	SoldAt          time.Time       `db:"sold_at"`
	CreatedAt       time.Time       `db:"created_at"`
}

// OutboxEventModel - строка таблицы outbox_events.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	AggregateID int64      `db:"aggregate_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
