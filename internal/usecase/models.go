package usecase

import (
	"time"

	"github.com/DRSN-tech/pos-terminal/internal/domain"
	"github.com/shopspring/decimal"
)

// REGISTER

// RegisterView - касса вместе с вычисленными из нее значениями.
type RegisterView struct {
	Register      *domain.Register
	Total         decimal.Decimal
	HighlightedID int64 // 0, если ничего не подсвечено
}

// CustomerSearchRes сообщает, найден ли зарегистрированный клиент по DNI.
// При промахе в кассе выбран клиент-заготовка с этим DNI.
type CustomerSearchRes struct {
	Found bool
	View  *RegisterView
}

// EditCustomerReq содержит имена, введенные для еще не зарегистрированного клиента.
type EditCustomerReq struct {
	Name          string
	FirstSurname  string
	SecondSurname string
}

// SetPaymentReq задает поля оплаты формы продажи.
type SetPaymentReq struct {
	PaymentMethod   string
	OperationNumber string
}

// SubmitSaleRes возвращается после того, как бэкенд принял продажу.
type SubmitSaleRes struct {
	Receipt *domain.SaleReceipt
	Sale    *domain.SaleDraft
	View    *RegisterView
}

// CATALOG

// SearchProductsReq листает каталог товаров.
type SearchProductsReq struct {
	SearchTerm string
	Page       int
	Limit      int
}

// ListSalesReq листает зарегистрированные продажи.
type ListSalesReq struct {
	Search string
	Page   int
	Limit  int
}

// ListReceptionsReq листает приёмки. Refresh игнорирует локальную копию.
type ListReceptionsReq struct {
	SearchTerm string
	Page       int
	Limit      int
	Refresh    bool
}

// JOURNAL

// JournaledSale - локальная запись о продаже, принятой бэкендом.
type JournaledSale struct {
	ID              int64
	SaleID          int64
	SessionID       string
	UserID          int64
	CustomerID      int64
	PaymentMethod   string
	OperationNumber string
	Total           decimal.Decimal
	Lines           int
	SoldAt          time.Time
	CreatedAt       time.Time
}

// OutboxStatus - состояние доставки события из outbox.
type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

// OutboxEventType - тип события в outbox.
type OutboxEventType string

const SaleRegistered OutboxEventType = "sale.registered"

// OutboxEvent - сообщение, ожидающее публикации в Kafka.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	AggregateID int64 // id продажи, используется как ключ сообщения
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// SaleRegisteredEvent - JSON-тело события SaleRegistered.
type SaleRegisteredEvent struct {
	EventID         string                 `json:"event_id"`
	SaleID          int64                  `json:"sale_id"`
	UserID          int64                  `json:"user_id"`
	CustomerID      int64                  `json:"customer_id"`
	PaymentMethod   string                 `json:"payment_method"`
	OperationNumber string                 `json:"operation_number"`
	Total           decimal.Decimal        `json:"total"`
	Date            time.Time              `json:"date"`
	Details         []SaleRegisteredDetail `json:"details"`
}

type SaleRegisteredDetail struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// INFRASTRUCTURE

// WriteRawMessageReq - заранее сериализованное сообщение Kafka.
type WriteRawMessageReq struct {
	Key       int64
	EventType OutboxEventType
	Payload   []byte
}

// Receipt - архивная копия продажи, принятой бэкендом.
type Receipt struct {
	SaleID    int64
	SessionID string
	Sale      *domain.SaleDraft
	Total     decimal.Decimal
}

// ReceiptObject - сериализованный чек, готовый к записи в объектное хранилище.
type ReceiptObject struct {
	Key         string
	Body        []byte
	ContentType string
}

// MAPPERS

func NewRegisterView(r *domain.Register, now time.Time) *RegisterView {
	v := &RegisterView{
		Register: r,
		Total:    r.Cart.Total(),
	}
	if id, ok := r.Cart.HighlightedProduct(now); ok {
		v.HighlightedID = id
	}
	return v
}

func NewWriteRawMessageReq(key int64, eventType OutboxEventType, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Key:       key,
		EventType: eventType,
		Payload:   payload,
	}
}

func NewSaleRegisteredEvent(eventID string, receipt *domain.SaleReceipt, sale *domain.SaleDraft) *SaleRegisteredEvent {
	details := make([]SaleRegisteredDetail, 0, len(sale.Details))
	for _, d := range sale.Details {
		details = append(details, SaleRegisteredDetail{
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
		})
	}

	return &SaleRegisteredEvent{
		EventID:         eventID,
		SaleID:          receipt.SaleID,
		UserID:          sale.UserID,
		CustomerID:      sale.CustomerID,
		PaymentMethod:   sale.PaymentMethod,
		OperationNumber: sale.OperationNumber,
		Total:           receipt.Total,
		Date:            sale.Date,
		Details:         details,
	}
}

func NewJournaledSale(sessionID string, receipt *domain.SaleReceipt, sale *domain.SaleDraft) *JournaledSale {
	return &JournaledSale{
		SaleID:          receipt.SaleID,
		SessionID:       sessionID,
		UserID:          sale.UserID,
		CustomerID:      sale.CustomerID,
		PaymentMethod:   sale.PaymentMethod,
		OperationNumber: sale.OperationNumber,
		Total:           receipt.Total,
		Lines:           len(sale.Details),
		SoldAt:          sale.Date,
	}
}
