package converter

import "github.com/DRSN-tech/pos-terminal/internal/usecase"

type SaleJournalConverter struct{}

func (SaleJournalConverter) ToModel(s *usecase.JournaledSale) *SaleJournalModel {
	return &SaleJournalModel{
		ID:              s.ID,
		SaleID:          s.SaleID,
		SessionID:       s.SessionID,
		UserID:          s.UserID,
		CustomerID:      s.CustomerID,
		PaymentMethod:   s.PaymentMethod,
		OperationNumber: s.OperationNumber,
		Total:           s.Total,
		Lines:           s.Lines,
		SoldAt:          s.SoldAt,
		CreatedAt:       s.CreatedAt,
	}
}

func (SaleJournalConverter) ToEntity(m *SaleJournalModel) *usecase.JournaledSale {
	return &usecase.JournaledSale{
		ID:              m.ID,
		SaleID:          m.SaleID,
		SessionID:       m.SessionID,
		UserID:          m.UserID,
		CustomerID:      m.CustomerID,
		PaymentMethod:   m.PaymentMethod,
		OperationNumber: m.OperationNumber,
		Total:           m.Total,
		Lines:           m.Lines,
		SoldAt:          m.SoldAt,
		CreatedAt:       m.CreatedAt,
	}
}

type OutboxEventConverter struct{}

func (OutboxEventConverter) ToModel(ev *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          ev.ID,
		EventID:     ev.EventID,
		EventType:   string(ev.EventType),
		AggregateID: ev.AggregateID,
		Payload:     ev.Payload,
		Status:      string(ev.Status),
		CreatedAt:   ev.CreatedAt,
		ProcessedAt: ev.ProcessedAt,
	}
}

func (OutboxEventConverter) ToEntity(m *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          m.ID,
		EventID:     m.EventID,
		EventType:   usecase.OutboxEventType(m.EventType),
		AggregateID: m.AggregateID,
		Payload:     m.Payload,
		Status:      usecase.OutboxStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		ProcessedAt: m.ProcessedAt,
	}
}

func (c OutboxEventConverter) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	res := make([]*usecase.OutboxEvent, 0, len(models))
	for _, m := range models {
		res = append(res, c.ToEntity(m))
	}
	return res
}
