package pgdb

import (
	"context"
	"fmt"

	"github.com/DRSN-tech/pos-terminal/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/pos-terminal/internal/usecase"
	"github.com/DRSN-tech/pos-terminal/pkg/e"
	"github.com/DRSN-tech/pos-terminal/pkg/tr"
	"github.com/jimlawless/whereami"
)

// SaleJournalRepo записывает продажи, принятые бэкендом. Каждый id продажи
// попадает в журнал не более одного раза.
type SaleJournalRepo struct {
	conv converter.SaleJournalConverter
}

func NewSaleJournalRepo() *SaleJournalRepo {
	return &SaleJournalRepo{}
}

func (s *SaleJournalRepo) Create(ctx context.Context, sale *usecase.JournaledSale) (*usecase.JournaledSale, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := s.conv.ToModel(sale)
	query := `
		INSERT INTO sale_journal (
			sale_id,
			session_id,
			user_id,
			customer_id,
			payment_method,
			operation_number,
			total,
			lines,
			sold_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at;
	`

	if err := tx.QueryRow(ctx, query,
		model.SaleID,
		model.SessionID,
		model.UserID,
		model.CustomerID,
		model.PaymentMethod,
		model.OperationNumber,
		model.Total.String(),
		model.Lines,
		model.SoldAt,
	).Scan(&model.ID, &model.CreatedAt); err != nil {
		if postgresDuplicate(err) {
			return nil, fmt.Errorf("%s: sale %d is already journaled", whereami.WhereAmI(), sale.SaleID)
		}

		return nil, fmt.Errorf("%s: failed to insert sale: %w", whereami.WhereAmI(), err)
	}

	return s.conv.ToEntity(model), nil
}
