package pgdb

import (
	"context"

	"github.com/DRSN-tech/pos-terminal/pkg/e"
	"github.com/DRSN-tech/pos-terminal/pkg/tr"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

// TxRunner открывает транзакцию и передает ее репозиториям через ctx.
type TxRunner struct {
	db transaction.Transactional
}

func NewTxRunner(db transaction.Transactional) *TxRunner {
	return &TxRunner{db: db}
}

// WithinTx коммитит, если fn завершилась успешно, и откатывает иначе.
func (r *TxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	const op = "TxRunner.WithinTx"

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, r.db)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(tr.WithTx(ctx, tx.Transaction())); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}
