package tr

import (
	"context"

	"github.com/DRSN-tech/pos-terminal/pkg/e"
	"github.com/jackc/pgx/v5"
)

type ctxKey struct{}

// WithTx кладет транзакцию драйвера в ctx для репозиториев ниже по цепочке вызовов.
func WithTx(ctx context.Context, tx any) context.Context {
	return context.WithValue(ctx, ctxKey{}, tx)
}

// TxFromCtx достает транзакцию, сохраненную WithTx.
func TxFromCtx(ctx context.Context) (pgx.Tx, error) {
	tx, ok := ctx.Value(ctxKey{}).(pgx.Tx)
	if !ok {
		return nil, e.ErrTransactionNotFound
	}
	return tx, nil
}
