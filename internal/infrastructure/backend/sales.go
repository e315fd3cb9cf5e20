package backend

import (
	"context"
	"net/http"
	"strings"

	"github.com/DRSN-tech/pos-terminal/internal/domain"
	"github.com/DRSN-tech/pos-terminal/internal/usecase"
	"github.com/DRSN-tech/pos-terminal/pkg/e"
)

// CreateSale отправляет продажу один раз. Ключ идемпотентности позволяет
// бэкенду отбросить дубликат, если вызывающий повторит запрос после неясного сбоя.
func (c *Client) CreateSale(ctx context.Context, sale *domain.SaleDraft, idempotencyKey string) (*domain.SaleReceipt, error) {
	const op = "Client.CreateSale"

	var res saleDTO
	err := c.sendJSON(ctx, http.MethodPost, "/sales", toCreateSaleDTO(sale), &res, idempotencyHeaderFor(idempotencyKey))
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if res.ID == 0 {
		return nil, e.Wrap(op, e.ErrBackendRejected)
	}

	receipt := &domain.SaleReceipt{SaleID: res.ID}
	if res.Total != nil {
		receipt.Total = *res.Total
	}
	return receipt, nil
}

func (c *Client) ListSales(ctx context.Context, req *usecase.ListSalesReq) (*domain.Page[domain.Sale], error) {
	const op = "Client.ListSales"

	q := pageQuery(req.Page, req.Limit)
	if search := strings.TrimSpace(req.Search); search != "" {
		q.Set("search", search)
	}

	var res pageDTO[saleDTO]
	if err := c.getJSON(ctx, "/sales", q, &res); err != nil {
		return nil, e.Wrap(op, err)
	}

	items := make([]domain.Sale, 0, len(res.Data))
	for _, s := range res.Data {
		items = append(items, toDomainSale(s))
	}

	return &domain.Page[domain.Sale]{
		Items:      items,
		Page:       res.Page,
		Limit:      res.Limit,
		Total:      res.Total,
		TotalPages: res.TotalPages,
	}, nil
}
