package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/DRSN-tech/pos-terminal/internal/domain"
	"github.com/DRSN-tech/pos-terminal/internal/usecase"
	"github.com/DRSN-tech/pos-terminal/pkg/e"
)

func (c *Client) SearchProducts(ctx context.Context, req *usecase.SearchProductsReq) (*domain.Page[domain.Product], error) {
	const op = "Client.SearchProducts"

	q := pageQuery(req.Page, req.Limit)
	if term := strings.TrimSpace(req.SearchTerm); term != "" {
		q.Set("searchTerm", term)
	}

	var res pageDTO[productDTO]
	if err := c.getJSON(ctx, "/products", q, &res); err != nil {
		return nil, e.Wrap(op, err)
	}

	return toDomainProductPage(res), nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	const op = "Client.GetProduct"

	var res productDTO
	err := c.getJSON(ctx, fmt.Sprintf("/products/%d", id), nil, &res)
	switch {
	case errors.Is(err, errNotFound):
		return nil, e.Wrap(op, e.ErrProductNotFound)
	case err != nil:
		return nil, e.Wrap(op, err)
	}

	product := toDomainProduct(res)
	return &product, nil
}
