package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/DRSN-tech/pos-terminal/internal/domain"
	"github.com/DRSN-tech/pos-terminal/pkg/e"
)

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const op = "Client.ListCategories"

	var res []categoryDTO
	if err := c.getJSON(ctx, "/categories", nil, &res); err != nil {
		return nil, e.Wrap(op, err)
	}

	list := make([]domain.Category, 0, len(res))
	for _, dto := range res {
		list = append(list, toDomainCategory(dto))
	}
	return list, nil
}

func (c *Client) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	const op = "Client.CreateCategory"

	var res categoryDTO
	if err := c.sendJSON(ctx, http.MethodPost, "/categories", categoryReqDTO{Name: name}, &res, nil); err != nil {
		return nil, e.Wrap(op, err)
	}

	category := toDomainCategory(res)
	return &category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id int64, name string) (*domain.Category, error) {
	const op = "Client.UpdateCategory"

	var res categoryDTO
	err := c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", id), categoryReqDTO{Name: name}, &res, nil)
	switch {
	case errors.Is(err, errNotFound):
		return nil, e.Wrap(op, e.ErrCategoryNotFound)
	case err != nil:
		return nil, e.Wrap(op, err)
	}

	category := toDomainCategory(res)
	if category.ID == 0 {
		category.ID = id
	}
	return &category, nil
}
