package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/DRSN-tech/pos-terminal/internal/domain"
	"github.com/DRSN-tech/pos-terminal/internal/usecase"
	"github.com/DRSN-tech/pos-terminal/pkg/e"
)

func (c *Client) ListReceptions(ctx context.Context, req *usecase.ListReceptionsReq) (*domain.Page[domain.Reception], error) {
	const op = "Client.ListReceptions"

	q := pageQuery(req.Page, req.Limit)
	if term := strings.TrimSpace(req.SearchTerm); term != "" {
		q.Set("searchTerm", term)
	}

	var res pageDTO[receptionDTO]
	if err := c.getJSON(ctx, "/receptions", q, &res); err != nil {
		return nil, e.Wrap(op, err)
	}

	items := make([]domain.Reception, 0, len(res.Data))
	for _, r := range res.Data {
		items = append(items, toDomainReception(r))
	}

	return &domain.Page[domain.Reception]{
		Items:      items,
		Page:       res.Page,
		Limit:      res.Limit,
		Total:      res.Total,
		TotalPages: res.TotalPages,
	}, nil
}

func (c *Client) CreateReception(ctx context.Context, in *domain.ReceptionInput) (*domain.Reception, error) {
	const op = "Client.CreateReception"

	var res receptionDTO
	if err := c.sendJSON(ctx, http.MethodPost, "/receptions", toCreateReceptionDTO(in), &res, nil); err != nil {
		return nil, e.Wrap(op, err)
	}
	if res.ID == 0 {
		return nil, e.Wrap(op, e.ErrBackendRejected)
	}

	reception := toDomainReception(res)
	return &reception, nil
}

func (c *Client) UpdateReception(ctx context.Context, id int64, patch *domain.ReceptionPatch) (*domain.Reception, error) {
	const op = "Client.UpdateReception"

	var res receptionDTO
	err := c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/receptions/%d", id), toUpdateReceptionDTO(patch), &res, nil)
	switch {
	case errors.Is(err, errNotFound):
		return nil, e.Wrap(op, e.ErrReceptionNotFound)
	case err != nil:
		return nil, e.Wrap(op, err)
	}

	reception := toDomainReception(res)
	if reception.ID == 0 {
		reception.ID = id
	}
	return &reception, nil
}
