package backend

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/DRSN-tech/pos-terminal/internal/domain"
	"github.com/DRSN-tech/pos-terminal/pkg/e"
)

// SearchByDNI возвращает e.ErrCustomerNotFound и для {"found": false}, и для 404.
func (c *Client) SearchByDNI(ctx context.Context, dni string) (*domain.Customer, error) {
	const op = "Client.SearchByDNI"

	var res customerSearchDTO
	err := c.getJSON(ctx, "/customers/search", url.Values{"dni": {dni}}, &res)
	switch {
	case errors.Is(err, errNotFound):
		return nil, e.Wrap(op, e.ErrCustomerNotFound)
	case err != nil:
		return nil, e.Wrap(op, err)
	}

	if !res.Found || res.Data == nil {
		return nil, e.Wrap(op, e.ErrCustomerNotFound)
	}

	return toDomainCustomer(*res.Data), nil
}

func (c *Client) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	const op = "Client.CreateCustomer"

	var res customerDTO
	if err := c.sendJSON(ctx, http.MethodPost, "/customers", toCustomerDTO(customer), &res, nil); err != nil {
		return nil, e.Wrap(op, err)
	}
	if res.ID == 0 {
		return nil, e.Wrap(op, e.ErrBackendRejected)
	}

	return toDomainCustomer(res), nil
}
