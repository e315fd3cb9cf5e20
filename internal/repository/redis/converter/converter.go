package converter

import "github.com/DRSN-tech/pos-terminal/internal/domain"

// ProductConverter переводит товары каталога в форму для кэша и обратно.
type ProductConverter struct{}

func (ProductConverter) ToRedisModel(p *domain.Product) *ProductRedisModel {
	return &ProductRedisModel{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		UnitType:    p.UnitType,
		CategoryID:  p.CategoryID,
		Active:      p.Active,
	}
}

func (ProductConverter) ToDomain(m *ProductRedisModel) *domain.Product {
	return &domain.Product{
		ID:          m.ID,
		SKU:         m.SKU,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Stock:       m.Stock,
		UnitType:    m.UnitType,
		CategoryID:  m.CategoryID,
		Active:      m.Active,
	}
}

func (c ProductConverter) ToArrRedisModel(products []domain.Product) []ProductRedisModel {
	res := make([]ProductRedisModel, 0, len(products))
	for i := range products {
		res = append(res, *c.ToRedisModel(&products[i]))
	}
	return res
}

// RegisterConverter переводит сессию кассы в форму для кэша и обратно.
type RegisterConverter struct {
	products ProductConverter
}

func (c RegisterConverter) ToRedisModel(r *domain.Register) *RegisterRedisModel {
	lines := make([]CartLineRedisModel, 0, len(r.Cart.Lines))
	for i := range r.Cart.Lines {
		lines = append(lines, CartLineRedisModel{
			Product:  *c.products.ToRedisModel(&r.Cart.Lines[i].Product),
			Quantity: r.Cart.Lines[i].Quantity,
		})
	}

	model := &RegisterRedisModel{
		SessionID:       r.SessionID,
		Lines:           lines,
		HighlightedID:   r.Cart.HighlightedID,
		HighlightUntil:  r.Cart.HighlightUntil,
		PaymentMethod:   r.PaymentMethod,
		OperationNumber: r.OperationNumber,
		DNISearch:       r.DNISearch,
		UpdatedAt:       r.UpdatedAt,
	}
	if r.Customer != nil {
		model.Customer = &CustomerRedisModel{
			ID:            r.Customer.ID,
			DNI:           r.Customer.DNI,
			Name:          r.Customer.Name,
			FirstSurname:  r.Customer.FirstSurname,
			SecondSurname: r.Customer.SecondSurname,
		}
	}
	return model
}

func (c RegisterConverter) ToDomain(m *RegisterRedisModel) *domain.Register {
	var lines []domain.CartLine
	if len(m.Lines) > 0 {
		lines = make([]domain.CartLine, 0, len(m.Lines))
	}
	for i := range m.Lines {
		lines = append(lines, domain.CartLine{
			Product:  *c.products.ToDomain(&m.Lines[i].Product),
			Quantity: m.Lines[i].Quantity,
		})
	}

	reg := &domain.Register{
		SessionID: m.SessionID,
		Cart: domain.Cart{
			Lines:          lines,
			HighlightedID:  m.HighlightedID,
			HighlightUntil: m.HighlightUntil,
		},
		PaymentMethod:   m.PaymentMethod,
		OperationNumber: m.OperationNumber,
		DNISearch:       m.DNISearch,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.Customer != nil {
		reg.Customer = &domain.Customer{
			ID:            m.Customer.ID,
			DNI:           m.Customer.DNI,
			Name:          m.Customer.Name,
			FirstSurname:  m.Customer.FirstSurname,
			SecondSurname: m.Customer.SecondSurname,
		}
	}
	return reg
}
