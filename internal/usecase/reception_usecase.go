package usecase

import (
	"context"
	"strings"

	"github.com/DRSN-tech/pos-terminal/internal/domain"
	"github.com/DRSN-tech/pos-terminal/pkg/e"
	"github.com/DRSN-tech/pos-terminal/pkg/logger"
)

type receptionQuery struct {
	searchTerm string
	page       int
	limit      int
}

// ReceptionUseCase ведёт приёмки товара. Последняя просмотренная страница
// хранится локально: правка применяется к ней сразу и откатывается при ошибке,
// после создания страница перечитывается с бэкенда.
type ReceptionUseCase struct {
	receptions ReceptionService
	products   ProductCacheInvalidator
	local      *localList[receptionQuery, domain.Reception]
	logger     logger.Logger
}

func NewReceptionUC(receptions ReceptionService, products ProductCacheInvalidator, logger logger.Logger) *ReceptionUseCase {
	return &ReceptionUseCase{
		receptions: receptions,
		products:   products,
		local:      newLocalList[receptionQuery](func(r domain.Reception) int64 { return r.ID }),
		logger:     logger,
	}
}

func (r *ReceptionUseCase) List(ctx context.Context, req *ListReceptionsReq) (*domain.Page[domain.Reception], error) {
	const op = "ReceptionUseCase.List"

	q := receptionQuery{
		searchTerm: strings.TrimSpace(req.SearchTerm),
		page:       max(1, req.Page),
		limit:      normalizeLimit(req.Limit),
	}

	if !req.Refresh {
		if page, ok := r.local.current(q); ok {
			return page, nil
		}
	}

	page, err := r.fetch(ctx, q)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	return page, nil
}

// Create регистрирует приёмку от имени кассира.
func (r *ReceptionUseCase) Create(ctx context.Context, id domain.Identity, in *domain.ReceptionInput) (*domain.Reception, error) {
	const op = "ReceptionUseCase.Create"

	input := *in
	input.UserID = id.UserID
	if err := input.Validate(); err != nil {
		return nil, e.Wrap(op, err)
	}

	created, err := r.receptions.CreateReception(ctx, &input)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	r.forgetProducts(ctx, created.ProductID)

	// ответ на POST неполный (нет имён продукта и поставщика), поэтому страницу перечитываем
	q, ok := r.local.lastQuery()
	if !ok {
		q = receptionQuery{page: 1, limit: defaultPageLimit}
	}
	if _, err := r.fetch(ctx, q); err != nil {
		r.logger.Warnf("reception %d created, page reload failed: %v", created.ID, e.Wrap(op, err))
	}

	return created, nil
}

// Update оптимистично меняет приёмку на локальной странице.
func (r *ReceptionUseCase) Update(ctx context.Context, receptionID int64, patch *domain.ReceptionPatch) (*domain.Reception, error) {
	const op = "ReceptionUseCase.Update"

	if err := patch.Validate(); err != nil {
		return nil, e.Wrap(op, err)
	}

	prev, applied := r.local.apply(receptionID, func(rec *domain.Reception) { rec.Apply(*patch) })

	updated, err := r.receptions.UpdateReception(ctx, receptionID, patch)
	if err != nil {
		if applied {
			r.local.revert(prev)
		}
		r.logger.Warnf("reception %d update rolled back: %v", receptionID, err)
		return nil, e.Wrap(op, err)
	}

	r.local.put(*updated)

	ids := []int64{updated.ProductID}
	if applied && prev.ProductID != updated.ProductID {
		ids = append(ids, prev.ProductID)
	}
	r.forgetProducts(ctx, ids...)

	return updated, nil
}

// Snapshot возвращает копию локальной страницы.
func (r *ReceptionUseCase) Snapshot() []domain.Reception {
	return r.local.snapshot()
}

func (r *ReceptionUseCase) fetch(ctx context.Context, q receptionQuery) (*domain.Page[domain.Reception], error) {
	page, err := r.receptions.ListReceptions(ctx, &ListReceptionsReq{
		SearchTerm: q.searchTerm,
		Page:       q.page,
		Limit:      q.limit,
	})
	if err != nil {
		return nil, err
	}

	r.local.replace(q, page)
	return page, nil
}

// forgetProducts сбрасывает кэш продуктов, чтобы касса увидела новый остаток.
func (r *ReceptionUseCase) forgetProducts(ctx context.Context, ids ...int64) {
	if err := r.products.InvalidateProducts(ctx, ids...); err != nil {
		r.logger.Warnf("product cache invalidation failed for %v: %v", ids, err)
	}
}
