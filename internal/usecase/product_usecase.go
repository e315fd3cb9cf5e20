package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/DRSN-tech/pos-terminal/internal/domain"
	"github.com/DRSN-tech/pos-terminal/pkg/e"
	"github.com/DRSN-tech/pos-terminal/pkg/logger"
	"golang.org/x/sync/singleflight"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
	cacheFillTimeout = 500 * time.Millisecond
)

// ProductUseCase отвечает на запросы кассы к каталогу. Отдельные товары идут
// через кэш Redis, параллельные промахи по одному id делят один вызов бэкенда.
type ProductUseCase struct {
	products  ProductService
	cacheRepo ProductCacheRepository
	logger    logger.Logger
	sfg       singleflight.Group
}

func NewProductUC(products ProductService, cacheRepo ProductCacheRepository, logger logger.Logger) *ProductUseCase {
	return &ProductUseCase{
		products:  products,
		cacheRepo: cacheRepo,
		logger:    logger,
	}
}

// SearchProducts возвращает страницу каталога и прогревает ею кэш.
func (p *ProductUseCase) SearchProducts(ctx context.Context, req *SearchProductsReq) (*domain.Page[domain.Product], error) {
	const op = "ProductUseCase.SearchProducts"

	normalized := &SearchProductsReq{
		SearchTerm: req.SearchTerm,
		Page:       max(1, req.Page),
		Limit:      normalizeLimit(req.Limit),
	}

	page, err := p.products.SearchProducts(ctx, normalized)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if len(page.Items) > 0 {
		p.fillCache(op, page.Items)
	}

	return page, nil
}

// GetProduct возвращает товар по id, сначала заглядывая в кэш.
func (p *ProductUseCase) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	const op = "ProductUseCase.GetProduct"

	cached, err := p.cacheRepo.GetProducts(ctx, []int64{id})
	if err != nil {
		p.logger.Warnf("product cache lookup failed: %v", e.Wrap(op, err))
	} else if product, ok := cached[id]; ok {
		return &product, nil
	}

	v, err, _ := p.sfg.Do(strconv.FormatInt(id, 10), func() (interface{}, error) {
		return p.products.GetProduct(ctx, id)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	product := v.(*domain.Product)
	p.fillCache(op, []domain.Product{*product})

	// Вызывающие могут менять результат, а общее значение принадлежит всем ожидающим
	res := *product
	return &res, nil
}

// InvalidateProducts убирает продукты из кэша, следующий GetProduct пойдёт в бэкенд.
func (p *ProductUseCase) InvalidateProducts(ctx context.Context, ids ...int64) error {
	const op = "ProductUseCase.InvalidateProducts"

	if len(ids) == 0 {
		return nil
	}
	if err := p.cacheRepo.DeleteProducts(ctx, ids); err != nil {
		return e.Wrap(op, err)
	}
	return nil
}

// fillCache сохраняет товары в фоне, чтобы запросы не ждали Redis.
func (p *ProductUseCase) fillCache(op string, products []domain.Product) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), cacheFillTimeout)
		defer cancel()

		if err := p.cacheRepo.SetProducts(bgCtx, products); err != nil {
			p.logger.Warnf("Failed to cache products in background: %v", e.Wrap(op, err))
		}
	}()
}

func normalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultPageLimit
	case limit > maxPageLimit:
		return maxPageLimit
	default:
		return limit
	}
}
