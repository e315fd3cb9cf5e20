package usecase

import (
	"context"

	"github.com/DRSN-tech/pos-terminal/internal/domain"
	"github.com/DRSN-tech/pos-terminal/pkg/e"
	"github.com/DRSN-tech/pos-terminal/pkg/logger"
)

// CategoryUseCase держит локальную копию списка категорий и отдаёт её без
// обращения к бэкенду. Переименование сначала применяется локально, при успехе
// запись заменяется ответом сервера, при ошибке откатывается только она.
type CategoryUseCase struct {
	categories CategoryService
	local      *localList[struct{}, domain.Category]
	logger     logger.Logger
}

func NewCategoryUC(categories CategoryService, logger logger.Logger) *CategoryUseCase {
	return &CategoryUseCase{
		categories: categories,
		local:      newLocalList[struct{}](func(c domain.Category) int64 { return c.ID }),
		logger:     logger,
	}
}

// List отдаёт локальную копию. С refresh или до первой загрузки идёт в бэкенд.
func (c *CategoryUseCase) List(ctx context.Context, refresh bool) ([]domain.Category, error) {
	const op = "CategoryUseCase.List"

	if !refresh {
		if page, ok := c.local.current(struct{}{}); ok {
			return page.Items, nil
		}
	}

	list, err := c.categories.ListCategories(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	c.local.replace(struct{}{}, &domain.Page[domain.Category]{Items: list, Total: len(list)})
	return list, nil
}

func (c *CategoryUseCase) Create(ctx context.Context, name string) (*domain.Category, error) {
	const op = "CategoryUseCase.Create"

	name, err := domain.CategoryName(name)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	created, err := c.categories.CreateCategory(ctx, name)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	c.local.add(*created)
	return created, nil
}

// Rename оптимистично переименовывает категорию.
func (c *CategoryUseCase) Rename(ctx context.Context, id int64, name string) (*domain.Category, error) {
	const op = "CategoryUseCase.Rename"

	name, err := domain.CategoryName(name)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	prev, applied := c.local.apply(id, func(cat *domain.Category) { cat.Rename(name) })

	updated, err := c.categories.UpdateCategory(ctx, id, name)
	if err != nil {
		if applied {
			c.local.revert(prev)
		}
		c.logger.Warnf("category %d rename rolled back: %v", id, err)
		return nil, e.Wrap(op, err)
	}

	if !c.local.put(*updated) {
		c.local.add(*updated)
	}
	return updated, nil
}

// Snapshot возвращает копию локально известных категорий.
func (c *CategoryUseCase) Snapshot() []domain.Category {
	return c.local.snapshot()
}
