package domain

import (
	"strings"
	"time"

	"github.com/DRSN-tech/pos-terminal/pkg/e"
)

// Category группирует товары в каталоге.
type Category struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// CategoryName обрезает пробелы и отклоняет пустые имена.
func CategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", e.ErrStatusBadRequest
	}
	return name, nil
}

// Rename переименовывает локально, не дожидаясь ответа бэкенда.
func (c *Category) Rename(name string) {
	c.Name = name
}
