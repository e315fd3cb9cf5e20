package usecase

import (
	"slices"
	"sync"

	"github.com/DRSN-tech/pos-terminal/internal/domain"
)

// localList - локальная копия списка с бэкенда вместе с запросом, которым она
// была получена. Оптимистичная правка меняет одну запись и при ошибке
// откатывает только её, не трогая записи, добавленные параллельно.
type localList[Q comparable, T any] struct {
	mu     sync.Mutex
	idOf   func(T) int64
	loaded bool
	query  Q
	page   domain.Page[T]
}

func newLocalList[Q comparable, T any](idOf func(T) int64) *localList[Q, T] {
	return &localList[Q, T]{idOf: idOf}
}

// current возвращает копию страницы, если она загружена именно для query.
func (l *localList[Q, T]) current(query Q) (*domain.Page[T], bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.loaded || l.query != query {
		return nil, false
	}
	return l.clone(), true
}

// lastQuery - запрос последней загруженной страницы.
func (l *localList[Q, T]) lastQuery() (Q, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query, l.loaded
}

func (l *localList[Q, T]) replace(query Q, page *domain.Page[T]) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.query = query
	l.page = *page
	l.page.Items = slices.Clone(page.Items)
	l.loaded = true
}

// add дописывает запись. До первой загрузки ничего не делает: загрузка и так
// её вернёт.
func (l *localList[Q, T]) add(item T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.loaded {
		return
	}
	l.page.Items = append(l.page.Items, item)
	l.page.Total++
}

// apply меняет запись id на месте и возвращает её прежнее состояние.
func (l *localList[Q, T]) apply(id int64, fn func(*T)) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var prev T
	i := l.indexOf(id)
	if i == -1 {
		return prev, false
	}
	prev = l.page.Items[i]
	fn(&l.page.Items[i])
	return prev, true
}

// put заменяет запись каноничной версией с сервера и сообщает, нашлась ли она.
func (l *localList[Q, T]) put(item T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(l.idOf(item))
	if i == -1 {
		return false
	}
	l.page.Items[i] = item
	return true
}

// revert возвращает одну запись в состояние prev.
func (l *localList[Q, T]) revert(prev T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i := l.indexOf(l.idOf(prev)); i != -1 {
		l.page.Items[i] = prev
	}
}

func (l *localList[Q, T]) snapshot() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.page.Items)
}

func (l *localList[Q, T]) clone() *domain.Page[T] {
	p := l.page
	p.Items = slices.Clone(l.page.Items)
	return &p
}

func (l *localList[Q, T]) indexOf(id int64) int {
	return slices.IndexFunc(l.page.Items, func(item T) bool { return l.idOf(item) == id })
}
