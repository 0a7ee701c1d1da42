// Package pagination implements offset pagination for list endpoints.
package pagination

const (
	DefaultLimit = 100
	MaxLimit     = 250
)

type Pagination struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=100"`
}

// Meta describes the page returned alongside the items.
type Meta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	LastPage int64 `json:"lastPage"`
	Limit    int   `json:"limit"`
}

// Page is a single page of results.
type Page[T any] struct {
	Items []T  `json:"items"`
	Meta  Meta `json:"meta"`
}

// Normalize clamps page and limit into their valid ranges.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// NewMeta computes page metadata for a total row count.
func NewMeta(total int64, p Pagination) Meta {
	lastPage := total / int64(p.Limit)
	if total%int64(p.Limit) != 0 {
		lastPage++
	}
	return Meta{
		Total:    total,
		Page:     p.Page,
		LastPage: lastPage,
		Limit:    p.Limit,
	}
}

// NewPage assembles a page, never returning nil items.
func NewPage[T any](items []T, total int64, p Pagination) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Meta: NewMeta(total, p)}
}
