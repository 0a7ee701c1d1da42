package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	p := Pagination{}.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)

	p = Pagination{Page: -2, Limit: 10000}.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxLimit, p.Limit)

	p = Pagination{Page: 3, Limit: 25}.Normalize()
	assert.Equal(t, 50, p.Offset())
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(25, Pagination{Page: 2, Limit: 10})
	assert.Equal(t, int64(25), meta.Total)
	assert.Equal(t, int64(3), meta.LastPage)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 10, meta.Limit)

	meta = NewMeta(30, Pagination{Page: 1, Limit: 10})
	assert.Equal(t, int64(3), meta.LastPage)

	meta = NewMeta(0, Pagination{Page: 1, Limit: 10})
	assert.Equal(t, int64(0), meta.LastPage)
}

func TestNewPage_NeverNilItems(t *testing.T) {
	page := NewPage[string](nil, 0, Pagination{Page: 1, Limit: 10})
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}
