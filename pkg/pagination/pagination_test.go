package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		query string
		want  Params
	}{
		{"", Params{Page: 1, PerPage: 20, Offset: 0}},
		{"?page=3&per_page=5", Params{Page: 3, PerPage: 5, Offset: 10}},
		{"?page=0&per_page=500", Params{Page: 1, PerPage: 20, Offset: 0}},
		{"?page=abc&per_page=-1", Params{Page: 1, PerPage: 20, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/v1/wishlist"+tt.query, nil)
			assert.Equal(t, tt.want, FromRequest(r))
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	res := Paginate(items, Params{Page: 2, PerPage: 2, Offset: 2})
	assert.Equal(t, []int{3, 4}, res.Data)
	assert.Equal(t, 5, res.TotalCount)
	assert.Equal(t, 3, res.TotalPages)
	assert.True(t, res.HasNext)
	assert.True(t, res.HasPrev)

	last := Paginate(items, Params{Page: 3, PerPage: 2, Offset: 4})
	assert.Equal(t, []int{5}, last.Data)
	assert.False(t, last.HasNext)

	past := Paginate(items, Params{Page: 9, PerPage: 2, Offset: 16})
	assert.Empty(t, past.Data)
	assert.NotNil(t, past.Data)
}

func TestPaginate_Empty(t *testing.T) {
	res := Paginate([]string(nil), DefaultParams())
	assert.Equal(t, 0, res.TotalPages)
	assert.False(t, res.HasNext)
	assert.False(t, res.HasPrev)
	assert.Equal(t, []string{}, res.Data)
}
