package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name        string
		page, limit int
		total       int64
		last        int
		next, prev  *int
	}{
		{name: "empty list", page: 1, limit: 10, total: 0, last: 1},
		{name: "single short page", page: 1, limit: 40, total: 2, last: 1},
		{name: "first of three", page: 1, limit: 10, total: 25, last: 3, next: intPtr(2)},
		{name: "middle", page: 2, limit: 10, total: 25, last: 3, next: intPtr(3), prev: intPtr(1)},
		{name: "exact multiple", page: 2, limit: 5, total: 10, last: 2, prev: intPtr(1)},
		{name: "past the end", page: 9, limit: 10, total: 25, last: 3, prev: intPtr(8)},
		{name: "page below one", page: 0, limit: 10, total: 25, last: 3, next: intPtr(2)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.page, tc.limit, tc.total)
			assert.Equal(t, 1, p.FirstPage)
			assert.Equal(t, tc.last, p.LastPage)
			assert.Equal(t, tc.total, p.Total)
			assert.Equal(t, tc.next, p.NextPage)
			assert.Equal(t, tc.prev, p.PrevPage)
		})
	}
}

func TestPaginationLinksStayInRange(t *testing.T) {
	for total := int64(0); total <= 60; total += 7 {
		for limit := 1; limit <= 25; limit += 4 {
			for page := 1; page <= 12; page++ {
				p := NewPagination(page, limit, total)
				require.GreaterOrEqual(t, p.LastPage, p.FirstPage)
				if p.NextPage != nil {
					assert.Equal(t, page+1, *p.NextPage)
					assert.LessOrEqual(t, *p.NextPage, p.LastPage)
				}
				if p.PrevPage != nil {
					assert.Equal(t, page-1, *p.PrevPage)
				}
			}
		}
	}
}

func intPtr(v int) *int { return &v }
