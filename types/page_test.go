package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageQuery_Normalize(t *testing.T) {
	cases := []struct {
		name        string
		in          PageQuery
		page, limit int
	}{
		{"defaults", PageQuery{}, 1, 6},
		{"negative", PageQuery{Page: -3, Limit: -1}, 1, 6},
		{"kept", PageQuery{Page: 4, Limit: 20}, 4, 20},
		{"limit capped", PageQuery{Page: 1, Limit: 1 << 40}, 1, MaxLimit},
		{"page capped", PageQuery{Page: math.MaxInt, Limit: 10}, MaxPage, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := tc.in
			q.Normalize(6)
			assert.Equal(t, tc.page, q.Page)
			assert.Equal(t, tc.limit, q.Limit)
		})
	}
}

func TestPageQuery_OffsetDoesNotOverflow(t *testing.T) {
	q := PageQuery{Page: math.MaxInt, Limit: math.MaxInt}
	q.Normalize(6)
	off := q.Offset()
	assert.GreaterOrEqual(t, off, 0)
	assert.Equal(t, (MaxPage-1)*MaxLimit, off)
}
