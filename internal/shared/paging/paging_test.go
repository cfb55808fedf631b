package paging

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

	first := Slice(items, Request{Page: 0, Limit: 10})
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, first.Items)
	assert.Equal(t, 12, first.Total)
	assert.True(t, first.More)

	second := Slice(items, Request{Page: 1, Limit: 10})
	assert.Equal(t, []int{11, 12}, second.Items)
	assert.Equal(t, 1, second.Page)
	assert.False(t, second.More)

	beyond := Slice(items, Request{Page: 5, Limit: 10})
	assert.Empty(t, beyond.Items)
	assert.Equal(t, 12, beyond.Total)
	assert.False(t, beyond.More)

	wide := Slice(items, Request{Page: 0, Limit: math.MaxInt})
	assert.Equal(t, items, wide.Items)
	assert.False(t, wide.More)

	wideSecond := Slice(items, Request{Page: 1, Limit: math.MaxInt})
	assert.Empty(t, wideSecond.Items)
	assert.Equal(t, 12, wideSecond.Total)
	assert.False(t, wideSecond.More)

	far := Slice(items, Request{Page: math.MaxInt, Limit: 2})
	assert.Empty(t, far.Items)
	assert.Equal(t, 12, far.Total)
	assert.Equal(t, math.MaxInt, far.Page)
	assert.False(t, far.More)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 20, Request{Page: 2, Limit: 10}.Offset())
	assert.Equal(t, 0, Request{Page: 0, Limit: math.MaxInt}.Offset())
	assert.Equal(t, math.MaxInt, Request{Page: 1, Limit: math.MaxInt}.Offset())
	assert.Equal(t, math.MaxInt, Request{Page: math.MaxInt, Limit: 2}.Offset())
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, Request{Page: 0, Limit: 10}, Request{Page: -3}.Normalize(10))
	assert.Equal(t, Request{Page: 2, Limit: 3}, Request{Page: 2, Limit: 3}.Normalize(10))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 2, TotalPages(12, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(12, math.MaxInt))
}
