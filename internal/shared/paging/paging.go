// Package paging slices ordered collections into zero-based pages.
package paging

import "math"

// Request identifies a zero-based page of a given size.
type Request struct {
	Page  int
	Limit int
}

// Normalize clamps negative pages to zero and falls back to defaultLimit.
func (r Request) Normalize(defaultLimit int) Request {
	if r.Page < 0 {
		r.Page = 0
	}
	if r.Limit <= 0 {
		r.Limit = defaultLimit
	}
	return r
}

// Offset returns the index of the first item on the page, saturating at
// math.MaxInt when page*limit does not fit in an int.
func (r Request) Offset() int {
	if r.Page <= 0 || r.Limit <= 0 {
		return 0
	}
	if r.Page > math.MaxInt/r.Limit {
		return math.MaxInt
	}
	return r.Page * r.Limit
}

// Page is one slice of a filtered collection.
type Page[T any] struct {
	Items []T
	Total int
	Page  int
	More  bool
}

// Slice returns items[page*limit : page*limit+limit] clamped to bounds.
func Slice[T any](items []T, req Request) Page[T] {
	total := len(items)
	start := req.Offset()
	if start >= total {
		return Page[T]{Items: []T{}, Total: total, Page: req.Page}
	}
	end := start
	switch {
	case req.Limit >= total-start:
		end = total
	case req.Limit > 0:
		end = start + req.Limit
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return Page[T]{Items: out, Total: total, Page: req.Page, More: end < total}
}

// TotalPages returns ceil(total/limit).
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total-1)/limit + 1
}
