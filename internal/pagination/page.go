// Package pagination implements the offset/limit page contract shared by all
// list endpoints: a total count plus opaque next/previous query-string
// fragments. Two construction paths exist, one around a database-counted
// result set and one around an already-fetched slice. Both produce identical
// count/next/previous semantics for page-aligned offsets.
package pagination

import "fmt"

// DefaultLimit is applied when the caller passes no limit (or a non-positive
// one, which would otherwise divide by zero in the page-index math).
const DefaultLimit int64 = 20

// Query carries the raw limit/offset from the transport layer.
type Query struct {
	Limit  *int64
	Offset *int64
}

// Bounds resolves the effective limit and offset, applying defaults and
// guarding against non-positive limits and negative offsets.
func (q Query) Bounds() (limit, offset int64) {
	limit = DefaultLimit
	if q.Limit != nil && *q.Limit > 0 {
		limit = *q.Limit
	}
	if q.Offset != nil && *q.Offset > 0 {
		offset = *q.Offset
	}
	return limit, offset
}

// PageBounds resolves limit and offset with the offset aligned down to a page
// boundary, the way the database-paginated path fetches pages.
func (q Query) PageBounds() (limit, offset int64) {
	limit, offset = q.Bounds()
	return limit, (offset / limit) * limit
}

// Page is the response shape for a paginated listing. Next and Previous are
// query-string fragments ("?limit=20&offset=40"), not absolute URLs; the base
// path is the transport layer's concern.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func fragment(limit, offset int64) *string {
	s := fmt.Sprintf("?limit=%d&offset=%d", limit, offset)
	return &s
}

// NewPage wraps results that were fetched with q against a separately counted
// total. The current page index is offset/limit; next exists while a further
// page holds rows, previous while the index is positive.
func NewPage[T any](results []T, total int64, q Query) Page[T] {
	limit, offset := q.Bounds()
	page := offset / limit

	p := Page[T]{Count: total, Results: results}
	if p.Results == nil {
		p.Results = []T{}
	}

	if (page+1)*limit < total {
		p.Next = fragment(limit, (page+1)*limit)
	}
	if page > 0 {
		p.Previous = fragment(limit, (page-1)*limit)
	}

	return p
}

// Paginate slices an already-fetched list: skip offset, take limit. Used for
// listings where filtering happens in memory.
func Paginate[T any](items []T, q Query) Page[T] {
	limit, offset := q.Bounds()
	total := int64(len(items))

	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	p := Page[T]{Count: total, Results: items[start:end]}
	if p.Results == nil {
		p.Results = []T{}
	}

	if offset+limit < total {
		p.Next = fragment(limit, offset+limit)
	}
	if offset > 0 {
		prev := offset - limit
		if prev < 0 {
			prev = 0
		}
		p.Previous = fragment(limit, prev)
	}

	return p
}
