// Package query holds the read-side use cases. They call one query gateway and never open a unit of work.
package query

import (
	"math"

	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxOffset keeps offsets within what a Postgres OFFSET parameter (int4) can carry.
	MaxOffset = math.MaxInt32
)

// Page is 1-based paging input shared by list queries. Zero values mean page 1 and DefaultPageSize.
type Page struct {
	Page int
	Size int
}

// bounds validates p and returns the gateway offset and limit.
func (p Page) bounds() (offset, limit int, err error) {
	page, size := p.Page, p.Size
	if page == 0 {
		page = 1
	}
	if size == 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		return 0, 0, domerrors.NewValidationError("page", "must be at least 1")
	}
	if size < 1 || size > MaxPageSize {
		return 0, 0, domerrors.NewValidationError("size", "must be between 1 and 100")
	}
	// Compare by division so a huge page cannot overflow the product.
	if page-1 > MaxOffset/size {
		return 0, 0, domerrors.NewValidationError("page", "is beyond the last addressable row")
	}
	return (page - 1) * size, size, nil
}

// Result is one page of projections plus the total number of matches.
type Result[T any] struct {
	Items []T
	Total int
	Page  int
	Size  int
}

func newResult[T any](items []T, total, offset, limit int) *Result[T] {
	if items == nil {
		items = []T{}
	}
	return &Result[T]{Items: items, Total: total, Page: offset/limit + 1, Size: limit}
}
