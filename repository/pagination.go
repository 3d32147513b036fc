package repository

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Pagination holds caller-supplied page parameters. The offset is always
// derived, never supplied directly.
type Pagination struct {
	Page int
	Size int
}

// DefaultPagination is used when callers pass the zero value.
func DefaultPagination() Pagination {
	return Pagination{Page: 1, Size: 20}
}

// Validate requires page >= 1 and size >= 1.
func (p Pagination) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Page, validation.Required, validation.Min(1)),
		validation.Field(&p.Size, validation.Required, validation.Min(1)),
	)
}

// Offset computes the row offset for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Size
}

// Result is one page of entities plus the totals for the filtered set.
// Results are constructed fresh per query and never cached as a unit.
type Result[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
	Page       int `json:"page"`
	Size       int `json:"size"`
}

// NewResult assembles a page result. TotalPages is ceil(total/size); an empty
// filtered set yields zero pages.
func NewResult[T any](items []T, total int, p Pagination) Result[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if total > 0 {
		pages = (total + p.Size - 1) / p.Size
	}
	return Result[T]{
		Items:      items,
		Total:      total,
		TotalPages: pages,
		Page:       p.Page,
		Size:       p.Size,
	}
}
