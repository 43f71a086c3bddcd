// Package pagination turns a (page, limit) request into a bounded slice of a
// list plus the metadata clients need to render page controls.
package pagination

import (
	"context"
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Request is a validated page request. Page and Limit are always >= 1.
type Request struct {
	Page  int
	Limit int
}

// Skip is the number of items before the first item of the page. It
// saturates at math.MaxInt instead of overflowing.
func (r Request) Skip() int {
	if r.Page < 1 || r.Limit < 1 {
		return 0
	}
	if r.Page-1 > math.MaxInt/r.Limit {
		return math.MaxInt
	}
	return (r.Page - 1) * r.Limit
}

// pastEnd reports whether the page starts beyond the last of total items.
func (r Request) pastEnd(total int) bool {
	return total <= 0 || r.Page-1 > (total-1)/r.Limit
}

// ParseRequest reads "page" and "limit" from q. Absent, non-numeric or
// non-positive values fall back to the defaults; parsing never fails.
// limit has no upper bound.
func ParseRequest(q url.Values) Request {
	return Request{
		Page:  positiveOr(q.Get("page"), DefaultPage),
		Limit: positiveOr(q.Get("limit"), DefaultLimit),
	}
}

func positiveOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// Meta is the pagination block returned next to every list.
type Meta struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	TotalItems      int  `json:"totalItems"`
	ItemsPerPage    int  `json:"itemsPerPage"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// NewMeta derives the metadata for req over totalItems.
func NewMeta(req Request, totalItems int) Meta {
	totalPages := 0
	if totalItems > 0 {
		totalPages = totalItems / req.Limit
		if totalItems%req.Limit != 0 {
			totalPages++
		}
	}
	return Meta{
		CurrentPage:     req.Page,
		TotalPages:      totalPages,
		TotalItems:      totalItems,
		ItemsPerPage:    req.Limit,
		HasNextPage:     req.Page < totalPages,
		HasPreviousPage: req.Page > 1 && totalPages > 0,
	}
}

// Result is one page of T. Items is never nil.
type Result[T any] struct {
	Items []T
	Meta  Meta
}

// CountFunc reports the total number of items in the list.
type CountFunc func(ctx context.Context) (int, error)

// FetchFunc returns up to limit items after skipping skip, in list order.
type FetchFunc[T any] func(ctx context.Context, skip, limit int) ([]T, error)

// ListPage counts the full list, fetches the requested slice and combines
// them. Nothing is cached; equal requests over an unchanged store give
// equal results.
func ListPage[T any](ctx context.Context, req Request, count CountFunc, fetch FetchFunc[T]) (*Result[T], error) {
	if req.Page < 1 {
		req.Page = DefaultPage
	}
	if req.Limit < 1 {
		req.Limit = DefaultLimit
	}

	total, err := count(ctx)
	if err != nil {
		return nil, err
	}

	items := []T{}
	if !req.pastEnd(total) {
		items, err = fetch(ctx, req.Skip(), req.Limit)
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []T{}
		}
	}

	return &Result[T]{Items: items, Meta: NewMeta(req, total)}, nil
}
