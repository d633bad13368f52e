// pagination/pagination.go

// Package pagination provides offset pagination for list pages whose
// navigation links are built with the querystring directive.
package pagination

import (
	"net/http"
	"strconv"
)

// Default pagination values.
const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Page represents offset-based pagination parameters.
type Page struct {
	// Page number (1-indexed)
	Page int

	// Items per page
	PerPage int

	// Total items (set after query)
	Total int

	// Total pages (calculated from Total and PerPage)
	TotalPages int
}

// Offset returns the offset for slicing or database queries.
func (p Page) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

// HasNext reports whether there are more pages.
func (p Page) HasNext() bool {
	return p.Total != 0 && p.Page < p.TotalPages
}

// HasPrev reports whether there are previous pages.
func (p Page) HasPrev() bool {
	return p.Page > 1
}

// Next returns the next page number (or the current one on the last page).
func (p Page) Next() int {
	if !p.HasNext() {
		return p.Page
	}
	return p.Page + 1
}

// Prev returns the previous page number (or the current one on page 1).
func (p Page) Prev() int {
	if !p.HasPrev() {
		return p.Page
	}
	return p.Page - 1
}

// SetTotal sets the total count and calculates total pages.
func (p *Page) SetTotal(total int) {
	p.Total = total
	if p.PerPage > 0 {
		p.TotalPages = (total + p.PerPage - 1) / p.PerPage
	}
}

// New creates pagination from page number and per-page count, clamping
// both to sane values.
func New(page, perPage int) Page {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Page{Page: page, PerPage: perPage}
}

// FromRequest extracts pagination from query parameters.
// Supports: ?page=1&per_page=20 or ?page=1&limit=20
func FromRequest(r *http.Request) Page {
	q := r.URL.Query()
	page := parseInt(q.Get("page"), DefaultPage)
	perPage := parseInt(q.Get("per_page"), 0)
	if perPage == 0 {
		perPage = parseInt(q.Get("limit"), DefaultPerPage)
	}
	return New(page, perPage)
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
