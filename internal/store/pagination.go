package store

// DefaultPageLimit is the page size used when the caller supplies no
// (or an unusable) limit.
const DefaultPageLimit = 12

// PageParams contains offset-style pagination request parameters.
type PageParams struct {
	Page  int // 1-based page number
	Limit int // items per page
}

// DefaultPageParams returns the first page with the default limit.
func DefaultPageParams() PageParams {
	return PageParams{Page: 1, Limit: DefaultPageLimit}
}

// Normalize coerces out-of-range parameters back to usable values:
// page >= 1 and limit > 0, defaulting to page 1 and the default limit.
func (p *PageParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
}

// Offset returns the number of records to skip before the requested page.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PagedResult is the pagination envelope returned by paged listings.
type PagedResult[T any] struct {
	Items       []T `json:"items"`
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
}

// totalPages computes ceil(totalItems / limit).
func totalPages(totalItems, limit int) int {
	if totalItems == 0 {
		return 0
	}
	return (totalItems + limit - 1) / limit
}
