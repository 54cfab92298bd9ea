package domain

// Page sizes for a user's trip listing.
const (
	DefaultTripPageSize = 20
	MaxTripPageSize     = 100
)

// PaginationParams selects one page of a user's trips, ordered by start date.
// Page is 1-indexed.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams builds PaginationParams from the optional page and limit
// query values of GET /users/{userID}/trips. Missing or non-positive values
// fall back to page 1 and DefaultTripPageSize; limit is capped at MaxTripPageSize.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: DefaultTripPageSize}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, MaxTripPageSize)
	}
	return p
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
