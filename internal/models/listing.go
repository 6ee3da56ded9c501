package models

import "math"

const ListingPageSize = 12

// PageOffset converts a 1-based page to a row offset. Pages below 1 mean the
// first page; pages too large to address saturate at math.MaxInt so the
// offset is always past the end rather than negative.
func PageOffset(page, pageSize int) int {
	if page < 1 || pageSize < 1 {
		return 0
	}
	if page-1 > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return (page - 1) * pageSize
}

type ListingFilter struct {
	SearchString string   `json:"search_string,omitempty"`
	CategoryID   *int     `json:"category_id,omitempty"`
	RegionID     *int     `json:"region_id,omitempty"`
	MinPrice     *float64 `json:"min_price,omitempty"`
	MaxPrice     *float64 `json:"max_price,omitempty"`
	Page         int      `json:"page"`
}

// HasCriteria reports whether any narrowing filter is set; paging is not a criterion.
func (f ListingFilter) HasCriteria() bool {
	return f.SearchString != "" || f.CategoryID != nil || f.RegionID != nil ||
		f.MinPrice != nil || f.MaxPrice != nil
}

// Cacheable is true only for the unfiltered first page.
func (f ListingFilter) Cacheable() bool {
	return !f.HasCriteria() && f.Page <= 1
}

type ListingPage struct {
	Filter         ListingFilter   `json:"filter"`
	Advertisements []Advertisement `json:"advertisements"`
	Categories     []Category      `json:"categories"`
	Regions        []Region        `json:"regions"`
	TotalCount     int             `json:"total_count"`
	TotalPages     int             `json:"total_pages"`
}

// TotalPagesFor rounds up; zero items means zero pages.
func TotalPagesFor(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
