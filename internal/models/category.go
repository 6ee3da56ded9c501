package models

type Category struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	ParentID   *int   `json:"parent_id,omitempty"`
	ParentName string `json:"parent_name,omitempty"`
	AdCount    int    `json:"ad_count,omitempty"`
}

type CategoryDetails struct {
	Category       Category        `json:"category"`
	Advertisements []Advertisement `json:"advertisements"`
}

// SearchSuggestion is the autocomplete item shape: label shown, val submitted.
type SearchSuggestion struct {
	Label string `json:"label"`
	Val   int    `json:"val"`
}

// APICategory mirrors the public API casing.
type APICategory struct {
	CategoryID   int    `json:"CategoryID"`
	CategoryName string `json:"CategoryName"`
}
