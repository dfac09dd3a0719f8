package models

import (
	"fmt"
	"time"
)

// NormalizedSearchResult is the canonical paginated result shape. TotalPages
// is computed once at construction and never silently recalculated, so a
// later mutation of TotalCount cannot drift the pagination.
type NormalizedSearchResult struct {
	Properties  []NormalizedProperty   `json:"properties"`
	TotalCount  int                    `json:"total_count"`
	Page        int                    `json:"page"`
	PerPage     int                    `json:"per_page"`
	TotalPages  int                    `json:"total_pages"`
	QueryParams map[string]interface{} `json:"query_params,omitempty"`
	Provider    string                 `json:"provider,omitempty"`
	FetchedAt   time.Time              `json:"fetched_at"`
	Error       string                 `json:"error,omitempty"`
}

// NewSearchResult builds a result and derives TotalPages from TotalCount
// and PerPage. Pass totalPages > 0 to keep an explicitly supplied value.
func NewSearchResult(properties []NormalizedProperty, totalCount, page, perPage, totalPages int) *NormalizedSearchResult {
	if properties == nil {
		properties = []NormalizedProperty{}
	}
	if page < 1 {
		page = 1
	}
	if totalPages == 0 && perPage > 0 {
		totalPages = (totalCount + perPage - 1) / perPage
	}
	return &NormalizedSearchResult{
		Properties: properties,
		TotalCount: totalCount,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		FetchedAt:  time.Now().UTC(),
	}
}

// EmptySearchResult returns a valid result with no listings, used when a
// tenant has no provider configured or a provider call degraded.
func EmptySearchResult(page, perPage int) *NormalizedSearchResult {
	return NewSearchResult(nil, 0, page, perPage, 0)
}

// Success reports whether the result came back without a provider error.
// Callers that need to distinguish "no results" from "provider down"
// check this instead of the listing count.
func (r *NormalizedSearchResult) Success() bool {
	return r.Error == ""
}

func (r *NormalizedSearchResult) FirstPage() bool {
	return r.Page <= 1
}

func (r *NormalizedSearchResult) LastPage() bool {
	return r.Page >= r.TotalPages
}

// NextPage returns the following page number, or 0 when on the last page.
func (r *NormalizedSearchResult) NextPage() int {
	if r.LastPage() {
		return 0
	}
	return r.Page + 1
}

// PrevPage returns the preceding page number, or 0 when on the first page.
func (r *NormalizedSearchResult) PrevPage() int {
	if r.FirstPage() {
		return 0
	}
	return r.Page - 1
}

// PageRange returns the window of page numbers to render around the
// current page, clamped to [1, TotalPages].
func (r *NormalizedSearchResult) PageRange(window int) (int, int) {
	from := r.Page - window
	if from < 1 {
		from = 1
	}
	to := r.Page + window
	if to > r.TotalPages {
		to = r.TotalPages
	}
	return from, to
}

// ResultsRange renders a human-readable span like "1-24 of 150".
func (r *NormalizedSearchResult) ResultsRange() string {
	if r.TotalCount == 0 {
		return "0 of 0"
	}
	offset := (r.Page - 1) * r.PerPage
	upper := offset + r.PerPage
	if upper > r.TotalCount {
		upper = r.TotalCount
	}
	return fmt.Sprintf("%d-%d of %d", offset+1, upper, r.TotalCount)
}
