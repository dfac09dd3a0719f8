package models

import "testing"

func TestNewSearchResultPagination(t *testing.T) {
	tests := []struct {
		name       string
		totalCount int
		page       int
		perPage    int
		totalPages int
		wantPages  int
	}{
		{"rounds up", 150, 1, 24, 0, 7},
		{"exact fit", 48, 1, 24, 0, 2},
		{"empty", 0, 1, 24, 0, 0},
		{"explicit total pages kept", 150, 1, 24, 9, 9},
		{"zero per page", 150, 1, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewSearchResult(nil, tt.totalCount, tt.page, tt.perPage, tt.totalPages)
			if r.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", r.TotalPages, tt.wantPages)
			}
			if r.Properties == nil {
				t.Error("Properties should never be nil")
			}
		})
	}
}

func TestPageNavigation(t *testing.T) {
	r := NewSearchResult(nil, 150, 3, 24, 0)

	if r.FirstPage() || r.LastPage() {
		t.Error("page 3 of 7 is neither first nor last")
	}
	if got := r.NextPage(); got != 4 {
		t.Errorf("NextPage() = %d, want 4", got)
	}
	if got := r.PrevPage(); got != 2 {
		t.Errorf("PrevPage() = %d, want 2", got)
	}

	first := NewSearchResult(nil, 150, 1, 24, 0)
	if got := first.PrevPage(); got != 0 {
		t.Errorf("PrevPage() on first page = %d, want 0", got)
	}
	last := NewSearchResult(nil, 150, 7, 24, 0)
	if got := last.NextPage(); got != 0 {
		t.Errorf("NextPage() on last page = %d, want 0", got)
	}
}

func TestPageRange(t *testing.T) {
	r := NewSearchResult(nil, 150, 2, 24, 0)
	from, to := r.PageRange(2)
	if from != 1 || to != 4 {
		t.Errorf("PageRange(2) = %d..%d, want 1..4", from, to)
	}

	r.Page = 6
	from, to = r.PageRange(2)
	if from != 4 || to != 7 {
		t.Errorf("PageRange(2) near end = %d..%d, want 4..7", from, to)
	}
}

func TestResultsRange(t *testing.T) {
	tests := []struct {
		name       string
		totalCount int
		page       int
		perPage    int
		want       string
	}{
		{"first page", 150, 1, 24, "1-24 of 150"},
		{"last partial page", 150, 7, 24, "145-150 of 150"},
		{"empty", 0, 1, 24, "0 of 0"},
		{"single result", 1, 1, 24, "1-1 of 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewSearchResult(nil, tt.totalCount, tt.page, tt.perPage, 0)
			if got := r.ResultsRange(); got != tt.want {
				t.Errorf("ResultsRange() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSuccess(t *testing.T) {
	r := EmptySearchResult(1, 24)
	if !r.Success() {
		t.Error("result without an error should be a success")
	}
	r.Error = "upstream unreachable"
	if r.Success() {
		t.Error("result with an error should not be a success")
	}
}
