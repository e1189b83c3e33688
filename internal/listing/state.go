package listing

import "immolist/internal/domain"

// PerPage is the fixed page size of the listing view.
const PerPage = 6

// State is the whole view state of the listing page: what is filtered and
// which page is shown. It round-trips through the URL query string, so a
// shared link reproduces the exact same view.
type State struct {
	Filters Filters
	Page    int // 1-based
}

// WithFilters returns a state showing page 1 of the new criteria. Changing
// any filter always jumps back to the first page.
func (st State) WithFilters(f Filters) State {
	return State{Filters: f, Page: 1}
}

// WithPage moves to page n without touching the criteria.
func (st State) WithPage(n int) State {
	if n < 1 {
		n = 1
	}
	return State{Filters: st.Filters, Page: n}
}

// Paginate returns the slice of filtered that belongs to st.Page. Pages
// past the end are empty, never an error.
func (st State) Paginate(filtered []domain.Property) []domain.Property {
	page := st.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PerPage
	if start >= len(filtered) {
		return []domain.Property{}
	}
	end := start + PerPage
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// TotalPages reports how many pages the filtered set spans; an empty set
// still has one (empty) page.
func TotalPages(filteredCount int) int {
	if filteredCount == 0 {
		return 1
	}
	return (filteredCount + PerPage - 1) / PerPage
}
