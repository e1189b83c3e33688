package listing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immolist/internal/domain"
)

func many(n int) []domain.Property {
	props := make([]domain.Property, n)
	for i := range props {
		props[i] = domain.Property{
			ID:       fmt.Sprintf("p%02d", i),
			Title:    fmt.Sprintf("Listing %d", i),
			City:     "Paris",
			Price:    100000 + float64(i),
			Surface:  20 + float64(i),
			Type:     domain.TypeSale,
			Category: domain.CategoryApartment,
			Status:   domain.StatusAvailable,
		}
	}
	return props
}

func TestPaginateSlices(t *testing.T) {
	props := many(14)

	page1 := State{Page: 1}.Paginate(props)
	require.Len(t, page1, PerPage)
	assert.Equal(t, props[:6], page1)

	page3 := State{Page: 3}.Paginate(props)
	assert.Equal(t, props[12:], page3)
}

// Every page holds at most PerPage records, and stitching the pages back
// together reproduces the filtered set exactly.
func TestPaginationReconstructs(t *testing.T) {
	props := many(14)
	total := TotalPages(len(props))
	assert.Equal(t, 3, total)

	var joined []domain.Property
	for n := 1; n <= total; n++ {
		page := State{Page: n}.Paginate(props)
		assert.LessOrEqual(t, len(page), PerPage)
		joined = append(joined, page...)
	}
	assert.Equal(t, props, joined)
}

func TestPaginatePastEnd(t *testing.T) {
	props := many(3)
	assert.Empty(t, State{Page: 2}.Paginate(props))
	assert.Empty(t, State{Page: 50}.Paginate(props))
}

func TestPaginateBadPage(t *testing.T) {
	props := many(8)
	assert.Equal(t, props[:6], State{Page: 0}.Paginate(props))
	assert.Equal(t, props[:6], State{Page: -2}.Paginate(props))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0))
	assert.Equal(t, 1, TotalPages(6))
	assert.Equal(t, 2, TotalPages(7))
	assert.Equal(t, 3, TotalPages(14))
}

func TestWithFiltersResetsPage(t *testing.T) {
	st := State{Filters: Filters{Cities: []string{"Paris"}}, Page: 4}
	next := st.WithFilters(Filters{Cities: []string{"Lyon"}})
	assert.Equal(t, 1, next.Page)
	assert.Equal(t, []string{"Lyon"}, next.Filters.Cities)
}

func TestWithPageKeepsFilters(t *testing.T) {
	st := State{Filters: Filters{Cities: []string{"Paris"}}, Page: 1}
	next := st.WithPage(3)
	assert.Equal(t, 3, next.Page)
	assert.Equal(t, st.Filters, next.Filters)

	assert.Equal(t, 1, st.WithPage(0).Page)
}

// Eight listings across Paris, Lyon and Nice: filtering on Paris keeps the
// three Paris records on page 1 and leaves page 2 empty.
func TestCityFilterScenario(t *testing.T) {
	props := []domain.Property{
		{ID: "1", City: "Paris"}, {ID: "2", City: "Lyon"}, {ID: "3", City: "Nice"},
		{ID: "4", City: "Paris"}, {ID: "5", City: "Lyon"}, {ID: "6", City: "Nice"},
		{ID: "7", City: "Paris"}, {ID: "8", City: "Lyon"},
	}
	st := State{Filters: Filters{Cities: []string{"Paris"}}, Page: 1}
	filtered := st.Filters.Apply(props)
	require.Len(t, filtered, 3)

	assert.Equal(t, []string{"1", "4", "7"}, ids(filtered))
	assert.Len(t, st.Paginate(filtered), 3)
	assert.Empty(t, st.WithPage(2).Paginate(filtered))
}
