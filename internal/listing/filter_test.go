package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immolist/internal/domain"
)

func ptr(f float64) *float64 { return &f }

func catalog() []domain.Property {
	return []domain.Property{
		{ID: "1", Title: "Appartement moderne", City: "Paris", Price: 450000, Surface: 65, Type: domain.TypeSale, Category: domain.CategoryApartment, Status: domain.StatusAvailable},
		{ID: "2", Title: "Maison avec jardin", City: "Lyon", Price: 320000, Surface: 120, Type: domain.TypeSale, Category: domain.CategoryHouse, Status: domain.StatusSold},
		{ID: "3", Title: "Studio lumineux", City: "Paris", Price: 180000, Surface: 35, Type: domain.TypeRent, Category: domain.CategoryStudio, Status: domain.StatusAvailable},
		{ID: "4", Title: "Villa avec piscine", City: "Nice", Price: 900000, Surface: 240, Type: domain.TypeSale, Category: domain.CategoryVilla, Status: domain.StatusAvailable},
		{ID: "5", Title: "Bureau lumineux", City: "Paris", Price: 600000, Surface: 90, Type: domain.TypeRent, Category: domain.CategoryOffice, Status: domain.StatusRented},
	}
}

func ids(props []domain.Property) []string {
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.ID
	}
	return out
}

func TestZeroFiltersKeepEverything(t *testing.T) {
	got := Filters{}.Apply(catalog())
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(got))
}

func TestCityFilterSubstringCaseInsensitive(t *testing.T) {
	f := Filters{Cities: []string{"par"}}
	assert.Equal(t, []string{"1", "3", "5"}, ids(f.Apply(catalog())))

	f = Filters{Cities: []string{"LYON"}}
	assert.Equal(t, []string{"2"}, ids(f.Apply(catalog())))
}

func TestCityFilterAnyOf(t *testing.T) {
	f := Filters{Cities: []string{"Lyon", "Nice"}}
	assert.Equal(t, []string{"2", "4"}, ids(f.Apply(catalog())))
}

func TestPriceRange(t *testing.T) {
	f := Filters{MinPrice: ptr(300000), MaxPrice: ptr(500000)}
	assert.Equal(t, []string{"1", "2"}, ids(f.Apply(catalog())))

	// Missing bound means unbounded on that side.
	f = Filters{MinPrice: ptr(500000)}
	assert.Equal(t, []string{"4", "5"}, ids(f.Apply(catalog())))
	f = Filters{MaxPrice: ptr(200000)}
	assert.Equal(t, []string{"3"}, ids(f.Apply(catalog())))
}

func TestSurfaceRange(t *testing.T) {
	f := Filters{MinSurface: ptr(60), MaxSurface: ptr(120)}
	assert.Equal(t, []string{"1", "2", "5"}, ids(f.Apply(catalog())))
}

func TestCategoryAndStatusSets(t *testing.T) {
	f := Filters{Categories: []domain.Category{domain.CategoryApartment, domain.CategoryStudio}}
	assert.Equal(t, []string{"1", "3"}, ids(f.Apply(catalog())))

	f = Filters{Statuses: []domain.Status{domain.StatusAvailable}}
	assert.Equal(t, []string{"1", "3", "4"}, ids(f.Apply(catalog())))
}

func TestDimensionsNarrowTogether(t *testing.T) {
	f := Filters{
		Cities:     []string{"Paris"},
		MaxPrice:   ptr(500000),
		Statuses:   []domain.Status{domain.StatusAvailable},
		Categories: []domain.Category{domain.CategoryStudio},
	}
	assert.Equal(t, []string{"3"}, ids(f.Apply(catalog())))
}

// Applying dimensions one at a time, in any order, lands on the same set
// as the combined filter.
func TestFilterCommutativity(t *testing.T) {
	city := Filters{Cities: []string{"Paris"}}
	price := Filters{MinPrice: ptr(150000), MaxPrice: ptr(650000)}
	cat := Filters{Categories: []domain.Category{domain.CategoryStudio, domain.CategoryOffice}}
	combined := Filters{
		Cities:     city.Cities,
		MinPrice:   price.MinPrice,
		MaxPrice:   price.MaxPrice,
		Categories: cat.Categories,
	}

	want := combined.Apply(catalog())
	require.NotEmpty(t, want)

	orders := [][]Filters{
		{city, price, cat},
		{cat, city, price},
		{price, cat, city},
	}
	for _, order := range orders {
		got := catalog()
		for _, f := range order {
			got = f.Apply(got)
		}
		assert.Equal(t, want, got)
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	f := Filters{Cities: []string{"Paris"}}
	got := f.Apply(catalog())
	assert.Equal(t, []string{"1", "3", "5"}, ids(got))
}

func TestIsZero(t *testing.T) {
	assert.True(t, Filters{}.IsZero())
	assert.False(t, Filters{Cities: []string{"Paris"}}.IsZero())
	assert.False(t, Filters{MinPrice: ptr(1)}.IsZero())
}
