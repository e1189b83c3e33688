// Package listing derives the displayed page of the catalog from filter
// criteria and keeps both in sync with the request URL.
package listing

import (
	"strings"

	"immolist/internal/domain"
)

// Filters narrows the catalog. Dimensions AND together; the values chosen
// within one dimension OR together. A zero dimension means no constraint.
type Filters struct {
	Cities     []string
	MinPrice   *float64
	MaxPrice   *float64
	MinSurface *float64
	MaxSurface *float64
	Categories []domain.Category
	Statuses   []domain.Status
}

func (f Filters) IsZero() bool {
	return len(f.Cities) == 0 &&
		f.MinPrice == nil && f.MaxPrice == nil &&
		f.MinSurface == nil && f.MaxSurface == nil &&
		len(f.Categories) == 0 && len(f.Statuses) == 0
}

func (f Filters) Match(p domain.Property) bool {
	if len(f.Cities) > 0 {
		hit := false
		city := strings.ToLower(p.City)
		for _, want := range f.Cities {
			if strings.Contains(city, strings.ToLower(want)) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.MinSurface != nil && p.Surface < *f.MinSurface {
		return false
	}
	if f.MaxSurface != nil && p.Surface > *f.MaxSurface {
		return false
	}
	if len(f.Categories) > 0 && !containsCategory(f.Categories, p.Category) {
		return false
	}
	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, p.Status) {
		return false
	}
	return true
}

// Apply keeps the matching subset of props in their original order.
func (f Filters) Apply(props []domain.Property) []domain.Property {
	out := make([]domain.Property, 0, len(props))
	for _, p := range props {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

func containsCategory(cs []domain.Category, c domain.Category) bool {
	for _, v := range cs {
		if v == c {
			return true
		}
	}
	return false
}

func containsStatus(ss []domain.Status, s domain.Status) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
