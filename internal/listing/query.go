package listing

import (
	"net/url"
	"strconv"
	"strings"

	"immolist/internal/domain"
)

// Query parameter names shared with the web UI.
const (
	paramPage       = "page"
	paramCities     = "cities"
	paramMinPrice   = "minPrice"
	paramMaxPrice   = "maxPrice"
	paramMinSurface = "minSurface"
	paramMaxSurface = "maxSurface"
	paramCategories = "categories"
	paramStatuses   = "statuses"
)

// ParseQuery rebuilds the view state from URL query parameters. List
// parameters are comma-joined in canonical URLs but checkbox forms submit
// them as repeated keys; both spellings are accepted. Unknown enum values
// and unparsable numbers are dropped rather than rejected; a missing or
// bad page means page 1.
func ParseQuery(q url.Values) State {
	st := State{Page: 1}
	if n, err := strconv.Atoi(q.Get(paramPage)); err == nil && n >= 1 {
		st.Page = n
	}
	st.Filters.Cities = splitList(q[paramCities])
	st.Filters.MinPrice = parseNumber(q.Get(paramMinPrice))
	st.Filters.MaxPrice = parseNumber(q.Get(paramMaxPrice))
	st.Filters.MinSurface = parseNumber(q.Get(paramMinSurface))
	st.Filters.MaxSurface = parseNumber(q.Get(paramMaxSurface))
	for _, v := range splitList(q[paramCategories]) {
		if c := domain.Category(v); domain.ValidCategory(c) {
			st.Filters.Categories = append(st.Filters.Categories, c)
		}
	}
	for _, v := range splitList(q[paramStatuses]) {
		if s := domain.Status(v); domain.ValidStatus(s) {
			st.Filters.Statuses = append(st.Filters.Statuses, s)
		}
	}
	return st
}

// Query serializes the state back into URL parameters. Unset criteria are
// omitted so the URL only carries real constraints; page is always present.
func (st State) Query() url.Values {
	q := url.Values{}
	page := st.Page
	if page < 1 {
		page = 1
	}
	q.Set(paramPage, strconv.Itoa(page))
	if len(st.Filters.Cities) > 0 {
		q.Set(paramCities, strings.Join(st.Filters.Cities, ","))
	}
	setNumber(q, paramMinPrice, st.Filters.MinPrice)
	setNumber(q, paramMaxPrice, st.Filters.MaxPrice)
	setNumber(q, paramMinSurface, st.Filters.MinSurface)
	setNumber(q, paramMaxSurface, st.Filters.MaxSurface)
	if len(st.Filters.Categories) > 0 {
		vals := make([]string, len(st.Filters.Categories))
		for i, c := range st.Filters.Categories {
			vals[i] = string(c)
		}
		q.Set(paramCategories, strings.Join(vals, ","))
	}
	if len(st.Filters.Statuses) > 0 {
		vals := make([]string, len(st.Filters.Statuses))
		for i, s := range st.Filters.Statuses {
			vals[i] = string(s)
		}
		q.Set(paramStatuses, strings.Join(vals, ","))
	}
	return q
}

// Encode renders the state as a query string suitable for links.
func (st State) Encode() string {
	return st.Query().Encode()
}

func splitList(vals []string) []string {
	var out []string
	for _, v := range vals {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &n
}

func setNumber(q url.Values, key string, v *float64) {
	if v != nil {
		q.Set(key, strconv.FormatFloat(*v, 'f', -1, 64))
	}
}
