package properties

import (
	"sort"
	"strings"

	"mboaimmo/server/internal/models"
)

// Criteria is the compound filter applied by the search page. Zero values
// mean "not filtered on".
type Criteria struct {
	Type     string
	MinPrice int64
	MaxPrice int64
	Location string
	Status   string
}

// Sort orders for listing pages.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

func matches(p *models.Property, c Criteria) bool {
	if c.Type != "" && p.PropertyType != c.Type {
		return false
	}
	if c.MinPrice > 0 && p.Price < c.MinPrice {
		return false
	}
	if c.MaxPrice > 0 && p.Price > c.MaxPrice {
		return false
	}
	if c.Status != "" && p.Status != c.Status {
		return false
	}
	if c.Location != "" {
		loc := strings.ToLower(c.Location)
		if !strings.Contains(strings.ToLower(p.City), loc) &&
			!strings.Contains(strings.ToLower(p.Neighborhood), loc) {
			return false
		}
	}
	return true
}

// Filter returns the subset of props matching c. The input slice is never
// mutated; repeated calls with the same arguments return the same subset.
func Filter(props []models.Property, c Criteria) []models.Property {
	out := make([]models.Property, 0, len(props))
	for i := range props {
		if matches(&props[i], c) {
			out = append(out, props[i])
		}
	}
	return out
}

// Search returns properties whose title, description, city or neighborhood
// contains the query, case-insensitively.
func Search(props []models.Property, query string) []models.Property {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]models.Property, len(props))
		copy(out, props)
		return out
	}

	out := make([]models.Property, 0, len(props))
	for _, p := range props {
		haystack := strings.ToLower(p.Title + " " + p.Description + " " + p.City + " " + p.Neighborhood)
		if strings.Contains(haystack, q) {
			out = append(out, p)
		}
	}
	return out
}

// Sort returns a sorted copy of props. Unknown orders fall back to newest
// first.
func Sort(props []models.Property, order string) []models.Property {
	out := make([]models.Property, len(props))
	copy(out, props)

	switch order {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out
}
