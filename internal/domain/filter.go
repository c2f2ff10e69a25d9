package domain

import "strings"

// FilterStatusAll passes every status through.
const FilterStatusAll = "all"

// Filterable is what the free-text/status filter needs from a record.
type Filterable interface {
	SearchText() []string
	StatusValue() string
}

// Filter narrows a collection by case-insensitive substring match on the
// record's search fields plus exact status equality. It is a pure lens:
// the input slice is never mutated and order is preserved. An empty term
// with status "all" returns the collection membership unchanged.
func Filter[T Filterable](items []T, term, status string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	statusAll := status == "" || strings.EqualFold(status, FilterStatusAll)

	out := make([]T, 0, len(items))
	for _, item := range items {
		if !statusAll && item.StatusValue() != status {
			continue
		}
		if term != "" && !matchesTerm(item, term) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesTerm[T Filterable](item T, lowerTerm string) bool {
	for _, field := range item.SearchText() {
		if strings.Contains(strings.ToLower(field), lowerTerm) {
			return true
		}
	}
	return false
}
