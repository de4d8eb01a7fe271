package domain

import "strings"

// Filterable is implemented by list entities that support the shared
// search/status filter used by every list view.
type Filterable interface {
	// SearchFields returns the display fields matched by free-text search,
	// typically the title/name plus the related client name.
	SearchFields() []string
	// StatusValue returns the current status as a string, or "" for entities
	// without a status.
	StatusValue() string
}

// StatusAll disables the status constraint.
const StatusAll = ""

// FilterList returns the items matching the given search text (case-insensitive
// substring against each item's SearchFields) and status (exact match, StatusAll
// for no constraint). The input slice is never mutated and relative order is
// preserved, so filtering is idempotent.
func FilterList[T Filterable](items []T, search, status string) []T {
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if status != StatusAll && item.StatusValue() != status {
			continue
		}
		if search != "" && !matchesSearch(item, search) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesSearch(item Filterable, loweredSearch string) bool {
	for _, field := range item.SearchFields() {
		if strings.Contains(strings.ToLower(field), loweredSearch) {
			return true
		}
	}
	return false
}
