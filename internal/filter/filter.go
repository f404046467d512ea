// Package filter implements the multi-criteria filter/sort engine shared by
// both lead domains. Predicates AND-compose across kinds and OR-compose
// within a kind; filtering and sorting are pure functions that never mutate
// their inputs.
package filter

import (
	"sort"
	"strings"
)

// Predicate reports whether a record passes one filter criterion.
type Predicate[T any] func(record T) bool

// Apply returns the records passing every predicate, sorted by less when it
// is non-nil. The input slice is left untouched.
func Apply[T any](records []T, predicates []Predicate[T], less func(a, b T) bool) []T {
	out := make([]T, 0, len(records))
	for _, record := range records {
		if passesAll(record, predicates) {
			out = append(out, record)
		}
	}
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

func passesAll[T any](record T, predicates []Predicate[T]) bool {
	for _, p := range predicates {
		if !p(record) {
			return false
		}
	}
	return true
}

// TextSearch matches when the query appears, case-insensitively, in the
// joined search pool of the record. An empty query matches everything.
func TextSearch[T any](query string, pool func(T) []string) Predicate[T] {
	needle := strings.ToLower(strings.TrimSpace(query))
	return func(record T) bool {
		if needle == "" {
			return true
		}
		haystack := strings.ToLower(strings.Join(pool(record), " "))
		return strings.Contains(haystack, needle)
	}
}

// InSet matches when the record's single value is one of the selected
// options. An empty selection is no filter.
func InSet[T any](selected []string, value func(T) string) Predicate[T] {
	if len(selected) == 0 {
		return func(T) bool { return true }
	}
	set := make(map[string]bool, len(selected))
	for _, s := range selected {
		set[s] = true
	}
	return func(record T) bool { return set[value(record)] }
}

// Intersects matches when the record's multi-value field shares at least one
// entry (case-insensitive) with the selection. An empty selection is no
// filter.
func Intersects[T any](selected []string, values func(T) []string) Predicate[T] {
	set := normalizeSet(selected)
	if len(set) == 0 {
		return func(T) bool { return true }
	}
	return func(record T) bool {
		for _, v := range values(record) {
			if set[strings.ToLower(strings.TrimSpace(v))] {
				return true
			}
		}
		return false
	}
}

// FlagTrue requires the record's boolean to be true while the filter is
// active; inactive is no filter.
func FlagTrue[T any](active bool, value func(T) bool) Predicate[T] {
	return func(record T) bool {
		return !active || value(record)
	}
}

// IntInSet matches when the record's integer value is one of the selected
// values. An empty selection is no filter.
func IntInSet[T any](selected []int, value func(T) int) Predicate[T] {
	if len(selected) == 0 {
		return func(T) bool { return true }
	}
	set := make(map[int]bool, len(selected))
	for _, s := range selected {
		set[s] = true
	}
	return func(record T) bool { return set[value(record)] }
}

// TicketRange implements numeric range overlap for a [min,max] pair where
// either bound can be missing on the record. A record passes a filter
// minimum when its effective upper bound (max, else min, else 0) reaches
// it, and a filter maximum when its effective lower bound (min, else max,
// else 0) does not exceed it.
func TicketRange[T any](filterMin, filterMax *int64, bounds func(T) (min, max *int64)) Predicate[T] {
	return func(record T) bool {
		recMin, recMax := bounds(record)
		if filterMin != nil {
			candidate := int64(0)
			switch {
			case recMax != nil:
				candidate = *recMax
			case recMin != nil:
				candidate = *recMin
			}
			if candidate < *filterMin {
				return false
			}
		}
		if filterMax != nil {
			candidate := int64(0)
			switch {
			case recMin != nil:
				candidate = *recMin
			case recMax != nil:
				candidate = *recMax
			}
			if candidate > *filterMax {
				return false
			}
		}
		return true
	}
}

func normalizeSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if normalized := strings.ToLower(strings.TrimSpace(v)); normalized != "" {
			set[normalized] = true
		}
	}
	return set
}

// ParseList splits a comma-joined query parameter into trimmed entries.
func ParseList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
