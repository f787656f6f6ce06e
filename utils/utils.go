
package utils

import (
	"sort"
	"time"
)

// ContainsString checks if a string slice contains a specific string.
func ContainsString(slice []string, item string) bool {
	for _, a := range slice {
		if a == item {
			return true
		}
	}
	return false
}

// SortedKeys returns the keys of an option map in sorted order, so option
// listings and answer texts come out in a stable "A", "B", ... order.
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// KeySetEqual reports whether the selected key set is exactly the given key
// list taken as a set. Supersets, subsets and disjoint selections are all
// unequal.
func KeySetEqual(selected map[string]bool, keys []string) bool {
	if len(selected) != len(keys) {
		return false
	}
	for _, k := range keys {
		if !selected[k] {
			return false
		}
	}
	return true
}

// Timestamp formats t for summary exports, e.g. "2025-03-14_09-26-53".
func Timestamp(t time.Time) string {
	return t.Format("2006-01-02_15-04-05")
}
