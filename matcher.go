package main

import "strings"

// matchesPattern reports whether any pattern is an exact suffix of the
// fingerprint. Both sides are already uppercase hex, so a byte comparison is
// enough. Pattern sets are small (tens at most) next to the cost of one key
// synthesis, so the linear scan is fine.
func matchesPattern(fingerprint string, patterns []string) bool {
	for _, p := range patterns {
		if strings.HasSuffix(fingerprint, p) {
			return true
		}
	}
	return false
}
