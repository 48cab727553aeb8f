package utils

import "strings"

// CompactLower folds case and strips all whitespace; used for the
// space-insensitive guest-name lookup.
func CompactLower(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}
