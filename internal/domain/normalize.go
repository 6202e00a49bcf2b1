package domain

import "strings"

// CollapseSpace trims s and replaces every run of Unicode whitespace,
// including tabs and no-break spaces, with one ASCII space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SameText reports whether two localized texts read the same: whitespace is
// collapsed and letters compare under Unicode case folding, so "Ä" matches
// "ä". Diacritics are significant.
func SameText(a, b string) bool {
	return strings.EqualFold(CollapseSpace(a), CollapseSpace(b))
}
