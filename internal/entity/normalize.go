package entity

import (
	"strings"

	"golang.org/x/text/cases"
)

// folder performs Unicode case folding, which is stable where simple
// lowercasing is not (e.g. Kelvin sign, dotless i).
var folder = cases.Fold()

// NormalizeName canonicalizes a user-entered name for lookup: surrounding
// whitespace is trimmed and the result is case-folded. Two names are "the
// same" for upsert and find purposes exactly when their normalized forms
// are equal.
//
// The stored name keeps the user's original trimmed spelling; only
// comparisons use the folded form.
func NormalizeName(name string) string {
	return folder.String(strings.TrimSpace(name))
}

// SameName reports whether two names are equal under NormalizeName.
func SameName(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}
