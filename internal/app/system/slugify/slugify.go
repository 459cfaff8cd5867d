// internal/app/system/slugify/slugify.go

// Package slugify derives URL-safe slugs from display names.
//
// Derivation is deterministic: the same name always produces the same
// candidate slug. Uniqueness against existing aliases is the alias
// store's job (it appends -2, -3, … on collision); this package holds
// no state and no counters.
package slugify

import (
	"strconv"
	"strings"

	"github.com/gosimple/slug"
)

// Make returns the candidate slug for a name: lowercase ASCII with
// whitespace and punctuation collapsed to single hyphens.
func Make(name string) string {
	return slug.Make(strings.TrimSpace(name))
}

// WithSuffix returns the candidate slug for the nth collision of base.
// n starts at 2; WithSuffix(base, 1) is just base.
func WithSuffix(base string, n int) string {
	if n <= 1 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}
