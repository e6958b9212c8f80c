package recur

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes a merchant or description string into a grouping
// key: lowercase, letters/digits/spaces only, single-spaced, trimmed.
// Distinct merchants that collapse to the same key get merged; that is an
// accepted approximation.
func Normalize(raw string) string {
	lowered := strings.ToLower(raw)
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// MerchantKey builds the grouping key for a transaction, preferring the
// reported merchant name over the raw description when one is present.
func MerchantKey(description string, merchant *string) string {
	if merchant != nil {
		if key := Normalize(*merchant); key != "" {
			return key
		}
	}
	return Normalize(description)
}
