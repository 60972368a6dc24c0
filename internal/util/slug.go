// Package util provides common utility functions.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// Matches non-alphanumeric characters (runs become a single dash).
	nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9]+`)
	// Matches multiple consecutive dashes.
	multipleDashRe = regexp.MustCompile(`-+`)
)

// BookSlug derives the canonical book identifier from a title.
// The slug is the source of truth for per-book aggregate documents,
// so the same title must always produce the same slug.
//
// Normalization rules:
//  1. Decompose accented characters and drop non-ASCII (Turkish titles
//     like "Kürk Mantolu Madonna" fold to plain ASCII)
//  2. Trim whitespace and lowercase
//  3. Replace runs of non-alphanumeric characters with a single dash
//  4. Collapse multiple dashes and trim leading/trailing dashes
//  5. Fall back to "unknown" when nothing survives
//
// Examples:
//
//	"Suç ve Ceza"    → "suc-ve-ceza"
//	"The Hobbit"     → "the-hobbit"
//	"1984"           → "1984"
//	"!!!"            → "unknown"
func BookSlug(title string) string {
	s := norm.NFKD.String(title)

	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlphanumericRe.ReplaceAllString(s, "-")
	s = multipleDashRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if s == "" {
		return "unknown"
	}
	return s
}
