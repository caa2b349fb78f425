/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

// ParseDateOrZero returns a parsed time or zero if input is empty or "null".
func ParseDateOrZero(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	return dateparse.ParseAny(s)
}

// YearOrZero returns the year of a free-form date string, or 0 if the string
// is empty or cannot be parsed.
func YearOrZero(s string) int {
	t, err := ParseDateOrZero(s)
	if err != nil || t.IsZero() {
		return 0
	}
	return t.Year()
}

// NormalizeName collapses whitespace in a name. Names entered entirely in
// upper or lower case are title-cased word by word; mixed case such as
// "McDonald" is kept as entered.
func NormalizeName(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s != strings.ToUpper(s) && s != strings.ToLower(s) {
		return s
	}

	r := []rune(strings.ToLower(s))
	for i := range r {
		if i == 0 || !unicode.IsLetter(r[i-1]) {
			r[i] = unicode.ToUpper(r[i])
		}
	}
	return string(r)
}
