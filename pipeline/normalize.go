package pipeline

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

// Cell normalizers. Each takes one raw cell and returns the canonical value
// or the zero value; none of them ever fail.

// SentinelDate stands in for required date fields absent from the source.
var SentinelDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// NameSentinel fills the last name when a full name holds a single token.
const NameSentinel = "N/A"

var yearPattern = regexp.MustCompile(`(19|20)\d{2}`)

var emailSeparators = regexp.MustCompile(`[;,/]`)

func isNullToken(s string) bool {
	switch {
	case s == "",
		strings.EqualFold(s, "N/A"),
		strings.EqualFold(s, "NaN"),
		strings.EqualFold(s, "None"),
		strings.EqualFold(s, "Na"):
		return true
	}
	return false
}

// CleanString trims and collapses the source system's null spellings
// ("N/A", "NaN", "None", "Na") to the empty string.
func CleanString(raw string) string {
	v := strings.TrimSpace(raw)
	if isNullToken(v) {
		return ""
	}
	return v
}

// Day-first layouts tried in order after ISO. Ambiguous day/month ordering
// resolves day-first by policy: 05/03/1990 is the 5th of March.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2 January 2006",
	"2-Jan-2006",
	"02/01/06",
}

// Spreadsheet serial day zero (the 1900 leap-year bug is baked into this
// epoch, matching what Excel itself writes).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// CleanDate parses ISO, day-first and spreadsheet-serial dates. Anything
// else yields nil.
func CleanDate(raw string) *time.Time {
	v := CleanString(raw)
	if v == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if dt, err := time.Parse(layout, v); err == nil {
			dt = time.Date(dt.Year(), dt.Month(), dt.Day(), 0, 0, 0, 0, time.UTC)
			return &dt
		}
	}

	// Serial date from spreadsheet float coercion, e.g. "32874" or "32874.0"
	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial > 0 && serial < 200000 {
		dt := serialEpoch.AddDate(0, 0, int(serial))
		return &dt
	}

	return nil
}

// CleanInt parses numeric strings, tolerating the trailing ".0" that
// spreadsheet float coercion leaves behind.
func CleanInt(raw string) *int {
	v := CleanString(raw)
	if v == "" {
		return nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return &n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		n := int(f)
		return &n
	}
	return nil
}

// CleanYear pulls a four-digit calendar year out of a cell that may hold a
// year, a date, or free text.
func CleanYear(raw string) *int {
	v := CleanString(raw)
	if v == "" {
		return nil
	}
	if m := yearPattern.FindString(v); m != "" {
		n, _ := strconv.Atoi(m)
		return &n
	}
	return nil
}

// CleanEmail normalizes a cell that may hold several addresses separated by
// ';', ',' or '/': each part is trimmed and lowercased, parts that are not
// valid addresses are filtered out, and the remainder rejoined with ", ".
func CleanEmail(raw string) string {
	v := CleanString(raw)
	if v == "" {
		return ""
	}

	var parts []string
	for _, p := range emailSeparators.Split(v, -1) {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" || !govalidator.IsEmail(p) {
			continue
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, ", ")
}

// SplitName splits a full name into first and last. Policy: a single token
// becomes the first name with the "N/A" sentinel as last name; with three
// or more tokens everything but the last joins into the first name. The
// initials-aware variant seen in one legacy pipeline was deliberately not
// reproduced; revisit with product sign-off before changing this rule.
func SplitName(full string) (first, last string) {
	tokens := strings.Fields(CleanString(full))
	switch len(tokens) {
	case 0:
		return "", ""
	case 1:
		return tokens[0], NameSentinel
	case 2:
		return tokens[0], tokens[1]
	default:
		return strings.Join(tokens[:len(tokens)-1], " "), tokens[len(tokens)-1]
	}
}
