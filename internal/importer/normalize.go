// Package importer reconciles loosely-structured JSON into validated client
// records before a destructive bulk load.
package importer

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// timeNow is swapped out in tests that pin "today".
var timeNow = time.Now

// DateLayout is the canonical storage form of add-dates.
const DateLayout = "02/01/2006" // DD/MM/YYYY

// Accepted status words after lowercasing, trimming and diacritic stripping.
// The true set covers the French completion vocabulary found in real import
// files. Anything not in either set maps to false; the normalizer is
// deliberately lossy so a bad status never rejects a record.
var (
	statusTrueWords = map[string]struct{}{
		"1": {}, "true": {}, "oui": {},
		"termine": {}, "terminee": {},
		"paye": {}, "payee": {},
		"regle": {}, "reglee": {},
		"solde": {}, "soldes": {},
	}
	statusFalseWords = map[string]struct{}{
		"0": {}, "false": {}, "non": {},
	}
)

// stripDiacritics decomposes the word and removes combining marks. The chain
// is built per call; transform chains carry state and are not safe to share.
func stripDiacritics(word string) string {
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripper, word)
	if err != nil {
		return word
	}
	return stripped
}

// NormalizeAmount coerces an arbitrary scalar into a finite amount. Anything
// that does not parse to a finite number becomes 0.
func NormalizeAmount(value any) float64 {
	n, ok := toNumber(value)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// NormalizeStatus coerces an arbitrary scalar into the completion flag.
// Booleans pass through, numbers mean done only when exactly 1, and strings
// are matched against the accepted vocabulary after diacritic stripping.
// Unrecognized values default to false.
func NormalizeStatus(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case float64:
		return v == 1
	case int:
		return v == 1
	case string:
		word := stripDiacritics(strings.ToLower(strings.TrimSpace(v)))
		if _, ok := statusTrueWords[word]; ok {
			return true
		}
		if _, ok := statusFalseWords[word]; ok {
			return false
		}
		return false
	default:
		return false
	}
}

// NormalizeString returns value unchanged if it is already a string, else the
// empty string.
func NormalizeString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

// FormatDateForStorage canonicalizes an add-date to "DD/MM/YYYY". An empty
// value yields today. A strict "DD/MM/YYYY" parse is tried first and must
// name a real calendar date (31/02 is rejected, not clamped); then generic
// date-string layouts; failing both, today.
func FormatDateForStorage(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return timeNow().Format(DateLayout)
	}

	if t, ok := parseStrictDate(value); ok {
		return t.Format(DateLayout)
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(DateLayout)
		}
	}

	return timeNow().Format(DateLayout)
}

// parseStrictDate extracts day/month/year from a "DD/MM/YYYY" string and
// validates that the fields name a real calendar date. time.Date normalizes
// overflow (31/02 becomes 02/03 or 03/03), so the round-trip check catches it.
func parseStrictDate(value string) (time.Time, bool) {
	parts := strings.Split(value, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	if year < 1000 || year > 9999 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return time.Time{}, false
	}
	return t, true
}

// toNumber attempts JavaScript-style numeric coercion of a parsed JSON value.
func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			// Empty and blank strings coerce to zero, not a parse failure.
			return 0, true
		}
		n, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
