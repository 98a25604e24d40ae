package importer

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// pinNow freezes the normalizers' clock for the duration of a test.
func pinNow(t *testing.T, fixed time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return fixed }
	t.Cleanup(func() { timeNow = orig })
}

func TestNormalizeAmount(t *testing.T) {
	cases := []struct {
		name  string
		input any
		want  float64
	}{
		{"number", 500.0, 500},
		{"numeric string", "500", 500},
		{"decimal string", " 12.5 ", 12.5},
		{"garbage string", "abc", 0},
		{"empty string", "", 0},
		{"blank string", "   ", 0},
		{"nil", nil, 0},
		{"nan", math.NaN(), 0},
		{"positive infinity", math.Inf(1), 0},
		{"object", map[string]any{}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, NormalizeAmount(tc.input), 1e-9)
		})
	}
}

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		name  string
		input any
		want  bool
	}{
		{"bool true", true, true},
		{"bool false", false, false},
		{"number one", 1.0, true},
		{"number zero", 0.0, false},
		{"number two", 2.0, false},
		{"accented terminee", "Terminée", true},
		{"paye", "payé", true},
		{"regle uppercase", "RÉGLÉ", true},
		{"solde", "soldé", true},
		{"oui", "oui", true},
		{"string one", "1", true},
		{"non", "non", false},
		{"string zero", "0", false},
		{"en cours", "EN COURS", false},
		{"empty string", "", false},
		{"unknown word", "peut-être", false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeStatus(tc.input))
		})
	}
}

func TestNormalizeString(t *testing.T) {
	assert.Equal(t, "hello", NormalizeString("hello"))
	assert.Equal(t, "", NormalizeString(42.0))
	assert.Equal(t, "", NormalizeString(nil))
	assert.Equal(t, "", NormalizeString([]any{"x"}))
}

func TestFormatDateForStorage(t *testing.T) {
	fixed := time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)
	pinNow(t, fixed)
	today := "31/08/2026"

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"empty falls back to today", "", today},
		{"whitespace falls back to today", "   ", today},
		{"valid strict date", "15/06/2026", "15/06/2026"},
		{"single digit fields", "5/6/2026", "05/06/2026"},
		{"invalid calendar date falls back to today", "31/02/2024", today},
		{"iso date reformatted", "2026-06-15", "15/06/2026"},
		{"rfc3339 reformatted", "2026-06-15T08:30:00Z", "15/06/2026"},
		{"garbage falls back to today", "not a date", today},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatDateForStorage(tc.input))
		})
	}
}
