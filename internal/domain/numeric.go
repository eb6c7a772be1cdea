package domain

import (
	"strconv"
	"strings"
)

// LenientFloat coerces a raw stored value to float64. Listing documents
// ingested from upstream feeds carry numeric fields as strings, often
// with thousands separators ("1,250,000"). Unparseable or empty input
// yields 0.0 — the single documented default for dirty numeric data.
func LenientFloat(raw string) float64 {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// LenientInt coerces a raw stored value to int with the same policy as
// LenientFloat. Fractional values are truncated toward zero.
func LenientInt(raw string) int {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
