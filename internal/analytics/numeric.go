// Package analytics derives per-period spend figures from the consolidated
// cumulative balances and builds the operator leaderboards.
package analytics

import (
	"strconv"
	"strings"
)

// CleanNumeric parses a monetary string in Brazilian locale convention
// (thousands '.', decimal ','). Total function: missing markers and
// malformed cells become 0.0, never an error. Statement files carry
// millions of individually low-stakes cells; one bad cell must not abort
// an aggregation.
func CleanNumeric(s string) float64 {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "none":
		return 0.0
	}

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0.0
	}
	return v
}

// PadRegANS normalizes an operator registration id to the zero-padded
// 6-digit form used as join key. A trailing ".0" is stripped first; it is a
// relic of float-typed CSV exports.
func PadRegANS(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ".0")
	for len(s) < 6 {
		s = "0" + s
	}
	return s
}
