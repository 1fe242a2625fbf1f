// Package parse holds the tolerant parsing primitives used by the
// normalizer. All functions are pure and never return an error: anything
// unparseable degrades to the absent marker (ok == false) or to an empty
// result.
package parse

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// skillSplit separates a skill list on comma, semicolon, pipe, slash, or the
// word "and" surrounded by whitespace.
var skillSplit = regexp.MustCompile(`(?i)\s+and\s+|[,;|/]`)

// yearMonth finds a 4-digit year (19xx/20xx), a separator, and a 1-2 digit
// month. Boundaries are non-digits so "12021/3" does not yield a year.
var yearMonth = regexp.MustCompile(`(?:^|[^\d])((?:19|20)\d{2})[-/.](\d{1,2})(?:[^\d]|$)`)

// dateLayouts are tried in order by MonthKey before the pattern fallback.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2006-01",
}

// Number coerces raw into a finite float64. Already-numeric values pass
// through; everything else is stringified and stripped down to digits, '.'
// and '-' before parsing, which tolerates currency symbols, thousands
// separators, whitespace and unit suffixes ("1,200.50 USD" -> 1200.5).
func Number(raw any) (float64, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case float32:
		return Number(float64(v))
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	}

	s := stripNonNumeric(coerceString(raw))
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// SkillList splits raw into trimmed, non-empty skill names. Order is
// preserved and duplicates are kept; absent or empty input yields nil.
func SkillList(raw any) []string {
	s := strings.TrimSpace(coerceString(raw))
	if s == "" {
		return nil
	}
	pieces := skillSplit.Split(s, -1)
	out := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		out = append(out, piece)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// MonthKey resolves raw to a "YYYY-MM" key. Calendar parsing across the
// known layouts wins; otherwise a pattern search for year+month ("2021/3",
// "2021.03") is normalized to the same shape. Anything else is absent.
func MonthKey(raw any) (string, bool) {
	s := strings.TrimSpace(coerceString(raw))
	if s == "" {
		return "", false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01"), true
		}
	}

	m := yearMonth.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	month, err := strconv.Atoi(m[2])
	if err != nil || month < 1 || month > 12 {
		return "", false
	}
	return fmt.Sprintf("%s-%02d", m[1], month), true
}

// coerceString renders raw as a string the way a loosely typed source would.
// Composite values (maps, lists) are absent; their string forms would leak
// digits into the numeric parser.
func coerceString(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case bool, float32, float64, int, int32, int64, uint, uint64:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

// stripNonNumeric drops every rune that is not a digit, '.', or '-'.
func stripNonNumeric(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
