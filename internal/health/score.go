// Score primitives.
//
// Two scorers intentionally coexist for the same tendency fields: the monthly
// chart scale (TendencyScore) and the 0-100 dashboard scale (DashboardScore).
// They feed different chart consumers with different shapes; keep them as two
// named functions.
package health

import "strings"

// Monthly chart score per canonical token. Unrecognized input falls back to
// chartDefault so a malformed answer still renders as a neutral mid-point.
var chartScores = map[string]int{
	TendencyNone:     0,
	TendencyDiarrhea: 20,
	TendencyLess:     30,
	TendencyMore:     50,
	TendencyNormal:   70,
}

const chartDefault = 50

// Dashboard (0-100) score per canonical token. Unrecognized input scores 0:
// on the risk dashboard an unreadable answer counts as "no signal", not as a
// neutral day.
var dashboardScores = map[string]int{
	TendencyNormal:   100,
	TendencyMore:     70,
	TendencyLess:     40,
	TendencyDiarrhea: 10,
	TendencyNone:     0,
}

// CanonicalTendency resolves value to the canonical token for field.
// It accepts the token itself in any letter case, or the display label for
// that field's options. Returns ok=false for empty or unrecognized input.
func CanonicalTendency(field TendencyField, value string) (string, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", false
	}
	for _, tok := range tendencyTokens[field] {
		if strings.EqualFold(v, tok) || v == tendencyLabels[field][tok] {
			return tok, true
		}
	}
	return "", false
}

// TendencyScore maps a tendency answer (token or label, any case) to the
// monthly chart scale: none=0, diarrhea=20, less=30, more=50, normal=70.
// Empty or unrecognized input returns 50. Total function; never panics.
func TendencyScore(field TendencyField, value string) int {
	tok, ok := CanonicalTendency(field, value)
	if !ok {
		return chartDefault
	}
	return chartScores[tok]
}

// DashboardScore maps a tendency answer to the 0-100 scale used by the
// dashboard metric series: normal=100, more=70, less=40, diarrhea=10, none=0.
// Empty or unrecognized input returns 0.
func DashboardScore(field TendencyField, value string) int {
	tok, ok := CanonicalTendency(field, value)
	if !ok {
		return 0
	}
	return dashboardScores[tok]
}

// TendencyLabel returns the display label for a tendency answer. A canonical
// token is translated to its label; a value that already is a label (or any
// other non-empty string) is returned unchanged, which makes the function
// idempotent. Empty input yields the NoRecordLabel placeholder.
func TendencyLabel(field TendencyField, value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return NoRecordLabel
	}
	for _, tok := range tendencyTokens[field] {
		if strings.EqualFold(v, tok) {
			return tendencyLabels[field][tok]
		}
	}
	return v
}

// LevelScore maps a low/normal/high ordinal (any case) to a numeric rank:
// high=3, normal=2, low=1, anything else 0.
func LevelScore(value string) int {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "high":
		return 3
	case "normal":
		return 2
	case "low":
		return 1
	default:
		return 0
	}
}
