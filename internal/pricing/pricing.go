// Package pricing exposes the published plan catalogue and the numeric
// derivations package creation depends on.
package pricing

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Plan is one row of the published pricing table. All money and session
// fields are display strings; use the Numeric helpers for arithmetic.
type Plan struct {
	Duration   string   `json:"duration"`
	Price      string   `json:"price"`
	Sessions   string   `json:"sessions"`
	PerSession string   `json:"per_session"`
	Features   []string `json:"features"`
	Popular    bool     `json:"popular,omitempty"`
}

// TypeInfo labels a package type for catalogue views.
type TypeInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Catalogue returns the full pricing table grouped by package type and
// sessions per week.
func Catalogue() map[string]map[string][]Plan {
	return table
}

// Types returns display metadata for every package type.
func Types() map[string]TypeInfo {
	return typeMeta
}

// Plans returns the plan rows for a package type and weekly frequency.
func Plans(packageType, sessionsPerWeek string) ([]Plan, bool) {
	byWeek, ok := table[packageType]
	if !ok {
		return nil, false
	}
	plans, ok := byWeek[sessionsPerWeek]
	return plans, ok
}

// Lookup finds the single plan matching all three axes. The bool reports
// whether such a plan is published.
func Lookup(packageType, sessionsPerWeek, planDuration string) (Plan, bool) {
	plans, ok := Plans(packageType, sessionsPerWeek)
	if !ok {
		return Plan{}, false
	}
	for _, p := range plans {
		if p.Duration == planDuration {
			return p, true
		}
	}
	return Plan{}, false
}

// NumericPrice strips every non-digit rune from a price string and parses
// the remainder, so "₱14,400" yields 14400. Returns 0 when no digits exist.
func NumericPrice(price string) int {
	var b strings.Builder
	for _, r := range price {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}

// NumericSessions parses the leading digit run of a sessions string, so
// "26 sessions (24+2 free)" yields 26. Returns 0 when the string does not
// start with a digit.
func NumericSessions(sessions string) int {
	end := 0
	for end < len(sessions) && sessions[end] >= '0' && sessions[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(sessions[:end])
	if err != nil {
		return 0
	}
	return n
}

// Credits returns the credit grant for a plan. Each session costs one
// credit, so the grant equals the published session count.
func (p Plan) Credits() int {
	return NumericSessions(p.Sessions)
}

// CalculateCredits converts a session duration in minutes to credits.
// Durations snap to half-hour steps up to two hours; anything longer is
// billed per started hour.
func CalculateCredits(durationMinutes int) float64 {
	switch {
	case durationMinutes <= 30:
		return 0.5
	case durationMinutes <= 60:
		return 1
	case durationMinutes <= 90:
		return 1.5
	case durationMinutes <= 120:
		return 2
	default:
		return math.Ceil(float64(durationMinutes) / 60)
	}
}
