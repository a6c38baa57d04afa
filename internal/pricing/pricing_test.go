package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupEveryPublishedPlan(t *testing.T) {
	expected := []struct {
		packageType string
		perWeek     string
		duration    string
		price       int
		sessions    int
	}{
		{"1-2", "2", "MONTHLY", 5200, 8},
		{"1-2", "2", "QUARTERLY", 14400, 26},
		{"1-2", "2", "SEMI-ANNUAL", 26400, 51},
		{"1-2", "2", "ANNUAL", 48000, 101},
		{"1-2", "3", "MONTHLY", 7800, 12},
		{"1-2", "3", "QUARTERLY", 21600, 38},
		{"1-2", "3", "SEMI-ANNUAL", 39600, 75},
		{"1-2", "3", "ANNUAL", 72000, 149},
		{"1-2", "5", "MONTHLY", 13000, 20},
		{"1-2", "5", "QUARTERLY", 36000, 62},
		{"1-2", "5", "SEMI-ANNUAL", 66000, 123},
		{"1-2", "5", "ANNUAL", 120000, 245},
		{"1-1", "2", "MONTHLY", 9600, 8},
		{"1-1", "2", "QUARTERLY", 27600, 26},
		{"1-1", "2", "SEMI-ANNUAL", 52320, 51},
		{"1-1", "2", "ANNUAL", 93120, 101},
		{"1-1", "3", "MONTHLY", 14400, 12},
		{"1-1", "3", "QUARTERLY", 41400, 38},
		{"1-1", "3", "SEMI-ANNUAL", 78480, 75},
		{"1-1", "3", "ANNUAL", 139680, 149},
		{"1-1", "5", "MONTHLY", 24000, 20},
		{"1-1", "5", "QUARTERLY", 69000, 62},
		{"1-1", "5", "SEMI-ANNUAL", 130800, 123},
		{"1-1", "5", "ANNUAL", 232800, 245},
	}

	for _, tc := range expected {
		plan, ok := Lookup(tc.packageType, tc.perWeek, tc.duration)
		require.True(t, ok, "%s/%s/%s should exist", tc.packageType, tc.perWeek, tc.duration)
		assert.Equal(t, tc.price, NumericPrice(plan.Price))
		assert.Equal(t, tc.sessions, NumericSessions(plan.Sessions))
		assert.Equal(t, tc.sessions, plan.Credits())
		assert.NotEmpty(t, plan.Features)
	}
}

func TestLookupUnknownAxes(t *testing.T) {
	_, ok := Lookup("1-3", "2", "MONTHLY")
	assert.False(t, ok)

	_, ok = Lookup("1-2", "4", "MONTHLY")
	assert.False(t, ok)

	_, ok = Lookup("1-2", "2", "WEEKLY")
	assert.False(t, ok)
}

func TestQuarterlyPlansArePopular(t *testing.T) {
	for packageType, byWeek := range Catalogue() {
		for perWeek, plans := range byWeek {
			for _, plan := range plans {
				if plan.Duration == "QUARTERLY" {
					assert.True(t, plan.Popular, "%s/%s quarterly should be flagged popular", packageType, perWeek)
				} else {
					assert.False(t, plan.Popular, "%s/%s %s should not be flagged popular", packageType, perWeek, plan.Duration)
				}
			}
		}
	}
}

func TestNumericPrice(t *testing.T) {
	assert.Equal(t, 14400, NumericPrice("₱14,400"))
	assert.Equal(t, 120000, NumericPrice("₱120,000"))
	assert.Equal(t, 0, NumericPrice("free"))
	assert.Equal(t, 0, NumericPrice(""))
}

func TestNumericSessions(t *testing.T) {
	assert.Equal(t, 26, NumericSessions("26 sessions (24+2 free)"))
	assert.Equal(t, 8, NumericSessions("8 sessions"))
	assert.Equal(t, 0, NumericSessions("sessions"))
	assert.Equal(t, 0, NumericSessions(""))
}

func TestCalculateCredits(t *testing.T) {
	cases := map[int]float64{
		15:  0.5,
		30:  0.5,
		31:  1,
		60:  1,
		61:  1.5,
		90:  1.5,
		91:  2,
		120: 2,
		121: 3,
		180: 3,
		181: 4,
		240: 4,
	}
	for duration, want := range cases {
		assert.Equal(t, want, CalculateCredits(duration), "duration %d", duration)
	}
}

func TestCalculateCreditsMonotonic(t *testing.T) {
	prev := CalculateCredits(1)
	for d := 2; d <= 600; d++ {
		cur := CalculateCredits(d)
		require.GreaterOrEqual(t, cur, prev, "duration %d", d)
		prev = cur
	}
}
