package expiry

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alertNamed(name string, days int) Alert {
	return Alert{
		Username:      strings.ToLower(name),
		DisplayName:   name,
		Email:         strings.ToLower(name) + "@corp.example",
		DaysRemaining: days,
	}
}

func TestGroupByDaysAscendingAndStable(t *testing.T) {
	alerts := []Alert{
		alertNamed("Carol", 7),
		alertNamed("Alice", 1),
		alertNamed("Dave", 7),
		alertNamed("Bob", 3),
		alertNamed("Erin", 1),
	}

	groups := GroupByDays(alerts)
	require.Len(t, groups, 3)

	assert.Equal(t, 1, groups[0].DaysRemaining)
	assert.Equal(t, 3, groups[1].DaysRemaining)
	assert.Equal(t, 7, groups[2].DaysRemaining)

	// Stable input order inside each group.
	assert.Equal(t, []Alert{alertNamed("Alice", 1), alertNamed("Erin", 1)}, groups[0].Alerts)
	assert.Equal(t, []Alert{alertNamed("Carol", 7), alertNamed("Dave", 7)}, groups[2].Alerts)

	// Concatenation preserves the input multiset.
	var all []Alert
	for _, g := range groups {
		all = append(all, g.Alerts...)
	}
	assert.ElementsMatch(t, alerts, all)
}

func TestGroupByDaysEmpty(t *testing.T) {
	assert.Empty(t, GroupByDays(nil))
}

func TestSummaryTruncation(t *testing.T) {
	var alerts []Alert
	for i := 0; i < 12; i++ {
		alerts = append(alerts, alertNamed(fmt.Sprintf("User%02d", i), 3))
	}
	g := GroupByDays(alerts)[0]

	out := g.Summary(5)
	assert.Equal(t, 5, strings.Count(out, "• User"), "exactly five names listed")
	assert.Contains(t, out, "... and 7 more")
}

func TestSummaryNoSuffixWhenUnderLimit(t *testing.T) {
	g := Group{DaysRemaining: 3, Alerts: []Alert{
		alertNamed("Alice", 3),
		alertNamed("Bob", 3),
		alertNamed("Carol", 3),
	}}

	out := g.Summary(5)
	assert.NotContains(t, out, "more")
	assert.Contains(t, out, "• Alice (alice)")
	assert.Contains(t, out, "• Carol (carol)")
}

func TestSummaryExactLimit(t *testing.T) {
	g := Group{DaysRemaining: 1, Alerts: []Alert{
		alertNamed("Alice", 1),
		alertNamed("Bob", 1),
	}}
	assert.NotContains(t, g.Summary(2), "more")
}

func TestGroupTitle(t *testing.T) {
	assert.Equal(t, "1 day remaining", Group{DaysRemaining: 1}.Title())
	assert.Equal(t, "3 days remaining", Group{DaysRemaining: 3}.Title())
	assert.Equal(t, "0 days remaining", Group{DaysRemaining: 0}.Title())
}
