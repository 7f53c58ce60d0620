package expiry

import (
	"fmt"
	"sort"
	"strings"
)

// Group is all alerts sharing one days-remaining value.
type Group struct {
	DaysRemaining int
	Alerts        []Alert
}

// GroupByDays buckets alerts by days-remaining, keys strictly ascending, each
// bucket in stable input order. Concatenating the buckets yields the input
// multiset.
func GroupByDays(alerts []Alert) []Group {
	byDays := make(map[int][]Alert)
	for _, a := range alerts {
		byDays[a.DaysRemaining] = append(byDays[a.DaysRemaining], a)
	}

	keys := make([]int, 0, len(byDays))
	for k := range byDays {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	groups := make([]Group, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, Group{DaysRemaining: k, Alerts: byDays[k]})
	}
	return groups
}

// Summary renders the group as bullet lines, listing at most maxListed users
// and a "... and N more" trailer when truncated. Channels truncate at
// different lengths, so the limit is a parameter rather than a constant.
func (g Group) Summary(maxListed int) string {
	var b strings.Builder
	for i, a := range g.Alerts {
		if i == maxListed {
			break
		}
		fmt.Fprintf(&b, "• %s (%s)\n", a.DisplayName, a.Username)
	}
	if extra := len(g.Alerts) - maxListed; extra > 0 {
		fmt.Fprintf(&b, "• ... and %d more\n", extra)
	}
	return b.String()
}

// Title renders the group heading, with the singular/plural fussiness users
// notice in chat channels.
func (g Group) Title() string {
	return fmt.Sprintf("%d %s remaining", g.DaysRemaining, plural(g.DaysRemaining, "day"))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
