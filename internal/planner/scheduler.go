package planner

import (
	"slices"
	"strings"
)

// Weekday is a lowercase three-letter weekday tag.
type Weekday string

const (
	Monday    Weekday = "mon"
	Tuesday   Weekday = "tue"
	Wednesday Weekday = "wed"
	Thursday  Weekday = "thu"
	Friday    Weekday = "fri"
	Saturday  Weekday = "sat"
	Sunday    Weekday = "sun"
)

const daysInWeek = 7

// Weekdays lists the weekday tags from Monday to Sunday.
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// Index returns the zero-based position of the weekday starting from Monday, or -1 for unknown tags.
func (w Weekday) Index() int {
	return slices.Index(Weekdays(), w)
}

// Valid reports whether w is a known weekday tag.
func (w Weekday) Valid() bool {
	return w.Index() >= 0
}

// defaultSpreads are the weekdays used when the user has no preference.
var defaultSpreads = map[int][]Weekday{ //nolint:gochecknoglobals // static table
	2: {Monday, Thursday},
	3: {Monday, Wednesday, Friday},
	4: {Monday, Tuesday, Thursday, Friday},
	5: {Monday, Tuesday, Wednesday, Friday, Saturday},
	6: {Monday, Tuesday, Wednesday, Thursday, Friday, Saturday},
	7: {Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday},
}

// ScheduleDays maps n training days to weekdays sorted from Monday to Sunday.
//
// Without usable preferences a fixed spread is used. When the preferred days match n they are used as is.
// Otherwise days are picked greedily, each time choosing the candidate whose smallest circular distance to the
// days already chosen is largest. Surplus preferences are thinned out that way, and missing days are added
// from the rest of the week. Ties go to the earliest weekday.
func ScheduleDays(n int, preferred []Weekday) []Weekday {
	n = min(max(n, 1), daysInWeek)

	var prefs []Weekday
	for _, d := range preferred {
		d = Weekday(strings.ToLower(strings.TrimSpace(string(d))))
		if d.Valid() && !slices.Contains(prefs, d) {
			prefs = append(prefs, d)
		}
	}
	sortWeekdays(prefs)

	var chosen []Weekday
	switch {
	case len(prefs) == 0:
		if spread, ok := defaultSpreads[n]; ok {
			return slices.Clone(spread)
		}
		chosen = spreadPick(nil, Weekdays(), n)
	case len(prefs) == n:
		chosen = prefs
	case len(prefs) > n:
		chosen = spreadPick(nil, prefs, n)
	default:
		rest := slices.DeleteFunc(Weekdays(), func(d Weekday) bool { return slices.Contains(prefs, d) })
		chosen = spreadPick(prefs, rest, n)
	}
	sortWeekdays(chosen)
	return chosen
}

// spreadPick extends chosen with candidates until it holds n days.
func spreadPick(chosen, candidates []Weekday, n int) []Weekday {
	chosen = slices.Clone(chosen)
	candidates = slices.Clone(candidates)
	for len(chosen) < n && len(candidates) > 0 {
		best, bestGap := 0, -1
		for i, c := range candidates {
			gap := minGap(c, chosen)
			if gap > bestGap {
				best, bestGap = i, gap
			}
		}
		chosen = append(chosen, candidates[best])
		candidates = slices.Delete(candidates, best, best+1)
	}
	return chosen
}

// minGap is the smallest circular distance between d and any of days. An empty list counts as a full week.
func minGap(d Weekday, days []Weekday) int {
	gap := daysInWeek
	for _, other := range days {
		diff := d.Index() - other.Index()
		if diff < 0 {
			diff = -diff
		}
		gap = min(gap, diff, daysInWeek-diff)
	}
	return gap
}

func sortWeekdays(days []Weekday) {
	slices.SortFunc(days, func(a, b Weekday) int { return a.Index() - b.Index() })
}
