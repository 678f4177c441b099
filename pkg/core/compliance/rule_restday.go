package compliance

import (
	"fmt"
	"sort"
	"time"
)

const consecutiveDayLimit = 7

// RestDayRule flags every duty day that extends a run of consecutive duty
// days to the limit or beyond. AM and PM sessions on one day count as a
// single duty day, so a morning-and-afternoon pair never breaks a streak.
type RestDayRule struct{}

var _ Rule = RestDayRule{}

func (RestDayRule) Name() string { return RuleRestDay }

func (RestDayRule) Check(personID string, duties []Duty) []Violation {
	seen := make(map[time.Time]bool, len(duties))
	days := make([]time.Time, 0, len(duties))
	for _, d := range duties {
		if !seen[d.Date] {
			seen[d.Date] = true
			days = append(days, d.Date)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	var out []Violation
	streak := 0
	for i, day := range days {
		if i > 0 && day.Sub(days[i-1]) == 24*time.Hour {
			streak++
		} else {
			streak = 1
		}
		if streak < consecutiveDayLimit {
			continue
		}
		out = append(out, Violation{
			Rule:     RuleRestDay,
			PersonID: personID,
			Date:     day,
			Detail: fmt.Sprintf("%d consecutive duty days through %s without a rest day",
				streak, day.Format(time.DateOnly)),
		})
	}
	return out
}
