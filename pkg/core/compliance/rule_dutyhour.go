package compliance

import (
	"fmt"
	"sort"
)

const (
	dutyWindowWeeks = 4
	dutyHourCap     = 320
)

// DutyHourRule flags every four-week run of duty weeks whose credited hours
// exceed the rolling cap. The window slides over populated ISO weeks only;
// an empty calendar week between duties does not reset it.
type DutyHourRule struct{}

var _ Rule = DutyHourRule{}

func (DutyHourRule) Name() string { return RuleDutyHour }

func (DutyHourRule) Check(personID string, duties []Duty) []Violation {
	type isoWeek struct{ year, week int }

	hours := make(map[isoWeek]int)
	for _, d := range duties {
		y, w := d.Date.ISOWeek()
		hours[isoWeek{year: y, week: w}] += HoursPerBlock
	}

	weeks := make([]isoWeek, 0, len(hours))
	for w := range hours {
		weeks = append(weeks, w)
	}
	sort.Slice(weeks, func(i, j int) bool {
		if weeks[i].year != weeks[j].year {
			return weeks[i].year < weeks[j].year
		}
		return weeks[i].week < weeks[j].week
	})

	var out []Violation
	for i := 0; i+dutyWindowWeeks <= len(weeks); i++ {
		total := 0
		for _, w := range weeks[i : i+dutyWindowWeeks] {
			total += hours[w]
		}
		if total <= dutyHourCap {
			continue
		}
		label := fmt.Sprintf("%d-W%02d", weeks[i].year, weeks[i].week)
		out = append(out, Violation{
			Rule:     RuleDutyHour,
			PersonID: personID,
			Week:     label,
			Detail: fmt.Sprintf("%d duty hours in the four duty weeks from %s exceed the %d hour cap",
				total, label, dutyHourCap),
		})
	}
	return out
}
