// Package compliance checks finished schedules against rolling-window duty
// rules. Violations are advisory data attached to a run, never errors; a
// schedule with violations is still a schedule.
package compliance

import (
	"fmt"
	"sort"
	"time"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/model"
)

// HoursPerBlock is the credited length of one clinical session.
const HoursPerBlock = 4

// Rule names, used to tag violations.
const (
	RuleDutyHour = "duty_hour"
	RuleRestDay  = "rest_day"
)

// Duty is one assignment resolved to its calendar day and session.
type Duty struct {
	Date    time.Time
	Session model.Session
}

// Violation records one breach of a compliance rule for one person.
type Violation struct {
	Rule     string
	PersonID string
	// Week is the first ISO week of the offending four-week window for
	// duty-hour violations, e.g. "2025-W23". Empty for rest-day violations.
	Week string
	// Date is the duty day on which a consecutive-day streak crossed the
	// limit for rest-day violations. Zero for duty-hour violations.
	Date   time.Time
	Detail string
}

// Rule checks one compliance constraint over a single person's duties. The
// duties are sorted by date then session.
type Rule interface {
	Name() string
	Check(personID string, duties []Duty) []Violation
}

// DefaultRules returns the rule set Validate applies.
func DefaultRules() []Rule {
	return []Rule{DutyHourRule{}, RestDayRule{}}
}

// Report is the outcome of validating one schedule.
type Report struct {
	Violations []Violation
}

// Clean reports whether no rule was breached.
func (r *Report) Clean() bool {
	return len(r.Violations) == 0
}

// CountByRule tallies violations per rule name.
func (r *Report) CountByRule() map[string]int {
	counts := make(map[string]int)
	for _, v := range r.Violations {
		counts[v.Rule]++
	}
	return counts
}

// Validate resolves assignments through the block set and checks every
// person's duties against the default rules. Violation order is
// deterministic: people by ID, then rule order, then chronology.
func Validate(assignments []model.Assignment, blocks []model.Block) (*Report, error) {
	return ValidateWithRules(assignments, blocks, DefaultRules())
}

// ValidateWithRules is Validate with a caller-chosen rule set.
func ValidateWithRules(assignments []model.Assignment, blocks []model.Block, rules []Rule) (*Report, error) {
	blocksByID := make(map[string]model.Block, len(blocks))
	for _, b := range blocks {
		blocksByID[b.ID] = b
	}

	duties := make(map[string][]Duty)
	var people []string
	for _, a := range assignments {
		b, ok := blocksByID[a.BlockID]
		if !ok {
			return nil, fmt.Errorf("assignment for person %q references unknown block %q", a.PersonID, a.BlockID)
		}
		if _, seen := duties[a.PersonID]; !seen {
			people = append(people, a.PersonID)
		}
		duties[a.PersonID] = append(duties[a.PersonID], Duty{Date: model.Date(b.Date), Session: b.Session})
	}
	sort.Strings(people)

	report := &Report{}
	for _, personID := range people {
		personDuties := duties[personID]
		sort.Slice(personDuties, func(i, j int) bool {
			if !personDuties[i].Date.Equal(personDuties[j].Date) {
				return personDuties[i].Date.Before(personDuties[j].Date)
			}
			return personDuties[i].Session < personDuties[j].Session
		})
		for _, rule := range rules {
			report.Violations = append(report.Violations, rule.Check(personID, personDuties)...)
		}
	}
	return report, nil
}
