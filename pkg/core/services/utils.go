package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/internal/config"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/compliance"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/model"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/scheduler"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/db"
)

// expandClosureDates expands the configured closure rules into concrete dates
// inside the horizon. The rules were syntax-checked at config load; a parse
// failure here still reports which rule broke.
func expandClosureDates(rules []config.ClosureRule, start, end time.Time, logger *zap.Logger) ([]time.Time, error) {
	if len(rules) == 0 {
		return nil, nil
	}

	searchStart := model.Date(start)
	searchEnd := model.Date(end)

	dates := make([]time.Time, 0)
	for i, rule := range rules {
		parsed, err := rrule.StrToRRule(rule.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rrule for closure rule %d: %w", i, err)
		}

		// Anchor the rule at the horizon start so occurrences land inside it
		parsed.DTStart(searchStart)
		occurrences := parsed.Between(searchStart, searchEnd, true)
		for _, occurrence := range occurrences {
			dates = append(dates, model.Date(occurrence))
		}

		logger.Debug("Expanded closure rule",
			zap.Int("index", i),
			zap.String("rrule", rule.RRule),
			zap.String("label", rule.Label),
			zap.Int("occurrences", len(occurrences)))
	}

	return dates, nil
}

// ComplianceScore converts a violation count into a 0-100 score against the
// expected person-weeks of the horizon. Floors at zero; an empty horizon with
// no violations scores 100.
func ComplianceScore(violations, residents, weeks int) float64 {
	personWeeks := residents * weeks
	if personWeeks <= 0 {
		if violations == 0 {
			return 100
		}
		return 0
	}

	score := 100 - float64(violations)/float64(personWeeks)*100
	if score < 0 {
		return 0
	}
	return score
}

// deriveRunStatus classifies a completed run. Coverage gaps and compliance
// violations both downgrade success to partial; failed is reserved for runs
// that never produced a schedule.
func deriveRunStatus(result *scheduler.Result, report *compliance.Report) model.RunStatus {
	if len(result.Gaps) == 0 && report.Clean() {
		return model.RunSuccess
	}
	return model.RunPartial
}

// horizonWeeks returns the number of (possibly partial) weeks between two
// inclusive dates
func horizonWeeks(start, end time.Time) int {
	days := int(model.Date(end).Sub(model.Date(start)).Hours()/24) + 1
	if days <= 0 {
		return 0
	}
	return (days + 6) / 7
}

// convertToModelPeople converts database person records to domain people
func convertToModelPeople(records []db.Person) []model.Person {
	people := make([]model.Person, len(records))
	for i, record := range records {
		people[i] = model.Person{
			ID:        record.ID,
			FirstName: record.FirstName,
			LastName:  record.LastName,
			Kind:      model.PersonKind(record.Kind),
			PGYLevel:  record.PGYLevel,
			Role:      record.Role,
			Active:    record.Active,
		}
	}
	return people
}

// convertToModelAbsences converts database absence records to domain absences
func convertToModelAbsences(records []db.Absence) []model.Absence {
	absences := make([]model.Absence, len(records))
	for i, record := range records {
		absences[i] = model.Absence{
			PersonID:            record.PersonID,
			StartDate:           record.StartDate,
			EndDate:             record.EndDate,
			ReplacementActivity: record.ReplacementActivity,
		}
	}
	return absences
}

// convertToModelTemplates converts database template records to domain templates
func convertToModelTemplates(records []db.RotationTemplate) []model.RotationTemplate {
	templates := make([]model.RotationTemplate, len(records))
	for i, record := range records {
		templates[i] = model.RotationTemplate{
			ID:                          record.ID,
			Name:                        record.Name,
			RequiresProcedureCredential: record.RequiresProcedureCredential,
		}
	}
	return templates
}

// convertToModelBlock converts a database block record to a domain block
func convertToModelBlock(record db.Block) model.Block {
	return model.Block{
		ID:          record.ID,
		Date:        record.Date,
		Session:     model.Session(record.Session),
		BlockNumber: record.BlockNumber,
		IsWeekend:   record.IsWeekend,
	}
}

// convertToModelBlocks converts database block records to domain blocks
func convertToModelBlocks(records []db.Block) []model.Block {
	blocks := make([]model.Block, len(records))
	for i, record := range records {
		blocks[i] = convertToModelBlock(record)
	}
	return blocks
}

// convertToModelAssignments converts database assignment records to domain
// assignments
func convertToModelAssignments(records []db.Assignment) []model.Assignment {
	assignments := make([]model.Assignment, len(records))
	for i, record := range records {
		assignments[i] = model.Assignment{
			PersonID:           record.PersonID,
			BlockID:            record.BlockID,
			RotationTemplateID: record.RotationTemplateID,
			Role:               model.AssignmentRole(record.Role),
		}
	}
	return assignments
}

// distinctPersonCount counts the distinct person ids in assignment records
func distinctPersonCount(records []db.Assignment) int {
	seen := make(map[string]bool)
	for _, record := range records {
		seen[record.PersonID] = true
	}
	return len(seen)
}
