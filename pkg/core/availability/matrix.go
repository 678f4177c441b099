package availability

import (
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/model"
)

// Entry describes one (person, block) cell of the matrix
type Entry struct {
	Available   bool
	Replacement string
}

// Matrix maps person ID -> block ID -> availability entry. Every pair is
// materialized at build time; lookups for pairs the matrix has never seen
// default to available.
type Matrix map[string]map[string]Entry

// BuildMatrix derives per-person, per-block availability from absence
// records. Every pair starts available; an absence whose date range covers a
// block's date marks the pair unavailable and records the replacement label.
// When several absences for the same person cover the same block, the first
// one in input order wins.
//
// Pure function: inputs are never mutated.
func BuildMatrix(people []model.Person, blocks []model.Block, absences []model.Absence) Matrix {
	absencesByPerson := make(map[string][]model.Absence)
	for _, abs := range absences {
		absencesByPerson[abs.PersonID] = append(absencesByPerson[abs.PersonID], abs)
	}

	matrix := make(Matrix, len(people))
	for _, person := range people {
		row := make(map[string]Entry, len(blocks))
		personAbsences := absencesByPerson[person.ID]

		for _, block := range blocks {
			entry := Entry{Available: true}
			for _, abs := range personAbsences {
				if abs.Covers(block.Date) {
					entry = Entry{Available: false, Replacement: abs.ReplacementActivity}
					break
				}
			}
			row[block.ID] = entry
		}

		matrix[person.ID] = row
	}

	return matrix
}

// IsAvailable reports whether the person can be assigned to the block.
// Pairs the matrix has no entry for default to available.
func (m Matrix) IsAvailable(personID, blockID string) bool {
	row, ok := m[personID]
	if !ok {
		return true
	}
	entry, ok := row[blockID]
	if !ok {
		return true
	}
	return entry.Available
}

// Replacement returns the replacement-activity label recorded for an
// unavailable pair, or "" when the pair is available or unknown.
func (m Matrix) Replacement(personID, blockID string) string {
	if row, ok := m[personID]; ok {
		if entry, ok := row[blockID]; ok && !entry.Available {
			return entry.Replacement
		}
	}
	return ""
}

// Sparsity returns the fraction of (person, block) pairs marked unavailable,
// over the given people and blocks. Zero when either list is empty.
func (m Matrix) Sparsity(personIDs []string, blocks []model.Block) float64 {
	total := len(personIDs) * len(blocks)
	if total == 0 {
		return 0
	}

	unavailable := 0
	for _, personID := range personIDs {
		for _, block := range blocks {
			if !m.IsAvailable(personID, block.ID) {
				unavailable++
			}
		}
	}

	return float64(unavailable) / float64(total)
}
