package scheduler

import (
	"time"

	"github.com/google/uuid"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/model"
)

type blockKey struct {
	date    time.Time
	session model.Session
}

// Calendar is the in-memory BlockSource used when a run does not persist
// blocks. Repeated EnsureBlock calls for the same (date, session) return the
// block created by the first call.
type Calendar struct {
	horizonStart time.Time
	blocks       map[blockKey]model.Block
}

func NewCalendar(horizonStart time.Time) *Calendar {
	return &Calendar{
		horizonStart: model.Date(horizonStart),
		blocks:       make(map[blockKey]model.Block),
	}
}

func (c *Calendar) EnsureBlock(date time.Time, session model.Session) (model.Block, error) {
	day := model.Date(date)
	key := blockKey{date: day, session: session}
	if b, ok := c.blocks[key]; ok {
		return b, nil
	}

	b := model.Block{
		ID:          uuid.New().String(),
		Date:        day,
		Session:     session,
		BlockNumber: BlockNumberFor(c.horizonStart, day),
		IsWeekend:   model.IsWeekendDate(day),
	}
	c.blocks[key] = b
	return b, nil
}

// BlockNumberFor returns the 1-based index of the 28-day period containing
// date, counted from the horizon start. The first 28 days are period 1.
func BlockNumberFor(horizonStart, date time.Time) int {
	days := int(model.Date(date).Sub(model.Date(horizonStart)).Hours() / 24)
	return days/28 + 1
}
