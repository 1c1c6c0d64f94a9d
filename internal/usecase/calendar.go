package usecase

import (
	"time"

	"github.com/polkiloo/expensetracker/internal/domain/model"
)

// Calendar resolves "today" and "this month" in a fixed timezone.
type Calendar struct {
	now func() time.Time
	loc *time.Location
}

// NewCalendar creates Calendar. Nil arguments fall back to time.Now and UTC.
func NewCalendar(now func() time.Time, loc *time.Location) *Calendar {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{now: now, loc: loc}
}

// Today returns the current calendar date.
func (c *Calendar) Today() time.Time {
	return model.DateOf(c.now().In(c.loc))
}

// ThisMonth returns the bounds [start, end) of the current month.
func (c *Calendar) ThisMonth() (time.Time, time.Time) {
	return model.MonthOf(c.Today())
}
