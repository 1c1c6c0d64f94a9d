package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryAll is the filter value matching every category. It is never stored as a real category.
const CategoryAll = "All"

// DateLayout is the wire and storage layout of expense dates.
const DateLayout = "2006-01-02"

// Expense is a single spending record owned by exactly one user.
//
// Amount and Title are not validated: negative amounts and blank titles are
// accepted as-is, and it is undecided whether negatives are meant as refunds.
type Expense struct {
	ID          int64
	OwnerID     int64
	Title       string
	Amount      decimal.Decimal
	Description string
	Category    string
	Date        time.Time
}

// ExpenseFields carries caller supplied values for create and update.
// A nil Date means the caller omitted it.
type ExpenseFields struct {
	Title       string
	Amount      decimal.Decimal
	Description string
	Category    string
	Date        *time.Time
}

// OwnedBy reports whether the expense belongs to the user.
func (e *Expense) OwnedBy(user *User) bool {
	return user != nil && e.OwnerID == user.ID
}

// DateOf truncates t to its calendar day, expressed as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthOf returns the first day of the month containing t and the first day of the next one.
func MonthOf(t time.Time) (time.Time, time.Time) {
	y, m, _ := t.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
