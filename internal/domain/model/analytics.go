package model

import "github.com/shopspring/decimal"

// BudgetStatus tells whether monthly spending stayed within a budget.
type BudgetStatus string

const (
	BudgetWithinLimit   BudgetStatus = "WITHIN_LIMIT"
	BudgetLimitExceeded BudgetStatus = "LIMIT_EXCEEDED"
)

// Summary aggregates spending over independent time buckets.
type Summary struct {
	Total     decimal.Decimal
	Today     decimal.Decimal
	ThisMonth decimal.Decimal
}

// CategorySummary maps a category to its summed amount.
type CategorySummary map[string]decimal.Decimal

// BudgetReport compares this month's spending with a budget.
// Exactly one of OverBy and Remaining is set.
type BudgetReport struct {
	Budget    decimal.Decimal
	Spent     decimal.Decimal
	Status    BudgetStatus
	OverBy    *decimal.Decimal
	Remaining *decimal.Decimal
}
