package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/expensetracker/internal/domain/model"
)

// ExpenseRequest is the create/update payload. Absent fields decode to zero values.
type ExpenseRequest struct {
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Date        *string         `json:"date"`
}

// Fields converts the request into domain fields. A null or missing date stays nil.
func (r ExpenseRequest) Fields() (model.ExpenseFields, error) {
	fields := model.ExpenseFields{
		Title:       r.Title,
		Amount:      r.Amount,
		Description: r.Description,
		Category:    r.Category,
	}
	if r.Date != nil {
		date, err := time.Parse(model.DateLayout, *r.Date)
		if err != nil {
			return model.ExpenseFields{}, fmt.Errorf("invalid date %q: %w", *r.Date, err)
		}
		fields.Date = &date
	}
	return fields, nil
}

// ExpenseResponse is the wire form of an expense.
type ExpenseResponse struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Date        string      `json:"date"`
}

// NewExpenseResponse maps a domain expense to its wire form.
func NewExpenseResponse(e model.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Title:       e.Title,
		Amount:      Number(e.Amount),
		Description: e.Description,
		Category:    e.Category,
		Date:        e.Date.Format(model.DateLayout),
	}
}

// NewExpenseListResponse maps expenses, yielding an empty array rather than null.
func NewExpenseListResponse(expenses []model.Expense) []ExpenseResponse {
	resp := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		resp = append(resp, NewExpenseResponse(e))
	}
	return resp
}

// Number renders d as a JSON number without losing precision.
func Number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
