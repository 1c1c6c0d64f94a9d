package dto

import (
	"encoding/json"

	"github.com/polkiloo/expensetracker/internal/domain/model"
)

// SummaryResponse holds the three overlapping spending buckets.
type SummaryResponse struct {
	Total     json.Number `json:"total"`
	Today     json.Number `json:"today"`
	ThisMonth json.Number `json:"thisMonth"`
}

// NewSummaryResponse maps a domain summary.
func NewSummaryResponse(s *model.Summary) SummaryResponse {
	return SummaryResponse{
		Total:     Number(s.Total),
		Today:     Number(s.Today),
		ThisMonth: Number(s.ThisMonth),
	}
}

// NewCategorySummaryResponse maps per-category sums.
func NewCategorySummaryResponse(s model.CategorySummary) map[string]json.Number {
	resp := make(map[string]json.Number, len(s))
	for category, total := range s {
		resp[category] = Number(total)
	}
	return resp
}

// BudgetResponse reports monthly spending against a budget.
// Exactly one of OverBy and Remaining is present.
type BudgetResponse struct {
	Budget    json.Number  `json:"budget"`
	Spent     json.Number  `json:"spent"`
	Status    string       `json:"status"`
	OverBy    *json.Number `json:"overBy,omitempty"`
	Remaining *json.Number `json:"remaining,omitempty"`
}

// NewBudgetResponse maps a domain budget report.
func NewBudgetResponse(r *model.BudgetReport) BudgetResponse {
	resp := BudgetResponse{
		Budget: Number(r.Budget),
		Spent:  Number(r.Spent),
		Status: string(r.Status),
	}
	if r.OverBy != nil {
		n := Number(*r.OverBy)
		resp.OverBy = &n
	}
	if r.Remaining != nil {
		n := Number(*r.Remaining)
		resp.Remaining = &n
	}
	return resp
}

// HealthResponse is returned by the health probe.
type HealthResponse struct {
	Status string `json:"status"`
}
