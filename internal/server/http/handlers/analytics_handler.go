package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/expensetracker/internal/server/http/dto"
)

// AnalyticsHandler serves spending aggregates for the authenticated user.
type AnalyticsHandler struct {
	facade AnalyticsFacade
}

// NewAnalyticsHandler creates AnalyticsHandler instance.
func NewAnalyticsHandler(facade AnalyticsFacade) *AnalyticsHandler {
	return &AnalyticsHandler{facade: facade}
}

// Summary handles GET /api/analytics/summary.
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	summary, err := h.facade.Summary(c.Request.Context(), CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSummaryResponse(summary))
}

// CategorySummary handles GET /api/analytics/category-summary.
func (h *AnalyticsHandler) CategorySummary(c *gin.Context) {
	sums, err := h.facade.CategorySummary(c.Request.Context(), CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCategorySummaryResponse(sums))
}

// BudgetCheck handles GET /api/analytics/budget-check?budget=.
func (h *AnalyticsHandler) BudgetCheck(c *gin.Context) {
	raw, ok := c.GetQuery("budget")
	if !ok || raw == "" {
		respondMessage(c, http.StatusBadRequest, "budget is required")
		return
	}
	budget, err := decimal.NewFromString(raw)
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "budget must be a number")
		return
	}

	report, err := h.facade.BudgetCheck(c.Request.Context(), CurrentUser(c), budget)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBudgetResponse(report))
}
