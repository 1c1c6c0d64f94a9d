package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/expensetracker/internal/domain/model"
	"github.com/polkiloo/expensetracker/internal/server/http/dto"
)

// ExpenseHandler serves expense CRUD and filtering for the authenticated user.
type ExpenseHandler struct {
	facade ExpenseFacade
}

// NewExpenseHandler creates ExpenseHandler instance.
func NewExpenseHandler(facade ExpenseFacade) *ExpenseHandler {
	return &ExpenseHandler{facade: facade}
}

// List handles GET /api/expenses.
func (h *ExpenseHandler) List(c *gin.Context) {
	expenses, err := h.facade.Expenses(c.Request.Context(), CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewExpenseListResponse(expenses))
}

// Create handles POST /api/expenses.
func (h *ExpenseHandler) Create(c *gin.Context) {
	fields, ok := bindExpense(c)
	if !ok {
		return
	}

	expense, err := h.facade.CreateExpense(c.Request.Context(), CurrentUser(c), fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewExpenseResponse(*expense))
}

// Update handles PUT /api/expenses/:id.
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := expenseID(c)
	if !ok {
		return
	}
	fields, ok := bindExpense(c)
	if !ok {
		return
	}

	expense, err := h.facade.UpdateExpense(c.Request.Context(), CurrentUser(c), id, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewExpenseResponse(*expense))
}

// Delete handles DELETE /api/expenses/:id.
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := expenseID(c)
	if !ok {
		return
	}

	if err := h.facade.DeleteExpense(c.Request.Context(), CurrentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Filter handles GET /api/expenses/filter?category=&title=.
// A missing or empty category means model.CategoryAll; a missing title means no title filter.
func (h *ExpenseHandler) Filter(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		category = model.CategoryAll
	}
	var title *string
	if v, ok := c.GetQuery("title"); ok {
		title = &v
	}

	expenses, err := h.facade.FilterExpenses(c.Request.Context(), CurrentUser(c), category, title)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewExpenseListResponse(expenses))
}

func expenseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondMessage(c, http.StatusBadRequest, "Invalid expense id")
		return 0, false
	}
	return id, true
}

func bindExpense(c *gin.Context) (model.ExpenseFields, bool) {
	var req dto.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid request body")
		return model.ExpenseFields{}, false
	}
	fields, err := req.Fields()
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return model.ExpenseFields{}, false
	}
	return fields, true
}
