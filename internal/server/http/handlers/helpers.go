package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/expensetracker/internal/domain/errors"
	"github.com/polkiloo/expensetracker/internal/domain/model"
	"github.com/polkiloo/expensetracker/internal/server/http/dto"
	"github.com/polkiloo/expensetracker/internal/server/http/middleware"
)

// CurrentUser extracts the authenticated user from context.
func CurrentUser(c *gin.Context) *model.User {
	val, ok := c.Get(middleware.UserContextKey)
	if !ok {
		return nil
	}
	user, _ := val.(*model.User)
	return user
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, dto.MessageResponse{Message: message})
}

// respondError maps service errors on a protected route to HTTP replies.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		respondMessage(c, http.StatusNotFound, "Expense not found")
	case errors.Is(err, domainErrors.ErrForbidden):
		respondMessage(c, http.StatusForbidden, "Forbidden")
	case errors.Is(err, domainErrors.ErrUnknownUser),
		errors.Is(err, domainErrors.ErrMissingCredential),
		errors.Is(err, domainErrors.ErrInvalidCredential):
		respondMessage(c, http.StatusUnauthorized, "Unauthorized")
	default:
		_ = c.Error(err)
		respondMessage(c, http.StatusInternalServerError, "Internal server error")
	}
}
