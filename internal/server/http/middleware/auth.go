package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/expensetracker/internal/domain/errors"
	"github.com/polkiloo/expensetracker/internal/domain/model"
	"github.com/polkiloo/expensetracker/internal/server/http/dto"
)

// UserContextKey is a gin context key for the authenticated *model.User.
const UserContextKey = "user"

const unauthorizedMessage = "Unauthorized"

// Resolver turns an Authorization header into the account it belongs to.
type Resolver interface {
	Resolve(ctx context.Context, header string) (*model.User, error)
}

// AuthRequired ensures user is authenticated before accessing handler.
// Every credential failure yields the same 401 body.
func AuthRequired(resolver Resolver, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolver.Resolve(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			switch {
			case errors.Is(err, domainErrors.ErrMissingCredential),
				errors.Is(err, domainErrors.ErrInvalidCredential),
				errors.Is(err, domainErrors.ErrUnknownUser):
				if logger != nil {
					logger.Debug("request rejected", slog.String("reason", err.Error()), slog.String("path", c.Request.URL.Path))
				}
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.MessageResponse{Message: unauthorizedMessage})
			default:
				if logger != nil {
					logger.Error("resolve credential", slog.String("error", err.Error()))
				}
				c.AbortWithStatus(http.StatusInternalServerError)
			}
			return
		}

		c.Set(UserContextKey, user)
		c.Next()
	}
}
