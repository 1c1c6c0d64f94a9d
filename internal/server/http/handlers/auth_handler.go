package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/expensetracker/internal/domain/errors"
	"github.com/polkiloo/expensetracker/internal/server/http/dto"
)

// AuthHandler processes registration and login.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.facade.Register(c.Request.Context(), req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrDuplicateEmail):
			respondMessage(c, http.StatusBadRequest, "Email already exists")
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			respondMessage(c, http.StatusBadRequest, "Email and password are required")
		default:
			_ = c.Error(err)
			respondMessage(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondMessage(c, http.StatusCreated, "User registered successfully")
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.facade.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			respondMessage(c, http.StatusUnauthorized, "Invalid credentials")
		default:
			_ = c.Error(err)
			respondMessage(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}
