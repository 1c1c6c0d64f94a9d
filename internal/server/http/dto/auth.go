package dto

// AuthRequest describes email/password payload.
type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// MessageResponse is the body of informational and error replies.
type MessageResponse struct {
	Message string `json:"message"`
}
