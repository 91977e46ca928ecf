package auth

import "github.com/angelmondragon/littlelemon-backend/internal/users"

// TokenRequest carries the credentials posted to the token endpoint.
type TokenRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by a successful token request.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// RegisterRequest creates a customer account.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"omitempty,email,max=254"`
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterResponse echoes the created user.
type RegisterResponse = users.UserDTO
