package driving

import (
	"context"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
)

// SignupRequest represents a request to create a new account
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest represents a request to update the
// authenticated user's profile. Password is optional.
type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// AuthService handles account signup and authentication
type AuthService interface {
	// Signup creates a new account. It does not authenticate:
	// the caller logs in as a separate step.
	Signup(ctx context.Context, req SignupRequest) (*domain.UserSummary, error)

	// Authenticate validates credentials and issues a token
	Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)

	// ValidateToken verifies a token and returns the auth context
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)

	// UpdateProfile updates name, email and optionally password
	// for the authenticated user
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*domain.UserSummary, error)
}
