package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
	"github.com/storefront-labs/storefront-core/internal/core/ports/driven"
	"github.com/storefront-labs/storefront-core/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// dummyHash is a valid bcrypt hash compared against when the email is
// unknown, so the unknown-email and wrong-password paths take the same
// time and return the same error.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// authService implements the AuthService interface
type authService struct {
	userStore   driven.UserStore
	authAdapter driven.AuthAdapter
	tokenTTL    time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(userStore driven.UserStore, authAdapter driven.AuthAdapter) driving.AuthService {
	return &authService{
		userStore:   userStore,
		authAdapter: authAdapter,
		tokenTTL:    24 * time.Hour,
	}
}

// Signup creates a new account. No token is issued: login is a separate step.
func (s *authService) Signup(ctx context.Context, req driving.SignupRequest) (*domain.UserSummary, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Check if email already exists
	existing, _ := s.userStore.GetByEmail(ctx, email)
	if existing != nil {
		return nil, domain.ErrAlreadyExists
	}

	passwordHash, err := s.authAdapter.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           generateID(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         strings.TrimSpace(req.Name),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userStore.Save(ctx, user); err != nil {
		return nil, err
	}

	return user.ToSummary(), nil
}

// Authenticate validates credentials and issues a token
func (s *authService) Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	// Validate input
	if req.Email == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	// Get user by email
	user, err := s.userStore.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		// Burn a hash comparison so the response does not reveal
		// whether the account exists.
		s.authAdapter.VerifyPassword(req.Password, dummyHash)
		return nil, domain.ErrInvalidCredentials
	}

	// Verify password
	if !s.authAdapter.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)
	claims := &domain.TokenClaims{
		UserID:    user.ID,
		Email:     user.Email,
		IssuedAt:  now.Unix(),
		ExpiresAt: expiresAt.Unix(),
	}

	token, err := s.authAdapter.GenerateToken(claims)
	if err != nil {
		return nil, err
	}

	return &domain.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.ToSummary(),
	}, nil
}

// ValidateToken verifies a token and returns the auth context.
// Verification is deterministic and touches no store.
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}

	claims, err := s.authAdapter.ParseToken(token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	// Check expiration
	if time.Now().Unix() > claims.ExpiresAt {
		return nil, domain.ErrTokenExpired
	}

	return &domain.AuthContext{
		UserID: claims.UserID,
		Email:  claims.Email,
	}, nil
}

// UpdateProfile updates name, email and optionally password for the
// authenticated user
func (s *authService) UpdateProfile(ctx context.Context, userID string, req driving.UpdateProfileRequest) (*domain.UserSummary, error) {
	if req.Name == "" || req.Email == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.userStore.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Reject an email owned by a different account
	existing, _ := s.userStore.GetByEmail(ctx, email)
	if existing != nil && existing.ID != user.ID {
		return nil, domain.ErrAlreadyExists
	}

	user.Name = strings.TrimSpace(req.Name)
	user.Email = email

	// Only re-hash when a new password is supplied
	if req.Password != "" {
		passwordHash, err := s.authAdapter.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = passwordHash
	}

	user.UpdatedAt = time.Now()

	if err := s.userStore.Save(ctx, user); err != nil {
		return nil, err
	}

	return user.ToSummary(), nil
}

func generateID() string {
	return uuid.NewString()
}
