package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
	"github.com/storefront-labs/storefront-core/internal/core/ports/driven/mocks"
	"github.com/storefront-labs/storefront-core/internal/core/ports/driving"
)

func newTestAuthService() (*mocks.MockUserStore, *mocks.MockAuthAdapter, *authService) {
	userStore := mocks.NewMockUserStore()
	authAdapter := mocks.NewMockAuthAdapter()
	svc := NewAuthService(userStore, authAdapter).(*authService)
	return userStore, authAdapter, svc
}

func TestAuthService_Signup(t *testing.T) {
	tests := []struct {
		name    string
		req     driving.SignupRequest
		wantErr error
	}{
		{
			name: "valid signup",
			req: driving.SignupRequest{
				Name:     "Test User",
				Email:    "test@example.com",
				Password: "password123",
			},
			wantErr: nil,
		},
		{
			name: "empty name",
			req: driving.SignupRequest{
				Email:    "test@example.com",
				Password: "password123",
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "empty email",
			req: driving.SignupRequest{
				Name:     "Test User",
				Password: "password123",
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "empty password",
			req: driving.SignupRequest{
				Name:  "Test User",
				Email: "test@example.com",
			},
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, svc := newTestAuthService()
			summary, err := svc.Signup(context.Background(), tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if summary == nil {
				t.Fatal("expected user summary to be returned")
			}
			if summary.ID == "" {
				t.Error("expected an ID to be assigned")
			}
			if summary.Email != tt.req.Email {
				t.Errorf("expected email %s, got %s", tt.req.Email, summary.Email)
			}
		})
	}
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	_, _, svc := newTestAuthService()

	req := driving.SignupRequest{Name: "A", Email: "a@x.com", Password: "secret"}
	if _, err := svc.Signup(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Second signup with the same email fails even with a different password
	req.Password = "other-password"
	_, err := svc.Signup(context.Background(), req)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthService_Signup_NormalizesEmail(t *testing.T) {
	userStore, _, svc := newTestAuthService()

	req := driving.SignupRequest{Name: "A", Email: "  Mixed@Example.COM ", Password: "secret"}
	if _, err := svc.Signup(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, err := userStore.GetByEmail(context.Background(), "mixed@example.com")
	if err != nil {
		t.Fatalf("expected lowercased email to be stored: %v", err)
	}
	if user.PasswordHash == "" {
		t.Error("expected a password hash to be stored")
	}
}

func TestAuthService_SignupThenAuthenticate(t *testing.T) {
	_, _, svc := newTestAuthService()

	req := driving.SignupRequest{Name: "A", Email: "a@x.com", Password: "secret"}
	if _, err := svc.Signup(context.Background(), req); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	resp, err := svc.Authenticate(context.Background(), domain.LoginRequest{
		Email:    "a@x.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("login after signup failed: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected token to be issued")
	}
	if resp.User.Name != "A" {
		t.Errorf("expected display name A, got %s", resp.User.Name)
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	userStore, _, svc := newTestAuthService()

	// Create a user with known password
	user := &domain.User{
		ID:           "user-123",
		Email:        "test@example.com",
		PasswordHash: "password123", // Mock hasher uses plain text comparison
		Name:         "Test User",
		CreatedAt:    time.Now(),
	}
	_ = userStore.Save(context.Background(), user)

	tests := []struct {
		name    string
		req     domain.LoginRequest
		wantErr error
	}{
		{
			name: "valid credentials",
			req: domain.LoginRequest{
				Email:    "test@example.com",
				Password: "password123",
			},
			wantErr: nil,
		},
		{
			name: "empty email",
			req: domain.LoginRequest{
				Email:    "",
				Password: "password123",
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "empty password",
			req: domain.LoginRequest{
				Email:    "test@example.com",
				Password: "",
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "wrong password",
			req: domain.LoginRequest{
				Email:    "test@example.com",
				Password: "wrongpassword",
			},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name: "unknown user",
			req: domain.LoginRequest{
				Email:    "unknown@example.com",
				Password: "password123",
			},
			wantErr: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Authenticate(context.Background(), tt.req)

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp == nil {
				t.Fatal("expected response to be returned")
			}
			if resp.Token == "" {
				t.Error("expected token to be generated")
			}
			if resp.User.Email != tt.req.Email {
				t.Errorf("expected user email %s, got %s", tt.req.Email, resp.User.Email)
			}
			if !resp.ExpiresAt.After(time.Now().Add(23 * time.Hour)) {
				t.Error("expected token to be valid for 24 hours")
			}
		})
	}
}

func TestAuthService_Authenticate_IdenticalFailures(t *testing.T) {
	userStore, _, svc := newTestAuthService()

	user := &domain.User{
		ID:           "user-123",
		Email:        "known@example.com",
		PasswordHash: "rightpassword",
		Name:         "Known",
	}
	_ = userStore.Save(context.Background(), user)

	// Wrong password and unknown email must be indistinguishable
	_, errWrongPassword := svc.Authenticate(context.Background(), domain.LoginRequest{
		Email:    "known@example.com",
		Password: "wrong",
	})
	_, errUnknownEmail := svc.Authenticate(context.Background(), domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "wrong",
	})

	if errWrongPassword != errUnknownEmail {
		t.Errorf("expected identical errors, got %v and %v", errWrongPassword, errUnknownEmail)
	}
	if !errors.Is(errWrongPassword, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", errWrongPassword)
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	userStore, authAdapter, svc := newTestAuthService()

	user := &domain.User{
		ID:           "user-123",
		Email:        "test@example.com",
		PasswordHash: "password123",
		Name:         "Test User",
	}
	_ = userStore.Save(context.Background(), user)

	resp, err := svc.Authenticate(context.Background(), domain.LoginRequest{
		Email:    "test@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}

	t.Run("valid token", func(t *testing.T) {
		authCtx, err := svc.ValidateToken(context.Background(), resp.Token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if authCtx.UserID != "user-123" {
			t.Errorf("expected user ID user-123, got %s", authCtx.UserID)
		}
		if authCtx.Email != "test@example.com" {
			t.Errorf("expected email test@example.com, got %s", authCtx.Email)
		}
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := svc.ValidateToken(context.Background(), "")
		if err != domain.ErrTokenInvalid {
			t.Errorf("expected ErrTokenInvalid, got %v", err)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken(context.Background(), "not-a-token!!!")
		if err != domain.ErrTokenInvalid {
			t.Errorf("expected ErrTokenInvalid, got %v", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := authAdapter.GenerateToken(&domain.TokenClaims{
			UserID:    "user-123",
			Email:     "test@example.com",
			IssuedAt:  time.Now().Add(-48 * time.Hour).Unix(),
			ExpiresAt: time.Now().Add(-24 * time.Hour).Unix(),
		})
		if err != nil {
			t.Fatalf("failed to build token: %v", err)
		}

		_, err = svc.ValidateToken(context.Background(), expired)
		if err != domain.ErrTokenExpired {
			t.Errorf("expected ErrTokenExpired, got %v", err)
		}
	})
}

func TestAuthService_UpdateProfile(t *testing.T) {
	setup := func(t *testing.T) (*mocks.MockUserStore, *authService) {
		userStore, _, svc := newTestAuthService()
		_ = userStore.Save(context.Background(), &domain.User{
			ID:           "user-123",
			Email:        "old@example.com",
			PasswordHash: "oldpassword",
			Name:         "Old Name",
		})
		_ = userStore.Save(context.Background(), &domain.User{
			ID:           "user-456",
			Email:        "taken@example.com",
			PasswordHash: "whatever",
			Name:         "Other",
		})
		return userStore, svc
	}

	t.Run("updates name and email", func(t *testing.T) {
		userStore, svc := setup(t)
		summary, err := svc.UpdateProfile(context.Background(), "user-123", driving.UpdateProfileRequest{
			Name:  "New Name",
			Email: "new@example.com",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Name != "New Name" || summary.Email != "new@example.com" {
			t.Errorf("unexpected summary: %+v", summary)
		}

		// Password hash untouched when no password supplied
		user, _ := userStore.Get(context.Background(), "user-123")
		if user.PasswordHash != "oldpassword" {
			t.Errorf("expected hash to be untouched, got %s", user.PasswordHash)
		}
	})

	t.Run("re-hashes supplied password", func(t *testing.T) {
		userStore, svc := setup(t)
		_, err := svc.UpdateProfile(context.Background(), "user-123", driving.UpdateProfileRequest{
			Name:     "Old Name",
			Email:    "old@example.com",
			Password: "newpassword",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		user, _ := userStore.Get(context.Background(), "user-123")
		if user.PasswordHash != "newpassword" { // mock hasher is identity
			t.Errorf("expected hash to be replaced, got %s", user.PasswordHash)
		}
	})

	t.Run("missing name or email", func(t *testing.T) {
		_, svc := setup(t)
		_, err := svc.UpdateProfile(context.Background(), "user-123", driving.UpdateProfileRequest{Email: "x@x.com"})
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		_, err = svc.UpdateProfile(context.Background(), "user-123", driving.UpdateProfileRequest{Name: "X"})
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("email owned by another account", func(t *testing.T) {
		_, svc := setup(t)
		_, err := svc.UpdateProfile(context.Background(), "user-123", driving.UpdateProfileRequest{
			Name:  "Old Name",
			Email: "taken@example.com",
		})
		if !errors.Is(err, domain.ErrAlreadyExists) {
			t.Errorf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("keeping own email is not a conflict", func(t *testing.T) {
		_, svc := setup(t)
		_, err := svc.UpdateProfile(context.Background(), "user-123", driving.UpdateProfileRequest{
			Name:  "Renamed",
			Email: "old@example.com",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, svc := setup(t)
		_, err := svc.UpdateProfile(context.Background(), "no-such-user", driving.UpdateProfileRequest{
			Name:  "X",
			Email: "x@x.com",
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
