package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/muslewski/eventizer-sub001/config"
	"github.com/muslewski/eventizer-sub001/core"
	"github.com/techmaster-vietnam/goerrorkit"
)

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"id", "id"},
		{"userId", "user_id"},
		{"stripeCustomerId", "stripe_customer_id"},
		{"UserID", "user_id"},
		{"FullName", "full_name"},
		{"HTTPServer", "http_server"},
	}

	for _, tt := range tests {
		if got := ToSnakeCase(tt.input); got != tt.expected {
			t.Errorf("ToSnakeCase(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestGenerateID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := GenerateID()
		if err != nil {
			t.Fatalf("GenerateID() error = %v", err)
		}
		if len(id) != IDLength {
			t.Fatalf("GenerateID() = %q, expected %d chars", id, IDLength)
		}
		if seen[id] {
			t.Fatalf("GenerateID() returned duplicate %q", id)
		}
		seen[id] = true
	}
}

func TestToken_RoundTrip(t *testing.T) {
	token, err := GenerateToken("u1", "a@b.co", core.RoleModerator, "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ValidateToken(token, "secret")
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "a@b.co" || claims.Role != "moderator" {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := ValidateToken(token, "other-secret"); err == nil {
		t.Error("token signed with another secret must be rejected")
	}

	expired, _ := GenerateToken("u1", "a@b.co", core.RoleClient, "secret", -time.Minute)
	if _, err := ValidateToken(expired, "secret"); err == nil {
		t.Error("expired token must be rejected")
	}
}

func TestDenialError(t *testing.T) {
	if err := DenialError(core.Allow(), nil); err != nil {
		t.Errorf("DenialError(Allow) = %v, expected nil", err)
	}

	tests := []core.Decision{
		core.Deny(core.ReasonUnauthenticated),
		core.Deny(core.ReasonInsufficientRole),
		core.Deny(core.ReasonProtectedRole),
		core.AllowIf(core.Filter{Field: "userId", Value: "u1"}),
	}
	for _, d := range tests {
		err := DenialError(d, map[string]interface{}{"path": "/api/offers"})
		var appErr *goerrorkit.AppError
		if !errors.As(err, &appErr) {
			t.Errorf("DenialError(%+v) = %v, expected *goerrorkit.AppError", d, err)
		}
	}
}

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,role"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		req     signupRequest
		wantErr bool
	}{
		{"valid", signupRequest{Email: "a@b.co", Password: "password1", Role: "client"}, false},
		{"role omitted", signupRequest{Email: "a@b.co", Password: "password1"}, false},
		{"unknown role", signupRequest{Email: "a@b.co", Password: "password1", Role: "root"}, true},
		{"bad email", signupRequest{Email: "nope", Password: "password1"}, true},
		{"short password", signupRequest{Email: "a@b.co", Password: "short"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var appErr *goerrorkit.AppError
				if !errors.As(err, &appErr) || appErr.Type != goerrorkit.ValidationError {
					t.Errorf("expected ValidationError, got %v", err)
				}
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	cfg := config.PasswordConfig{MinLength: 8, RequireDigit: true}
	tests := []struct {
		password string
		wantErr  bool
	}{
		{"password1", false},
		{"password", true},
		{"pw1", true},
		{"   ", true},
	}
	for _, tt := range tests {
		if err := ValidatePassword(tt.password, cfg); (err != nil) != tt.wantErr {
			t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
		}
	}
}
