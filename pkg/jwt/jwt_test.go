package jwt

import (
	"testing"
	"time"

	"go-healthcare-portal/config"

	"github.com/google/uuid"
)

func newTestService(secret string) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        secret,
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	service := newTestService("unit-test-secret")
	userID := uuid.New()

	token, tokenID, err := service.GenerateAccessToken(userID, "pat@example.com", 3)
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}
	if tokenID == "" {
		t.Fatal("expected a non-empty token id")
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.Email != "pat@example.com" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
	if claims.RoleID != 3 {
		t.Fatalf("expected role id 3, got %d", claims.RoleID)
	}
	if claims.TokenType != AccessToken {
		t.Fatalf("expected access token type, got %q", claims.TokenType)
	}
	if claims.TokenID != tokenID {
		t.Fatalf("expected token id %q, got %q", tokenID, claims.TokenID)
	}
}

func TestRefreshTokenCarriesItsType(t *testing.T) {
	service := newTestService("unit-test-secret")

	token, _, err := service.GenerateRefreshToken(uuid.New(), "dr@example.com", 2)
	if err != nil {
		t.Fatalf("generate refresh token: %v", err)
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.TokenType != RefreshToken {
		t.Fatalf("expected refresh token type, got %q", claims.TokenType)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, _, err := newTestService("secret-a").GenerateAccessToken(uuid.New(), "pat@example.com", 3)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := newTestService("secret-b").ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}
