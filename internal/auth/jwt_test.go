package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestJWTRoundTrip(t *testing.T) {
	userID := uuid.New()
	unitID := uuid.New()

	token, err := GenerateJWT("secret", userID, "Ana Torres", "admin", &unitID, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT("secret", token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.Name != "Ana Torres" {
		t.Errorf("Name = %q, want %q", claims.Name, "Ana Torres")
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q, want %q", claims.Role, "admin")
	}
	if claims.UnitID == nil || *claims.UnitID != unitID {
		t.Errorf("UnitID = %v, want %v", claims.UnitID, unitID)
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("secret-a", uuid.New(), "Ana", "operator", nil, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ParseJWT("secret-b", token); err == nil {
		t.Error("expected error parsing token with wrong secret")
	}
}

func TestParseJWTGarbage(t *testing.T) {
	if _, err := ParseJWT("secret", "not-a-token"); err == nil {
		t.Error("expected error parsing garbage token")
	}
}
