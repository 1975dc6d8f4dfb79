package util

import (
	"testing"
	"time"

	"beyondextra_backend/internal/model"
)

func testUser() *model.User {
	return &model.User{
		UUIDBase: model.UUIDBase{ID: "user-1"},
		Email:    "alex@example.com",
		Role:     model.Student,
	}
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(testUser(), "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "alex@example.com" || claims.Role != model.Student {
		t.Fatalf("claims do not round-trip: %+v", claims)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateJWT(testUser(), "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := ParseJWT(token, "other-secret"); err == nil {
		t.Fatal("a token signed with another secret must not parse")
	}
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	token, err := GenerateJWT(testUser(), "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := ParseJWT(token, "test-secret"); err == nil {
		t.Fatal("an expired token must not parse")
	}
}
