package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-unit-tests-only")

	userID := uuid.New()
	token, err := GenerateToken(userID, "alice", "alice@example.com", "manager")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("user id: got %s, want %s", claims.UserID, userID)
	}
	if claims.Username != "alice" || claims.Role != "manager" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-unit-tests-only")

	if _, err := ValidateToken("not-a-token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestResetTokenPurposeIsEnforced(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-unit-tests-only")

	userID := uuid.New()
	reset, err := GenerateResetToken(userID, 10*time.Minute)
	if err != nil {
		t.Fatalf("GenerateResetToken: %v", err)
	}

	got, err := ValidateResetToken(reset)
	if err != nil {
		t.Fatalf("ValidateResetToken: %v", err)
	}
	if got != userID {
		t.Errorf("user id: got %s, want %s", got, userID)
	}

	// A plain session token must not pass as a reset token.
	session, err := GenerateToken(userID, "alice", "alice@example.com", "user")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ValidateResetToken(session); err == nil {
		t.Error("session token accepted as reset token")
	}

	// And the reverse: a reset token must not pass as a session token.
	if _, err := ValidateToken(reset); err == nil {
		t.Error("reset token accepted as session token")
	}
}
