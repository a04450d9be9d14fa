package jwt

import (
	"testing"
	"time"
)

func TestGenerateAndVerify(t *testing.T) {
	m := NewManager("secret", 15*time.Minute, 24*time.Hour)

	token, err := m.GenerateToken(7, "alice", "admin")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := m.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "alice" || claims.Role != "admin" {
		t.Errorf("claims = %+v, want user 7 alice admin", claims)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	m := NewManager("secret", -time.Minute, 24*time.Hour)

	token, err := m.GenerateToken(7, "alice", "user")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := m.VerifyToken(token); err != ErrExpiredToken {
		t.Errorf("VerifyToken on expired token = %v, want ErrExpiredToken", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	m := NewManager("secret", 15*time.Minute, 24*time.Hour)
	other := NewManager("other", 15*time.Minute, 24*time.Hour)

	token, err := other.GenerateToken(7, "alice", "user")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := m.VerifyToken(token); err != ErrInvalidToken {
		t.Errorf("VerifyToken with wrong secret = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	m := NewManager("secret", 15*time.Minute, 24*time.Hour)

	if _, err := m.VerifyToken("not.a.token"); err != ErrInvalidToken {
		t.Errorf("VerifyToken on garbage = %v, want ErrInvalidToken", err)
	}
}
