package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/coursehub/marketplace-api/internal/core/domain"
)

func TestTokenService_SessionRoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, time.Minute)

	token, err := svc.IssueSession("64f000000000000000000001")
	if err != nil {
		t.Fatalf("IssueSession returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	userID, err := svc.VerifySession(token)
	if err != nil {
		t.Fatalf("VerifySession returned error: %v", err)
	}
	if userID != "64f000000000000000000001" {
		t.Fatalf("unexpected user id: %s", userID)
	}
}

func TestTokenService_SessionWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour, time.Minute)
	verifier := NewTokenService("secret-b", time.Hour, time.Minute)

	token, err := issuer.IssueSession("64f000000000000000000001")
	if err != nil {
		t.Fatalf("IssueSession returned error: %v", err)
	}

	if _, err := verifier.VerifySession(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_SessionExpired(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, time.Minute)

	claims := jwt.MapClaims{
		"user_id": "64f000000000000000000001",
		"exp":     time.Now().Add(-time.Minute).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.VerifySession(expired); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenService_SessionMalformed(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, time.Minute)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.VerifySession(token); err != domain.ErrInvalidToken {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", token, err)
		}
	}
}

func TestTokenService_SessionMissingUserID(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, time.Minute)

	claims := jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.VerifySession(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for missing user id, got %v", err)
	}
}

func TestTokenService_ResetIssue(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, 15*time.Minute)

	plaintext, hash, expire, err := svc.IssueReset()
	if err != nil {
		t.Fatalf("IssueReset returned error: %v", err)
	}
	if plaintext == "" || hash == "" {
		t.Fatalf("expected token and hash, got %q / %q", plaintext, hash)
	}
	if plaintext == hash {
		t.Fatalf("hash must differ from plaintext")
	}
	if hash != svc.HashReset(plaintext) {
		t.Fatalf("hash does not match HashReset of the plaintext")
	}
	if !expire.After(time.Now()) {
		t.Fatalf("expiry must be in the future, got %v", expire)
	}
}

func TestTokenService_ResetUnique(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, time.Minute)

	a, _, _, err := svc.IssueReset()
	if err != nil {
		t.Fatalf("IssueReset returned error: %v", err)
	}
	b, _, _, err := svc.IssueReset()
	if err != nil {
		t.Fatalf("IssueReset returned error: %v", err)
	}
	if a == b {
		t.Fatalf("two issued tokens must not be equal")
	}
}

func TestTokenService_VerifyReset(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, time.Minute)
	now := time.Now()

	plaintext, hash, expire, err := svc.IssueReset()
	if err != nil {
		t.Fatalf("IssueReset returned error: %v", err)
	}

	if !svc.VerifyReset(plaintext, hash, expire, now) {
		t.Fatalf("valid token rejected")
	}
	if svc.VerifyReset("wrong", hash, expire, now) {
		t.Fatalf("wrong token accepted")
	}
	if svc.VerifyReset(plaintext, hash, expire, expire.Add(time.Second)) {
		t.Fatalf("token accepted after expiry")
	}
	if svc.VerifyReset(plaintext, "", expire, now) {
		t.Fatalf("token accepted against empty stored hash")
	}
}
