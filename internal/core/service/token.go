package service

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/coursehub/marketplace-api/internal/core/domain"
)

const resetTokenBytes = 20

// TokenService signs session JWTs and generates password-reset tokens.
// Session tokens are never persisted server-side: possession of a token
// with a valid signature and unexpired claim is the whole session.
type TokenService struct {
	secret     []byte
	sessionTTL time.Duration
	resetTTL   time.Duration
}

func NewTokenService(secret string, sessionTTL, resetTTL time.Duration) *TokenService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	if resetTTL <= 0 {
		resetTTL = 15 * time.Minute
	}
	return &TokenService{secret: []byte(secret), sessionTTL: sessionTTL, resetTTL: resetTTL}
}

// IssueSession produces an HS256 JWT embedding the user id and an expiry.
func (s *TokenService) IssueSession(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(s.sessionTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// VerifySession validates signature and expiry and returns the user id.
func (s *TokenService) VerifySession(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrInvalidToken
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", domain.ErrInvalidToken
	}
	return userID, nil
}

// IssueReset generates an unguessable single-use reset token. Only the
// hash and the expiry may be persisted; the plaintext goes to the user.
func (s *TokenService) IssueReset() (string, string, time.Time, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", time.Time{}, err
	}
	plaintext := hex.EncodeToString(b)
	return plaintext, s.HashReset(plaintext), time.Now().Add(s.resetTTL), nil
}

// HashReset returns the hex sha256 digest persisted in place of the token.
func (s *TokenService) HashReset(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// VerifyReset compares in constant time and enforces the expiry window.
func (s *TokenService) VerifyReset(plaintext, storedHash string, storedExpire, now time.Time) bool {
	if storedHash == "" || !now.Before(storedExpire) {
		return false
	}
	return hmac.Equal([]byte(s.HashReset(plaintext)), []byte(storedHash))
}
