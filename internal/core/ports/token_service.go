package ports

import "time"

// TokenService issues and verifies the two token kinds in the system:
// signed session tokens carried in a cookie, and single-use password-reset
// tokens of which only a hash is ever persisted.
type TokenService interface {
	IssueSession(userID string) (string, error)
	// VerifySession returns the embedded user id, or domain.ErrInvalidToken
	// on a bad signature, malformed payload or elapsed expiry.
	VerifySession(token string) (string, error)

	// IssueReset returns the plaintext token to mail to the user, the hash
	// to persist, and the expiry of the reset window.
	IssueReset() (plaintext, hash string, expire time.Time, err error)
	HashReset(plaintext string) string
	// VerifyReset checks the plaintext against a stored hash in constant
	// time and requires now to be before the stored expiry.
	VerifyReset(plaintext, storedHash string, storedExpire, now time.Time) bool
}
