package ports

import "context"

// Mailer delivers transactional email, currently only the password-reset
// message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// ResetLimiter throttles password-reset requests per email address so a
// single account cannot be flooded with reset mail.
type ResetLimiter interface {
	// Allow reports whether a reset may be issued for the address now.
	Allow(ctx context.Context, email string) (bool, error)
}
