package domain

import "errors"

var (
	ErrUserExists           = errors.New("user already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrCourseNotFound       = errors.New("course not found")
	ErrLectureNotFound      = errors.New("lecture not found")
	ErrInvalidCredentials   = errors.New("incorrect email or password")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrPasswordIncorrect    = errors.New("password is incorrect")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrPlaylistDuplicate    = errors.New("course already in playlist")
	ErrResetTokenInvalid    = errors.New("reset token is invalid or has expired")
	ErrTooManyResetRequests = errors.New("reset already requested, try again later")
)
