package repositories

import "errors"

var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminAlreadyExists = errors.New("admin already exists")
	ErrTopAdminExists     = errors.New("top admin already exists")

	ErrUserNotFound        = errors.New("user not found")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrUserAlreadyVerified = errors.New("user already verified")
	// ErrOTPRejected means the conditional update matched no record: the code
	// was absent, different or expired, or the account state did not allow it.
	ErrOTPRejected = errors.New("otp rejected")

	ErrCarNotFound      = errors.New("car not found")
	ErrCarAlreadyExists = errors.New("car already exists")

	ErrAlreadyFavorited = errors.New("car already in favorites")
	ErrFavoriteNotFound = errors.New("car not in favorites")

	ErrBookingNotFound = errors.New("booking not found")
)
