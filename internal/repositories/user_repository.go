package repositories

import (
	"context"
	"time"

	"cars2customer_backend/internal/models"
)

// OTPGrant is a freshly issued code and its expiry.
type OTPGrant struct {
	Code      string
	ExpiresAt time.Time
}

// Registration is what a successful verification writes.
type Registration struct {
	PasswordHash string
	UniqueID     string
}

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUniqueID(ctx context.Context, uniqueID string) (*models.User, error)

	// UpsertPendingOTP stores grant on the unverified record for email,
	// creating a bare record when none exists. It fails with
	// ErrUserAlreadyVerified and leaves the record alone for verified users.
	UpsertPendingOTP(ctx context.Context, email string, grant OTPGrant) error
	// SetOTP overwrites the code of an existing record (ErrUserNotFound otherwise).
	SetOTP(ctx context.Context, email string, grant OTPGrant) error

	// CompleteRegistration consumes code on an unverified record in a single
	// conditional update. Any mismatch yields ErrOTPRejected and no write.
	CompleteRegistration(ctx context.Context, email, code string, now time.Time, reg Registration) (*models.User, error)
	// ResetPassword consumes code and replaces the password hash in a single
	// conditional update. Any mismatch yields ErrOTPRejected and no write.
	ResetPassword(ctx context.Context, email, code string, now time.Time, passwordHash string) error

	// CreateVerified inserts an account verified by an external identity provider.
	CreateVerified(ctx context.Context, user *models.User) error
	// MarkVerified promotes an unverified record, clearing its code.
	MarkVerified(ctx context.Context, email, uniqueID string) (*models.User, error)

	AddFavorite(ctx context.Context, uniqueID string, car models.Car) ([]models.Car, error)
	RemoveFavorite(ctx context.Context, uniqueID, carID string) ([]models.Car, error)

	// ClearExpiredOTPs drops expired leftover codes from verified accounts.
	// Unverified records keep theirs so DeleteStaleUnverified can age them.
	ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error)
	DeleteStaleUnverified(ctx context.Context, expiredBefore time.Time) (int64, error)
}
