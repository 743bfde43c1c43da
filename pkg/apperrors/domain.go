package apperrors

import (
	"net/http"
)

// =========================================================================
// Factories
// =========================================================================

// ErrNotFound wraps a repository miss into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrDeliveryFailed reports that a persisted code could not be mailed.
func ErrDeliveryFailed(err error) *AppError {
	return Wrap(err, CodeDeliveryFailed, "email", "Failed to send OTP email", http.StatusInternalServerError)
}

// =========================================================================
// Auth & accounts
// =========================================================================

// ErrInvalidCredentials is returned for an unknown email and for a wrong
// password alike.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidOrExpiredOTP = New(
	CodeInvalidOrExpiredOTP,
	"otp",
	"Invalid or expired OTP",
	http.StatusBadRequest,
)

var ErrAlreadyRegistered = New(
	CodeAlreadyRegistered,
	"auth",
	"User already registered",
	http.StatusBadRequest,
)

var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusBadRequest,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrGoogleLoginDisabled = New(
	CodeFeatureDisabled,
	"auth",
	"Google sign-in is not configured",
	http.StatusNotFound,
)

// =========================================================================
// Admins
// =========================================================================

// ErrMissingAdminID is returned when a protected route gets no identifier at all.
var ErrMissingAdminID = New(
	CodeUnauthorized,
	"admin",
	"Admin identifier is required",
	http.StatusUnauthorized,
)

// ErrUnauthorizedAdmin is returned when the presented identifier is not an admin.
var ErrUnauthorizedAdmin = New(
	CodeForbidden,
	"admin",
	"Unauthorized",
	http.StatusForbidden,
)

var ErrProtectedRecord = New(
	CodeProtectedRecord,
	"admin",
	"Cannot modify top admin",
	http.StatusForbidden,
)

var ErrAdminNotFound = New(
	CodeNotFound,
	"admin",
	"Admin not found",
	http.StatusNotFound,
)

var ErrTopAdminExists = New(
	CodeAlreadyExists,
	"admin",
	"Top admin already exists",
	http.StatusBadRequest,
)

var ErrAdminRegistrationClosed = New(
	CodeFeatureDisabled,
	"admin",
	"Admin registration is closed",
	http.StatusForbidden,
)

// =========================================================================
// Catalog, favorites, bookings
// =========================================================================

var ErrCarNotFound = New(
	CodeNotFound,
	"car",
	"Car not found",
	http.StatusNotFound,
)

var ErrCarAlreadyExists = New(
	CodeAlreadyExists,
	"car",
	"Car with this carId already exists",
	http.StatusBadRequest,
)

var ErrAlreadyFavorited = New(
	CodeAlreadyFavorited,
	"favorites",
	"Car is already in favorites",
	http.StatusBadRequest,
)

var ErrFavoriteNotFound = New(
	CodeFavoriteNotFound,
	"favorites",
	"Car not found in favorites",
	http.StatusNotFound,
)

var ErrBookingNotFound = New(
	CodeNotFound,
	"booking",
	"Booking not found",
	http.StatusNotFound,
)

// =========================================================================
// Uploads
// =========================================================================

var ErrInvalidFileType = New(
	CodeInvalidFileType,
	"validation",
	"Only JPEG, PNG and WebP images are allowed",
	http.StatusBadRequest,
)

var ErrFileTooLarge = New(
	CodeValidationFailed,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusBadRequest,
)
