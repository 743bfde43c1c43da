package apperrors

// ErrorCode is the machine-readable code sent to clients.
type ErrorCode string

// Generic codes
const (
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"
	CodeFeatureDisabled  ErrorCode = "FEATURE_DISABLED"

	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
)

// Account and OTP codes
const (
	CodeInvalidOrExpiredOTP ErrorCode = "INVALID_OR_EXPIRED_OTP"
	CodeAlreadyRegistered   ErrorCode = "ALREADY_REGISTERED"
	CodeProtectedRecord     ErrorCode = "PROTECTED_RECORD"
	CodeDeliveryFailed      ErrorCode = "DELIVERY_FAILED"
)

// Catalog codes
const (
	CodeAlreadyFavorited ErrorCode = "ALREADY_FAVORITED"
	CodeFavoriteNotFound ErrorCode = "FAVORITE_NOT_FOUND"
	CodeInvalidFileType  ErrorCode = "INVALID_FILE_TYPE"
)
