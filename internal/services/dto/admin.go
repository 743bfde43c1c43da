package dto

import "time"

type AdminCredentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max-bytes=72"`
}

type AdminRegisterResponse struct {
	Message  string `json:"message"`
	UniqueID string `json:"uniqueId"`
}

type AdminLoginResponse struct {
	Message   string    `json:"message"`
	UniqueID  string    `json:"uniqueId"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UpdateAdminRequest edits the admin named in the path. UniqueID is the
// caller and is consumed by the authorization middleware.
type UpdateAdminRequest struct {
	UniqueID string  `json:"uniqueId"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=1,max-bytes=72"`
}
