package dto

import "cars2customer_backend/internal/models"

type RequestOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max-bytes=72"`
	OTP      string `json:"otp" validate:"required"`
}

type RequestResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,max-bytes=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	Token string `json:"token" validate:"required"`
}

// UserAuthResponse is returned by registration and every user login flavour.
type UserAuthResponse struct {
	Message   string       `json:"message"`
	UniqueID  string       `json:"uniqueId"`
	Favorites []models.Car `json:"favorites"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
