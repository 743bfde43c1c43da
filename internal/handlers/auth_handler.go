package handlers

import (
	"net/http"

	"cars2customer_backend/internal/services"
	"cars2customer_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves end-user registration, password reset and login.
type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	user := rg.Group("/user")
	{
		user.POST("/request-otp", h.RequestOTP)
		user.POST("/register", h.Register)
		user.POST("/request-reset", h.RequestPasswordReset)
		user.POST("/reset-password", h.ResetPassword)
		user.POST("/login", h.Login)
	}

	rg.POST("/auth/google/callback", h.GoogleLogin)
}

// RequestOTP godoc
// @Summary  Send a registration code
// @Tags     user
// @Accept   json
// @Produce  json
// @Param    body  body      dto.RequestOTPRequest  true  "Email"
// @Success  200   {object}  dto.MessageResponse
// @Failure  400   {object}  apperrors.ErrorResponse
// @Failure  500   {object}  apperrors.ErrorResponse
// @Router   /user/request-otp [post]
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req dto.RequestOTPRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.RequestOTP(c.Request.Context(), req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "OTP sent to email"})
}

// Register godoc
// @Summary  Verify the code and create the account
// @Tags     user
// @Accept   json
// @Produce  json
// @Param    body  body      dto.RegisterRequest  true  "Email, password and code"
// @Success  201   {object}  dto.UserAuthResponse
// @Failure  400   {object}  apperrors.ErrorResponse
// @Failure  404   {object}  apperrors.ErrorResponse
// @Router   /user/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// RequestPasswordReset godoc
// @Summary  Send a password reset code
// @Tags     user
// @Accept   json
// @Produce  json
// @Param    body  body      dto.RequestResetRequest  true  "Email"
// @Success  200   {object}  dto.MessageResponse
// @Failure  404   {object}  apperrors.ErrorResponse
// @Router   /user/request-reset [post]
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.RequestResetRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "OTP sent to email for password reset"})
}

// ResetPassword godoc
// @Summary  Set a new password with a reset code
// @Tags     user
// @Accept   json
// @Produce  json
// @Param    body  body      dto.ResetPasswordRequest  true  "Email, code and new password"
// @Success  200   {object}  dto.MessageResponse
// @Failure  400   {object}  apperrors.ErrorResponse
// @Router   /user/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password reset successfully"})
}

// Login godoc
// @Summary  User login
// @Tags     user
// @Accept   json
// @Produce  json
// @Param    body  body      dto.LoginRequest  true  "Credentials"
// @Success  200   {object}  dto.UserAuthResponse
// @Failure  401   {object}  apperrors.ErrorResponse
// @Router   /user/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GoogleLogin godoc
// @Summary  Sign in with a Google ID token
// @Tags     user
// @Accept   json
// @Produce  json
// @Param    body  body      dto.GoogleLoginRequest  true  "ID token"
// @Success  200   {object}  dto.UserAuthResponse
// @Failure  401   {object}  apperrors.ErrorResponse
// @Router   /auth/google/callback [post]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.GoogleLogin(c.Request.Context(), req.Token)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
