package handlers

import (
	"net/http"

	"cars2customer_backend/internal/services"
	"cars2customer_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	adminService services.AdminService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  base,
		adminService: adminService,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup, requireAdmin gin.HandlerFunc) {
	admin := rg.Group("/admin")
	{
		admin.POST("/register", h.Register)
		admin.POST("/register/top", h.RegisterTop)
		admin.POST("/login", h.Login)

		admin.GET("/all", requireAdmin, h.List)
		admin.PUT("/:id", requireAdmin, h.Update)
		admin.DELETE("/:id", requireAdmin, h.Delete)
	}
}

// Register godoc
// @Summary  Register an admin
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    body  body      dto.AdminCredentials  true  "Credentials"
// @Success  201   {object}  dto.AdminRegisterResponse
// @Failure  400   {object}  apperrors.ErrorResponse
// @Router   /admin/register [post]
func (h *AdminHandler) Register(c *gin.Context) {
	var req dto.AdminCredentials
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	admin, err := h.adminService.Register(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AdminRegisterResponse{
		Message:  "Admin registered successfully!",
		UniqueID: admin.UniqueID,
	})
}

// RegisterTop godoc
// @Summary  Register the top admin
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    body  body      dto.AdminCredentials  true  "Credentials"
// @Success  201   {object}  dto.AdminRegisterResponse
// @Failure  400   {object}  apperrors.ErrorResponse
// @Router   /admin/register/top [post]
func (h *AdminHandler) RegisterTop(c *gin.Context) {
	var req dto.AdminCredentials
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	admin, err := h.adminService.RegisterTop(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AdminRegisterResponse{
		Message:  "Top admin registered successfully!",
		UniqueID: admin.UniqueID,
	})
}

// Login godoc
// @Summary  Admin login
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    body  body      dto.AdminCredentials  true  "Credentials"
// @Success  200   {object}  dto.AdminLoginResponse
// @Failure  401   {object}  apperrors.ErrorResponse
// @Router   /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.AdminCredentials
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.adminService.Login(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary   List admins other than the top admin
// @Tags      admin
// @Produce   json
// @Security  BearerAuth
// @Success   200  {array}   models.Admin
// @Failure   403  {object}  apperrors.ErrorResponse
// @Router    /admin/all [get]
func (h *AdminHandler) List(c *gin.Context) {
	admins, err := h.adminService.List(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, admins)
}

// Update godoc
// @Summary   Edit an admin
// @Tags      admin
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path      string                  true  "Target admin uniqueId"
// @Param     body  body      dto.UpdateAdminRequest  true  "Changes"
// @Success   200   {object}  models.Admin
// @Failure   403   {object}  apperrors.ErrorResponse
// @Failure   404   {object}  apperrors.ErrorResponse
// @Router    /admin/{id} [put]
func (h *AdminHandler) Update(c *gin.Context) {
	targetID, ok := h.PathParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAdminRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	admin, err := h.adminService.Update(c.Request.Context(), targetID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Admin updated successfully!",
		"admin":   admin,
	})
}

// Delete godoc
// @Summary   Delete an admin
// @Tags      admin
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      string  true  "Target admin uniqueId"
// @Success   200  {object}  dto.MessageResponse
// @Failure   403  {object}  apperrors.ErrorResponse
// @Failure   404  {object}  apperrors.ErrorResponse
// @Router    /admin/{id} [delete]
func (h *AdminHandler) Delete(c *gin.Context) {
	targetID, ok := h.PathParam(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.Delete(c.Request.Context(), targetID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Admin deleted successfully!"})
}
