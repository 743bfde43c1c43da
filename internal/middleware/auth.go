package middleware

import (
	"strings"

	"cars2customer_backend/internal/logger"
	"cars2customer_backend/internal/models"
	"cars2customer_backend/internal/services"
	"cars2customer_backend/pkg/apperrors"
	"cars2customer_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// AdminAuthMiddleware resolves the calling admin and stores it on the context.
//
// A bearer token from /admin/login is preferred. While allowLegacy is set the
// bare uniqueId is also accepted, looked up in this order: X-Admin-Id header,
// JSON body "uniqueId", form field, query parameter.
func AdminAuthMiddleware(adminService services.AdminService, allowLegacy bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var (
			admin *models.Admin
			err   error
		)
		if token, ok := bearerToken(c); ok {
			admin, err = adminService.AuthorizeToken(ctx, token)
		} else if allowLegacy {
			admin, err = adminService.Authorize(ctx, claimedUniqueID(c))
		} else {
			err = apperrors.ErrMissingAdminID
		}
		if err != nil {
			logger.CtxWarn(ctx, "Admin authorization failed",
				"path", c.Request.URL.Path,
				"ip", c.ClientIP(),
				"error", err.Error(),
			)
			apperrors.HandleError(c, err)
			return
		}

		c.Set(string(contextkeys.AdminContextKey), admin)
		c.Request = c.Request.WithContext(logger.WithAdminID(ctx, admin.UniqueID))
		c.Next()
	}
}

// CurrentAdmin returns the admin stored by AdminAuthMiddleware.
func CurrentAdmin(c *gin.Context) (*models.Admin, bool) {
	v, ok := c.Get(string(contextkeys.AdminContextKey))
	if !ok {
		return nil, false
	}
	admin, ok := v.(*models.Admin)
	return admin, ok
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}

type uniqueIDBody struct {
	UniqueID string `json:"uniqueId"`
}

func claimedUniqueID(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(contextkeys.AdminIDHeader)); id != "" {
		return id
	}

	// ShouldBindBodyWith caches the body so the handler can bind it again.
	if c.Request.ContentLength != 0 && c.ContentType() == binding.MIMEJSON {
		var body uniqueIDBody
		if err := c.ShouldBindBodyWith(&body, binding.JSON); err == nil && body.UniqueID != "" {
			return body.UniqueID
		}
	}

	if c.ContentType() == binding.MIMEMultipartPOSTForm || c.ContentType() == binding.MIMEPOSTForm {
		if id := c.PostForm("uniqueId"); id != "" {
			return id
		}
	}

	return c.Query("uniqueId")
}
