package apperrors

import (
	"log/slog"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

type GinErrorHandler struct {
	Debug bool
}

var debugMode atomic.Bool

// SetDebug controls whether causes of unexpected errors reach the client.
func SetDebug(debug bool) {
	debugMode.Store(debug)
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}
	if appErr.HTTPCode >= 500 {
		slog.ErrorContext(c.Request.Context(), "server error",
			"code", appErr.Code,
			"error", appErr.Unwrap(),
			"path", c.Request.URL.Path,
		)
		if h.Debug && appErr.Err != nil {
			appErr = appErr.WithDetails(appErr.Err.Error())
		}
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: debugMode.Load()}
	handler.HandleGinError(c, err)
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
