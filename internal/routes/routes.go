package routes

import (
	"cars2customer_backend/internal/handlers"
	"cars2customer_backend/internal/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes mounts every HTTP route at the root, where the storefront
// and the admin panel expect them. requireAdmin guards admin-only routes.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	requireAdmin gin.HandlerFunc,
) {
	root := ginRouter.Group("")
	{
		appHandlers.HealthHandler.RegisterRoutes(root)
		appHandlers.AuthHandler.RegisterRoutes(root)
		appHandlers.AdminHandler.RegisterRoutes(root, requireAdmin)
		appHandlers.CarHandler.RegisterRoutes(root, requireAdmin)
		appHandlers.FavoriteHandler.RegisterRoutes(root)
		appHandlers.BookingHandler.RegisterRoutes(root, requireAdmin)
		appHandlers.FileHandler.RegisterRoutes(root)
	}

	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	logger.Info("HTTP routes registered", "count", len(ginRouter.Routes()))
}
