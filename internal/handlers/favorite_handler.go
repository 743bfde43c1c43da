package handlers

import (
	"net/http"

	"cars2customer_backend/internal/services"
	"cars2customer_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	*BaseHandler
	favoriteService services.FavoriteService
}

func NewFavoriteHandler(base *BaseHandler, favoriteService services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		BaseHandler:     base,
		favoriteService: favoriteService,
	}
}

func (h *FavoriteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	favorites := rg.Group("/favorites")
	{
		favorites.POST("/add", h.Add)
		favorites.POST("/remove", h.Remove)
	}
	rg.GET("/car/favorites/:uniqueId", h.List)
}

// Add godoc
// @Summary  Add a car to the user's favorites
// @Tags     favorites
// @Accept   json
// @Produce  json
// @Param    body  body      dto.FavoriteRequest  true  "User and car"
// @Success  200   {object}  dto.FavoritesResponse
// @Failure  400   {object}  apperrors.ErrorResponse
// @Failure  404   {object}  apperrors.ErrorResponse
// @Router   /favorites/add [post]
func (h *FavoriteHandler) Add(c *gin.Context) {
	var req dto.FavoriteRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	favorites, err := h.favoriteService.Add(c.Request.Context(), req.UniqueID, req.CarID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FavoritesResponse{Message: "Car added to favorites", Favorites: favorites})
}

// Remove godoc
// @Summary  Remove a car from the user's favorites
// @Tags     favorites
// @Accept   json
// @Produce  json
// @Param    body  body      dto.FavoriteRequest  true  "User and car"
// @Success  200   {object}  dto.FavoritesResponse
// @Failure  404   {object}  apperrors.ErrorResponse
// @Router   /favorites/remove [post]
func (h *FavoriteHandler) Remove(c *gin.Context) {
	var req dto.FavoriteRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	favorites, err := h.favoriteService.Remove(c.Request.Context(), req.UniqueID, req.CarID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FavoritesResponse{Message: "Car removed from favorites", Favorites: favorites})
}

// List godoc
// @Summary  List the user's favorites
// @Tags     favorites
// @Produce  json
// @Param    uniqueId  path      string  true  "User uniqueId"
// @Success  200       {object}  dto.FavoritesResponse
// @Failure  404       {object}  apperrors.ErrorResponse
// @Router   /car/favorites/{uniqueId} [get]
func (h *FavoriteHandler) List(c *gin.Context) {
	favorites, err := h.favoriteService.List(c.Request.Context(), c.Param("uniqueId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FavoritesResponse{Favorites: favorites})
}
