package dto

import "cars2customer_backend/internal/models"

type FavoriteRequest struct {
	UniqueID string `json:"uniqueId" validate:"required"`
	CarID    string `json:"carId" validate:"required"`
}

type FavoritesResponse struct {
	Message   string       `json:"message,omitempty"`
	Favorites []models.Car `json:"favorites"`
}
