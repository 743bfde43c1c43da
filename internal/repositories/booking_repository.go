package repositories

import (
	"context"

	"cars2customer_backend/internal/models"
)

// BookingRepository stores purchase requests. Create assigns the ID.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.CarBooking) error
	FindAll(ctx context.Context) ([]models.CarBooking, error)
	FindByID(ctx context.Context, id string) (*models.CarBooking, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (*models.CarBooking, error)
	Delete(ctx context.Context, id string) error
}
