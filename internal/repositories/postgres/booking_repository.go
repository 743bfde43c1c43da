package postgres

import (
	"context"
	"fmt"

	"cars2customer_backend/database"
	"cars2customer_backend/internal/models"
	"cars2customer_backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, booking *models.CarBooking) error {
	if booking.Status == "" {
		booking.Status = models.BookingStatusPending
	}
	row := &database.BookingRow{
		ID:          uuid.NewString(),
		Username:    booking.Username,
		PhoneNumber: booking.PhoneNumber,
		ContactID:   booking.ContactID,
		CarName:     booking.CarName,
		Status:      string(booking.Status),
		CurrentTime: booking.CurrentTime,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	*booking = *row.ToModel()
	return nil
}

func (r *BookingRepository) FindAll(ctx context.Context) ([]models.CarBooking, error) {
	var rows []database.BookingRow
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	bookings := make([]models.CarBooking, 0, len(rows))
	for i := range rows {
		bookings = append(bookings, *rows[i].ToModel())
	}
	return bookings, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*models.CarBooking, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repositories.ErrBookingNotFound
	}
	var row database.BookingRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if isNotFound(err) {
			return nil, repositories.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return row.ToModel(), nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (*models.CarBooking, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repositories.ErrBookingNotFound
	}
	res := r.db.WithContext(ctx).Model(&database.BookingRow{}).
		Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, repositories.ErrBookingNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return repositories.ErrBookingNotFound
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&database.BookingRow{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repositories.ErrBookingNotFound
	}
	return nil
}
