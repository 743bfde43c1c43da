package services

import (
	"context"
	"errors"

	"cars2customer_backend/internal/logger"
	"cars2customer_backend/internal/models"
	"cars2customer_backend/internal/repositories"
	"cars2customer_backend/internal/services/dto"
	"cars2customer_backend/pkg/apperrors"
)

type BookingService interface {
	Create(ctx context.Context, req *dto.CreateBookingRequest) (*models.CarBooking, error)
	List(ctx context.Context) ([]models.CarBooking, error)
	Get(ctx context.Context, id string) (*models.CarBooking, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (*models.CarBooking, error)
	Delete(ctx context.Context, id string) error
}

type BookingServiceImpl struct {
	bookingRepo repositories.BookingRepository
	now         Clock
}

func NewBookingService(bookingRepo repositories.BookingRepository) BookingService {
	return &BookingServiceImpl{bookingRepo: bookingRepo, now: defaultClock(nil)}
}

func bookingError(err error) error {
	if errors.Is(err, repositories.ErrBookingNotFound) {
		return apperrors.ErrBookingNotFound
	}
	return apperrors.InternalError(err)
}

func (s *BookingServiceImpl) Create(ctx context.Context, req *dto.CreateBookingRequest) (*models.CarBooking, error) {
	status := models.BookingStatus(req.Status)
	if status == "" {
		status = models.BookingStatusPending
	}

	now := s.now()
	booking := &models.CarBooking{
		Username:    req.Username,
		PhoneNumber: req.PhoneNumber,
		ContactID:   req.ContactID,
		CarName:     req.CarName,
		Status:      status,
		CurrentTime: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Booking created", "booking_id", booking.ID, "car", booking.CarName)
	return booking, nil
}

func (s *BookingServiceImpl) List(ctx context.Context) ([]models.CarBooking, error) {
	bookings, err := s.bookingRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return bookings, nil
}

func (s *BookingServiceImpl) Get(ctx context.Context, id string) (*models.CarBooking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, bookingError(err)
	}
	return booking, nil
}

func (s *BookingServiceImpl) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (*models.CarBooking, error) {
	if !status.Valid() {
		return nil, apperrors.ErrInvalidOperation("booking", "Unknown booking status")
	}
	booking, err := s.bookingRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, bookingError(err)
	}
	logger.CtxInfo(ctx, "Booking status changed", "booking_id", id, "status", status)
	return booking, nil
}

func (s *BookingServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		return bookingError(err)
	}
	return nil
}
