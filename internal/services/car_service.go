package services

import (
	"bytes"
	"context"
	"errors"
	"io"

	"cars2customer_backend/internal/imageprocessor"
	"cars2customer_backend/internal/logger"
	"cars2customer_backend/internal/models"
	"cars2customer_backend/internal/repositories"
	"cars2customer_backend/internal/storage"
	"cars2customer_backend/pkg/apperrors"
)

type CarService interface {
	ListByBrand(ctx context.Context) (map[string][]models.Car, error)
	Get(ctx context.Context, carID string) (*models.Car, error)
	Create(ctx context.Context, car *models.Car) (*models.Car, error)
	Update(ctx context.Context, carID string, upd repositories.CarUpdate) (*models.Car, error)
	Delete(ctx context.Context, carID string) error
	// UploadImage scales the picture down, stores it and appends its URL.
	UploadImage(ctx context.Context, carID string, file io.Reader) (*models.Car, error)
}

type CarServiceImpl struct {
	carRepo   repositories.CarRepository
	storage   storage.Storage
	processor *imageprocessor.Processor
	maxSize   int64
}

func NewCarService(
	carRepo repositories.CarRepository,
	storage storage.Storage,
	processor *imageprocessor.Processor,
	maxSize int64,
) CarService {
	if maxSize <= 0 {
		maxSize = 10 << 20
	}
	return &CarServiceImpl{
		carRepo:   carRepo,
		storage:   storage,
		processor: processor,
		maxSize:   maxSize,
	}
}

func carError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrCarNotFound):
		return apperrors.ErrCarNotFound
	case errors.Is(err, repositories.ErrCarAlreadyExists):
		return apperrors.ErrCarAlreadyExists
	default:
		return apperrors.InternalError(err)
	}
}

func (s *CarServiceImpl) ListByBrand(ctx context.Context) (map[string][]models.Car, error) {
	cars, err := s.carRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return models.GroupByBrand(cars), nil
}

func (s *CarServiceImpl) Get(ctx context.Context, carID string) (*models.Car, error) {
	car, err := s.carRepo.FindByCarID(ctx, carID)
	if err != nil {
		return nil, carError(err)
	}
	return car, nil
}

func (s *CarServiceImpl) Create(ctx context.Context, car *models.Car) (*models.Car, error) {
	if err := s.carRepo.Create(ctx, car); err != nil {
		return nil, carError(err)
	}
	logger.CtxInfo(ctx, "Car added", "car_id", car.CarID, "admin_id", logger.GetAdminID(ctx))
	return car, nil
}

func (s *CarServiceImpl) Update(ctx context.Context, carID string, upd repositories.CarUpdate) (*models.Car, error) {
	car, err := s.carRepo.Update(ctx, carID, upd)
	if err != nil {
		return nil, carError(err)
	}
	logger.CtxInfo(ctx, "Car updated", "car_id", carID, "admin_id", logger.GetAdminID(ctx))
	return car, nil
}

func (s *CarServiceImpl) Delete(ctx context.Context, carID string) error {
	if err := s.carRepo.Delete(ctx, carID); err != nil {
		return carError(err)
	}
	logger.CtxInfo(ctx, "Car deleted", "car_id", carID, "admin_id", logger.GetAdminID(ctx))
	return nil
}

func (s *CarServiceImpl) UploadImage(ctx context.Context, carID string, file io.Reader) (*models.Car, error) {
	if _, err := s.carRepo.FindByCarID(ctx, carID); err != nil {
		return nil, carError(err)
	}

	// one byte over the limit is enough to reject
	data, err := io.ReadAll(io.LimitReader(file, s.maxSize+1))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if int64(len(data)) > s.maxSize {
		return nil, apperrors.ErrFileTooLarge
	}

	img, err := s.processor.FitWithin(bytes.NewReader(data), imageprocessor.MaxListingEdge)
	if err != nil {
		if errors.Is(err, imageprocessor.ErrUnsupportedFormat) {
			return nil, apperrors.ErrInvalidFileType
		}
		return nil, apperrors.ErrInvalidFileType.WithError(err)
	}

	path := storage.CarImageKey(carID, img.Ext)
	if err := s.storage.Save(ctx, path, bytes.NewReader(img.Data), img.ContentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	car, err := s.carRepo.AppendImage(ctx, carID, s.storage.GetURL(path))
	if err != nil {
		if delErr := s.storage.Delete(ctx, path); delErr != nil {
			logger.CtxWithError(ctx, "Failed to remove orphaned image", delErr, "path", path)
		}
		return nil, carError(err)
	}

	logger.CtxInfo(ctx, "Car image uploaded", "car_id", carID, "path", path, "width", img.Width, "height", img.Height)
	return car, nil
}
