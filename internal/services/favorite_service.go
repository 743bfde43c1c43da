package services

import (
	"context"
	"errors"

	"cars2customer_backend/internal/models"
	"cars2customer_backend/internal/repositories"
	"cars2customer_backend/pkg/apperrors"
)

type FavoriteService interface {
	Add(ctx context.Context, uniqueID, carID string) ([]models.Car, error)
	Remove(ctx context.Context, uniqueID, carID string) ([]models.Car, error)
	List(ctx context.Context, uniqueID string) ([]models.Car, error)
}

type FavoriteServiceImpl struct {
	userRepo repositories.UserRepository
	carRepo  repositories.CarRepository
}

func NewFavoriteService(userRepo repositories.UserRepository, carRepo repositories.CarRepository) FavoriteService {
	return &FavoriteServiceImpl{userRepo: userRepo, carRepo: carRepo}
}

func favoriteError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.ErrUserNotFound
	case errors.Is(err, repositories.ErrCarNotFound):
		return apperrors.ErrCarNotFound
	case errors.Is(err, repositories.ErrAlreadyFavorited):
		return apperrors.ErrAlreadyFavorited
	case errors.Is(err, repositories.ErrFavoriteNotFound):
		return apperrors.ErrFavoriteNotFound
	default:
		return apperrors.InternalError(err)
	}
}

// Add stores a snapshot of the current catalog entry.
func (s *FavoriteServiceImpl) Add(ctx context.Context, uniqueID, carID string) ([]models.Car, error) {
	if _, err := s.userRepo.FindByUniqueID(ctx, uniqueID); err != nil {
		return nil, favoriteError(err)
	}
	car, err := s.carRepo.FindByCarID(ctx, carID)
	if err != nil {
		return nil, favoriteError(err)
	}

	favorites, err := s.userRepo.AddFavorite(ctx, uniqueID, *car)
	if err != nil {
		return nil, favoriteError(err)
	}
	return favorites, nil
}

func (s *FavoriteServiceImpl) Remove(ctx context.Context, uniqueID, carID string) ([]models.Car, error) {
	favorites, err := s.userRepo.RemoveFavorite(ctx, uniqueID, carID)
	if err != nil {
		return nil, favoriteError(err)
	}
	return favorites, nil
}

func (s *FavoriteServiceImpl) List(ctx context.Context, uniqueID string) ([]models.Car, error) {
	user, err := s.userRepo.FindByUniqueID(ctx, uniqueID)
	if err != nil {
		return nil, favoriteError(err)
	}
	return user.Favorites, nil
}
