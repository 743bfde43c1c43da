package postgres

import (
	"context"
	"fmt"

	"cars2customer_backend/database"
	"cars2customer_backend/internal/models"
	"cars2customer_backend/internal/repositories"

	"gorm.io/gorm"
)

type CarRepository struct {
	db *gorm.DB
}

func NewCarRepository(db *gorm.DB) *CarRepository {
	return &CarRepository{db: db}
}

func (r *CarRepository) Create(ctx context.Context, car *models.Car) error {
	if err := r.db.WithContext(ctx).Create(database.NewCarRow(car)).Error; err != nil {
		if isDuplicate(err) {
			return repositories.ErrCarAlreadyExists
		}
		return fmt.Errorf("failed to insert car: %w", err)
	}
	return nil
}

func (r *CarRepository) findRow(ctx context.Context, db *gorm.DB, carID string) (*database.CarRow, error) {
	var row database.CarRow
	if err := db.WithContext(ctx).Where("car_id = ?", carID).First(&row).Error; err != nil {
		if isNotFound(err) {
			return nil, repositories.ErrCarNotFound
		}
		return nil, fmt.Errorf("failed to find car: %w", err)
	}
	return &row, nil
}

func (r *CarRepository) FindByCarID(ctx context.Context, carID string) (*models.Car, error) {
	row, err := r.findRow(ctx, r.db, carID)
	if err != nil {
		return nil, err
	}
	return row.ToModel(), nil
}

func (r *CarRepository) FindAll(ctx context.Context) ([]models.Car, error) {
	var rows []database.CarRow
	if err := r.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}
	cars := make([]models.Car, 0, len(rows))
	for i := range rows {
		cars = append(cars, *rows[i].ToModel())
	}
	return cars, nil
}

// rewrite loads the row under a lock, lets fn edit the model and saves it.
func (r *CarRepository) rewrite(ctx context.Context, carID string, fn func(*models.Car)) (*models.Car, error) {
	var out *models.Car
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := r.findRow(ctx, tx.Clauses(forUpdate), carID)
		if err != nil {
			return err
		}
		car := row.ToModel()
		fn(car)
		car.CarID = carID

		next := database.NewCarRow(car)
		next.ID, next.CreatedAt = row.ID, row.CreatedAt
		if err := tx.Save(next).Error; err != nil {
			return fmt.Errorf("failed to update car: %w", err)
		}
		out = car
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CarRepository) Update(ctx context.Context, carID string, upd repositories.CarUpdate) (*models.Car, error) {
	return r.rewrite(ctx, carID, upd.Apply)
}

func (r *CarRepository) AppendImage(ctx context.Context, carID, url string) (*models.Car, error) {
	return r.rewrite(ctx, carID, func(car *models.Car) {
		car.Images = append(car.Images, url)
	})
}

func (r *CarRepository) Delete(ctx context.Context, carID string) error {
	res := r.db.WithContext(ctx).Where("car_id = ?", carID).Delete(&database.CarRow{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete car: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repositories.ErrCarNotFound
	}
	return nil
}
