package repositories

import (
	"context"

	"cars2customer_backend/internal/models"
)

// CarUpdate is a partial edit of a listing. Nil fields are left as they are;
// the carId itself is immutable.
type CarUpdate struct {
	Brand                   *string
	Model                   *string
	Year                    *string
	Price                   *string
	Paragraph               *string
	KmDriven                *string
	FuelType                *string
	Transmission            *string
	Condition               *string
	Location                *string
	Images                  *[]string
	Features                *[]models.CarFeature
	TechnicalSpecifications *[]models.CarSpecEntry
}

// Apply writes the set fields of u onto car.
func (u CarUpdate) Apply(car *models.Car) {
	setString := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setString(&car.Brand, u.Brand)
	setString(&car.Model, u.Model)
	setString(&car.Year, u.Year)
	setString(&car.Price, u.Price)
	setString(&car.Paragraph, u.Paragraph)
	setString(&car.KmDriven, u.KmDriven)
	setString(&car.FuelType, u.FuelType)
	setString(&car.Transmission, u.Transmission)
	setString(&car.Condition, u.Condition)
	setString(&car.Location, u.Location)
	if u.Images != nil {
		car.Images = append([]string(nil), (*u.Images)...)
	}
	if u.Features != nil {
		car.Features = append([]models.CarFeature(nil), (*u.Features)...)
	}
	if u.TechnicalSpecifications != nil {
		car.TechnicalSpecifications = append([]models.CarSpecEntry(nil), (*u.TechnicalSpecifications)...)
	}
}

type CarRepository interface {
	Create(ctx context.Context, car *models.Car) error
	FindByCarID(ctx context.Context, carID string) (*models.Car, error)
	FindAll(ctx context.Context) ([]models.Car, error)
	Update(ctx context.Context, carID string, upd CarUpdate) (*models.Car, error)
	Delete(ctx context.Context, carID string) error
	AppendImage(ctx context.Context, carID, url string) (*models.Car, error)
}
