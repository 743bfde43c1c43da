package database

import (
	"time"

	"cars2customer_backend/internal/models"

	"gorm.io/datatypes"
)

type AdminRow struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	UniqueID     string `gorm:"uniqueIndex;not null"`
	// the partial unique index admits a single true value
	IsTopAdmin bool `gorm:"not null;default:false;uniqueIndex:idx_admins_single_top,where:is_top_admin"`
	CreatedAt  time.Time
}

func (AdminRow) TableName() string { return "admins" }

func (r *AdminRow) ToModel() *models.Admin {
	return &models.Admin{
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		UniqueID:     r.UniqueID,
		IsTopAdmin:   r.IsTopAdmin,
		CreatedAt:    r.CreatedAt,
	}
}

// UserRow stores favorites as a JSONB array of car snapshots.
type UserRow struct {
	ID           uint    `gorm:"primaryKey"`
	Email        string  `gorm:"uniqueIndex;not null"`
	PasswordHash *string
	UniqueID     *string `gorm:"uniqueIndex"`
	OTP          *string
	OTPExpiry    *time.Time                       `gorm:"index"`
	IsVerified   bool                             `gorm:"not null;default:false"`
	Favorites    datatypes.JSONType[[]models.Car] `gorm:"type:jsonb;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserRow) TableName() string { return "users" }

func (r *UserRow) ToModel() *models.User {
	u := &models.User{
		Email:      r.Email,
		OTP:        r.OTP,
		OTPExpiry:  r.OTPExpiry,
		IsVerified: r.IsVerified,
		Favorites:  r.Favorites.Data(),
	}
	if r.PasswordHash != nil {
		u.PasswordHash = *r.PasswordHash
	}
	if r.UniqueID != nil {
		u.UniqueID = *r.UniqueID
	}
	if u.Favorites == nil {
		u.Favorites = []models.Car{}
	}
	return u
}

type CarRow struct {
	ID                      uint   `gorm:"primaryKey"`
	CarID                   string `gorm:"uniqueIndex;not null"`
	Brand                   string `gorm:"index;not null"`
	Model                   string `gorm:"not null"`
	Year                    string
	Price                   string
	Paragraph               string
	KmDriven                string
	FuelType                string
	Transmission            string
	Condition               string
	Location                string
	Images                  datatypes.JSONType[[]string]              `gorm:"type:jsonb;not null"`
	Features                datatypes.JSONType[[]models.CarFeature]   `gorm:"type:jsonb;not null"`
	TechnicalSpecifications datatypes.JSONType[[]models.CarSpecEntry] `gorm:"type:jsonb;not null"`
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

func (CarRow) TableName() string { return "cars" }

func NewCarRow(car *models.Car) *CarRow {
	return &CarRow{
		CarID:                   car.CarID,
		Brand:                   car.Brand,
		Model:                   car.Model,
		Year:                    car.Year,
		Price:                   car.Price,
		Paragraph:               car.Paragraph,
		KmDriven:                car.KmDriven,
		FuelType:                car.FuelType,
		Transmission:            car.Transmission,
		Condition:               car.Condition,
		Location:                car.Location,
		Images:                  datatypes.NewJSONType(nonNil(car.Images)),
		Features:                datatypes.NewJSONType(nonNil(car.Features)),
		TechnicalSpecifications: datatypes.NewJSONType(nonNil(car.TechnicalSpecifications)),
	}
}

func (r *CarRow) ToModel() *models.Car {
	return &models.Car{
		CarID:                   r.CarID,
		Brand:                   r.Brand,
		Model:                   r.Model,
		Year:                    r.Year,
		Price:                   r.Price,
		Paragraph:               r.Paragraph,
		KmDriven:                r.KmDriven,
		FuelType:                r.FuelType,
		Transmission:            r.Transmission,
		Condition:               r.Condition,
		Location:                r.Location,
		Images:                  nonNil(r.Images.Data()),
		Features:                nonNil(r.Features.Data()),
		TechnicalSpecifications: nonNil(r.TechnicalSpecifications.Data()),
	}
}

type BookingRow struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	Username    string    `gorm:"not null"`
	PhoneNumber string    `gorm:"not null"`
	ContactID   string    `gorm:"not null"`
	CarName     string    `gorm:"not null"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending'"`
	CurrentTime time.Time
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

func (BookingRow) TableName() string { return "car_bookings" }

func (r *BookingRow) ToModel() *models.CarBooking {
	return &models.CarBooking{
		ID:          r.ID,
		Username:    r.Username,
		PhoneNumber: r.PhoneNumber,
		ContactID:   r.ContactID,
		CarName:     r.CarName,
		Status:      models.BookingStatus(r.Status),
		CurrentTime: r.CurrentTime,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
