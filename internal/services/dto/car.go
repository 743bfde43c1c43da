package dto

import (
	"cars2customer_backend/internal/models"
	"cars2customer_backend/internal/repositories"
)

type CarFeatureInput struct {
	Icon  string `json:"icon"`
	Label string `json:"label" validate:"required"`
}

type CarSpecInput struct {
	Label string `json:"label" validate:"required"`
	Value string `json:"value"`
}

type CarInput struct {
	CarID                   string            `json:"carId" validate:"required,max=128"`
	Brand                   string            `json:"brand" validate:"required"`
	Model                   string            `json:"model" validate:"required"`
	Year                    string            `json:"year"`
	Price                   string            `json:"price"`
	Paragraph               string            `json:"paragraph"`
	KmDriven                string            `json:"kmDriven"`
	FuelType                string            `json:"fuelType"`
	Transmission            string            `json:"transmission"`
	Condition               string            `json:"condition"`
	Location                string            `json:"location"`
	Images                  []string          `json:"images" validate:"omitempty,dive,required"`
	Features                []CarFeatureInput `json:"features" validate:"omitempty,dive"`
	TechnicalSpecifications []CarSpecInput    `json:"technicalSpecifications" validate:"omitempty,dive"`
}

func (in *CarInput) ToModel() *models.Car {
	car := &models.Car{
		CarID:                   in.CarID,
		Brand:                   in.Brand,
		Model:                   in.Model,
		Year:                    in.Year,
		Price:                   in.Price,
		Paragraph:               in.Paragraph,
		KmDriven:                in.KmDriven,
		FuelType:                in.FuelType,
		Transmission:            in.Transmission,
		Condition:               in.Condition,
		Location:                in.Location,
		Images:                  append([]string{}, in.Images...),
		Features:                toFeatures(in.Features),
		TechnicalSpecifications: toSpecs(in.TechnicalSpecifications),
	}
	return car
}

type CreateCarRequest struct {
	UniqueID string   `json:"uniqueId"`
	Car      CarInput `json:"car"`
}

// CarUpdateInput carries only the fields being changed. carId is not
// accepted: a listing keeps its key.
type CarUpdateInput struct {
	Brand                   *string            `json:"brand" validate:"omitempty,min=1"`
	Model                   *string            `json:"model" validate:"omitempty,min=1"`
	Year                    *string            `json:"year"`
	Price                   *string            `json:"price"`
	Paragraph               *string            `json:"paragraph"`
	KmDriven                *string            `json:"kmDriven"`
	FuelType                *string            `json:"fuelType"`
	Transmission            *string            `json:"transmission"`
	Condition               *string            `json:"condition"`
	Location                *string            `json:"location"`
	Images                  *[]string          `json:"images"`
	Features                *[]CarFeatureInput `json:"features"`
	TechnicalSpecifications *[]CarSpecInput    `json:"technicalSpecifications"`
}

func (in *CarUpdateInput) ToUpdate() repositories.CarUpdate {
	upd := repositories.CarUpdate{
		Brand:        in.Brand,
		Model:        in.Model,
		Year:         in.Year,
		Price:        in.Price,
		Paragraph:    in.Paragraph,
		KmDriven:     in.KmDriven,
		FuelType:     in.FuelType,
		Transmission: in.Transmission,
		Condition:    in.Condition,
		Location:     in.Location,
	}
	if in.Images != nil {
		images := append([]string{}, (*in.Images)...)
		upd.Images = &images
	}
	if in.Features != nil {
		features := toFeatures(*in.Features)
		upd.Features = &features
	}
	if in.TechnicalSpecifications != nil {
		specs := toSpecs(*in.TechnicalSpecifications)
		upd.TechnicalSpecifications = &specs
	}
	return upd
}

type UpdateCarRequest struct {
	UniqueID   string         `json:"uniqueId"`
	UpdateData CarUpdateInput `json:"updateData"`
}

type CarResponse struct {
	Message string      `json:"message,omitempty"`
	Car     *models.Car `json:"car"`
}

type CarsByBrandResponse struct {
	Cars map[string][]models.Car `json:"cars"`
}

func toFeatures(in []CarFeatureInput) []models.CarFeature {
	out := make([]models.CarFeature, 0, len(in))
	for _, f := range in {
		out = append(out, models.CarFeature{Icon: f.Icon, Label: f.Label})
	}
	return out
}

func toSpecs(in []CarSpecInput) []models.CarSpecEntry {
	out := make([]models.CarSpecEntry, 0, len(in))
	for _, s := range in {
		out = append(out, models.CarSpecEntry{Label: s.Label, Value: s.Value})
	}
	return out
}
