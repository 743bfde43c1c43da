package validator

import (
	"log"
	"strconv"

	"cars2customer_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules adds the project's custom tags to v.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-booking-status", validateBookingStatus)
	mustRegister("max-bytes", validateMaxBytes)
}

func validateBookingStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty is left to 'required'
	}
	return models.BookingStatus(value).Valid()
}

// validateMaxBytes bounds a string by its encoded length, e.g. max-bytes=72
// for bcrypt input. "max" counts runes.
func validateMaxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}
