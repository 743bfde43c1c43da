package dto

type CreateBookingRequest struct {
	Username    string `json:"username" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	ContactID   string `json:"contactId" validate:"required"`
	CarName     string `json:"carName" validate:"required"`
	Status      string `json:"status" validate:"omitempty,is-booking-status"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,is-booking-status"`
}
