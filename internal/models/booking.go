package models

import "time"

// CarBooking is a purchase request. It carries the car's display name only;
// there is no reference to a catalog entry or a user.
type CarBooking struct {
	ID          string        `bson:"_id" json:"_id"`
	Username    string        `bson:"username" json:"username"`
	PhoneNumber string        `bson:"phoneNumber" json:"phoneNumber"`
	ContactID   string        `bson:"contactId" json:"contactId"`
	CarName     string        `bson:"carName" json:"carName"`
	Status      BookingStatus `bson:"status" json:"status"`
	CurrentTime time.Time     `bson:"currentTime" json:"currentTime"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}
