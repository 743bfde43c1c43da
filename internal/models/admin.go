package models

import "time"

// Admin is an operator account. Exactly one admin may be the top admin,
// which the admin-management operations never edit or delete.
type Admin struct {
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password" json:"-"`
	UniqueID     string    `bson:"uniqueId" json:"uniqueId"`
	IsTopAdmin   bool      `bson:"isTopAdmin" json:"isTopAdmin"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
