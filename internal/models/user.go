package models

import "time"

// User is an end-user account. The record exists from the first OTP request;
// PasswordHash and UniqueID are only set once the email is verified.
type User struct {
	Email        string     `bson:"email" json:"email"`
	PasswordHash string     `bson:"password,omitempty" json:"-"`
	UniqueID     string     `bson:"uniqueId,omitempty" json:"uniqueId,omitempty"`
	OTP          *string    `bson:"otp" json:"-"`
	OTPExpiry    *time.Time `bson:"otpExpiry" json:"-"`
	IsVerified   bool       `bson:"isVerified" json:"isVerified"`
	Favorites    []Car      `bson:"favorites" json:"favorites"`
}

// HasPendingOTP reports whether a code is stored and still valid at now.
func (u *User) HasPendingOTP(now time.Time) bool {
	return u.OTP != nil && u.OTPExpiry != nil && now.Before(*u.OTPExpiry)
}

// OTPMatches is the single acceptance check for a submitted code.
func (u *User) OTPMatches(code string, now time.Time) bool {
	return u.HasPendingOTP(now) && *u.OTP == code
}

// FavoriteIndex returns the position of carID in the favorites list or -1.
func (u *User) FavoriteIndex(carID string) int {
	for i := range u.Favorites {
		if u.Favorites[i].CarID == carID {
			return i
		}
	}
	return -1
}
