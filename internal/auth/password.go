package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// Hasher hashes and checks passwords with bcrypt.
type Hasher struct {
	cost      int
	dummyHash []byte
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	h := &Hasher{cost: cost}
	// Used for unknown accounts so a miss costs as much as a wrong password.
	h.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("cars2customer-dummy-password"), cost)
	return h
}

// HashPassword returns the bcrypt hash of password.
func (h *Hasher) HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	return string(bytes), err
}

// CheckPasswordHash reports whether password matches hash.
func (h *Hasher) CheckPasswordHash(password, hash string) bool {
	if hash == "" {
		h.BurnCompare(password)
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// BurnCompare runs a comparison whose result is discarded.
func (h *Hasher) BurnCompare(password string) {
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(password))
}
