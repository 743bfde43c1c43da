// Package memory is an in-process backend used by tests and the "memory"
// store driver. Each repository serializes access with its own mutex, which
// makes every conditional update atomic.
package memory

import (
	"context"

	"cars2customer_backend/internal/repositories"
)

type conn struct{}

func (conn) Ping(context.Context) error  { return nil }
func (conn) Close(context.Context) error { return nil }

func NewStore() *repositories.Store {
	return &repositories.Store{
		Admins:   NewAdminRepository(),
		Users:    NewUserRepository(),
		Cars:     NewCarRepository(),
		Bookings: NewBookingRepository(),
		Conn:     conn{},
	}
}
