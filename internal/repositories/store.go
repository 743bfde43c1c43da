package repositories

import "context"

// Conn is the lifecycle handle of a storage backend.
type Conn interface {
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Store bundles the repositories of one backend.
type Store struct {
	Admins   AdminRepository
	Users    UserRepository
	Cars     CarRepository
	Bookings BookingRepository
	Conn     Conn
}
