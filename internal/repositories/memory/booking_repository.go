package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"cars2customer_backend/internal/models"
	"cars2customer_backend/internal/repositories"

	"github.com/google/uuid"
)

type BookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]models.CarBooking
	// insertion order, breaks CreatedAt ties
	seq map[string]int
	n   int
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{
		bookings: make(map[string]models.CarBooking),
		seq:      make(map[string]int),
	}
}

func (r *BookingRepository) Create(_ context.Context, booking *models.CarBooking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking.ID = uuid.NewString()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
		booking.UpdatedAt = booking.CreatedAt
	}
	r.n++
	r.seq[booking.ID] = r.n
	r.bookings[booking.ID] = *booking
	return nil
}

// FindAll returns bookings newest first.
func (r *BookingRepository) FindAll(_ context.Context) ([]models.CarBooking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bookings := make([]models.CarBooking, 0, len(r.bookings))
	for _, b := range r.bookings {
		bookings = append(bookings, b)
	}
	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
		}
		return r.seq[bookings[i].ID] > r.seq[bookings[j].ID]
	})
	return bookings, nil
}

func (r *BookingRepository) FindByID(_ context.Context, id string) (*models.CarBooking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, repositories.ErrBookingNotFound
	}
	return &b, nil
}

func (r *BookingRepository) UpdateStatus(_ context.Context, id string, status models.BookingStatus) (*models.CarBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, repositories.ErrBookingNotFound
	}
	b.Status = status
	b.UpdatedAt = time.Now().UTC()
	r.bookings[id] = b
	return &b, nil
}

func (r *BookingRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return repositories.ErrBookingNotFound
	}
	delete(r.bookings, id)
	delete(r.seq, id)
	return nil
}
