package memory

import (
	"context"
	"sync"
	"time"

	"cars2customer_backend/internal/models"
	"cars2customer_backend/internal/repositories"
)

type UserRepository struct {
	mu    sync.Mutex
	users map[string]*models.User // by email
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*models.User)}
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[email]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) FindByUniqueID(_ context.Context, uniqueID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := r.byUniqueID(uniqueID)
	if u == nil {
		return nil, repositories.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) UpsertPendingOTP(_ context.Context, email string, grant repositories.OTPGrant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[email]
	if !ok {
		u = &models.User{Email: email, Favorites: []models.Car{}}
		r.users[email] = u
	}
	if u.IsVerified {
		return repositories.ErrUserAlreadyVerified
	}
	setGrant(u, grant)
	return nil
}

func (r *UserRepository) SetOTP(_ context.Context, email string, grant repositories.OTPGrant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[email]
	if !ok {
		return repositories.ErrUserNotFound
	}
	setGrant(u, grant)
	return nil
}

func (r *UserRepository) CompleteRegistration(_ context.Context, email, code string, now time.Time, reg repositories.Registration) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[email]
	if !ok || u.IsVerified || !u.OTPMatches(code, now) {
		return nil, repositories.ErrOTPRejected
	}
	u.PasswordHash = reg.PasswordHash
	u.UniqueID = reg.UniqueID
	u.IsVerified = true
	u.OTP, u.OTPExpiry = nil, nil
	return cloneUser(u), nil
}

func (r *UserRepository) ResetPassword(_ context.Context, email, code string, now time.Time, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[email]
	if !ok || !u.OTPMatches(code, now) {
		return repositories.ErrOTPRejected
	}
	u.PasswordHash = passwordHash
	u.OTP, u.OTPExpiry = nil, nil
	return nil
}

func (r *UserRepository) CreateVerified(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Email]; ok {
		return repositories.ErrUserAlreadyExists
	}
	u := cloneUser(user)
	u.IsVerified = true
	if u.Favorites == nil {
		u.Favorites = []models.Car{}
	}
	r.users[user.Email] = u
	return nil
}

func (r *UserRepository) MarkVerified(_ context.Context, email, uniqueID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[email]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	if u.IsVerified {
		return nil, repositories.ErrUserAlreadyVerified
	}
	u.UniqueID = uniqueID
	u.IsVerified = true
	u.OTP, u.OTPExpiry = nil, nil
	return cloneUser(u), nil
}

func (r *UserRepository) AddFavorite(_ context.Context, uniqueID string, car models.Car) ([]models.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := r.byUniqueID(uniqueID)
	if u == nil {
		return nil, repositories.ErrUserNotFound
	}
	if u.FavoriteIndex(car.CarID) >= 0 {
		return nil, repositories.ErrAlreadyFavorited
	}
	u.Favorites = append(u.Favorites, car.Snapshot())
	return cloneUser(u).Favorites, nil
}

func (r *UserRepository) RemoveFavorite(_ context.Context, uniqueID, carID string) ([]models.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := r.byUniqueID(uniqueID)
	if u == nil {
		return nil, repositories.ErrUserNotFound
	}
	i := u.FavoriteIndex(carID)
	if i < 0 {
		return nil, repositories.ErrFavoriteNotFound
	}
	u.Favorites = append(u.Favorites[:i], u.Favorites[i+1:]...)
	return cloneUser(u).Favorites, nil
}

func (r *UserRepository) ClearExpiredOTPs(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, u := range r.users {
		if u.IsVerified && u.OTPExpiry != nil && !now.Before(*u.OTPExpiry) {
			u.OTP, u.OTPExpiry = nil, nil
			n++
		}
	}
	return n, nil
}

func (r *UserRepository) DeleteStaleUnverified(_ context.Context, expiredBefore time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for email, u := range r.users {
		if u.IsVerified {
			continue
		}
		if u.OTPExpiry == nil || u.OTPExpiry.Before(expiredBefore) {
			delete(r.users, email)
			n++
		}
	}
	return n, nil
}

func (r *UserRepository) byUniqueID(uniqueID string) *models.User {
	if uniqueID == "" {
		return nil
	}
	for _, u := range r.users {
		if u.UniqueID == uniqueID {
			return u
		}
	}
	return nil
}

func setGrant(u *models.User, grant repositories.OTPGrant) {
	code, expiry := grant.Code, grant.ExpiresAt
	u.OTP, u.OTPExpiry = &code, &expiry
}

func cloneUser(u *models.User) *models.User {
	cp := *u
	if u.OTP != nil {
		code := *u.OTP
		cp.OTP = &code
	}
	if u.OTPExpiry != nil {
		expiry := *u.OTPExpiry
		cp.OTPExpiry = &expiry
	}
	cp.Favorites = make([]models.Car, len(u.Favorites))
	for i, car := range u.Favorites {
		cp.Favorites[i] = car.Snapshot()
	}
	return &cp
}
