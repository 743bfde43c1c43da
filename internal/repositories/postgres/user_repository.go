package postgres

import (
	"context"
	"fmt"
	"time"

	"cars2customer_backend/database"
	"cars2customer_backend/internal/models"
	"cars2customer_backend/internal/repositories"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

const otpMatch = "email = ? AND otp = ? AND otp_expiry > ?"

var clearOTP = map[string]interface{}{
	"otp":        nil,
	"otp_expiry": nil,
}

func withClearedOTP(updates map[string]interface{}) map[string]interface{} {
	for k, v := range clearOTP {
		updates[k] = v
	}
	return updates
}

func (r *UserRepository) first(ctx context.Context, db *gorm.DB, query string, args ...interface{}) (*database.UserRow, error) {
	var row database.UserRow
	if err := db.WithContext(ctx).Where(query, args...).First(&row).Error; err != nil {
		if isNotFound(err) {
			return nil, repositories.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &row, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	row, err := r.first(ctx, r.db, "email = ?", email)
	if err != nil {
		return nil, err
	}
	return row.ToModel(), nil
}

func (r *UserRepository) FindByUniqueID(ctx context.Context, uniqueID string) (*models.User, error) {
	if uniqueID == "" {
		return nil, repositories.ErrUserNotFound
	}
	row, err := r.first(ctx, r.db, "unique_id = ?", uniqueID)
	if err != nil {
		return nil, err
	}
	return row.ToModel(), nil
}

// UpsertPendingOTP inserts a bare record or refreshes the code of an
// unverified one. The conflict update is guarded by is_verified, so a
// verified row affects zero rows.
func (r *UserRepository) UpsertPendingOTP(ctx context.Context, email string, grant repositories.OTPGrant) error {
	code, expiry := grant.Code, grant.ExpiresAt
	row := &database.UserRow{
		Email:     email,
		OTP:       &code,
		OTPExpiry: &expiry,
		Favorites: datatypes.NewJSONType([]models.Car{}),
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"otp", "otp_expiry", "updated_at"}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Eq{Column: clause.Column{Table: "users", Name: "is_verified"}, Value: false},
		}},
	}).Create(row)
	if res.Error != nil {
		return fmt.Errorf("failed to store otp: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repositories.ErrUserAlreadyVerified
	}
	return nil
}

func (r *UserRepository) SetOTP(ctx context.Context, email string, grant repositories.OTPGrant) error {
	res := r.db.WithContext(ctx).Model(&database.UserRow{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{"otp": grant.Code, "otp_expiry": grant.ExpiresAt})
	if res.Error != nil {
		return fmt.Errorf("failed to store otp: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repositories.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) CompleteRegistration(ctx context.Context, email, code string, now time.Time, reg repositories.Registration) (*models.User, error) {
	res := r.db.WithContext(ctx).Model(&database.UserRow{}).
		Where(otpMatch+" AND is_verified = ?", email, code, now, false).
		Updates(withClearedOTP(map[string]interface{}{
			"password_hash": reg.PasswordHash,
			"unique_id":     reg.UniqueID,
			"is_verified":   true,
		}))
	if res.Error != nil {
		return nil, fmt.Errorf("failed to complete registration: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, repositories.ErrOTPRejected
	}
	return r.FindByEmail(ctx, email)
}

func (r *UserRepository) ResetPassword(ctx context.Context, email, code string, now time.Time, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&database.UserRow{}).
		Where(otpMatch, email, code, now).
		Updates(withClearedOTP(map[string]interface{}{"password_hash": passwordHash}))
	if res.Error != nil {
		return fmt.Errorf("failed to reset password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repositories.ErrOTPRejected
	}
	return nil
}

func (r *UserRepository) CreateVerified(ctx context.Context, user *models.User) error {
	row := &database.UserRow{
		Email:      user.Email,
		IsVerified: true,
		Favorites:  datatypes.NewJSONType(user.Favorites),
	}
	if user.Favorites == nil {
		row.Favorites = datatypes.NewJSONType([]models.Car{})
	}
	if user.PasswordHash != "" {
		hash := user.PasswordHash
		row.PasswordHash = &hash
	}
	if user.UniqueID != "" {
		id := user.UniqueID
		row.UniqueID = &id
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if isDuplicate(err) {
			return repositories.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) MarkVerified(ctx context.Context, email, uniqueID string) (*models.User, error) {
	res := r.db.WithContext(ctx).Model(&database.UserRow{}).
		Where("email = ? AND is_verified = ?", email, false).
		Updates(withClearedOTP(map[string]interface{}{
			"unique_id":   uniqueID,
			"is_verified": true,
		}))
	if res.Error != nil {
		return nil, fmt.Errorf("failed to verify user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByEmail(ctx, email); err != nil {
			return nil, err
		}
		return nil, repositories.ErrUserAlreadyVerified
	}
	return r.FindByEmail(ctx, email)
}

// mutateFavorites runs fn on the locked row and writes back what it returns.
func (r *UserRepository) mutateFavorites(ctx context.Context, uniqueID string, fn func([]models.Car) ([]models.Car, error)) ([]models.Car, error) {
	if uniqueID == "" {
		return nil, repositories.ErrUserNotFound
	}
	var out []models.Car
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := r.first(ctx, tx.Clauses(forUpdate), "unique_id = ?", uniqueID)
		if err != nil {
			return err
		}
		favorites, err := fn(row.ToModel().Favorites)
		if err != nil {
			return err
		}
		if err := tx.Model(row).Update("favorites", datatypes.NewJSONType(favorites)).Error; err != nil {
			return fmt.Errorf("failed to save favorites: %w", err)
		}
		out = favorites
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *UserRepository) AddFavorite(ctx context.Context, uniqueID string, car models.Car) ([]models.Car, error) {
	return r.mutateFavorites(ctx, uniqueID, func(favorites []models.Car) ([]models.Car, error) {
		u := models.User{Favorites: favorites}
		if u.FavoriteIndex(car.CarID) >= 0 {
			return nil, repositories.ErrAlreadyFavorited
		}
		return append(favorites, car.Snapshot()), nil
	})
}

func (r *UserRepository) RemoveFavorite(ctx context.Context, uniqueID, carID string) ([]models.Car, error) {
	return r.mutateFavorites(ctx, uniqueID, func(favorites []models.Car) ([]models.Car, error) {
		u := models.User{Favorites: favorites}
		i := u.FavoriteIndex(carID)
		if i < 0 {
			return nil, repositories.ErrFavoriteNotFound
		}
		return append(favorites[:i], favorites[i+1:]...), nil
	})
}

func (r *UserRepository) ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&database.UserRow{}).
		Where("is_verified = ? AND otp_expiry <= ?", true, now).
		Updates(clearOTP)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to clear expired otps: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *UserRepository) DeleteStaleUnverified(ctx context.Context, expiredBefore time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("is_verified = ? AND (otp_expiry IS NULL OR otp_expiry < ?)", false, expiredBefore).
		Delete(&database.UserRow{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete stale users: %w", res.Error)
	}
	return res.RowsAffected, nil
}
