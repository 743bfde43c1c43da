package postgres

import (
	"context"
	"fmt"

	"cars2customer_backend/database"
	"cars2customer_backend/internal/models"
	"cars2customer_backend/internal/repositories"

	"gorm.io/gorm"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	row := &database.AdminRow{
		Email:        admin.Email,
		PasswordHash: admin.PasswordHash,
		UniqueID:     admin.UniqueID,
		IsTopAdmin:   admin.IsTopAdmin,
		CreatedAt:    admin.CreatedAt,
	}
	err := r.db.WithContext(ctx).Create(row).Error
	if err == nil {
		return nil
	}
	if !isDuplicate(err) {
		return fmt.Errorf("failed to insert admin: %w", err)
	}
	if admin.IsTopAdmin {
		if _, topErr := r.FindTop(ctx); topErr == nil {
			return repositories.ErrTopAdminExists
		}
	}
	return repositories.ErrAdminAlreadyExists
}

func (r *AdminRepository) first(ctx context.Context, query string, args ...interface{}) (*models.Admin, error) {
	var row database.AdminRow
	if err := r.db.WithContext(ctx).Where(query, args...).First(&row).Error; err != nil {
		if isNotFound(err) {
			return nil, repositories.ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
	return row.ToModel(), nil
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *AdminRepository) FindByUniqueID(ctx context.Context, uniqueID string) (*models.Admin, error) {
	if uniqueID == "" {
		return nil, repositories.ErrAdminNotFound
	}
	return r.first(ctx, "unique_id = ?", uniqueID)
}

func (r *AdminRepository) FindTop(ctx context.Context) (*models.Admin, error) {
	return r.first(ctx, "is_top_admin = ?", true)
}

func (r *AdminRepository) ListNonTop(ctx context.Context) ([]models.Admin, error) {
	var rows []database.AdminRow
	if err := r.db.WithContext(ctx).Where("is_top_admin = ?", false).Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	admins := make([]models.Admin, 0, len(rows))
	for i := range rows {
		admins = append(admins, *rows[i].ToModel())
	}
	return admins, nil
}

func (r *AdminRepository) Update(ctx context.Context, uniqueID string, upd repositories.AdminUpdate) (*models.Admin, error) {
	updates := map[string]interface{}{}
	if upd.Email != nil {
		updates["email"] = *upd.Email
	}
	if upd.PasswordHash != nil {
		updates["password_hash"] = *upd.PasswordHash
	}
	if len(updates) == 0 {
		return r.first(ctx, "unique_id = ? AND is_top_admin = ?", uniqueID, false)
	}

	res := r.db.WithContext(ctx).Model(&database.AdminRow{}).
		Where("unique_id = ? AND is_top_admin = ?", uniqueID, false).
		Updates(updates)
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return nil, repositories.ErrAdminAlreadyExists
		}
		return nil, fmt.Errorf("failed to update admin: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, repositories.ErrAdminNotFound
	}
	return r.FindByUniqueID(ctx, uniqueID)
}

func (r *AdminRepository) Delete(ctx context.Context, uniqueID string) error {
	res := r.db.WithContext(ctx).
		Where("unique_id = ? AND is_top_admin = ?", uniqueID, false).
		Delete(&database.AdminRow{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete admin: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repositories.ErrAdminNotFound
	}
	return nil
}
