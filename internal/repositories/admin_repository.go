package repositories

import (
	"context"

	"cars2customer_backend/internal/models"
)

// AdminUpdate lists the admin fields an edit may change. Nil means unchanged.
type AdminUpdate struct {
	Email        *string
	PasswordHash *string
}

// AdminRepository persists admin accounts.
// Update and Delete never match the top admin; they report ErrAdminNotFound instead.
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	FindByUniqueID(ctx context.Context, uniqueID string) (*models.Admin, error)
	FindTop(ctx context.Context) (*models.Admin, error)
	ListNonTop(ctx context.Context) ([]models.Admin, error)
	Update(ctx context.Context, uniqueID string, upd AdminUpdate) (*models.Admin, error)
	Delete(ctx context.Context, uniqueID string) error
}
