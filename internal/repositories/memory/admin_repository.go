package memory

import (
	"context"
	"sort"
	"sync"

	"cars2customer_backend/internal/models"
	"cars2customer_backend/internal/repositories"
)

type AdminRepository struct {
	mu     sync.RWMutex
	admins map[string]models.Admin // by uniqueId
}

func NewAdminRepository() *AdminRepository {
	return &AdminRepository{admins: make(map[string]models.Admin)}
}

func (r *AdminRepository) Create(_ context.Context, admin *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.admins {
		if a.Email == admin.Email {
			return repositories.ErrAdminAlreadyExists
		}
		if admin.IsTopAdmin && a.IsTopAdmin {
			return repositories.ErrTopAdminExists
		}
	}
	if _, ok := r.admins[admin.UniqueID]; ok {
		return repositories.ErrAdminAlreadyExists
	}
	r.admins[admin.UniqueID] = *admin
	return nil
}

func (r *AdminRepository) FindByEmail(_ context.Context, email string) (*models.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.admins {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, repositories.ErrAdminNotFound
}

func (r *AdminRepository) FindByUniqueID(_ context.Context, uniqueID string) (*models.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.admins[uniqueID]
	if !ok {
		return nil, repositories.ErrAdminNotFound
	}
	return &a, nil
}

func (r *AdminRepository) FindTop(_ context.Context) (*models.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.admins {
		if a.IsTopAdmin {
			return &a, nil
		}
	}
	return nil, repositories.ErrAdminNotFound
}

func (r *AdminRepository) ListNonTop(_ context.Context) ([]models.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	admins := make([]models.Admin, 0, len(r.admins))
	for _, a := range r.admins {
		if !a.IsTopAdmin {
			admins = append(admins, a)
		}
	}
	sort.Slice(admins, func(i, j int) bool {
		return admins[i].CreatedAt.Before(admins[j].CreatedAt)
	})
	return admins, nil
}

func (r *AdminRepository) Update(_ context.Context, uniqueID string, upd repositories.AdminUpdate) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.admins[uniqueID]
	if !ok || a.IsTopAdmin {
		return nil, repositories.ErrAdminNotFound
	}
	if upd.Email != nil && *upd.Email != a.Email {
		for _, other := range r.admins {
			if other.Email == *upd.Email {
				return nil, repositories.ErrAdminAlreadyExists
			}
		}
		a.Email = *upd.Email
	}
	if upd.PasswordHash != nil {
		a.PasswordHash = *upd.PasswordHash
	}
	r.admins[uniqueID] = a
	return &a, nil
}

func (r *AdminRepository) Delete(_ context.Context, uniqueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.admins[uniqueID]
	if !ok || a.IsTopAdmin {
		return repositories.ErrAdminNotFound
	}
	delete(r.admins, uniqueID)
	return nil
}
