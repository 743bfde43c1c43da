package services

import (
	"context"
	"errors"

	"cars2customer_backend/internal/auth"
	"cars2customer_backend/internal/lock"
	"cars2customer_backend/internal/logger"
	"cars2customer_backend/internal/models"
	"cars2customer_backend/internal/repositories"
	"cars2customer_backend/internal/services/dto"
	"cars2customer_backend/pkg/apperrors"

	"github.com/google/uuid"
)

const AdminRole = "admin"

type AdminService interface {
	Register(ctx context.Context, req *dto.AdminCredentials) (*models.Admin, error)
	RegisterTop(ctx context.Context, req *dto.AdminCredentials) (*models.Admin, error)
	List(ctx context.Context) ([]models.Admin, error)
	Login(ctx context.Context, req *dto.AdminCredentials) (*dto.AdminLoginResponse, error)

	// Authorize resolves a claimed admin uniqueId.
	Authorize(ctx context.Context, claimedUniqueID string) (*models.Admin, error)
	// AuthorizeToken resolves a session token issued by Login.
	AuthorizeToken(ctx context.Context, token string) (*models.Admin, error)

	Update(ctx context.Context, targetID string, req *dto.UpdateAdminRequest) (*models.Admin, error)
	Delete(ctx context.Context, targetID string) error

	// SeedTopAdmin creates the top admin unless one exists already.
	SeedTopAdmin(ctx context.Context, email, password string) (bool, error)
}

type AdminServiceImpl struct {
	adminRepo  repositories.AdminRepository
	hasher     *auth.Hasher
	tokens     *auth.TokenManager
	locker     lock.Locker
	openSignup bool
	now        Clock
}

func NewAdminService(
	adminRepo repositories.AdminRepository,
	hasher *auth.Hasher,
	tokens *auth.TokenManager,
	locker lock.Locker,
	openSignup bool,
) AdminService {
	return &AdminServiceImpl{
		adminRepo:  adminRepo,
		hasher:     hasher,
		tokens:     tokens,
		locker:     locker,
		openSignup: openSignup,
		now:        defaultClock(nil),
	}
}

func (s *AdminServiceImpl) Register(ctx context.Context, req *dto.AdminCredentials) (*models.Admin, error) {
	if !s.openSignup {
		return nil, apperrors.ErrAdminRegistrationClosed
	}
	return s.create(ctx, req.Email, req.Password, false)
}

func (s *AdminServiceImpl) RegisterTop(ctx context.Context, req *dto.AdminCredentials) (*models.Admin, error) {
	return s.create(ctx, req.Email, req.Password, true)
}

func (s *AdminServiceImpl) create(ctx context.Context, email, password string, top bool) (*models.Admin, error) {
	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return nil, hashError("password", err)
	}

	admin := &models.Admin{
		Email:        normalizeEmail(email),
		PasswordHash: hash,
		UniqueID:     uuid.NewString(),
		IsTopAdmin:   top,
		CreatedAt:    s.now(),
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTopAdminExists):
			return nil, apperrors.ErrTopAdminExists
		case errors.Is(err, repositories.ErrAdminAlreadyExists):
			return nil, apperrors.ErrEmailAlreadyExists
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	logger.CtxInfo(ctx, "Admin registered", "admin_id", admin.UniqueID, "top", top)
	return admin, nil
}

func (s *AdminServiceImpl) List(ctx context.Context) ([]models.Admin, error) {
	admins, err := s.adminRepo.ListNonTop(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return admins, nil
}

func (s *AdminServiceImpl) Login(ctx context.Context, req *dto.AdminCredentials) (*dto.AdminLoginResponse, error) {
	admin, err := s.adminRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrAdminNotFound) {
			s.hasher.BurnCompare(req.Password)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}
	if !s.hasher.CheckPasswordHash(req.Password, admin.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateAdminToken(admin.UniqueID, AdminRole)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AdminLoginResponse{
		Message:   "Login successful!",
		UniqueID:  admin.UniqueID,
		Role:      AdminRole,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *AdminServiceImpl) Authorize(ctx context.Context, claimedUniqueID string) (*models.Admin, error) {
	if claimedUniqueID == "" {
		return nil, apperrors.ErrMissingAdminID
	}
	admin, err := s.adminRepo.FindByUniqueID(ctx, claimedUniqueID)
	if err != nil {
		if errors.Is(err, repositories.ErrAdminNotFound) {
			return nil, apperrors.ErrUnauthorizedAdmin
		}
		return nil, apperrors.InternalError(err)
	}
	return admin, nil
}

func (s *AdminServiceImpl) AuthorizeToken(ctx context.Context, token string) (*models.Admin, error) {
	claims, err := s.tokens.ParseAdminToken(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	return s.Authorize(ctx, claims.Subject)
}

func adminLockKey(uniqueID string) string {
	return "admin:" + uniqueID
}

// guardTop rejects any mutation aimed at the top admin.
func (s *AdminServiceImpl) guardTop(ctx context.Context, targetID string) error {
	top, err := s.adminRepo.FindTop(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrAdminNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}
	if top.UniqueID == targetID {
		return apperrors.ErrProtectedRecord
	}
	return nil
}

func (s *AdminServiceImpl) Update(ctx context.Context, targetID string, req *dto.UpdateAdminRequest) (*models.Admin, error) {
	var updated *models.Admin
	err := withLock(ctx, s.locker, adminLockKey(targetID), func() error {
		if err := s.guardTop(ctx, targetID); err != nil {
			return err
		}

		var upd repositories.AdminUpdate
		if req.Email != nil && *req.Email != "" {
			email := normalizeEmail(*req.Email)
			upd.Email = &email
		}
		if req.Password != nil && *req.Password != "" {
			hash, err := s.hasher.HashPassword(*req.Password)
			if err != nil {
				return hashError("password", err)
			}
			upd.PasswordHash = &hash
		}

		admin, err := s.adminRepo.Update(ctx, targetID, upd)
		if err != nil {
			switch {
			case errors.Is(err, repositories.ErrAdminNotFound):
				return apperrors.ErrAdminNotFound
			case errors.Is(err, repositories.ErrAdminAlreadyExists):
				return apperrors.ErrEmailAlreadyExists
			default:
				return apperrors.InternalError(err)
			}
		}
		updated = admin
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "Admin updated", "target_id", targetID)
	return updated, nil
}

func (s *AdminServiceImpl) Delete(ctx context.Context, targetID string) error {
	err := withLock(ctx, s.locker, adminLockKey(targetID), func() error {
		if err := s.guardTop(ctx, targetID); err != nil {
			return err
		}
		if err := s.adminRepo.Delete(ctx, targetID); err != nil {
			if errors.Is(err, repositories.ErrAdminNotFound) {
				return apperrors.ErrAdminNotFound
			}
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.CtxInfo(ctx, "Admin deleted", "target_id", targetID)
	return nil
}

func (s *AdminServiceImpl) SeedTopAdmin(ctx context.Context, email, password string) (bool, error) {
	if _, err := s.adminRepo.FindTop(ctx); err == nil {
		return false, nil
	} else if !errors.Is(err, repositories.ErrAdminNotFound) {
		return false, err
	}

	if _, err := s.create(ctx, email, password, true); err != nil {
		if errors.Is(err, apperrors.ErrTopAdminExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
