package services

import (
	"context"
	"errors"
	"time"

	"cars2customer_backend/internal/auth"
	"cars2customer_backend/internal/lock"
	"cars2customer_backend/internal/logger"
	"cars2customer_backend/internal/models"
	"cars2customer_backend/internal/repositories"
	"cars2customer_backend/internal/services/dto"
	"cars2customer_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// OTPSender delivers one-time codes.
type OTPSender interface {
	SendOTP(ctx context.Context, to, code string, purpose models.OTPPurpose) error
}

type AuthService interface {
	RequestOTP(ctx context.Context, email string) error
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserAuthResponse, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.UserAuthResponse, error)
	GoogleLogin(ctx context.Context, token string) (*dto.UserAuthResponse, error)
}

type AuthServiceConfig struct {
	MailTimeout time.Duration
	// Google sign-in is disabled when nil.
	Google auth.GoogleVerifier
	Now    Clock
}

type AuthServiceImpl struct {
	userRepo    repositories.UserRepository
	hasher      *auth.Hasher
	locker      lock.Locker
	mailer      OTPSender
	google      auth.GoogleVerifier
	mailTimeout time.Duration
	now         Clock
}

func NewAuthService(
	userRepo repositories.UserRepository,
	hasher *auth.Hasher,
	locker lock.Locker,
	mailer OTPSender,
	cfg AuthServiceConfig,
) AuthService {
	if cfg.MailTimeout <= 0 {
		cfg.MailTimeout = 15 * time.Second
	}
	return &AuthServiceImpl{
		userRepo:    userRepo,
		hasher:      hasher,
		locker:      locker,
		mailer:      mailer,
		google:      cfg.Google,
		mailTimeout: cfg.MailTimeout,
		now:         defaultClock(cfg.Now),
	}
}

func otpLockKey(email string) string {
	return "user:" + email
}

// RequestOTP stores a fresh code on the unverified record for email and
// mails it. A verified account is left untouched.
func (s *AuthServiceImpl) RequestOTP(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	return withLock(ctx, s.locker, otpLockKey(email), func() error {
		code, err := auth.GenerateOTP()
		if err != nil {
			return apperrors.InternalError(err)
		}

		grant := repositories.OTPGrant{Code: code, ExpiresAt: s.now().Add(auth.OTPTTL)}
		if err := s.userRepo.UpsertPendingOTP(ctx, email, grant); err != nil {
			if errors.Is(err, repositories.ErrUserAlreadyVerified) {
				return apperrors.ErrAlreadyRegistered
			}
			return apperrors.InternalError(err)
		}

		return s.dispatch(ctx, email, code, models.OTPPurposeRegistration)
	})
}

// Register consumes the code and turns the pending record into an account.
func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserAuthResponse, error) {
	email := normalizeEmail(req.Email)

	hash, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		return nil, hashError("password", err)
	}

	user, err := s.userRepo.CompleteRegistration(ctx, email, req.OTP, s.now(), repositories.Registration{
		PasswordHash: hash,
		UniqueID:     uuid.NewString(),
	})
	if err != nil {
		return nil, s.otpFailure(ctx, email, err)
	}

	logger.CtxInfo(ctx, "User registered", "email", email)
	return &dto.UserAuthResponse{
		Message:   "User registered successfully!",
		UniqueID:  user.UniqueID,
		Favorites: user.Favorites,
	}, nil
}

func (s *AuthServiceImpl) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	return withLock(ctx, s.locker, otpLockKey(email), func() error {
		code, err := auth.GenerateOTP()
		if err != nil {
			return apperrors.InternalError(err)
		}

		grant := repositories.OTPGrant{Code: code, ExpiresAt: s.now().Add(auth.OTPTTL)}
		if err := s.userRepo.SetOTP(ctx, email, grant); err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return apperrors.ErrUserNotFound
			}
			return apperrors.InternalError(err)
		}

		return s.dispatch(ctx, email, code, models.OTPPurposePasswordReset)
	})
}

func (s *AuthServiceImpl) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	email := normalizeEmail(req.Email)

	hash, err := s.hasher.HashPassword(req.NewPassword)
	if err != nil {
		return hashError("newPassword", err)
	}

	if err := s.userRepo.ResetPassword(ctx, email, req.OTP, s.now(), hash); err != nil {
		return s.otpFailure(ctx, email, err)
	}

	logger.CtxInfo(ctx, "Password reset", "email", email)
	return nil
}

// Login fails the same way for an unknown email, an unverified account and
// a wrong password.
func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.UserAuthResponse, error) {
	email := normalizeEmail(req.Email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.hasher.BurnCompare(req.Password)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !s.hasher.CheckPasswordHash(req.Password, user.PasswordHash) || !user.IsVerified {
		return nil, apperrors.ErrInvalidCredentials
	}

	return &dto.UserAuthResponse{
		Message:   "Login successful!",
		UniqueID:  user.UniqueID,
		Favorites: user.Favorites,
	}, nil
}

// GoogleLogin signs in with a Google ID token, creating or verifying the
// account for its email as needed.
func (s *AuthServiceImpl) GoogleLogin(ctx context.Context, token string) (*dto.UserAuthResponse, error) {
	if s.google == nil {
		return nil, apperrors.ErrGoogleLoginDisabled
	}

	identity, err := s.google.Verify(ctx, token)
	if err != nil {
		logger.CtxWarn(ctx, "Google token rejected", "error", err)
		return nil, apperrors.ErrInvalidToken
	}
	email := normalizeEmail(identity.Email)

	var user *models.User
	err = withLock(ctx, s.locker, otpLockKey(email), func() error {
		var findErr error
		user, findErr = s.userRepo.FindByEmail(ctx, email)
		switch {
		case errors.Is(findErr, repositories.ErrUserNotFound):
			user = &models.User{Email: email, UniqueID: uuid.NewString(), Favorites: []models.Car{}}
			if err := s.userRepo.CreateVerified(ctx, user); err != nil {
				return apperrors.InternalError(err)
			}
			logger.CtxInfo(ctx, "User created from Google sign-in", "email", email)
		case findErr != nil:
			return apperrors.InternalError(findErr)
		case !user.IsVerified:
			user, findErr = s.userRepo.MarkVerified(ctx, email, uuid.NewString())
			if errors.Is(findErr, repositories.ErrUserAlreadyVerified) {
				// registered with a code in the meantime
				user, findErr = s.userRepo.FindByEmail(ctx, email)
			}
			if findErr != nil {
				return apperrors.InternalError(findErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.UserAuthResponse{
		Message:   "Login successful!",
		UniqueID:  user.UniqueID,
		Favorites: user.Favorites,
	}, nil
}

// otpFailure maps a rejected conditional update: an absent record is
// NotFound, anything else is an invalid or expired code.
func (s *AuthServiceImpl) otpFailure(ctx context.Context, email string, err error) error {
	if !errors.Is(err, repositories.ErrOTPRejected) {
		return apperrors.InternalError(err)
	}
	if _, findErr := s.userRepo.FindByEmail(ctx, email); findErr != nil {
		if errors.Is(findErr, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(findErr)
	}
	return apperrors.ErrInvalidOrExpiredOTP
}

// dispatch mails the code within mailTimeout. The code stays stored when
// delivery fails so a resend simply overwrites it.
func (s *AuthServiceImpl) dispatch(ctx context.Context, email, code string, purpose models.OTPPurpose) error {
	sendCtx, cancel := context.WithTimeout(ctx, s.mailTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.mailer.SendOTP(sendCtx, email, code, purpose)
	}()

	var err error
	select {
	case err = <-done:
	case <-sendCtx.Done():
		err = sendCtx.Err()
	}
	if err != nil {
		logger.CtxWithError(ctx, "Failed to send OTP email", err, "email", email, "purpose", purpose)
		return apperrors.ErrDeliveryFailed(err)
	}

	logger.CtxInfo(ctx, "OTP sent", "email", email, "purpose", purpose)
	return nil
}
