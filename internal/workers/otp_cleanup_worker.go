package workers

import (
	"context"
	"fmt"
	"time"

	"cars2customer_backend/internal/logger"
	"cars2customer_backend/internal/repositories"

	"github.com/robfig/cron/v3"
)

const otpCleanupWorker = "otp_cleanup"

// OTPCleanupWorker ages out abandoned sign-ups and leftover codes.
type OTPCleanupWorker struct {
	users     repositories.UserRepository
	schedule  string
	retention time.Duration
	now       func() time.Time
	cron      *cron.Cron
}

func NewOTPCleanupWorker(users repositories.UserRepository, schedule string, retention time.Duration) *OTPCleanupWorker {
	if schedule == "" {
		schedule = "@every 10m"
	}
	if retention <= 0 {
		retention = 24 * time.Hour
	}
	return &OTPCleanupWorker{
		users:     users,
		schedule:  schedule,
		retention: retention,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Start schedules the job and stops it when ctx is done.
func (w *OTPCleanupWorker) Start(ctx context.Context) error {
	w.cron = cron.New(cron.WithChain(cron.Recover(cron.DiscardLogger)))
	if _, err := w.cron.AddFunc(w.schedule, func() { w.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid otp cleanup schedule %q: %w", w.schedule, err)
	}
	w.cron.Start()
	logger.Info("OTP cleanup worker started", "schedule", w.schedule, "retention", w.retention)

	go func() {
		<-ctx.Done()
		<-w.cron.Stop().Done()
		logger.Info("OTP cleanup worker stopped")
	}()
	return nil
}

// RunOnce deletes unverified records whose code expired more than the
// retention ago, then clears expired codes from verified accounts.
func (w *OTPCleanupWorker) RunOnce(ctx context.Context) {
	now := w.now()

	deleted, err := w.users.DeleteStaleUnverified(ctx, now.Add(-w.retention))
	if err != nil {
		logger.WorkerLog(otpCleanupWorker, "delete_stale_unverified", err)
	} else if deleted > 0 {
		logger.WorkerLog(otpCleanupWorker, "delete_stale_unverified", nil, "deleted", deleted)
	}

	cleared, err := w.users.ClearExpiredOTPs(ctx, now)
	if err != nil {
		logger.WorkerLog(otpCleanupWorker, "clear_expired_otps", err)
	} else if cleared > 0 {
		logger.WorkerLog(otpCleanupWorker, "clear_expired_otps", nil, "cleared", cleared)
	}
}
