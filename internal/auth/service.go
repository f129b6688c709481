package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/mahoneyreunion/reunion/internal/shared"
)

// Service wraps authentication business rules: credential checks and the
// failed-attempt lockout counter.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Authenticate validates email/password credentials. Unknown email, wrong
// password and inactive accounts all return ErrInvalidCredentials; only the
// lockout state is surfaced distinctly, because "try again later" is
// actionable rather than secret.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*AdminUser, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if IsAccountLocked(user.FailedLoginAttempts, user.LockedUntil) {
		return nil, shared.ErrAccountLocked
	}
	if !user.IsActive {
		return nil, shared.ErrInvalidCredentials
	}
	if !VerifyPassword(password, user.PasswordHash) {
		attempts := user.FailedLoginAttempts + 1
		lockedUntil := lockExpiryFrom(attempts, s.now())
		if err := s.repo.RecordLoginFailure(ctx, user.ID, attempts, lockedUntil); err != nil && s.logger != nil {
			s.logger.Warn("record login failure", slog.Any("error", err))
		}
		return nil, shared.ErrInvalidCredentials
	}
	if err := s.repo.RecordLoginSuccess(ctx, user.ID, s.now()); err != nil && s.logger != nil {
		s.logger.Warn("record login success", slog.Any("error", err))
	}
	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	return user, nil
}
