package users

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mahoneyreunion/reunion/internal/auth"
	"github.com/mahoneyreunion/reunion/internal/shared"
)

// Service enforces the account management rules on top of the repository.
type Service struct {
	repo     Repository
	activity *shared.ActivityRecorder
	logger   *slog.Logger
}

func NewService(repo Repository, activity *shared.ActivityRecorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, activity: activity, logger: logger}
}

func (s *Service) List(ctx context.Context, filter ListUsersFilter, page shared.Pagination) ([]User, int, error) {
	return s.repo.List(ctx, filter, page)
}

func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	return s.repo.Get(ctx, id)
}

// Create provisions a new admin account. The actor can only assign roles it
// is allowed to manage, so nobody creates an account at or above their own tier.
func (s *Service) Create(ctx context.Context, actor *auth.Principal, req CreateUserRequest) (User, error) {
	if actor == nil {
		return User{}, shared.ErrUnauthenticated
	}
	if !auth.ValidateEmail(req.Email) {
		return User{}, fmt.Errorf("%w: invalid email address", shared.ErrValidation)
	}
	if check := auth.ValidatePassword(req.Password); !check.Valid {
		return User{}, fmt.Errorf("%w: %s", shared.ErrValidation, check.Errors[0])
	}
	if !req.Role.Known() {
		return User{}, fmt.Errorf("%w: unknown role %q", shared.ErrValidation, req.Role)
	}
	if !auth.CanManageRole(actor.Role, req.Role) {
		return User{}, fmt.Errorf("%w: cannot assign role %s", shared.ErrPermissionDenied, req.Role)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return User{}, err
	}
	user, err := s.repo.Create(ctx, req.Email, req.Name, hash, req.Role)
	if err != nil {
		return User{}, err
	}
	s.record(ctx, actor, "user.create", user.ID, map[string]any{"email": user.Email, "role": user.Role})
	return user, nil
}

// Update applies a sparse patch. Role changes require the actor to manage
// both the current and the requested role, and nobody can deactivate
// themselves.
func (s *Service) Update(ctx context.Context, actor *auth.Principal, id int64, req UpdateUserRequest) (User, error) {
	if actor == nil {
		return User{}, shared.ErrUnauthenticated
	}
	if req.empty() {
		return User{}, fmt.Errorf("%w: no fields to update", shared.ErrValidation)
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return User{}, err
	}

	if req.Email != nil && !auth.ValidateEmail(*req.Email) {
		return User{}, fmt.Errorf("%w: invalid email address", shared.ErrValidation)
	}
	var passwordHash *string
	if req.Password != nil {
		if check := auth.ValidatePassword(*req.Password); !check.Valid {
			return User{}, fmt.Errorf("%w: %s", shared.ErrValidation, check.Errors[0])
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return User{}, err
		}
		passwordHash = &hash
	}
	if req.Role != nil {
		if !req.Role.Known() {
			return User{}, fmt.Errorf("%w: unknown role %q", shared.ErrValidation, *req.Role)
		}
		if !auth.CanManageRole(actor.Role, existing.Role) || !auth.CanManageRole(actor.Role, *req.Role) {
			return User{}, fmt.Errorf("%w: cannot change role of %s", shared.ErrPermissionDenied, existing.Email)
		}
	}
	if req.IsActive != nil && !*req.IsActive && id == actor.ID {
		return User{}, fmt.Errorf("%w: cannot deactivate own account", shared.ErrValidation)
	}

	user, err := s.repo.Update(ctx, id, req, passwordHash)
	if err != nil {
		return User{}, err
	}
	s.record(ctx, actor, "user.update", user.ID, map[string]any{"email": user.Email})
	return user, nil
}

// Delete removes an account. Self-deletion is always rejected; deleting
// anyone else requires the actor to outrank them.
func (s *Service) Delete(ctx context.Context, actor *auth.Principal, id int64) error {
	if actor == nil {
		return shared.ErrUnauthenticated
	}
	if id == actor.ID {
		return fmt.Errorf("%w: cannot delete own account", shared.ErrValidation)
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanManageRole(actor.Role, existing.Role) {
		return fmt.Errorf("%w: cannot delete %s", shared.ErrPermissionDenied, existing.Role)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, "user.delete", id, map[string]any{"email": existing.Email, "role": existing.Role})
	return nil
}

func (s *Service) record(ctx context.Context, actor *auth.Principal, action string, id int64, meta map[string]any) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:  actor.ID,
		Action:   action,
		Entity:   "admin_user",
		EntityID: fmt.Sprintf("%d", id),
		Meta:     meta,
	}); err != nil {
		s.logger.Warn("record activity", slog.String("action", action), slog.Any("error", err))
	}
}
