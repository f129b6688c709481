package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahoneyreunion/reunion/internal/auth"
	"github.com/mahoneyreunion/reunion/internal/shared"
)

type stubRepo struct {
	users   map[int64]User
	nextID  int64
	deleted []int64
}

func newStubRepo(users ...User) *stubRepo {
	r := &stubRepo{users: map[int64]User{}, nextID: 100}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubRepo) List(_ context.Context, _ ListUsersFilter, _ shared.Pagination) ([]User, int, error) {
	out := make([]User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (r *stubRepo) Get(_ context.Context, id int64) (User, error) {
	u, ok := r.users[id]
	if !ok {
		return User{}, shared.ErrNotFound
	}
	return u, nil
}

func (r *stubRepo) Create(_ context.Context, email, name, passwordHash string, role auth.Role) (User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return User{}, shared.ErrDuplicate
		}
	}
	r.nextID++
	u := User{ID: r.nextID, Email: email, Name: name, Role: role, IsActive: true, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	r.users[u.ID] = u
	return u, nil
}

func (r *stubRepo) Update(_ context.Context, id int64, req UpdateUserRequest, _ *string) (User, error) {
	u, ok := r.users[id]
	if !ok {
		return User{}, shared.ErrNotFound
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if req.EmailVerified != nil {
		u.EmailVerified = *req.EmailVerified
	}
	r.users[id] = u
	return u, nil
}

func (r *stubRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.users, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func admin(id int64, role auth.Role) *auth.Principal {
	return &auth.Principal{ID: id, Email: "actor@example.com", Name: "Actor", Role: role}
}

func TestCreateAssignsOnlyManageableRoles(t *testing.T) {
	svc := NewService(newStubRepo(), nil, nil)
	actor := admin(1, auth.RoleAdmin)

	user, err := svc.Create(context.Background(), actor, CreateUserRequest{
		Email:    "new@example.com",
		Name:     "New Moderator",
		Password: "Sup3rSecret",
		Role:     auth.RoleModerator,
	})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleModerator, user.Role)
	assert.True(t, user.IsActive)

	_, err = svc.Create(context.Background(), actor, CreateUserRequest{
		Email:    "peer@example.com",
		Name:     "Peer Admin",
		Password: "Sup3rSecret",
		Role:     auth.RoleAdmin,
	})
	assert.ErrorIs(t, err, shared.ErrPermissionDenied)

	_, err = svc.Create(context.Background(), actor, CreateUserRequest{
		Email:    "boss@example.com",
		Name:     "Wannabe Boss",
		Password: "Sup3rSecret",
		Role:     auth.RoleSuperAdmin,
	})
	assert.ErrorIs(t, err, shared.ErrPermissionDenied)
}

func TestCreateRejectsWeakPasswordAndBadEmail(t *testing.T) {
	svc := NewService(newStubRepo(), nil, nil)
	actor := admin(1, auth.RoleSuperAdmin)

	_, err := svc.Create(context.Background(), actor, CreateUserRequest{
		Email: "not-an-email", Name: "X Y", Password: "Sup3rSecret", Role: auth.RoleViewer,
	})
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Create(context.Background(), actor, CreateUserRequest{
		Email: "ok@example.com", Name: "X Y", Password: "short", Role: auth.RoleViewer,
	})
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Create(context.Background(), actor, CreateUserRequest{
		Email: "ok@example.com", Name: "X Y", Password: "Sup3rSecret", Role: auth.Role("owner"),
	})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdateRoleChangeRequiresDominance(t *testing.T) {
	repo := newStubRepo(
		User{ID: 2, Email: "mod@example.com", Role: auth.RoleModerator, IsActive: true},
		User{ID: 3, Email: "boss@example.com", Role: auth.RoleSuperAdmin, IsActive: true},
	)
	svc := NewService(repo, nil, nil)
	actor := admin(1, auth.RoleAdmin)

	role := auth.RoleViewer
	user, err := svc.Update(context.Background(), actor, 2, UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleViewer, user.Role)

	// Promoting to or beyond the actor's own tier is refused.
	role = auth.RoleAdmin
	_, err = svc.Update(context.Background(), actor, 2, UpdateUserRequest{Role: &role})
	assert.ErrorIs(t, err, shared.ErrPermissionDenied)

	// Touching someone above the actor is refused outright.
	role = auth.RoleViewer
	_, err = svc.Update(context.Background(), actor, 3, UpdateUserRequest{Role: &role})
	assert.ErrorIs(t, err, shared.ErrPermissionDenied)
}

func TestUpdateRejectsSelfDeactivation(t *testing.T) {
	repo := newStubRepo(User{ID: 1, Email: "actor@example.com", Role: auth.RoleAdmin, IsActive: true})
	svc := NewService(repo, nil, nil)
	actor := admin(1, auth.RoleAdmin)

	inactive := false
	_, err := svc.Update(context.Background(), actor, 1, UpdateUserRequest{IsActive: &inactive})
	assert.ErrorIs(t, err, shared.ErrValidation)

	// Updating one's own name stays allowed.
	name := "Renamed Actor"
	user, err := svc.Update(context.Background(), actor, 1, UpdateUserRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Actor", user.Name)
}

func TestUpdateEmptyPatchRejected(t *testing.T) {
	repo := newStubRepo(User{ID: 2, Email: "mod@example.com", Role: auth.RoleModerator})
	svc := NewService(repo, nil, nil)

	_, err := svc.Update(context.Background(), admin(1, auth.RoleAdmin), 2, UpdateUserRequest{})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestDeleteGuards(t *testing.T) {
	repo := newStubRepo(
		User{ID: 1, Email: "actor@example.com", Role: auth.RoleAdmin},
		User{ID: 2, Email: "mod@example.com", Role: auth.RoleModerator},
		User{ID: 3, Email: "peer@example.com", Role: auth.RoleAdmin},
	)
	svc := NewService(repo, nil, nil)
	actor := admin(1, auth.RoleAdmin)

	err := svc.Delete(context.Background(), actor, 1)
	assert.ErrorIs(t, err, shared.ErrValidation, "self-delete must be refused")

	err = svc.Delete(context.Background(), actor, 3)
	assert.ErrorIs(t, err, shared.ErrPermissionDenied, "peers cannot delete each other")

	err = svc.Delete(context.Background(), actor, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, repo.deleted)

	err = svc.Delete(context.Background(), actor, 2)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAnonymousActorRejected(t *testing.T) {
	svc := NewService(newStubRepo(), nil, nil)

	_, err := svc.Create(context.Background(), nil, CreateUserRequest{})
	assert.ErrorIs(t, err, shared.ErrUnauthenticated)

	_, err = svc.Update(context.Background(), nil, 1, UpdateUserRequest{})
	assert.ErrorIs(t, err, shared.ErrUnauthenticated)

	err = svc.Delete(context.Background(), nil, 1)
	assert.ErrorIs(t, err, shared.ErrUnauthenticated)
}
