package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahoneyreunion/reunion/internal/shared"
)

func TestRolePermissionsMonotonicInclusion(t *testing.T) {
	tiers := Roles()
	for i := 1; i < len(tiers); i++ {
		lower := RolePermissions(tiers[i-1])
		higher := make(map[Permission]struct{})
		for _, p := range RolePermissions(tiers[i]) {
			higher[p] = struct{}{}
		}
		for _, p := range lower {
			_, ok := higher[p]
			assert.True(t, ok, "%s should inherit %s from %s", tiers[i], p, tiers[i-1])
		}
	}
}

func TestRolePermissionsUnknownRole(t *testing.T) {
	assert.Empty(t, RolePermissions(Role("owner")))
	assert.Empty(t, RolePermissions(Role("")))
}

func TestRolePermissionsReturnsCopy(t *testing.T) {
	grants := RolePermissions(RoleViewer)
	require.NotEmpty(t, grants)
	grants[0] = Permission("mutated")
	assert.NotContains(t, RolePermissions(RoleViewer), Permission("mutated"))
}

func TestCanManageRole(t *testing.T) {
	cases := []struct {
		actor, target Role
		want          bool
	}{
		{RoleSuperAdmin, RoleAdmin, true},
		{RoleSuperAdmin, RoleViewer, true},
		{RoleSuperAdmin, RoleSuperAdmin, false},
		{RoleAdmin, RoleSuperAdmin, false},
		{RoleAdmin, RoleAdmin, false},
		{RoleAdmin, RoleModerator, true},
		{RoleModerator, RoleViewer, true},
		{RoleViewer, RoleViewer, false},
		{Role("owner"), RoleViewer, false},
		{RoleSuperAdmin, Role("owner"), false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanManageRole(tc.actor, tc.target), "%s manages %s", tc.actor, tc.target)
	}
}

func TestUserHasPermission(t *testing.T) {
	admin := &Principal{ID: 1, Role: RoleAdmin}
	assert.True(t, UserHasPermission(admin, PermTasksEdit))
	assert.False(t, UserHasPermission(admin, PermUsersDelete))
	assert.True(t, UserHasPermission(&Principal{Role: RoleSuperAdmin}, PermUsersDelete))
	assert.False(t, UserHasPermission(nil, PermTasksView))
	assert.False(t, UserHasPermission(&Principal{Role: Role("owner")}, PermTasksView))
}

func TestRequirePermission(t *testing.T) {
	err := RequirePermission(&Principal{Role: RoleViewer}, PermUsersEdit)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrPermissionDenied)
	assert.Contains(t, err.Error(), string(PermUsersEdit))

	assert.ErrorIs(t, RequirePermission(nil, PermUsersView), shared.ErrUnauthenticated)
	assert.NoError(t, RequirePermission(&Principal{Role: RoleViewer}, PermUsersView))
}

func TestCanAccessTab(t *testing.T) {
	viewer := &Principal{Role: RoleViewer}
	admin := &Principal{Role: RoleAdmin}

	assert.True(t, CanAccessTab(viewer, "messages"))
	assert.True(t, CanAccessTab(viewer, "overview"))
	assert.False(t, CanAccessTab(viewer, "activity"))
	assert.True(t, CanAccessTab(admin, "activity"))
	assert.True(t, CanAccessTab(admin, "pages"))

	// Anonymous and unknown tabs are always denied.
	assert.False(t, CanAccessTab(nil, "messages"))
	assert.False(t, CanAccessTab(admin, "billing"))
	assert.False(t, CanAccessTab(&Principal{Role: Role("owner")}, "overview"))
}
