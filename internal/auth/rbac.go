package auth

import (
	"fmt"

	"github.com/mahoneyreunion/reunion/internal/shared"
)

// Permission is an atomic capability. The catalog is closed: permissions are
// granted per role tier at compile time and never mutated at runtime.
type Permission string

const (
	PermMessagesView   Permission = "messages.view"
	PermMessagesEdit   Permission = "messages.edit"
	PermMessagesDelete Permission = "messages.delete"

	PermUsersView   Permission = "users.view"
	PermUsersCreate Permission = "users.create"
	PermUsersEdit   Permission = "users.edit"
	PermUsersDelete Permission = "users.delete"

	PermFilesView   Permission = "files.view"
	PermFilesUpload Permission = "files.upload"
	PermFilesDelete Permission = "files.delete"

	PermTasksView   Permission = "tasks.view"
	PermTasksCreate Permission = "tasks.create"
	PermTasksEdit   Permission = "tasks.edit"
	PermTasksDelete Permission = "tasks.delete"

	PermMeetingsView   Permission = "meetings.view"
	PermMeetingsCreate Permission = "meetings.create"
	PermMeetingsEdit   Permission = "meetings.edit"
	PermMeetingsDelete Permission = "meetings.delete"

	PermActivityView Permission = "activity.view"
	PermPagesManage  Permission = "pages.manage"
)

// Tiers are cumulative: each slice extends the one below it, so every
// permission held by a lower tier is held by all higher tiers.
var (
	viewerGrants = []Permission{
		PermMessagesView,
		PermUsersView,
		PermFilesView,
		PermTasksView,
		PermMeetingsView,
	}

	moderatorGrants = extend(viewerGrants,
		PermMessagesEdit,
		PermMessagesDelete,
		PermTasksCreate,
		PermTasksEdit,
		PermMeetingsCreate,
		PermMeetingsEdit,
		PermFilesUpload,
	)

	adminGrants = extend(moderatorGrants,
		PermUsersCreate,
		PermUsersEdit,
		PermTasksDelete,
		PermMeetingsDelete,
		PermFilesDelete,
		PermPagesManage,
		PermActivityView,
	)

	superAdminGrants = extend(adminGrants,
		PermUsersDelete,
	)
)

var rolePermissions = map[Role][]Permission{
	RoleViewer:     viewerGrants,
	RoleModerator:  moderatorGrants,
	RoleAdmin:      adminGrants,
	RoleSuperAdmin: superAdminGrants,
}

func extend(base []Permission, extra ...Permission) []Permission {
	grants := make([]Permission, 0, len(base)+len(extra))
	grants = append(grants, base...)
	grants = append(grants, extra...)
	return grants
}

// RolePermissions returns the permissions granted to a role. Unknown roles
// hold nothing. Callers receive a copy; the underlying table is immutable.
func RolePermissions(role Role) []Permission {
	grants, ok := rolePermissions[role]
	if !ok {
		return nil
	}
	out := make([]Permission, len(grants))
	copy(out, grants)
	return out
}

// HasPermission reports whether the role holds the permission.
func HasPermission(role Role, perm Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}

// UserHasPermission reports whether the principal holds the permission.
// A nil principal holds nothing, so callers need no separate nil check.
func UserHasPermission(p *Principal, perm Permission) bool {
	if p == nil {
		return false
	}
	return HasPermission(p.Role, perm)
}

// CanManageRole reports whether an actor may edit the role of, or delete, a
// principal holding targetRole. The rule is strict tier dominance: equal or
// higher tiers are always rejected, regardless of the actor's permission
// flags, and unrecognised roles on either side are rejected.
func CanManageRole(actor, target Role) bool {
	if !actor.Known() || !target.Known() {
		return false
	}
	return actor.Tier() > target.Tier()
}

// RequirePermission returns an error wrapping shared.ErrPermissionDenied
// when the principal lacks the permission. The permission name travels in
// the error for server logs; route handlers map it to a plain 403.
func RequirePermission(p *Principal, perm Permission) error {
	if p == nil {
		return shared.ErrUnauthenticated
	}
	if !HasPermission(p.Role, perm) {
		return fmt.Errorf("%w: %s", shared.ErrPermissionDenied, perm)
	}
	return nil
}

// tabPermissions maps admin-UI sections to the permission required to open
// them. The overview tab needs only an authenticated principal with a
// recognised role.
var tabPermissions = map[string]Permission{
	"overview": "",
	"messages": PermMessagesView,
	"users":    PermUsersView,
	"files":    PermFilesView,
	"tasks":    PermTasksView,
	"meetings": PermMeetingsView,
	"activity": PermActivityView,
	"pages":    PermPagesManage,
}

// CanAccessTab reports whether the principal may open the named admin tab.
// Unrecognised tab names are always denied.
func CanAccessTab(p *Principal, tab string) bool {
	perm, ok := tabPermissions[tab]
	if !ok || p == nil {
		return false
	}
	if perm == "" {
		return p.Role.Known()
	}
	return HasPermission(p.Role, perm)
}
