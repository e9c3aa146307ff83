// Package authz decides whether an authenticated caller may act on a
// resource. Requests reference resources either by carrying the owner id
// directly or by carrying a resource id whose owner has to be looked up;
// both shapes funnel into the same owner-or-admin rule.
package authz

import (
	"context"

	"github.com/tunewave/tunewave/internal/models"
)

// Principal is the authenticated caller as decoded from the session token.
type Principal struct {
	UserID int64
	Role   models.UserRole
}

// IsAdmin reports whether the caller holds the admin role.
func (p Principal) IsAdmin() bool { return p.Role == models.RoleAdmin }

// OwnedResource is any resource that knows its owning user.
type OwnedResource interface {
	OwnerID() int64
}

// ResolveOwner applies the owner-or-admin rule to a body that carries the
// owner id itself. An unset id is filled with the caller; a set id must be
// the caller's own unless the caller is an admin.
func ResolveOwner(caller Principal, ownerID *int64) (int64, error) {
	if ownerID == nil {
		return caller.UserID, nil
	}
	if *ownerID == caller.UserID || caller.IsAdmin() {
		return *ownerID, nil
	}
	return 0, models.ErrForbidden
}

// ResolveOwnedResource applies the owner-or-admin rule to a body that
// references a resource by id: the resource is fetched, its owner extracted,
// and the rule applied. An unset id passes the caller through untouched.
// Fetch failures (typically not-found) propagate so the caller sees the
// resource's own error, not a permission error.
func ResolveOwnedResource(
	ctx context.Context,
	caller Principal,
	id *int64,
	fetch func(context.Context, int64) (OwnedResource, error),
) error {
	if id == nil {
		return nil
	}
	resource, err := fetch(ctx, *id)
	if err != nil {
		return err
	}
	if resource.OwnerID() == caller.UserID || caller.IsAdmin() {
		return nil
	}
	return models.ErrForbidden
}

// ResolveUserOrPublic handles public reads: an unset id means the caller, a
// set id may be any user's.
func ResolveUserOrPublic(caller Principal, id *int64) int64 {
	if id == nil {
		return caller.UserID
	}
	return *id
}

// RequireAdmin rejects every caller without the admin role.
func RequireAdmin(caller Principal) error {
	if caller.IsAdmin() {
		return nil
	}
	return models.ErrForbidden
}

// RequireAnalyst admits analysts and admins; used by the aggregation
// endpoints.
func RequireAnalyst(caller Principal) error {
	if caller.Role == models.RoleAnalyst || caller.IsAdmin() {
		return nil
	}
	return models.ErrForbidden
}
