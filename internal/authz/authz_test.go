package authz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunewave/tunewave/internal/models"
)

func int64Ptr(v int64) *int64 { return &v }

func TestResolveOwnerFillsCaller(t *testing.T) {
	id, err := ResolveOwner(Principal{UserID: 7, Role: models.RoleUser}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func TestResolveOwnerAcceptsSelf(t *testing.T) {
	id, err := ResolveOwner(Principal{UserID: 7, Role: models.RoleUser}, int64Ptr(7))
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func TestResolveOwnerRejectsOtherUser(t *testing.T) {
	_, err := ResolveOwner(Principal{UserID: 7, Role: models.RoleUser}, int64Ptr(8))
	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestResolveOwnerAdminMayActForAnyone(t *testing.T) {
	id, err := ResolveOwner(Principal{UserID: 1, Role: models.RoleAdmin}, int64Ptr(8))
	require.NoError(t, err)
	assert.Equal(t, int64(8), id)
}

type ownedStub struct{ owner int64 }

func (o ownedStub) OwnerID() int64 { return o.owner }

func TestResolveOwnedResourceUnsetIDPasses(t *testing.T) {
	err := ResolveOwnedResource(context.Background(), Principal{UserID: 7, Role: models.RoleUser}, nil,
		func(context.Context, int64) (OwnedResource, error) {
			t.Fatal("fetch must not run for an unset id")
			return nil, nil
		})
	assert.NoError(t, err)
}

func TestResolveOwnedResourceOwnerPasses(t *testing.T) {
	err := ResolveOwnedResource(context.Background(), Principal{UserID: 7, Role: models.RoleUser}, int64Ptr(3),
		func(context.Context, int64) (OwnedResource, error) { return ownedStub{owner: 7}, nil })
	assert.NoError(t, err)
}

func TestResolveOwnedResourceStrangerForbidden(t *testing.T) {
	err := ResolveOwnedResource(context.Background(), Principal{UserID: 7, Role: models.RoleUser}, int64Ptr(3),
		func(context.Context, int64) (OwnedResource, error) { return ownedStub{owner: 8}, nil })
	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestResolveOwnedResourceAdminPasses(t *testing.T) {
	err := ResolveOwnedResource(context.Background(), Principal{UserID: 1, Role: models.RoleAdmin}, int64Ptr(3),
		func(context.Context, int64) (OwnedResource, error) { return ownedStub{owner: 8}, nil })
	assert.NoError(t, err)
}

func TestResolveOwnedResourcePropagatesFetchError(t *testing.T) {
	want := models.NewNotFoundError("track", 3)
	err := ResolveOwnedResource(context.Background(), Principal{UserID: 7, Role: models.RoleUser}, int64Ptr(3),
		func(context.Context, int64) (OwnedResource, error) { return nil, want })
	assert.ErrorIs(t, err, want)
}

func TestResolveUserOrPublic(t *testing.T) {
	caller := Principal{UserID: 7, Role: models.RoleUser}
	assert.Equal(t, int64(7), ResolveUserOrPublic(caller, nil))
	assert.Equal(t, int64(9), ResolveUserOrPublic(caller, int64Ptr(9)))
}

func TestRequireAdmin(t *testing.T) {
	assert.NoError(t, RequireAdmin(Principal{Role: models.RoleAdmin}))
	assert.ErrorIs(t, RequireAdmin(Principal{Role: models.RoleUser}), models.ErrForbidden)
	assert.ErrorIs(t, RequireAdmin(Principal{Role: models.RoleAnalyst}), models.ErrForbidden)
}

func TestRequireAnalyst(t *testing.T) {
	assert.NoError(t, RequireAnalyst(Principal{Role: models.RoleAnalyst}))
	assert.NoError(t, RequireAnalyst(Principal{Role: models.RoleAdmin}))
	assert.ErrorIs(t, RequireAnalyst(Principal{Role: models.RoleUser}), models.ErrForbidden)
}
