package user

import (
	"context"
	"testing"

	"sso-server/internal/shared/database/dbtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_CreateAndFind(t *testing.T) {
	db := dbtest.Setup(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, db, NewUser{
		Email:        "jane@example.com",
		ProviderName: ProviderGeneric,
		ProviderID:   "kc-123",
		Activated:    true,
		IP:           "203.0.113.7",
		Agent:        "curl/8.0",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Nil(t, created.InviteID)

	found, err := repo.FindByProviderIdentity(ctx, ProviderGeneric, "kc-123")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "curl/8.0", found.Agent)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "jane@example.com", byID.Email)
}

func TestRepository_FindByProviderIdentity_Absent(t *testing.T) {
	db := dbtest.Setup(t)
	repo := NewRepository(db)

	found, err := repo.FindByProviderIdentity(context.Background(), ProviderGeneric, "nobody")

	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRepository_Invites(t *testing.T) {
	db := dbtest.Setup(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, db, NewUser{Email: "jane@example.com", ProviderName: ProviderGeneric, ProviderID: "kc-1"})
	require.NoError(t, err)

	used, err := repo.InviteUsed(ctx, db, "invite-1")
	require.NoError(t, err)
	assert.False(t, used)

	require.NoError(t, repo.SetInviteID(ctx, db, created.ID, "invite-1"))

	used, err = repo.InviteUsed(ctx, db, "invite-1")
	require.NoError(t, err)
	assert.True(t, used)

	assert.Error(t, repo.SetInviteID(ctx, db, uuid.New(), "invite-2"))
}

func TestRepository_FindByEmail(t *testing.T) {
	db := dbtest.Setup(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, db, NewUser{
		Email:        "demo@example.com",
		ProviderName: ProviderLocal,
		Activated:    true,
	})
	require.NoError(t, err)

	found, err := repo.FindByEmail(ctx, "demo@example.com", ProviderLocal)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	other, err := repo.FindByEmail(ctx, "demo@example.com", ProviderGeneric)
	require.NoError(t, err)
	assert.Nil(t, other)
}
