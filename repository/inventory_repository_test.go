package repository

import (
	"context"
	"testing"

	"guildbot/domain/entities"
	"guildbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryRepository(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewInventoryRepository(testDB.DB)
	ctx := context.Background()

	count, err := repo.GetCount(ctx, 1, "chef")
	require.NoError(t, err)
	assert.Zero(t, count)

	removed, err := repo.RemoveOne(ctx, 1, "chef")
	require.NoError(t, err)
	assert.False(t, removed)

	require.NoError(t, repo.AddItem(ctx, 1, "chef", 1))
	require.NoError(t, repo.AddItem(ctx, 1, "chef", 2))
	require.NoError(t, repo.AddItem(ctx, 1, "doctor", 1))
	assert.Error(t, repo.AddItem(ctx, 1, "doctor", 0))

	removed, err = repo.RemoveOne(ctx, 1, "doctor")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.RemoveOne(ctx, 1, "doctor")
	require.NoError(t, err)
	assert.False(t, removed, "count never goes below zero")

	items, err := repo.GetByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "chef", items[0].Item)
	assert.Equal(t, int64(3), items[0].Count)
}

func TestPetRepository(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPetRepository(testDB.DB)
	ctx := context.Background()

	pet, err := repo.GetByDiscordID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, pet)

	require.NoError(t, repo.Create(ctx, &entities.Pet{DiscordID: 1, Type: "dragon", Strength: 77}))

	pet, err = repo.GetByDiscordID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, pet)
	assert.Equal(t, "dragon", pet.Type)
	assert.Equal(t, int64(77), pet.Strength)
	assert.False(t, pet.CreatedAt.IsZero())

	err = repo.Create(ctx, &entities.Pet{DiscordID: 1, Type: "cat", Strength: 60})
	assert.Error(t, err, "a user can own at most one pet")

	err = repo.Create(ctx, &entities.Pet{DiscordID: 2, Type: "cat", Strength: 120})
	assert.Error(t, err, "strength is bounded by the schema")
}
