package repository

import (
	"context"
	"testing"

	"guildbot/domain/entities"
	"guildbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaylistRepository(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	repo := NewPlaylistRepository(testDB.DB, 10)

	missing, err := repo.GetByName(ctx, "road trip")
	require.NoError(t, err)
	assert.Nil(t, missing)

	trip := &entities.Playlist{Name: "road trip", Songs: []string{"Africa Toto", "Holiday Green Day"}, CreatedBy: 1}
	require.NoError(t, repo.Upsert(ctx, trip))
	assert.NotZero(t, trip.ID)

	chill := &entities.Playlist{Name: "chill", Songs: []string{"Weightless"}, CreatedBy: 2}
	require.NoError(t, repo.Upsert(ctx, chill))

	replaced := &entities.Playlist{Name: "road trip", Songs: []string{"Life is a Highway"}, CreatedBy: 3}
	require.NoError(t, repo.Upsert(ctx, replaced))
	assert.Equal(t, trip.ID, replaced.ID)

	got, err := repo.GetByName(ctx, "road trip")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"Life is a Highway"}, got.Songs)
	assert.Equal(t, int64(3), got.CreatedBy)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "chill", list[0].Name)
	assert.Equal(t, "road trip", list[1].Name)

	others, err := NewPlaylistRepository(testDB.DB, 20).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, others)
}
