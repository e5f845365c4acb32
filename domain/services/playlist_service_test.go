package services

import (
	"context"
	"testing"

	"guildbot/domain/entities"
	"guildbot/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPlaylistService_CreatePlaylist(t *testing.T) {
	ctx := context.Background()
	mockPlaylistRepo := new(testhelpers.MockPlaylistRepository)
	service := NewPlaylistService(mockPlaylistRepo)

	mockPlaylistRepo.On("Upsert", ctx, mock.MatchedBy(func(p *entities.Playlist) bool {
		return p.Name == "road trip" && len(p.Songs) == 2 && p.Songs[1] == "Africa Toto"
	})).Return(nil)

	playlist, err := service.CreatePlaylist(ctx, " Road Trip ", "Bohemian Rhapsody,  Africa Toto , ,", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bohemian Rhapsody", "Africa Toto"}, playlist.Songs)
	mockPlaylistRepo.AssertExpectations(t)

	_, err = service.CreatePlaylist(ctx, "empty", " , ", 5)
	assert.True(t, entities.IsValidationError(err))

	_, err = service.CreatePlaylist(ctx, "", "song", 5)
	assert.True(t, entities.IsValidationError(err))
}

func TestPlaylistService_GetPlaylist(t *testing.T) {
	ctx := context.Background()
	mockPlaylistRepo := new(testhelpers.MockPlaylistRepository)
	service := NewPlaylistService(mockPlaylistRepo)

	mockPlaylistRepo.On("GetByName", ctx, "missing").Return(nil, nil)
	mockPlaylistRepo.On("GetByName", ctx, "chill").Return(&entities.Playlist{Name: "chill", Songs: []string{"a"}}, nil)

	_, err := service.GetPlaylist(ctx, "Missing")
	require.Error(t, err)
	assert.Equal(t, "Playlist 'missing' not found!", err.Error())

	playlist, err := service.GetPlaylist(ctx, "chill")
	require.NoError(t, err)
	assert.Equal(t, "chill", playlist.Name)
}

func TestMoodSongs(t *testing.T) {
	songs, err := MoodSongs("Happy")
	require.NoError(t, err)
	assert.Len(t, songs, 5)
	assert.Equal(t, "Mr. Blue Sky ELO", songs[0])

	for _, mood := range entities.MoodNames {
		songs, err := MoodSongs(mood)
		require.NoError(t, err)
		assert.Len(t, songs, 5)
	}

	_, err = MoodSongs("angry")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "happy, sad, study, workout, party")
}
