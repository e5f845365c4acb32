package services

import (
	"context"
	"fmt"
	"strings"

	"guildbot/domain/entities"
	"guildbot/domain/interfaces"
)

type playlistService struct {
	playlistRepo interfaces.PlaylistRepository
}

// NewPlaylistService creates a new playlist service
func NewPlaylistService(playlistRepo interfaces.PlaylistRepository) interfaces.PlaylistService {
	return &playlistService{playlistRepo: playlistRepo}
}

func (s *playlistService) CreatePlaylist(ctx context.Context, name, songs string, creatorID int64) (*entities.Playlist, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, entities.NewValidationError("Please provide a playlist name!")
	}

	var list []string
	for _, song := range strings.Split(songs, ",") {
		if song = strings.TrimSpace(song); song != "" {
			list = append(list, song)
		}
	}
	if len(list) == 0 {
		return nil, entities.NewValidationError("Please provide at least one song, separated by commas!")
	}

	playlist := &entities.Playlist{
		Name:      name,
		Songs:     list,
		CreatedBy: creatorID,
	}
	if err := s.playlistRepo.Upsert(ctx, playlist); err != nil {
		return nil, fmt.Errorf("failed to save playlist: %w", err)
	}
	return playlist, nil
}

func (s *playlistService) GetPlaylist(ctx context.Context, name string) (*entities.Playlist, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	playlist, err := s.playlistRepo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}
	if playlist == nil {
		return nil, entities.NewValidationError("Playlist '%s' not found!", name)
	}
	return playlist, nil
}

func (s *playlistService) ListPlaylists(ctx context.Context) ([]*entities.Playlist, error) {
	playlists, err := s.playlistRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	return playlists, nil
}

// MoodSongs returns the built-in songs for a mood
func MoodSongs(mood string) ([]string, error) {
	songs, ok := entities.MoodPlaylists[strings.ToLower(strings.TrimSpace(mood))]
	if !ok {
		return nil, entities.NewValidationError("Invalid mood! Available moods: %s", strings.Join(entities.MoodNames, ", "))
	}
	return songs, nil
}
