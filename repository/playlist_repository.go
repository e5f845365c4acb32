package repository

import (
	"context"
	"errors"
	"fmt"

	"guildbot/database"
	"guildbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

// PlaylistRepository implements the PlaylistRepository interface, scoped to one guild
type PlaylistRepository struct {
	q       queryable
	guildID int64
}

// NewPlaylistRepository creates a playlist repository for a guild outside a transaction
func NewPlaylistRepository(db *database.DB, guildID int64) *PlaylistRepository {
	return &PlaylistRepository{q: db.Pool, guildID: guildID}
}

func newPlaylistRepository(tx queryable, guildID int64) *PlaylistRepository {
	return &PlaylistRepository{q: tx, guildID: guildID}
}

const playlistColumns = `id, guild_id, name, songs, created_by, created_at`

func scanPlaylist(row pgx.Row) (*entities.Playlist, error) {
	var p entities.Playlist
	if err := row.Scan(&p.ID, &p.GuildID, &p.Name, &p.Songs, &p.CreatedBy, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert creates or replaces a playlist by name
func (r *PlaylistRepository) Upsert(ctx context.Context, playlist *entities.Playlist) error {
	query := `
		INSERT INTO playlists (guild_id, name, songs, created_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (guild_id, name) DO UPDATE
		SET songs = EXCLUDED.songs, created_by = EXCLUDED.created_by
		RETURNING id, created_at
	`
	err := r.q.QueryRow(ctx, query, r.guildID, playlist.Name, playlist.Songs, playlist.CreatedBy).
		Scan(&playlist.ID, &playlist.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save playlist %q in guild %d: %w", playlist.Name, r.guildID, err)
	}
	playlist.GuildID = r.guildID
	return nil
}

// GetByName returns a playlist or nil
func (r *PlaylistRepository) GetByName(ctx context.Context, name string) (*entities.Playlist, error) {
	query := `SELECT ` + playlistColumns + ` FROM playlists WHERE guild_id = $1 AND name = $2`
	p, err := scanPlaylist(r.q.QueryRow(ctx, query, r.guildID, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist %q in guild %d: %w", name, r.guildID, err)
	}
	return p, nil
}

// List returns every playlist in the guild ordered by name
func (r *PlaylistRepository) List(ctx context.Context) ([]*entities.Playlist, error) {
	query := `SELECT ` + playlistColumns + ` FROM playlists WHERE guild_id = $1 ORDER BY name`
	rows, err := r.q.Query(ctx, query, r.guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists in guild %d: %w", r.guildID, err)
	}
	defer rows.Close()

	var playlists []*entities.Playlist
	for rows.Next() {
		p, err := scanPlaylist(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlists = append(playlists, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate playlists: %w", err)
	}
	return playlists, nil
}
