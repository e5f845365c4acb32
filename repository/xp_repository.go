package repository

import (
	"context"
	"errors"
	"fmt"

	"guildbot/database"
	"guildbot/domain/entities"
	"guildbot/infrastructure/observability"

	"github.com/jackc/pgx/v5"
)

// XPRepository implements the XPRepository interface, scoped to one guild
type XPRepository struct {
	q       queryable
	guildID int64
}

// NewXPRepository creates an XP repository for a guild outside a transaction
func NewXPRepository(db *database.DB, guildID int64) *XPRepository {
	return &XPRepository{q: db.Pool, guildID: guildID}
}

func newXPRepository(tx queryable, guildID int64) *XPRepository {
	return &XPRepository{q: tx, guildID: guildID}
}

const xpColumns = `guild_id, discord_id, xp, level, messages, updated_at`

func scanXPRecord(row pgx.Row) (*entities.XPRecord, error) {
	var rec entities.XPRecord
	if err := row.Scan(&rec.GuildID, &rec.DiscordID, &rec.XP, &rec.Level, &rec.Messages, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Get returns a member's record or nil
func (r *XPRepository) Get(ctx context.Context, discordID int64) (*entities.XPRecord, error) {
	query := `SELECT ` + xpColumns + ` FROM xp_records WHERE guild_id = $1 AND discord_id = $2`
	rec, err := scanXPRecord(r.q.QueryRow(ctx, query, r.guildID, discordID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get xp for %d in guild %d: %w", discordID, r.guildID, err)
	}
	return rec, nil
}

// GetForUpdate creates the record if needed and locks it
func (r *XPRepository) GetForUpdate(ctx context.Context, discordID int64) (*entities.XPRecord, error) {
	insert := `
		INSERT INTO xp_records (guild_id, discord_id)
		VALUES ($1, $2)
		ON CONFLICT (guild_id, discord_id) DO NOTHING
	`
	if _, err := r.q.Exec(ctx, insert, r.guildID, discordID); err != nil {
		return nil, fmt.Errorf("failed to create xp record for %d in guild %d: %w", discordID, r.guildID, err)
	}

	query := `SELECT ` + xpColumns + ` FROM xp_records WHERE guild_id = $1 AND discord_id = $2 FOR UPDATE`
	rec, err := scanXPRecord(r.q.QueryRow(ctx, query, r.guildID, discordID))
	if err != nil {
		return nil, fmt.Errorf("failed to lock xp record for %d in guild %d: %w", discordID, r.guildID, err)
	}
	return rec, nil
}

// Save writes xp, level and messages
func (r *XPRepository) Save(ctx context.Context, record *entities.XPRecord) error {
	query := `
		INSERT INTO xp_records (guild_id, discord_id, xp, level, messages)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (guild_id, discord_id) DO UPDATE
		SET xp = EXCLUDED.xp, level = EXCLUDED.level, messages = EXCLUDED.messages, updated_at = NOW()
		RETURNING updated_at
	`
	err := r.q.QueryRow(ctx, query, r.guildID, record.DiscordID, record.XP, record.Level, record.Messages).Scan(&record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save xp for %d in guild %d: %w", record.DiscordID, r.guildID, err)
	}
	record.GuildID = r.guildID
	return nil
}

// GetLeaderboard returns records ordered by level then xp
func (r *XPRepository) GetLeaderboard(ctx context.Context, limit int) ([]*entities.XPRecord, error) {
	defer observability.GetMetrics().MeasureDatabaseQuery("xp", "GetLeaderboard")()

	query := `
		SELECT ` + xpColumns + `
		FROM xp_records
		WHERE guild_id = $1
		ORDER BY level DESC, xp DESC, discord_id
		LIMIT $2
	`
	rows, err := r.q.Query(ctx, query, r.guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard for guild %d: %w", r.guildID, err)
	}
	defer rows.Close()

	var records []*entities.XPRecord
	for rows.Next() {
		rec, err := scanXPRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan xp record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaderboard: %w", err)
	}
	return records, nil
}

// Reset removes one member's record
func (r *XPRepository) Reset(ctx context.Context, discordID int64) (bool, error) {
	result, err := r.q.Exec(ctx, `DELETE FROM xp_records WHERE guild_id = $1 AND discord_id = $2`, r.guildID, discordID)
	if err != nil {
		return false, fmt.Errorf("failed to reset xp for %d in guild %d: %w", discordID, r.guildID, err)
	}
	return result.RowsAffected() > 0, nil
}

// ResetGuild removes every record in the guild
func (r *XPRepository) ResetGuild(ctx context.Context) (int64, error) {
	result, err := r.q.Exec(ctx, `DELETE FROM xp_records WHERE guild_id = $1`, r.guildID)
	if err != nil {
		return 0, fmt.Errorf("failed to reset xp in guild %d: %w", r.guildID, err)
	}
	return result.RowsAffected(), nil
}
