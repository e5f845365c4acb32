package repository

import (
	"context"
	"fmt"

	"guildbot/database"
	"guildbot/domain/entities"
)

// WarningRepository implements the WarningRepository interface, scoped to one guild
type WarningRepository struct {
	q       queryable
	guildID int64
}

// NewWarningRepository creates a warning repository for a guild outside a transaction
func NewWarningRepository(db *database.DB, guildID int64) *WarningRepository {
	return &WarningRepository{q: db.Pool, guildID: guildID}
}

func newWarningRepository(tx queryable, guildID int64) *WarningRepository {
	return &WarningRepository{q: tx, guildID: guildID}
}

// Add appends a warning
func (r *WarningRepository) Add(ctx context.Context, warning *entities.Warning) error {
	query := `
		INSERT INTO warnings (guild_id, discord_id, issuer_id, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.q.QueryRow(ctx, query, r.guildID, warning.DiscordID, warning.IssuerID, warning.Reason).
		Scan(&warning.ID, &warning.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add warning for %d in guild %d: %w", warning.DiscordID, r.guildID, err)
	}
	warning.GuildID = r.guildID
	return nil
}

// ListByUser returns a member's warnings oldest first
func (r *WarningRepository) ListByUser(ctx context.Context, discordID int64) ([]*entities.Warning, error) {
	query := `
		SELECT id, guild_id, discord_id, issuer_id, reason, created_at
		FROM warnings
		WHERE guild_id = $1 AND discord_id = $2
		ORDER BY created_at, id
	`
	rows, err := r.q.Query(ctx, query, r.guildID, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list warnings for %d in guild %d: %w", discordID, r.guildID, err)
	}
	defer rows.Close()

	var warnings []*entities.Warning
	for rows.Next() {
		var w entities.Warning
		if err := rows.Scan(&w.ID, &w.GuildID, &w.DiscordID, &w.IssuerID, &w.Reason, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan warning: %w", err)
		}
		warnings = append(warnings, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate warnings: %w", err)
	}
	return warnings, nil
}

// CountByUser returns how many warnings a member has
func (r *WarningRepository) CountByUser(ctx context.Context, discordID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM warnings WHERE guild_id = $1 AND discord_id = $2`
	if err := r.q.QueryRow(ctx, query, r.guildID, discordID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count warnings for %d in guild %d: %w", discordID, r.guildID, err)
	}
	return count, nil
}

// ClearByUser removes all of a member's warnings
func (r *WarningRepository) ClearByUser(ctx context.Context, discordID int64) (int64, error) {
	result, err := r.q.Exec(ctx, `DELETE FROM warnings WHERE guild_id = $1 AND discord_id = $2`, r.guildID, discordID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear warnings for %d in guild %d: %w", discordID, r.guildID, err)
	}
	return result.RowsAffected(), nil
}
