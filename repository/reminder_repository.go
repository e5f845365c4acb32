package repository

import (
	"context"
	"fmt"
	"time"

	"guildbot/database"
	"guildbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

// ReminderRepository implements the ReminderRepository interface.
// Create and ListPending use the guild scope; claiming spans every guild.
type ReminderRepository struct {
	q       queryable
	guildID int64
}

// NewReminderRepository creates a reminder repository outside a transaction
func NewReminderRepository(db *database.DB, guildID int64) *ReminderRepository {
	return &ReminderRepository{q: db.Pool, guildID: guildID}
}

func newReminderRepository(tx queryable, guildID int64) *ReminderRepository {
	return &ReminderRepository{q: tx, guildID: guildID}
}

const reminderColumns = `id, guild_id, channel_id, discord_id, message, due_at, delivered_at, created_at`

func collectReminders(rows pgx.Rows) ([]*entities.Reminder, error) {
	defer rows.Close()

	var reminders []*entities.Reminder
	for rows.Next() {
		var rem entities.Reminder
		err := rows.Scan(&rem.ID, &rem.GuildID, &rem.ChannelID, &rem.DiscordID, &rem.Message,
			&rem.DueAt, &rem.DeliveredAt, &rem.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, &rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reminders: %w", err)
	}
	return reminders, nil
}

// Create stores a reminder for the repository's guild
func (r *ReminderRepository) Create(ctx context.Context, reminder *entities.Reminder) error {
	query := `
		INSERT INTO reminders (guild_id, channel_id, discord_id, message, due_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.q.QueryRow(ctx, query, r.guildID, reminder.ChannelID, reminder.DiscordID, reminder.Message, reminder.DueAt).
		Scan(&reminder.ID, &reminder.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create reminder for %d: %w", reminder.DiscordID, err)
	}
	reminder.GuildID = r.guildID
	return nil
}

// ClaimDue locks undelivered reminders due at or before now.
// Rows locked by another worker are skipped.
func (r *ReminderRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*entities.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM reminders
		WHERE delivered_at IS NULL AND due_at <= $1
		ORDER BY due_at, id
		LIMIT $2
		FOR UPDATE SKIP LOCKED
	`
	rows, err := r.q.Query(ctx, query, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to claim due reminders: %w", err)
	}
	return collectReminders(rows)
}

// MarkDelivered stamps a reminder as delivered
func (r *ReminderRepository) MarkDelivered(ctx context.Context, id int64, at time.Time) error {
	result, err := r.q.Exec(ctx, `UPDATE reminders SET delivered_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("failed to mark reminder %d delivered: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("reminder %d: %w", id, entities.ErrNotFound)
	}
	return nil
}

// ListPending returns a member's undelivered reminders in the guild, soonest first
func (r *ReminderRepository) ListPending(ctx context.Context, discordID int64) ([]*entities.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM reminders
		WHERE guild_id = $1 AND discord_id = $2 AND delivered_at IS NULL
		ORDER BY due_at, id
	`
	rows, err := r.q.Query(ctx, query, r.guildID, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders for %d: %w", discordID, err)
	}
	return collectReminders(rows)
}
