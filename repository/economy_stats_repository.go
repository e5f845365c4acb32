package repository

import (
	"context"
	"fmt"

	"guildbot/database"
	"guildbot/domain/entities"
)

// EconomyStatsRepository implements the EconomyStatsRepository interface
type EconomyStatsRepository struct {
	q queryable
}

// NewEconomyStatsRepository creates a new economy stats repository
func NewEconomyStatsRepository(db *database.DB) *EconomyStatsRepository {
	return &EconomyStatsRepository{q: db.Pool}
}

func newEconomyStatsRepository(tx queryable) *EconomyStatsRepository {
	return &EconomyStatsRepository{q: tx}
}

// GetOrCreate returns a user's counters including per-job counts
func (r *EconomyStatsRepository) GetOrCreate(ctx context.Context, discordID int64) (*entities.EconomyStats, error) {
	if err := r.ensure(ctx, discordID); err != nil {
		return nil, err
	}

	stats := &entities.EconomyStats{DiscordID: discordID, JobCounts: make(map[string]int64)}
	query := `SELECT work_count, gamble_count, gamble_wins FROM economy_stats WHERE discord_id = $1`
	if err := r.q.QueryRow(ctx, query, discordID).Scan(&stats.WorkCount, &stats.GambleCount, &stats.GambleWins); err != nil {
		return nil, fmt.Errorf("failed to get economy stats for %d: %w", discordID, err)
	}

	rows, err := r.q.Query(ctx, `SELECT job, count FROM job_counts WHERE discord_id = $1`, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job counts for %d: %w", discordID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var job string
		var count int64
		if err := rows.Scan(&job, &count); err != nil {
			return nil, fmt.Errorf("failed to scan job count: %w", err)
		}
		stats.JobCounts[job] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job counts: %w", err)
	}

	return stats, nil
}

// IncrementWork adds one to work_count and to the job's count when job is set
func (r *EconomyStatsRepository) IncrementWork(ctx context.Context, discordID int64, job string) error {
	query := `
		INSERT INTO economy_stats (discord_id, work_count)
		VALUES ($1, 1)
		ON CONFLICT (discord_id) DO UPDATE
		SET work_count = economy_stats.work_count + 1, updated_at = NOW()
	`
	if _, err := r.q.Exec(ctx, query, discordID); err != nil {
		return fmt.Errorf("failed to increment work count for %d: %w", discordID, err)
	}

	if job == "" {
		return nil
	}

	jobQuery := `
		INSERT INTO job_counts (discord_id, job, count)
		VALUES ($1, $2, 1)
		ON CONFLICT (discord_id, job) DO UPDATE
		SET count = job_counts.count + 1
	`
	if _, err := r.q.Exec(ctx, jobQuery, discordID, job); err != nil {
		return fmt.Errorf("failed to increment %s count for %d: %w", job, discordID, err)
	}
	return nil
}

// IncrementGamble adds one to gamble_count and, on a win, to gamble_wins
func (r *EconomyStatsRepository) IncrementGamble(ctx context.Context, discordID int64, won bool) error {
	var wins int64
	if won {
		wins = 1
	}
	query := `
		INSERT INTO economy_stats (discord_id, gamble_count, gamble_wins)
		VALUES ($1, 1, $2)
		ON CONFLICT (discord_id) DO UPDATE
		SET gamble_count = economy_stats.gamble_count + 1,
		    gamble_wins = economy_stats.gamble_wins + $2,
		    updated_at = NOW()
	`
	if _, err := r.q.Exec(ctx, query, discordID, wins); err != nil {
		return fmt.Errorf("failed to increment gamble count for %d: %w", discordID, err)
	}
	return nil
}

func (r *EconomyStatsRepository) ensure(ctx context.Context, discordID int64) error {
	query := `INSERT INTO economy_stats (discord_id) VALUES ($1) ON CONFLICT (discord_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, query, discordID); err != nil {
		return fmt.Errorf("failed to create economy stats for %d: %w", discordID, err)
	}
	return nil
}
