package repository

import (
	"context"
	"errors"
	"fmt"

	"guildbot/database"
	"guildbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

// InventoryRepository implements the InventoryRepository interface
type InventoryRepository struct {
	q queryable
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *database.DB) *InventoryRepository {
	return &InventoryRepository{q: db.Pool}
}

func newInventoryRepository(tx queryable) *InventoryRepository {
	return &InventoryRepository{q: tx}
}

// GetByUser returns every item with a positive count, ordered by name
func (r *InventoryRepository) GetByUser(ctx context.Context, discordID int64) ([]*entities.InventoryItem, error) {
	query := `
		SELECT discord_id, item, count
		FROM inventory_items
		WHERE discord_id = $1 AND count > 0
		ORDER BY item
	`
	rows, err := r.q.Query(ctx, query, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory for %d: %w", discordID, err)
	}
	defer rows.Close()

	var items []*entities.InventoryItem
	for rows.Next() {
		var item entities.InventoryItem
		if err := rows.Scan(&item.DiscordID, &item.Item, &item.Count); err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inventory: %w", err)
	}
	return items, nil
}

// GetCount returns how many of an item a user owns
func (r *InventoryRepository) GetCount(ctx context.Context, discordID int64, item string) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx, `SELECT count FROM inventory_items WHERE discord_id = $1 AND item = $2`, discordID, item).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get %s count for %d: %w", item, discordID, err)
	}
	return count, nil
}

// AddItem increases an item's count
func (r *InventoryRepository) AddItem(ctx context.Context, discordID int64, item string, quantity int64) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	query := `
		INSERT INTO inventory_items (discord_id, item, count)
		VALUES ($1, $2, $3)
		ON CONFLICT (discord_id, item) DO UPDATE
		SET count = inventory_items.count + EXCLUDED.count
	`
	if _, err := r.q.Exec(ctx, query, discordID, item, quantity); err != nil {
		return fmt.Errorf("failed to add %s for %d: %w", item, discordID, err)
	}
	return nil
}

// RemoveOne decreases an item's count by one if it is positive
func (r *InventoryRepository) RemoveOne(ctx context.Context, discordID int64, item string) (bool, error) {
	query := `
		UPDATE inventory_items
		SET count = count - 1
		WHERE discord_id = $1 AND item = $2 AND count > 0
	`
	result, err := r.q.Exec(ctx, query, discordID, item)
	if err != nil {
		return false, fmt.Errorf("failed to remove %s from %d: %w", item, discordID, err)
	}
	return result.RowsAffected() == 1, nil
}
