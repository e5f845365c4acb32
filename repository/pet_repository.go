package repository

import (
	"context"
	"errors"
	"fmt"

	"guildbot/database"
	"guildbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

// PetRepository implements the PetRepository interface
type PetRepository struct {
	q queryable
}

// NewPetRepository creates a new pet repository
func NewPetRepository(db *database.DB) *PetRepository {
	return &PetRepository{q: db.Pool}
}

func newPetRepository(tx queryable) *PetRepository {
	return &PetRepository{q: tx}
}

// GetByDiscordID returns the user's pet or nil
func (r *PetRepository) GetByDiscordID(ctx context.Context, discordID int64) (*entities.Pet, error) {
	var pet entities.Pet
	query := `SELECT discord_id, pet_type, strength, created_at FROM pets WHERE discord_id = $1`
	err := r.q.QueryRow(ctx, query, discordID).Scan(&pet.DiscordID, &pet.Type, &pet.Strength, &pet.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pet for %d: %w", discordID, err)
	}
	return &pet, nil
}

// Create stores a new pet. The primary key rejects a second pet.
func (r *PetRepository) Create(ctx context.Context, pet *entities.Pet) error {
	query := `
		INSERT INTO pets (discord_id, pet_type, strength)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	if err := r.q.QueryRow(ctx, query, pet.DiscordID, pet.Type, pet.Strength).Scan(&pet.CreatedAt); err != nil {
		return fmt.Errorf("failed to create pet for %d: %w", pet.DiscordID, err)
	}
	return nil
}
