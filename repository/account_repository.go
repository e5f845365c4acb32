package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"guildbot/database"
	"guildbot/domain/entities"
	"guildbot/infrastructure/observability"

	"github.com/jackc/pgx/v5"
)

// AccountRepository implements the AccountRepository interface.
// Accounts are global so no guild scope is applied.
type AccountRepository struct {
	q queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{q: db.Pool}
}

func newAccountRepository(tx queryable) *AccountRepository {
	return &AccountRepository{q: tx}
}

const accountColumns = `discord_id, wallet, bank, created_at, updated_at`

func scanAccount(row pgx.Row) (*entities.Account, error) {
	var a entities.Account
	if err := row.Scan(&a.DiscordID, &a.Wallet, &a.Bank, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByDiscordID retrieves an account, returning nil if none exists
func (r *AccountRepository) GetByDiscordID(ctx context.Context, discordID int64) (*entities.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE discord_id = $1`

	account, err := scanAccount(r.q.QueryRow(ctx, query, discordID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", discordID, err)
	}
	return account, nil
}

// GetOrCreate retrieves an account, creating an empty one if needed
func (r *AccountRepository) GetOrCreate(ctx context.Context, discordID int64) (*entities.Account, error) {
	if err := r.ensure(ctx, discordID); err != nil {
		return nil, err
	}
	account, err := r.GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("account %d missing after insert", discordID)
	}
	return account, nil
}

// LockForUpdate creates missing accounts and takes row locks in ascending id order
func (r *AccountRepository) LockForUpdate(ctx context.Context, discordIDs ...int64) (map[int64]*entities.Account, error) {
	defer observability.GetMetrics().MeasureDatabaseQuery("account", "LockForUpdate")()

	ids := slices.Clone(discordIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	for _, id := range ids {
		if err := r.ensure(ctx, id); err != nil {
			return nil, err
		}
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE discord_id = ANY($1)
		ORDER BY discord_id
		FOR UPDATE
	`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts %v: %w", ids, err)
	}
	defer rows.Close()

	accounts := make(map[int64]*entities.Account, len(ids))
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts[account.DiscordID] = account
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate locked accounts: %w", err)
	}
	return accounts, nil
}

// UpdateBalances writes the wallet and bank of an account
func (r *AccountRepository) UpdateBalances(ctx context.Context, discordID int64, wallet, bank int64) error {
	query := `
		UPDATE accounts
		SET wallet = $1, bank = $2, updated_at = NOW()
		WHERE discord_id = $3
	`
	result, err := r.q.Exec(ctx, query, wallet, bank, discordID)
	if err != nil {
		return fmt.Errorf("failed to update balances for account %d: %w", discordID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("account %d: %w", discordID, entities.ErrNotFound)
	}
	return nil
}

// GetRichest returns accounts ordered by total wealth
func (r *AccountRepository) GetRichest(ctx context.Context, limit int) ([]*entities.Account, error) {
	defer observability.GetMetrics().MeasureDatabaseQuery("account", "GetRichest")()

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE wallet + bank > 0
		ORDER BY wallet + bank DESC, discord_id
		LIMIT $1
	`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get richest accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*entities.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate richest accounts: %w", err)
	}
	return accounts, nil
}

func (r *AccountRepository) ensure(ctx context.Context, discordID int64) error {
	query := `
		INSERT INTO accounts (discord_id)
		VALUES ($1)
		ON CONFLICT (discord_id) DO NOTHING
	`
	if _, err := r.q.Exec(ctx, query, discordID); err != nil {
		return fmt.Errorf("failed to create account %d: %w", discordID, err)
	}
	return nil
}
