package repository

import (
	"context"
	"testing"

	"guildbot/domain/entities"
	"guildbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_GetOrCreate(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	t.Run("missing account returns nil", func(t *testing.T) {
		account, err := repo.GetByDiscordID(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, account)
	})

	t.Run("creates empty account once", func(t *testing.T) {
		account, err := repo.GetOrCreate(ctx, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(100), account.DiscordID)
		assert.Zero(t, account.Wallet)
		assert.Zero(t, account.Bank)

		require.NoError(t, repo.UpdateBalances(ctx, 100, 50, 25))

		again, err := repo.GetOrCreate(ctx, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(50), again.Wallet)
		assert.Equal(t, int64(25), again.Bank)
	})
}

func TestAccountRepository_UpdateBalances(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	t.Run("unknown account", func(t *testing.T) {
		err := repo.UpdateBalances(ctx, 404, 1, 1)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("negative balances rejected by schema", func(t *testing.T) {
		testutil.SeedAccount(t, testDB.DB, 1, 10, 10)
		assert.Error(t, repo.UpdateBalances(ctx, 1, -1, 10))
		assert.Error(t, repo.UpdateBalances(ctx, 1, 10, -1))

		account, err := repo.GetByDiscordID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(10), account.Wallet)
	})
}

func TestAccountRepository_LockForUpdate(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	testutil.SeedAccount(t, testDB.DB, 2, 200, 0)

	uow := CreateTestUnitOfWork(testDB.DB, 1, nil)
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	accounts, err := uow.AccountRepository().LockForUpdate(ctx, 3, 2, 3)
	require.NoError(t, err)

	require.Len(t, accounts, 2)
	assert.Equal(t, int64(200), accounts[2].Wallet)
	assert.Zero(t, accounts[3].Wallet)
	require.NoError(t, uow.Commit())

	created, err := NewAccountRepository(testDB.DB).GetByDiscordID(ctx, 3)
	require.NoError(t, err)
	assert.NotNil(t, created)
}

func TestAccountRepository_GetRichest(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	testutil.SeedAccount(t, testDB.DB, 1, 100, 900)
	testutil.SeedAccount(t, testDB.DB, 2, 5000, 0)
	testutil.SeedAccount(t, testDB.DB, 3, 0, 0)
	testutil.SeedAccount(t, testDB.DB, 4, 10, 10)

	richest, err := repo.GetRichest(ctx, 2)
	require.NoError(t, err)

	require.Len(t, richest, 2)
	assert.Equal(t, int64(2), richest[0].DiscordID)
	assert.Equal(t, int64(1), richest[1].DiscordID)
	assert.Equal(t, int64(1000), richest[1].Total())

	all, err := repo.GetRichest(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3, "empty accounts are not ranked")
}
