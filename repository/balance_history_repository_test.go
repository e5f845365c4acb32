package repository

import (
	"context"
	"testing"
	"time"

	"guildbot/domain/entities"
	"guildbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceHistoryRepository_RecordAndQuery(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	guildA := newBalanceHistoryRepository(testDB.DB.Pool, 111)
	guildB := newBalanceHistoryRepository(testDB.DB.Pool, 222)

	first := testutil.CreateTestBalanceHistory(1, entities.TransactionTypeWork)
	require.NoError(t, guildA.Record(ctx, first))
	assert.NotZero(t, first.ID)
	assert.Equal(t, int64(111), first.GuildID)

	second := testutil.CreateTestBalanceHistory(1, entities.TransactionTypeGambleLoss)
	second.WalletAfter = 900
	second.ChangeAmount = -100
	require.NoError(t, guildA.Record(ctx, second))

	require.NoError(t, guildB.Record(ctx, testutil.CreateTestBalanceHistory(1, entities.TransactionTypeDeposit)))

	histories, err := guildA.GetByUser(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, histories, 2)
	assert.Equal(t, entities.TransactionTypeGambleLoss, histories[0].TransactionType)
	assert.Equal(t, int64(-100), histories[0].ChangeAmount)
	assert.Equal(t, true, histories[1].TransactionMetadata["test"])

	limited, err := guildA.GetByUser(ctx, 1, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	now := time.Now()
	inRange, err := guildB.GetByDateRange(ctx, 1, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, inRange, 1)
	assert.Equal(t, entities.TransactionTypeDeposit, inRange[0].TransactionType)

	outOfRange, err := guildB.GetByDateRange(ctx, 1, now.Add(time.Hour), now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, outOfRange)
}
