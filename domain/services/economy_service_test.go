package services

import (
	"context"
	"math"
	"math/rand/v2"
	"strconv"
	"testing"
	"time"

	"guildbot/domain/cooldown"
	"guildbot/domain/entities"
	"guildbot/domain/testhelpers"
	"guildbot/domain/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type economyFixture struct {
	accounts  *memoryAccounts
	stats     *memoryStats
	inventory *testhelpers.MockInventoryRepository
	history   *memoryHistory
	publisher *recordingPublisher
	clock     *testClock
	gate      *cooldown.Gate
	rng       *testhelpers.ScriptedRandom
	service   *economyService
}

func newEconomyFixture(seed ...*entities.Account) *economyFixture {
	f := &economyFixture{
		accounts:  newMemoryAccounts(seed...),
		stats:     newMemoryStats(),
		inventory: new(testhelpers.MockInventoryRepository),
		history:   &memoryHistory{},
		publisher: &recordingPublisher{},
		clock:     newTestClock(),
		rng:       &testhelpers.ScriptedRandom{},
	}
	f.gate = cooldown.NewGateWithClock(f.clock.Now)
	f.service = NewEconomyService(f.accounts, f.stats, f.inventory, f.history, f.publisher, f.gate, f.rng).(*economyService)
	return f
}

func TestEconomyService_Work_NoJob(t *testing.T) {
	ctx := context.Background()
	f := newEconomyFixture()
	f.rng.Ints = []int64{100}
	f.rng.Ns = []int{1}

	result, err := f.service.Work(ctx, 1, "")
	require.NoError(t, err)

	assert.Equal(t, int64(100), result.Earnings)
	assert.Equal(t, "fixed a bug", result.Activity)
	assert.Equal(t, WorkCooldownNoJob, result.CooldownTime)
	assert.Equal(t, int64(100), f.accounts.get(1).Wallet)
	assert.Equal(t, int64(1), f.stats.stats[1].WorkCount)
	require.Len(t, f.history.records, 1)
	assert.Equal(t, entities.TransactionTypeWork, f.history.records[0].TransactionType)
	assert.Len(t, f.publisher.published, 1)
}

func TestEconomyService_Work_Cooldown(t *testing.T) {
	ctx := context.Background()
	f := newEconomyFixture()
	f.rng.Ints = []int64{500, 600}
	f.rng.Ns = []int{0, 0}

	_, err := f.service.Work(ctx, 1, "")
	require.NoError(t, err)

	f.clock.Advance(59 * time.Second)
	_, err = f.service.Work(ctx, 1, "")
	require.Error(t, err)

	var cdErr *entities.CooldownError
	require.ErrorAs(t, err, &cdErr)
	assert.Equal(t, time.Hour-59*time.Second, cdErr.Remaining)
	assert.Equal(t, int64(500), f.accounts.get(1).Wallet)

	f.clock.Advance(3600 * time.Second)
	_, err = f.service.Work(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1100), f.accounts.get(1).Wallet)
}

func TestEconomyService_Work_InvalidJob(t *testing.T) {
	ctx := context.Background()
	f := newEconomyFixture()

	_, err := f.service.Work(ctx, 1, "astronaut")
	require.Error(t, err)
	assert.True(t, entities.IsValidationError(err))
	assert.Contains(t, err.Error(), "fireman, police, doctor, nurse, teacher, chef")
	assert.Zero(t, f.gate.Remaining(cooldown.ActionWork, 1))
}

func TestEconomyService_Work_JobLevelAndItem(t *testing.T) {
	ctx := context.Background()
	f := newEconomyFixture()
	f.stats.stats[1] = &entities.EconomyStats{DiscordID: 1, WorkCount: 15, JobCounts: map[string]int64{"chef": 15}}
	f.rng.Ints = []int64{300}
	f.rng.Floats = []float64{0.05}
	f.inventory.On("AddItem", ctx, int64(1), "chef", int64(1)).Return(nil)

	result, err := f.service.Work(ctx, 1, "Chef")
	require.NoError(t, err)

	assert.Equal(t, "chef", result.Job)
	assert.Equal(t, int64(300), result.Earnings)
	assert.True(t, result.ItemFound)
	assert.Equal(t, int64(16), result.JobCount)
	assert.Equal(t, int64(2), result.JobLevel)
	assert.Equal(t, int64(14), result.JobsToNext)
	assert.Equal(t, WorkCooldownWithJob, result.CooldownTime)
	assert.Equal(t, int64(16), f.stats.stats[1].JobCounts["chef"])
	f.inventory.AssertExpectations(t)
}

func TestEconomyService_Work_DoubledAfterThreshold(t *testing.T) {
	ctx := context.Background()
	f := newEconomyFixture()
	f.stats.stats[1] = &entities.EconomyStats{DiscordID: 1, WorkCount: 150, JobCounts: map[string]int64{}}
	f.rng.Ints = []int64{400}
	f.rng.Ns = []int{2}

	result, err := f.service.AdvancedWork(ctx, 1, "")
	require.NoError(t, err)

	assert.True(t, result.Doubled)
	assert.Equal(t, int64(800), result.Earnings)
}

func TestEconomyService_AdvancedWork_Locked(t *testing.T) {
	ctx := context.Background()
	f := newEconomyFixture()
	f.stats.stats[1] = &entities.EconomyStats{DiscordID: 1, WorkCount: 140, JobCounts: map[string]int64{}}

	_, err := f.service.AdvancedWork(ctx, 1, "")
	require.Error(t, err)
	assert.Equal(t, "You need 10 more works to unlock advanced work!", err.Error())
}

func TestEconomyService_Deposit(t *testing.T) {
	ctx := context.Background()

	t.Run("rejected with empty wallet", func(t *testing.T) {
		f := newEconomyFixture()
		_, err := f.service.Deposit(ctx, 1, "100")
		require.Error(t, err)
		assert.True(t, entities.IsValidationError(err))
		assert.Empty(t, f.history.records)
	})

	t.Run("all empties the wallet", func(t *testing.T) {
		f := newEconomyFixture(&entities.Account{DiscordID: 1, Wallet: 640, Bank: 10})
		result, err := f.service.Deposit(ctx, 1, "all")
		require.NoError(t, err)
		assert.Equal(t, int64(640), result.Amount)
		assert.Equal(t, int64(0), result.Wallet)
		assert.Equal(t, int64(650), result.Bank)
	})

	t.Run("all with nothing", func(t *testing.T) {
		f := newEconomyFixture()
		_, err := f.service.Deposit(ctx, 1, "all")
		require.Error(t, err)
		assert.Equal(t, "You don't have any money to deposit!", err.Error())
	})

	t.Run("invalid amounts", func(t *testing.T) {
		f := newEconomyFixture(&entities.Account{DiscordID: 1, Wallet: 100})
		for _, arg := range []string{"abc", "0", "-5", ""} {
			_, err := f.service.Deposit(ctx, 1, arg)
			assert.True(t, entities.IsValidationError(err), arg)
		}
	})
}

func TestEconomyService_Withdraw(t *testing.T) {
	ctx := context.Background()
	f := newEconomyFixture(&entities.Account{DiscordID: 1, Wallet: 5, Bank: 300})

	_, err := f.service.Withdraw(ctx, 1, "301")
	require.Error(t, err)
	assert.Equal(t, "You don't have enough money in your bank!", err.Error())

	result, err := f.service.Withdraw(ctx, 1, "300")
	require.NoError(t, err)
	assert.Equal(t, int64(305), result.Wallet)
	assert.Equal(t, int64(0), result.Bank)
}

func TestEconomyService_Gamble(t *testing.T) {
	ctx := context.Background()

	t.Run("win doubles the stake", func(t *testing.T) {
		f := newEconomyFixture(&entities.Account{DiscordID: 1, Wallet: 50})
		f.rng.Floats = []float64{0.10}

		result, err := f.service.Gamble(ctx, 1, "50")
		require.NoError(t, err)
		assert.True(t, result.Won)
		assert.Equal(t, int64(100), result.Wallet)
		assert.Equal(t, int64(50), result.WinChance)
		assert.Equal(t, int64(1), f.stats.stats[1].GambleWins)
		assert.Equal(t, int64(1), f.stats.stats[1].GambleCount)
	})

	t.Run("loss empties the wallet", func(t *testing.T) {
		f := newEconomyFixture(&entities.Account{DiscordID: 1, Wallet: 50})
		f.rng.Floats = []float64{0.50}

		result, err := f.service.Gamble(ctx, 1, "50")
		require.NoError(t, err)
		assert.False(t, result.Won)
		assert.Equal(t, int64(0), result.Wallet)
		assert.Equal(t, int64(0), f.stats.stats[1].GambleWins)
		assert.Equal(t, int64(1), f.stats.stats[1].GambleCount)
	})

	t.Run("more than wallet rejected", func(t *testing.T) {
		f := newEconomyFixture(&entities.Account{DiscordID: 1, Wallet: 50})
		_, err := f.service.Gamble(ctx, 1, "51")
		require.Error(t, err)
		assert.Equal(t, "You don't have enough money!", err.Error())
	})

	t.Run("all with empty wallet rejected", func(t *testing.T) {
		f := newEconomyFixture()
		_, err := f.service.Gamble(ctx, 1, "all")
		require.Error(t, err)
		assert.True(t, entities.IsValidationError(err))
	})

	t.Run("higher level uses higher chance", func(t *testing.T) {
		f := newEconomyFixture(&entities.Account{DiscordID: 1, Wallet: 50})
		f.stats.stats[1] = &entities.EconomyStats{DiscordID: 1, GambleCount: 800, JobCounts: map[string]int64{}}
		f.rng.Floats = []float64{0.59}

		result, err := f.service.Gamble(ctx, 1, "10")
		require.NoError(t, err)
		assert.True(t, result.Won)
		assert.Equal(t, int64(60), result.WinChance)
	})
}

func TestEconomyService_AdvancedGamble_Locked(t *testing.T) {
	ctx := context.Background()
	f := newEconomyFixture(&entities.Account{DiscordID: 1, Wallet: 50})
	f.stats.stats[1] = &entities.EconomyStats{DiscordID: 1, GambleWins: 70, JobCounts: map[string]int64{}}

	_, err := f.service.AdvancedGamble(ctx, 1, "10")
	require.Error(t, err)
	assert.Equal(t, "You need 5 more gambling wins to unlock advanced gambling!", err.Error())
}

func TestEconomyService_Rob(t *testing.T) {
	ctx := context.Background()

	t.Run("poor target rejected regardless of draw", func(t *testing.T) {
		f := newEconomyFixture(&entities.Account{DiscordID: 2, Wallet: 50})
		f.rng.Floats = []float64{0.0}

		_, err := f.service.Rob(ctx, 1, 2, false)
		require.Error(t, err)
		assert.Equal(t, "Target doesn't have enough money to rob!", err.Error())
		assert.Equal(t, int64(50), f.accounts.get(2).Wallet)
		assert.Zero(t, f.gate.Remaining(cooldown.ActionRob, 1))
	})

	t.Run("self and bots rejected", func(t *testing.T) {
		f := newEconomyFixture()
		_, err := f.service.Rob(ctx, 1, 1, false)
		assert.True(t, entities.IsValidationError(err))
		_, err = f.service.Rob(ctx, 1, 2, true)
		assert.True(t, entities.IsValidationError(err))
	})

	t.Run("success steals up to 1000", func(t *testing.T) {
		f := newEconomyFixture(&entities.Account{DiscordID: 2, Wallet: 5000})
		f.rng.Floats = []float64{0.39}
		f.rng.Ints = []int64{1000}

		result, err := f.service.Rob(ctx, 1, 2, false)
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, int64(1000), result.Stolen)
		assert.Equal(t, int64(1000), f.accounts.get(1).Wallet)
		assert.Equal(t, int64(4000), f.accounts.get(2).Wallet)
		assert.Equal(t, RobCooldown, f.gate.Remaining(cooldown.ActionRob, 1))
	})

	t.Run("failure fine floors wallet at zero", func(t *testing.T) {
		f := newEconomyFixture(
			&entities.Account{DiscordID: 1, Wallet: 150},
			&entities.Account{DiscordID: 2, Wallet: 500},
		)
		f.rng.Floats = []float64{0.4}
		f.rng.Ints = []int64{900}

		result, err := f.service.Rob(ctx, 1, 2, false)
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, int64(900), result.Fine)
		assert.Equal(t, int64(0), f.accounts.get(1).Wallet)
		assert.Equal(t, int64(500), f.accounts.get(2).Wallet)
		assert.NotZero(t, f.gate.Remaining(cooldown.ActionRob, 1))
	})

	t.Run("second attempt is on cooldown", func(t *testing.T) {
		f := newEconomyFixture(&entities.Account{DiscordID: 2, Wallet: 500})
		f.rng.Floats = []float64{0.9}
		f.rng.Ints = []int64{200}

		_, err := f.service.Rob(ctx, 1, 2, false)
		require.NoError(t, err)
		_, err = f.service.Rob(ctx, 1, 2, false)
		assert.True(t, entities.IsCooldownError(err))
	})
}

func TestEconomyService_SellItem(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown item", func(t *testing.T) {
		f := newEconomyFixture()
		_, err := f.service.SellItem(ctx, 1, "sword")
		assert.True(t, entities.IsValidationError(err))
	})

	t.Run("nothing to sell", func(t *testing.T) {
		f := newEconomyFixture()
		f.inventory.On("RemoveOne", ctx, int64(1), "doctor").Return(false, nil)
		_, err := f.service.SellItem(ctx, 1, "doctor")
		require.Error(t, err)
		assert.Equal(t, "You don't have any doctor to sell!", err.Error())
	})

	t.Run("sale pays the drawn price", func(t *testing.T) {
		f := newEconomyFixture()
		f.rng.Ints = []int64{250}
		f.inventory.On("RemoveOne", ctx, int64(1), "doctor").Return(true, nil)
		f.inventory.On("GetCount", ctx, int64(1), "doctor").Return(int64(2), nil)

		result, err := f.service.SellItem(ctx, 1, "doctor")
		require.NoError(t, err)
		assert.Equal(t, int64(250), result.Price)
		assert.Equal(t, int64(2), result.Remaining)
		assert.Equal(t, int64(250), f.accounts.get(1).Wallet)
		f.inventory.AssertExpectations(t)
	})
}

func TestEconomyService_AdminMoney(t *testing.T) {
	ctx := context.Background()
	f := newEconomyFixture(&entities.Account{DiscordID: 1, Wallet: 100})

	_, err := f.service.GrantMoney(ctx, 1, 0)
	assert.True(t, entities.IsValidationError(err))

	account, err := f.service.GrantMoney(ctx, 1, 400)
	require.NoError(t, err)
	assert.Equal(t, int64(500), account.Wallet)

	_, err = f.service.RemoveMoney(ctx, 1, 501)
	require.Error(t, err)
	assert.Equal(t, "User doesn't have enough money!", err.Error())

	account, err = f.service.RemoveMoney(ctx, 1, 500)
	require.NoError(t, err)
	assert.Equal(t, int64(0), account.Wallet)
}

func TestEconomyService_GrantMoney_Overflow(t *testing.T) {
	ctx := context.Background()
	f := newEconomyFixture(&entities.Account{DiscordID: 1, Wallet: 100, Bank: 50})

	_, err := f.service.GrantMoney(ctx, 1, math.MaxInt64)
	require.Error(t, err)
	assert.True(t, entities.IsValidationError(err))
	assert.Equal(t, int64(100), f.accounts.get(1).Wallet)

	account, err := f.service.GrantMoney(ctx, 1, math.MaxInt64-150)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64-50), account.Wallet)
}

func TestEconomyService_GetStats(t *testing.T) {
	ctx := context.Background()
	f := newEconomyFixture()
	f.stats.stats[1] = &entities.EconomyStats{
		DiscordID:   1,
		WorkCount:   40,
		GambleCount: 17,
		GambleWins:  9,
		JobCounts:   map[string]int64{"police": 31},
	}

	summary, err := f.service.GetStats(ctx, 1)
	require.NoError(t, err)

	require.Len(t, summary.Jobs, 6)
	police := summary.Jobs[1]
	assert.Equal(t, "police", police.Job)
	assert.Equal(t, int64(3), police.Level)
	assert.Equal(t, int64(400), police.SalaryMin)
	assert.Equal(t, int64(700), police.SalaryMax)
	assert.Equal(t, int64(14), police.JobsToNext)
	assert.Equal(t, int64(3), summary.GambleLevel)
	assert.Equal(t, int64(52), summary.WinChance)
	assert.Equal(t, int64(7), summary.GamblesToNext)
	assert.Equal(t, int64(110), summary.WorksRemaining)
	assert.Equal(t, int64(66), summary.WinsRemaining)
}

// Balances never go negative and deposit/withdraw never change total wealth.
func TestEconomyService_BalanceInvariants(t *testing.T) {
	ctx := context.Background()
	seq := rand.New(rand.NewPCG(1, 2))

	f := newEconomyFixture(
		&entities.Account{DiscordID: 1, Wallet: 2000, Bank: 500},
		&entities.Account{DiscordID: 2, Wallet: 3000},
	)
	f.service.rng = utils.NewRandomSource()

	for i := 0; i < 500; i++ {
		before := *f.accounts.get(1)
		amount := strconv.FormatInt(seq.Int64N(1500), 10)
		if seq.IntN(10) == 0 {
			amount = "all"
		}

		var err error
		switch seq.IntN(4) {
		case 0:
			_, err = f.service.Deposit(ctx, 1, amount)
			if err == nil {
				assert.Equal(t, before.Total(), f.accounts.get(1).Total())
			}
		case 1:
			_, err = f.service.Withdraw(ctx, 1, amount)
			if err == nil {
				assert.Equal(t, before.Total(), f.accounts.get(1).Total())
			}
		case 2:
			_, err = f.service.Gamble(ctx, 1, amount)
		case 3:
			f.gate.Reset()
			_, err = f.service.Rob(ctx, 1, 2, false)
		}
		if err != nil {
			assert.True(t, entities.IsValidationError(err), "unexpected error: %v", err)
			assert.Equal(t, before, *f.accounts.get(1))
		}

		for _, id := range []int64{1, 2} {
			a := f.accounts.get(id)
			require.GreaterOrEqual(t, a.Wallet, int64(0))
			require.GreaterOrEqual(t, a.Bank, int64(0))
		}
	}

	f.inventory.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
