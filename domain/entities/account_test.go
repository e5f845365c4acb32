package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccount_Balances(t *testing.T) {
	a := &Account{DiscordID: 1, Wallet: 300, Bank: 700}

	assert.Equal(t, int64(1000), a.Total())
	assert.True(t, a.CanAfford(300))
	assert.False(t, a.CanAfford(301))
	assert.True(t, a.CanWithdraw(700))
	assert.False(t, a.CanWithdraw(701))
	assert.Equal(t, int64(0), a.WalletAfter(-1000))
	assert.Equal(t, int64(500), a.WalletAfter(200))
}

func TestNewBalanceHistory(t *testing.T) {
	before := Account{DiscordID: 1, Wallet: 500, Bank: 0}
	after := &Account{DiscordID: 1, Wallet: 200, Bank: 300}

	deposit := NewBalanceHistory(before, after, TransactionTypeDeposit, nil)
	assert.Equal(t, int64(300), deposit.ChangeAmount)
	assert.Equal(t, int64(200), deposit.WalletAfter)
	assert.NoError(t, deposit.Validate())

	after = &Account{DiscordID: 1, Wallet: 0, Bank: 0}
	loss := NewBalanceHistory(before, after, TransactionTypeGambleLoss, nil)
	assert.Equal(t, int64(-500), loss.ChangeAmount)
	assert.False(t, loss.IsPositiveChange())
	assert.Equal(t, "Gamble loss", loss.GetTransactionDescription())
}

func TestXPRecord_AddXP(t *testing.T) {
	r := &XPRecord{}
	assert.False(t, r.AddXP(15))
	assert.Equal(t, int64(0), r.Level)

	r.XP = 90
	assert.True(t, r.AddXP(15))
	assert.Equal(t, int64(1), r.Level)
	assert.InDelta(t, 3.2, r.Progress(), 0.1)
}

func TestEconomyStats_Unlocks(t *testing.T) {
	s := &EconomyStats{WorkCount: 149, GambleWins: 74, JobCounts: map[string]int64{"chef": 31}}
	assert.False(t, s.HasAdvancedWork())
	assert.False(t, s.HasAdvancedGamble())
	assert.Equal(t, int64(3), s.JobLevel("chef"))
	assert.Equal(t, int64(1), s.JobLevel("nurse"))

	s.WorkCount, s.GambleWins = 150, 75
	assert.True(t, s.HasAdvancedWork())
	assert.True(t, s.HasAdvancedGamble())
}
