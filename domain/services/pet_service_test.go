package services

import (
	"context"
	"testing"

	"guildbot/domain/entities"
	"guildbot/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPetService_BuyPet(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockPetRepo := new(testhelpers.MockPetRepository)
		mockAccountRepo := new(testhelpers.MockAccountRepository)
		mockBalanceHistoryRepo := new(testhelpers.MockBalanceHistoryRepository)
		mockEventPublisher := new(testhelpers.MockEventPublisher)
		rng := &testhelpers.ScriptedRandom{Ints: []int64{77}}

		service := NewPetService(mockPetRepo, mockAccountRepo, mockBalanceHistoryRepo, mockEventPublisher, rng)

		mockPetRepo.On("GetByDiscordID", ctx, int64(1)).Return(nil, nil)
		mockAccountRepo.On("LockForUpdate", ctx, []int64{1}).Return(map[int64]*entities.Account{
			1: {DiscordID: 1, Wallet: 1500},
		}, nil)
		mockPetRepo.On("Create", ctx, mock.MatchedBy(func(p *entities.Pet) bool {
			return p.DiscordID == 1 && p.Type == "dragon" && p.Strength == 77
		})).Return(nil)
		mockAccountRepo.On("UpdateBalances", ctx, int64(1), int64(500), int64(0)).Return(nil)
		mockBalanceHistoryRepo.On("Record", ctx, mock.MatchedBy(func(h *entities.BalanceHistory) bool {
			return h.TransactionType == entities.TransactionTypePetPurchase && h.ChangeAmount == -1000
		})).Return(nil)
		mockEventPublisher.On("Publish", mock.AnythingOfType("events.BalanceChangeEvent")).Return(nil)

		pet, err := service.BuyPet(ctx, 1, " Dragon ")
		require.NoError(t, err)
		assert.Equal(t, "dragon", pet.Type)
		assert.Equal(t, int64(77), pet.Strength)

		mockPetRepo.AssertExpectations(t)
		mockAccountRepo.AssertExpectations(t)
		mockBalanceHistoryRepo.AssertExpectations(t)
		mockEventPublisher.AssertExpectations(t)
	})

	t.Run("already owns a pet", func(t *testing.T) {
		mockPetRepo := new(testhelpers.MockPetRepository)
		mockAccountRepo := new(testhelpers.MockAccountRepository)
		service := NewPetService(mockPetRepo, mockAccountRepo, nil, nil, &testhelpers.ScriptedRandom{})

		mockPetRepo.On("GetByDiscordID", ctx, int64(1)).Return(&entities.Pet{DiscordID: 1, Type: "cat", Strength: 60}, nil)

		_, err := service.BuyPet(ctx, 1, "dog")
		require.Error(t, err)
		assert.True(t, entities.IsValidationError(err))
		mockAccountRepo.AssertNotCalled(t, "LockForUpdate", mock.Anything, mock.Anything)
	})

	t.Run("not enough money", func(t *testing.T) {
		mockPetRepo := new(testhelpers.MockPetRepository)
		mockAccountRepo := new(testhelpers.MockAccountRepository)
		service := NewPetService(mockPetRepo, mockAccountRepo, nil, nil, &testhelpers.ScriptedRandom{})

		mockPetRepo.On("GetByDiscordID", ctx, int64(1)).Return(nil, nil)
		mockAccountRepo.On("LockForUpdate", ctx, []int64{1}).Return(map[int64]*entities.Account{
			1: {DiscordID: 1, Wallet: 999},
		}, nil)

		_, err := service.BuyPet(ctx, 1, "dog")
		require.Error(t, err)
		assert.Equal(t, "You need $1000 to buy a pet!", err.Error())
		mockPetRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestPetService_Challenge(t *testing.T) {
	ctx := context.Background()

	setup := func(rng *testhelpers.ScriptedRandom, wallets map[int64]int64) (*petService, *memoryAccounts, *testhelpers.MockPetRepository) {
		mockPetRepo := new(testhelpers.MockPetRepository)
		mockPetRepo.On("GetByDiscordID", ctx, int64(1)).Return(&entities.Pet{DiscordID: 1, Type: "wolf", Strength: 100}, nil)
		mockPetRepo.On("GetByDiscordID", ctx, int64(2)).Return(&entities.Pet{DiscordID: 2, Type: "bear", Strength: 50}, nil)

		accounts := newMemoryAccounts()
		for id, wallet := range wallets {
			accounts.get(id).Wallet = wallet
		}
		service := NewPetService(mockPetRepo, accounts, &memoryHistory{}, &recordingPublisher{}, rng).(*petService)
		return service, accounts, mockPetRepo
	}

	t.Run("stronger roll wins the bet", func(t *testing.T) {
		rng := &testhelpers.ScriptedRandom{Floats: []float64{0.8, 1.2}}
		service, accounts, _ := setup(rng, map[int64]int64{1: 500, 2: 500})

		result, err := service.Challenge(ctx, 1, 2, 200)
		require.NoError(t, err)

		assert.InDelta(t, 80.0, result.ChallengerPower, 1e-9)
		assert.InDelta(t, 60.0, result.OpponentPower, 1e-9)
		assert.Equal(t, int64(1), result.WinnerID)
		assert.Equal(t, int64(700), accounts.get(1).Wallet)
		assert.Equal(t, int64(300), accounts.get(2).Wallet)
	})

	t.Run("tie goes to the opponent", func(t *testing.T) {
		mockPetRepo := new(testhelpers.MockPetRepository)
		mockPetRepo.On("GetByDiscordID", ctx, int64(1)).Return(&entities.Pet{DiscordID: 1, Strength: 60}, nil)
		mockPetRepo.On("GetByDiscordID", ctx, int64(2)).Return(&entities.Pet{DiscordID: 2, Strength: 60}, nil)
		accounts := newMemoryAccounts(
			&entities.Account{DiscordID: 1, Wallet: 500},
			&entities.Account{DiscordID: 2, Wallet: 500},
		)
		rng := &testhelpers.ScriptedRandom{Floats: []float64{1.0, 1.0}}
		service := NewPetService(mockPetRepo, accounts, &memoryHistory{}, &recordingPublisher{}, rng)

		result, err := service.Challenge(ctx, 1, 2, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(2), result.WinnerID)
		assert.Equal(t, int64(400), accounts.get(1).Wallet)
		assert.Equal(t, int64(600), accounts.get(2).Wallet)
	})

	t.Run("validation", func(t *testing.T) {
		service, _, _ := setup(&testhelpers.ScriptedRandom{}, map[int64]int64{1: 100, 2: 1000})

		_, err := service.Challenge(ctx, 1, 2, 0)
		assert.True(t, entities.IsValidationError(err))

		_, err = service.Challenge(ctx, 1, 1, 10)
		assert.True(t, entities.IsValidationError(err))

		_, err = service.Challenge(ctx, 1, 2, 500)
		require.Error(t, err)
		assert.Equal(t, "You don't have enough money for this bet!", err.Error())

		_, err = service.Challenge(ctx, 2, 1, 500)
		require.Error(t, err)
		assert.Equal(t, "Your opponent doesn't have enough money for this bet!", err.Error())
	})

	t.Run("opponent without pet", func(t *testing.T) {
		mockPetRepo := new(testhelpers.MockPetRepository)
		mockPetRepo.On("GetByDiscordID", ctx, int64(1)).Return(&entities.Pet{DiscordID: 1, Strength: 60}, nil)
		mockPetRepo.On("GetByDiscordID", ctx, int64(3)).Return(nil, nil)
		service := NewPetService(mockPetRepo, newMemoryAccounts(), nil, nil, &testhelpers.ScriptedRandom{})

		_, err := service.Challenge(ctx, 1, 3, 10)
		require.Error(t, err)
		assert.Equal(t, "Your opponent doesn't have a pet!", err.Error())
	})
}
