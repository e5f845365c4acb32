package services

import (
	"context"
	"fmt"
	"strings"

	"guildbot/domain/entities"
	"guildbot/domain/interfaces"
	"guildbot/domain/utils"
)

type petService struct {
	petRepo            interfaces.PetRepository
	accountRepo        interfaces.AccountRepository
	balanceHistoryRepo interfaces.BalanceHistoryRepository
	eventPublisher     interfaces.EventPublisher
	rng                interfaces.RandomSource
}

// NewPetService creates a new pet service
func NewPetService(petRepo interfaces.PetRepository, accountRepo interfaces.AccountRepository, balanceHistoryRepo interfaces.BalanceHistoryRepository, eventPublisher interfaces.EventPublisher, rng interfaces.RandomSource) interfaces.PetService {
	return &petService{
		petRepo:            petRepo,
		accountRepo:        accountRepo,
		balanceHistoryRepo: balanceHistoryRepo,
		eventPublisher:     eventPublisher,
		rng:                rng,
	}
}

func (s *petService) GetPet(ctx context.Context, discordID int64) (*entities.Pet, error) {
	pet, err := s.petRepo.GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pet: %w", err)
	}
	return pet, nil
}

func (s *petService) BuyPet(ctx context.Context, discordID int64, petType string) (*entities.Pet, error) {
	petType = strings.ToLower(strings.TrimSpace(petType))
	if petType == "" {
		return nil, entities.NewValidationError("Please specify a pet type! Usage: !pet buy <type>")
	}

	existing, err := s.petRepo.GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pet: %w", err)
	}
	if existing != nil {
		return nil, entities.NewValidationError("You already have a pet %s!", existing.Type)
	}

	accounts, err := s.accountRepo.LockForUpdate(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}
	account := accounts[discordID]

	if account.Wallet < entities.PetPrice {
		return nil, entities.NewValidationError("You need $%d to buy a pet!", entities.PetPrice)
	}

	pet := &entities.Pet{
		DiscordID: discordID,
		Type:      petType,
		Strength:  s.rng.Int64Range(entities.PetMinStrength, entities.PetMaxStrength),
	}
	if err := s.petRepo.Create(ctx, pet); err != nil {
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}

	if err := utils.ApplyBalanceChange(ctx, s.accountRepo, s.balanceHistoryRepo, s.eventPublisher,
		account, account.Wallet-entities.PetPrice, account.Bank, entities.TransactionTypePetPurchase,
		map[string]any{"pet_type": petType, "strength": pet.Strength}); err != nil {
		return nil, fmt.Errorf("failed to charge for pet: %w", err)
	}

	return pet, nil
}

func (s *petService) Challenge(ctx context.Context, challengerID, opponentID int64, bet int64) (*entities.ChallengeResult, error) {
	if bet <= 0 {
		return nil, entities.NewValidationError("Bet must be positive!")
	}
	if challengerID == opponentID {
		return nil, entities.NewValidationError("You can't challenge yourself!")
	}

	challengerPet, err := s.petRepo.GetByDiscordID(ctx, challengerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get challenger pet: %w", err)
	}
	if challengerPet == nil {
		return nil, entities.NewValidationError("You don't have a pet! Buy one with !pet buy <type>")
	}
	opponentPet, err := s.petRepo.GetByDiscordID(ctx, opponentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get opponent pet: %w", err)
	}
	if opponentPet == nil {
		return nil, entities.NewValidationError("Your opponent doesn't have a pet!")
	}

	accounts, err := s.accountRepo.LockForUpdate(ctx, challengerID, opponentID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	if accounts[challengerID].Wallet < bet {
		return nil, entities.NewValidationError("You don't have enough money for this bet!")
	}
	if accounts[opponentID].Wallet < bet {
		return nil, entities.NewValidationError("Your opponent doesn't have enough money for this bet!")
	}

	result := &entities.ChallengeResult{
		ChallengerPet:   challengerPet,
		OpponentPet:     opponentPet,
		ChallengerPower: challengerPet.Power(s.rng.FloatRange(entities.PetPowerMinFactor, entities.PetPowerMaxFactor)),
		OpponentPower:   opponentPet.Power(s.rng.FloatRange(entities.PetPowerMinFactor, entities.PetPowerMaxFactor)),
		Bet:             bet,
	}

	// ties go to the opponent
	if result.ChallengerPower > result.OpponentPower {
		result.WinnerID, result.LoserID = challengerID, opponentID
	} else {
		result.WinnerID, result.LoserID = opponentID, challengerID
	}

	winner, loser := accounts[result.WinnerID], accounts[result.LoserID]
	metadata := map[string]any{"winner_id": result.WinnerID, "loser_id": result.LoserID, "bet": bet}
	if err := utils.ApplyBalanceChange(ctx, s.accountRepo, s.balanceHistoryRepo, s.eventPublisher,
		loser, loser.Wallet-bet, loser.Bank, entities.TransactionTypeChallengeLoss, metadata); err != nil {
		return nil, fmt.Errorf("failed to debit loser: %w", err)
	}
	if err := utils.ApplyBalanceChange(ctx, s.accountRepo, s.balanceHistoryRepo, s.eventPublisher,
		winner, winner.Wallet+bet, winner.Bank, entities.TransactionTypeChallengeWin, metadata); err != nil {
		return nil, fmt.Errorf("failed to credit winner: %w", err)
	}

	return result, nil
}
