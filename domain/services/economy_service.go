package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"guildbot/domain/cooldown"
	"guildbot/domain/entities"
	"guildbot/domain/interfaces"
	"guildbot/domain/progression"
	"guildbot/domain/utils"

	log "github.com/sirupsen/logrus"
)

const (
	WorkCooldownWithJob = 30 * time.Minute
	WorkCooldownNoJob   = 60 * time.Minute

	NoJobSalaryMin int64 = 100
	NoJobSalaryMax int64 = 1000

	RobCooldown              = 2 * time.Hour
	RobMinTargetWallet int64 = 100
	RobSuccessChance         = 0.4
	RobMaxSteal        int64 = 1000
	RobFineMin         int64 = 200
	RobFineMax         int64 = 1000
)

var workActivities = []string{
	"wrote some code",
	"fixed a bug",
	"deployed an app",
	"designed a website",
	"managed servers",
	"created content",
}

type economyService struct {
	accountRepo        interfaces.AccountRepository
	statsRepo          interfaces.EconomyStatsRepository
	inventoryRepo      interfaces.InventoryRepository
	balanceHistoryRepo interfaces.BalanceHistoryRepository
	eventPublisher     interfaces.EventPublisher
	cooldowns          *cooldown.Gate
	rng                interfaces.RandomSource
}

// NewEconomyService creates a new economy service
func NewEconomyService(
	accountRepo interfaces.AccountRepository,
	statsRepo interfaces.EconomyStatsRepository,
	inventoryRepo interfaces.InventoryRepository,
	balanceHistoryRepo interfaces.BalanceHistoryRepository,
	eventPublisher interfaces.EventPublisher,
	cooldowns *cooldown.Gate,
	rng interfaces.RandomSource,
) interfaces.EconomyService {
	return &economyService{
		accountRepo:        accountRepo,
		statsRepo:          statsRepo,
		inventoryRepo:      inventoryRepo,
		balanceHistoryRepo: balanceHistoryRepo,
		eventPublisher:     eventPublisher,
		cooldowns:          cooldowns,
		rng:                rng,
	}
}

func (s *economyService) GetBalance(ctx context.Context, discordID int64) (*entities.Account, error) {
	account, err := s.accountRepo.GetOrCreate(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

func (s *economyService) Work(ctx context.Context, discordID int64, job string) (*entities.WorkResult, error) {
	return s.work(ctx, discordID, job, false)
}

func (s *economyService) AdvancedWork(ctx context.Context, discordID int64, job string) (*entities.WorkResult, error) {
	return s.work(ctx, discordID, job, true)
}

func (s *economyService) work(ctx context.Context, discordID int64, jobName string, requireAdvanced bool) (result *entities.WorkResult, err error) {
	jobName = strings.ToLower(strings.TrimSpace(jobName))

	var job progression.Job
	if jobName != "" {
		var ok bool
		job, ok = progression.LookupJob(jobName)
		if !ok {
			return nil, entities.NewValidationError("Invalid job! Available jobs: %s", strings.Join(progression.JobNames(), ", "))
		}
	}

	stats, err := s.statsRepo.GetOrCreate(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get economy stats: %w", err)
	}
	if requireAdvanced && !stats.HasAdvancedWork() {
		return nil, entities.NewValidationError("You need %d more works to unlock advanced work!",
			progression.AdvancedWorkThreshold-stats.WorkCount)
	}

	cd := WorkCooldownNoJob
	if jobName != "" {
		cd = WorkCooldownWithJob
	}
	if remaining, ok := s.cooldowns.TryStart(cooldown.ActionWork, discordID, cd); !ok {
		return nil, &entities.CooldownError{Action: "work", Remaining: remaining}
	}
	defer func() {
		if err != nil {
			s.cooldowns.Clear(cooldown.ActionWork, discordID)
		}
	}()

	accounts, err := s.accountRepo.LockForUpdate(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}
	account := accounts[discordID]

	result = &entities.WorkResult{Job: jobName, CooldownTime: cd}

	if jobName != "" {
		salary := job.Salary(stats.JobLevel(jobName))
		result.Earnings = s.rng.Int64Range(salary.Min, salary.Max)
	} else {
		result.Earnings = s.rng.Int64Range(NoJobSalaryMin, NoJobSalaryMax)
		result.Activity = workActivities[s.rng.IntN(len(workActivities))]
	}

	if stats.HasAdvancedWork() {
		result.Earnings *= 2
		result.Doubled = true
	}

	if jobName != "" && s.rng.Float64() < entities.ItemDropChance {
		if err := s.inventoryRepo.AddItem(ctx, discordID, jobName, 1); err != nil {
			return nil, fmt.Errorf("failed to add item: %w", err)
		}
		result.ItemFound = true
	}

	metadata := map[string]any{
		"job":     jobName,
		"doubled": result.Doubled,
	}
	if err := utils.ApplyBalanceChange(ctx, s.accountRepo, s.balanceHistoryRepo, s.eventPublisher,
		account, account.Wallet+result.Earnings, account.Bank, entities.TransactionTypeWork, metadata); err != nil {
		return nil, fmt.Errorf("failed to pay salary: %w", err)
	}

	if err := s.statsRepo.IncrementWork(ctx, discordID, jobName); err != nil {
		return nil, fmt.Errorf("failed to update work stats: %w", err)
	}

	if jobName != "" {
		result.JobCount = stats.JobCount(jobName) + 1
		result.JobLevel = progression.JobLevel(result.JobCount)
		result.JobsToNext = progression.JobsToNextLevel(result.JobCount)
	}
	result.Wallet = account.Wallet

	log.WithFields(log.Fields{
		"userID":   discordID,
		"job":      jobName,
		"earnings": result.Earnings,
		"doubled":  result.Doubled,
		"item":     result.ItemFound,
	}).Debug("Work shift completed")

	return result, nil
}

func (s *economyService) Gamble(ctx context.Context, discordID int64, amountArg string) (*entities.GambleResult, error) {
	return s.gamble(ctx, discordID, amountArg, false)
}

func (s *economyService) AdvancedGamble(ctx context.Context, discordID int64, amountArg string) (*entities.GambleResult, error) {
	return s.gamble(ctx, discordID, amountArg, true)
}

func (s *economyService) gamble(ctx context.Context, discordID int64, amountArg string, requireAdvanced bool) (*entities.GambleResult, error) {
	stats, err := s.statsRepo.GetOrCreate(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get economy stats: %w", err)
	}
	if requireAdvanced && !stats.HasAdvancedGamble() {
		return nil, entities.NewValidationError("You need %d more gambling wins to unlock advanced gambling!",
			progression.AdvancedGambleThreshold-stats.GambleWins)
	}

	accounts, err := s.accountRepo.LockForUpdate(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}
	account := accounts[discordID]

	amount, err := ParseAmount(amountArg, account.Wallet, "You don't have any money to gamble!")
	if err != nil {
		return nil, err
	}
	if amount > account.Wallet {
		return nil, entities.NewValidationError("You don't have enough money!")
	}

	chance := progression.WinChance(stats.GambleLevel())
	won := s.rng.Float64() < float64(chance)/100

	newWallet := account.Wallet - amount
	txType := entities.TransactionTypeGambleLoss
	if won {
		newWallet = account.Wallet + amount
		txType = entities.TransactionTypeGambleWin
	}

	metadata := map[string]any{
		"amount":     amount,
		"win_chance": chance,
		"won":        won,
	}
	if err := utils.ApplyBalanceChange(ctx, s.accountRepo, s.balanceHistoryRepo, s.eventPublisher,
		account, newWallet, account.Bank, txType, metadata); err != nil {
		return nil, fmt.Errorf("failed to settle gamble: %w", err)
	}

	if err := s.statsRepo.IncrementGamble(ctx, discordID, won); err != nil {
		return nil, fmt.Errorf("failed to update gamble stats: %w", err)
	}

	wins := stats.GambleWins
	if won {
		wins++
	}

	return &entities.GambleResult{
		Amount:      amount,
		Won:         won,
		WinChance:   chance,
		GambleLevel: progression.GambleLevel(stats.GambleCount + 1),
		Wallet:      account.Wallet,
		GambleWins:  wins,
	}, nil
}

func (s *economyService) Rob(ctx context.Context, thiefID, targetID int64, targetIsBot bool) (result *entities.RobResult, err error) {
	if thiefID == targetID {
		return nil, entities.NewValidationError("You can't rob yourself!")
	}
	if targetIsBot {
		return nil, entities.NewValidationError("You can't rob bots!")
	}

	if remaining, ok := s.cooldowns.TryStart(cooldown.ActionRob, thiefID, RobCooldown); !ok {
		return nil, &entities.CooldownError{Action: "rob", Remaining: remaining}
	}
	defer func() {
		if err != nil {
			s.cooldowns.Clear(cooldown.ActionRob, thiefID)
		}
	}()

	accounts, err := s.accountRepo.LockForUpdate(ctx, thiefID, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	thief, target := accounts[thiefID], accounts[targetID]

	if target.Wallet < RobMinTargetWallet {
		return nil, entities.NewValidationError("Target doesn't have enough money to rob!")
	}

	result = &entities.RobResult{TargetID: targetID}

	if s.rng.Float64() < RobSuccessChance {
		result.Success = true
		result.Stolen = s.rng.Int64Range(1, min(target.Wallet, RobMaxSteal))

		metadata := map[string]any{"thief_id": thiefID, "target_id": targetID}
		if err := utils.ApplyBalanceChange(ctx, s.accountRepo, s.balanceHistoryRepo, s.eventPublisher,
			target, target.Wallet-result.Stolen, target.Bank, entities.TransactionTypeRobVictim, metadata); err != nil {
			return nil, fmt.Errorf("failed to debit robbery target: %w", err)
		}
		if err := utils.ApplyBalanceChange(ctx, s.accountRepo, s.balanceHistoryRepo, s.eventPublisher,
			thief, thief.Wallet+result.Stolen, thief.Bank, entities.TransactionTypeRobSteal, metadata); err != nil {
			return nil, fmt.Errorf("failed to credit thief: %w", err)
		}
	} else {
		result.Fine = s.rng.Int64Range(RobFineMin, RobFineMax)
		newWallet := thief.WalletAfter(-result.Fine)
		if newWallet != thief.Wallet {
			metadata := map[string]any{"target_id": targetID, "fine": result.Fine}
			if err := utils.ApplyBalanceChange(ctx, s.accountRepo, s.balanceHistoryRepo, s.eventPublisher,
				thief, newWallet, thief.Bank, entities.TransactionTypeRobFine, metadata); err != nil {
				return nil, fmt.Errorf("failed to fine thief: %w", err)
			}
		}
	}

	result.Wallet = thief.Wallet
	result.TargetLeft = target.Wallet
	return result, nil
}

func (s *economyService) Deposit(ctx context.Context, discordID int64, amountArg string) (*entities.TransferResult, error) {
	accounts, err := s.accountRepo.LockForUpdate(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}
	account := accounts[discordID]

	amount, err := ParseAmount(amountArg, account.Wallet, "You don't have any money to deposit!")
	if err != nil {
		return nil, err
	}
	if amount > account.Wallet {
		return nil, entities.NewValidationError("You don't have enough money in your wallet!")
	}

	if err := utils.ApplyBalanceChange(ctx, s.accountRepo, s.balanceHistoryRepo, s.eventPublisher,
		account, account.Wallet-amount, account.Bank+amount, entities.TransactionTypeDeposit, nil); err != nil {
		return nil, fmt.Errorf("failed to deposit: %w", err)
	}

	return &entities.TransferResult{Amount: amount, Wallet: account.Wallet, Bank: account.Bank}, nil
}

func (s *economyService) Withdraw(ctx context.Context, discordID int64, amountArg string) (*entities.TransferResult, error) {
	accounts, err := s.accountRepo.LockForUpdate(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}
	account := accounts[discordID]

	amount, err := ParseAmount(amountArg, account.Bank, "You don't have any money in the bank!")
	if err != nil {
		return nil, err
	}
	if amount > account.Bank {
		return nil, entities.NewValidationError("You don't have enough money in your bank!")
	}

	if err := utils.ApplyBalanceChange(ctx, s.accountRepo, s.balanceHistoryRepo, s.eventPublisher,
		account, account.Wallet+amount, account.Bank-amount, entities.TransactionTypeWithdraw, nil); err != nil {
		return nil, fmt.Errorf("failed to withdraw: %w", err)
	}

	return &entities.TransferResult{Amount: amount, Wallet: account.Wallet, Bank: account.Bank}, nil
}

func (s *economyService) SellItem(ctx context.Context, discordID int64, item string) (*entities.SaleResult, error) {
	item = strings.ToLower(strings.TrimSpace(item))
	if !progression.IsJobItem(item) {
		return nil, entities.NewValidationError("You can't sell that item! Sellable items: %s", strings.Join(progression.JobNames(), ", "))
	}

	removed, err := s.inventoryRepo.RemoveOne(ctx, discordID, item)
	if err != nil {
		return nil, fmt.Errorf("failed to remove item: %w", err)
	}
	if !removed {
		return nil, entities.NewValidationError("You don't have any %s to sell!", item)
	}

	accounts, err := s.accountRepo.LockForUpdate(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}
	account := accounts[discordID]

	price := s.rng.Int64Range(entities.ItemSaleMinPrice, entities.ItemSaleMaxPrice)
	if err := utils.ApplyBalanceChange(ctx, s.accountRepo, s.balanceHistoryRepo, s.eventPublisher,
		account, account.Wallet+price, account.Bank, entities.TransactionTypeMarketSale,
		map[string]any{"item": item}); err != nil {
		return nil, fmt.Errorf("failed to pay for item: %w", err)
	}

	remaining, err := s.inventoryRepo.GetCount(ctx, discordID, item)
	if err != nil {
		return nil, fmt.Errorf("failed to count items: %w", err)
	}

	return &entities.SaleResult{Item: item, Price: price, Remaining: remaining, Wallet: account.Wallet}, nil
}

func (s *economyService) GetInventory(ctx context.Context, discordID int64) ([]*entities.InventoryItem, error) {
	items, err := s.inventoryRepo.GetByUser(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	return items, nil
}

func (s *economyService) GetStats(ctx context.Context, discordID int64) (*entities.StatsSummary, error) {
	stats, err := s.statsRepo.GetOrCreate(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get economy stats: %w", err)
	}

	summary := &entities.StatsSummary{
		WorkCount:      stats.WorkCount,
		GambleLevel:    stats.GambleLevel(),
		GambleCount:    stats.GambleCount,
		GambleWins:     stats.GambleWins,
		WinChance:      progression.WinChance(stats.GambleLevel()),
		GamblesToNext:  progression.GamblesToNextLevel(stats.GambleCount),
		AdvancedWork:   stats.HasAdvancedWork(),
		AdvancedGamble: stats.HasAdvancedGamble(),
		WorksRemaining: max(0, progression.AdvancedWorkThreshold-stats.WorkCount),
		WinsRemaining:  max(0, progression.AdvancedGambleThreshold-stats.GambleWins),
	}

	for _, name := range progression.JobNames() {
		job, _ := progression.LookupJob(name)
		count := stats.JobCount(name)
		level := progression.JobLevel(count)
		salary := job.Salary(level)
		summary.Jobs = append(summary.Jobs, entities.JobStats{
			Job:        name,
			Level:      level,
			Count:      count,
			SalaryMin:  salary.Min,
			SalaryMax:  salary.Max,
			JobsToNext: progression.JobsToNextLevel(count),
		})
	}

	return summary, nil
}

func (s *economyService) GrantMoney(ctx context.Context, discordID int64, amount int64) (*entities.Account, error) {
	if amount <= 0 {
		return nil, entities.NewValidationError("Amount must be positive!")
	}

	accounts, err := s.accountRepo.LockForUpdate(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}
	account := accounts[discordID]
	if amount > math.MaxInt64-account.Wallet-account.Bank {
		return nil, entities.NewValidationError("That would push their balance past the maximum!")
	}

	if err := utils.ApplyBalanceChange(ctx, s.accountRepo, s.balanceHistoryRepo, s.eventPublisher,
		account, account.Wallet+amount, account.Bank, entities.TransactionTypeAdminGrant, nil); err != nil {
		return nil, fmt.Errorf("failed to grant money: %w", err)
	}
	return account, nil
}

func (s *economyService) RemoveMoney(ctx context.Context, discordID int64, amount int64) (*entities.Account, error) {
	if amount <= 0 {
		return nil, entities.NewValidationError("Amount must be positive!")
	}

	accounts, err := s.accountRepo.LockForUpdate(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}
	account := accounts[discordID]

	if account.Wallet < amount {
		return nil, entities.NewValidationError("User doesn't have enough money!")
	}

	if err := utils.ApplyBalanceChange(ctx, s.accountRepo, s.balanceHistoryRepo, s.eventPublisher,
		account, account.Wallet-amount, account.Bank, entities.TransactionTypeAdminRemove, nil); err != nil {
		return nil, fmt.Errorf("failed to remove money: %w", err)
	}
	return account, nil
}

func (s *economyService) GetRichest(ctx context.Context, limit int) ([]*entities.Account, error) {
	accounts, err := s.accountRepo.GetRichest(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get richest accounts: %w", err)
	}
	return accounts, nil
}
