package entities

// TransactionType represents the type of balance change
type TransactionType string

// All transaction types supported by the system
const (
	// Earnings
	TransactionTypeWork       TransactionType = "work"
	TransactionTypeMarketSale TransactionType = "market_sale"

	// Gambling
	TransactionTypeGambleWin  TransactionType = "gamble_win"
	TransactionTypeGambleLoss TransactionType = "gamble_loss"

	// Robbery
	TransactionTypeRobSteal  TransactionType = "rob_steal"
	TransactionTypeRobVictim TransactionType = "rob_victim"
	TransactionTypeRobFine   TransactionType = "rob_fine"

	// Bank heists
	TransactionTypeHeistLoot   TransactionType = "heist_loot"
	TransactionTypeHeistFee    TransactionType = "heist_fee"
	TransactionTypeHeistVictim TransactionType = "heist_victim"

	// Wallet and bank movement
	TransactionTypeDeposit  TransactionType = "deposit"
	TransactionTypeWithdraw TransactionType = "withdraw"

	// Pets
	TransactionTypePetPurchase   TransactionType = "pet_purchase"
	TransactionTypeChallengeWin  TransactionType = "challenge_win"
	TransactionTypeChallengeLoss TransactionType = "challenge_loss"

	// Admin
	TransactionTypeAdminGrant  TransactionType = "admin_grant"
	TransactionTypeAdminRemove TransactionType = "admin_remove"
)

// IsWinType returns true if the transaction type represents a win
func (tt TransactionType) IsWinType() bool {
	return tt == TransactionTypeGambleWin ||
		tt == TransactionTypeChallengeWin ||
		tt == TransactionTypeRobSteal ||
		tt == TransactionTypeHeistLoot
}

// IsLossType returns true if the transaction type represents a loss
func (tt TransactionType) IsLossType() bool {
	return tt == TransactionTypeGambleLoss ||
		tt == TransactionTypeChallengeLoss ||
		tt == TransactionTypeRobFine ||
		tt == TransactionTypeHeistFee
}

// IsTransferType returns true for wealth-neutral wallet/bank moves
func (tt TransactionType) IsTransferType() bool {
	return tt == TransactionTypeDeposit ||
		tt == TransactionTypeWithdraw
}

// IsAdminType returns true for moderator grants and removals
func (tt TransactionType) IsAdminType() bool {
	return tt == TransactionTypeAdminGrant ||
		tt == TransactionTypeAdminRemove
}

// String returns the string representation of the transaction type
func (tt TransactionType) String() string {
	return string(tt)
}
