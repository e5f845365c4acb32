package entities

import "time"

// WorkResult is the outcome of a work shift
type WorkResult struct {
	Job          string
	Activity     string
	Earnings     int64
	Doubled      bool
	ItemFound    bool
	JobLevel     int64
	JobCount     int64
	JobsToNext   int64
	Wallet       int64
	CooldownTime time.Duration
}

// GambleResult is the outcome of a gamble
type GambleResult struct {
	Amount      int64
	Won         bool
	WinChance   int64
	GambleLevel int64
	Wallet      int64
	GambleWins  int64
}

// RobResult is the outcome of a robbery attempt
type RobResult struct {
	TargetID   int64
	Success    bool
	Stolen     int64
	Fine       int64
	Wallet     int64
	TargetLeft int64
}

// TransferResult is the outcome of a deposit or withdrawal
type TransferResult struct {
	Amount int64
	Wallet int64
	Bank   int64
}

// SaleResult is the outcome of selling an item at the market
type SaleResult struct {
	Item      string
	Price     int64
	Remaining int64
	Wallet    int64
}

// ChallengeResult is the outcome of a pet battle
type ChallengeResult struct {
	ChallengerPet   *Pet
	OpponentPet     *Pet
	ChallengerPower float64
	OpponentPower   float64
	WinnerID        int64
	LoserID         int64
	Bet             int64
}

// JobStats summarises progress at one job
type JobStats struct {
	Job        string
	Level      int64
	Count      int64
	SalaryMin  int64
	SalaryMax  int64
	JobsToNext int64
}

// StatsSummary is the data shown by !stats
type StatsSummary struct {
	Jobs           []JobStats
	WorkCount      int64
	GambleLevel    int64
	GambleCount    int64
	GambleWins     int64
	WinChance      int64
	GamblesToNext  int64
	AdvancedWork   bool
	AdvancedGamble bool
	WorksRemaining int64
	WinsRemaining  int64
}
