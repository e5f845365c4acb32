package games

import "time"

// RPSTimeout is how long the player has to react
const RPSTimeout = 30 * time.Second

// Rock, paper and scissors reactions
const (
	Rock     = "🗿"
	Paper    = "📄"
	Scissors = "✂️"
)

// RPSChoices in display order
var RPSChoices = []string{Rock, Paper, Scissors}

var beats = map[string]string{
	Rock:     Scissors,
	Paper:    Rock,
	Scissors: Paper,
}

// RPSResult is the outcome from the player's point of view
type RPSResult string

const (
	RPSWin  RPSResult = "You win!"
	RPSLose RPSResult = "I win!"
	RPSTie  RPSResult = "It's a tie!"
)

// IsRPSChoice reports whether emoji is one of the three reactions
func IsRPSChoice(emoji string) bool {
	_, ok := beats[emoji]
	return ok
}

// DecideRPS compares the player's choice against the bot's
func DecideRPS(player, bot string) RPSResult {
	switch {
	case player == bot:
		return RPSTie
	case beats[player] == bot:
		return RPSWin
	default:
		return RPSLose
	}
}

// RPS is a single round waiting for the player's reaction
type RPS struct {
	PlayerID   int64
	PlayerPick string
	BotPick    string
	Result     RPSResult
	State      State
}

// NewRPS opens a round for the player
func NewRPS(playerID int64) *RPS {
	return &RPS{PlayerID: playerID, State: StateAwaitingInput}
}

// Pick resolves the round. botIndex selects the bot's choice from RPSChoices.
func (r *RPS) Pick(userID int64, emoji string, botIndex int) bool {
	if r.State.IsTerminal() || userID != r.PlayerID || !IsRPSChoice(emoji) {
		return false
	}
	r.PlayerPick = emoji
	r.BotPick = RPSChoices[botIndex%len(RPSChoices)]
	r.Result = DecideRPS(r.PlayerPick, r.BotPick)
	switch r.Result {
	case RPSWin:
		r.State = StateWon
	case RPSLose:
		r.State = StateLost
	default:
		r.State = StateTie
	}
	return true
}

// Timeout ends the round without a pick
func (r *RPS) Timeout() bool {
	if r.State.IsTerminal() {
		return false
	}
	r.State = StateTimedOut
	return true
}
