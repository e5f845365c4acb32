package games

import (
	"strings"
	"time"
)

// TriviaTimeout is how long the player has to pick an option
const TriviaTimeout = 30 * time.Second

// TriviaQuestion is a multiple choice question
type TriviaQuestion struct {
	Question string
	Answer   string
	Options  []string
}

// TriviaQuestions is the built-in question bank
var TriviaQuestions = []TriviaQuestion{
	{
		Question: "What is the capital of France?",
		Answer:   "paris",
		Options:  []string{"London", "Paris", "Berlin", "Madrid"},
	},
}

// Shuffler permutes n items by calling swap. rand.Shuffle satisfies it.
type Shuffler func(n int, swap func(i, j int))

// Trivia is one question awaiting the player's reaction
type Trivia struct {
	PlayerID int64
	Question TriviaQuestion
	Options  []string
	Correct  bool
	State    State
}

// NewTrivia prepares a question with its options shuffled
func NewTrivia(playerID int64, q TriviaQuestion, shuffle Shuffler) *Trivia {
	options := make([]string, len(q.Options))
	copy(options, q.Options)
	if shuffle != nil {
		shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	}
	return &Trivia{
		PlayerID: playerID,
		Question: q,
		Options:  options,
		State:    StateAwaitingInput,
	}
}

// Answer selects an option by zero-based index. It returns false when the
// answer is not accepted (wrong player, out of range or already finished).
func (t *Trivia) Answer(userID int64, index int) bool {
	if t.State.IsTerminal() || userID != t.PlayerID || index < 0 || index >= len(t.Options) {
		return false
	}
	t.Correct = strings.EqualFold(t.Options[index], t.Question.Answer)
	if t.Correct {
		t.State = StateWon
	} else {
		t.State = StateLost
	}
	return true
}

// Timeout ends an unanswered question
func (t *Trivia) Timeout() bool {
	if t.State.IsTerminal() {
		return false
	}
	t.State = StateTimedOut
	return true
}
