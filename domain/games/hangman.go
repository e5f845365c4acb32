package games

import (
	"sort"
	"strings"
	"time"
)

const (
	HangmanTries        = 6
	HangmanGuessTimeout = 30 * time.Second
)

// HangmanWords is the word pool
var HangmanWords = []string{"python", "programming", "computer", "algorithm", "database", "network", "security"}

// GuessOutcome is the result of a single hangman guess
type GuessOutcome int

const (
	GuessHit GuessOutcome = iota
	GuessMiss
	// GuessInvalid means the input was not exactly one letter
	GuessInvalid
	// GuessRepeated means the letter was already guessed
	GuessRepeated
	GuessWon
	GuessLost
	GuessClosed
)

// Hangman is a single player word guessing game
type Hangman struct {
	PlayerID  int64
	Word      string
	TriesLeft int
	State     State
	guessed   map[rune]bool
}

// NewHangman starts a game for the player with the given word
func NewHangman(playerID int64, word string) *Hangman {
	return &Hangman{
		PlayerID:  playerID,
		Word:      strings.ToLower(word),
		TriesLeft: HangmanTries,
		State:     StateAwaitingInput,
		guessed:   make(map[rune]bool),
	}
}

// Guess applies one guess. Only a single letter counts; anything else is reported as invalid
// without costing a try.
func (h *Hangman) Guess(input string) GuessOutcome {
	if h.State.IsTerminal() {
		return GuessClosed
	}

	letters := []rune(strings.ToLower(strings.TrimSpace(input)))
	if len(letters) != 1 {
		return GuessInvalid
	}
	letter := letters[0]
	if h.guessed[letter] {
		return GuessRepeated
	}
	h.guessed[letter] = true

	if !strings.ContainsRune(h.Word, letter) {
		h.TriesLeft--
		if h.TriesLeft == 0 {
			h.State = StateLost
			return GuessLost
		}
		return GuessMiss
	}

	if h.solved() {
		h.State = StateWon
		return GuessWon
	}
	return GuessHit
}

// Timeout ends an unfinished game
func (h *Hangman) Timeout() bool {
	if h.State.IsTerminal() {
		return false
	}
	h.State = StateTimedOut
	return true
}

// Display shows guessed letters and underscores, separated by spaces
func (h *Hangman) Display() string {
	parts := make([]string, 0, len(h.Word))
	for _, r := range h.Word {
		if h.guessed[r] {
			parts = append(parts, string(r))
		} else {
			parts = append(parts, "_")
		}
	}
	return strings.Join(parts, " ")
}

// Guessed returns the guessed letters in alphabetical order
func (h *Hangman) Guessed() []string {
	letters := make([]string, 0, len(h.guessed))
	for r := range h.guessed {
		letters = append(letters, string(r))
	}
	sort.Strings(letters)
	return letters
}

func (h *Hangman) solved() bool {
	for _, r := range h.Word {
		if !h.guessed[r] {
			return false
		}
	}
	return true
}
