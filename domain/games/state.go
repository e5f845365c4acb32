package games

// State is the lifecycle position of an interactive game
type State string

const (
	// StateAwaitingInput means the game is waiting for a move, guess or answer
	StateAwaitingInput State = "awaiting_input"
	StateWon           State = "won"
	StateLost          State = "lost"
	StateTie           State = "tie"
	StateTimedOut      State = "timed_out"
)

// IsTerminal reports whether no further input is accepted
func (s State) IsTerminal() bool {
	return s != StateAwaitingInput
}

// NumberEmojis are the keycap reactions used for board cells, trivia options and poll options
var NumberEmojis = []string{"1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣", "6️⃣", "7️⃣", "8️⃣", "9️⃣", "🔟"}

// EmojiIndex returns the zero-based position of a keycap emoji among the first n, or -1
func EmojiIndex(emoji string, n int) int {
	if n > len(NumberEmojis) {
		n = len(NumberEmojis)
	}
	for i := 0; i < n; i++ {
		if NumberEmojis[i] == emoji {
			return i
		}
	}
	return -1
}
