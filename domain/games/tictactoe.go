package games

import (
	"errors"
	"strings"
	"time"
)

// TicTacToeMoveTimeout is how long the current player has to react
const TicTacToeMoveTimeout = 30 * time.Second

// Board cell marks
const (
	MarkEmpty = "⬜"
	MarkX     = "❌"
	MarkO     = "⭕"
)

var (
	ErrNotYourTurn  = errors.New("not your turn")
	ErrCellTaken    = errors.New("position already taken")
	ErrInvalidCell  = errors.New("invalid cell")
	ErrGameFinished = errors.New("game is already over")
)

var winningLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// TicTacToe is a two player game. The challenger plays X and moves first.
type TicTacToe struct {
	PlayerX int64
	PlayerO int64
	Current int64
	Winner  int64
	State   State
	board   [9]string
}

// NewTicTacToe creates an empty board with the challenger to move
func NewTicTacToe(challenger, opponent int64) *TicTacToe {
	g := &TicTacToe{
		PlayerX: challenger,
		PlayerO: opponent,
		Current: challenger,
		State:   StateAwaitingInput,
	}
	for i := range g.board {
		g.board[i] = MarkEmpty
	}
	return g
}

// Play places the current player's mark on cell (0-8).
// An occupied cell leaves the turn unchanged.
func (g *TicTacToe) Play(userID int64, cell int) error {
	if g.State.IsTerminal() {
		return ErrGameFinished
	}
	if userID != g.Current {
		return ErrNotYourTurn
	}
	if cell < 0 || cell >= len(g.board) {
		return ErrInvalidCell
	}
	if g.board[cell] != MarkEmpty {
		return ErrCellTaken
	}

	g.board[cell] = g.markFor(userID)
	switch {
	case g.hasLine():
		g.State = StateWon
		g.Winner = userID
	case g.full():
		g.State = StateTie
	default:
		g.Current = g.Opponent(userID)
	}
	return nil
}

// Timeout ends the game because the current player did not move.
// It returns false if the game had already finished.
func (g *TicTacToe) Timeout() bool {
	if g.State.IsTerminal() {
		return false
	}
	g.State = StateTimedOut
	return true
}

// Opponent returns the other player
func (g *TicTacToe) Opponent(userID int64) int64 {
	if userID == g.PlayerX {
		return g.PlayerO
	}
	return g.PlayerX
}

// Cell returns the mark at a position
func (g *TicTacToe) Cell(i int) string {
	return g.board[i]
}

// Render draws the board as three rows of emoji
func (g *TicTacToe) Render() string {
	var sb strings.Builder
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			sb.WriteString(g.board[row*3+col])
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (g *TicTacToe) markFor(userID int64) string {
	if userID == g.PlayerX {
		return MarkX
	}
	return MarkO
}

func (g *TicTacToe) hasLine() bool {
	for _, line := range winningLines {
		a, b, c := g.board[line[0]], g.board[line[1]], g.board[line[2]]
		if a != MarkEmpty && a == b && b == c {
			return true
		}
	}
	return false
}

func (g *TicTacToe) full() bool {
	for _, cell := range g.board {
		if cell == MarkEmpty {
			return false
		}
	}
	return true
}
