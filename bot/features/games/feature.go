package games

import (
	"math/rand/v2"

	"guildbot/bot/commands"
	"guildbot/domain/games"
	"guildbot/domain/interfaces"
	"guildbot/infrastructure/observability"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const category = "Games"

type rpsSession struct {
	channelID string
	game      *games.RPS
}

type ticTacToeSession struct {
	channelID string
	messageID string
	names     map[int64]string
	game      *games.TicTacToe
}

type triviaSession struct {
	channelID string
	game      *games.Trivia
}

// hangman games are keyed by the player and the channel they play in
type hangmanKey struct {
	channelID string
	playerID  string
}

// Feature runs the reaction and message driven mini-games.
// Each game is a state machine held in a registry until it finishes or times out.
type Feature struct {
	session *discordgo.Session
	rng     interfaces.RandomSource
	shuffle games.Shuffler

	rps       *games.Registry[string, *rpsSession]
	ticTacToe *games.Registry[string, *ticTacToeSession]
	trivia    *games.Registry[string, *triviaSession]
	hangman   *games.Registry[hangmanKey, *games.Hangman]
}

// NewFeature creates a new games feature instance
func NewFeature(session *discordgo.Session, rng interfaces.RandomSource) *Feature {
	f := &Feature{
		session: session,
		rng:     rng,
		shuffle: rand.Shuffle,
	}
	f.rps = games.NewRegistry(f.onRPSTimeout)
	f.ticTacToe = games.NewRegistry(f.onTicTacToeTimeout)
	f.trivia = games.NewRegistry(f.onTriviaTimeout)
	f.hangman = games.NewRegistry(f.onHangmanTimeout)
	return f
}

// Stop drops every running game without announcing timeouts
func (f *Feature) Stop() {
	f.rps.Stop()
	f.ticTacToe.Stop()
	f.trivia.Stop()
	f.hangman.Stop()
}

// Commands returns the games command table
func (f *Feature) Commands() []*commands.Command {
	return []*commands.Command{
		{
			Name:        "rps",
			Category:    category,
			Description: "Play rock, paper, scissors",
			Handler:     f.handleRPS,
		},
		{
			Name:        "tictactoe",
			Aliases:     []string{"ttt"},
			Category:    category,
			Description: "Challenge a member to tic tac toe",
			Args:        []commands.ArgSpec{{Name: "opponent", Kind: commands.ArgUser}},
			GuildOnly:   true,
			Handler:     f.handleTicTacToe,
		},
		{
			Name:        "hangman",
			Category:    category,
			Description: "Guess the word one letter at a time",
			Handler:     f.handleHangman,
		},
		{
			Name:        "trivia",
			Category:    category,
			Description: "Answer a trivia question",
			Handler:     f.handleTrivia,
		},
	}
}

// HandleReactionAdd advances the game whose message received the reaction.
// It returns true if the message belonged to a game.
func (f *Feature) HandleReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) bool {
	switch {
	case f.rps.Has(r.MessageID):
		f.playRPS(s, r)
	case f.ticTacToe.Has(r.MessageID):
		f.playTicTacToe(s, r)
	case f.trivia.Has(r.MessageID):
		f.answerTrivia(s, r)
	default:
		return false
	}
	return true
}

// HandleMessage treats a non-command message as a hangman guess when its author has a game in that channel.
// It returns true if the message was consumed.
func (f *Feature) HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	if m.Author == nil {
		return false
	}
	key := hangmanKey{channelID: m.ChannelID, playerID: m.Author.ID}
	if !f.hangman.Has(key) {
		return false
	}
	f.guessHangman(s, key, m.Content)
	return true
}

func send(s *discordgo.Session, channelID, content string) {
	if _, err := s.ChannelMessageSend(channelID, content); err != nil {
		log.WithError(err).WithField("channelID", channelID).Error("Failed to send game message")
	}
}

func gameStarted(gameType string) {
	observability.GetMetrics().UpdateActiveGames(gameType, 1)
}

func gameEnded(gameType string) {
	observability.GetMetrics().UpdateActiveGames(gameType, -1)
}
