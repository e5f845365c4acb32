package games

import (
	"context"
	"errors"
	"fmt"

	"guildbot/bot/commands"
	"guildbot/bot/common"
	"guildbot/domain/entities"
	"guildbot/domain/games"
	"guildbot/infrastructure/observability"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleRPS(ctx context.Context, inv *commands.Invocation) error {
	msg, err := inv.ReplyEmbed(buildRPSEmbed())
	if err != nil {
		return err
	}
	addReactions(inv.Session, msg, games.RPSChoices)

	f.rps.Start(msg.ID, &rpsSession{channelID: msg.ChannelID, game: games.NewRPS(inv.AuthorID)}, games.RPSTimeout)
	gameStarted(observability.GameRPS)
	return nil
}

func (f *Feature) playRPS(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	userID, ok := reactingUser(s, r)
	if !ok {
		return
	}

	var done *rpsSession
	f.rps.Update(r.MessageID, func(rs *rpsSession) games.Step {
		if !rs.game.Pick(userID, r.Emoji.Name, f.rng.IntN(len(games.RPSChoices))) {
			return games.Hold
		}
		done = rs
		return games.Finish
	})
	if done == nil {
		return
	}

	gameEnded(observability.GameRPS)
	if _, err := s.ChannelMessageSendEmbed(done.channelID, buildRPSResultEmbed(done.game)); err != nil {
		log.WithError(err).Error("Failed to send rps result")
	}
}

func (f *Feature) onRPSTimeout(_ string, rs *rpsSession) {
	gameEnded(observability.GameRPS)
	if rs.game.Timeout() {
		send(f.session, rs.channelID, "Time's up!")
	}
}

func (f *Feature) handleTicTacToe(ctx context.Context, inv *commands.Invocation) error {
	opponentID := inv.Args.User("opponent")
	guildID := inv.Message.GuildID

	if opponentID == inv.AuthorID {
		return entities.NewValidationError("You can't play against yourself!")
	}
	if common.IsBotUser(inv.Session, guildID, opponentID) {
		return entities.NewValidationError("You can't play against bots!")
	}

	ts := &ticTacToeSession{
		channelID: inv.Message.ChannelID,
		names: map[int64]string{
			inv.AuthorID: common.GetDisplayNameInt64(inv.Session, guildID, inv.AuthorID),
			opponentID:   common.GetDisplayNameInt64(inv.Session, guildID, opponentID),
		},
		game: games.NewTicTacToe(inv.AuthorID, opponentID),
	}

	msg, err := inv.ReplyEmbed(buildTicTacToeEmbed(ts))
	if err != nil {
		return err
	}
	ts.messageID = msg.ID
	addReactions(inv.Session, msg, games.NumberEmojis[:9])

	f.ticTacToe.Start(msg.ID, ts, games.TicTacToeMoveTimeout)
	gameStarted(observability.GameTicTacToe)
	return nil
}

func (f *Feature) playTicTacToe(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	userID, ok := reactingUser(s, r)
	if !ok {
		return
	}
	cell := games.EmojiIndex(r.Emoji.Name, 9)
	if cell < 0 {
		return
	}

	var (
		session *ticTacToeSession
		notice  string
		moved   bool
		over    bool
	)
	f.ticTacToe.Update(r.MessageID, func(ts *ticTacToeSession) games.Step {
		session = ts
		err := ts.game.Play(userID, cell)
		switch {
		case errors.Is(err, games.ErrCellTaken):
			notice = "That position is already taken! Try again."
			return games.Hold
		case err != nil:
			return games.Hold
		}
		moved = true
		if ts.game.State.IsTerminal() {
			over = true
			return games.Finish
		}
		return games.Continue
	})
	if session == nil {
		return
	}

	if err := s.MessageReactionRemove(r.ChannelID, r.MessageID, r.Emoji.APIName(), r.UserID); err != nil {
		log.WithError(err).Debug("Failed to remove tic tac toe reaction")
	}
	if notice != "" {
		send(s, session.channelID, notice)
	}
	if !moved {
		return
	}

	if _, err := s.ChannelMessageEditEmbed(session.channelID, session.messageID, buildTicTacToeEmbed(session)); err != nil {
		log.WithError(err).Warn("Failed to update tic tac toe board")
	}
	if over {
		gameEnded(observability.GameTicTacToe)
		send(s, session.channelID, ticTacToeResult(session))
	}
}

func (f *Feature) onTicTacToeTimeout(_ string, ts *ticTacToeSession) {
	gameEnded(observability.GameTicTacToe)
	stalled := ts.game.Current
	if ts.game.Timeout() {
		send(f.session, ts.channelID, fmt.Sprintf("Game over! %s took too long to play.", ts.names[stalled]))
	}
}

func (f *Feature) handleHangman(ctx context.Context, inv *commands.Invocation) error {
	key := hangmanKey{channelID: inv.Message.ChannelID, playerID: inv.Message.Author.ID}
	if f.hangman.Has(key) {
		return entities.NewValidationError("You already have a hangman game running in this channel!")
	}

	word := games.HangmanWords[f.rng.IntN(len(games.HangmanWords))]
	game := games.NewHangman(inv.AuthorID, word)
	if _, err := inv.ReplyEmbed(buildHangmanEmbed(game)); err != nil {
		return err
	}

	f.hangman.Start(key, game, games.HangmanGuessTimeout)
	gameStarted(observability.GameHangman)
	return nil
}

func (f *Feature) guessHangman(s *discordgo.Session, key hangmanKey, content string) {
	var (
		game    *games.Hangman
		outcome games.GuessOutcome
	)
	f.hangman.Update(key, func(h *games.Hangman) games.Step {
		game = h
		outcome = h.Guess(content)
		switch outcome {
		case games.GuessWon, games.GuessLost, games.GuessClosed:
			return games.Finish
		default:
			return games.Continue
		}
	})
	if game == nil {
		return
	}

	switch outcome {
	case games.GuessInvalid:
		send(s, key.channelID, "Please guess one letter at a time!")
	case games.GuessRepeated:
		send(s, key.channelID, "You already guessed that letter!")
	case games.GuessWon:
		gameEnded(observability.GameHangman)
		send(s, key.channelID, fmt.Sprintf("🎉 You win! The word was: %s", game.Word))
	case games.GuessLost:
		gameEnded(observability.GameHangman)
		send(s, key.channelID, fmt.Sprintf("Game Over! The word was: %s", game.Word))
	case games.GuessClosed:
		gameEnded(observability.GameHangman)
	default:
		if _, err := s.ChannelMessageSendEmbed(key.channelID, buildHangmanEmbed(game)); err != nil {
			log.WithError(err).Error("Failed to send hangman board")
		}
	}
}

func (f *Feature) onHangmanTimeout(key hangmanKey, h *games.Hangman) {
	gameEnded(observability.GameHangman)
	if h.Timeout() {
		send(f.session, key.channelID, "Game over! You took too long to respond.")
	}
}

func (f *Feature) handleTrivia(ctx context.Context, inv *commands.Invocation) error {
	question := games.TriviaQuestions[f.rng.IntN(len(games.TriviaQuestions))]
	game := games.NewTrivia(inv.AuthorID, question, f.shuffle)

	msg, err := inv.ReplyEmbed(buildTriviaEmbed(game))
	if err != nil {
		return err
	}
	addReactions(inv.Session, msg, games.NumberEmojis[:len(game.Options)])

	f.trivia.Start(msg.ID, &triviaSession{channelID: msg.ChannelID, game: game}, games.TriviaTimeout)
	gameStarted(observability.GameTrivia)
	return nil
}

func (f *Feature) answerTrivia(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	userID, ok := reactingUser(s, r)
	if !ok {
		return
	}

	var done *triviaSession
	f.trivia.Update(r.MessageID, func(ts *triviaSession) games.Step {
		index := games.EmojiIndex(r.Emoji.Name, len(ts.game.Options))
		if !ts.game.Answer(userID, index) {
			return games.Hold
		}
		done = ts
		return games.Finish
	})
	if done == nil {
		return
	}

	gameEnded(observability.GameTrivia)
	send(s, done.channelID, triviaResult(done.game))
}

func (f *Feature) onTriviaTimeout(_ string, ts *triviaSession) {
	gameEnded(observability.GameTrivia)
	if ts.game.Timeout() {
		send(f.session, ts.channelID, "Time's up! No answer was given.")
	}
}

// reactingUser resolves the reacting user, ignoring the bot's own reactions
func reactingUser(s *discordgo.Session, r *discordgo.MessageReactionAdd) (int64, bool) {
	if s.State != nil && s.State.User != nil && r.UserID == s.State.User.ID {
		return 0, false
	}
	userID, err := common.ParseID(r.UserID)
	if err != nil {
		log.WithError(err).WithField("userID", r.UserID).Warn("Invalid reaction user id")
		return 0, false
	}
	return userID, true
}

func addReactions(s *discordgo.Session, msg *discordgo.Message, emojis []string) {
	for _, emoji := range emojis {
		if err := s.MessageReactionAdd(msg.ChannelID, msg.ID, emoji); err != nil {
			log.WithError(err).WithField("emoji", emoji).Warn("Failed to add game reaction")
			return
		}
	}
}
