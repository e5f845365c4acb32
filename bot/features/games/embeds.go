package games

import (
	"fmt"
	"strings"

	"guildbot/bot/common"
	"guildbot/domain/games"

	"github.com/bwmarrin/discordgo"
)

var rpsNames = map[string]string{
	games.Rock:     "Rock",
	games.Paper:    "Paper",
	games.Scissors: "Scissors",
}

func buildRPSEmbed() *discordgo.MessageEmbed {
	options := make([]string, 0, len(games.RPSChoices))
	for _, choice := range games.RPSChoices {
		options = append(options, fmt.Sprintf("%s - %s", choice, rpsNames[choice]))
	}
	return &discordgo.MessageEmbed{
		Title:       "Rock, Paper, Scissors",
		Description: "React to play!",
		Color:       common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Options", Value: strings.Join(options, "\n")},
		},
	}
}

func buildRPSResultEmbed(g *games.RPS) *discordgo.MessageEmbed {
	color := common.ColorWarning
	switch g.Result {
	case games.RPSWin:
		color = common.ColorSuccess
	case games.RPSLose:
		color = common.ColorDanger
	}
	return &discordgo.MessageEmbed{
		Title: "Rock, Paper, Scissors Results",
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Your Choice", Value: g.PlayerPick, Inline: true},
			{Name: "My Choice", Value: g.BotPick, Inline: true},
			{Name: "Result", Value: string(g.Result)},
		},
	}
}

func buildTicTacToeEmbed(ts *ticTacToeSession) *discordgo.MessageEmbed {
	g := ts.game
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Tic Tac Toe: %s vs %s", ts.names[g.PlayerX], ts.names[g.PlayerO]),
		Description: fmt.Sprintf("Current turn: %s\n\n%s", ts.names[g.Current], g.Render()),
		Color:       common.ColorPrimary,
	}
}

func ticTacToeResult(ts *ticTacToeSession) string {
	if ts.game.State == games.StateTie {
		return "It's a tie!"
	}
	return fmt.Sprintf("🎉 %s wins! 🎉", ts.names[ts.game.Winner])
}

func buildHangmanEmbed(h *games.Hangman) *discordgo.MessageEmbed {
	guessed := strings.Join(h.Guessed(), ", ")
	if guessed == "" {
		guessed = "None"
	}
	return &discordgo.MessageEmbed{
		Title:       "Hangman",
		Description: fmt.Sprintf("Word: %s\nGuesses left: %d\nGuessed letters: %s", h.Display(), h.TriesLeft, guessed),
		Color:       common.ColorInfo,
	}
}

func buildTriviaEmbed(t *games.Trivia) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(t.Options))
	for i, option := range t.Options {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Option %d", i+1),
			Value: option,
		})
	}
	return &discordgo.MessageEmbed{
		Title:       "Trivia Time!",
		Description: t.Question.Question,
		Color:       common.ColorPurple,
		Fields:      fields,
	}
}

func triviaResult(t *games.Trivia) string {
	if t.Correct {
		return "🎉 Correct! Well done!"
	}
	answer := t.Question.Answer
	for _, option := range t.Options {
		if strings.EqualFold(option, answer) {
			answer = option
			break
		}
	}
	return fmt.Sprintf("❌ Wrong! The correct answer was: %s", answer)
}
