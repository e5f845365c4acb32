package fun

import (
	"context"
	"fmt"
	"strings"

	"guildbot/bot/commands"
	"guildbot/bot/common"
	"guildbot/domain/games"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleEightBall(ctx context.Context, inv *commands.Invocation) error {
	_, err := inv.ReplyEmbed(&discordgo.MessageEmbed{
		Title: "🎱 Magic 8 Ball",
		Color: common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Question", Value: common.Truncate(inv.Args.String("question"), 1024)},
			{Name: "Answer", Value: games.EightBall(f.rng)},
		},
	})
	return err
}

func (f *Feature) handleRoll(ctx context.Context, inv *commands.Invocation) error {
	roll, err := games.RollDice(f.rng, inv.Args.String("dice"))
	if err != nil {
		return err
	}
	_, err = inv.ReplyEmbed(buildRollEmbed(roll))
	return err
}

func (f *Feature) handleChoose(ctx context.Context, inv *commands.Invocation) error {
	choices := inv.Args.List("choices")
	choice, err := games.Choose(f.rng, choices)
	if err != nil {
		return err
	}
	_, err = inv.ReplyEmbed(&discordgo.MessageEmbed{
		Title: "🤔 Choice Made",
		Color: common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Options", Value: strings.Join(choices, ", ")},
			{Name: "I choose", Value: choice},
		},
	})
	return err
}

func (f *Feature) handleFlip(ctx context.Context, inv *commands.Invocation) error {
	_, err := inv.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "🪙 Coin Flip",
		Description: fmt.Sprintf("Result: **%s**", games.FlipCoin(f.rng)),
		Color:       common.ColorGold,
	})
	return err
}

func (f *Feature) handleJoke(ctx context.Context, inv *commands.Invocation) error {
	joke, fromAPI := f.FetchJoke(ctx)
	if !fromAPI {
		log.Debug("Joke API unavailable, using built-in joke")
	}
	_, err := inv.ReplyEmbed(&discordgo.MessageEmbed{
		Title: "😄 Random Joke",
		Color: common.ColorGold,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Setup", Value: joke.Setup},
			{Name: "Punchline", Value: joke.Punchline},
		},
	})
	return err
}

func (f *Feature) handleFact(ctx context.Context, inv *commands.Invocation) error {
	fact, fromAPI := f.FetchFact(ctx)
	if !fromAPI {
		log.Debug("Fact API unavailable, using built-in fact")
	}
	_, err := inv.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "🤓 Random Fact",
		Description: fact,
		Color:       common.ColorInfo,
	})
	return err
}

func (f *Feature) handleMeme(ctx context.Context, inv *commands.Invocation) error {
	meme, err := f.FetchMeme(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to fetch meme")
		_, err = inv.Reply("Couldn't fetch a meme right now!")
		return err
	}
	_, err = inv.ReplyEmbed(&discordgo.MessageEmbed{
		Title:  common.Truncate(meme.Title, 256),
		URL:    meme.PostLink,
		Color:  common.ColorOrange,
		Image:  &discordgo.MessageEmbedImage{URL: meme.URL},
		Footer: &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("👍 %d | From r/%s", meme.Ups, meme.Subreddit)},
	})
	return err
}

func (f *Feature) handlePoll(ctx context.Context, inv *commands.Invocation) error {
	question := inv.Args.String("question")
	options := inv.Args.List("options")
	if err := games.ValidatePoll(question, options); err != nil {
		return err
	}

	msg, err := inv.ReplyEmbed(buildPollEmbed(question, options, inv.Author().Username))
	if err != nil {
		return err
	}
	for i := range options {
		if err := inv.Session.MessageReactionAdd(msg.ChannelID, msg.ID, games.NumberEmojis[i]); err != nil {
			return common.NewPlatformError(err, "add poll reactions")
		}
	}
	return nil
}

func buildRollEmbed(roll *games.DiceRoll) *discordgo.MessageEmbed {
	values := make([]string, len(roll.Rolls))
	for i, r := range roll.Rolls {
		values[i] = fmt.Sprintf("%d", r)
	}
	return &discordgo.MessageEmbed{
		Title: "🎲 Dice Roll",
		Color: common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Rolls", Value: strings.Join(values, ", ")},
			{Name: "Total", Value: fmt.Sprintf("%d", roll.Total)},
		},
	}
}

func buildPollEmbed(question string, options []string, author string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "📊 Poll",
		Color: common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Question", Value: question},
			{Name: "Options", Value: strings.Join(games.PollLines(options), "\n")},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Poll by " + author},
	}
}

