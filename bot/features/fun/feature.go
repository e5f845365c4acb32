package fun

import (
	"net/http"
	"time"

	"guildbot/bot/commands"
	"guildbot/domain/interfaces"
)

const category = "Fun"

// Default content endpoints
const (
	JokeURL = "https://official-joke-api.appspot.com/random_joke"
	FactURL = "https://uselessfacts.jsph.pl/random.json?language=en"
	MemeURL = "https://meme-api.com/gimme"
)

// Feature implements the quick fun commands
type Feature struct {
	rng    interfaces.RandomSource
	client *http.Client
	urls   Endpoints
}

// Endpoints holds the URLs of the joke, fact and meme APIs
type Endpoints struct {
	Joke string
	Fact string
	Meme string
}

// DefaultEndpoints returns the public APIs
func DefaultEndpoints() Endpoints {
	return Endpoints{Joke: JokeURL, Fact: FactURL, Meme: MemeURL}
}

// NewFeature creates a new fun feature instance
func NewFeature(rng interfaces.RandomSource, urls Endpoints) *Feature {
	return &Feature{
		rng:    rng,
		client: &http.Client{Timeout: 10 * time.Second},
		urls:   urls,
	}
}

// Commands returns the fun command table
func (f *Feature) Commands() []*commands.Command {
	return []*commands.Command{
		{
			Name:        "8ball",
			Category:    category,
			Description: "Ask the magic 8 ball a question",
			Args:        []commands.ArgSpec{{Name: "question", Kind: commands.ArgRest}},
			Handler:     f.handleEightBall,
		},
		{
			Name:        "roll",
			Category:    category,
			Description: "Roll dice in NdN format",
			Args:        []commands.ArgSpec{{Name: "dice", Kind: commands.ArgString, Optional: true}},
			Handler:     f.handleRoll,
		},
		{
			Name:        "choose",
			Category:    category,
			Description: "Choose between multiple options",
			Args:        []commands.ArgSpec{{Name: "choices", Kind: commands.ArgList}},
			Handler:     f.handleChoose,
		},
		{
			Name:        "flip",
			Aliases:     []string{"coinflip"},
			Category:    category,
			Description: "Flip a coin",
			Handler:     f.handleFlip,
		},
		{
			Name:        "joke",
			Category:    category,
			Description: "Get a random joke",
			Handler:     f.handleJoke,
		},
		{
			Name:        "fact",
			Category:    category,
			Description: "Get a random fact",
			Handler:     f.handleFact,
		},
		{
			Name:        "meme",
			Category:    category,
			Description: "Get a random meme",
			Handler:     f.handleMeme,
		},
		{
			Name:        "poll",
			Category:    category,
			Description: `Create a poll: !poll "question" option1 option2 ...`,
			Args: []commands.ArgSpec{
				{Name: "question", Kind: commands.ArgString},
				{Name: "options", Kind: commands.ArgList},
			},
			Handler: f.handlePoll,
		},
	}
}
