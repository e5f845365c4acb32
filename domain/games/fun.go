package games

import (
	"strconv"
	"strings"

	"guildbot/domain/entities"
	"guildbot/domain/interfaces"
)

const (
	MaxDice        = 25
	MinPollOptions = 2
	MaxPollOptions = 10
	DefaultDice    = "1d6"
)

// EightBallResponses are the classic magic 8 ball answers
var EightBallResponses = []string{
	"It is certain.", "It is decidedly so.", "Without a doubt.",
	"Yes - definitely.", "You may rely on it.", "As I see it, yes.",
	"Most likely.", "Outlook good.", "Yes.", "Signs point to yes.",
	"Reply hazy, try again.", "Ask again later.", "Better not tell you now.",
	"Cannot predict now.", "Concentrate and ask again.",
	"Don't count on it.", "My reply is no.", "My sources say no.",
	"Outlook not so good.", "Very doubtful.",
}

// Joke is a two part joke
type Joke struct {
	Setup     string `json:"setup"`
	Punchline string `json:"punchline"`
}

// FallbackJokes are served when the joke API is unreachable
var FallbackJokes = []Joke{
	{Setup: "Why do programmers prefer dark mode?", Punchline: "Because light attracts bugs."},
	{Setup: "Why did the developer go broke?", Punchline: "Because he used up all his cache."},
	{Setup: "How many programmers does it take to change a light bulb?", Punchline: "None, that's a hardware problem."},
	{Setup: "Why do Java developers wear glasses?", Punchline: "Because they don't C#."},
	{Setup: "What is a computer's favorite snack?", Punchline: "Microchips."},
}

// FallbackFacts are served when the fact API is unreachable
var FallbackFacts = []string{
	"Honey never spoils.",
	"Octopuses have three hearts.",
	"Bananas are berries, but strawberries aren't.",
	"A day on Venus is longer than a year on Venus.",
	"The Eiffel Tower can be about 15 cm taller during the summer.",
}

var errDiceFormat = entities.NewValidationError("Format has to be in NdN!")

// DiceRoll is the result of a roll command
type DiceRoll struct {
	Rolls []int64
	Total int64
}

// ParseDice parses NdN notation. An empty string means 1d6.
func ParseDice(spec string) (count int, sides int64, err error) {
	spec = strings.ToLower(strings.TrimSpace(spec))
	if spec == "" {
		spec = DefaultDice
	}
	parts := strings.Split(spec, "d")
	if len(parts) != 2 {
		return 0, 0, errDiceFormat
	}
	count, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, errDiceFormat
	}
	sides, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, errDiceFormat
	}
	if count > MaxDice {
		return 0, 0, entities.NewValidationError("Too many dice! Maximum is %d", MaxDice)
	}
	if count < 1 || sides < 1 {
		return 0, 0, errDiceFormat
	}
	return count, sides, nil
}

// RollDice rolls dice in NdN notation
func RollDice(rng interfaces.RandomSource, spec string) (*DiceRoll, error) {
	count, sides, err := ParseDice(spec)
	if err != nil {
		return nil, err
	}
	roll := &DiceRoll{Rolls: make([]int64, count)}
	for i := range roll.Rolls {
		roll.Rolls[i] = rng.Int64Range(1, sides)
		roll.Total += roll.Rolls[i]
	}
	return roll, nil
}

// EightBall picks an answer
func EightBall(rng interfaces.RandomSource) string {
	return EightBallResponses[rng.IntN(len(EightBallResponses))]
}

// Choose picks one of at least two choices
func Choose(rng interfaces.RandomSource, choices []string) (string, error) {
	if len(choices) < 2 {
		return "", entities.NewValidationError("Please provide at least 2 choices!")
	}
	return choices[rng.IntN(len(choices))], nil
}

// FlipCoin returns Heads or Tails
func FlipCoin(rng interfaces.RandomSource) string {
	if rng.IntN(2) == 0 {
		return "Heads"
	}
	return "Tails"
}

// ValidatePoll checks the option count of a poll
func ValidatePoll(question string, options []string) error {
	if strings.TrimSpace(question) == "" {
		return entities.NewValidationError("Please provide a question!")
	}
	if len(options) < MinPollOptions {
		return entities.NewValidationError("Please provide at least 2 options!")
	}
	if len(options) > MaxPollOptions {
		return entities.NewValidationError("Maximum 10 options allowed!")
	}
	return nil
}

// PollLines renders each option prefixed with its keycap
func PollLines(options []string) []string {
	lines := make([]string, len(options))
	for i, opt := range options {
		lines[i] = NumberEmojis[i] + " " + opt
	}
	return lines
}

// RandomJoke picks a fallback joke
func RandomJoke(rng interfaces.RandomSource) Joke {
	return FallbackJokes[rng.IntN(len(FallbackJokes))]
}

// RandomFact picks a fallback fact
func RandomFact(rng interfaces.RandomSource) string {
	return FallbackFacts[rng.IntN(len(FallbackFacts))]
}
