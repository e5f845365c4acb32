package commands

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"guildbot/domain/entities"
)

// Args holds the bound arguments of an invocation
type Args struct {
	values map[string]any
}

// Has reports whether an optional argument was supplied
func (a Args) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// String returns a string or rest argument, or "" when absent
func (a Args) String(name string) string {
	v, _ := a.values[name].(string)
	return v
}

// Int returns an integer argument, or 0 when absent
func (a Args) Int(name string) int64 {
	v, _ := a.values[name].(int64)
	return v
}

// User returns a user id argument, or 0 when absent
func (a Args) User(name string) int64 {
	v, _ := a.values[name].(userID)
	return int64(v)
}

// List returns a list argument
func (a Args) List(name string) []string {
	v, _ := a.values[name].([]string)
	return v
}

type userID int64

// Tokenize splits a command line on whitespace. Double quotes group words.
func Tokenize(input string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false
	hasToken := false

	for _, r := range input {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			hasToken = true
		case unicode.IsSpace(r) && !inQuotes:
			if hasToken {
				tokens = append(tokens, current.String())
				current.Reset()
				hasToken = false
			}
		default:
			current.WriteRune(r)
			hasToken = true
		}
	}
	if hasToken {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// ParseMention accepts <@id>, <@!id> or a bare id
func ParseMention(token string) (int64, bool) {
	token = strings.TrimPrefix(token, "<@")
	token = strings.TrimPrefix(token, "!")
	token = strings.TrimSuffix(token, ">")
	id, err := strconv.ParseInt(token, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Bind validates tokens against the command's argument schema
func Bind(cmd *Command, prefix string, tokens []string) (Args, error) {
	args := Args{values: make(map[string]any, len(cmd.Args))}
	usage := cmd.Usage(prefix)

	i := 0
	for _, spec := range cmd.Args {
		if i >= len(tokens) {
			if spec.Optional {
				continue
			}
			return Args{}, entities.NewValidationError("Missing argument `%s`. Usage: `%s`", spec.Name, usage)
		}

		switch spec.Kind {
		case ArgRest:
			args.values[spec.Name] = strings.Join(tokens[i:], " ")
			i = len(tokens)
		case ArgList:
			args.values[spec.Name] = append([]string(nil), tokens[i:]...)
			i = len(tokens)
		case ArgInt:
			n, err := strconv.ParseInt(tokens[i], 10, 64)
			if err != nil {
				return Args{}, entities.NewValidationError("`%s` must be a whole number. Usage: `%s`", spec.Name, usage)
			}
			args.values[spec.Name] = n
			i++
		case ArgUser:
			id, ok := ParseMention(tokens[i])
			if !ok {
				return Args{}, entities.NewValidationError("`%s` must mention a member. Usage: `%s`", spec.Name, usage)
			}
			args.values[spec.Name] = userID(id)
			i++
		case ArgString:
			args.values[spec.Name] = tokens[i]
			i++
		default:
			return Args{}, fmt.Errorf("unknown argument kind %d for %s", spec.Kind, spec.Name)
		}
	}
	return args, nil
}
