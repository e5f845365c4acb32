package commands

import (
	"fmt"
	"sort"
	"strings"
)

// Registry maps command names and aliases to commands
type Registry struct {
	byName   map[string]*Command
	commands []*Command
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Command)}
}

// Register adds commands. Names and aliases are case-insensitive and must be unique.
func (r *Registry) Register(cmds ...*Command) error {
	for _, cmd := range cmds {
		if cmd.Handler == nil {
			return fmt.Errorf("command %s has no handler", cmd.Name)
		}
		for i, spec := range cmd.Args {
			if (spec.Kind == ArgRest || spec.Kind == ArgList) && i != len(cmd.Args)-1 {
				return fmt.Errorf("command %s: %s must be the last argument", cmd.Name, spec.Name)
			}
		}

		keys := append([]string{cmd.Name}, cmd.Aliases...)
		for _, key := range keys {
			key = strings.ToLower(key)
			if _, exists := r.byName[key]; exists {
				return fmt.Errorf("command name %q registered twice", key)
			}
		}
		for _, key := range keys {
			r.byName[strings.ToLower(key)] = cmd
		}
		r.commands = append(r.commands, cmd)
	}
	return nil
}

// MustRegister is Register for static command tables
func (r *Registry) MustRegister(cmds ...*Command) {
	if err := r.Register(cmds...); err != nil {
		panic(err)
	}
}

// Lookup finds a command by name or alias
func (r *Registry) Lookup(name string) (*Command, bool) {
	cmd, ok := r.byName[strings.ToLower(name)]
	return cmd, ok
}

// Commands returns every command in registration order
func (r *Registry) Commands() []*Command {
	out := make([]*Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// ByCategory groups commands by category, with categories sorted
func (r *Registry) ByCategory() ([]string, map[string][]*Command) {
	groups := make(map[string][]*Command)
	for _, cmd := range r.commands {
		groups[cmd.Category] = append(groups[cmd.Category], cmd)
	}
	categories := make([]string, 0, len(groups))
	for category := range groups {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories, groups
}

// Parse splits a message into command name and argument tokens.
// ok is false when content does not start with prefix.
func Parse(content, prefix string) (name string, tokens []string, ok bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}
	tokens = Tokenize(content[len(prefix):])
	if len(tokens) == 0 {
		return "", nil, false
	}
	return tokens[0], tokens[1:], true
}
