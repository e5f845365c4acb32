package bot

import (
	"context"
	"testing"

	"guildbot/bot/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(context.Context, *commands.Invocation) error { return nil }

func TestDispatcher_Route(t *testing.T) {
	registry := commands.NewRegistry()
	balance := &commands.Command{Name: "balance", Aliases: []string{"bal"}, Handler: noop}
	require.NoError(t, registry.Register(balance))
	d := NewDispatcher(registry, "!")

	_, _, result := d.route("hello there")
	assert.Equal(t, routeNotCommand, result)

	_, _, result = d.route("!")
	assert.Equal(t, routeNotCommand, result)

	_, _, result = d.route("!nope")
	assert.Equal(t, routeUnknown, result)

	cmd, tokens, result := d.route("!BAL <@123> extra")
	assert.Equal(t, routeFound, result)
	assert.Same(t, balance, cmd)
	assert.Equal(t, []string{"<@123>", "extra"}, tokens)
}

func TestDispatcher_CustomPrefix(t *testing.T) {
	registry := commands.NewRegistry()
	require.NoError(t, registry.Register(&commands.Command{Name: "ping", Handler: noop}))
	d := NewDispatcher(registry, "?")

	_, _, result := d.route("!ping")
	assert.Equal(t, routeNotCommand, result)

	_, _, result = d.route("?ping")
	assert.Equal(t, routeFound, result)

	assert.Equal(t, "Command not found. Use ?help to see available commands.", d.unknownCommandMessage())
}
