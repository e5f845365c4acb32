package commands

import (
	"context"
	"testing"

	"guildbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(ctx context.Context, inv *Invocation) error { return nil }

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Tokenize("  a b\tc  "))
	assert.Equal(t, []string{"Best pizza?", "cheese", "pepperoni"}, Tokenize(`"Best pizza?" cheese pepperoni`))
	assert.Equal(t, []string{""}, Tokenize(`""`))
	assert.Empty(t, Tokenize("   "))
	assert.Equal(t, []string{"don't", "you", "think?"}, Tokenize("don't you think?"))
	assert.Equal(t, []string{"it's", "Bob's turn"}, Tokenize(`it's "Bob's turn"`))
}

func TestParse(t *testing.T) {
	name, tokens, ok := Parse("!gamble all", "!")
	require.True(t, ok)
	assert.Equal(t, "gamble", name)
	assert.Equal(t, []string{"all"}, tokens)

	_, _, ok = Parse("gamble all", "!")
	assert.False(t, ok)

	_, _, ok = Parse("!", "!")
	assert.False(t, ok)
}

func TestParseMention(t *testing.T) {
	for _, token := range []string{"<@123>", "<@!123>", "123"} {
		id, ok := ParseMention(token)
		assert.True(t, ok, token)
		assert.Equal(t, int64(123), id)
	}
	_, ok := ParseMention("<#123>")
	assert.False(t, ok)
	_, ok = ParseMention("bob")
	assert.False(t, ok)
}

func TestBind(t *testing.T) {
	cmd := &Command{
		Name: "challenge",
		Args: []ArgSpec{
			{Name: "user", Kind: ArgUser},
			{Name: "bet", Kind: ArgInt},
		},
		Handler: noop,
	}

	args, err := Bind(cmd, "!", []string{"<@42>", "500"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), args.User("user"))
	assert.Equal(t, int64(500), args.Int("bet"))

	_, err = Bind(cmd, "!", []string{"<@42>"})
	require.Error(t, err)
	assert.True(t, entities.IsValidationError(err))
	assert.Contains(t, err.Error(), "Usage: `!challenge <user> <bet>`")

	_, err = Bind(cmd, "!", []string{"<@42>", "lots"})
	assert.ErrorContains(t, err, "`bet` must be a whole number")

	_, err = Bind(cmd, "!", []string{"someone", "5"})
	assert.ErrorContains(t, err, "`user` must mention a member")
}

func TestBind_OptionalAndRest(t *testing.T) {
	cmd := &Command{
		Name: "warn",
		Args: []ArgSpec{
			{Name: "user", Kind: ArgUser},
			{Name: "reason", Kind: ArgRest, Optional: true},
		},
		Handler: noop,
	}

	args, err := Bind(cmd, "!", []string{"<@1>"})
	require.NoError(t, err)
	assert.False(t, args.Has("reason"))
	assert.Equal(t, "", args.String("reason"))

	args, err = Bind(cmd, "!", []string{"<@1>", "being", "rude"})
	require.NoError(t, err)
	assert.Equal(t, "being rude", args.String("reason"))
}

func TestBind_List(t *testing.T) {
	cmd := &Command{Name: "choose", Args: []ArgSpec{{Name: "choices", Kind: ArgList}}, Handler: noop}
	args, err := Bind(cmd, "!", []string{"tea", "coffee"})
	require.NoError(t, err)
	assert.Equal(t, []string{"tea", "coffee"}, args.List("choices"))
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	lb := &Command{Name: "leaderboard", Aliases: []string{"lb"}, Category: "Leveling", Handler: noop}
	bal := &Command{Name: "balance", Aliases: []string{"bal"}, Category: "Economy", Handler: noop}
	require.NoError(t, r.Register(lb, bal))

	got, ok := r.Lookup("LB")
	require.True(t, ok)
	assert.Same(t, lb, got)

	_, ok = r.Lookup("nope")
	assert.False(t, ok)

	err := r.Register(&Command{Name: "bal", Handler: noop})
	assert.ErrorContains(t, err, "registered twice")

	err = r.Register(&Command{Name: "nohandler"})
	assert.Error(t, err)

	err = r.Register(&Command{Name: "bad", Args: []ArgSpec{{Name: "rest", Kind: ArgRest}, {Name: "x"}}, Handler: noop})
	assert.ErrorContains(t, err, "must be the last argument")

	categories, groups := r.ByCategory()
	assert.Equal(t, []string{"Economy", "Leveling"}, categories)
	assert.Len(t, groups["Economy"], 1)
}

func TestPermissionAllowed(t *testing.T) {
	assert.True(t, PermissionEveryone.Allowed(0, false))

	assert.False(t, PermissionAdministrator.Allowed(0, false))
	assert.True(t, PermissionAdministrator.Allowed(discordgo.PermissionAdministrator, false))

	assert.True(t, PermissionKickMembers.Allowed(discordgo.PermissionKickMembers, false))
	assert.True(t, PermissionKickMembers.Allowed(discordgo.PermissionAdministrator, false))
	assert.False(t, PermissionKickMembers.Allowed(discordgo.PermissionBanMembers, false))

	assert.False(t, PermissionGuildOwner.Allowed(discordgo.PermissionAdministrator, false))
	assert.False(t, PermissionGuildOwner.Allowed(0, true))
	assert.True(t, PermissionGuildOwner.Allowed(discordgo.PermissionAdministrator, true))
}

func TestUsage(t *testing.T) {
	cmd := &Command{Name: "poll", Args: []ArgSpec{{Name: "question", Kind: ArgString}, {Name: "options", Kind: ArgList, Optional: true}}}
	assert.Equal(t, "!poll <question> [options...]", cmd.Usage("!"))
}

func TestPermissionString(t *testing.T) {
	assert.Equal(t, "Server Owner", PermissionGuildOwner.String())
	assert.Equal(t, "Manage Roles", PermissionManageRoles.String())
	assert.Equal(t, "Permission(99)", Permission(99).String())
}
