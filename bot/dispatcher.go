package bot

import (
	"context"
	"fmt"
	"runtime/debug"

	"guildbot/bot/commands"
	"guildbot/bot/common"
	"guildbot/infrastructure/observability"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Dispatcher routes prefixed messages to registered commands
type Dispatcher struct {
	registry *commands.Registry
	prefix   string
}

// NewDispatcher creates a dispatcher for the registry
func NewDispatcher(registry *commands.Registry, prefix string) *Dispatcher {
	return &Dispatcher{registry: registry, prefix: prefix}
}

type routeResult int

const (
	routeNotCommand routeResult = iota
	routeUnknown
	routeFound
)

// route parses content and looks the command up
func (d *Dispatcher) route(content string) (*commands.Command, []string, routeResult) {
	name, tokens, ok := commands.Parse(content, d.prefix)
	if !ok {
		return nil, nil, routeNotCommand
	}
	cmd, ok := d.registry.Lookup(name)
	if !ok {
		return nil, nil, routeUnknown
	}
	return cmd, tokens, routeFound
}

func (d *Dispatcher) unknownCommandMessage() string {
	return fmt.Sprintf("Command not found. Use %shelp to see available commands.", d.prefix)
}

// Dispatch runs the command in m, if any. It returns false when m is not a command.
func (d *Dispatcher) Dispatch(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) bool {
	cmd, tokens, result := d.route(m.Content)
	switch result {
	case routeNotCommand:
		return false
	case routeUnknown:
		d.send(s, m.ChannelID, d.unknownCommandMessage())
		return true
	}

	if cmd.GuildOnly && m.GuildID == "" {
		d.send(s, m.ChannelID, "This command can only be used in a server.")
		return true
	}
	if !d.allowed(s, m, cmd) {
		d.send(s, m.ChannelID, "You don't have permission to use this command.")
		return true
	}

	args, err := commands.Bind(cmd, d.prefix, tokens)
	if err != nil {
		common.RespondWithError(s, m.ChannelID, cmd.Name, err)
		return true
	}

	inv, err := d.invocation(s, m, cmd, args)
	if err != nil {
		common.RespondWithError(s, m.ChannelID, cmd.Name, err)
		return true
	}

	d.run(ctx, inv)
	return true
}

func (d *Dispatcher) run(ctx context.Context, inv *commands.Invocation) {
	name := inv.Command.Name
	metrics := observability.GetMetrics()
	metrics.RecordCommand(name)

	defer func() {
		if r := recover(); r != nil {
			metrics.RecordCommandError(name)
			log.WithFields(log.Fields{
				"command": name,
				"panic":   r,
				"stack":   string(debug.Stack()),
			}).Error("Command panicked")
			common.RespondWithError(inv.Session, inv.Message.ChannelID, name, fmt.Errorf("panic: %v", r))
		}
	}()

	log.WithFields(log.Fields{
		"command": name,
		"userID":  inv.AuthorID,
		"guildID": inv.GuildID,
	}).Debug("Dispatching command")

	if err := inv.Command.Handler(ctx, inv); err != nil {
		if _, system := common.ErrorMessage(err); system {
			metrics.RecordCommandError(name)
		}
		common.RespondWithError(inv.Session, inv.Message.ChannelID, name, err)
	}
}

func (d *Dispatcher) invocation(s *discordgo.Session, m *discordgo.MessageCreate, cmd *commands.Command, args commands.Args) (*commands.Invocation, error) {
	authorID, err := common.ParseID(m.Author.ID)
	if err != nil {
		return nil, common.NewSystemError(err, "invalid author id")
	}
	channelID, err := common.ParseID(m.ChannelID)
	if err != nil {
		return nil, common.NewSystemError(err, "invalid channel id")
	}
	var guildID int64
	if m.GuildID != "" {
		if guildID, err = common.ParseID(m.GuildID); err != nil {
			return nil, common.NewSystemError(err, "invalid guild id")
		}
	}

	return &commands.Invocation{
		Session:   s,
		Message:   m,
		Prefix:    d.prefix,
		GuildID:   guildID,
		ChannelID: channelID,
		AuthorID:  authorID,
		Command:   cmd,
		Args:      args,
	}, nil
}

// allowed checks the author's channel permissions against the command
func (d *Dispatcher) allowed(s *discordgo.Session, m *discordgo.MessageCreate, cmd *commands.Command) bool {
	if cmd.Permission == commands.PermissionEveryone {
		return true
	}
	if m.GuildID == "" {
		return false
	}

	perms, err := s.UserChannelPermissions(m.Author.ID, m.ChannelID)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"userID":    m.Author.ID,
			"channelID": m.ChannelID,
		}).Warn("Failed to resolve member permissions")
		return false
	}

	return cmd.Permission.Allowed(perms, d.isOwner(s, m.GuildID, m.Author.ID))
}

func (d *Dispatcher) isOwner(s *discordgo.Session, guildID, userID string) bool {
	guild, err := s.State.Guild(guildID)
	if err != nil {
		if guild, err = s.Guild(guildID); err != nil {
			log.WithError(err).WithField("guildID", guildID).Warn("Failed to look up guild owner")
			return false
		}
	}
	return guild.OwnerID == userID
}

func (d *Dispatcher) send(s *discordgo.Session, channelID, content string) {
	if _, err := s.ChannelMessageSend(channelID, content); err != nil {
		log.WithError(err).WithField("channelID", channelID).Error("Failed to send dispatcher reply")
	}
}
