package music

import (
	"context"
	"fmt"
	"strings"

	"guildbot/application"
	"guildbot/bot/commands"
	"guildbot/bot/common"
	"guildbot/domain/entities"
	"guildbot/domain/services"
	"guildbot/infrastructure/observability"

	log "github.com/sirupsen/logrus"
)

const notInVoice = "You need to be in a voice channel to use this command!"

// connect joins the author's voice channel, moving an existing connection if needed
func (f *Feature) connect(inv *commands.Invocation) (*player, string, error) {
	guildID := inv.Message.GuildID
	vs, err := inv.Session.State.VoiceState(guildID, inv.Message.Author.ID)
	if err != nil || vs.ChannelID == "" {
		return nil, "", entities.NewValidationError(notInVoice)
	}

	channelName := vs.ChannelID
	if ch, err := inv.Session.State.Channel(vs.ChannelID); err == nil {
		channelName = ch.Name
	}

	if p := f.players.get(guildID); p != nil {
		if p.conn.ChannelID != vs.ChannelID {
			if err := p.conn.ChangeChannel(vs.ChannelID, false, true); err != nil {
				return nil, "", common.NewPlatformError(err, "join that voice channel")
			}
		}
		return p, channelName, nil
	}

	conn, err := inv.Session.ChannelVoiceJoin(guildID, vs.ChannelID, false, true)
	if err != nil {
		return nil, "", common.NewPlatformError(err, "join that voice channel")
	}
	p := newPlayer(guildID, conn)
	f.players.put(p)
	observability.GetMetrics().UpdateVoiceSessions(1)

	log.WithFields(log.Fields{
		"guildID":   guildID,
		"channelID": vs.ChannelID,
	}).Info("Joined voice channel")
	return p, channelName, nil
}

// ensurePlayer reuses the guild's connection or joins the author's channel
func (f *Feature) ensurePlayer(inv *commands.Invocation) (*player, error) {
	if p := f.players.get(inv.Message.GuildID); p != nil {
		return p, nil
	}
	p, _, err := f.connect(inv)
	return p, err
}

func (f *Feature) handleJoin(ctx context.Context, inv *commands.Invocation) error {
	_, channelName, err := f.connect(inv)
	if err != nil {
		return err
	}
	_, err = inv.Reply(fmt.Sprintf("✅ Joined %s", channelName))
	return err
}

func (f *Feature) handleLeave(ctx context.Context, inv *commands.Invocation) error {
	p := f.players.remove(inv.Message.GuildID)
	if p == nil {
		return entities.NewValidationError("I'm not in a voice channel!")
	}

	p.stop()
	observability.GetMetrics().UpdateVoiceSessions(-1)
	if err := p.conn.Disconnect(); err != nil {
		log.WithError(err).WithField("guildID", p.guildID).Warn("Failed to disconnect voice")
	}

	_, err := inv.Reply("👋 Left the voice channel")
	return err
}

func (f *Feature) handlePlay(ctx context.Context, inv *commands.Invocation) error {
	return f.playQuery(ctx, inv, inv.Args.String("query"))
}

// playQuery resolves query and replaces whatever the guild is playing
func (f *Feature) playQuery(ctx context.Context, inv *commands.Invocation, query string) error {
	p, err := f.ensurePlayer(inv)
	if err != nil {
		return err
	}

	if err := inv.Session.ChannelTyping(inv.Message.ChannelID); err != nil {
		log.WithError(err).Debug("Failed to send typing indicator")
	}

	track, err := f.resolver.Resolve(ctx, query)
	if err != nil {
		return common.NewUserError(fmt.Sprintf("❌ Error playing song: %s", err), "failed to resolve track")
	}

	p.play(f.streamer, track)
	_, err = inv.ReplyEmbed(buildNowPlayingEmbed(track))
	return err
}

func (f *Feature) handleStop(ctx context.Context, inv *commands.Invocation) error {
	p := f.players.get(inv.Message.GuildID)
	if p == nil || !p.stop() {
		return entities.NewValidationError("Nothing is playing!")
	}
	_, err := inv.Reply("⏹️ Stopped playing")
	return err
}

func (f *Feature) handleMoodPlay(ctx context.Context, inv *commands.Invocation) error {
	mood := strings.ToLower(inv.Args.String("mood"))
	songs, err := services.MoodSongs(mood)
	if err != nil {
		return err
	}
	if _, err := f.ensurePlayer(inv); err != nil {
		return err
	}

	if _, err := inv.Reply(fmt.Sprintf("🎵 Playing a %s song...", mood)); err != nil {
		return err
	}
	return f.playQuery(ctx, inv, songs[f.rng.IntN(len(songs))])
}

func (f *Feature) handleCreatePlaylist(ctx context.Context, inv *commands.Invocation) error {
	var playlist *entities.Playlist
	err := common.InTransaction(ctx, f.uowFactory, inv.GuildID, func(uow application.UnitOfWork) error {
		var err error
		playlist, err = f.playlistService(uow).CreatePlaylist(ctx, inv.Args.String("name"), inv.Args.String("songs"), inv.AuthorID)
		return err
	})
	if err != nil {
		return err
	}
	_, err = inv.ReplyEmbed(buildPlaylistCreatedEmbed(playlist))
	return err
}

func (f *Feature) handlePlayPlaylist(ctx context.Context, inv *commands.Invocation) error {
	var playlist *entities.Playlist
	err := common.InTransaction(ctx, f.uowFactory, inv.GuildID, func(uow application.UnitOfWork) error {
		var err error
		playlist, err = f.playlistService(uow).GetPlaylist(ctx, inv.Args.String("name"))
		return err
	})
	if err != nil {
		return err
	}
	if len(playlist.Songs) == 0 {
		return entities.NewValidationError("Playlist '%s' is empty!", playlist.Name)
	}
	if _, err := f.ensurePlayer(inv); err != nil {
		return err
	}

	if _, err := inv.Reply(fmt.Sprintf("🎵 Playing from playlist '%s'...", playlist.Name)); err != nil {
		return err
	}
	return f.playQuery(ctx, inv, playlist.Songs[f.rng.IntN(len(playlist.Songs))])
}

func (f *Feature) handleListPlaylists(ctx context.Context, inv *commands.Invocation) error {
	var playlists []*entities.Playlist
	err := common.InTransaction(ctx, f.uowFactory, inv.GuildID, func(uow application.UnitOfWork) error {
		var err error
		playlists, err = f.playlistService(uow).ListPlaylists(ctx)
		return err
	})
	if err != nil {
		return err
	}
	_, err = inv.ReplyEmbed(buildPlaylistsEmbed(playlists))
	return err
}
