package music

import (
	"guildbot/application"
	"guildbot/bot/commands"
	"guildbot/domain/interfaces"
	"guildbot/domain/services"
	"guildbot/infrastructure/observability"

	log "github.com/sirupsen/logrus"
)

const category = "Music"

// Feature plays audio in voice channels and manages saved playlists
type Feature struct {
	uowFactory application.UnitOfWorkFactory
	resolver   Resolver
	streamer   Streamer
	rng        interfaces.RandomSource
	players    *players
}

// NewFeature creates a new music feature instance
func NewFeature(uowFactory application.UnitOfWorkFactory, resolver Resolver, streamer Streamer, rng interfaces.RandomSource) *Feature {
	return &Feature{
		uowFactory: uowFactory,
		resolver:   resolver,
		streamer:   streamer,
		rng:        rng,
		players:    newPlayers(),
	}
}

func (f *Feature) playlistService(uow application.UnitOfWork) interfaces.PlaylistService {
	return services.NewPlaylistService(uow.PlaylistRepository())
}

// Stop ends playback and leaves every voice channel
func (f *Feature) Stop() {
	for _, p := range f.players.all() {
		f.players.remove(p.guildID)
		p.stop()
		if err := p.conn.Disconnect(); err != nil {
			log.WithError(err).WithField("guildID", p.guildID).Warn("Failed to leave voice channel")
		}
		observability.GetMetrics().UpdateVoiceSessions(-1)
	}
}

// Commands returns the music command table
func (f *Feature) Commands() []*commands.Command {
	return []*commands.Command{
		{
			Name:        "join",
			Category:    category,
			Description: "Join your voice channel",
			GuildOnly:   true,
			Handler:     f.handleJoin,
		},
		{
			Name:        "leave",
			Category:    category,
			Description: "Leave the voice channel",
			GuildOnly:   true,
			Handler:     f.handleLeave,
		},
		{
			Name:        "play",
			Category:    category,
			Description: "Play a song from YouTube",
			Args:        []commands.ArgSpec{{Name: "query", Kind: commands.ArgRest}},
			GuildOnly:   true,
			Handler:     f.handlePlay,
		},
		{
			Name:        "stop",
			Category:    category,
			Description: "Stop playing music",
			GuildOnly:   true,
			Handler:     f.handleStop,
		},
		{
			Name:        "moodplay",
			Category:    category,
			Description: "Play a song for your mood (happy, sad, study, workout, party)",
			Args:        []commands.ArgSpec{{Name: "mood", Kind: commands.ArgString}},
			GuildOnly:   true,
			Handler:     f.handleMoodPlay,
		},
		{
			Name:        "createplaylist",
			Category:    category,
			Description: "Create a custom playlist (songs separated by commas)",
			Args: []commands.ArgSpec{
				{Name: "name", Kind: commands.ArgString},
				{Name: "songs", Kind: commands.ArgRest},
			},
			GuildOnly: true,
			Handler:   f.handleCreatePlaylist,
		},
		{
			Name:        "playplaylist",
			Category:    category,
			Description: "Play a song from a custom playlist",
			Args:        []commands.ArgSpec{{Name: "name", Kind: commands.ArgString}},
			GuildOnly:   true,
			Handler:     f.handlePlayPlaylist,
		},
		{
			Name:        "listplaylists",
			Category:    category,
			Description: "List all available playlists",
			GuildOnly:   true,
			Handler:     f.handleListPlaylists,
		},
	}
}
