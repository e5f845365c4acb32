package music

import (
	"context"
	"errors"
	"sync"

	"guildbot/infrastructure/audio"
	"guildbot/infrastructure/observability"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Streamer produces Opus packets for a stream URL
type Streamer interface {
	Stream(ctx context.Context, url string, send func(packet []byte) error) error
}

// Resolver turns a search query into a playable track
type Resolver interface {
	Resolve(ctx context.Context, query string) (*audio.Track, error)
}

// player owns the playback of one guild's voice connection.
// At most one track plays at a time; starting another stops the current one.
type player struct {
	guildID  string
	conn     *discordgo.VoiceConnection
	opus     chan<- []byte
	speaking func(bool) error

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	current *audio.Track
}

func newPlayer(guildID string, conn *discordgo.VoiceConnection) *player {
	return &player{
		guildID:  guildID,
		conn:     conn,
		opus:     conn.OpusSend,
		speaking: conn.Speaking,
	}
}

// play stops any running track and streams track in the background
func (p *player) play(streamer Streamer, track *audio.Track) {
	p.stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	p.mu.Lock()
	p.cancel = cancel
	p.done = done
	p.current = track
	p.mu.Unlock()

	observability.GetMetrics().RecordTrackPlayed()

	go func() {
		defer close(done)
		defer cancel()

		if err := p.speaking(true); err != nil {
			log.WithError(err).WithField("guildID", p.guildID).Warn("Failed to set speaking state")
		}

		err := streamer.Stream(ctx, track.StreamURL, func(packet []byte) error {
			select {
			case p.opus <- packet:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			log.WithFields(log.Fields{
				"guildID": p.guildID,
				"title":   track.Title,
			}).WithError(err).Error("Playback failed")
		}

		if err := p.speaking(false); err != nil {
			log.WithError(err).WithField("guildID", p.guildID).Debug("Failed to clear speaking state")
		}

		p.mu.Lock()
		if p.done == done {
			p.cancel = nil
			p.done = nil
			p.current = nil
		}
		p.mu.Unlock()
	}()
}

// stop cancels the running track and waits for its stream to exit.
// It returns false if nothing was playing.
func (p *player) stop() bool {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.mu.Unlock()

	if cancel == nil {
		return false
	}
	cancel()
	<-done
	return true
}

func (p *player) nowPlaying() *audio.Track {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// players tracks one player per guild with an open voice connection
type players struct {
	mu      sync.Mutex
	byGuild map[string]*player
}

func newPlayers() *players {
	return &players{byGuild: make(map[string]*player)}
}

func (ps *players) get(guildID string) *player {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.byGuild[guildID]
}

func (ps *players) put(p *player) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.byGuild[p.guildID] = p
}

func (ps *players) remove(guildID string) *player {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	p := ps.byGuild[guildID]
	delete(ps.byGuild, guildID)
	return p
}

func (ps *players) all() []*player {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	out := make([]*player, 0, len(ps.byGuild))
	for _, p := range ps.byGuild {
		out = append(out, p)
	}
	return out
}
