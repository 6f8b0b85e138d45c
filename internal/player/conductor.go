package player

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"groovebot/internal/engine"
	"groovebot/internal/session"
)

// Conductor translates user commands into session, queue and engine
// operations. All methods are safe for concurrent use; work on one guild is
// serialized by the session's lock, work on different guilds never contends.
type Conductor struct {
	registry     *session.Registry
	engine       engine.Client
	transport    VoiceTransport
	searchPrefix string
	log          zerolog.Logger
}

func NewConductor(registry *session.Registry, eng engine.Client, transport VoiceTransport, searchPrefix string) *Conductor {
	return &Conductor{
		registry:     registry,
		engine:       eng,
		transport:    transport,
		searchPrefix: searchPrefix,
		log:          log.With().Str("component", "conductor").Logger(),
	}
}

// Join connects the guild to a voice channel and creates the engine-side
// player. Joining an already-connected guild is a no-op that still moves the
// reply channel. voiceChannelID must already be resolved by the caller.
func (c *Conductor) Join(ctx context.Context, guildID, voiceChannelID, textChannelID string) (*session.Session, bool, error) {
	if voiceChannelID == "" {
		return nil, false, ErrNotInVoiceChannel
	}

	s, created, err := c.registry.GetOrCreate(guildID, textChannelID, func() error {
		info, err := c.transport.Connect(ctx, guildID, voiceChannelID)
		if err != nil {
			return fmt.Errorf("voice transport: %w", err)
		}
		if err := c.engine.CreateSession(ctx, guildID, info); err != nil {
			// don't leave a half-open voice connection behind
			_ = c.transport.Disconnect(ctx, guildID)
			return fmt.Errorf("engine session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	s.SetReplyChannel(textChannelID)
	if created {
		c.log.Info().Str("guild", guildID).Str("channel", voiceChannelID).Msg("joined voice channel")
	}
	return s, created, nil
}

// Leave tears the guild down: registry entry out first, then the engine
// player and the voice connection, all under the guild's creation lock so a
// racing join cannot observe a session whose engine resource is gone.
// Leaving a guild with no session is a no-op.
func (c *Conductor) Leave(ctx context.Context, guildID string) (bool, error) {
	var left bool
	err := c.registry.Locked(guildID, func() error {
		s, ok := c.registry.Remove(guildID)
		if !ok {
			return nil
		}
		left = true
		s.ClearCurrent()
		if err := c.engine.DestroySession(ctx, guildID); err != nil {
			c.log.Warn().Err(err).Str("guild", guildID).Msg("engine teardown failed")
		}
		return c.transport.Disconnect(ctx, guildID)
	})
	if left {
		c.log.Info().Str("guild", guildID).Msg("left voice channel")
	}
	return left, err
}

// PlayReport describes what a Play call did, for the reply message.
type PlayReport struct {
	Added        []session.QueuedTrack
	PlaylistName string
	StartedHead  bool // empty query kicked the pending queue head
}

// Play resolves a query and queues the result, starting playback when the
// guild is idle. Queries beginning with "http" pass through verbatim; others
// go through the configured search provider. An empty query starts the
// pending head instead of enqueuing.
func (c *Conductor) Play(ctx context.Context, guildID, userID, voiceChannelID, textChannelID, query string) (*PlayReport, error) {
	s, _, err := c.Join(ctx, guildID, voiceChannelID, textChannelID)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if _, playing := s.Current(); !playing && s.Queue().Len() > 0 {
			if err := c.startNext(ctx, s); err != nil {
				return nil, err
			}
			return &PlayReport{StartedHead: true}, nil
		}
		return nil, ErrQueueEmpty
	}

	identifier := query
	if !strings.HasPrefix(query, "http") {
		identifier = c.searchPrefix + ":" + query
	}

	res, err := c.engine.LoadTracks(ctx, identifier)
	if err != nil {
		return nil, err
	}

	var tracks []engine.Track
	report := &PlayReport{}
	switch res.Type {
	case engine.LoadTypeTrack:
		tracks = res.Tracks
	case engine.LoadTypeSearch:
		if len(res.Tracks) == 0 {
			return nil, fmt.Errorf("no results for %q", query)
		}
		// a search resolves to its best match only
		tracks = res.Tracks[:1]
	case engine.LoadTypePlaylist:
		tracks = res.Tracks
		report.PlaylistName = res.PlaylistName
	case engine.LoadTypeEmpty:
		return nil, fmt.Errorf("no results for %q", query)
	case engine.LoadTypeError:
		return nil, fmt.Errorf("track load failed: %s", res.ErrorMessage)
	}

	queued := make([]session.QueuedTrack, len(tracks))
	for i, t := range tracks {
		queued[i] = session.QueuedTrack{Track: t, RequesterID: userID}
	}
	s.Queue().Append(queued...)
	report.Added = queued

	c.log.Info().Str("guild", guildID).Int("tracks", len(queued)).
		Int("queue_len", s.Queue().Len()).Msg("tracks queued")

	if _, playing := s.Current(); !playing {
		if err := c.startNext(ctx, s); err != nil {
			return nil, err
		}
	}
	return report, nil
}

// startNext pops the queue head and hands it to the engine. The current track
// is recorded optimistically; the track-start callback overwrites it with the
// engine-authoritative handle.
func (c *Conductor) startNext(ctx context.Context, s *session.Session) error {
	qt, ok := s.Queue().PopFront()
	if !ok {
		return ErrQueueEmpty
	}
	s.SetCurrent(qt)
	if err := c.engine.Play(ctx, s.GuildID(), qt.Track); err != nil {
		s.ClearCurrent()
		return err
	}
	return nil
}

// Skip drops n-1 pending tracks and replaces the current one with the next
// head, or stops when the queue runs dry.
func (c *Conductor) Skip(ctx context.Context, guildID string, n int) (session.QueuedTrack, error) {
	s, ok := c.registry.Get(guildID)
	if !ok {
		return session.QueuedTrack{}, ErrNotConnected
	}
	cur, playing := s.Current()
	if !playing {
		return session.QueuedTrack{}, ErrNothingPlaying
	}

	for i := 1; i < n; i++ {
		if _, ok := s.Queue().PopFront(); !ok {
			break
		}
	}

	if err := c.startNext(ctx, s); err != nil {
		if err != ErrQueueEmpty {
			return cur, err
		}
		if err := c.engine.Stop(ctx, guildID); err != nil {
			return cur, err
		}
		s.ClearCurrent()
	}
	return cur, nil
}

func (c *Conductor) SetPause(ctx context.Context, guildID string, paused bool) error {
	if _, ok := c.registry.Get(guildID); !ok {
		return ErrNotConnected
	}
	return c.engine.SetPause(ctx, guildID, paused)
}

// Stop halts playback but keeps the queue intact.
func (c *Conductor) Stop(ctx context.Context, guildID string) (session.QueuedTrack, error) {
	s, ok := c.registry.Get(guildID)
	if !ok {
		return session.QueuedTrack{}, ErrNotConnected
	}
	cur, playing := s.Current()
	if !playing {
		return session.QueuedTrack{}, ErrNothingPlaying
	}
	if err := c.engine.Stop(ctx, guildID); err != nil {
		return cur, err
	}
	s.ClearCurrent()
	return cur, nil
}

func (c *Conductor) Seek(ctx context.Context, guildID string, seconds int64) error {
	s, ok := c.registry.Get(guildID)
	if !ok {
		return ErrNotConnected
	}
	if _, playing := s.Current(); !playing {
		return ErrNothingPlaying
	}
	return c.engine.SetPosition(ctx, guildID, time.Duration(seconds)*time.Second)
}

// SetVolume forwards to the engine and reports the accepted value; engine
// validation errors pass through verbatim.
func (c *Conductor) SetVolume(ctx context.Context, guildID string, volume int) (int, error) {
	if _, ok := c.registry.Get(guildID); !ok {
		return 0, ErrNotConnected
	}
	return c.engine.SetVolume(ctx, guildID, volume)
}

func (c *Conductor) Remove(guildID string, index int) (session.QueuedTrack, error) {
	s, ok := c.registry.Get(guildID)
	if !ok {
		return session.QueuedTrack{}, ErrNotConnected
	}
	return s.Queue().Remove(index)
}

func (c *Conductor) Clear(guildID string) (int, error) {
	s, ok := c.registry.Get(guildID)
	if !ok {
		return 0, ErrNotConnected
	}
	return s.Queue().Clear(), nil
}

func (c *Conductor) Shuffle(guildID string) (int, error) {
	s, ok := c.registry.Get(guildID)
	if !ok {
		return 0, ErrNotConnected
	}
	return s.Queue().Shuffle(), nil
}

// QueueView snapshots up to n pending tracks for display.
func (c *Conductor) QueueView(guildID string, n int) ([]session.QueuedTrack, error) {
	s, ok := c.registry.Get(guildID)
	if !ok {
		return nil, ErrNotConnected
	}
	return s.Queue().Peek(n), nil
}

func (c *Conductor) ToggleRepeat(guildID string) (bool, error) {
	s, ok := c.registry.Get(guildID)
	if !ok {
		return false, ErrNotConnected
	}
	return s.ToggleRepeat(), nil
}
