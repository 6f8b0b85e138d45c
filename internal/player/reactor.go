package player

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"groovebot/internal/engine"
	"groovebot/internal/session"
)

// Reactor consumes the engine's asynchronous callbacks and applies the
// replay/advance policy. Callbacks for guilds without a session are expected
// during leave races and dropped silently.
type Reactor struct {
	registry  *session.Registry
	engine    engine.Client
	transport VoiceTransport
	notifier  Notifier
	log       zerolog.Logger
}

func NewReactor(registry *session.Registry, eng engine.Client, transport VoiceTransport, notifier Notifier) *Reactor {
	return &Reactor{
		registry:  registry,
		engine:    eng,
		transport: transport,
		notifier:  notifier,
		log:       log.With().Str("component", "reactor").Logger(),
	}
}

// HandleReady fires when the engine (re)connects. Guild players created
// against a previous engine connection no longer exist there, so their
// sessions are torn down.
func (r *Reactor) HandleReady(ctx context.Context, resumed bool, sessionID string) {
	if resumed {
		return
	}
	stale := r.registry.Drain()
	for _, s := range stale {
		if err := r.transport.Disconnect(ctx, s.GuildID()); err != nil {
			r.log.Warn().Err(err).Str("guild", s.GuildID()).Msg("stale session disconnect failed")
		}
	}
	if len(stale) > 0 {
		r.log.Info().Int("sessions", len(stale)).Msg("dropped sessions from previous engine connection")
	}
}

// HandleTrackStart records the engine-authoritative track and posts the
// now-playing notification to the session's reply channel.
func (r *Reactor) HandleTrackStart(ctx context.Context, guildID string, track engine.Track) {
	s, ok := r.registry.Get(guildID)
	if !ok {
		r.log.Debug().Str("guild", guildID).Msg("track start for removed guild dropped")
		return
	}
	s.NoteStarted(track)
	r.notifier.NowPlaying(s.ReplyChannelID(), track)
}

// HandleTrackEnd applies the repeat/replay policy, then advances the queue.
// A repeat-enabled session replays a naturally finished track by re-resolving
// its URI and pushing the first candidate onto the queue front, so it plays
// again before anything else.
func (r *Reactor) HandleTrackEnd(ctx context.Context, guildID string, track engine.Track, reason engine.EndReason) {
	s, ok := r.registry.Get(guildID)
	if !ok {
		r.log.Debug().Str("guild", guildID).Msg("track end for removed guild dropped")
		return
	}

	cur, _ := s.Current()

	if s.Repeat() && reason.MayReplay() && track.Info.URI != "" {
		// re-resolve without holding the guild lock; the push itself is
		// atomic and strictly ordered against concurrent queue commands
		res, err := r.engine.LoadTracks(ctx, track.Info.URI)
		switch {
		case err != nil:
			r.log.Warn().Err(err).Str("guild", guildID).Str("uri", track.Info.URI).
				Msg("repeat re-resolve failed")
		case len(res.Tracks) == 0:
			r.log.Warn().Str("guild", guildID).Str("uri", track.Info.URI).
				Msg("repeat re-resolve found nothing")
		default:
			s.Queue().PushFront(session.QueuedTrack{
				Track:       res.Tracks[0],
				RequesterID: cur.RequesterID,
			})
		}
	}

	if reason.MayAdvance() {
		next, ok := s.Queue().PopFront()
		if ok {
			s.SetCurrent(next)
			if err := r.engine.Play(ctx, guildID, next.Track); err != nil {
				r.log.Error().Err(err).Str("guild", guildID).Msg("failed to start next track")
				s.ClearCurrent()
			}
			return
		}
		s.ClearCurrent()
		return
	}

	// replaced means a successor is already playing; keep its current entry
	if reason != engine.EndReplaced {
		s.ClearCurrent()
	}
}
