// Package engine talks to the external audio-processing engine. The bot never
// decodes audio itself; it tells the engine what to play and reacts to the
// track lifecycle events the engine reports back.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Track is an engine-assigned playable handle plus display metadata. Encoded
// is opaque to the bot and round-trips to the engine verbatim.
type Track struct {
	Encoded string    `json:"encoded"`
	Info    TrackInfo `json:"info"`
}

type TrackInfo struct {
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Length     int64  `json:"length"` // milliseconds
	IsStream   bool   `json:"isStream"`
	URI        string `json:"uri"`
	SourceName string `json:"sourceName"`
}

// EndReason reports why the engine finished a track.
type EndReason string

const (
	EndFinished   EndReason = "finished"
	EndLoadFailed EndReason = "loadFailed"
	EndStopped    EndReason = "stopped"
	EndReplaced   EndReason = "replaced"
	EndCleanup    EndReason = "cleanup"
)

// MayReplay reports whether a repeat-enabled session replays this track.
// Only a natural end qualifies; skips, stops and failures never replay.
func (r EndReason) MayReplay() bool { return r == EndFinished }

// MayAdvance reports whether the queue should advance to the next track.
func (r EndReason) MayAdvance() bool { return r == EndFinished || r == EndLoadFailed }

// LoadType discriminates what a load query resolved to.
type LoadType string

const (
	LoadTypeTrack    LoadType = "track"
	LoadTypePlaylist LoadType = "playlist"
	LoadTypeSearch   LoadType = "search"
	LoadTypeEmpty    LoadType = "empty"
	LoadTypeError    LoadType = "error"
)

// LoadResult is the flattened outcome of a LoadTracks call.
type LoadResult struct {
	Type         LoadType
	Tracks       []Track
	PlaylistName string
	ErrorMessage string
}

// UnmarshalJSON decodes the engine's polymorphic load response, where the
// shape of "data" depends on "loadType".
func (r *LoadResult) UnmarshalJSON(b []byte) error {
	var raw struct {
		LoadType LoadType        `json:"loadType"`
		Data     json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	r.Type = raw.LoadType
	switch raw.LoadType {
	case LoadTypeTrack:
		var t Track
		if err := json.Unmarshal(raw.Data, &t); err != nil {
			return fmt.Errorf("decode track data: %w", err)
		}
		r.Tracks = []Track{t}
	case LoadTypeSearch:
		if err := json.Unmarshal(raw.Data, &r.Tracks); err != nil {
			return fmt.Errorf("decode search data: %w", err)
		}
	case LoadTypePlaylist:
		var pl struct {
			Info struct {
				Name string `json:"name"`
			} `json:"info"`
			Tracks []Track `json:"tracks"`
		}
		if err := json.Unmarshal(raw.Data, &pl); err != nil {
			return fmt.Errorf("decode playlist data: %w", err)
		}
		r.PlaylistName = pl.Info.Name
		r.Tracks = pl.Tracks
	case LoadTypeError:
		var ex struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw.Data, &ex); err != nil {
			return fmt.Errorf("decode error data: %w", err)
		}
		r.ErrorMessage = ex.Message
	case LoadTypeEmpty:
		// no data
	default:
		return fmt.Errorf("unknown load type %q", raw.LoadType)
	}
	return nil
}

// ConnectionInfo carries the voice-transport handshake the engine needs to
// take over a guild's voice connection.
type ConnectionInfo struct {
	Endpoint  string `json:"endpoint"`
	Token     string `json:"token"`
	SessionID string `json:"sessionId"`
}

// Client is the operation surface the playback core needs from the engine.
// All calls are network-bound and honor the passed context.
type Client interface {
	CreateSession(ctx context.Context, guildID string, info ConnectionInfo) error
	DestroySession(ctx context.Context, guildID string) error
	LoadTracks(ctx context.Context, query string) (*LoadResult, error)
	Play(ctx context.Context, guildID string, track Track) error
	Stop(ctx context.Context, guildID string) error
	SetPause(ctx context.Context, guildID string, paused bool) error
	SetPosition(ctx context.Context, guildID string, position time.Duration) error
	SetVolume(ctx context.Context, guildID string, volume int) (int, error)
}

// EventHandler receives the engine's asynchronous callbacks. Implementations
// must tolerate events for guilds that no longer have a session.
type EventHandler interface {
	HandleReady(ctx context.Context, resumed bool, sessionID string)
	HandleTrackStart(ctx context.Context, guildID string, track Track)
	HandleTrackEnd(ctx context.Context, guildID string, track Track, reason EndReason)
}
