// Package player coordinates the per-guild playback sessions: the Conductor
// executes user commands against the registry, queue and engine; the Reactor
// consumes the engine's track lifecycle callbacks.
package player

import (
	"context"
	"errors"

	"groovebot/internal/engine"
)

// Precondition errors reported back to the invoking user as plain messages.
var (
	ErrNotInVoiceChannel = errors.New("join a voice channel first, or name one")
	ErrNotConnected      = errors.New("not connected to a voice channel")
	ErrNothingPlaying    = errors.New("nothing is playing")
	ErrQueueEmpty        = errors.New("the queue is empty")
)

// VoiceTransport carries the gateway-side voice handshake. Implemented over
// the Discord session; injected so the player logic stays transport-free.
type VoiceTransport interface {
	Connect(ctx context.Context, guildID, channelID string) (engine.ConnectionInfo, error)
	Disconnect(ctx context.Context, guildID string) error
}

// Notifier posts playback notifications to a guild's reply channel. Delivery
// failures are the notifier's problem; playback never depends on them.
type Notifier interface {
	NowPlaying(channelID string, track engine.Track)
}
