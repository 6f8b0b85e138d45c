package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"groovebot/internal/version"
)

// socketMessage is the superset of fields across the engine's websocket
// payloads; Op and Type select which ones are meaningful.
type socketMessage struct {
	Op        string          `json:"op"`
	Resumed   bool            `json:"resumed"`
	SessionID string          `json:"sessionId"`
	Type      string          `json:"type"`
	GuildID   string          `json:"guildId"`
	Track     json.RawMessage `json:"track"`
	Reason    EndReason       `json:"reason"`
}

// Listen connects to the engine's event websocket and dispatches callbacks to
// handler until ctx is done, reconnecting with capped backoff. A reconnect
// produces a fresh engine session, so the handler's ready callback must treat
// previously created guild players as gone.
func (n *Node) Listen(ctx context.Context, botUserID string, handler EventHandler) {
	scheme := "ws"
	if n.secure {
		scheme = "wss"
	}
	wsURL := scheme + "://" + n.address + "/v4/websocket"

	header := http.Header{}
	header.Set("Authorization", n.password)
	header.Set("User-Id", botUserID)
	header.Set("Client-Name", version.AppName+"/"+version.Version)

	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return
		}

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
		if err != nil {
			n.log.Warn().Err(err).Dur("retry_in", backoff).Msg("engine websocket dial failed")
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, 30*time.Second)
			continue
		}

		n.log.Info().Str("url", wsURL).Msg("engine websocket connected")
		backoff = time.Second

		n.readLoop(ctx, conn, handler)
		conn.Close()
		n.setSessionID("")

		if ctx.Err() == nil {
			n.log.Warn().Msg("engine websocket closed, reconnecting")
		}
	}
}

func (n *Node) readLoop(ctx context.Context, conn *websocket.Conn, handler EventHandler) {
	// unblock ReadMessage when the context is cancelled
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg socketMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			n.log.Warn().Err(err).Msg("undecodable engine payload")
			continue
		}

		switch msg.Op {
		case "ready":
			n.setSessionID(msg.SessionID)
			n.log.Info().Bool("resumed", msg.Resumed).Str("session", msg.SessionID).
				Msg("engine session ready")
			handler.HandleReady(ctx, msg.Resumed, msg.SessionID)

		case "event":
			n.dispatchEvent(ctx, msg, handler)

		case "playerUpdate", "stats":
			// periodic state reports, nothing to do

		default:
			n.log.Debug().Str("op", msg.Op).Msg("unhandled engine op")
		}
	}
}

func (n *Node) dispatchEvent(ctx context.Context, msg socketMessage, handler EventHandler) {
	var track Track
	if len(msg.Track) > 0 {
		if err := json.Unmarshal(msg.Track, &track); err != nil {
			n.log.Warn().Err(err).Str("guild", msg.GuildID).Msg("undecodable event track")
			return
		}
	}

	switch msg.Type {
	case "TrackStartEvent":
		handler.HandleTrackStart(ctx, msg.GuildID, track)
	case "TrackEndEvent":
		handler.HandleTrackEnd(ctx, msg.GuildID, track, msg.Reason)
	case "TrackExceptionEvent", "TrackStuckEvent", "WebSocketClosedEvent":
		n.log.Warn().Str("guild", msg.GuildID).Str("type", msg.Type).
			Msg("engine reported a playback problem")
	default:
		n.log.Debug().Str("type", msg.Type).Msg("unhandled engine event")
	}
}
