package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"groovebot/pkg/retrylimit"
)

// ErrNotReady is returned for player operations issued before the engine
// websocket has completed its handshake.
var ErrNotReady = errors.New("audio engine session not established yet")

// Error is an engine-reported operation failure. The message is surfaced to
// users verbatim; the engine owns its own validation.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string   { return e.Message }
func (e *Error) StatusCode() int { return e.Status }

// Node is a client for one Lavalink-protocol engine node: REST for player
// operations, websocket for the event feed.
type Node struct {
	address  string
	password string
	secure   bool

	httpc   *http.Client
	limiter *retrylimit.AdaptiveLimiter
	log     zerolog.Logger

	mu        sync.RWMutex
	sessionID string
}

// NewNode builds a client for the node at address (host:port).
func NewNode(address, password string, secure bool) *Node {
	return &Node{
		address:  address,
		password: password,
		secure:   secure,
		httpc:    &http.Client{Timeout: 30 * time.Second},
		limiter:  retrylimit.NewAdaptiveLimiter(10, 2, 25, 1, 0.5),
		log:      log.With().Str("component", "engine").Logger(),
	}
}

func (n *Node) restURL(path string) string {
	scheme := "http"
	if n.secure {
		scheme = "https"
	}
	return scheme + "://" + n.address + "/v4" + path
}

func (n *Node) currentSessionID() (string, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.sessionID == "" {
		return "", ErrNotReady
	}
	return n.sessionID, nil
}

func (n *Node) setSessionID(id string) {
	n.mu.Lock()
	n.sessionID = id
	n.mu.Unlock()
}

// do issues one REST call and decodes the response into out when non-nil.
func (n *Node) do(ctx context.Context, method, path string, body, out any) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return err
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, n.restURL(path), rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", n.password)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := n.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("engine request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		var ex struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&ex)
		if ex.Message == "" {
			ex.Message = resp.Status
		}
		return &Error{Status: resp.StatusCode, Message: ex.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode engine response: %w", err)
		}
	}
	return nil
}

// playerUpdate is a partial player state; omitted fields are left untouched
// by the engine.
type playerUpdate struct {
	Track    *playerTrack    `json:"track,omitempty"`
	Position *int64          `json:"position,omitempty"`
	Volume   *int            `json:"volume,omitempty"`
	Paused   *bool           `json:"paused,omitempty"`
	Voice    *ConnectionInfo `json:"voice,omitempty"`
}

// playerTrack with a nil Encoded serializes to {"encoded":null}, which tells
// the engine to stop and clear the current track.
type playerTrack struct {
	Encoded *string `json:"encoded"`
}

func (n *Node) updatePlayer(ctx context.Context, guildID string, upd playerUpdate, out any) error {
	sid, err := n.currentSessionID()
	if err != nil {
		return err
	}
	path := fmt.Sprintf("/sessions/%s/players/%s", sid, guildID)
	return n.do(ctx, http.MethodPatch, path, upd, out)
}

// CreateSession hands the guild's voice handshake to the engine, which takes
// over the voice connection from there.
func (n *Node) CreateSession(ctx context.Context, guildID string, info ConnectionInfo) error {
	return n.updatePlayer(ctx, guildID, playerUpdate{Voice: &info}, nil)
}

// DestroySession releases all engine-side resources for the guild. A missing
// player is not an error; teardown is idempotent.
func (n *Node) DestroySession(ctx context.Context, guildID string) error {
	sid, err := n.currentSessionID()
	if err != nil {
		return err
	}
	path := fmt.Sprintf("/sessions/%s/players/%s", sid, guildID)
	err = n.do(ctx, http.MethodDelete, path, nil, nil)
	var ee *Error
	if errors.As(err, &ee) && ee.Status == http.StatusNotFound {
		return nil
	}
	return err
}

// LoadTracks resolves a URL or "<provider>:<term>" search query. Lookups are
// read-only, so transient failures are retried.
func (n *Node) LoadTracks(ctx context.Context, query string) (*LoadResult, error) {
	path := "/loadtracks?identifier=" + url.QueryEscape(query)

	var res LoadResult
	err := retrylimit.WithRetry(ctx, func() error {
		return n.do(ctx, http.MethodGet, path, nil, &res)
	}, n.limiter, 3)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (n *Node) Play(ctx context.Context, guildID string, track Track) error {
	enc := track.Encoded
	return n.updatePlayer(ctx, guildID, playerUpdate{Track: &playerTrack{Encoded: &enc}}, nil)
}

func (n *Node) Stop(ctx context.Context, guildID string) error {
	return n.updatePlayer(ctx, guildID, playerUpdate{Track: &playerTrack{Encoded: nil}}, nil)
}

func (n *Node) SetPause(ctx context.Context, guildID string, paused bool) error {
	return n.updatePlayer(ctx, guildID, playerUpdate{Paused: &paused}, nil)
}

func (n *Node) SetPosition(ctx context.Context, guildID string, position time.Duration) error {
	ms := position.Milliseconds()
	return n.updatePlayer(ctx, guildID, playerUpdate{Position: &ms}, nil)
}

// SetVolume returns the volume the engine settled on; range validation is the
// engine's call.
func (n *Node) SetVolume(ctx context.Context, guildID string, volume int) (int, error) {
	var state struct {
		Volume int `json:"volume"`
	}
	if err := n.updatePlayer(ctx, guildID, playerUpdate{Volume: &volume}, &state); err != nil {
		return 0, err
	}
	return state.Volume, nil
}
