package discord

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"groovebot/internal/engine"
)

const voiceHandshakeTimeout = 10 * time.Second

// voiceTransport drives the gateway side of the voice handshake. The bot
// never opens a UDP voice connection itself; it joins the channel on the
// gateway and forwards the server endpoint, token and session id to the
// engine, which takes the connection over.
type voiceTransport struct {
	dg *discordgo.Session

	mu      sync.Mutex
	pending map[string]*handshake
}

type handshake struct {
	server chan *discordgo.VoiceServerUpdate
	state  chan *discordgo.VoiceStateUpdate
}

func newVoiceTransport(dg *discordgo.Session) *voiceTransport {
	vt := &voiceTransport{
		dg:      dg,
		pending: make(map[string]*handshake),
	}
	dg.AddHandler(vt.onVoiceServerUpdate)
	dg.AddHandler(vt.onVoiceStateUpdate)
	return vt
}

func (vt *voiceTransport) onVoiceServerUpdate(s *discordgo.Session, e *discordgo.VoiceServerUpdate) {
	vt.mu.Lock()
	hs, ok := vt.pending[e.GuildID]
	vt.mu.Unlock()
	if !ok {
		return
	}
	select {
	case hs.server <- e:
	default:
	}
}

func (vt *voiceTransport) onVoiceStateUpdate(s *discordgo.Session, e *discordgo.VoiceStateUpdate) {
	if s.State.User == nil || e.UserID != s.State.User.ID {
		return
	}
	vt.mu.Lock()
	hs, ok := vt.pending[e.GuildID]
	vt.mu.Unlock()
	if !ok {
		return
	}
	select {
	case hs.state <- e:
	default:
	}
}

// Connect joins the voice channel over the gateway and waits for the
// server-update and state-update events carrying the handshake material.
func (vt *voiceTransport) Connect(ctx context.Context, guildID, channelID string) (engine.ConnectionInfo, error) {
	hs := &handshake{
		server: make(chan *discordgo.VoiceServerUpdate, 1),
		state:  make(chan *discordgo.VoiceStateUpdate, 1),
	}
	vt.mu.Lock()
	vt.pending[guildID] = hs
	vt.mu.Unlock()
	defer func() {
		vt.mu.Lock()
		delete(vt.pending, guildID)
		vt.mu.Unlock()
	}()

	if err := vt.dg.ChannelVoiceJoinManual(guildID, channelID, false, true); err != nil {
		return engine.ConnectionInfo{}, fmt.Errorf("gateway voice join: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, voiceHandshakeTimeout)
	defer cancel()

	var info engine.ConnectionInfo
	var haveServer, haveState bool
	for !haveServer || !haveState {
		select {
		case e := <-hs.server:
			info.Endpoint = e.Endpoint
			info.Token = e.Token
			haveServer = true
		case e := <-hs.state:
			info.SessionID = e.SessionID
			haveState = true
		case <-ctx.Done():
			// leave the half-joined channel behind us
			_ = vt.dg.ChannelVoiceJoinManual(guildID, "", false, true)
			return engine.ConnectionInfo{}, fmt.Errorf("voice handshake: %w", ctx.Err())
		}
	}
	return info, nil
}

// Disconnect leaves the guild's voice channel over the gateway.
func (vt *voiceTransport) Disconnect(ctx context.Context, guildID string) error {
	if err := vt.dg.ChannelVoiceJoinManual(guildID, "", false, true); err != nil {
		return fmt.Errorf("gateway voice leave: %w", err)
	}
	return nil
}
