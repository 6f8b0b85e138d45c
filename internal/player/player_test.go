package player

import (
	"context"
	"errors"
	"sync"
	"time"

	"groovebot/internal/engine"
)

// fakeEngine records calls and serves canned load results keyed by identifier.
type fakeEngine struct {
	mu       sync.Mutex
	loads    []string
	played   []engine.Track
	stopped  []string
	paused   map[string]bool
	volumes  map[string]int
	sessions map[string]bool

	loadResults map[string]*engine.LoadResult
	loadErr     error
	playErr     error
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		paused:      make(map[string]bool),
		volumes:     make(map[string]int),
		sessions:    make(map[string]bool),
		loadResults: make(map[string]*engine.LoadResult),
	}
}

func (f *fakeEngine) CreateSession(ctx context.Context, guildID string, info engine.ConnectionInfo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[guildID] = true
	return nil
}

func (f *fakeEngine) DestroySession(ctx context.Context, guildID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, guildID)
	return nil
}

func (f *fakeEngine) LoadTracks(ctx context.Context, query string) (*engine.LoadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads = append(f.loads, query)
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if res, ok := f.loadResults[query]; ok {
		return res, nil
	}
	return &engine.LoadResult{Type: engine.LoadTypeEmpty}, nil
}

func (f *fakeEngine) Play(ctx context.Context, guildID string, track engine.Track) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.playErr != nil {
		return f.playErr
	}
	f.played = append(f.played, track)
	return nil
}

func (f *fakeEngine) Stop(ctx context.Context, guildID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = append(f.stopped, guildID)
	return nil
}

func (f *fakeEngine) SetPause(ctx context.Context, guildID string, paused bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paused[guildID] = paused
	return nil
}

func (f *fakeEngine) SetPosition(ctx context.Context, guildID string, position time.Duration) error {
	return nil
}

func (f *fakeEngine) SetVolume(ctx context.Context, guildID string, volume int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volumes[guildID] = volume
	return volume, nil
}

func (f *fakeEngine) loadCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.loads...)
}

func (f *fakeEngine) playedTracks() []engine.Track {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]engine.Track(nil), f.played...)
}

// fakeTransport counts connects and disconnects per guild.
type fakeTransport struct {
	mu          sync.Mutex
	connects    map[string]int
	disconnects map[string]int
	connectErr  error
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		connects:    make(map[string]int),
		disconnects: make(map[string]int),
	}
}

func (f *fakeTransport) Connect(ctx context.Context, guildID, channelID string) (engine.ConnectionInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.connectErr != nil {
		return engine.ConnectionInfo{}, f.connectErr
	}
	f.connects[guildID]++
	return engine.ConnectionInfo{Endpoint: "voice.example", Token: "t", SessionID: "s"}, nil
}

func (f *fakeTransport) Disconnect(ctx context.Context, guildID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disconnects[guildID]++
	return nil
}

type notice struct {
	channelID string
	track     engine.Track
}

type fakeNotifier struct {
	mu      sync.Mutex
	notices []notice
}

func (f *fakeNotifier) NowPlaying(channelID string, track engine.Track) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = append(f.notices, notice{channelID, track})
}

func (f *fakeNotifier) all() []notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notice(nil), f.notices...)
}

func track(title, uri string) engine.Track {
	return engine.Track{
		Encoded: "enc:" + title,
		Info:    engine.TrackInfo{Title: title, URI: uri},
	}
}

func searchResult(tracks ...engine.Track) *engine.LoadResult {
	return &engine.LoadResult{Type: engine.LoadTypeSearch, Tracks: tracks}
}

var errBoom = errors.New("boom")
