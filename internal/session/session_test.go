package session

import (
	"testing"

	"groovebot/internal/engine"
)

func TestSession_RepeatToggle(t *testing.T) {
	s := newSession("g1", "c1")

	if s.Repeat() {
		t.Fatal("repeat must default to off")
	}
	if !s.ToggleRepeat() {
		t.Error("first toggle should enable repeat")
	}
	if s.ToggleRepeat() {
		t.Error("second toggle should disable repeat")
	}
}

func TestSession_ReplyChannelLastWriterWins(t *testing.T) {
	s := newSession("g1", "c1")

	s.SetReplyChannel("c2")
	if got := s.ReplyChannelID(); got != "c2" {
		t.Errorf("expected c2, got %s", got)
	}

	// an empty channel id (e.g. a DM-less context) must not clobber
	s.SetReplyChannel("")
	if got := s.ReplyChannelID(); got != "c2" {
		t.Errorf("empty write clobbered reply channel: %s", got)
	}
}

func TestSession_NoteStartedKeepsRequester(t *testing.T) {
	s := newSession("g1", "c1")
	s.SetCurrent(QueuedTrack{
		Track:       engine.Track{Encoded: "old", Info: engine.TrackInfo{Title: "song"}},
		RequesterID: "user-7",
	})

	s.NoteStarted(engine.Track{Encoded: "authoritative", Info: engine.TrackInfo{Title: "song"}})

	cur, ok := s.Current()
	if !ok {
		t.Fatal("current track lost")
	}
	if cur.Track.Encoded != "authoritative" {
		t.Errorf("engine handle not adopted: %s", cur.Track.Encoded)
	}
	if cur.RequesterID != "user-7" {
		t.Errorf("requester lost: %q", cur.RequesterID)
	}
}

func TestSession_NoteStartedWithoutCurrent(t *testing.T) {
	s := newSession("g1", "c1")
	s.NoteStarted(engine.Track{Encoded: "x"})

	cur, ok := s.Current()
	if !ok || cur.Track.Encoded != "x" {
		t.Fatalf("expected current to be set from callback, got %+v ok=%v", cur, ok)
	}

	s.ClearCurrent()
	if _, ok := s.Current(); ok {
		t.Error("current survived ClearCurrent")
	}
}
