package session

import (
	"testing"

	"groovebot/internal/engine"
)

func track(title string) QueuedTrack {
	return QueuedTrack{
		Track:       engine.Track{Encoded: "enc:" + title, Info: engine.TrackInfo{Title: title}},
		RequesterID: "user-1",
	}
}

func titles(items []QueuedTrack) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Track.Info.Title
	}
	return out
}

func TestQueue_AppendPreservesOrder(t *testing.T) {
	s := newSession("g1", "c1")
	q := s.Queue()

	q.Append(track("a"), track("b"), track("c"))

	got := titles(q.Peek(10))
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestQueue_RemoveMiddleKeepsRelativeOrder(t *testing.T) {
	s := newSession("g1", "c1")
	q := s.Queue()
	q.Append(track("a"), track("b"), track("c"))

	removed, err := q.Remove(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed.Track.Info.Title != "b" {
		t.Errorf("expected to remove b, removed %s", removed.Track.Info.Title)
	}

	got := titles(q.Peek(10))
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("expected [a c], got %v", got)
	}
}

func TestQueue_RemoveOutOfRange(t *testing.T) {
	s := newSession("g1", "c1")
	q := s.Queue()
	q.Append(track("a"), track("b"), track("c"))

	if _, err := q.Remove(3); err != ErrIndexOutOfRange {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := q.Remove(-1); err != ErrIndexOutOfRange {
		t.Errorf("expected ErrIndexOutOfRange for negative index, got %v", err)
	}
	if q.Len() != 3 {
		t.Errorf("failed remove must not mutate, len=%d", q.Len())
	}
}

func TestQueue_ShuffleIsPermutation(t *testing.T) {
	s := newSession("g1", "c1")
	q := s.Queue()
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for _, n := range names {
		q.Append(track(n))
	}

	if n := q.Shuffle(); n != len(names) {
		t.Fatalf("shuffle reported %d elements, want %d", n, len(names))
	}

	got := titles(q.Peek(len(names) + 5))
	if len(got) != len(names) {
		t.Fatalf("shuffle changed length: %d != %d", len(got), len(names))
	}
	seen := make(map[string]int)
	for _, n := range got {
		seen[n]++
	}
	for _, n := range names {
		if seen[n] != 1 {
			t.Errorf("element %q appears %d times after shuffle", n, seen[n])
		}
	}
}

func TestQueue_ShuffleEmptyAndSingle(t *testing.T) {
	s := newSession("g1", "c1")
	q := s.Queue()

	if n := q.Shuffle(); n != 0 {
		t.Errorf("empty shuffle reported %d", n)
	}

	q.Append(track("only"))
	if n := q.Shuffle(); n != 1 {
		t.Errorf("single shuffle reported %d", n)
	}
	if got := titles(q.Peek(1)); got[0] != "only" {
		t.Errorf("single-element queue changed: %v", got)
	}
}

func TestQueue_PeekIsSnapshot(t *testing.T) {
	s := newSession("g1", "c1")
	q := s.Queue()
	q.Append(track("a"), track("b"))

	snap := q.Peek(2)
	q.Clear()

	if len(snap) != 2 {
		t.Fatalf("snapshot affected by later clear: %v", snap)
	}
	if q.Len() != 0 {
		t.Errorf("clear left %d items", q.Len())
	}
}

func TestQueue_PopAndPushFront(t *testing.T) {
	s := newSession("g1", "c1")
	q := s.Queue()

	if _, ok := q.PopFront(); ok {
		t.Fatal("pop on empty queue returned a track")
	}

	q.Append(track("a"), track("b"))
	q.PushFront(track("z"))

	head, ok := q.PopFront()
	if !ok || head.Track.Info.Title != "z" {
		t.Errorf("expected pushed-front z on deck, got %+v ok=%v", head, ok)
	}
	if next := titles(q.Peek(2)); next[0] != "a" || next[1] != "b" {
		t.Errorf("remaining order wrong: %v", next)
	}
}
