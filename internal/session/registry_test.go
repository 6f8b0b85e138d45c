package session

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestRegistry_GetOrCreate(t *testing.T) {
	r := NewRegistry()

	s, created, err := r.GetOrCreate("g1", "c1", func() error { return nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created || s == nil {
		t.Fatalf("expected a newly created session, created=%v", created)
	}

	again, created, err := r.GetOrCreate("g1", "c2", func() error {
		t.Error("connector must not run for an existing session")
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("second call reported created=true")
	}
	if again != s {
		t.Error("second caller got a different session instance")
	}
}

func TestRegistry_ConnectorFailureInstallsNothing(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("voice gateway unreachable")

	_, _, err := r.GetOrCreate("g1", "c1", func() error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped connect error, got %v", err)
	}
	if _, ok := r.Get("g1"); ok {
		t.Error("failed connect left a session behind")
	}
}

func TestRegistry_ConcurrentJoinsConnectOnce(t *testing.T) {
	r := NewRegistry()
	var connects atomic.Int32

	const racers = 16
	sessions := make([]*Session, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, _, err := r.GetOrCreate("g1", "c1", func() error {
				connects.Add(1)
				return nil
			})
			if err != nil {
				t.Errorf("racer %d: %v", i, err)
			}
			sessions[i] = s
		}(i)
	}
	wg.Wait()

	if n := connects.Load(); n != 1 {
		t.Errorf("connector ran %d times, want 1", n)
	}
	for i := 1; i < racers; i++ {
		if sessions[i] != sessions[0] {
			t.Fatalf("racer %d observed a different session", i)
		}
	}
}

func TestRegistry_IndependentGuilds(t *testing.T) {
	r := NewRegistry()

	a, _, _ := r.GetOrCreate("g1", "c1", func() error { return nil })
	b, _, _ := r.GetOrCreate("g2", "c1", func() error { return nil })
	if a == b {
		t.Fatal("two guilds share one session")
	}
	a.Queue().Append(track("x"))
	if b.Queue().Len() != 0 {
		t.Error("queue mutation leaked across guilds")
	}
}

func TestRegistry_RemoveIsIdempotent(t *testing.T) {
	r := NewRegistry()
	r.GetOrCreate("g1", "c1", func() error { return nil })

	if _, ok := r.Remove("g1"); !ok {
		t.Error("first remove did not find the session")
	}
	if _, ok := r.Remove("g1"); ok {
		t.Error("second remove found a session")
	}
	if _, ok := r.Remove("never-joined"); ok {
		t.Error("removing an unknown guild returned a session")
	}
}

func TestRegistry_DrainRemovesEverything(t *testing.T) {
	r := NewRegistry()
	r.GetOrCreate("g1", "c1", func() error { return nil })
	r.GetOrCreate("g2", "c1", func() error { return nil })

	drained := r.Drain()
	if len(drained) != 2 {
		t.Fatalf("drained %d sessions, want 2", len(drained))
	}
	if _, ok := r.Get("g1"); ok {
		t.Error("g1 still present after drain")
	}
	if _, ok := r.Get("g2"); ok {
		t.Error("g2 still present after drain")
	}
}
