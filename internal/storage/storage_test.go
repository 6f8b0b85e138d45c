package storage

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "datastore.json"))
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorage_GroupToggle(t *testing.T) {
	s := newTestStorage(t)

	disabled, err := s.IsGroupDisabled("g1", "music")
	if err != nil || disabled {
		t.Fatalf("fresh guild: disabled=%v err=%v", disabled, err)
	}

	if err := s.DisableGroup("g1", "music"); err != nil {
		t.Fatalf("disable: %v", err)
	}
	// disabling twice must not duplicate the entry
	if err := s.DisableGroup("g1", "music"); err != nil {
		t.Fatalf("disable again: %v", err)
	}
	if disabled, _ := s.IsGroupDisabled("g1", "music"); !disabled {
		t.Error("group not disabled")
	}
	if disabled, _ := s.IsGroupDisabled("g2", "music"); disabled {
		t.Error("disable leaked to another guild")
	}

	if err := s.EnableGroup("g1", "music"); err != nil {
		t.Fatalf("enable: %v", err)
	}
	if disabled, _ := s.IsGroupDisabled("g1", "music"); disabled {
		t.Error("group still disabled after enable")
	}
}

func TestStorage_CommandHistoryCapped(t *testing.T) {
	s := newTestStorage(t)

	for i := 0; i < commandHistoryLimit+5; i++ {
		err := s.AppendCommandToHistory("g1", CommandHistoryRecord{
			Command:  "play",
			UserID:   "u1",
			Datetime: time.Now(),
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	history, err := s.FetchCommandHistory("g1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(history) != commandHistoryLimit {
		t.Errorf("history length %d, want %d", len(history), commandHistoryLimit)
	}
}

func TestStorage_VolumeSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datastore.json")

	s, err := New(path)
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}
	if err := s.SetVolume("g1", 42); err != nil {
		t.Fatalf("set volume: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	vol, err := reopened.Volume("g1")
	if err != nil {
		t.Fatalf("volume: %v", err)
	}
	if vol != 42 {
		t.Errorf("volume %d, want 42", vol)
	}
	if vol, _ := reopened.Volume("never-seen"); vol != 0 {
		t.Errorf("unknown guild volume %d, want 0", vol)
	}
}
