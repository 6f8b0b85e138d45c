// Package storage persists per-guild state in a single JSON file. The store
// keeps everything in memory and flushes periodically plus on Close; writes
// are atomic and skipped when nothing changed.
package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const autoSaveInterval = 10 * time.Second

type store struct {
	mu           sync.RWMutex
	data         map[string]json.RawMessage
	file         string
	lastChecksum string

	done chan struct{}
	wg   sync.WaitGroup
	log  zerolog.Logger
}

func newStore(filePath string) (*store, error) {
	if filePath == "" {
		return nil, fmt.Errorf("storage path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	st := &store{
		data: make(map[string]json.RawMessage),
		file: filePath,
		done: make(chan struct{}),
		log:  log.With().Str("component", "storage").Logger(),
	}

	switch _, err := os.Stat(filePath); {
	case os.IsNotExist(err):
		if err := st.writeFileAtomic([]byte("{}")); err != nil {
			return nil, fmt.Errorf("initialize storage file: %w", err)
		}
	case err == nil:
		if err := st.loadFromFile(); err != nil {
			return nil, fmt.Errorf("load storage file: %w", err)
		}
	default:
		return nil, fmt.Errorf("stat storage file: %w", err)
	}

	st.wg.Add(1)
	go st.autoSave()
	return st, nil
}

func (st *store) get(key string, out any) (bool, error) {
	st.mu.RLock()
	raw, ok := st.data[key]
	st.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode record %q: %w", key, err)
	}
	return true, nil
}

func (st *store) put(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode record %q: %w", key, err)
	}
	st.mu.Lock()
	st.data[key] = raw
	st.mu.Unlock()
	return nil
}

func (st *store) close() error {
	select {
	case <-st.done:
		return nil
	default:
	}
	close(st.done)
	st.wg.Wait()
	return st.saveToFile()
}

func (st *store) autoSave() {
	defer st.wg.Done()
	ticker := time.NewTicker(autoSaveInterval)
	defer ticker.Stop()
	for {
		select {
		case <-st.done:
			return
		case <-ticker.C:
			if err := st.saveToFile(); err != nil {
				st.log.Error().Err(err).Msg("auto-save failed")
			}
		}
	}
}

func (st *store) saveToFile() error {
	st.mu.RLock()
	data, err := json.MarshalIndent(st.data, "", "  ")
	st.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("marshal storage: %w", err)
	}

	checksum := checksumOf(data)
	st.mu.Lock()
	unchanged := checksum == st.lastChecksum
	st.mu.Unlock()
	if unchanged {
		return nil
	}

	if err := st.writeFileAtomic(data); err != nil {
		return err
	}

	st.mu.Lock()
	st.lastChecksum = checksum
	st.mu.Unlock()
	return nil
}

func (st *store) loadFromFile() error {
	data, err := os.ReadFile(st.file)
	if err != nil {
		return err
	}
	var temp map[string]json.RawMessage
	if err := json.Unmarshal(data, &temp); err != nil {
		return fmt.Errorf("invalid storage JSON: %w", err)
	}
	st.mu.Lock()
	st.data = temp
	st.lastChecksum = checksumOf(data)
	st.mu.Unlock()
	return nil
}

// writeFileAtomic writes via a temp file and rename so a crash mid-write
// never leaves a truncated storage file behind.
func (st *store) writeFileAtomic(data []byte) error {
	tmp := st.file + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp, st.file); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func checksumOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
