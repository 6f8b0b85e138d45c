package storage

import (
	"slices"
	"time"
)

const commandHistoryLimit = 20

// Storage exposes the per-guild records the bot persists across restarts.
type Storage struct {
	st *store
}

// CommandHistoryRecord is one executed command, kept for the log view.
type CommandHistoryRecord struct {
	ChannelID   string    `json:"channel_id"`
	ChannelName string    `json:"channel_name"`
	GuildName   string    `json:"guild_name"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Command     string    `json:"command"`
	Datetime    time.Time `json:"datetime"`
}

// Record is everything stored for one guild.
type Record struct {
	CommandHistory []CommandHistoryRecord `json:"cmd_history"`
	DisabledGroups []string               `json:"disabled_groups"`
	Volume         int                    `json:"volume"`
}

func New(filePath string) (*Storage, error) {
	st, err := newStore(filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{st: st}, nil
}

func (s *Storage) Close() error {
	return s.st.close()
}

func (s *Storage) guildRecord(guildID string) (*Record, error) {
	var rec Record
	if _, err := s.st.get(guildID, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// AppendCommandToHistory records an executed command, keeping only the most
// recent entries.
func (s *Storage) AppendCommandToHistory(guildID string, entry CommandHistoryRecord) error {
	rec, err := s.guildRecord(guildID)
	if err != nil {
		return err
	}
	rec.CommandHistory = append(rec.CommandHistory, entry)
	if len(rec.CommandHistory) > commandHistoryLimit {
		rec.CommandHistory = rec.CommandHistory[len(rec.CommandHistory)-commandHistoryLimit:]
	}
	return s.st.put(guildID, rec)
}

func (s *Storage) FetchCommandHistory(guildID string) ([]CommandHistoryRecord, error) {
	rec, err := s.guildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return rec.CommandHistory, nil
}

func (s *Storage) DisableGroup(guildID, group string) error {
	rec, err := s.guildRecord(guildID)
	if err != nil {
		return err
	}
	if !slices.Contains(rec.DisabledGroups, group) {
		rec.DisabledGroups = append(rec.DisabledGroups, group)
	}
	return s.st.put(guildID, rec)
}

func (s *Storage) EnableGroup(guildID, group string) error {
	rec, err := s.guildRecord(guildID)
	if err != nil {
		return err
	}
	rec.DisabledGroups = slices.DeleteFunc(rec.DisabledGroups, func(g string) bool {
		return g == group
	})
	return s.st.put(guildID, rec)
}

func (s *Storage) IsGroupDisabled(guildID, group string) (bool, error) {
	rec, err := s.guildRecord(guildID)
	if err != nil {
		return false, err
	}
	return slices.Contains(rec.DisabledGroups, group), nil
}

// SetVolume remembers the guild's playback volume so a rejoin starts at the
// level the guild last used.
func (s *Storage) SetVolume(guildID string, volume int) error {
	rec, err := s.guildRecord(guildID)
	if err != nil {
		return err
	}
	rec.Volume = volume
	return s.st.put(guildID, rec)
}

// Volume returns the stored playback volume, or 0 when none was ever set.
func (s *Storage) Volume(guildID string) (int, error) {
	rec, err := s.guildRecord(guildID)
	if err != nil {
		return 0, err
	}
	return rec.Volume, nil
}
