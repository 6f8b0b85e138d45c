// Package session owns the per-guild playback state: at most one Session per
// guild, its track queue, and the locking that keeps user commands and engine
// callbacks from interleaving on the same guild.
package session

import (
	"sync"

	"groovebot/internal/engine"
)

// QueuedTrack pairs an engine track with the user who queued it.
type QueuedTrack struct {
	Track       engine.Track
	RequesterID string
}

// Session is one guild's mutable playback state. Every field is guarded by a
// single mutex scoped to the guild; the queue shares the same mutex, so queue
// mutations and session mutations on one guild are totally ordered while
// different guilds never contend.
type Session struct {
	guildID string

	mu             *sync.Mutex
	queue          *Queue
	replyChannelID string
	repeat         bool
	current        *QueuedTrack
}

func newSession(guildID, replyChannelID string) *Session {
	mu := &sync.Mutex{}
	return &Session{
		guildID:        guildID,
		mu:             mu,
		queue:          &Queue{mu: mu},
		replyChannelID: replyChannelID,
	}
}

func (s *Session) GuildID() string { return s.guildID }

// Queue returns the guild's queue. It remains valid for the session lifetime.
func (s *Session) Queue() *Queue { return s.queue }

// ReplyChannelID is where playback notifications are posted.
func (s *Session) ReplyChannelID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replyChannelID
}

// SetReplyChannel moves notifications to a new channel. Last writer wins:
// commands issued from another text channel redirect future notifications.
func (s *Session) SetReplyChannel(channelID string) {
	if channelID == "" {
		return
	}
	s.mu.Lock()
	s.replyChannelID = channelID
	s.mu.Unlock()
}

// Repeat reports whether the finished-track replay flag is set.
func (s *Session) Repeat() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repeat
}

// ToggleRepeat flips the replay flag and returns the new value.
func (s *Session) ToggleRepeat() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repeat = !s.repeat
	return s.repeat
}

// Current returns the track the engine is playing for this guild, if any.
func (s *Session) Current() (QueuedTrack, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return QueuedTrack{}, false
	}
	return *s.current, true
}

// SetCurrent records the track handed to the engine, keeping its requester.
func (s *Session) SetCurrent(qt QueuedTrack) {
	s.mu.Lock()
	s.current = &qt
	s.mu.Unlock()
}

// NoteStarted updates the current track with the engine-authoritative handle
// from a track-start callback, preserving the requester stamped at play time.
func (s *Session) NoteStarted(t engine.Track) {
	s.mu.Lock()
	if s.current != nil {
		s.current.Track = t
	} else {
		s.current = &QueuedTrack{Track: t}
	}
	s.mu.Unlock()
}

// ClearCurrent marks the guild idle.
func (s *Session) ClearCurrent() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}
