package session

import (
	"errors"
	"math/rand"
	"slices"
	"sync"
)

// ErrIndexOutOfRange is returned by Remove for an index past the queue tail.
var ErrIndexOutOfRange = errors.New("queue index out of range")

// Queue is a guild's ordered pending tracks. Index 0 is on deck: it starts
// next when the current track ends and is only reordered by explicit remove,
// clear, or shuffle. The mutex is shared with the owning Session.
type Queue struct {
	mu    *sync.Mutex
	items []QueuedTrack
}

// Append adds tracks to the tail preserving input order.
func (q *Queue) Append(tracks ...QueuedTrack) {
	q.mu.Lock()
	q.items = append(q.items, tracks...)
	q.mu.Unlock()
}

// PushFront inserts a track at the head, ahead of everything queued.
func (q *Queue) PushFront(t QueuedTrack) {
	q.mu.Lock()
	q.items = append([]QueuedTrack{t}, q.items...)
	q.mu.Unlock()
}

// PopFront removes and returns the head.
func (q *Queue) PopFront() (QueuedTrack, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return QueuedTrack{}, false
	}
	head := q.items[0]
	q.items = q.items[1:]
	return head, true
}

// Remove deletes the element at a 0-based index, preserving the relative
// order of the rest.
func (q *Queue) Remove(index int) (QueuedTrack, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if index < 0 || index >= len(q.items) {
		return QueuedTrack{}, ErrIndexOutOfRange
	}
	removed := q.items[index]
	q.items = slices.Delete(q.items, index, index+1)
	return removed, nil
}

// Clear empties the queue and returns how many tracks were dropped.
func (q *Queue) Clear() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.items)
	q.items = nil
	return n
}

// Shuffle applies an unbiased permutation in place. Concurrent readers never
// observe a half-shuffled queue.
func (q *Queue) Shuffle() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	rand.Shuffle(len(q.items), func(i, j int) {
		q.items[i], q.items[j] = q.items[j], q.items[i]
	})
	return len(q.items)
}

// Peek returns a snapshot copy of up to n head elements; writers are blocked
// only for the duration of the copy.
func (q *Queue) Peek(n int) []QueuedTrack {
	q.mu.Lock()
	defer q.mu.Unlock()
	if n > len(q.items) {
		n = len(q.items)
	}
	if n <= 0 {
		return nil
	}
	return slices.Clone(q.items[:n])
}

// Len returns the number of pending tracks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
