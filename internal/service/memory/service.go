package memory

import (
	"sync"
	"time"
)

// Turn is one question/answer exchange plus the retrieved context that
// produced the answer.
type Turn struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
	Context   string `json:"context"`
}

type session struct {
	turns    []Turn
	lastSeen time.Time
}

// Service keeps a bounded, per-session FIFO of conversation turns. Sessions
// idle longer than the TTL are evicted wholesale so the keyed map cannot
// grow for the life of the process.
type Service struct {
	options   Options
	sessions  map[string]*session
	lastSweep time.Time
	mtx       sync.RWMutex
}

// Append records a turn for sessionID, creating the session lazily and
// evicting the oldest turn once capacity is exceeded.
func (s *Service) Append(sessionID string, turn Turn) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.sweep()

	sess, exists := s.sessions[sessionID]
	if !exists {
		sess = &session{}
		s.sessions[sessionID] = sess
	}

	sess.turns = append(sess.turns, turn)
	if len(sess.turns) > s.options.Capacity {
		sess.turns = sess.turns[len(sess.turns)-s.options.Capacity:]
	}

	sess.lastSeen = time.Now().UTC()
}

// History returns the session's turns oldest-first. Sessions with no memory
// return an empty slice.
func (s *Service) History(sessionID string) []Turn {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	sess, exists := s.sessions[sessionID]
	if !exists {
		return []Turn{}
	}

	copied := make([]Turn, len(sess.turns))
	copy(copied, sess.turns)

	sess.lastSeen = time.Now().UTC()

	return copied
}

// Clear drops all turns for sessionID. Clearing an unknown session is a
// no-op.
func (s *Service) Clear(sessionID string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if sess, exists := s.sessions[sessionID]; exists {
		sess.turns = nil
		sess.lastSeen = time.Now().UTC()
	}
}

// Size reports how many turns a session currently holds.
func (s *Service) Size(sessionID string) int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if sess, exists := s.sessions[sessionID]; exists {
		return len(sess.turns)
	}

	return 0
}

// sweep removes idle sessions. Callers must hold the write lock.
func (s *Service) sweep() {
	now := time.Now().UTC()

	if now.Sub(s.lastSweep) < s.options.TTL/2 {
		return
	}

	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.options.TTL {
			delete(s.sessions, id)
		}
	}

	s.lastSweep = now
}

func New(opts ...Option) *Service {
	options := NewOptions(opts...)

	s := &Service{
		options:   options,
		sessions:  map[string]*session{},
		lastSweep: time.Now().UTC(),
		mtx:       sync.RWMutex{},
	}

	return s
}
