// Package session owns per-session conversational state: role assignment
// and the bounded rolling history.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/weitseng/rolechat/internal/domain"
)

// Store keeps all sessions in process memory, keyed by the externally
// supplied session id. Mutations to one session are serialized by a
// per-session mutex; the index itself is guarded separately so different
// ids never contend. Callers receive snapshots, never store-owned state,
// and no lock is ever held across an outbound network call.
type Store struct {
	maxTurns int

	mu       sync.RWMutex
	sessions map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	sess domain.Session
}

// NewStore creates a store bounding each history at maxTurns messages.
// The bound is forced even (pairs only) and at least one exchange.
func NewStore(maxTurns int) *Store {
	if maxTurns < 2 {
		maxTurns = 2
	}
	if maxTurns%2 != 0 {
		maxTurns--
	}
	return &Store{
		maxTurns: maxTurns,
		sessions: make(map[string]*entry),
	}
}

// GetOrCreate returns the session for id, creating it with an empty
// history and the supplied default role if absent. The second return
// value reports whether this call created the session. Idempotent: a
// repeat call with no mutation in between returns an identical session.
func (s *Store) GetOrCreate(id string, defaultRole domain.RoleConfig) (domain.Session, bool) {
	e, created := s.entryFor(id, defaultRole)
	e.mu.Lock()
	defer e.mu.Unlock()
	return snapshot(e.sess), created
}

// SetRole assigns role to the session, clearing its history in the same
// critical section. The session is created first if absent, so switching
// roles before ever chatting is fine.
func (s *Store) SetRole(id string, role domain.RoleConfig) domain.Session {
	e, _ := s.entryFor(id, role)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sess.Role = role
	e.sess.RoleAssigned = true
	e.sess.History = nil
	return snapshot(e.sess)
}

// AppendExchange appends a user turn and an assistant turn, then drops
// the oldest pairs until the history fits the configured bound.
func (s *Store) AppendExchange(id, userText, assistantText string) (domain.Session, error) {
	e, err := s.lookup(id)
	if err != nil {
		return domain.Session{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.sess.History = append(e.sess.History,
		domain.Turn{Speaker: domain.SpeakerUser, Text: userText},
		domain.Turn{Speaker: domain.SpeakerAssistant, Text: assistantText},
	)
	if over := len(e.sess.History) - s.maxTurns; over > 0 {
		e.sess.History = append([]domain.Turn(nil), e.sess.History[over:]...)
	}
	return snapshot(e.sess), nil
}

// Clear empties the history, retaining the role assignment.
func (s *Store) Clear(id string) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sess.History = nil
	return nil
}

// Get returns the session for id.
func (s *Store) Get(id string) (domain.Session, error) {
	e, err := s.lookup(id)
	if err != nil {
		return domain.Session{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return snapshot(e.sess), nil
}

func (s *Store) lookup(id string) (*entry, error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return e, nil
}

func (s *Store) entryFor(id string, defaultRole domain.RoleConfig) (*entry, bool) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		return e, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.sessions[id]; ok {
		return e, false
	}
	e = &entry{sess: domain.Session{
		ID:        id,
		Role:      defaultRole,
		CreatedAt: time.Now(),
	}}
	s.sessions[id] = e
	return e, true
}

func snapshot(sess domain.Session) domain.Session {
	out := sess
	out.History = append([]domain.Turn(nil), sess.History...)
	return out
}
