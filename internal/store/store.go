package store

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

var ErrNotFound = errors.New("session not found")

// Store keeps live sessions in memory. Sessions are gone once the process
// exits.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session.Session
	src      func() mines.Source
}

// New creates an empty store. src supplies the random source of every new
// field; nil means a freshly seeded generator per field.
func New(src func() mines.Source) *Store {
	return &Store{
		sessions: make(map[string]*session.Session),
		src:      src,
	}
}

func newID() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Create starts a new session and returns a snapshot of its JSON view.
func (s *Store) Create(params mines.Params) (string, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var src mines.Source
	if s.src != nil {
		src = s.src()
	}

	var id string
	for {
		var err error
		if id, err = newID(); err != nil {
			return "", nil, fmt.Errorf("unable to generate session id: %w", err)
		}
		if _, taken := s.sessions[id]; !taken {
			break
		}
	}

	sess, err := session.New(id, params, src)
	if err != nil {
		return "", nil, err
	}
	s.sessions[id] = sess

	view, err := sess.MarshalJSON()
	if err != nil {
		return "", nil, err
	}
	return id, view, nil
}

// Update runs fn on the session while holding the store lock and returns
// the session's JSON view afterwards. The view is returned even when fn
// fails, so callers can report the unchanged state.
func (s *Store) Update(id string, fn func(*session.Session) error) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	fnErr := fn(sess)
	view, err := sess.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return view, fnErr
}

// Get returns the JSON view of a session.
func (s *Store) Get(id string) ([]byte, error) {
	return s.Update(id, func(*session.Session) error { return nil })
}

// Deletes a session without checking if it existed.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}
