package session

import (
	"fmt"
	"sync"
	"time"

	"law4you/models"
)

// Summary is a sidebar entry.
type Summary struct {
	ID      string
	Name    string
	Current bool
}

// Store holds one visitor's chat sessions for the lifetime of the process.
type Store struct {
	mu        sync.RWMutex
	sessions  map[string]*models.ChatSession
	order     []string // creation order
	currentID string
	uploads   map[string]struct{}
	notice    string
	now       func() time.Time
}

func NewStore() *Store {
	return newStoreWithClock(time.Now)
}

func newStoreWithClock(now func() time.Time) *Store {
	return &Store{
		sessions: make(map[string]*models.ChatSession),
		uploads:  make(map[string]struct{}),
		now:      now,
	}
}

// Create allocates an empty session, makes it current and returns its id.
func (s *Store) Create() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := s.now()
	id := s.nextID(createdAt)
	s.sessions[id] = &models.ChatSession{
		ID:        id,
		Name:      models.DefaultSessionName,
		History:   []models.Message{},
		CreatedAt: createdAt,
	}
	s.order = append(s.order, id)
	s.currentID = id
	return id
}

// nextID derives the id from the creation time; a clash within the same
// nanosecond gets a numeric suffix.
func (s *Store) nextID(t time.Time) string {
	base := fmt.Sprintf("chat_%d", t.UnixNano())
	id := base
	for i := 1; ; i++ {
		if _, exists := s.sessions[id]; !exists {
			return id
		}
		id = fmt.Sprintf("%s_%d", base, i)
	}
}

// Current returns a snapshot of the current session.
func (s *Store) Current() (models.ChatSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[s.currentID]
	if !ok {
		return models.ChatSession{}, false
	}
	return sess.Clone(), true
}

func (s *Store) CurrentID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentID
}

func (s *Store) Get(id string) (models.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return models.ChatSession{}, ErrSessionNotFound
	}
	return sess.Clone(), nil
}

// Switch makes an existing session current.
func (s *Store) Switch(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	s.currentID = id
	return nil
}

// List returns the sessions newest first.
func (s *Store) List() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Summary, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		sess := s.sessions[s.order[i]]
		out = append(out, Summary{
			ID:      sess.ID,
			Name:    sess.Name,
			Current: sess.ID == s.currentID,
		})
	}
	return out
}

// Update runs fn on the live session under the write lock.
// fn must not retain the pointer.
func (s *Store) Update(id string, fn func(sess *models.ChatSession)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	fn(sess)
	return nil
}

// MarkUpload reports whether uploadID is seen for the first time.
func (s *Store) MarkUpload(uploadID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, seen := s.uploads[uploadID]; seen {
		return false
	}
	s.uploads[uploadID] = struct{}{}
	return true
}

// SetNotice stores a one-shot warning for the next render.
func (s *Store) SetNotice(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = msg
}

// TakeNotice returns and clears the pending warning.
func (s *Store) TakeNotice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.notice
	s.notice = ""
	return msg
}
