package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stsysd/collisionviz/model"
	"github.com/stsysd/collisionviz/rangecontrol"
)

// Session はビューアごとの表示状態です。
type Session struct {
	ID    uuid.UUID          `json:"id"`
	Range rangecontrol.State `json:"range"`
	// 直前に描画したセルと年ラベルのキー。次のフレームとの差分計算に使う
	CellKeys     []string  `json:"-"`
	YearKeys     []string  `json:"-"`
	LastAccessed time.Time `json:"-"`
}

// SessionStore holds viewer sessions in memory. Sessions not accessed for
// ttl are removed by Sweep.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore は新しいSessionStoreを作成します。
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create registers a session starting from the given range state.
func (s *SessionStore) Create(initial rangecontrol.State) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &Session{
		ID:           uuid.New(),
		Range:        initial,
		LastAccessed: s.now(),
	}
	s.sessions[sess.ID] = sess
	return *sess
}

// Get はセッションを取得します。存在しない場合は ErrSessionNotFound を返します。
func (s *SessionStore) Get(id uuid.UUID) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, model.ErrSessionNotFound
	}
	sess.LastAccessed = s.now()
	return *sess, nil
}

// Update applies fn to the session under the lock and returns the result.
func (s *SessionStore) Update(id uuid.UUID, fn func(*Session) error) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, model.ErrSessionNotFound
	}
	next := *sess
	if err := fn(&next); err != nil {
		return Session{}, err
	}
	next.ID = id
	next.LastAccessed = s.now()
	s.sessions[id] = &next
	return next, nil
}

// Delete はセッションを削除します。
func (s *SessionStore) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return model.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Sweep removes expired sessions and returns how many were removed.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)
	n := 0
	for id, sess := range s.sessions {
		if sess.LastAccessed.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
