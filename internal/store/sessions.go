package store

import (
	"sync"
	"time"

	"github.com/Archuqq/Schedule-Telegram-Bot/internal/repo"
)

func NewSessions() *Sessions {
	return &Sessions{mutex: &sync.Mutex{}, data: make(map[int64]*Session), now: time.Now}
}

// Begin opens a session for admin, dropping any unfinished one. It reports
// whether a previous session was dropped.
func (s *Sessions) Begin(admin int64, subject string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	_, dropped := s.data[admin]
	s.data[admin] = &Session{Subject: subject, StartedAt: s.now()}
	return dropped
}

// Collecting returns the subject of admin's open session.
func (s *Sessions) Collecting(admin int64) (string, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	session, exist := s.data[admin]
	if !exist {
		return "", false
	}
	return session.Subject, true
}

// Append adds item to admin's open session and returns the item count.
func (s *Sessions) Append(admin int64, item repo.AnswerItem) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	session, exist := s.data[admin]
	if !exist {
		return 0, ErrNoSession
	}
	session.Items = append(session.Items, item)
	return len(session.Items), nil
}

// Finish closes admin's session. An empty session is discarded with ErrEmptySession.
func (s *Sessions) Finish(admin int64) (Session, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	session, exist := s.data[admin]
	if !exist {
		return Session{}, ErrNoSession
	}
	delete(s.data, admin)
	if len(session.Items) == 0 {
		return Session{}, ErrEmptySession
	}
	return *session, nil
}
