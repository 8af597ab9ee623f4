package store

import (
	"errors"
	"sync"
	"time"

	"github.com/Archuqq/Schedule-Telegram-Bot/internal/repo"
)

var (
	ErrNotFound     = errors.New("subject not found")
	ErrNoSession    = errors.New("no collection session")
	ErrEmptySession = errors.New("nothing to save")
)

// Registry is the set of chats that receive broadcasts.
type Registry struct {
	mutex *sync.RWMutex
	chats map[int64]struct{}
	repo  repo.ChatRepo
}

// Answers maps a subject to its ordered answer items.
type Answers struct {
	mutex *sync.RWMutex
	data  map[string][]repo.AnswerItem
	order []string
	repo  repo.AnswerRepo
}

// Session is an admin's answer entry under construction.
type Session struct {
	Subject   string
	Items     []repo.AnswerItem
	StartedAt time.Time
}

type Sessions struct {
	mutex *sync.Mutex
	data  map[int64]*Session
	now   func() time.Time
}
