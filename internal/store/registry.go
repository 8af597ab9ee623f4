package store

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/Archuqq/Schedule-Telegram-Bot/internal/repo"
)

// NewRegistry restores the chat set from r. Unreadable storage starts an empty set.
func NewRegistry(r repo.ChatRepo) *Registry {
	registry := &Registry{mutex: &sync.RWMutex{}, chats: make(map[int64]struct{}), repo: r}

	chats, err := r.LoadChats()
	if err != nil {
		slog.Error("chats are not restored, starting empty", "err", err)
		return registry
	}
	for _, chat := range chats {
		registry.chats[chat] = struct{}{}
	}
	slog.Info("Chats are restored", "count", len(registry.chats))
	return registry
}

// Register adds chatId and rewrites storage on first insertion. It reports
// whether the chat was new. A failed write keeps the chat in memory.
func (r *Registry) Register(chatId int64) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exist := r.chats[chatId]; exist {
		return false
	}
	r.chats[chatId] = struct{}{}

	if err := r.repo.SaveChats(r.list()); err != nil {
		slog.Error("saving chats", "err", err, "chat_id", chatId)
	}
	slog.Info("Chat registered", "chat_id", chatId, "total", len(r.chats))
	return true
}

// All returns a sorted snapshot of the registered chats.
func (r *Registry) All() []int64 {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.list()
}

func (r *Registry) Contains(chatId int64) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	_, exist := r.chats[chatId]
	return exist
}

func (r *Registry) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.chats)
}

func (r *Registry) list() []int64 {
	chats := make([]int64, 0, len(r.chats))
	for chat := range r.chats {
		chats = append(chats, chat)
	}
	sort.Slice(chats, func(i, j int) bool { return chats[i] < chats[j] })
	return chats
}
