package service

import (
	"log/slog"

	"github.com/Archuqq/Schedule-Telegram-Bot/internal/repo"
	"github.com/Archuqq/Schedule-Telegram-Bot/internal/store"
)

func NewAnswerService(answers *store.Answers, sessions *store.Sessions, notifier Announcer, admins []int64) *AnswerService {
	s := &AnswerService{answers: answers, sessions: sessions, notifier: notifier, admins: make(map[int64]struct{}, len(admins))}
	for _, id := range admins {
		s.admins[id] = struct{}{}
	}
	return s
}

func (s *AnswerService) IsAdmin(userId int64) bool {
	_, ok := s.admins[userId]
	return ok
}

// BeginCollection opens a collection session for admin.
func (s *AnswerService) BeginCollection(admin int64, subject string) {
	if s.sessions.Begin(admin, subject) {
		slog.Warn("unfinished collection session dropped", "admin", admin)
	}
	slog.Info("Collection started", "admin", admin, "subject", subject)
}

// Collecting reports whether admin has an open session.
func (s *AnswerService) Collecting(admin int64) bool {
	_, ok := s.sessions.Collecting(admin)
	return ok
}

func (s *AnswerService) Collect(admin int64, item repo.AnswerItem) (int, error) {
	return s.sessions.Append(admin, item)
}

// FinishCollection commits admin's session and announces it. An empty
// session yields store.ErrEmptySession and leaves answers untouched.
func (s *AnswerService) FinishCollection(admin int64) (store.Session, error) {
	session, err := s.sessions.Finish(admin)
	if err != nil {
		return session, err
	}
	s.Put(session.Subject, session.Items)
	return session, nil
}

// Put replaces the subject's answers and announces the change.
func (s *AnswerService) Put(subject string, items []repo.AnswerItem) {
	if err := s.answers.Put(subject, items); err != nil {
		slog.Error("saving answers", "err", err, "subject", subject)
	}
	slog.Info("Answers saved", "subject", subject, "items", len(items))
	s.notifier.Announce(KindAnswerAdded, formAnswerAdded(subject))
}

// Remove deletes the subject's answers, announcing only when something was removed.
func (s *AnswerService) Remove(subject string) bool {
	removed, err := s.answers.Remove(subject)
	if err != nil {
		slog.Error("saving answers", "err", err, "subject", subject)
	}
	if !removed {
		return false
	}
	slog.Info("Answers removed", "subject", subject)
	s.notifier.Announce(KindAnswerRemoved, formAnswerRemoved(subject))
	return true
}

func (s *AnswerService) Get(subject string) ([]repo.AnswerItem, error) {
	return s.answers.Get(subject)
}

func (s *AnswerService) List() []string {
	return s.answers.List()
}
