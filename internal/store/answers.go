package store

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/Archuqq/Schedule-Telegram-Bot/internal/repo"
)

func NewAnswers(r repo.AnswerRepo) *Answers {
	answers := &Answers{mutex: &sync.RWMutex{}, data: make(map[string][]repo.AnswerItem), repo: r}

	data, err := r.LoadAnswers()
	if err != nil {
		slog.Error("answers are not restored, starting empty", "err", err)
		return answers
	}
	for subject, items := range data {
		answers.data[subject] = items
		answers.order = append(answers.order, subject)
	}
	sort.Strings(answers.order)
	slog.Info("Answers are restored", "subjects", len(answers.order))
	return answers
}

// Put replaces the entry for subject. The returned error is a persistence
// failure only; the in-memory entry is updated regardless.
func (a *Answers) Put(subject string, items []repo.AnswerItem) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if _, exist := a.data[subject]; !exist {
		a.order = append(a.order, subject)
	}
	a.data[subject] = append([]repo.AnswerItem(nil), items...)
	return a.repo.SaveAnswers(a.data)
}

// Remove deletes the whole entry for subject, reporting whether it existed.
func (a *Answers) Remove(subject string) (bool, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if _, exist := a.data[subject]; !exist {
		return false, nil
	}
	delete(a.data, subject)
	for i, s := range a.order {
		if s == subject {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	return true, a.repo.SaveAnswers(a.data)
}

func (a *Answers) Get(subject string) ([]repo.AnswerItem, error) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	items, exist := a.data[subject]
	if !exist {
		return nil, ErrNotFound
	}
	return append([]repo.AnswerItem(nil), items...), nil
}

// List returns subjects in insertion order; restored subjects come first, sorted.
func (a *Answers) List() []string {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	return append([]string(nil), a.order...)
}
