package repo

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// FileRepo keeps chats and answers as flat JSON files. Every save rewrites
// the whole file through a temp file and a rename.
type FileRepo struct {
	chatsPath   string
	answersPath string
}

var (
	_ ChatRepo   = (*FileRepo)(nil)
	_ AnswerRepo = (*FileRepo)(nil)
)

func NewFileRepo(chatsPath, answersPath string) *FileRepo {
	return &FileRepo{chatsPath: chatsPath, answersPath: answersPath}
}

// LoadChats returns nil without error when the file does not exist yet.
func (r *FileRepo) LoadChats() ([]int64, error) {
	var chats []int64
	if err := readJSON(r.chatsPath, &chats); err != nil {
		return nil, errors.Wrap(err, "load chats")
	}
	return chats, nil
}

func (r *FileRepo) SaveChats(chats []int64) error {
	sorted := append([]int64{}, chats...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return errors.Wrap(writeJSON(r.chatsPath, sorted), "save chats")
}

func (r *FileRepo) LoadAnswers() (map[string][]AnswerItem, error) {
	answers := make(map[string][]AnswerItem)
	if err := readJSON(r.answersPath, &answers); err != nil {
		return nil, errors.Wrap(err, "load answers")
	}
	return answers, nil
}

func (r *FileRepo) SaveAnswers(answers map[string][]AnswerItem) error {
	return errors.Wrap(writeJSON(r.answersPath, answers), "save answers")
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
