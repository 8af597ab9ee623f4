package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*FileRepo, string) {
	dir := t.TempDir()
	return NewFileRepo(filepath.Join(dir, "chats.json"), filepath.Join(dir, "answers.json")), dir
}

func TestFileRepoMissingFiles(t *testing.T) {
	r, _ := newTestRepo(t)

	chats, err := r.LoadChats()
	require.NoError(t, err)
	assert.Empty(t, chats)

	answers, err := r.LoadAnswers()
	require.NoError(t, err)
	assert.Empty(t, answers)
}

func TestFileRepoChats(t *testing.T) {
	r, dir := newTestRepo(t)

	require.NoError(t, r.SaveChats([]int64{42, -100, 7}))

	chats, err := r.LoadChats()
	require.NoError(t, err)
	assert.Equal(t, []int64{-100, 7, 42}, chats)

	data, err := os.ReadFile(filepath.Join(dir, "chats.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `[-100, 7, 42]`, string(data))
}

func TestFileRepoAnswersRoundTrip(t *testing.T) {
	r, _ := newTestRepo(t)

	want := map[string][]AnswerItem{
		"Алгебра": {
			{Type: ItemText, Content: "1) 42"},
			{Type: ItemPhoto, Content: "AgACAgIAAxkBAAIB"},
			{Type: ItemText, Content: "2) 7"},
		},
		"Physics": {{Type: ItemText, Content: "F = ma"}},
	}
	require.NoError(t, r.SaveAnswers(want))

	got, err := r.LoadAnswers()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileRepoAnswersFormat(t *testing.T) {
	r, dir := newTestRepo(t)
	require.NoError(t, r.SaveAnswers(map[string][]AnswerItem{
		"Math": {{Type: ItemPhoto, Content: "file-1"}},
	}))

	data, err := os.ReadFile(filepath.Join(dir, "answers.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Math": [{"type": "photo", "content": "file-1"}]}`, string(data))
}

func TestFileRepoCorruptFile(t *testing.T) {
	r, dir := newTestRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chats.json"), []byte("{not json"), 0o644))

	_, err := r.LoadChats()
	assert.Error(t, err)
}

func TestFileRepoLeavesNoTempFiles(t *testing.T) {
	r, dir := newTestRepo(t)
	require.NoError(t, r.SaveChats([]int64{1}))
	require.NoError(t, r.SaveChats([]int64{1, 2}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "chats.json", entries[0].Name())
}

func TestFileRepoUnwritableDir(t *testing.T) {
	r := NewFileRepo(filepath.Join(t.TempDir(), "missing", "chats.json"), "")
	assert.Error(t, r.SaveChats([]int64{1}))
}

func TestNopMsgLog(t *testing.T) {
	var log MsgLogRepo = NopMsgLog{}
	require.NoError(t, log.Save(MsgLog{Id: "x"}))
	_, found := log.Get("x")
	assert.False(t, found)
	assert.NoError(t, log.Update(MsgLog{Id: "x"}))
}
