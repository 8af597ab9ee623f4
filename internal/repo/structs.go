package repo

const (
	ItemText  = "text"
	ItemPhoto = "photo"
)

// AnswerItem is one piece of an answer entry. For photos Content is the
// transport's file identifier.
type AnswerItem struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type ChatRepo interface {
	LoadChats() ([]int64, error)
	SaveChats(chats []int64) error
}

type AnswerRepo interface {
	LoadAnswers() (map[string][]AnswerItem, error)
	SaveAnswers(answers map[string][]AnswerItem) error
}

// MsgLog records one broadcast and its per-chat outcome.
type MsgLog struct {
	Id          string    `reindex:"id,,pk"`
	Kind        string    `reindex:"kind"`
	MessageText string    `reindex:"message"`
	Messages    []Message `json:"messages"`
	SendErrs    []SendErr `json:"send_errs"`
	SentTime    int64     `reindex:"sent_time"`
}

type Message struct {
	ChatId    int64 `json:"chat_id"`
	MessageId int   `json:"message_id"`
}

type SendErr struct {
	ChatId int64  `json:"chat_id"`
	Error  string `json:"error"`
}

type MsgLogRepo interface {
	Save(log MsgLog) error
	Get(id string) (MsgLog, bool)
	Update(log MsgLog) error
	Close()
}
