package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/Archuqq/Schedule-Telegram-Bot/internal/repo"
)

var ErrLogNotFound = errors.New("delivery log not found")

// Editor rewrites the text of a message sent earlier.
type Editor interface {
	EditText(ctx context.Context, chatId int64, messageId int, text string) error
}

// Revise edits every delivered message of the logged fan-out id to text.
// Failed edits are appended to the log's errors and the log is updated.
func (d *Dispatcher) Revise(ctx context.Context, editor Editor, id, text string) (repo.MsgLog, error) {
	msgLog, found := d.msgLog.Get(id)
	if !found {
		return repo.MsgLog{}, errors.Wrap(ErrLogNotFound, id)
	}

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	wg := sync.WaitGroup{}
	mutex := sync.Mutex{}

loop:
	for i, message := range msgLog.Messages {
		if i > 0 {
			select {
			case <-ctx.Done():
				break loop
			case <-ticker.C:
			}
		}
		wg.Add(1)
		go func(message repo.Message) {
			defer wg.Done()
			editCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
			defer cancel()

			if err := editor.EditText(editCtx, message.ChatId, message.MessageId, text); err != nil {
				mutex.Lock()
				msgLog.SendErrs = append(msgLog.SendErrs, repo.SendErr{ChatId: message.ChatId, Error: err.Error()})
				mutex.Unlock()
				slog.Error("editing message", "err", err, "chat_id", message.ChatId, "message_id", message.MessageId)
			}
		}(message)
	}
	wg.Wait()

	msgLog.MessageText = text
	msgLog.SentTime = time.Now().Unix()
	if err := d.msgLog.Update(msgLog); err != nil {
		return msgLog, errors.Wrap(err, "update delivery log")
	}
	slog.Info("Notification revised", "id", id, "messages", len(msgLog.Messages))
	return msgLog, nil
}
