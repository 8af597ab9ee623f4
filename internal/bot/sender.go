package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"

	"github.com/Archuqq/Schedule-Telegram-Bot/internal/service"
)

func NewSender(api *tgbotapi.BotAPI) *Sender {
	return &Sender{api: api}
}

func (s *Sender) SendText(ctx context.Context, chatId int64, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatId, text)
	msg.DisableNotification = s.Silent
	return s.do(ctx, msg)
}

func (s *Sender) SendPhoto(ctx context.Context, chatId int64, photo service.Photo, caption string) (int, error) {
	msg := tgbotapi.NewPhoto(chatId, photoFile(photo))
	msg.Caption = caption
	msg.DisableNotification = s.Silent
	return s.do(ctx, msg)
}

// EditText replaces the text of a message sent earlier.
func (s *Sender) EditText(ctx context.Context, chatId int64, messageId int, text string) error {
	_, err := s.do(ctx, tgbotapi.NewEditMessageText(chatId, messageId, text))
	return err
}

// do sends c and gives up waiting once ctx is done. The HTTP client's own
// timeout bounds the abandoned request.
func (s *Sender) do(ctx context.Context, c tgbotapi.Chattable) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	type result struct {
		msg tgbotapi.Message
		err error
	}
	done := make(chan result, 1)
	go func() {
		msg, err := s.api.Send(c)
		done <- result{msg: msg, err: err}
	}()

	select {
	case <-ctx.Done():
		return 0, errors.Wrap(ctx.Err(), "telegram send")
	case r := <-done:
		if r.err != nil {
			return 0, errors.Wrap(r.err, "telegram send")
		}
		return r.msg.MessageID, nil
	}
}

func photoFile(photo service.Photo) tgbotapi.RequestFileData {
	if photo.FileId != "" {
		return tgbotapi.FileID(photo.FileId)
	}
	return tgbotapi.FileBytes{Name: photo.Name, Bytes: photo.Bytes}
}
