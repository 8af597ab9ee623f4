package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"

	"github.com/Archuqq/Schedule-Telegram-Bot/internal/repo"
	"github.com/Archuqq/Schedule-Telegram-Bot/internal/service"
	"github.com/Archuqq/Schedule-Telegram-Bot/internal/store"
)

// handleMessage registers the chat and routes the message. While an admin
// is collecting answers, anything that is not a known command is content.
func (b *ScheduleBot) handleMessage(message *tgbotapi.Message, now time.Time) []reply {
	chatId := message.Chat.ID
	var userId int64
	if message.From != nil {
		userId = message.From.ID
	}
	b.registry.Register(chatId)

	if message.IsCommand() {
		if handler, ok := b.commands[strings.ToLower(message.Command())]; ok {
			return handler(request{
				chatId:  chatId,
				userId:  userId,
				command: strings.ToLower(message.Command()),
				args:    strings.TrimSpace(message.CommandArguments()),
				now:     now,
			})
		}
	}

	if b.answers.Collecting(userId) {
		return b.collect(userId, message)
	}

	if message.IsCommand() {
		return []reply{{text: "❓ Неизвестная команда. Список команд: /start"}}
	}
	return nil
}

func (b *ScheduleBot) start(req request) []reply {
	return []reply{{text: formHelpMessage()}}
}

func (b *ScheduleBot) schedule(req request) []reply {
	day := req.now.Weekday()
	today := true
	if req.args != "" {
		if !checkWeekDay(req.args, &day) {
			return []reply{{text: formScheduleUsage(), markup: b.buttons.inlineWeekDays}}
		}
		today = day == req.now.Weekday()
	}
	return []reply{{text: formDaySchedule(day, b.timetable.EntriesFor(day), today)}}
}

func (b *ScheduleBot) week(req request) []reply {
	var replies []reply
	for _, chunk := range splitMessage(formWeekSchedule(b.timetable), messageLimit) {
		replies = append(replies, reply{text: chunk})
	}
	return replies
}

func (b *ScheduleBot) next(req request) []reply {
	return []reply{{text: formNextLesson(b.timetable, req.now)}}
}

func (b *ScheduleBot) stats(req request) []reply {
	return []reply{{text: formStats(b.timetable.Stats())}}
}

func (b *ScheduleBot) find(req request) []reply {
	if req.args == "" {
		return []reply{{text: formFindUsage()}}
	}
	return []reply{{text: formFindResult(req.args, b.timetable.Find(req.args))}}
}

func (b *ScheduleBot) getAnswer(req request) []reply {
	if req.args == "" {
		return []reply{{text: formUsage(req.command)}}
	}

	items, err := b.answers.Get(req.args)
	if errors.Is(err, store.ErrNotFound) {
		return []reply{{text: fmt.Sprintf("❌ Ответы для предмета '%s' не найдены", req.args)}}
	}

	replies := []reply{{text: fmt.Sprintf("📚 Ответы по предмету: %s", req.args)}}
	for _, item := range items {
		switch item.Type {
		case repo.ItemText:
			replies = append(replies, reply{text: item.Content})
		case repo.ItemPhoto:
			replies = append(replies, reply{photo: &service.Photo{FileId: item.Content}})
		default:
			slog.Warn("unknown answer item type", "type", item.Type, "subject", req.args)
		}
	}
	return replies
}

func (b *ScheduleBot) listAnswer(req request) []reply {
	return []reply{{text: formAnswersList(b.answers.List())}}
}

func (b *ScheduleBot) addAnswer(req request) []reply {
	if !b.answers.IsAdmin(req.userId) {
		return []reply{{text: formAdminOnly()}}
	}
	if req.args == "" {
		return []reply{{text: formUsage(req.command)}}
	}

	b.answers.BeginCollection(req.userId, req.args)
	return []reply{{text: fmt.Sprintf(
		"📝 Отправьте ответы для предмета '%s'\nМожно отправлять текст и фотографии.\nДля завершения отправьте /done", req.args,
	)}}
}

func (b *ScheduleBot) delAnswer(req request) []reply {
	if !b.answers.IsAdmin(req.userId) {
		return []reply{{text: formAdminOnly()}}
	}
	if req.args == "" {
		return []reply{{text: formUsage(req.command)}}
	}

	if !b.answers.Remove(req.args) {
		return []reply{{text: fmt.Sprintf("❌ Ответы для предмета '%s' не найдены", req.args)}}
	}
	return []reply{{text: fmt.Sprintf("✅ Ответы для предмета '%s' удалены", req.args)}}
}

func (b *ScheduleBot) done(req request) []reply {
	if !b.answers.IsAdmin(req.userId) {
		return []reply{{text: formAdminOnly()}}
	}

	_, err := b.answers.FinishCollection(req.userId)
	switch {
	case errors.Is(err, store.ErrNoSession):
		return []reply{{text: "❌ Вы не находитесь в режиме добавления ответов"}}
	case errors.Is(err, store.ErrEmptySession):
		return []reply{{text: "❌ Нет добавленных ответов"}}
	case err != nil:
		slog.Error("finishing collection", "err", err, "admin", req.userId)
		return []reply{{text: formServerErr()}}
	}
	return []reply{{text: "✅ Ответы успешно сохранены"}}
}

func (b *ScheduleBot) testMorning(req request) []reply {
	b.dispatcher.Go(func() { b.dispatcher.SendDigestTo(context.Background(), req.chatId, req.now) })
	return nil
}

func (b *ScheduleBot) testLesson(req request) []reply {
	b.dispatcher.Go(func() { b.dispatcher.SendNextLessonTo(context.Background(), req.chatId, req.now) })
	return nil
}

// collect appends the message to admin's open session: the largest size of
// a photo, otherwise the text.
func (b *ScheduleBot) collect(admin int64, message *tgbotapi.Message) []reply {
	var item repo.AnswerItem
	switch {
	case len(message.Photo) > 0:
		item = repo.AnswerItem{Type: repo.ItemPhoto, Content: message.Photo[len(message.Photo)-1].FileID}
	case message.Text != "":
		item = repo.AnswerItem{Type: repo.ItemText, Content: message.Text}
	default:
		return []reply{{text: "⚠️ Можно отправлять только текст и фотографии"}}
	}

	if _, err := b.answers.Collect(admin, item); err != nil {
		slog.Error("collecting answer", "err", err, "admin", admin)
		return []reply{{text: "❌ Произошла ошибка при обработке ответа"}}
	}
	return []reply{{text: "✅ Ответ добавлен. Отправьте еще или /done для завершения"}}
}

func formAdminOnly() string {
	return "⛔️ Эта команда доступна только администратору"
}
