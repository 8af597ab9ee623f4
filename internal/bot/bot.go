package bot

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"

	"github.com/Archuqq/Schedule-Telegram-Bot/internal/scheduler"
	"github.com/Archuqq/Schedule-Telegram-Bot/internal/service"
	"github.com/Archuqq/Schedule-Telegram-Bot/internal/store"
	"github.com/Archuqq/Schedule-Telegram-Bot/internal/timetable"
)

// pollTimeout is how long, in seconds, a getUpdates long poll waits for updates.
var pollTimeout = 60

// pollMargin is the time a long poll gets on top of pollTimeout to answer.
const pollMargin = 10 * time.Second

// NewBotAPI connects to Telegram. The HTTP client is shared by long polling and
// sending, so its timeout has to outlast a poll. Sends are bounded by
// sendTimeout through their context instead.
func NewBotAPI(token string, sendTimeout time.Duration) (*tgbotapi.BotAPI, error) {
	return newBotAPI(token, tgbotapi.APIEndpoint, sendTimeout)
}

func newBotAPI(token, endpoint string, sendTimeout time.Duration) (*tgbotapi.BotAPI, error) {
	client := &http.Client{Timeout: clientTimeout(sendTimeout)}
	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, errors.Wrap(err, "connect to telegram")
	}
	return api, nil
}

func clientTimeout(sendTimeout time.Duration) time.Duration {
	timeout := time.Duration(pollTimeout)*time.Second + pollMargin
	if sendTimeout > timeout {
		return sendTimeout
	}
	return timeout
}

func Init(api *tgbotapi.BotAPI, tt *timetable.Timetable, registry *store.Registry, answers *service.AnswerService,
	dispatcher *service.Dispatcher, loc *time.Location) *ScheduleBot {
	b := newScheduleBot(api, tt, registry, answers, dispatcher, loc)
	b.bot = api
	return b
}

func newScheduleBot(api transport, tt *timetable.Timetable, registry *store.Registry, answers *service.AnswerService,
	dispatcher *service.Dispatcher, loc *time.Location) *ScheduleBot {
	b := &ScheduleBot{
		api:        api,
		timetable:  tt,
		registry:   registry,
		answers:    answers,
		dispatcher: dispatcher,
		loc:        loc,
		buttons:    buttons{inlineWeekDays: weekDayButtons(tt)},
	}
	b.commands = map[string]commandFunc{
		"start":        b.start,
		"help":         b.start,
		"schedule":     b.schedule,
		"week":         b.week,
		"next":         b.next,
		"stats":        b.stats,
		"find":         b.find,
		"get_answer":   b.getAnswer,
		"list_answer":  b.listAnswer,
		"add_answer":   b.addAnswer,
		"del_answer":   b.delAnswer,
		"done":         b.done,
		"test_morning": b.testMorning,
		"test_lesson":  b.testLesson,
	}
	return b
}

// Listen polls Telegram and serves updates and scheduler ticks from a single
// goroutine until ctx is done.
func (b *ScheduleBot) Listen(ctx context.Context, ticks <-chan scheduler.Tick) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeout

	updates := b.bot.GetUpdatesChan(u)
	slog.Info("Bot started", "username", b.bot.Self.UserName)

	b.serve(ctx, updates, ticks)
	b.bot.StopReceivingUpdates()
}

func (b *ScheduleBot) serve(ctx context.Context, updates tgbotapi.UpdatesChannel, ticks <-chan scheduler.Tick) {
	for {
		select {
		case <-ctx.Done():
			return

		case tick := <-ticks:
			switch tick.Kind {
			case scheduler.TickMinute:
				b.dispatcher.Start(ctx, tick.At)
			case scheduler.TickKeepAlive:
				b.dispatcher.KeepAlive(tick.At)
			}

		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

// handleUpdate applies the update's state changes in place and sends the
// replies in the background.
func (b *ScheduleBot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	now := time.Now().In(b.loc)

	switch {
	case update.Message != nil:
		chatId := update.Message.Chat.ID
		replies := b.handleMessage(update.Message, now)
		if len(replies) > 0 {
			b.dispatcher.Go(func() { b.sendReplies(ctx, chatId, replies) })
		}

	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		chatId := update.CallbackQuery.Message.Chat.ID
		replies := b.handleCallback(update.CallbackQuery, now)
		callback := tgbotapi.NewCallback(update.CallbackQuery.ID, "")
		b.dispatcher.Go(func() {
			if _, err := b.api.Request(callback); err != nil {
				slog.Error("callback request", "err", err, "chat_id", chatId)
			}
			b.sendReplies(ctx, chatId, replies)
		})
	}
}

func (b *ScheduleBot) sendReplies(ctx context.Context, chatId int64, replies []reply) {
	for _, r := range replies {
		if ctx.Err() != nil {
			return
		}
		if _, err := b.api.Send(r.chattable(chatId)); err != nil {
			slog.Error("sending reply", "err", err, "chat_id", chatId)
		}
	}
}

func (r reply) chattable(chatId int64) tgbotapi.Chattable {
	if r.photo != nil {
		msg := tgbotapi.NewPhoto(chatId, photoFile(*r.photo))
		msg.Caption = r.text
		if r.markup != nil {
			msg.ReplyMarkup = r.markup
		}
		return msg
	}
	msg := tgbotapi.NewMessage(chatId, r.text)
	if r.markup != nil {
		msg.ReplyMarkup = r.markup
	}
	return msg
}

func weekDayButtons(tt *timetable.Timetable) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, day := range tt.Days() {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(day.String()[:3], day.String()))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}
