package bot

import (
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleCallback answers a press on the weekday keyboard with that day's
// schedule.
func (b *ScheduleBot) handleCallback(callbackQuery *tgbotapi.CallbackQuery, now time.Time) []reply {
	b.registry.Register(callbackQuery.Message.Chat.ID)

	day := now.Weekday()
	if !checkWeekDay(callbackQuery.Data, &day) {
		slog.Warn("unknown callback data", "data", callbackQuery.Data, "chat_id", callbackQuery.Message.Chat.ID)
		return nil
	}
	return []reply{{text: formDaySchedule(day, b.timetable.EntriesFor(day), day == now.Weekday())}}
}
