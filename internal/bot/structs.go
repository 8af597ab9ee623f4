package bot

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Archuqq/Schedule-Telegram-Bot/internal/service"
	"github.com/Archuqq/Schedule-Telegram-Bot/internal/store"
	"github.com/Archuqq/Schedule-Telegram-Bot/internal/timetable"
)

// transport is the part of *tgbotapi.BotAPI the bot talks through.
type transport interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type ScheduleBot struct {
	bot        *tgbotapi.BotAPI
	api        transport
	timetable  *timetable.Timetable
	registry   *store.Registry
	answers    *service.AnswerService
	dispatcher *service.Dispatcher
	loc        *time.Location
	commands   map[string]commandFunc
	buttons    buttons
}

type buttons struct {
	inlineWeekDays tgbotapi.InlineKeyboardMarkup
}

// request is an inbound message reduced to what the command handlers need.
type request struct {
	chatId  int64
	userId  int64
	command string
	args    string
	now     time.Time
}

type commandFunc func(req request) []reply

// reply is one outbound message in answer to an update. Replies of a single
// update are sent in order.
type reply struct {
	text   string
	photo  *service.Photo
	markup interface{}
}

// Sender delivers dispatcher notifications through the Telegram API.
type Sender struct {
	api transport
	// Silent sends messages without a notification sound.
	Silent bool
}
