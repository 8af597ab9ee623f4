package service

import (
	"context"
	"sync"
	"time"

	"github.com/Archuqq/Schedule-Telegram-Bot/internal/repo"
	"github.com/Archuqq/Schedule-Telegram-Bot/internal/store"
	"github.com/Archuqq/Schedule-Telegram-Bot/internal/timetable"
)

const (
	KindDigest        = "digest"
	KindLesson        = "lesson"
	KindAnswerAdded   = "answer_added"
	KindAnswerRemoved = "answer_removed"
	KindBroadcast     = "broadcast"
)

// Photo is either a transport file reference or raw image bytes.
type Photo struct {
	FileId string
	Name   string
	Bytes  []byte
}

// Sender delivers one message to one chat and returns the transport message ID.
type Sender interface {
	SendText(ctx context.Context, chatId int64, text string) (int, error)
	SendPhoto(ctx context.Context, chatId int64, photo Photo, caption string) (int, error)
}

type WeatherSource interface {
	Summary(ctx context.Context, city string) string
}

type ChatSource interface {
	All() []int64
}

// Outgoing is a rendered notification: text, optionally with a photo it captions.
type Outgoing struct {
	Text  string
	Photo *Photo
}

// Notification is a rule that matched a tick.
type Notification struct {
	Kind   string
	Day    time.Weekday
	Index  int
	Lesson timetable.Lesson
}

// Report is the outcome of one fan-out.
type Report struct {
	Id        string
	Kind      string
	Delivered []repo.Message
	Failed    []repo.SendErr
}

type Options struct {
	Timetable   *timetable.Timetable
	Chats       ChatSource
	Sender      Sender
	Weather     WeatherSource
	Images      *ImagePool
	MsgLog      repo.MsgLogRepo
	Location    *time.Location
	DigestAt    timetable.Clock
	LessonLead  time.Duration
	Cities      []string
	SendTimeout time.Duration
	// messages per second within one fan-out
	RateLimit int
}

type Dispatcher struct {
	timetable   *timetable.Timetable
	chats       ChatSource
	sender      Sender
	weather     WeatherSource
	images      *ImagePool
	msgLog      repo.MsgLogRepo
	loc         *time.Location
	digestAt    timetable.Clock
	lead        time.Duration
	cities      []string
	sendTimeout time.Duration
	interval    time.Duration

	pick     func(n int) int
	inFlight sync.WaitGroup
}

type AnswerService struct {
	answers  *store.Answers
	sessions *store.Sessions
	notifier Announcer
	admins   map[int64]struct{}
}

// Announcer sends a notice to every registered chat without blocking the caller.
type Announcer interface {
	Announce(kind, text string)
}
