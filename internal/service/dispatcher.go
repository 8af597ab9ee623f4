package service

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Archuqq/Schedule-Telegram-Bot/internal/repo"
	"github.com/Archuqq/Schedule-Telegram-Bot/internal/timetable"
)

// Telegram rejects photo captions longer than this.
const captionLimit = 1024

func NewDispatcher(opts Options) *Dispatcher {
	d := &Dispatcher{
		timetable:   opts.Timetable,
		chats:       opts.Chats,
		sender:      opts.Sender,
		weather:     opts.Weather,
		images:      opts.Images,
		msgLog:      opts.MsgLog,
		loc:         opts.Location,
		digestAt:    opts.DigestAt,
		lead:        opts.LessonLead,
		cities:      opts.Cities,
		sendTimeout: opts.SendTimeout,
		interval:    time.Second / 30,
		pick:        rand.Intn,
	}
	if opts.RateLimit > 0 {
		d.interval = time.Second / time.Duration(opts.RateLimit)
	}
	if d.loc == nil {
		d.loc = time.UTC
	}
	if d.msgLog == nil {
		d.msgLog = repo.NopMsgLog{}
	}
	if d.sendTimeout <= 0 {
		d.sendTimeout = 30 * time.Second
	}
	return d
}

// Due lists the notifications whose tick is now. Only the current day's
// entries are inspected.
func (d *Dispatcher) Due(now time.Time) []Notification {
	now = now.In(d.loc)
	clock := timetable.ClockOf(now)
	day := now.Weekday()

	var due []Notification
	if clock == d.digestAt {
		due = append(due, Notification{Kind: KindDigest, Day: day})
	}
	for i, lesson := range d.timetable.EntriesFor(day) {
		if lesson.Start.Add(-d.lead) == clock {
			due = append(due, Notification{Kind: KindLesson, Day: day, Index: i, Lesson: lesson})
		}
	}
	return due
}

// Tick renders every notification due at now and fans it out to the
// registered chats. Missed ticks are not replayed.
func (d *Dispatcher) Tick(ctx context.Context, now time.Time) []Report {
	due := d.Due(now)
	if len(due) == 0 {
		return nil
	}
	chats := d.chats.All()
	slog.Info("Notifications due", "time", now.In(d.loc).Format("15:04"), "count", len(due), "chats", len(chats))

	reports := make([]Report, 0, len(due))
	for _, n := range due {
		var out Outgoing
		switch n.Kind {
		case KindDigest:
			out = d.renderDigest(ctx, now)
		case KindLesson:
			out = Outgoing{Text: formLessonAlert(n, d.lead)}
		}
		reports = append(reports, d.Deliver(ctx, n.Kind, out, chats))
	}
	return reports
}

// Start runs Tick in the background so the caller's loop is never held by
// weather lookups or delivery.
func (d *Dispatcher) Start(ctx context.Context, now time.Time) {
	d.Go(func() { d.Tick(ctx, now) })
}

func (d *Dispatcher) KeepAlive(now time.Time) {
	slog.Info("🔄 keep-alive", "time", now.In(d.loc).Format("15:04:05"))
}

// Announce broadcasts text to every registered chat in the background.
func (d *Dispatcher) Announce(kind, text string) {
	chats := d.chats.All()
	d.Go(func() { d.Deliver(context.Background(), kind, Outgoing{Text: text}, chats) })
}

// Go runs fn in the background, tracked by Wait.
func (d *Dispatcher) Go(fn func()) {
	d.inFlight.Add(1)
	go func() {
		defer d.inFlight.Done()
		fn()
	}()
}

// Wait blocks until background work started by the dispatcher is done.
func (d *Dispatcher) Wait() {
	d.inFlight.Wait()
}

// SendDigestTo renders the digest for now and sends it to a single chat.
func (d *Dispatcher) SendDigestTo(ctx context.Context, chatId int64, now time.Time) Report {
	return d.Deliver(ctx, KindDigest, d.renderDigest(ctx, now), []int64{chatId})
}

// SendNextLessonTo sends an alert about the next lesson today to a single chat.
func (d *Dispatcher) SendNextLessonTo(ctx context.Context, chatId int64, now time.Time) Report {
	return d.Deliver(ctx, KindLesson, Outgoing{Text: d.nextLessonAlert(now)}, []int64{chatId})
}

// Deliver sends out to each chat independently: a failed chat is recorded
// and does not stop the others. Nothing is retried.
func (d *Dispatcher) Deliver(ctx context.Context, kind string, out Outgoing, chats []int64) Report {
	report := Report{Id: uuid.NewString(), Kind: kind}

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	wg := sync.WaitGroup{}
	mutex := sync.Mutex{}

loop:
	for i, chat := range chats {
		if i > 0 {
			select {
			case <-ctx.Done():
				break loop
			case <-ticker.C:
			}
		}
		wg.Add(1)
		go func(chat int64) {
			defer wg.Done()
			sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
			defer cancel()

			messageId, err := d.send(sendCtx, chat, out)
			mutex.Lock()
			defer mutex.Unlock()
			if err != nil {
				report.Failed = append(report.Failed, repo.SendErr{ChatId: chat, Error: err.Error()})
				slog.Error("sending notification", "err", err, "kind", kind, "chat_id", chat)
				return
			}
			report.Delivered = append(report.Delivered, repo.Message{ChatId: chat, MessageId: messageId})
		}(chat)
	}
	wg.Wait()

	if ctx.Err() != nil && len(report.Delivered)+len(report.Failed) < len(chats) {
		slog.Warn("delivery interrupted", "kind", kind, "err", ctx.Err(),
			"skipped", len(chats)-len(report.Delivered)-len(report.Failed))
	}

	slog.Info("Notification delivered", "kind", kind, "id", report.Id,
		"delivered", len(report.Delivered), "failed", len(report.Failed))
	if err := d.msgLog.Save(repo.MsgLog{
		Id:          report.Id,
		Kind:        kind,
		MessageText: out.Text,
		Messages:    report.Delivered,
		SendErrs:    report.Failed,
		SentTime:    time.Now().Unix(),
	}); err != nil {
		slog.Error("saving delivery log", "err", err, "id", report.Id)
	}
	return report
}

func (d *Dispatcher) send(ctx context.Context, chat int64, out Outgoing) (int, error) {
	if out.Photo == nil {
		return d.sender.SendText(ctx, chat, out.Text)
	}
	if len([]rune(out.Text)) <= captionLimit {
		return d.sender.SendPhoto(ctx, chat, *out.Photo, out.Text)
	}
	if _, err := d.sender.SendPhoto(ctx, chat, *out.Photo, ""); err != nil {
		return 0, err
	}
	return d.sender.SendText(ctx, chat, out.Text)
}

func (d *Dispatcher) renderDigest(ctx context.Context, now time.Time) Outgoing {
	now = now.In(d.loc)

	weather := make([]string, len(d.cities))
	for i, city := range d.cities {
		weather[i] = d.weather.Summary(ctx, city)
	}
	quote := quotes[d.pick(len(quotes))]

	out := Outgoing{Text: formDigest(weather, quote, now.Weekday(), d.timetable.EntriesFor(now.Weekday()))}
	if photo, ok := d.images.Random(d.pick); ok {
		out.Photo = &photo
	}
	return out
}

func (d *Dispatcher) nextLessonAlert(now time.Time) string {
	now = now.In(d.loc)
	day := now.Weekday()
	if !d.timetable.HasDay(day) {
		return formDayOffAlert()
	}
	lesson, index, ok := d.timetable.Next(day, timetable.ClockOf(now))
	if !ok {
		return formNoMoreLessons()
	}
	return formLessonAlert(Notification{Kind: KindLesson, Day: day, Index: index, Lesson: lesson}, d.lead)
}
