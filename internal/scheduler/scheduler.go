package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
)

const (
	TickMinute    = "minute"
	TickKeepAlive = "keep-alive"
)

type Tick struct {
	Kind string
	At   time.Time
}

// Scheduler turns cron jobs into ticks on a channel. A tick that finds the
// channel full is dropped, so a busy consumer skips minutes instead of
// catching up.
type Scheduler struct {
	cron  *cron.Cron
	loc   *time.Location
	ticks chan Tick
	now   func() time.Time
}

func New(loc *time.Location, keepAlive time.Duration) (*Scheduler, error) {
	s := &Scheduler{
		cron:  cron.New(cron.WithLocation(loc), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		loc:   loc,
		ticks: make(chan Tick, 4),
		now:   time.Now,
	}

	if _, err := s.cron.AddFunc("* * * * *", func() { s.emit(TickMinute) }); err != nil {
		return nil, errors.Wrap(err, "schedule minute tick")
	}
	if _, err := s.cron.AddFunc("@every "+keepAlive.String(), func() { s.emit(TickKeepAlive) }); err != nil {
		return nil, errors.Wrap(err, "schedule keep-alive")
	}
	return s, nil
}

func (s *Scheduler) Ticks() <-chan Tick {
	return s.ticks
}

func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("Scheduler started", "timezone", s.loc.String())
}

// Stop halts the cron and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
	slog.Info("Scheduler stopped")
}

func (s *Scheduler) emit(kind string) {
	tick := Tick{Kind: kind, At: s.now().In(s.loc)}
	select {
	case s.ticks <- tick:
	default:
		slog.Warn("tick dropped, consumer is busy", "kind", kind, "at", tick.At.Format("15:04:05"))
	}
}
