package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Archuqq/Schedule-Telegram-Bot/configs"
	"github.com/Archuqq/Schedule-Telegram-Bot/internal/bot"
	"github.com/Archuqq/Schedule-Telegram-Bot/internal/pidfile"
	"github.com/Archuqq/Schedule-Telegram-Bot/internal/repo"
	"github.com/Archuqq/Schedule-Telegram-Bot/internal/scheduler"
	"github.com/Archuqq/Schedule-Telegram-Bot/internal/service"
	"github.com/Archuqq/Schedule-Telegram-Bot/internal/store"
	"github.com/Archuqq/Schedule-Telegram-Bot/internal/timetable"
	"github.com/Archuqq/Schedule-Telegram-Bot/internal/weather"
)

func main() {
	configPath := flag.String("config", "./config.yaml", "path to the YAML config")
	flag.Parse()

	cfg, err := configs.DecodeConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	slog.SetDefault(newLogger(cfg.Log))
	for _, warning := range cfg.Warnings() {
		slog.Warn(warning)
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg configs.Config) error {
	marker := pidfile.New(cfg.Files.Pid)
	if running, err := marker.Check(); err != nil {
		slog.Error("checking pid file", "err", err)
	} else if running {
		slog.Error("Bot is already running", "pid_file", cfg.Files.Pid)
		return nil
	}
	defer marker.Remove()

	loc, err := cfg.Schedule.Location()
	if err != nil {
		return err
	}
	hour, minute, err := cfg.Schedule.DigestAt()
	if err != nil {
		return err
	}

	tt := timetable.Default()
	if cfg.Files.Timetable != "" {
		if tt, err = timetable.Load(cfg.Files.Timetable); err != nil {
			return err
		}
	}

	api, err := bot.NewBotAPI(cfg.Bot.Token, cfg.Bot.SendTimeout)
	if err != nil {
		return err
	}

	msgLog, err := repo.NewMsgLogRepo(cfg.Db)
	if err != nil {
		slog.Error("delivery log is disabled", "err", err)
		msgLog = repo.NopMsgLog{}
	}
	defer msgLog.Close()

	fileRepo := repo.NewFileRepo(cfg.Files.Chats, cfg.Files.Answers)
	registry := store.NewRegistry(fileRepo)

	dispatcher := service.NewDispatcher(service.Options{
		Timetable:   tt,
		Chats:       registry,
		Sender:      bot.NewSender(api),
		Weather:     weather.New(cfg.Weather.BaseUrl, cfg.Weather.ApiKey, cfg.Weather.Timeout),
		Images:      service.NewImagePool(cfg.Files.Images),
		MsgLog:      msgLog,
		Location:    loc,
		DigestAt:    timetable.NewClock(hour, minute),
		LessonLead:  cfg.Schedule.LessonLead,
		Cities:      cfg.Weather.Cities,
		SendTimeout: cfg.Bot.SendTimeout,
		RateLimit:   cfg.Bot.RateLimit,
	})
	answers := service.NewAnswerService(store.NewAnswers(fileRepo), store.NewSessions(), dispatcher, cfg.Bot.AdminIds)

	sched, err := scheduler.New(loc, cfg.Schedule.KeepAlive)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduleBot := bot.Init(api, tt, registry, answers, dispatcher, loc)
	sched.Start()
	scheduleBot.Listen(ctx, sched.Ticks())

	slog.Info("Shutting down")
	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	sched.Stop(stopCtx)
	dispatcher.Wait()
	return nil
}

func newLogger(cfg configs.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
