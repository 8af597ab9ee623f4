// Command send broadcasts an ad-hoc message to every registered chat and
// records it in the delivery log.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/Archuqq/Schedule-Telegram-Bot/configs"
	"github.com/Archuqq/Schedule-Telegram-Bot/internal/bot"
	"github.com/Archuqq/Schedule-Telegram-Bot/internal/repo"
	"github.com/Archuqq/Schedule-Telegram-Bot/internal/service"
	"github.com/Archuqq/Schedule-Telegram-Bot/internal/store"
)

func main() {
	configPath := flag.String("config", "./../../config.yaml", "path to the YAML config")
	text := flag.String("text", "", "message text")
	silent := flag.Bool("silent", true, "send without a notification sound")
	flag.Parse()

	if *text == "" {
		log.Fatal("text is empty")
	}

	cfg, err := configs.DecodeConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	api, err := bot.NewBotAPI(cfg.Bot.Token, cfg.Bot.SendTimeout)
	if err != nil {
		log.Fatal(err)
	}
	msgLog, err := repo.NewMsgLogRepo(cfg.Db)
	if err != nil {
		log.Fatal(err)
	}
	defer msgLog.Close()

	registry := store.NewRegistry(repo.NewFileRepo(cfg.Files.Chats, cfg.Files.Answers))
	sender := bot.NewSender(api)
	sender.Silent = *silent

	dispatcher := service.NewDispatcher(service.Options{
		Chats:       registry,
		Sender:      sender,
		MsgLog:      msgLog,
		SendTimeout: cfg.Bot.SendTimeout,
		RateLimit:   cfg.Bot.RateLimit,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report := dispatcher.Deliver(ctx, service.KindBroadcast, service.Outgoing{Text: *text}, registry.All())
	fmt.Printf("Сообщения отправлены: %d, ошибок: %d, id: %s\n", len(report.Delivered), len(report.Failed), report.Id)
}
