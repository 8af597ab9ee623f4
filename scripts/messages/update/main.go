// Command update edits the messages of a logged broadcast.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/pkg/errors"

	"github.com/Archuqq/Schedule-Telegram-Bot/configs"
	"github.com/Archuqq/Schedule-Telegram-Bot/internal/bot"
	"github.com/Archuqq/Schedule-Telegram-Bot/internal/repo"
	"github.com/Archuqq/Schedule-Telegram-Bot/internal/service"
)

func main() {
	configPath := flag.String("config", "./../../config.yaml", "path to the YAML config")
	id := flag.String("id", "", "delivery log id printed by send")
	text := flag.String("text", "", "updated message text")
	flag.Parse()

	if *id == "" || *text == "" {
		log.Fatal("both -id and -text are required")
	}

	cfg, err := configs.DecodeConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Db.Host == "" {
		log.Fatal("db.host is not set, there is no delivery log to update")
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

	dispatcher := service.NewDispatcher(service.Options{
		MsgLog:      msgLog,
		SendTimeout: cfg.Bot.SendTimeout,
		RateLimit:   cfg.Bot.RateLimit,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	revised, err := dispatcher.Revise(ctx, bot.NewSender(api), *id, *text)
	if errors.Is(err, service.ErrLogNotFound) {
		fmt.Println("Не найдено сообщение с Id:", *id)
		return
	}
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Сообщения обновлены: %d, ошибок: %d\n", len(revised.Messages), len(revised.SendErrs))
}
