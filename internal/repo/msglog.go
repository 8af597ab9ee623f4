package repo

import (
	"log/slog"

	"github.com/pkg/errors"
	"github.com/restream/reindexer/v3"
	_ "github.com/restream/reindexer/v3/bindings/cproto"

	"github.com/Archuqq/Schedule-Telegram-Bot/configs"
)

const msgLogNamespace = "sent_msg_logs"

type ReindexerMsgLog struct {
	db *reindexer.Reindexer
}

var _ MsgLogRepo = (*ReindexerMsgLog)(nil)

// NewMsgLogRepo connects to reindexer when a host is configured and falls
// back to a log that keeps nothing otherwise.
func NewMsgLogRepo(cfg configs.DbConfig) (MsgLogRepo, error) {
	if cfg.Host == "" {
		slog.Info("delivery log disabled: no db host configured")
		return NopMsgLog{}, nil
	}

	database := reindexer.NewReindex(cfg.DSN(), reindexer.WithCreateDBIfMissing())
	if err := database.Ping(); err != nil {
		return nil, errors.Wrap(err, "ping reindexer")
	}
	if err := database.OpenNamespace(msgLogNamespace, reindexer.DefaultNamespaceOptions(), MsgLog{}); err != nil {
		database.Close()
		return nil, errors.Wrap(err, "open namespace "+msgLogNamespace)
	}
	return &ReindexerMsgLog{db: database}, nil
}

func (r *ReindexerMsgLog) Save(log MsgLog) error {
	if _, err := r.db.Insert(msgLogNamespace, &log); err != nil {
		return errors.Wrapf(err, "insert message log %s", log.Id)
	}
	return nil
}

func (r *ReindexerMsgLog) Get(id string) (MsgLog, bool) {
	item, found := r.db.Query(msgLogNamespace).Where("id", reindexer.EQ, id).Get()
	if !found {
		return MsgLog{}, false
	}
	return *item.(*MsgLog), true
}

func (r *ReindexerMsgLog) Update(log MsgLog) error {
	if _, err := r.db.Update(msgLogNamespace, &log); err != nil {
		return errors.Wrapf(err, "update message log %s", log.Id)
	}
	return nil
}

func (r *ReindexerMsgLog) Close() {
	r.db.Close()
}

type NopMsgLog struct{}

func (NopMsgLog) Save(MsgLog) error { return nil }
func (NopMsgLog) Get(string) (MsgLog, bool) { return MsgLog{}, false }
func (NopMsgLog) Update(MsgLog) error { return nil }
func (NopMsgLog) Close() {}
