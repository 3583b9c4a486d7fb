package app

import (
	"context"

	"secureai/internal/domain"
	"secureai/internal/feed"
	amqpfeed "secureai/internal/feed/amqp"
	identitysvc "secureai/internal/services/identity"
	messagesvc "secureai/internal/services/message"
	sessionsvc "secureai/internal/services/session"
	"secureai/internal/store/filestore"
	"secureai/internal/store/memory"
	"secureai/internal/store/postgres"
	"secureai/pkg/logger"
)

// Wire bundles all stores, services, and the feed for the CLI.
type Wire struct {
	Log      *logger.Logger
	Keys     domain.KeyStore
	Messages domain.MessageStore
	Presence domain.PresenceStore
	Identity domain.IdentityService
	Sessions domain.SessionService
	Chat     domain.MessageService
	Feed     domain.Feed

	closers []func() error
}

// NewWire constructs the dependency graph from cfg.
//
// Store backends are chosen by configuration: a Postgres DSN selects the
// bun-backed stores, otherwise identity keys go to passphrase-sealed files
// under cfg.Home and messages are held in memory. The feed is AMQP when a
// broker URL is configured and in-process otherwise.
func NewWire(ctx context.Context, cfg Config) (*Wire, error) {
	log, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		return nil, err
	}

	w := &Wire{Log: log}

	if cfg.PostgresDSN != "" {
		db, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		w.closers = append(w.closers, db.Close)
		if err := postgres.CreateSchema(ctx, db); err != nil {
			return nil, err
		}
		w.Keys = postgres.NewKeyStore(db, log)
		w.Messages = postgres.NewMessageStore(db, log)
		w.Presence = postgres.NewPresenceStore(db, log)
	} else {
		w.Keys = filestore.NewKeyStore(cfg.Home, cfg.Passphrase)
		w.Messages = memory.NewMessageStore()
		w.Presence = memory.NewPresenceStore()
	}

	if cfg.AMQPURL != "" {
		f, err := amqpfeed.New(cfg.AMQPURL, log)
		if err != nil {
			return nil, err
		}
		w.Feed = f
	} else {
		w.Feed = feed.NewBus()
	}
	w.closers = append(w.closers, w.Feed.Close)

	w.Identity = identitysvc.New(w.Keys, log)
	w.Sessions = sessionsvc.New(w.Identity, w.Keys, sessionsvc.NewKeyCache(), log)
	w.Chat = messagesvc.New(w.Sessions, w.Messages, w.Feed, log)

	return w, nil
}

// Close releases broker connections and database handles in reverse
// construction order.
func (w *Wire) Close() error {
	var first error
	for i := len(w.closers) - 1; i >= 0; i-- {
		if err := w.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	if w.Log != nil {
		_ = w.Log.Sync()
	}
	return first
}
