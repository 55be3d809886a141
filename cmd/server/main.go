package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "modernc.org/sqlite"

	emailPkg "zonehub/internal/adapters/email"
	web "zonehub/internal/adapters/http"
	"zonehub/internal/adapters/storage"
	accountStore "zonehub/internal/adapters/storage/account"
	bookingStorePkg "zonehub/internal/adapters/storage/booking"
	clubStorePkg "zonehub/internal/adapters/storage/club"
	emailStorePkg "zonehub/internal/adapters/storage/email"
	eventStorePkg "zonehub/internal/adapters/storage/event"
	eventRequestStorePkg "zonehub/internal/adapters/storage/eventrequest"
	eventTypeStorePkg "zonehub/internal/adapters/storage/eventtype"
	importBatchStorePkg "zonehub/internal/adapters/storage/importbatch"
	outboxStorePkg "zonehub/internal/adapters/storage/outbox"
	zoneStorePkg "zonehub/internal/adapters/storage/zone"
	"zonehub/internal/application/orchestrators"
	"zonehub/internal/config"
	outboxDomain "zonehub/internal/domain/outbox"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfgPath := os.Getenv("ZONEHUB_CONFIG")
	if cfgPath == "" {
		cfgPath = "zonehub.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	// The web layer reads ZONEHUB_ENV for cookie and CSRF policy.
	os.Setenv("ZONEHUB_ENV", cfg.Env)

	// WAL mode, foreign keys, and a busy timeout for concurrent handlers.
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Slow queries are logged through the timing wrapper.
	timedDB := storage.NewTimedDB(db)

	acctStore := accountStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:       acctStore,
		ZoneStore:          zoneStorePkg.NewSQLiteStore(timedDB),
		ClubStore:          clubStorePkg.NewSQLiteStore(timedDB),
		EventStore:         eventStorePkg.NewSQLiteStore(timedDB),
		EventTypeStore:     eventTypeStorePkg.NewSQLiteStore(timedDB),
		EventRequestStore:  eventRequestStorePkg.NewSQLiteStore(timedDB),
		ImportBatchStore:   importBatchStorePkg.NewSQLiteStore(timedDB),
		EmailStore:         emailStorePkg.NewSQLiteStore(timedDB),
		EmailTemplateStore: emailStorePkg.NewSQLiteTemplateStore(timedDB),
		EquipmentStore:     bookingStorePkg.NewSQLiteEquipmentStore(timedDB),
		BookingStore:       bookingStorePkg.NewSQLiteStore(timedDB),
		OutboxStore:        outboxStorePkg.NewSQLiteStore(timedDB),
	}

	// Seed the first admin account when the accounts table is empty.
	adminPassword := cfg.AdminPassword
	if adminPassword == "" && !cfg.IsProduction() {
		adminPassword = "zonehub-dev-password"
	}
	seedDeps := orchestrators.CreateAccountDeps{AccountStore: acctStore}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedDeps, cfg.AdminEmail, adminPassword); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	var sender emailPkg.Sender
	if cfg.ResendKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		if cfg.IsProduction() {
			log.Println("WARNING: resend key is not set, email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set ZONEHUB_RESEND_KEY for real delivery)")
		}
	}
	web.SetEmailSender(sender, cfg.EmailFrom, cfg.EmailReplyTo)

	// Background outbox worker retries failed sends with backoff.
	outboxStopCh := make(chan struct{})
	defer close(outboxStopCh)
	processor := orchestrators.NewOutboxProcessor(stores.OutboxStore, map[string]orchestrators.ActionExecutor{
		outboxDomain.ActionTypeEmail: &orchestrators.EmailRetryExecutor{
			EmailStore:  stores.EmailStore,
			EmailSender: sender,
			Now:         time.Now,
			FromAddress: cfg.EmailFrom,
			ReplyTo:     cfg.EmailReplyTo,
		},
	})
	orchestrators.StartBackgroundWorker(processor, 1*time.Minute, outboxStopCh)

	// Periodic pass over the queued email list.
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				result, err := orchestrators.ExecuteSendQueuedEmails(context.Background(), orchestrators.SendQueuedEmailsDeps{
					EmailStore:  stores.EmailStore,
					OutboxStore: stores.OutboxStore,
					EmailSender: sender,
					Now:         time.Now,
					FromAddress: cfg.EmailFrom,
					ReplyTo:     cfg.EmailReplyTo,
				})
				if err != nil {
					slog.Error("email_event", "event", "send_pass_failed", "error", err)
				} else if result.Sent > 0 || result.Failed > 0 {
					slog.Info("email_event", "event", "send_pass", "sent", result.Sent, "failed", result.Failed)
				}
			case <-outboxStopCh:
				return
			}
		}
	}()

	mux := web.NewMux(cfg.StaticDir, stores)

	log.Printf("zonehub %s starting on %s (env=%s)", version, cfg.Listen, cfg.Env)
	if err := http.ListenAndServe(cfg.Listen, mux); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
