package main

import (
	"database/sql"
	"flag"
	"log"
	"log/slog"
	"net/http"

	_ "modernc.org/sqlite"

	emailPkg "github.com/J11tendra/saac-event-management/internal/adapters/email"
	web "github.com/J11tendra/saac-event-management/internal/adapters/http"
	"github.com/J11tendra/saac-event-management/internal/adapters/storage"
	adminStore "github.com/J11tendra/saac-event-management/internal/adapters/storage/admin"
	budgetStore "github.com/J11tendra/saac-event-management/internal/adapters/storage/budget"
	clubStore "github.com/J11tendra/saac-event-management/internal/adapters/storage/club"
	collaboratorStore "github.com/J11tendra/saac-event-management/internal/adapters/storage/collaborator"
	eventStore "github.com/J11tendra/saac-event-management/internal/adapters/storage/event"
	reimbursementStore "github.com/J11tendra/saac-event-management/internal/adapters/storage/reimbursement"
	reviewStore "github.com/J11tendra/saac-event-management/internal/adapters/storage/review"
	"github.com/J11tendra/saac-event-management/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	configPath := flag.String("config", "saac.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if !cfg.IsProduction() {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	// Open SQLite with WAL mode, foreign keys, and busy timeout
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	// Health check
	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	log.Println("Database initialized successfully!")

	// Wrap DB with query timing instrumentation
	timedDB := storage.NewTimedDB(db)

	stores := &web.Stores{
		ClubStore:          clubStore.NewSQLiteStore(timedDB),
		AdminStore:         adminStore.NewSQLiteStore(timedDB),
		EventStore:         eventStore.NewSQLiteStore(timedDB),
		BudgetStore:        budgetStore.NewSQLiteStore(timedDB),
		ReviewStore:        reviewStore.NewSQLiteStore(timedDB),
		CollaboratorStore:  collaboratorStore.NewSQLiteStore(timedDB),
		ReimbursementStore: reimbursementStore.NewSQLiteStore(timedDB),
	}

	// Configure email sender
	if cfg.ResendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom), cfg.EmailReplyTo)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), cfg.EmailReplyTo)
		if cfg.IsProduction() {
			log.Println("WARNING: resend_key is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set SAAC_RESEND_KEY for real delivery)")
		}
	}

	mux := web.NewMux(cfg, stores)

	log.Printf("SAAC event management %s starting on %s (env=%s)", version, cfg.Listen, cfg.Environment)

	if err := http.ListenAndServe(cfg.Listen, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
