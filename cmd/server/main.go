package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	_ "modernc.org/sqlite"

	emailPkg "parish/internal/adapters/email"
	web "parish/internal/adapters/http"
	"parish/internal/adapters/storage"
	accountStore "parish/internal/adapters/storage/account"
	attendanceStore "parish/internal/adapters/storage/attendance"
	dutyStore "parish/internal/adapters/storage/duty"
	eventStore "parish/internal/adapters/storage/event"
	"parish/internal/application/orchestrators"
)

const version = "0.3.0"

func main() {
	dbPath := envOrDefault("PARISH_DB", "parish.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"

	rawDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer rawDB.Close()

	rawDB.SetMaxOpenConns(25)
	rawDB.SetMaxIdleConns(25)

	if err := rawDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	if err := storage.InitDB(rawDB); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Wrap with slow-query logging; threshold via PARISH_SLOW_QUERY_MS.
	db := storage.NewTimedDB(rawDB)

	stores := &web.Stores{
		AccountStore:    accountStore.NewSQLiteStore(db),
		EventStore:      eventStore.NewSQLiteStore(db),
		AttendanceStore: attendanceStore.NewSQLiteStore(db),
		DutyStore:       dutyStore.NewSQLiteStore(db),
	}

	// Ensure the bootstrap admin exists. Skipped when no credentials are
	// configured, and never overwrites an existing account.
	err = orchestrators.ExecuteSeedAdmin(context.Background(), orchestrators.SeedAdminInput{
		Email:    os.Getenv("PARISH_ADMIN_EMAIL"),
		Password: os.Getenv("PARISH_ADMIN_PASSWORD"),
		Name:     envOrDefault("PARISH_ADMIN_NAME", "Parish Office"),
	}, orchestrators.SeedAdminDeps{AccountStore: stores.AccountStore})
	if err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	// Configure email sender
	resendKey := os.Getenv("PARISH_RESEND_KEY")
	emailFrom := envOrDefault("PARISH_RESEND_FROM", "St Brigid's Parish <noreply@stbrigids.org.nz>")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom))
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender())
		if os.Getenv("PARISH_ENV") == "production" {
			log.Println("WARNING: PARISH_RESEND_KEY is not set, confirmation emails are DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set PARISH_RESEND_KEY for real delivery)")
		}
	}

	// Calendar projections compare dates in the parish's local zone.
	tz := envOrDefault("PARISH_TZ", "Pacific/Auckland")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Fatalf("Failed to load time zone %q: %v", tz, err)
	}
	web.SetLocation(loc)

	mux := web.NewMux("static", stores)

	addr := envOrDefault("PARISH_ADDR", ":8080")
	log.Printf("Parish %s starting on %s (env=%s, tz=%s)", version, addr, envOrDefault("PARISH_ENV", "development"), tz)

	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
