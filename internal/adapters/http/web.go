package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"parish/internal/adapters/email"
	"parish/internal/adapters/http/middleware"
	accountStore "parish/internal/adapters/storage/account"
	attendanceStore "parish/internal/adapters/storage/attendance"
	dutyStore "parish/internal/adapters/storage/duty"
	eventStore "parish/internal/adapters/storage/event"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore    accountStore.Store
	EventStore      eventStore.Store
	AttendanceStore attendanceStore.Store
	DutyStore       dutyStore.Store
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// location is the parish's local time zone; every calendar projection and
// date comparison happens in it.
var location = time.Local

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// RequestTimeout bounds each request's context.
var RequestTimeout = 15 * time.Second

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// SetEmailSender sets the email sender used for registration confirmations.
func SetEmailSender(sender email.Sender) {
	emailSender = sender
}

// SetLocation sets the parish time zone used for calendar projections.
func SetLocation(loc *time.Location) {
	location = loc
}

// loadCSRFKey reads the CSRF secret from PARISH_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("PARISH_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("PARISH_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("PARISH_ENV") == "production" {
		log.Fatal("PARISH_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set PARISH_CSRF_KEY for production.")
	return key
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores) http.Handler {
	stores = s
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("PARISH_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	csrfKey := loadCSRFKey()
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Logging -> Timeout -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timeout(RequestTimeout),
		middleware.Logging,
	)
}
