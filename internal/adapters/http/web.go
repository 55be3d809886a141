package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"zonehub/internal/adapters/email"
	"zonehub/internal/adapters/http/middleware"
	accountStore "zonehub/internal/adapters/storage/account"
	bookingStore "zonehub/internal/adapters/storage/booking"
	clubStore "zonehub/internal/adapters/storage/club"
	emailStore "zonehub/internal/adapters/storage/email"
	eventStore "zonehub/internal/adapters/storage/event"
	eventRequestStore "zonehub/internal/adapters/storage/eventrequest"
	eventTypeStore "zonehub/internal/adapters/storage/eventtype"
	importBatchStore "zonehub/internal/adapters/storage/importbatch"
	outboxStore "zonehub/internal/adapters/storage/outbox"
	zoneStore "zonehub/internal/adapters/storage/zone"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore       accountStore.Store
	ZoneStore          zoneStore.Store
	ClubStore          clubStore.Store
	EventStore         eventStore.Store
	EventTypeStore     eventTypeStore.Store
	EventRequestStore  eventRequestStore.Store
	ImportBatchStore   importBatchStore.Store
	EmailStore         emailStore.Store
	EmailTemplateStore emailStore.TemplateStore
	EquipmentStore     bookingStore.EquipmentStore
	BookingStore       bookingStore.Store
	OutboxStore        outboxStore.Store
}

// loadCSRFKey reads the CSRF secret from ZONEHUB_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("ZONEHUB_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("ZONEHUB_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("ZONEHUB_ENV") == "production" {
		log.Fatal("ZONEHUB_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set ZONEHUB_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string
var emailReplyTo string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from, replyTo string) {
	emailSender = sender
	emailFromAddress = from
	emailReplyTo = replyTo
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores) http.Handler {
	stores = s
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("ZONEHUB_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Auth -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
	)
}
