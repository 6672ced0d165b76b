package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"time"

	"github.com/J11tendra/saac-event-management/internal/adapters/email"
	"github.com/J11tendra/saac-event-management/internal/adapters/http/middleware"
	adminStore "github.com/J11tendra/saac-event-management/internal/adapters/storage/admin"
	budgetStore "github.com/J11tendra/saac-event-management/internal/adapters/storage/budget"
	clubStore "github.com/J11tendra/saac-event-management/internal/adapters/storage/club"
	collaboratorStore "github.com/J11tendra/saac-event-management/internal/adapters/storage/collaborator"
	eventStore "github.com/J11tendra/saac-event-management/internal/adapters/storage/event"
	reimbursementStore "github.com/J11tendra/saac-event-management/internal/adapters/storage/reimbursement"
	reviewStore "github.com/J11tendra/saac-event-management/internal/adapters/storage/review"
	"github.com/J11tendra/saac-event-management/internal/config"
	"github.com/J11tendra/saac-event-management/internal/domain/identity"
)

// Stores holds all storage dependencies.
type Stores struct {
	ClubStore          clubStore.Store
	AdminStore         adminStore.Store
	EventStore         eventStore.Store
	BudgetStore        budgetStore.Store
	ReviewStore        reviewStore.Store
	CollaboratorStore  collaboratorStore.Store
	ReimbursementStore reimbursementStore.Store
}

// loadCSRFKey decodes the configured CSRF secret (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey(cfg *config.Config) []byte {
	if cfg.CSRFKey != "" {
		key, err := hex.DecodeString(cfg.CSRFKey)
		if err != nil || len(key) != 32 {
			log.Fatal("csrf_key must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if cfg.IsProduction() {
		log.Fatal("csrf_key is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set SAAC_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// Identity gate configuration (set by NewMux)
var emailDomain string
var adminEmails identity.Allowlist

// Global email sender instance (set by SetEmailSender). The from address
// is configured on the sender itself; replyTo rides on each decision
// notification.
var emailSender email.Sender
var emailReplyTo string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, replyTo string) {
	emailSender = sender
	emailReplyTo = replyTo
}

// NewMux wires HTTP handlers for the app.
func NewMux(cfg *config.Config, s *Stores) http.Handler {
	stores = s
	sessions = middleware.NewSessionStore()
	emailDomain = cfg.EmailDomain
	adminEmails = identity.Allowlist(cfg.AdminEmails)

	mux := http.NewServeMux()
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from config/env
	csrfKey := loadCSRFKey(cfg)

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(cfg.RatePerSecond, time.Second)

	// Apply middleware: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(),
	)
}
