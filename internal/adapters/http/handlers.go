package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/J11tendra/saac-event-management/internal/adapters/http/middleware"
	"github.com/J11tendra/saac-event-management/internal/application/orchestrators"
	"github.com/J11tendra/saac-event-management/internal/domain/identity"
	"github.com/J11tendra/saac-event-management/internal/monitoring"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// renderMarkdown converts a Markdown event description to safe HTML.
func renderMarkdown(md string) string {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return ""
	}
	return buf.String()
}

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// apiResponse is the uniform JSON envelope for every API endpoint.
type apiResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// respondData writes a success envelope with the given payload.
func respondData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiResponse{Success: true, Data: data})
}

// respondError writes a failure envelope with the given message.
func respondError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiResponse{Success: false, Error: msg})
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	respondError(w, http.StatusInternalServerError, "internal server error")
}

// respondTaxonomyError maps orchestrator errors onto HTTP statuses.
func respondTaxonomyError(w http.ResponseWriter, err error) {
	var ve *orchestrators.ValidationError
	switch {
	case errors.As(err, &ve):
		respondError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, orchestrators.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, orchestrators.ErrForbidden):
		respondError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, orchestrators.ErrInvalidState), errors.Is(err, orchestrators.ErrConflict):
		respondError(w, http.StatusConflict, err.Error())
	default:
		internalError(w, err)
	}
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// requireSession checks for an authenticated session.
// Returns false if the request should not proceed.
func requireSession(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		slog.Warn("auth_denied", "path", r.URL.Path, "reason", "no session")
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return middleware.Session{}, false
	}
	return sess, true
}

// requireAdmin checks the session for admin role and returns the session.
// Returns false if the request should not proceed.
func requireAdmin(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := requireSession(w, r)
	if !ok {
		return middleware.Session{}, false
	}
	if !sess.IsAdmin() {
		slog.Warn("auth_denied", "path", r.URL.Path, "email", sess.Email, "role", sess.Role, "required", "admin")
		respondError(w, http.StatusForbidden, "forbidden")
		return middleware.Session{}, false
	}
	return sess, true
}

// requireClub checks the session for club role and returns the session.
// Returns false if the request should not proceed.
func requireClub(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := requireSession(w, r)
	if !ok {
		return middleware.Session{}, false
	}
	if sess.Role != identity.RoleClub {
		slog.Warn("auth_denied", "path", r.URL.Path, "email", sess.Email, "role", sess.Role, "required", "club")
		respondError(w, http.StatusForbidden, "forbidden")
		return middleware.Session{}, false
	}
	return sess, true
}

// registerRoutes wires every endpoint onto the mux.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/auth/callback", handleAuthCallback)
	mux.HandleFunc("/auth/signout", handleSignOut)

	mux.HandleFunc("/api/events", handleEvents)
	mux.HandleFunc("/api/events/preferences", handleEventPreferences)
	mux.HandleFunc("/api/events/budget", handleEventBudget)
	mux.HandleFunc("/api/events/approve", handleApproveEvent)
	mux.HandleFunc("/api/events/reject", handleRejectEvent)
	mux.HandleFunc("/api/events/reviews", handleReviews)
	mux.HandleFunc("/api/events/collaborators", handleCollaborators)

	mux.HandleFunc("/api/calendar", handleCalendar)
	mux.HandleFunc("/calendar.ics", handleCalendarICS)

	mux.HandleFunc("/api/treasurer", handleTreasurer)
	mux.HandleFunc("/api/reimbursements", handleReimbursements)

	mux.Handle("/metrics", monitoring.Handler())
	mux.HandleFunc("/healthz", handleHealthz)
}

// handleAuthCallback handles GET /auth/callback?email=<verified-email>.
// The identity provider in front of the app asserts the verified email;
// the gate turns it into a session or rejects it.
func handleAuthCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	verified := r.URL.Query().Get("email")
	if verified == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}

	ident, err := orchestrators.ExecuteResolveIdentity(r.Context(), orchestrators.ResolveIdentityInput{
		VerifiedEmail: verified,
	}, orchestrators.ResolveIdentityDeps{
		ClubStore:   stores.ClubStore,
		EmailDomain: emailDomain,
		AdminEmails: adminEmails,
		GenerateID:  generateID,
		Now:         timeNow,
	})
	if errors.Is(err, identity.ErrDomainRejected) {
		// A rejected identity must not keep any prior session alive.
		middleware.ClearSessionCookie(w)
		respondError(w, http.StatusForbidden, err.Error())
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	token, err := sessions.Create(ident.Role, ident.Email, ident.ClubID, ident.Name)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	respondData(w, http.StatusOK, map[string]string{
		"Role":   ident.Role,
		"Email":  ident.Email,
		"ClubID": ident.ClubID,
		"Name":   ident.Name,
	})
}

// handleSignOut handles POST /auth/signout.
func handleSignOut(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if token := middleware.SessionToken(r); token != "" {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)

	respondData(w, http.StatusOK, nil)
}

// handleHealthz handles GET /healthz.
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
