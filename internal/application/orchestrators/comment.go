package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/J11tendra/saac-event-management/internal/adapters/storage"
	"github.com/J11tendra/saac-event-management/internal/domain/event"
	"github.com/J11tendra/saac-event-management/internal/domain/identity"
	"github.com/J11tendra/saac-event-management/internal/domain/review"
	"github.com/J11tendra/saac-event-management/internal/monitoring"
)

// EventStoreForReview checks the target event exists.
type EventStoreForReview interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
}

// ReviewStoreForOrchestrator persists review comments.
type ReviewStoreForOrchestrator interface {
	Insert(ctx context.Context, r review.Review) error
}

// AdminStoreForReview resolves-or-creates admin rows when an admin first
// posts a comment.
type AdminStoreForReview interface {
	GetByEmail(ctx context.Context, email string) (identity.Admin, error)
	Insert(ctx context.Context, a identity.Admin) error
}

// AddReviewInput carries input for the add review orchestrator. Exactly one
// of ClubID and AdminEmail identifies the author.
type AddReviewInput struct {
	EventID    string
	Comment    string
	ClubID     string
	AdminEmail string
}

// AddReviewDeps holds dependencies for AddReview.
type AddReviewDeps struct {
	EventStore  EventStoreForReview
	ReviewStore ReviewStoreForOrchestrator
	AdminStore  AdminStoreForReview
	GenerateID  func() string
	Now         func() time.Time
}

// ExecuteAddReview appends an immutable comment to an event's review
// thread. Admin authors are materialised as admin rows on first comment,
// named after their email local-part.
// PRE: Author identity comes from the authenticated session
// POST: Review persisted; reviews are never edited or deleted
func ExecuteAddReview(ctx context.Context, input AddReviewInput, deps AddReviewDeps) (review.Review, error) {
	comment := strings.TrimSpace(input.Comment)
	var fields []string
	if input.EventID == "" {
		fields = append(fields, "event_id")
	}
	if comment == "" {
		fields = append(fields, "comment")
	}
	if len(fields) > 0 {
		return review.Review{}, NewValidationError(fields...)
	}

	if _, err := deps.EventStore.GetByID(ctx, input.EventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return review.Review{}, ErrNotFound
		}
		return review.Review{}, err
	}

	r := review.Review{
		ID:        deps.GenerateID(),
		EventID:   input.EventID,
		ClubID:    input.ClubID,
		Comment:   comment,
		CreatedAt: deps.Now(),
	}

	if input.AdminEmail != "" {
		adminRow, err := resolveAdmin(ctx, input.AdminEmail, deps)
		if err != nil {
			return review.Review{}, err
		}
		r.AdminID = adminRow.ID
	}

	if err := r.Validate(); err != nil {
		return review.Review{}, err
	}
	if err := deps.ReviewStore.Insert(ctx, r); err != nil {
		return review.Review{}, err
	}

	monitoring.CountReview()
	slog.Info("review_event", "event", "review_added", "review_id", r.ID,
		"event_id", r.EventID, "admin_authored", r.IsAdminAuthored())
	return r, nil
}

// resolveAdmin finds or lazily creates the admin row for an email.
func resolveAdmin(ctx context.Context, rawEmail string, deps AddReviewDeps) (identity.Admin, error) {
	addr := identity.NormalizeEmail(rawEmail)
	adminRow, err := deps.AdminStore.GetByEmail(ctx, addr)
	if err == nil {
		return adminRow, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return identity.Admin{}, err
	}

	adminRow = identity.Admin{
		ID:        deps.GenerateID(),
		Name:      identity.LocalPart(addr),
		Email:     addr,
		CreatedAt: deps.Now(),
	}
	if err := adminRow.Validate(); err != nil {
		return identity.Admin{}, err
	}
	if insertErr := deps.AdminStore.Insert(ctx, adminRow); insertErr != nil {
		if !storage.IsConflict(insertErr) {
			return identity.Admin{}, insertErr
		}
		return deps.AdminStore.GetByEmail(ctx, addr)
	}
	slog.Info("identity_event", "event", "admin_created", "admin_id", adminRow.ID, "email", addr)
	return adminRow, nil
}
