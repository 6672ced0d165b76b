package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/J11tendra/saac-event-management/internal/adapters/storage"
	collabdomain "github.com/J11tendra/saac-event-management/internal/domain/collaborator"
	"github.com/J11tendra/saac-event-management/internal/domain/event"
	"github.com/J11tendra/saac-event-management/internal/domain/identity"
)

// EventStoreForCollaborator checks the target event and its ownership.
type EventStoreForCollaborator interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
}

// ClubStoreForCollaborator checks the collaborating club exists.
type ClubStoreForCollaborator interface {
	GetByID(ctx context.Context, id string) (identity.Club, error)
}

// CollaboratorStoreForOrchestrator persists collaborator links.
type CollaboratorStoreForOrchestrator interface {
	Insert(ctx context.Context, c collabdomain.Collaborator) error
	Delete(ctx context.Context, eventID, clubID string) error
}

// CollaboratorInput carries input for the add/remove collaborator
// orchestrators.
type CollaboratorInput struct {
	EventID string
	ClubID  string // the club being linked or unlinked

	ActorRole   string
	ActorClubID string
}

// CollaboratorDeps holds dependencies for the collaborator orchestrators.
type CollaboratorDeps struct {
	EventStore        EventStoreForCollaborator
	ClubStore         ClubStoreForCollaborator
	CollaboratorStore CollaboratorStoreForOrchestrator
	GenerateID        func() string
	Now               func() time.Time
}

// ExecuteAddCollaborator links a co-hosting club to an event. Only the
// owning club or an admin may manage collaborators. Linking the owner to
// its own event, or re-linking an existing collaborator, is a conflict.
// PRE: Actor identity comes from the authenticated session
// POST: Collaborator link persisted, or a taxonomy error returned
func ExecuteAddCollaborator(ctx context.Context, input CollaboratorInput, deps CollaboratorDeps) (collabdomain.Collaborator, error) {
	e, err := requireCollaboratorAccess(ctx, input, deps)
	if err != nil {
		return collabdomain.Collaborator{}, err
	}
	if input.ClubID == e.ClubID {
		return collabdomain.Collaborator{}, ErrConflict
	}
	if _, err := deps.ClubStore.GetByID(ctx, input.ClubID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return collabdomain.Collaborator{}, ErrNotFound
		}
		return collabdomain.Collaborator{}, err
	}

	c := collabdomain.Collaborator{
		ID:        deps.GenerateID(),
		EventID:   input.EventID,
		ClubID:    input.ClubID,
		CreatedAt: deps.Now(),
	}
	if err := c.Validate(); err != nil {
		return collabdomain.Collaborator{}, err
	}
	if err := deps.CollaboratorStore.Insert(ctx, c); err != nil {
		if storage.IsConflict(err) {
			return collabdomain.Collaborator{}, ErrConflict
		}
		return collabdomain.Collaborator{}, err
	}

	slog.Info("event_event", "event", "collaborator_added", "event_id", c.EventID, "club_id", c.ClubID)
	return c, nil
}

// ExecuteRemoveCollaborator unlinks a co-hosting club from an event.
// PRE: Actor identity comes from the authenticated session
// POST: The link no longer exists (removing an absent link is a no-op)
func ExecuteRemoveCollaborator(ctx context.Context, input CollaboratorInput, deps CollaboratorDeps) error {
	if _, err := requireCollaboratorAccess(ctx, input, deps); err != nil {
		return err
	}
	if err := deps.CollaboratorStore.Delete(ctx, input.EventID, input.ClubID); err != nil {
		return err
	}
	slog.Info("event_event", "event", "collaborator_removed", "event_id", input.EventID, "club_id", input.ClubID)
	return nil
}

// requireCollaboratorAccess validates input and checks the actor may
// manage the event's collaborators.
func requireCollaboratorAccess(ctx context.Context, input CollaboratorInput, deps CollaboratorDeps) (event.Event, error) {
	var fields []string
	if input.EventID == "" {
		fields = append(fields, "event_id")
	}
	if input.ClubID == "" {
		fields = append(fields, "club_id")
	}
	if len(fields) > 0 {
		return event.Event{}, NewValidationError(fields...)
	}

	e, err := deps.EventStore.GetByID(ctx, input.EventID)
	if errors.Is(err, sql.ErrNoRows) {
		return event.Event{}, ErrNotFound
	}
	if err != nil {
		return event.Event{}, err
	}
	if input.ActorRole != identity.RoleAdmin && e.ClubID != input.ActorClubID {
		return event.Event{}, ErrForbidden
	}
	return e, nil
}
