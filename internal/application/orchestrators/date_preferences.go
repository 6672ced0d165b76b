package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/J11tendra/saac-event-management/internal/domain/event"
	"github.com/J11tendra/saac-event-management/internal/domain/identity"
)

// EventStoreForPreferences defines the store interface needed by
// ReplaceDatePreferences.
type EventStoreForPreferences interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
	ReplacePreferences(ctx context.Context, eventID string, prefs []event.DatePreference) error
}

// ReplaceDatePreferencesInput carries input for the replace orchestrator.
type ReplaceDatePreferencesInput struct {
	EventID         string
	DatePreferences []DatePreferenceInput

	// Actor identity from the session. A club may only edit its own
	// pending events; an admin may propose alternative slots on any
	// pending event, tagged with the admin proposer role.
	ActorRole   string
	ActorClubID string
}

// ReplaceDatePreferencesDeps holds dependencies for ReplaceDatePreferences.
type ReplaceDatePreferencesDeps struct {
	EventStore EventStoreForPreferences
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteReplaceDatePreferences swaps the full set of candidate slots on a
// pending event.
// PRE: EventID non-empty, actor authenticated
// POST: The event's preferences are exactly the complete valid subset of
// the input, or nothing changed on error
func ExecuteReplaceDatePreferences(ctx context.Context, input ReplaceDatePreferencesInput, deps ReplaceDatePreferencesDeps) ([]event.DatePreference, error) {
	if input.EventID == "" {
		return nil, NewValidationError("event_id")
	}

	e, err := deps.EventStore.GetByID(ctx, input.EventID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if input.ActorRole != identity.RoleAdmin && e.ClubID != input.ActorClubID {
		return nil, ErrForbidden
	}
	if !e.IsPending() {
		return nil, ErrInvalidState
	}

	role := event.ProposerClub
	if input.ActorRole == identity.RoleAdmin {
		role = event.ProposerAdmin
	}

	now := deps.Now()
	var raw []event.DatePreference
	for _, p := range input.DatePreferences {
		raw = append(raw, event.DatePreference{
			ID:           deps.GenerateID(),
			EventID:      e.ID,
			Date:         p.Date,
			StartTime:    p.StartTime,
			EndTime:      p.EndTime,
			ProposerRole: role,
			CreatedAt:    now,
		})
	}
	prefs, err := event.CompleteSubset(raw)
	if err != nil {
		return nil, NewValidationError("date_preferences")
	}

	if err := deps.EventStore.ReplacePreferences(ctx, e.ID, prefs); err != nil {
		return nil, err
	}

	slog.Info("event_event", "event", "preferences_replaced", "event_id", e.ID,
		"proposer_role", role, "count", len(prefs))
	return prefs, nil
}
