package projections

import (
	"context"
	"database/sql"
	"errors"

	budgetdomain "github.com/J11tendra/saac-event-management/internal/domain/budget"
	collabdomain "github.com/J11tendra/saac-event-management/internal/domain/collaborator"
	"github.com/J11tendra/saac-event-management/internal/domain/event"
	"github.com/J11tendra/saac-event-management/internal/domain/review"
)

// GetEventsEventStore defines the event store interface for event views.
type GetEventsEventStore interface {
	ListByClub(ctx context.Context, clubID string) ([]event.Event, error)
	ListByIDs(ctx context.Context, ids []string) ([]event.Event, error)
	ListAll(ctx context.Context) ([]event.Event, error)
	ListPreferences(ctx context.Context, eventID string) ([]event.DatePreference, error)
}

// GetEventsBudgetStore defines the budget store interface for event views.
type GetEventsBudgetStore interface {
	GetByEventID(ctx context.Context, eventID string) (budgetdomain.Request, error)
}

// GetEventsReviewStore defines the review store interface for event views.
type GetEventsReviewStore interface {
	ListByEventID(ctx context.Context, eventID string) ([]review.Review, error)
}

// GetEventsCollaboratorStore defines the collaborator store interface.
type GetEventsCollaboratorStore interface {
	ListByEventID(ctx context.Context, eventID string) ([]collabdomain.Collaborator, error)
	ListEventIDsByClub(ctx context.Context, clubID string) ([]string, error)
}

// GetEventsDeps holds dependencies for the event view projections.
type GetEventsDeps struct {
	EventStore        GetEventsEventStore
	BudgetStore       GetEventsBudgetStore
	ReviewStore       GetEventsReviewStore
	CollaboratorStore GetEventsCollaboratorStore
}

// EventView is one event with everything its detail page needs: candidate
// slots, the optional budget request, the ordered review thread and any
// co-hosting clubs.
type EventView struct {
	Event         event.Event
	Preferences   []event.DatePreference
	Budget        *budgetdomain.Request
	Reviews       []review.Review
	Collaborators []collabdomain.Collaborator

	// Collaborating marks events the viewing club co-hosts rather than owns.
	Collaborating bool
}

// QueryClubEvents returns a club's own events plus events it co-hosts,
// newest first, each fully hydrated.
// PRE: clubID comes from the authenticated session
// POST: Returns the views; an empty slice when the club has no events
func QueryClubEvents(ctx context.Context, clubID string, deps GetEventsDeps) ([]EventView, error) {
	own, err := deps.EventStore.ListByClub(ctx, clubID)
	if err != nil {
		return nil, err
	}

	coIDs, err := deps.CollaboratorStore.ListEventIDsByClub(ctx, clubID)
	if err != nil {
		return nil, err
	}
	cohosted, err := deps.EventStore.ListByIDs(ctx, coIDs)
	if err != nil {
		return nil, err
	}

	views, err := hydrateEvents(ctx, own, deps)
	if err != nil {
		return nil, err
	}
	coViews, err := hydrateEvents(ctx, cohosted, deps)
	if err != nil {
		return nil, err
	}
	for i := range coViews {
		coViews[i].Collaborating = true
	}
	return append(views, coViews...), nil
}

// QueryAllEvents returns every event, newest first, fully hydrated.
// Admin-only read.
func QueryAllEvents(ctx context.Context, deps GetEventsDeps) ([]EventView, error) {
	events, err := deps.EventStore.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return hydrateEvents(ctx, events, deps)
}

// hydrateEvents loads preferences, budget, reviews and collaborators for
// each event.
func hydrateEvents(ctx context.Context, events []event.Event, deps GetEventsDeps) ([]EventView, error) {
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		v := EventView{Event: e}

		var err error
		if v.Preferences, err = deps.EventStore.ListPreferences(ctx, e.ID); err != nil {
			return nil, err
		}
		req, err := deps.BudgetStore.GetByEventID(ctx, e.ID)
		if err == nil {
			v.Budget = &req
		} else if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		if v.Reviews, err = deps.ReviewStore.ListByEventID(ctx, e.ID); err != nil {
			return nil, err
		}
		if v.Collaborators, err = deps.CollaboratorStore.ListByEventID(ctx, e.ID); err != nil {
			return nil, err
		}

		views = append(views, v)
	}
	return views, nil
}

// AcceptedSlot resolves the accepted preference of an accepted event, nil
// for anything else.
func (v *EventView) AcceptedSlot() *event.DatePreference {
	if !v.Event.IsAccepted() {
		return nil
	}
	for i := range v.Preferences {
		if v.Preferences[i].ID == v.Event.AcceptedPreferenceID {
			return &v.Preferences[i]
		}
	}
	return nil
}
