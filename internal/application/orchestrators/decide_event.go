package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/J11tendra/saac-event-management/internal/adapters/email"
	budgetdomain "github.com/J11tendra/saac-event-management/internal/domain/budget"
	"github.com/J11tendra/saac-event-management/internal/domain/event"
	"github.com/J11tendra/saac-event-management/internal/domain/identity"
	"github.com/J11tendra/saac-event-management/internal/monitoring"
)

// EventStoreForDecision defines the event store interface needed by the
// approve/reject orchestrators.
type EventStoreForDecision interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
	GetPreference(ctx context.Context, id string) (event.DatePreference, error)
	SaveDecision(ctx context.Context, e event.Event) error
}

// BudgetStoreForDecision defines the budget store interface for approvals.
type BudgetStoreForDecision interface {
	GetByEventID(ctx context.Context, eventID string) (budgetdomain.Request, error)
	SaveApproval(ctx context.Context, r budgetdomain.Request) error
}

// ClubStoreForDecision resolves the owning club for the notification email.
type ClubStoreForDecision interface {
	GetByID(ctx context.Context, id string) (identity.Club, error)
}

// ApproveEventInput carries input for the approve orchestrator.
type ApproveEventInput struct {
	EventID              string
	AcceptedPreferenceID string

	// ApprovedBudget is the optional admin-approved figure, which may be
	// below the requested amount. BudgetComments travel with it.
	ApprovedBudget string
	BudgetComments string
}

// DecideEventDeps holds dependencies shared by approve and reject.
type DecideEventDeps struct {
	EventStore  EventStoreForDecision
	BudgetStore BudgetStoreForDecision
	ClubStore   ClubStoreForDecision
	Sender      email.Sender
	ReplyTo     string // optional reply-to address on decision notifications
	Now         func() time.Time
}

// ExecuteApproveEvent accepts an event on one of its proposed slots,
// optionally recording the approved budget. A decision may override an
// earlier one; the last decision wins.
// PRE: Caller is an authenticated admin
// POST: Event accepted with approval date and accepted preference set;
// budget approval recorded when given; club notified by email
func ExecuteApproveEvent(ctx context.Context, input ApproveEventInput, deps DecideEventDeps) (event.Event, error) {
	var fields []string
	if input.EventID == "" {
		fields = append(fields, "event_id")
	}
	if input.AcceptedPreferenceID == "" {
		fields = append(fields, "accepted_date_preference_id")
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

	pref, err := deps.EventStore.GetPreference(ctx, input.AcceptedPreferenceID)
	if errors.Is(err, sql.ErrNoRows) {
		return event.Event{}, ErrNotFound
	}
	if err != nil {
		return event.Event{}, err
	}
	// The accepted slot must be one of this event's own proposals.
	if pref.EventID != e.ID {
		return event.Event{}, ErrNotFound
	}

	var approved *budgetdomain.Request
	if strings.TrimSpace(input.ApprovedBudget) != "" {
		amt, err := decimal.NewFromString(strings.TrimSpace(input.ApprovedBudget))
		if err != nil || amt.IsNegative() {
			return event.Event{}, NewValidationError("approved_budget")
		}
		req, err := deps.BudgetStore.GetByEventID(ctx, e.ID)
		if errors.Is(err, sql.ErrNoRows) {
			return event.Event{}, ErrNotFound
		}
		if err != nil {
			return event.Event{}, err
		}
		req.ApplyApproval(amt, strings.TrimSpace(input.BudgetComments), deps.Now())
		approved = &req
	}

	if err := e.Approve(pref.ID, deps.Now()); err != nil {
		return event.Event{}, err
	}
	if err := deps.EventStore.SaveDecision(ctx, e); err != nil {
		return event.Event{}, err
	}
	if approved != nil {
		if err := deps.BudgetStore.SaveApproval(ctx, *approved); err != nil {
			return event.Event{}, err
		}
	}

	monitoring.CountDecision(event.StatusAccepted)
	slog.Info("event_event", "event", "event_approved", "event_id", e.ID,
		"accepted_date_preference_id", pref.ID, "has_budget_approval", approved != nil)

	notifyDecision(ctx, deps, e, &pref, approved)
	return e, nil
}

// RejectEventInput carries input for the reject orchestrator.
type RejectEventInput struct {
	EventID string
}

// ExecuteRejectEvent rejects an event, clearing any earlier acceptance.
// Allowed from any prior status; the last decision wins.
// PRE: Caller is an authenticated admin
// POST: Event rejected with approval fields cleared; club notified by email
func ExecuteRejectEvent(ctx context.Context, input RejectEventInput, deps DecideEventDeps) (event.Event, error) {
	if input.EventID == "" {
		return event.Event{}, NewValidationError("event_id")
	}

	e, err := deps.EventStore.GetByID(ctx, input.EventID)
	if errors.Is(err, sql.ErrNoRows) {
		return event.Event{}, ErrNotFound
	}
	if err != nil {
		return event.Event{}, err
	}

	e.Reject()
	if err := deps.EventStore.SaveDecision(ctx, e); err != nil {
		return event.Event{}, err
	}

	monitoring.CountDecision(event.StatusRejected)
	slog.Info("event_event", "event", "event_rejected", "event_id", e.ID)

	notifyDecision(ctx, deps, e, nil, nil)
	return e, nil
}

// notifyDecision emails the owning club about the decision. Notification
// failure never fails the decision itself; it is logged and dropped.
func notifyDecision(ctx context.Context, deps DecideEventDeps, e event.Event, pref *event.DatePreference, approved *budgetdomain.Request) {
	if deps.Sender == nil || deps.ClubStore == nil {
		return
	}
	club, err := deps.ClubStore.GetByID(ctx, e.ClubID)
	if err != nil {
		slog.Error("decision_notify_failed", "event_id", e.ID, "error", err)
		return
	}

	req := email.DecisionNotification(club, e, pref, approved)
	req.ReplyTo = deps.ReplyTo
	if _, err := deps.Sender.Send(ctx, req); err != nil {
		slog.Error("decision_notify_failed", "event_id", e.ID, "club_email", club.Email, "error", err)
	}
}
