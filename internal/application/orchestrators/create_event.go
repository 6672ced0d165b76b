package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	budgetdomain "github.com/J11tendra/saac-event-management/internal/domain/budget"
	"github.com/J11tendra/saac-event-management/internal/domain/event"
	"github.com/J11tendra/saac-event-management/internal/monitoring"
)

// EventStoreForCreate defines the store interface needed by CreateEvent.
type EventStoreForCreate interface {
	CreateWithRelated(ctx context.Context, e event.Event, prefs []event.DatePreference, req *budgetdomain.Request) error
}

// DatePreferenceInput is one candidate slot from the submission form.
// Entries with any blank field are dropped rather than rejected, because
// the form always posts three slot rows whether filled in or not.
type DatePreferenceInput struct {
	Date      string // YYYY-MM-DD
	StartTime string // HH:MM
	EndTime   string // HH:MM
}

// CreateEventInput carries input for the create event orchestrator.
type CreateEventInput struct {
	ClubID          string
	Name            string
	Description     string
	DatePreferences []DatePreferenceInput

	// BudgetAmount and BudgetPurpose are both-or-neither.
	BudgetAmount  string
	BudgetPurpose string
}

// CreateEventDeps holds dependencies for CreateEvent.
type CreateEventDeps struct {
	EventStore EventStoreForCreate
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteCreateEvent submits a new event in pending status, persisting the
// event, its complete date preferences and the optional budget request in a
// single transaction.
// PRE: ClubID comes from the authenticated session
// POST: Event persisted as pending with at least one date preference
func ExecuteCreateEvent(ctx context.Context, input CreateEventInput, deps CreateEventDeps) (event.Event, error) {
	var fields []string
	if input.ClubID == "" {
		fields = append(fields, "club_id")
	}
	if strings.TrimSpace(input.Name) == "" {
		fields = append(fields, "event_name")
	}
	if strings.TrimSpace(input.Description) == "" {
		fields = append(fields, "event_descriptions")
	}

	req, budgetFields := buildBudgetRequest(input.BudgetAmount, input.BudgetPurpose)
	fields = append(fields, budgetFields...)
	if len(fields) > 0 {
		return event.Event{}, NewValidationError(fields...)
	}

	now := deps.Now()
	e := event.Event{
		ID:             deps.GenerateID(),
		ClubID:         input.ClubID,
		Name:           strings.TrimSpace(input.Name),
		Description:    strings.TrimSpace(input.Description),
		ApprovalStatus: event.StatusPending,
		CreatedAt:      now,
	}
	if err := e.Validate(); err != nil {
		return event.Event{}, err
	}

	var raw []event.DatePreference
	for _, p := range input.DatePreferences {
		raw = append(raw, event.DatePreference{
			ID:           deps.GenerateID(),
			EventID:      e.ID,
			Date:         p.Date,
			StartTime:    p.StartTime,
			EndTime:      p.EndTime,
			ProposerRole: event.ProposerClub,
			CreatedAt:    now,
		})
	}
	prefs, err := event.CompleteSubset(raw)
	if err != nil {
		return event.Event{}, NewValidationError("date_preferences")
	}

	if req != nil {
		req.EventID = e.ID
		req.CreatedAt = now
		if err := req.Validate(); err != nil {
			return event.Event{}, err
		}
	}

	if err := deps.EventStore.CreateWithRelated(ctx, e, prefs, req); err != nil {
		return event.Event{}, err
	}

	monitoring.CountEventCreated()
	slog.Info("event_event", "event", "event_created", "event_id", e.ID, "club_id", e.ClubID,
		"preferences", len(prefs), "has_budget", req != nil)
	return e, nil
}

// buildBudgetRequest parses the optional budget pair, enforcing
// both-or-neither and a positive amount. Returns the request (nil when
// neither is given) and any violated field names.
func buildBudgetRequest(amount, purpose string) (*budgetdomain.Request, []string) {
	amount = strings.TrimSpace(amount)
	purpose = strings.TrimSpace(purpose)
	if amount == "" && purpose == "" {
		return nil, nil
	}

	var fields []string
	if amount == "" {
		fields = append(fields, "budget_amt")
	}
	if purpose == "" {
		fields = append(fields, "purpose")
	}
	if len(fields) > 0 {
		return nil, fields
	}

	amt, err := decimal.NewFromString(amount)
	if err != nil || !amt.IsPositive() {
		return nil, []string{"budget_amt"}
	}
	return &budgetdomain.Request{Amount: amt, Purpose: purpose}, nil
}
