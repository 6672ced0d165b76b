package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/J11tendra/saac-event-management/internal/adapters/storage"
	budgetdomain "github.com/J11tendra/saac-event-management/internal/domain/budget"
	"github.com/J11tendra/saac-event-management/internal/domain/event"
	"github.com/J11tendra/saac-event-management/internal/domain/identity"
)

// EventStoreForBudget defines the event store interface needed by
// AddBudgetRequest.
type EventStoreForBudget interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
}

// BudgetStoreForOrchestrator defines the budget store interface.
type BudgetStoreForOrchestrator interface {
	Insert(ctx context.Context, r budgetdomain.Request) error
}

// AddBudgetRequestInput carries input for the add budget orchestrator.
type AddBudgetRequestInput struct {
	EventID string
	Amount  string
	Purpose string

	ActorRole   string
	ActorClubID string
}

// AddBudgetRequestDeps holds dependencies for AddBudgetRequest.
type AddBudgetRequestDeps struct {
	EventStore  EventStoreForBudget
	BudgetStore BudgetStoreForOrchestrator
	Now         func() time.Time
}

// ExecuteAddBudgetRequest attaches a funding ask to an event that was
// submitted without one. At most one budget request per event; a second
// attempt surfaces as ErrConflict.
// PRE: EventID non-empty, actor authenticated
// POST: Budget request persisted, or a taxonomy error returned
func ExecuteAddBudgetRequest(ctx context.Context, input AddBudgetRequestInput, deps AddBudgetRequestDeps) (budgetdomain.Request, error) {
	if input.EventID == "" {
		return budgetdomain.Request{}, NewValidationError("event_id")
	}

	e, err := deps.EventStore.GetByID(ctx, input.EventID)
	if errors.Is(err, sql.ErrNoRows) {
		return budgetdomain.Request{}, ErrNotFound
	}
	if err != nil {
		return budgetdomain.Request{}, err
	}
	if input.ActorRole != identity.RoleAdmin && e.ClubID != input.ActorClubID {
		return budgetdomain.Request{}, ErrForbidden
	}

	req, fields := buildBudgetRequest(input.Amount, input.Purpose)
	if req == nil {
		if len(fields) == 0 {
			fields = []string{"budget_amt", "purpose"}
		}
		return budgetdomain.Request{}, NewValidationError(fields...)
	}
	req.EventID = e.ID
	req.CreatedAt = deps.Now()
	if err := req.Validate(); err != nil {
		return budgetdomain.Request{}, err
	}

	if err := deps.BudgetStore.Insert(ctx, *req); err != nil {
		if storage.IsConflict(err) {
			return budgetdomain.Request{}, ErrConflict
		}
		return budgetdomain.Request{}, err
	}

	slog.Info("event_event", "event", "budget_requested", "event_id", e.ID, "budget_amt", req.Amount.String())
	return *req, nil
}
