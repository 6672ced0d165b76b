package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	budgetdomain "github.com/J11tendra/saac-event-management/internal/domain/budget"
	"github.com/J11tendra/saac-event-management/internal/domain/event"
	"github.com/J11tendra/saac-event-management/internal/domain/identity"
)

func seedPendingEvent(store *mockEventStore) {
	store.events["e1"] = event.Event{
		ID: "e1", ClubID: "c1", Name: "Annual Chess Open",
		Description: "Open tournament.", ApprovalStatus: event.StatusPending,
		CreatedAt: fixedTime,
	}
	store.prefs["p1"] = event.DatePreference{
		ID: "p1", EventID: "e1", Date: "2026-04-10",
		StartTime: "10:00", EndTime: "17:00",
		ProposerRole: event.ProposerClub, CreatedAt: fixedTime,
	}
}

func decideDeps(store *mockEventStore, budgets *mockBudgetStore, sender *mockSender) DecideEventDeps {
	clubs := newMockClubStore()
	clubs.add(identity.Club{ID: "c1", Name: "chess.club", Email: "chess.club@flame.edu.in", CreatedAt: fixedTime})
	return DecideEventDeps{
		EventStore:  store,
		BudgetStore: budgets,
		ClubStore:   clubs,
		Sender:      sender,
		Now:         fixedNow,
	}
}

// TestExecuteApproveEvent_Valid tests approval on a proposed slot.
func TestExecuteApproveEvent_Valid(t *testing.T) {
	store := newMockEventStore()
	seedPendingEvent(store)
	sender := &mockSender{}

	e, err := ExecuteApproveEvent(context.Background(), ApproveEventInput{
		EventID:              "e1",
		AcceptedPreferenceID: "p1",
	}, decideDeps(store, newMockBudgetStore(), sender))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !e.IsAccepted() {
		t.Errorf("expected accepted, got %s", e.ApprovalStatus)
	}
	if e.AcceptedPreferenceID != "p1" {
		t.Errorf("accepted preference = %s, want p1", e.AcceptedPreferenceID)
	}
	if !e.ApprovalDate.Equal(fixedTime) {
		t.Errorf("approval date = %v, want %v", e.ApprovalDate, fixedTime)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(sender.sent))
	}
	if sender.sent[0].To[0] != "chess.club@flame.edu.in" {
		t.Errorf("notification went to %v", sender.sent[0].To)
	}
	if !strings.Contains(sender.sent[0].Subject, "approved") {
		t.Errorf("unexpected subject: %s", sender.sent[0].Subject)
	}
}

// TestExecuteApproveEvent_ForeignPreference tests that a slot belonging to
// another event is rejected as not found.
func TestExecuteApproveEvent_ForeignPreference(t *testing.T) {
	store := newMockEventStore()
	seedPendingEvent(store)
	store.prefs["p-other"] = event.DatePreference{
		ID: "p-other", EventID: "e-other", Date: "2026-05-01",
		StartTime: "09:00", EndTime: "11:00",
		ProposerRole: event.ProposerClub, CreatedAt: fixedTime,
	}

	_, err := ExecuteApproveEvent(context.Background(), ApproveEventInput{
		EventID:              "e1",
		AcceptedPreferenceID: "p-other",
	}, decideDeps(store, newMockBudgetStore(), &mockSender{}))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if store.events["e1"].ApprovalStatus != event.StatusPending {
		t.Error("event must stay pending after a failed approval")
	}
}

// TestExecuteApproveEvent_WithBudget tests the budget approval side effect.
func TestExecuteApproveEvent_WithBudget(t *testing.T) {
	store := newMockEventStore()
	seedPendingEvent(store)
	budgets := newMockBudgetStore()
	budgets.byEventID["e1"] = budgetdomain.Request{
		EventID: "e1", Amount: decimal.RequireFromString("2000"),
		Purpose: "prizes", CreatedAt: fixedTime,
	}

	_, err := ExecuteApproveEvent(context.Background(), ApproveEventInput{
		EventID:              "e1",
		AcceptedPreferenceID: "p1",
		ApprovedBudget:       "1500.50",
		BudgetComments:       "venue already covered",
	}, decideDeps(store, budgets, &mockSender{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := budgets.byEventID["e1"]
	if !req.IsApproved() {
		t.Fatal("expected budget to be approved")
	}
	if !req.ApprovedAmount.Decimal.Equal(decimal.RequireFromString("1500.50")) {
		t.Errorf("approved = %s, want 1500.50", req.ApprovedAmount.Decimal.String())
	}
	if req.ApprovalComments != "venue already covered" {
		t.Errorf("comments = %q", req.ApprovalComments)
	}
}

// TestExecuteApproveEvent_BudgetWithoutRequest tests approving a budget on
// an event that never asked for one.
func TestExecuteApproveEvent_BudgetWithoutRequest(t *testing.T) {
	store := newMockEventStore()
	seedPendingEvent(store)

	_, err := ExecuteApproveEvent(context.Background(), ApproveEventInput{
		EventID:              "e1",
		AcceptedPreferenceID: "p1",
		ApprovedBudget:       "500",
	}, decideDeps(store, newMockBudgetStore(), &mockSender{}))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// TestExecuteRejectEvent_OverridesApproval tests last-decision-wins.
func TestExecuteRejectEvent_OverridesApproval(t *testing.T) {
	store := newMockEventStore()
	seedPendingEvent(store)
	sender := &mockSender{}
	deps := decideDeps(store, newMockBudgetStore(), sender)

	if _, err := ExecuteApproveEvent(context.Background(), ApproveEventInput{
		EventID: "e1", AcceptedPreferenceID: "p1",
	}, deps); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	e, err := ExecuteRejectEvent(context.Background(), RejectEventInput{EventID: "e1"}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !e.IsRejected() {
		t.Errorf("expected rejected, got %s", e.ApprovalStatus)
	}
	if e.AcceptedPreferenceID != "" || !e.ApprovalDate.IsZero() {
		t.Error("rejection must clear the earlier acceptance")
	}
	if len(sender.sent) != 2 {
		t.Errorf("expected 2 notifications, got %d", len(sender.sent))
	}
}

// TestExecuteRejectEvent_NotifyFailureDoesNotFailDecision tests that a
// broken mail provider never blocks the decision.
func TestExecuteRejectEvent_NotifyFailureDoesNotFailDecision(t *testing.T) {
	store := newMockEventStore()
	seedPendingEvent(store)

	e, err := ExecuteRejectEvent(context.Background(), RejectEventInput{EventID: "e1"},
		decideDeps(store, newMockBudgetStore(), &mockSender{fail: true}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !e.IsRejected() {
		t.Errorf("expected rejected, got %s", e.ApprovalStatus)
	}
}

// TestExecuteApproveEvent_MissingEvent tests the not-found path.
func TestExecuteApproveEvent_MissingEvent(t *testing.T) {
	_, err := ExecuteApproveEvent(context.Background(), ApproveEventInput{
		EventID: "nope", AcceptedPreferenceID: "p1",
	}, decideDeps(newMockEventStore(), newMockBudgetStore(), &mockSender{}))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// TestExecuteApproveEvent_MissingPreferenceID tests input validation.
func TestExecuteApproveEvent_MissingPreferenceID(t *testing.T) {
	store := newMockEventStore()
	seedPendingEvent(store)
	_, err := ExecuteApproveEvent(context.Background(), ApproveEventInput{EventID: "e1"},
		decideDeps(store, newMockBudgetStore(), &mockSender{}))
	if !IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

// TestExecuteApproveEvent_NotificationCarriesReplyTo tests that the
// configured reply-to address reaches the outgoing notification.
func TestExecuteApproveEvent_NotificationCarriesReplyTo(t *testing.T) {
	store := newMockEventStore()
	seedPendingEvent(store)
	sender := &mockSender{}
	deps := decideDeps(store, newMockBudgetStore(), sender)
	deps.ReplyTo = "saac@flame.edu.in"

	if _, err := ExecuteApproveEvent(context.Background(), ApproveEventInput{
		EventID: "e1", AcceptedPreferenceID: "p1",
	}, deps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(sender.sent))
	}
	if sender.sent[0].ReplyTo != "saac@flame.edu.in" {
		t.Errorf("ReplyTo = %q, want saac@flame.edu.in", sender.sent[0].ReplyTo)
	}
}
