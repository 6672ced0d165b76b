package orchestrators

import (
	"context"
	"errors"
	"testing"
)

func reviewDeps(events *mockEventStore, reviews *mockReviewStore, admins *mockAdminStore) AddReviewDeps {
	return AddReviewDeps{
		EventStore:  events,
		ReviewStore: reviews,
		AdminStore:  admins,
		GenerateID:  newIDGen("rev"),
		Now:         fixedNow,
	}
}

// TestExecuteAddReview_ClubAuthor tests a club commenting on its event.
func TestExecuteAddReview_ClubAuthor(t *testing.T) {
	events := newMockEventStore()
	seedPendingEvent(events)
	reviews := &mockReviewStore{}

	r, err := ExecuteAddReview(context.Background(), AddReviewInput{
		EventID: "e1",
		Comment: "  We can also do a weekday slot.  ",
		ClubID:  "c1",
	}, reviewDeps(events, reviews, newMockAdminStore()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Comment != "We can also do a weekday slot." {
		t.Errorf("comment not trimmed: %q", r.Comment)
	}
	if r.IsAdminAuthored() {
		t.Error("expected club authorship")
	}
	if len(reviews.reviews) != 1 {
		t.Fatalf("expected 1 review, got %d", len(reviews.reviews))
	}
}

// TestExecuteAddReview_AdminCreatesRowLazily tests admin materialisation.
func TestExecuteAddReview_AdminCreatesRowLazily(t *testing.T) {
	events := newMockEventStore()
	seedPendingEvent(events)
	admins := newMockAdminStore()
	reviews := &mockReviewStore{}

	r, err := ExecuteAddReview(context.Background(), AddReviewInput{
		EventID:    "e1",
		Comment:    "Pick a smaller venue.",
		AdminEmail: "Dean@FLAME.edu.in",
	}, reviewDeps(events, reviews, admins))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.IsAdminAuthored() {
		t.Fatal("expected admin authorship")
	}
	created, ok := admins.byEmail["dean@flame.edu.in"]
	if !ok {
		t.Fatal("expected admin row to be created")
	}
	if created.Name != "dean" {
		t.Errorf("admin name = %s, want dean", created.Name)
	}
	if r.AdminID != created.ID {
		t.Errorf("review admin_id = %s, want %s", r.AdminID, created.ID)
	}

	// Second comment reuses the row.
	r2, err := ExecuteAddReview(context.Background(), AddReviewInput{
		EventID:    "e1",
		Comment:    "Confirmed.",
		AdminEmail: "dean@flame.edu.in",
	}, reviewDeps(events, reviews, admins))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r2.AdminID != created.ID {
		t.Errorf("second review admin_id = %s, want %s", r2.AdminID, created.ID)
	}
	if len(admins.byEmail) != 1 {
		t.Errorf("expected 1 admin row, got %d", len(admins.byEmail))
	}
}

// TestExecuteAddReview_EmptyComment tests trim-then-require.
func TestExecuteAddReview_EmptyComment(t *testing.T) {
	events := newMockEventStore()
	seedPendingEvent(events)

	_, err := ExecuteAddReview(context.Background(), AddReviewInput{
		EventID: "e1",
		Comment: "   \n\t ",
		ClubID:  "c1",
	}, reviewDeps(events, &mockReviewStore{}, newMockAdminStore()))
	if !IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

// TestExecuteAddReview_MissingEvent tests the not-found path.
func TestExecuteAddReview_MissingEvent(t *testing.T) {
	_, err := ExecuteAddReview(context.Background(), AddReviewInput{
		EventID: "nope",
		Comment: "hello",
		ClubID:  "c1",
	}, reviewDeps(newMockEventStore(), &mockReviewStore{}, newMockAdminStore()))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// TestExecuteAddReview_BothAuthors tests the XOR rule.
func TestExecuteAddReview_BothAuthors(t *testing.T) {
	events := newMockEventStore()
	seedPendingEvent(events)

	_, err := ExecuteAddReview(context.Background(), AddReviewInput{
		EventID:    "e1",
		Comment:    "hello",
		ClubID:     "c1",
		AdminEmail: "dean@flame.edu.in",
	}, reviewDeps(events, &mockReviewStore{}, newMockAdminStore()))
	if err == nil {
		t.Fatal("expected an error for dual authorship")
	}
}
