package event

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/J11tendra/saac-event-management/internal/adapters/storage"
	budgetdomain "github.com/J11tendra/saac-event-management/internal/domain/budget"
	domain "github.com/J11tendra/saac-event-management/internal/domain/event"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	if _, err := db.Exec(
		`INSERT INTO club (id, club_name, club_email, created_at) VALUES ('c1', 'chess', 'chess@flame.edu.in', '2026-01-01T00:00:00Z')`); err != nil {
		t.Fatalf("seed club failed: %v", err)
	}
	return NewSQLiteStore(db)
}

func testEvent(id string) domain.Event {
	return domain.Event{
		ID:             id,
		ClubID:         "c1",
		Name:           "Blitz Night",
		Description:    "An open blitz tournament.",
		ApprovalStatus: domain.StatusPending,
		CreatedAt:      time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
	}
}

func testPref(id, eventID, date string) domain.DatePreference {
	return domain.DatePreference{
		ID:           id,
		EventID:      eventID,
		Date:         date,
		StartTime:    "18:00",
		EndTime:      "21:00",
		ProposerRole: domain.ProposerClub,
		CreatedAt:    time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
	}
}

func TestCreateWithRelated_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ev := testEvent("e1")
	prefs := []domain.DatePreference{
		testPref("p1", "e1", "2026-02-10"),
		testPref("p2", "e1", "2026-02-11"),
	}
	req := &budgetdomain.Request{
		EventID:   "e1",
		Amount:    decimal.RequireFromString("2500.50"),
		Purpose:   "prizes and snacks",
		CreatedAt: ev.CreatedAt,
	}

	if err := s.CreateWithRelated(ctx, ev, prefs, req); err != nil {
		t.Fatalf("CreateWithRelated failed: %v", err)
	}

	got, err := s.GetByID(ctx, "e1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != ev.Name || got.ApprovalStatus != domain.StatusPending {
		t.Errorf("got %+v, want name %q pending", got, ev.Name)
	}
	if !got.ApprovalDate.IsZero() || got.AcceptedPreferenceID != "" {
		t.Errorf("pending event carries approval fields: %+v", got)
	}

	gotPrefs, err := s.ListPreferences(ctx, "e1")
	if err != nil {
		t.Fatalf("ListPreferences failed: %v", err)
	}
	if len(gotPrefs) != 2 {
		t.Fatalf("got %d preferences, want 2", len(gotPrefs))
	}
	if gotPrefs[0].ID != "p1" || gotPrefs[1].ID != "p2" {
		t.Errorf("preference order = %s, %s; want p1, p2", gotPrefs[0].ID, gotPrefs[1].ID)
	}
}

func TestCreateWithRelated_RollsBackOnDuplicatePref(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	prefs := []domain.DatePreference{
		testPref("p1", "e1", "2026-02-10"),
		testPref("p1", "e1", "2026-02-11"), // duplicate ID forces a failure mid-tx
	}
	err := s.CreateWithRelated(ctx, testEvent("e1"), prefs, nil)
	if err == nil {
		t.Fatal("expected insert failure")
	}

	if _, err := s.GetByID(ctx, "e1"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("event row survived rollback: err = %v", err)
	}
}

func TestReplacePreferences(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.CreateWithRelated(ctx, testEvent("e1"), []domain.DatePreference{
		testPref("p1", "e1", "2026-02-10"),
	}, nil); err != nil {
		t.Fatalf("CreateWithRelated failed: %v", err)
	}

	err := s.ReplacePreferences(ctx, "e1", []domain.DatePreference{
		testPref("p2", "e1", "2026-03-01"),
		testPref("p3", "e1", "2026-03-02"),
	})
	if err != nil {
		t.Fatalf("ReplacePreferences failed: %v", err)
	}

	prefs, err := s.ListPreferences(ctx, "e1")
	if err != nil {
		t.Fatalf("ListPreferences failed: %v", err)
	}
	if len(prefs) != 2 || prefs[0].ID != "p2" || prefs[1].ID != "p3" {
		t.Errorf("got %+v, want p2 and p3 only", prefs)
	}
}

func TestSaveDecision_AndListAcceptedBetween(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.CreateWithRelated(ctx, testEvent("e1"), []domain.DatePreference{
		testPref("p1", "e1", "2026-02-10"),
	}, nil); err != nil {
		t.Fatalf("CreateWithRelated failed: %v", err)
	}

	ev, err := s.GetByID(ctx, "e1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	now := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	if err := ev.Approve("p1", now); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if err := s.SaveDecision(ctx, ev); err != nil {
		t.Fatalf("SaveDecision failed: %v", err)
	}

	got, err := s.GetByID(ctx, "e1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.IsAccepted() || got.AcceptedPreferenceID != "p1" || !got.ApprovalDate.Equal(now) {
		t.Errorf("decision not persisted: %+v", got)
	}

	occs, err := s.ListAcceptedBetween(ctx, "2026-02-01", "2026-02-28")
	if err != nil {
		t.Fatalf("ListAcceptedBetween failed: %v", err)
	}
	if len(occs) != 1 {
		t.Fatalf("got %d occurrences, want 1", len(occs))
	}
	if occs[0].EventName != "Blitz Night" || occs[0].ClubName != "chess" || occs[0].Date != "2026-02-10" {
		t.Errorf("unexpected occurrence: %+v", occs[0])
	}

	// Outside the window.
	occs, err = s.ListAcceptedBetween(ctx, "2026-03-01", "2026-03-31")
	if err != nil {
		t.Fatalf("ListAcceptedBetween failed: %v", err)
	}
	if len(occs) != 0 {
		t.Errorf("got %d occurrences outside window, want 0", len(occs))
	}

	// Rejection clears approval fields.
	got.Reject()
	if err := s.SaveDecision(ctx, got); err != nil {
		t.Fatalf("SaveDecision failed: %v", err)
	}
	got, err = s.GetByID(ctx, "e1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.IsRejected() || got.AcceptedPreferenceID != "" || !got.ApprovalDate.IsZero() {
		t.Errorf("rejection did not clear approval fields: %+v", got)
	}
}

func TestListByClub_NewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	older := testEvent("e1")
	newer := testEvent("e2")
	newer.CreatedAt = older.CreatedAt.Add(time.Hour)

	if err := s.CreateWithRelated(ctx, older, nil, nil); err != nil {
		t.Fatalf("create older failed: %v", err)
	}
	if err := s.CreateWithRelated(ctx, newer, nil, nil); err != nil {
		t.Fatalf("create newer failed: %v", err)
	}

	events, err := s.ListByClub(ctx, "c1")
	if err != nil {
		t.Fatalf("ListByClub failed: %v", err)
	}
	if len(events) != 2 || events[0].ID != "e2" || events[1].ID != "e1" {
		t.Errorf("order = %v, want e2 then e1", events)
	}
}
