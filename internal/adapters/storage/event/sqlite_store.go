package event

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/J11tendra/saac-event-management/internal/adapters/storage"
	budgetdomain "github.com/J11tendra/saac-event-management/internal/domain/budget"
	domain "github.com/J11tendra/saac-event-management/internal/domain/event"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const eventColumns = `id, club_id, event_name, event_descriptions, approval_status,
		approval_date, accepted_date_preference_id, created_at`

const prefColumns = `id, event_id, date, start_time, end_time, proposer_role, created_at`

// GetByID retrieves an event by ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Event, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM event WHERE id = ?`, id)
	return scanEvent(row)
}

// CreateWithRelated inserts an event, its date preferences and an optional
// budget request inside a single transaction.
// PRE: all entities validated, prefs already filtered to complete slots
// POST: Either everything is persisted or nothing is
func (s *SQLiteStore) CreateWithRelated(ctx context.Context, e domain.Event, prefs []domain.DatePreference, req *budgetdomain.Request) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO event (id, club_id, event_name, event_descriptions, approval_status,
		   approval_date, accepted_date_preference_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ClubID, e.Name, e.Description, e.ApprovalStatus,
		nullableTime(e.ApprovalDate), nullableString(e.AcceptedPreferenceID),
		e.CreatedAt.Format(timeLayout))
	if err != nil {
		return err
	}

	for _, p := range prefs {
		if err := insertPreference(ctx, tx, p); err != nil {
			return err
		}
	}

	if req != nil {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO budget_request (event_id, budget_amt, purpose, approved_budget,
			   approval_date, approval_comments, created_at)
			 VALUES (?, ?, ?, NULL, NULL, NULL, ?)`,
			req.EventID, req.Amount.String(), req.Purpose, req.CreatedAt.Format(timeLayout))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ReplacePreferences swaps the full set of date preferences for an event.
// PRE: prefs validated and filtered, all with EventID == eventID
// POST: Old rows are gone and the new set is persisted, atomically
func (s *SQLiteStore) ReplacePreferences(ctx context.Context, eventID string, prefs []domain.DatePreference) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM event_date_preference WHERE event_id = ?`, eventID); err != nil {
		return err
	}
	for _, p := range prefs {
		if err := insertPreference(ctx, tx, p); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveDecision persists the approval fields of an event.
// PRE: entity reflects the outcome of Approve or Reject
// POST: approval_status, approval_date and accepted_date_preference_id updated
func (s *SQLiteStore) SaveDecision(ctx context.Context, e domain.Event) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE event SET approval_status = ?, approval_date = ?, accepted_date_preference_id = ?
		 WHERE id = ?`,
		e.ApprovalStatus, nullableTime(e.ApprovalDate), nullableString(e.AcceptedPreferenceID), e.ID)
	return err
}

// ListByClub returns a club's events, newest first.
func (s *SQLiteStore) ListByClub(ctx context.Context, clubID string) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM event WHERE club_id = ? ORDER BY created_at DESC, id DESC`,
		clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListByIDs returns the events with the given IDs, newest first.
// Used for the collaborator view where a club sees events it co-hosts.
func (s *SQLiteStore) ListByIDs(ctx context.Context, ids []string) ([]domain.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM event WHERE id IN (`+placeholders+`) ORDER BY created_at DESC, id DESC`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListAll returns every event, newest first. Admin-only read.
func (s *SQLiteStore) ListAll(ctx context.Context) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM event ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// GetPreference retrieves a single date preference by ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetPreference(ctx context.Context, id string) (domain.DatePreference, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+prefColumns+` FROM event_date_preference WHERE id = ?`, id)
	var p domain.DatePreference
	var createdAt string
	if err := row.Scan(&p.ID, &p.EventID, &p.Date, &p.StartTime, &p.EndTime, &p.ProposerRole, &createdAt); err != nil {
		return domain.DatePreference{}, err
	}
	p.CreatedAt = parseTime(createdAt, "created_at", p.ID)
	return p, nil
}

// ListPreferences returns an event's date preferences in proposal order.
func (s *SQLiteStore) ListPreferences(ctx context.Context, eventID string) ([]domain.DatePreference, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+prefColumns+` FROM event_date_preference
		 WHERE event_id = ? ORDER BY created_at ASC, id ASC`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prefs []domain.DatePreference
	for rows.Next() {
		var p domain.DatePreference
		var createdAt string
		if err := rows.Scan(&p.ID, &p.EventID, &p.Date, &p.StartTime, &p.EndTime, &p.ProposerRole, &createdAt); err != nil {
			return nil, err
		}
		p.CreatedAt = parseTime(createdAt, "created_at", p.ID)
		prefs = append(prefs, p)
	}
	return prefs, rows.Err()
}

// ListAcceptedBetween returns accepted events whose accepted slot falls in
// [fromDate, toDate], ordered by date then start time. Dates are YYYY-MM-DD,
// which sorts and compares lexically.
func (s *SQLiteStore) ListAcceptedBetween(ctx context.Context, fromDate, toDate string) ([]AcceptedOccurrence, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT e.id, e.event_name, c.club_name, p.date, p.start_time, p.end_time
		 FROM event e
		 JOIN event_date_preference p ON p.id = e.accepted_date_preference_id
		 JOIN club c ON c.id = e.club_id
		 WHERE e.approval_status = 'accepted' AND p.date >= ? AND p.date <= ?
		 ORDER BY p.date ASC, p.start_time ASC`,
		fromDate, toDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var occs []AcceptedOccurrence
	for rows.Next() {
		var o AcceptedOccurrence
		if err := rows.Scan(&o.EventID, &o.EventName, &o.ClubName, &o.Date, &o.StartTime, &o.EndTime); err != nil {
			return nil, err
		}
		occs = append(occs, o)
	}
	return occs, rows.Err()
}

// insertPreference inserts one date preference row inside a transaction.
func insertPreference(ctx context.Context, tx *sql.Tx, p domain.DatePreference) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO event_date_preference (id, event_id, date, start_time, end_time, proposer_role, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.EventID, p.Date, p.StartTime, p.EndTime, p.ProposerRole,
		p.CreatedAt.Format(timeLayout))
	return err
}

// scanEvent scans a single row into an Event.
func scanEvent(row *sql.Row) (domain.Event, error) {
	var e domain.Event
	var approvalDate, acceptedPref sql.NullString
	var createdAt string
	err := row.Scan(&e.ID, &e.ClubID, &e.Name, &e.Description, &e.ApprovalStatus,
		&approvalDate, &acceptedPref, &createdAt)
	if err != nil {
		return domain.Event{}, err
	}
	applyScanned(&e, approvalDate, acceptedPref, createdAt)
	return e, nil
}

// scanEvents scans multiple rows into a slice of Events.
func scanEvents(rows *sql.Rows) ([]domain.Event, error) {
	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		var approvalDate, acceptedPref sql.NullString
		var createdAt string
		err := rows.Scan(&e.ID, &e.ClubID, &e.Name, &e.Description, &e.ApprovalStatus,
			&approvalDate, &acceptedPref, &createdAt)
		if err != nil {
			return nil, err
		}
		applyScanned(&e, approvalDate, acceptedPref, createdAt)
		events = append(events, e)
	}
	return events, rows.Err()
}

// applyScanned converts raw scanned values into Event domain fields.
func applyScanned(e *domain.Event, approvalDate, acceptedPref sql.NullString, createdAt string) {
	if acceptedPref.Valid {
		e.AcceptedPreferenceID = acceptedPref.String
	}
	e.ApprovalDate = parseNullableTime(approvalDate, "approval_date", e.ID)
	e.CreatedAt = parseTime(createdAt, "created_at", e.ID)
}

// parseTime parses a time string, logging a warning on failure.
func parseTime(raw, field, eventID string) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		slog.Warn("event: failed to parse time", "field", field, "event_id", eventID, "raw", raw, "error", err)
	}
	return t
}

// parseNullableTime parses a nullable time string, logging a warning on failure.
func parseNullableTime(ns sql.NullString, field, eventID string) time.Time {
	if !ns.Valid {
		return time.Time{}
	}
	return parseTime(ns.String, field, eventID)
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(timeLayout)
}
