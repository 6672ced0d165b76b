package budget

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/J11tendra/saac-event-management/internal/adapters/storage"
	domain "github.com/J11tendra/saac-event-management/internal/domain/budget"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// SQLiteStore implements Store using SQLite. Monetary amounts are stored
// as decimal strings so no float rounding ever touches them.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const budgetColumns = `event_id, budget_amt, purpose, approved_budget, approval_date,
		approval_comments, created_at`

// GetByEventID retrieves the budget request attached to an event.
// PRE: eventID is non-empty
// POST: Returns the entity or sql.ErrNoRows if the event has no budget
func (s *SQLiteStore) GetByEventID(ctx context.Context, eventID string) (domain.Request, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+budgetColumns+` FROM budget_request WHERE event_id = ?`, eventID)

	var r domain.Request
	var amount string
	var approved, approvalDate, comments sql.NullString
	var createdAt string
	err := row.Scan(&r.EventID, &amount, &r.Purpose, &approved, &approvalDate, &comments, &createdAt)
	if err != nil {
		return domain.Request{}, err
	}

	r.Amount = parseDecimal(amount, "budget_amt", r.EventID)
	if approved.Valid {
		r.ApprovedAmount = decimal.NewNullDecimal(parseDecimal(approved.String, "approved_budget", r.EventID))
	}
	if comments.Valid {
		r.ApprovalComments = comments.String
	}
	r.ApprovalDate = parseNullableTime(approvalDate, "approval_date", r.EventID)
	r.CreatedAt = parseTime(createdAt, "created_at", r.EventID)
	return r, nil
}

// Insert creates a budget request row. event_id is the primary key, so a
// second request for the same event fails with a conflict.
// PRE: entity has been validated
// POST: Entity is persisted, or a conflict error is returned
func (s *SQLiteStore) Insert(ctx context.Context, r domain.Request) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO budget_request (event_id, budget_amt, purpose, approved_budget,
		   approval_date, approval_comments, created_at)
		 VALUES (?, ?, ?, NULL, NULL, NULL, ?)`,
		r.EventID, r.Amount.String(), r.Purpose, r.CreatedAt.Format(timeLayout))
	return err
}

// SaveApproval persists the approval fields of a budget request.
// PRE: ApplyApproval has been called on the entity
// POST: approved_budget, approval_date and approval_comments updated
func (s *SQLiteStore) SaveApproval(ctx context.Context, r domain.Request) error {
	var approved any
	if r.ApprovedAmount.Valid {
		approved = r.ApprovedAmount.Decimal.String()
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE budget_request SET approved_budget = ?, approval_date = ?, approval_comments = ?
		 WHERE event_id = ?`,
		approved, nullableTime(r.ApprovalDate), nullableString(r.ApprovalComments), r.EventID)
	return err
}

// parseDecimal parses a stored decimal string, logging a warning on failure.
func parseDecimal(raw, field, eventID string) decimal.Decimal {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		slog.Warn("budget: failed to parse amount", "field", field, "event_id", eventID, "raw", raw, "error", err)
	}
	return d
}

// parseTime parses a time string, logging a warning on failure.
func parseTime(raw, field, eventID string) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		slog.Warn("budget: failed to parse time", "field", field, "event_id", eventID, "raw", raw, "error", err)
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
