package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLDB is the database interface used by all stores.
// Both *sql.DB and *TimedDB satisfy this interface.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Compile-time check that *sql.DB satisfies SQLDB.
var _ SQLDB = (*sql.DB)(nil)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode and foreign keys enabled
func InitDB(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS club (
		id TEXT PRIMARY KEY,
		club_name TEXT NOT NULL,
		club_email TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS admin (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email_id TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS event (
		id TEXT PRIMARY KEY,
		club_id TEXT NOT NULL,
		event_name TEXT NOT NULL,
		event_descriptions TEXT NOT NULL,
		approval_status TEXT NOT NULL DEFAULT 'pending',
		approval_date TEXT,
		accepted_date_preference_id TEXT,
		created_at TEXT NOT NULL,
		FOREIGN KEY (club_id) REFERENCES club(id)
	);

	CREATE TABLE IF NOT EXISTS event_date_preference (
		id TEXT PRIMARY KEY,
		event_id TEXT NOT NULL,
		date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		proposer_role TEXT NOT NULL DEFAULT 'club',
		created_at TEXT NOT NULL,
		FOREIGN KEY (event_id) REFERENCES event(id)
	);

	CREATE TABLE IF NOT EXISTS budget_request (
		event_id TEXT PRIMARY KEY,
		budget_amt TEXT NOT NULL,
		purpose TEXT NOT NULL,
		approved_budget TEXT,
		approval_date TEXT,
		approval_comments TEXT,
		created_at TEXT NOT NULL,
		FOREIGN KEY (event_id) REFERENCES event(id)
	);

	CREATE TABLE IF NOT EXISTS event_review (
		id TEXT PRIMARY KEY,
		event_id TEXT NOT NULL,
		admin_id TEXT,
		club_id TEXT,
		comment TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (event_id) REFERENCES event(id),
		FOREIGN KEY (admin_id) REFERENCES admin(id),
		FOREIGN KEY (club_id) REFERENCES club(id),
		CHECK ((admin_id IS NULL) <> (club_id IS NULL))
	);

	CREATE TABLE IF NOT EXISTS collaborator (
		id TEXT PRIMARY KEY,
		event_id TEXT NOT NULL,
		club_id TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (event_id) REFERENCES event(id),
		FOREIGN KEY (club_id) REFERENCES club(id),
		UNIQUE (event_id, club_id)
	);

	CREATE TABLE IF NOT EXISTS treasurer (
		id TEXT PRIMARY KEY,
		club_id TEXT NOT NULL UNIQUE,
		student_id TEXT NOT NULL,
		student_name TEXT NOT NULL,
		account_holder_name TEXT NOT NULL,
		account_number TEXT NOT NULL,
		bank_name TEXT NOT NULL,
		branch_name TEXT,
		ifsc_code TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (club_id) REFERENCES club(id)
	);

	CREATE TABLE IF NOT EXISTS reimbursement (
		id TEXT PRIMARY KEY,
		treasurer_id TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (treasurer_id) REFERENCES treasurer(id)
	);

	CREATE TABLE IF NOT EXISTS reimbursee (
		id TEXT PRIMARY KEY,
		reimbursement_id TEXT NOT NULL,
		student_id TEXT NOT NULL,
		student_name TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (reimbursement_id) REFERENCES reimbursement(id)
	);

	CREATE TABLE IF NOT EXISTS reimbursement_item (
		id TEXT PRIMARY KEY,
		reimbursement_id TEXT NOT NULL,
		name TEXT NOT NULL,
		amount TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (reimbursement_id) REFERENCES reimbursement(id)
	);

	CREATE INDEX IF NOT EXISTS idx_event_club ON event(club_id);
	CREATE INDEX IF NOT EXISTS idx_event_status ON event(approval_status);
	CREATE INDEX IF NOT EXISTS idx_pref_event ON event_date_preference(event_id);
	CREATE INDEX IF NOT EXISTS idx_review_event ON event_review(event_id);
	CREATE INDEX IF NOT EXISTS idx_collab_event ON collaborator(event_id);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
