package admin

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/J11tendra/saac-event-management/internal/adapters/storage"
	domain "github.com/J11tendra/saac-event-management/internal/domain/identity"
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

const adminColumns = `id, name, email_id, created_at`

// GetByID retrieves an admin by ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Admin, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admin WHERE id = ?`, id)
	return scanAdmin(row)
}

// GetByEmail retrieves an admin by its unique email.
// PRE: email is already normalized to lowercase
// POST: Returns the entity or sql.ErrNoRows if not found
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Admin, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admin WHERE email_id = ?`, email)
	return scanAdmin(row)
}

// Insert creates a new admin row. Racing lazy creations surface as a
// uniqueness violation, detected via storage.IsConflict.
// PRE: entity has been validated
// POST: Entity is persisted, or a conflict error is returned
func (s *SQLiteStore) Insert(ctx context.Context, a domain.Admin) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO admin (id, name, email_id, created_at) VALUES (?, ?, ?, ?)`,
		a.ID, a.Name, a.Email, a.CreatedAt.Format(timeLayout))
	return err
}

// scanAdmin scans a single row into an Admin.
func scanAdmin(row *sql.Row) (domain.Admin, error) {
	var a domain.Admin
	var createdAt string
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &createdAt); err != nil {
		return domain.Admin{}, err
	}
	a.CreatedAt = parseTime(createdAt, a.ID)
	return a, nil
}

// parseTime parses a time string, logging a warning on failure.
func parseTime(raw, adminID string) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		slog.Warn("admin: failed to parse time", "field", "created_at", "admin_id", adminID, "raw", raw, "error", err)
	}
	return t
}
