package club

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

const clubColumns = `id, club_name, club_email, created_at`

// GetByID retrieves a club by ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Club, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+clubColumns+` FROM club WHERE id = ?`, id)
	return scanClub(row)
}

// GetByEmail retrieves a club by its unique email.
// PRE: email is already normalized to lowercase
// POST: Returns the entity or sql.ErrNoRows if not found
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Club, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+clubColumns+` FROM club WHERE club_email = ?`, email)
	return scanClub(row)
}

// Insert creates a new club row. A second insert with the same email fails
// with a uniqueness violation; callers racing on lazy creation detect it
// via storage.IsConflict and re-fetch by email.
// PRE: entity has been validated
// POST: Entity is persisted, or a conflict error is returned
func (s *SQLiteStore) Insert(ctx context.Context, c domain.Club) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO club (id, club_name, club_email, created_at) VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.CreatedAt.Format(timeLayout))
	return err
}

// List returns all clubs ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Club, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+clubColumns+` FROM club ORDER BY club_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clubs []domain.Club
	for rows.Next() {
		var c domain.Club
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &createdAt); err != nil {
			return nil, err
		}
		c.CreatedAt = parseTime(createdAt, c.ID)
		clubs = append(clubs, c)
	}
	return clubs, rows.Err()
}

// scanClub scans a single row into a Club.
func scanClub(row *sql.Row) (domain.Club, error) {
	var c domain.Club
	var createdAt string
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &createdAt); err != nil {
		return domain.Club{}, err
	}
	c.CreatedAt = parseTime(createdAt, c.ID)
	return c, nil
}

// parseTime parses a time string, logging a warning on failure.
func parseTime(raw, clubID string) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		slog.Warn("club: failed to parse time", "field", "created_at", "club_id", clubID, "raw", raw, "error", err)
	}
	return t
}
