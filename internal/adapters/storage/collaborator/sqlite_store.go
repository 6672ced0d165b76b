package collaborator

import (
	"context"
	"log/slog"
	"time"

	"github.com/J11tendra/saac-event-management/internal/adapters/storage"
	domain "github.com/J11tendra/saac-event-management/internal/domain/collaborator"
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

// Insert links a club to an event. The (event_id, club_id) pair is unique,
// so re-adding an existing collaborator fails with a conflict.
// PRE: entity has been validated
// POST: Entity is persisted, or a conflict error is returned
func (s *SQLiteStore) Insert(ctx context.Context, c domain.Collaborator) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO collaborator (id, event_id, club_id, created_at) VALUES (?, ?, ?, ?)`,
		c.ID, c.EventID, c.ClubID, c.CreatedAt.Format(timeLayout))
	return err
}

// Delete removes the collaborator link between an event and a club.
func (s *SQLiteStore) Delete(ctx context.Context, eventID, clubID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM collaborator WHERE event_id = ? AND club_id = ?`, eventID, clubID)
	return err
}

// ListByEventID returns an event's collaborators in link order.
func (s *SQLiteStore) ListByEventID(ctx context.Context, eventID string) ([]domain.Collaborator, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, event_id, club_id, created_at FROM collaborator
		 WHERE event_id = ? ORDER BY created_at ASC, id ASC`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var collabs []domain.Collaborator
	for rows.Next() {
		var c domain.Collaborator
		var createdAt string
		if err := rows.Scan(&c.ID, &c.EventID, &c.ClubID, &createdAt); err != nil {
			return nil, err
		}
		c.CreatedAt = parseTime(createdAt, c.ID)
		collabs = append(collabs, c)
	}
	return collabs, rows.Err()
}

// ListEventIDsByClub returns the IDs of events the club co-hosts.
func (s *SQLiteStore) ListEventIDsByClub(ctx context.Context, clubID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT event_id FROM collaborator WHERE club_id = ?`, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// parseTime parses a time string, logging a warning on failure.
func parseTime(raw, collaboratorID string) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		slog.Warn("collaborator: failed to parse time", "field", "created_at", "collaborator_id", collaboratorID, "raw", raw, "error", err)
	}
	return t
}
