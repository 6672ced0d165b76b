package review

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/J11tendra/saac-event-management/internal/adapters/storage"
	domain "github.com/J11tendra/saac-event-management/internal/domain/review"
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

// Insert appends a review. The table's CHECK constraint enforces the
// admin-xor-club authorship on top of domain validation.
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Insert(ctx context.Context, r domain.Review) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO event_review (id, event_id, admin_id, club_id, comment, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.EventID, nullableString(r.AdminID), nullableString(r.ClubID),
		r.Comment, r.CreatedAt.Format(timeLayout))
	return err
}

// ListByEventID returns an event's reviews oldest first, with the author's
// display name joined from whichever side authored the comment.
func (s *SQLiteStore) ListByEventID(ctx context.Context, eventID string) ([]domain.Review, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.event_id, r.admin_id, r.club_id, r.comment, r.created_at,
		   COALESCE(a.name, c.club_name, '') AS author_name
		 FROM event_review r
		 LEFT JOIN admin a ON a.id = r.admin_id
		 LEFT JOIN club c ON c.id = r.club_id
		 WHERE r.event_id = ?
		 ORDER BY r.created_at ASC, r.id ASC`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var r domain.Review
		var adminID, clubID sql.NullString
		var createdAt string
		err := rows.Scan(&r.ID, &r.EventID, &adminID, &clubID, &r.Comment, &createdAt, &r.AuthorName)
		if err != nil {
			return nil, err
		}
		if adminID.Valid {
			r.AdminID = adminID.String
		}
		if clubID.Valid {
			r.ClubID = clubID.String
		}
		r.CreatedAt = parseTime(createdAt, r.ID)
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// parseTime parses a time string, logging a warning on failure.
func parseTime(raw, reviewID string) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		slog.Warn("review: failed to parse time", "field", "created_at", "review_id", reviewID, "raw", raw, "error", err)
	}
	return t
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
