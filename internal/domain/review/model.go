package review

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyEventID   = errors.New("event ID is required")
	ErrEmptyComment   = errors.New("comment cannot be empty")
	ErrAuthorRequired = errors.New("a review must be authored by a club or an admin")
	ErrAuthorConflict = errors.New("a review cannot be authored by both a club and an admin")
)

// Review is an append-only comment on an event, authored by exactly one of
// an admin or a club (XOR foreign key). Reviews are never edited or deleted.
type Review struct {
	ID        string
	EventID   string
	AdminID   string // set iff authored by an admin
	ClubID    string // set iff authored by a club
	Comment   string
	CreatedAt time.Time

	// AuthorName is the joined display name of the author, populated on
	// reads only; it is not persisted on the review row.
	AuthorName string
}

// Validate checks if the Review has valid data.
// PRE: Review struct is populated, Comment already trimmed
// POST: Returns nil if valid, error otherwise
func (r *Review) Validate() error {
	if r.EventID == "" {
		return ErrEmptyEventID
	}
	if strings.TrimSpace(r.Comment) == "" {
		return ErrEmptyComment
	}
	if r.AdminID == "" && r.ClubID == "" {
		return ErrAuthorRequired
	}
	if r.AdminID != "" && r.ClubID != "" {
		return ErrAuthorConflict
	}
	return nil
}

// IsAdminAuthored returns true when the review was written by an admin.
// INVARIANT: Review fields are not mutated
func (r *Review) IsAdminAuthored() bool {
	return r.AdminID != ""
}
