package collaborator

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrEmptyEventID = errors.New("event ID is required")
	ErrEmptyClubID  = errors.New("club ID is required")
)

// Collaborator links a co-hosting club to an event. The pair
// (event_id, club_id) is unique.
type Collaborator struct {
	ID        string
	EventID   string
	ClubID    string
	CreatedAt time.Time
}

// Validate checks if the Collaborator has valid data.
// PRE: Collaborator struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Collaborator) Validate() error {
	if c.EventID == "" {
		return ErrEmptyEventID
	}
	if c.ClubID == "" {
		return ErrEmptyClubID
	}
	return nil
}
