package event

import (
	"errors"
	"time"
)

// Approval statuses
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Proposer roles for date preferences
const (
	ProposerClub  = "club"
	ProposerAdmin = "admin"
)

// Date and time layouts used for date preference fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Domain errors
var (
	ErrEmptyClubID        = errors.New("club ID is required")
	ErrEmptyName          = errors.New("event name is required")
	ErrEmptyDescription   = errors.New("event description is required")
	ErrInvalidStatus      = errors.New("approval status must be one of: pending, accepted, rejected")
	ErrInvalidProposer    = errors.New("proposer role must be one of: club, admin")
	ErrNoDatePreference   = errors.New("at least one complete date preference is required")
	ErrInvalidDate        = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidTime        = errors.New("start and end time must be in HH:MM format")
	ErrEndNotAfterStart   = errors.New("end time must be after start time")
	ErrNotPending         = errors.New("event is no longer pending")
	ErrPreferenceRequired = errors.New("an accepted date preference is required to approve")
)

// ValidStatuses contains all valid approval statuses.
var ValidStatuses = []string{StatusPending, StatusAccepted, StatusRejected}

// Event is a club-submitted event moving through the approval workflow.
// Invariant: ApprovalStatus == accepted ⇔ ApprovalDate set ⇔ AcceptedPreferenceID set,
// and the accepted preference belongs to this event.
type Event struct {
	ID                   string
	ClubID               string
	Name                 string // event_name
	Description          string // event_descriptions, Markdown allowed
	ApprovalStatus       string
	ApprovalDate         time.Time // zero unless accepted
	AcceptedPreferenceID string    // empty unless accepted
	CreatedAt            time.Time
}

// Validate checks if the Event has valid data.
// PRE: Event struct is populated
// POST: Returns nil if valid, error otherwise
func (e *Event) Validate() error {
	if e.ClubID == "" {
		return ErrEmptyClubID
	}
	if e.Name == "" {
		return ErrEmptyName
	}
	if e.Description == "" {
		return ErrEmptyDescription
	}
	if !isValidStatus(e.ApprovalStatus) {
		return ErrInvalidStatus
	}
	return nil
}

// IsPending returns true if the event is awaiting a decision.
// INVARIANT: ApprovalStatus is not mutated
func (e *Event) IsPending() bool {
	return e.ApprovalStatus == StatusPending
}

// IsAccepted returns true if the event has been accepted.
// INVARIANT: ApprovalStatus is not mutated
func (e *Event) IsAccepted() bool {
	return e.ApprovalStatus == StatusAccepted
}

// IsRejected returns true if the event has been rejected.
// INVARIANT: ApprovalStatus is not mutated
func (e *Event) IsRejected() bool {
	return e.ApprovalStatus == StatusRejected
}

// Approve marks the event accepted with the chosen date preference.
// The caller is responsible for checking that the preference belongs to
// this event before calling.
// PRE: preferenceID is non-empty
// POST: Status is accepted, ApprovalDate and AcceptedPreferenceID are set
func (e *Event) Approve(preferenceID string, now time.Time) error {
	if preferenceID == "" {
		return ErrPreferenceRequired
	}
	e.ApprovalStatus = StatusAccepted
	e.ApprovalDate = now
	e.AcceptedPreferenceID = preferenceID
	return nil
}

// Reject marks the event rejected, clearing any prior acceptance so the
// accepted-iff invariant holds after an override of an earlier approval.
// POST: Status is rejected, ApprovalDate and AcceptedPreferenceID are cleared
func (e *Event) Reject() {
	e.ApprovalStatus = StatusRejected
	e.ApprovalDate = time.Time{}
	e.AcceptedPreferenceID = ""
}

// DatePreference is a candidate date+time slot proposed for an event.
type DatePreference struct {
	ID           string
	EventID      string
	Date         string // YYYY-MM-DD
	StartTime    string // HH:MM
	EndTime      string // HH:MM
	ProposerRole string
	CreatedAt    time.Time
}

// IsComplete reports whether date, start and end are all present.
// Incomplete entries are silently dropped by create/replace operations,
// matching the seeded-three-slots form behaviour.
func (p *DatePreference) IsComplete() bool {
	return p.Date != "" && p.StartTime != "" && p.EndTime != ""
}

// Validate checks a complete date preference's formats and time ordering.
// PRE: preference is complete
// POST: Returns nil if valid, error otherwise
func (p *DatePreference) Validate() error {
	if _, err := time.Parse(DateLayout, p.Date); err != nil {
		return ErrInvalidDate
	}
	start, err := time.Parse(TimeLayout, p.StartTime)
	if err != nil {
		return ErrInvalidTime
	}
	end, err := time.Parse(TimeLayout, p.EndTime)
	if err != nil {
		return ErrInvalidTime
	}
	if !end.After(start) {
		return ErrEndNotAfterStart
	}
	if p.ProposerRole != "" && p.ProposerRole != ProposerClub && p.ProposerRole != ProposerAdmin {
		return ErrInvalidProposer
	}
	return nil
}

// CompleteSubset drops incomplete preferences and validates the rest.
// Entries with a missing date, start or end are silently dropped; a complete
// entry that fails format or ordering validation fails the whole set.
// POST: Returns the complete subset, or an error naming the first violation
func CompleteSubset(prefs []DatePreference) ([]DatePreference, error) {
	var kept []DatePreference
	for i := range prefs {
		p := prefs[i]
		if !p.IsComplete() {
			continue
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return nil, ErrNoDatePreference
	}
	return kept, nil
}

func isValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}
