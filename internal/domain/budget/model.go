package budget

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Domain errors
var (
	ErrEmptyEventID      = errors.New("event ID is required")
	ErrNonPositiveAmount = errors.New("budget amount must be greater than zero")
	ErrEmptyPurpose      = errors.New("budget purpose is required")
)

// Request is a funding ask attached to an event. One per event in practice;
// the store enforces uniqueness on event_id.
type Request struct {
	EventID          string
	Amount           decimal.Decimal     // budget_amt
	Purpose          string              // purpose
	ApprovedAmount   decimal.NullDecimal // approved_budget, set only alongside event approval
	ApprovalDate     time.Time           // zero until approved
	ApprovalComments string
	CreatedAt        time.Time
}

// Validate checks if the Request has valid data.
// PRE: Request struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Request) Validate() error {
	if r.EventID == "" {
		return ErrEmptyEventID
	}
	if !r.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if r.Purpose == "" {
		return ErrEmptyPurpose
	}
	return nil
}

// IsApproved returns true once an approved amount has been recorded.
// INVARIANT: Request fields are not mutated
func (r *Request) IsApproved() bool {
	return r.ApprovedAmount.Valid
}

// ApplyApproval records the approved amount, approval time and optional
// comments, set only alongside event approval.
// PRE: amount is the admin-approved figure (may be below the requested amount)
// POST: ApprovedAmount, ApprovalDate and ApprovalComments are set
func (r *Request) ApplyApproval(amount decimal.Decimal, comments string, now time.Time) {
	r.ApprovedAmount = decimal.NewNullDecimal(amount)
	r.ApprovalDate = now
	r.ApprovalComments = comments
}
