package reimbursement

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Domain errors
var (
	ErrEmptyClubID        = errors.New("club ID is required")
	ErrEmptyStudentID     = errors.New("student ID is required")
	ErrEmptyStudentName   = errors.New("student name is required")
	ErrEmptyAccountHolder = errors.New("account holder name is required")
	ErrEmptyAccountNumber = errors.New("account number is required")
	ErrEmptyBankName      = errors.New("bank name is required")
	ErrEmptyIFSC          = errors.New("IFSC code is required")
	ErrEmptyTreasurerID   = errors.New("treasurer ID is required")
	ErrNoReimbursees      = errors.New("at least one reimbursee is required")
	ErrNoItems            = errors.New("at least one item is required")
	ErrEmptyItemName      = errors.New("item name is required")
	ErrNonPositiveAmount  = errors.New("item amount must be greater than zero")
)

// validationErrors lists every error Validate can return, so callers can
// tell bad input apart from infrastructure failures.
var validationErrors = []error{
	ErrEmptyClubID, ErrEmptyStudentID, ErrEmptyStudentName,
	ErrEmptyAccountHolder, ErrEmptyAccountNumber, ErrEmptyBankName,
	ErrEmptyIFSC, ErrEmptyTreasurerID, ErrNoReimbursees, ErrNoItems,
	ErrEmptyItemName, ErrNonPositiveAmount,
}

// IsValidationError reports whether err is one of the Validate errors.
func IsValidationError(err error) bool {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// Treasurer holds the bank details used to reimburse a club's spending.
// One treasurer per club is registered before reimbursements can be filed.
type Treasurer struct {
	ID                string
	ClubID            string
	StudentID         string
	StudentName       string
	AccountHolderName string
	AccountNumber     string
	BankName          string
	BranchName        string
	IFSCCode          string
	CreatedAt         time.Time
}

// Validate checks if the Treasurer has valid data.
// PRE: Treasurer struct is populated
// POST: Returns nil if valid, error otherwise
func (t *Treasurer) Validate() error {
	if t.ClubID == "" {
		return ErrEmptyClubID
	}
	if t.StudentID == "" {
		return ErrEmptyStudentID
	}
	if t.StudentName == "" {
		return ErrEmptyStudentName
	}
	if t.AccountHolderName == "" {
		return ErrEmptyAccountHolder
	}
	if t.AccountNumber == "" {
		return ErrEmptyAccountNumber
	}
	if t.BankName == "" {
		return ErrEmptyBankName
	}
	if t.IFSCCode == "" {
		return ErrEmptyIFSC
	}
	return nil
}

// Reimbursement is a filed reimbursement claim referencing a treasurer,
// carrying the students being reimbursed and the expense line items.
type Reimbursement struct {
	ID          string
	TreasurerID string
	CreatedAt   time.Time

	Reimbursees []Reimbursee
	Items       []Item
}

// Reimbursee is a student covered by a reimbursement claim.
type Reimbursee struct {
	ID              string
	ReimbursementID string
	StudentID       string
	StudentName     string
	CreatedAt       time.Time
}

// Item is a single expense line on a reimbursement claim.
type Item struct {
	ID              string
	ReimbursementID string
	Name            string
	Amount          decimal.Decimal
	CreatedAt       time.Time
}

// Validate checks if the Reimbursement and its children have valid data.
// PRE: Reimbursement struct is populated with its reimbursees and items
// POST: Returns nil if valid, error otherwise
func (r *Reimbursement) Validate() error {
	if r.TreasurerID == "" {
		return ErrEmptyTreasurerID
	}
	if len(r.Reimbursees) == 0 {
		return ErrNoReimbursees
	}
	if len(r.Items) == 0 {
		return ErrNoItems
	}
	for i := range r.Reimbursees {
		if r.Reimbursees[i].StudentID == "" {
			return ErrEmptyStudentID
		}
		if r.Reimbursees[i].StudentName == "" {
			return ErrEmptyStudentName
		}
	}
	for i := range r.Items {
		if r.Items[i].Name == "" {
			return ErrEmptyItemName
		}
		if !r.Items[i].Amount.IsPositive() {
			return ErrNonPositiveAmount
		}
	}
	return nil
}

// Total returns the sum of all item amounts on the claim.
// INVARIANT: Reimbursement fields are not mutated
func (r *Reimbursement) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range r.Items {
		total = total.Add(r.Items[i].Amount)
	}
	return total
}
