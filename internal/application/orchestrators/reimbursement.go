package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/J11tendra/saac-event-management/internal/domain/reimbursement"
)

// ReimbursementStoreForOrchestrator defines the store interface needed by
// the treasurer and reimbursement orchestrators.
type ReimbursementStoreForOrchestrator interface {
	GetTreasurerByClubID(ctx context.Context, clubID string) (domain.Treasurer, error)
	SaveTreasurer(ctx context.Context, t domain.Treasurer) error
	CreateReimbursement(ctx context.Context, r domain.Reimbursement) error
}

// RegisterTreasurerInput carries the bank details for a club's treasurer.
type RegisterTreasurerInput struct {
	ClubID            string
	StudentID         string
	StudentName       string
	AccountHolderName string
	AccountNumber     string
	BankName          string
	BranchName        string
	IFSCCode          string
}

// RegisterTreasurerDeps holds dependencies for RegisterTreasurer.
type RegisterTreasurerDeps struct {
	Store      ReimbursementStoreForOrchestrator
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteRegisterTreasurer registers or replaces a club's treasurer bank
// details. One treasurer per club; re-registration updates in place.
// PRE: ClubID comes from the authenticated session
// POST: The club's treasurer details reflect the input
func ExecuteRegisterTreasurer(ctx context.Context, input RegisterTreasurerInput, deps RegisterTreasurerDeps) (domain.Treasurer, error) {
	t := domain.Treasurer{
		ID:                deps.GenerateID(),
		ClubID:            input.ClubID,
		StudentID:         strings.TrimSpace(input.StudentID),
		StudentName:       strings.TrimSpace(input.StudentName),
		AccountHolderName: strings.TrimSpace(input.AccountHolderName),
		AccountNumber:     strings.TrimSpace(input.AccountNumber),
		BankName:          strings.TrimSpace(input.BankName),
		BranchName:        strings.TrimSpace(input.BranchName),
		IFSCCode:          strings.TrimSpace(input.IFSCCode),
		CreatedAt:         deps.Now(),
	}
	if err := t.Validate(); err != nil {
		return domain.Treasurer{}, err
	}

	if err := deps.Store.SaveTreasurer(ctx, t); err != nil {
		return domain.Treasurer{}, err
	}

	// Re-registration keeps the original row ID; re-read so the caller
	// sees what was actually stored.
	stored, err := deps.Store.GetTreasurerByClubID(ctx, t.ClubID)
	if err != nil {
		return domain.Treasurer{}, err
	}

	slog.Info("reimbursement_event", "event", "treasurer_registered", "treasurer_id", stored.ID, "club_id", stored.ClubID)
	return stored, nil
}

// ReimburseeInput is one student covered by a claim.
type ReimburseeInput struct {
	StudentID   string
	StudentName string
}

// ItemInput is one expense line on a claim.
type ItemInput struct {
	Name   string
	Amount string
}

// SubmitReimbursementInput carries input for the claim orchestrator.
type SubmitReimbursementInput struct {
	ClubID      string
	Reimbursees []ReimburseeInput
	Items       []ItemInput
}

// SubmitReimbursementDeps holds dependencies for SubmitReimbursement.
type SubmitReimbursementDeps struct {
	Store      ReimbursementStoreForOrchestrator
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteSubmitReimbursement files a reimbursement claim against the
// club's registered treasurer. The claim, its reimbursees and its items
// are persisted in one transaction.
// PRE: ClubID comes from the authenticated session; a treasurer is registered
// POST: Claim persisted with all children, or nothing is
func ExecuteSubmitReimbursement(ctx context.Context, input SubmitReimbursementInput, deps SubmitReimbursementDeps) (domain.Reimbursement, error) {
	if input.ClubID == "" {
		return domain.Reimbursement{}, NewValidationError("club_id")
	}

	t, err := deps.Store.GetTreasurerByClubID(ctx, input.ClubID)
	if errors.Is(err, sql.ErrNoRows) {
		// No treasurer registered yet; the claim has nowhere to pay out.
		return domain.Reimbursement{}, ErrInvalidState
	}
	if err != nil {
		return domain.Reimbursement{}, err
	}

	now := deps.Now()
	r := domain.Reimbursement{
		ID:          deps.GenerateID(),
		TreasurerID: t.ID,
		CreatedAt:   now,
	}
	for _, re := range input.Reimbursees {
		r.Reimbursees = append(r.Reimbursees, domain.Reimbursee{
			ID:              deps.GenerateID(),
			ReimbursementID: r.ID,
			StudentID:       strings.TrimSpace(re.StudentID),
			StudentName:     strings.TrimSpace(re.StudentName),
			CreatedAt:       now,
		})
	}
	for _, it := range input.Items {
		amt, err := decimal.NewFromString(strings.TrimSpace(it.Amount))
		if err != nil {
			return domain.Reimbursement{}, NewValidationError("amount")
		}
		r.Items = append(r.Items, domain.Item{
			ID:              deps.GenerateID(),
			ReimbursementID: r.ID,
			Name:            strings.TrimSpace(it.Name),
			Amount:          amt,
			CreatedAt:       now,
		})
	}
	if err := r.Validate(); err != nil {
		return domain.Reimbursement{}, err
	}

	if err := deps.Store.CreateReimbursement(ctx, r); err != nil {
		return domain.Reimbursement{}, err
	}

	slog.Info("reimbursement_event", "event", "reimbursement_submitted", "reimbursement_id", r.ID,
		"treasurer_id", t.ID, "items", len(r.Items), "total", r.Total().String())
	return r, nil
}
