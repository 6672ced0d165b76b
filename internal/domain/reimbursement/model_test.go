package reimbursement_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/J11tendra/saac-event-management/internal/domain/reimbursement"
)

func validClaim() reimbursement.Reimbursement {
	return reimbursement.Reimbursement{
		ID:          "r1",
		TreasurerID: "t1",
		Reimbursees: []reimbursement.Reimbursee{
			{ID: "re1", StudentID: "s-100", StudentName: "Asha"},
		},
		Items: []reimbursement.Item{
			{ID: "i1", Name: "Banners", Amount: decimal.NewFromInt(1200)},
			{ID: "i2", Name: "Refreshments", Amount: decimal.NewFromFloat(850.50)},
		},
	}
}

// TestReimbursement_Validate tests the claim validation rules.
func TestReimbursement_Validate(t *testing.T) {
	t.Run("valid claim", func(t *testing.T) {
		r := validClaim()
		if err := r.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing treasurer", func(t *testing.T) {
		r := validClaim()
		r.TreasurerID = ""
		if err := r.Validate(); !errors.Is(err, reimbursement.ErrEmptyTreasurerID) {
			t.Errorf("expected ErrEmptyTreasurerID, got %v", err)
		}
	})

	t.Run("no reimbursees", func(t *testing.T) {
		r := validClaim()
		r.Reimbursees = nil
		if err := r.Validate(); !errors.Is(err, reimbursement.ErrNoReimbursees) {
			t.Errorf("expected ErrNoReimbursees, got %v", err)
		}
	})

	t.Run("no items", func(t *testing.T) {
		r := validClaim()
		r.Items = nil
		if err := r.Validate(); !errors.Is(err, reimbursement.ErrNoItems) {
			t.Errorf("expected ErrNoItems, got %v", err)
		}
	})

	t.Run("zero amount item", func(t *testing.T) {
		r := validClaim()
		r.Items[0].Amount = decimal.Zero
		if err := r.Validate(); !errors.Is(err, reimbursement.ErrNonPositiveAmount) {
			t.Errorf("expected ErrNonPositiveAmount, got %v", err)
		}
	})
}

// TestReimbursement_Total tests summing item amounts.
func TestReimbursement_Total(t *testing.T) {
	r := validClaim()
	want := decimal.NewFromFloat(2050.50)
	if got := r.Total(); !got.Equal(want) {
		t.Errorf("Total() = %s, want %s", got, want)
	}
}

// TestTreasurer_Validate tests treasurer registration validation.
func TestTreasurer_Validate(t *testing.T) {
	valid := reimbursement.Treasurer{
		ID: "t1", ClubID: "c1", StudentID: "s-100", StudentName: "Asha",
		AccountHolderName: "Asha K", AccountNumber: "001122334455",
		BankName: "SBI", BranchName: "Lavale", IFSCCode: "SBIN0001234",
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	missing := valid
	missing.IFSCCode = ""
	if err := missing.Validate(); !errors.Is(err, reimbursement.ErrEmptyIFSC) {
		t.Errorf("expected ErrEmptyIFSC, got %v", err)
	}
}
