package orchestrators

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func validTreasurerInput() RegisterTreasurerInput {
	return RegisterTreasurerInput{
		ClubID:            "c1",
		StudentID:         "20261234",
		StudentName:       "Priya Sharma",
		AccountHolderName: "Priya Sharma",
		AccountNumber:     "001122334455",
		BankName:          "State Bank",
		BranchName:        "Campus",
		IFSCCode:          "SBIN0001234",
	}
}

// TestExecuteRegisterTreasurer_Valid tests first registration.
func TestExecuteRegisterTreasurer_Valid(t *testing.T) {
	store := newMockReimbursementStore()
	tr, err := ExecuteRegisterTreasurer(context.Background(), validTreasurerInput(),
		RegisterTreasurerDeps{Store: store, GenerateID: newIDGen("tr"), Now: fixedNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.ID != "tr-1" {
		t.Errorf("treasurer ID = %s", tr.ID)
	}
	if _, ok := store.treasurers["c1"]; !ok {
		t.Error("expected treasurer to be persisted")
	}
}

// TestExecuteRegisterTreasurer_ReplacesInPlace tests re-registration.
func TestExecuteRegisterTreasurer_ReplacesInPlace(t *testing.T) {
	store := newMockReimbursementStore()
	deps := RegisterTreasurerDeps{Store: store, GenerateID: newIDGen("tr"), Now: fixedNow}

	first, err := ExecuteRegisterTreasurer(context.Background(), validTreasurerInput(), deps)
	if err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	input := validTreasurerInput()
	input.StudentName = "Arjun Mehta"
	input.AccountHolderName = "Arjun Mehta"
	second, err := ExecuteRegisterTreasurer(context.Background(), input, deps)
	if err != nil {
		t.Fatalf("re-registration failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("re-registration changed the row ID: %s vs %s", second.ID, first.ID)
	}
	if second.StudentName != "Arjun Mehta" {
		t.Errorf("details not replaced: %s", second.StudentName)
	}
}

// TestExecuteRegisterTreasurer_Validation tests required bank fields.
func TestExecuteRegisterTreasurer_Validation(t *testing.T) {
	input := validTreasurerInput()
	input.IFSCCode = "  "
	_, err := ExecuteRegisterTreasurer(context.Background(), input,
		RegisterTreasurerDeps{Store: newMockReimbursementStore(), GenerateID: newIDGen("tr"), Now: fixedNow})
	if err == nil {
		t.Fatal("expected a validation error for missing IFSC")
	}
}

// TestExecuteSubmitReimbursement_Valid tests filing a claim.
func TestExecuteSubmitReimbursement_Valid(t *testing.T) {
	store := newMockReimbursementStore()
	if _, err := ExecuteRegisterTreasurer(context.Background(), validTreasurerInput(),
		RegisterTreasurerDeps{Store: store, GenerateID: newIDGen("tr"), Now: fixedNow}); err != nil {
		t.Fatalf("treasurer setup failed: %v", err)
	}

	r, err := ExecuteSubmitReimbursement(context.Background(), SubmitReimbursementInput{
		ClubID: "c1",
		Reimbursees: []ReimburseeInput{
			{StudentID: "20261234", StudentName: "Priya Sharma"},
		},
		Items: []ItemInput{
			{Name: "trophies", Amount: "1200.00"},
			{Name: "printing", Amount: "300.50"},
		},
	}, SubmitReimbursementDeps{Store: store, GenerateID: newIDGen("rb"), Now: fixedNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.TreasurerID != "tr-1" {
		t.Errorf("treasurer ID = %s, want tr-1", r.TreasurerID)
	}
	if !r.Total().Equal(decimal.RequireFromString("1500.50")) {
		t.Errorf("total = %s, want 1500.50", r.Total().String())
	}
	if len(store.claims) != 1 {
		t.Errorf("expected 1 claim, got %d", len(store.claims))
	}
}

// TestExecuteSubmitReimbursement_NoTreasurer tests the missing-treasurer
// guard.
func TestExecuteSubmitReimbursement_NoTreasurer(t *testing.T) {
	_, err := ExecuteSubmitReimbursement(context.Background(), SubmitReimbursementInput{
		ClubID:      "c1",
		Reimbursees: []ReimburseeInput{{StudentID: "1", StudentName: "A"}},
		Items:       []ItemInput{{Name: "x", Amount: "1"}},
	}, SubmitReimbursementDeps{Store: newMockReimbursementStore(), GenerateID: newIDGen("rb"), Now: fixedNow})
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

// TestExecuteSubmitReimbursement_BadAmount tests amount parsing.
func TestExecuteSubmitReimbursement_BadAmount(t *testing.T) {
	store := newMockReimbursementStore()
	if _, err := ExecuteRegisterTreasurer(context.Background(), validTreasurerInput(),
		RegisterTreasurerDeps{Store: store, GenerateID: newIDGen("tr"), Now: fixedNow}); err != nil {
		t.Fatalf("treasurer setup failed: %v", err)
	}

	_, err := ExecuteSubmitReimbursement(context.Background(), SubmitReimbursementInput{
		ClubID:      "c1",
		Reimbursees: []ReimburseeInput{{StudentID: "1", StudentName: "A"}},
		Items:       []ItemInput{{Name: "x", Amount: "a lot"}},
	}, SubmitReimbursementDeps{Store: store, GenerateID: newIDGen("rb"), Now: fixedNow})
	if !IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

// TestExecuteSubmitReimbursement_EmptyChildren tests domain validation of
// required reimbursees and items.
func TestExecuteSubmitReimbursement_EmptyChildren(t *testing.T) {
	store := newMockReimbursementStore()
	if _, err := ExecuteRegisterTreasurer(context.Background(), validTreasurerInput(),
		RegisterTreasurerDeps{Store: store, GenerateID: newIDGen("tr"), Now: fixedNow}); err != nil {
		t.Fatalf("treasurer setup failed: %v", err)
	}

	_, err := ExecuteSubmitReimbursement(context.Background(), SubmitReimbursementInput{
		ClubID: "c1",
		Items:  []ItemInput{{Name: "x", Amount: "1"}},
	}, SubmitReimbursementDeps{Store: store, GenerateID: newIDGen("rb"), Now: fixedNow})
	if err == nil {
		t.Fatal("expected an error for missing reimbursees")
	}
}
