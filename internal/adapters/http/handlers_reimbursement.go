package web

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/J11tendra/saac-event-management/internal/application/orchestrators"
	reimbursementDomain "github.com/J11tendra/saac-event-management/internal/domain/reimbursement"
)

// respondReimbursementError maps claim errors onto HTTP statuses. Bank
// detail and claim-shape failures surface as domain errors rather than
// the shared taxonomy.
func respondReimbursementError(w http.ResponseWriter, err error) {
	if reimbursementDomain.IsValidationError(err) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondTaxonomyError(w, err)
}

// handleTreasurer handles GET (details) and POST (register) for /api/treasurer.
// Club only; one treasurer per club, re-registration updates in place.
func handleTreasurer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		sess, ok := requireClub(w, r)
		if !ok {
			return
		}
		t, err := stores.ReimbursementStore.GetTreasurerByClubID(ctx, sess.ClubID)
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "no treasurer registered")
			return
		}
		if err != nil {
			internalError(w, err)
			return
		}
		respondData(w, http.StatusOK, t)
		return
	}

	if r.Method == "POST" {
		sess, ok := requireClub(w, r)
		if !ok {
			return
		}

		var input struct {
			StudentID         string `json:"StudentID"`
			StudentName       string `json:"StudentName"`
			AccountHolderName string `json:"AccountHolderName"`
			AccountNumber     string `json:"AccountNumber"`
			BankName          string `json:"BankName"`
			BranchName        string `json:"BranchName"`
			IFSCCode          string `json:"IFSCCode"`
		}
		if err := strictDecode(r, &input); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON")
			return
		}

		t, err := orchestrators.ExecuteRegisterTreasurer(ctx, orchestrators.RegisterTreasurerInput{
			ClubID:            sess.ClubID,
			StudentID:         input.StudentID,
			StudentName:       input.StudentName,
			AccountHolderName: input.AccountHolderName,
			AccountNumber:     input.AccountNumber,
			BankName:          input.BankName,
			BranchName:        input.BranchName,
			IFSCCode:          input.IFSCCode,
		}, orchestrators.RegisterTreasurerDeps{
			Store:      stores.ReimbursementStore,
			GenerateID: generateID,
			Now:        timeNow,
		})
		if err != nil {
			respondReimbursementError(w, err)
			return
		}

		respondData(w, http.StatusCreated, t)
		return
	}

	respondError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// handleReimbursements handles GET (claims) and POST (submit) for
// /api/reimbursements. Club only; claims require a registered treasurer.
func handleReimbursements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		sess, ok := requireClub(w, r)
		if !ok {
			return
		}
		t, err := stores.ReimbursementStore.GetTreasurerByClubID(ctx, sess.ClubID)
		if errors.Is(err, sql.ErrNoRows) {
			respondData(w, http.StatusOK, nil)
			return
		}
		if err != nil {
			internalError(w, err)
			return
		}
		claims, err := stores.ReimbursementStore.ListByTreasurer(ctx, t.ID)
		if err != nil {
			internalError(w, err)
			return
		}
		respondData(w, http.StatusOK, claims)
		return
	}

	if r.Method == "POST" {
		sess, ok := requireClub(w, r)
		if !ok {
			return
		}

		var input struct {
			Reimbursees []struct {
				StudentID   string `json:"StudentID"`
				StudentName string `json:"StudentName"`
			} `json:"Reimbursees"`
			Items []struct {
				Name   string `json:"Name"`
				Amount string `json:"Amount"`
			} `json:"Items"`
		}
		if err := strictDecode(r, &input); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON")
			return
		}

		orchInput := orchestrators.SubmitReimbursementInput{ClubID: sess.ClubID}
		for _, re := range input.Reimbursees {
			orchInput.Reimbursees = append(orchInput.Reimbursees, orchestrators.ReimburseeInput{
				StudentID:   re.StudentID,
				StudentName: re.StudentName,
			})
		}
		for _, it := range input.Items {
			orchInput.Items = append(orchInput.Items, orchestrators.ItemInput{
				Name:   it.Name,
				Amount: it.Amount,
			})
		}

		claim, err := orchestrators.ExecuteSubmitReimbursement(ctx, orchInput, orchestrators.SubmitReimbursementDeps{
			Store:      stores.ReimbursementStore,
			GenerateID: generateID,
			Now:        timeNow,
		})
		if err != nil {
			respondReimbursementError(w, err)
			return
		}

		respondData(w, http.StatusCreated, claim)
		return
	}

	respondError(w, http.StatusMethodNotAllowed, "method not allowed")
}
