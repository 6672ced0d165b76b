package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/J11tendra/saac-event-management/internal/application/orchestrators"
	"github.com/J11tendra/saac-event-management/internal/application/projections"
)

func decideDeps() orchestrators.DecideEventDeps {
	return orchestrators.DecideEventDeps{
		EventStore:  stores.EventStore,
		BudgetStore: stores.BudgetStore,
		ClubStore:   stores.ClubStore,
		Sender:      emailSender,
		ReplyTo:     emailReplyTo,
		Now:         timeNow,
	}
}

// handleApproveEvent handles POST /api/events/approve. Admin only.
func handleApproveEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	var input struct {
		EventID              string `json:"EventID"`
		AcceptedPreferenceID string `json:"AcceptedPreferenceID"`
		ApprovedBudget       string `json:"ApprovedBudget"`
		BudgetComments       string `json:"BudgetComments"`
	}
	if err := strictDecode(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	e, err := orchestrators.ExecuteApproveEvent(r.Context(), orchestrators.ApproveEventInput{
		EventID:              input.EventID,
		AcceptedPreferenceID: input.AcceptedPreferenceID,
		ApprovedBudget:       input.ApprovedBudget,
		BudgetComments:       input.BudgetComments,
	}, decideDeps())
	if err != nil {
		respondTaxonomyError(w, err)
		return
	}

	respondData(w, http.StatusOK, e)
}

// handleRejectEvent handles POST /api/events/reject. Admin only.
func handleRejectEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	var input struct {
		EventID string `json:"EventID"`
	}
	if err := strictDecode(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	e, err := orchestrators.ExecuteRejectEvent(r.Context(), orchestrators.RejectEventInput{
		EventID: input.EventID,
	}, decideDeps())
	if err != nil {
		respondTaxonomyError(w, err)
		return
	}

	respondData(w, http.StatusOK, e)
}

// handleCalendar handles GET /api/calendar?year=&month=. Admin only.
// Defaults to the current month when the parameters are absent.
func handleCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	now := timeNow()
	year := now.Year()
	month := now.Month()
	if y := r.URL.Query().Get("year"); y != "" {
		n, err := strconv.Atoi(y)
		if err != nil {
			respondError(w, http.StatusBadRequest, "year must be a number")
			return
		}
		year = n
	}
	if m := r.URL.Query().Get("month"); m != "" {
		n, err := strconv.Atoi(m)
		if err != nil || n < 1 || n > 12 {
			respondError(w, http.StatusBadRequest, "month must be 1-12")
			return
		}
		month = time.Month(n)
	}

	days, err := projections.QueryMonthlyCalendar(r.Context(), year, month, projections.CalendarDeps{
		EventStore: stores.EventStore,
		ClubStore:  stores.ClubStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	respondData(w, http.StatusOK, days)
}

// handleCalendarICS handles GET /calendar.ics, an iCalendar feed of
// accepted events that calendar clients can subscribe to.
func handleCalendarICS(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if _, ok := requireSession(w, r); !ok {
		return
	}

	payload, err := projections.QueryCalendarICS(r.Context(), projections.ExportICSDeps{
		EventStore: stores.EventStore,
		Now:        timeNow,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="saac-events.ics"`)
	w.Write([]byte(payload))
}
