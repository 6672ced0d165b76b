package web

import (
	"net/http"

	"github.com/J11tendra/saac-event-management/internal/application/orchestrators"
	"github.com/J11tendra/saac-event-management/internal/application/projections"
)

// slotInput is one candidate slot as posted by the submission form.
type slotInput struct {
	Date      string `json:"Date"`
	StartTime string `json:"StartTime"`
	EndTime   string `json:"EndTime"`
}

func toPreferenceInputs(slots []slotInput) []orchestrators.DatePreferenceInput {
	prefs := make([]orchestrators.DatePreferenceInput, 0, len(slots))
	for _, s := range slots {
		prefs = append(prefs, orchestrators.DatePreferenceInput{
			Date:      s.Date,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}
	return prefs
}

// eventPayload is an EventView plus the rendered Markdown description.
type eventPayload struct {
	projections.EventView
	DescriptionHTML string
}

func toEventPayloads(views []projections.EventView) []eventPayload {
	payloads := make([]eventPayload, 0, len(views))
	for _, v := range views {
		payloads = append(payloads, eventPayload{
			EventView:       v,
			DescriptionHTML: renderMarkdown(v.Event.Description),
		})
	}
	return payloads
}

func eventViewDeps() projections.GetEventsDeps {
	return projections.GetEventsDeps{
		EventStore:        stores.EventStore,
		BudgetStore:       stores.BudgetStore,
		ReviewStore:       stores.ReviewStore,
		CollaboratorStore: stores.CollaboratorStore,
	}
}

// handleEvents handles GET (list) and POST (submit) for /api/events.
// Clubs see their own and co-hosted events; admins see everything.
// An optional ?id= narrows the list to one event.
func handleEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		sess, ok := requireSession(w, r)
		if !ok {
			return
		}

		var views []projections.EventView
		var err error
		if sess.IsAdmin() {
			views, err = projections.QueryAllEvents(ctx, eventViewDeps())
		} else {
			views, err = projections.QueryClubEvents(ctx, sess.ClubID, eventViewDeps())
		}
		if err != nil {
			internalError(w, err)
			return
		}

		if id := r.URL.Query().Get("id"); id != "" {
			for _, v := range views {
				if v.Event.ID == id {
					respondData(w, http.StatusOK, toEventPayloads([]projections.EventView{v})[0])
					return
				}
			}
			respondError(w, http.StatusNotFound, "not found")
			return
		}

		respondData(w, http.StatusOK, toEventPayloads(views))
		return
	}

	if r.Method == "POST" {
		sess, ok := requireClub(w, r)
		if !ok {
			return
		}

		var input struct {
			Name            string      `json:"Name"`
			Description     string      `json:"Description"`
			DatePreferences []slotInput `json:"DatePreferences"`
			BudgetAmount    string      `json:"BudgetAmount"`
			BudgetPurpose   string      `json:"BudgetPurpose"`
		}
		if err := strictDecode(r, &input); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON")
			return
		}

		e, err := orchestrators.ExecuteCreateEvent(ctx, orchestrators.CreateEventInput{
			ClubID:          sess.ClubID,
			Name:            input.Name,
			Description:     input.Description,
			DatePreferences: toPreferenceInputs(input.DatePreferences),
			BudgetAmount:    input.BudgetAmount,
			BudgetPurpose:   input.BudgetPurpose,
		}, orchestrators.CreateEventDeps{
			EventStore: stores.EventStore,
			GenerateID: generateID,
			Now:        timeNow,
		})
		if err != nil {
			respondTaxonomyError(w, err)
			return
		}

		respondData(w, http.StatusCreated, e)
		return
	}

	respondError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// handleEventPreferences handles PUT /api/events/preferences.
// A club replaces the slots on its own pending event; an admin may propose
// alternative slots on any pending event.
func handleEventPreferences(w http.ResponseWriter, r *http.Request) {
	if r.Method != "PUT" {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var input struct {
		EventID         string      `json:"EventID"`
		DatePreferences []slotInput `json:"DatePreferences"`
	}
	if err := strictDecode(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	prefs, err := orchestrators.ExecuteReplaceDatePreferences(r.Context(), orchestrators.ReplaceDatePreferencesInput{
		EventID:         input.EventID,
		DatePreferences: toPreferenceInputs(input.DatePreferences),
		ActorRole:       sess.Role,
		ActorClubID:     sess.ClubID,
	}, orchestrators.ReplaceDatePreferencesDeps{
		EventStore: stores.EventStore,
		GenerateID: generateID,
		Now:        timeNow,
	})
	if err != nil {
		respondTaxonomyError(w, err)
		return
	}

	respondData(w, http.StatusOK, prefs)
}

// handleEventBudget handles POST /api/events/budget, attaching a funding
// ask to an event submitted without one.
func handleEventBudget(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var input struct {
		EventID string `json:"EventID"`
		Amount  string `json:"Amount"`
		Purpose string `json:"Purpose"`
	}
	if err := strictDecode(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req, err := orchestrators.ExecuteAddBudgetRequest(r.Context(), orchestrators.AddBudgetRequestInput{
		EventID:     input.EventID,
		Amount:      input.Amount,
		Purpose:     input.Purpose,
		ActorRole:   sess.Role,
		ActorClubID: sess.ClubID,
	}, orchestrators.AddBudgetRequestDeps{
		EventStore:  stores.EventStore,
		BudgetStore: stores.BudgetStore,
		Now:         timeNow,
	})
	if err != nil {
		respondTaxonomyError(w, err)
		return
	}

	respondData(w, http.StatusCreated, req)
}
