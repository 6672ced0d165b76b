package web

import (
	"net/http"

	"github.com/J11tendra/saac-event-management/internal/application/orchestrators"
)

// handleReviews handles GET (thread) and POST (comment) for /api/events/reviews.
func handleReviews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		if _, ok := requireSession(w, r); !ok {
			return
		}
		eventID := r.URL.Query().Get("event_id")
		if eventID == "" {
			respondError(w, http.StatusBadRequest, "event_id is required")
			return
		}
		reviews, err := stores.ReviewStore.ListByEventID(ctx, eventID)
		if err != nil {
			internalError(w, err)
			return
		}
		respondData(w, http.StatusOK, reviews)
		return
	}

	if r.Method == "POST" {
		sess, ok := requireSession(w, r)
		if !ok {
			return
		}

		var input struct {
			EventID string `json:"EventID"`
			Comment string `json:"Comment"`
		}
		if err := strictDecode(r, &input); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON")
			return
		}

		orchInput := orchestrators.AddReviewInput{
			EventID: input.EventID,
			Comment: input.Comment,
		}
		if sess.IsAdmin() {
			orchInput.AdminEmail = sess.Email
		} else {
			orchInput.ClubID = sess.ClubID
		}

		rev, err := orchestrators.ExecuteAddReview(ctx, orchInput, orchestrators.AddReviewDeps{
			EventStore:  stores.EventStore,
			ReviewStore: stores.ReviewStore,
			AdminStore:  stores.AdminStore,
			GenerateID:  generateID,
			Now:         timeNow,
		})
		if err != nil {
			respondTaxonomyError(w, err)
			return
		}

		respondData(w, http.StatusCreated, rev)
		return
	}

	respondError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// handleCollaborators handles GET/POST/DELETE for /api/events/collaborators.
// Only the owning club or an admin may link or unlink co-hosting clubs.
func handleCollaborators(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		if _, ok := requireSession(w, r); !ok {
			return
		}
		eventID := r.URL.Query().Get("event_id")
		if eventID == "" {
			respondError(w, http.StatusBadRequest, "event_id is required")
			return
		}
		collabs, err := stores.CollaboratorStore.ListByEventID(ctx, eventID)
		if err != nil {
			internalError(w, err)
			return
		}
		respondData(w, http.StatusOK, collabs)
		return
	}

	if r.Method == "POST" || r.Method == "DELETE" {
		sess, ok := requireSession(w, r)
		if !ok {
			return
		}

		var input struct {
			EventID string `json:"EventID"`
			ClubID  string `json:"ClubID"`
		}
		if err := strictDecode(r, &input); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON")
			return
		}

		orchInput := orchestrators.CollaboratorInput{
			EventID:     input.EventID,
			ClubID:      input.ClubID,
			ActorRole:   sess.Role,
			ActorClubID: sess.ClubID,
		}
		deps := orchestrators.CollaboratorDeps{
			EventStore:        stores.EventStore,
			ClubStore:         stores.ClubStore,
			CollaboratorStore: stores.CollaboratorStore,
			GenerateID:        generateID,
			Now:               timeNow,
		}

		if r.Method == "POST" {
			collab, err := orchestrators.ExecuteAddCollaborator(ctx, orchInput, deps)
			if err != nil {
				respondTaxonomyError(w, err)
				return
			}
			respondData(w, http.StatusCreated, collab)
			return
		}

		if err := orchestrators.ExecuteRemoveCollaborator(ctx, orchInput, deps); err != nil {
			respondTaxonomyError(w, err)
			return
		}
		respondData(w, http.StatusOK, nil)
		return
	}

	respondError(w, http.StatusMethodNotAllowed, "method not allowed")
}
