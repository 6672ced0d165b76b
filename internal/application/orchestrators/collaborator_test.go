package orchestrators

import (
	"context"
	"errors"
	"testing"

	"github.com/J11tendra/saac-event-management/internal/domain/identity"
)

func collabDeps(events *mockEventStore, links *mockCollaboratorStore) CollaboratorDeps {
	clubs := newMockClubStore()
	clubs.add(identity.Club{ID: "c1", Name: "chess", Email: "chess@flame.edu.in", CreatedAt: fixedTime})
	clubs.add(identity.Club{ID: "c2", Name: "debate", Email: "debate@flame.edu.in", CreatedAt: fixedTime})
	return CollaboratorDeps{
		EventStore:        events,
		ClubStore:         clubs,
		CollaboratorStore: links,
		GenerateID:        newIDGen("link"),
		Now:               fixedNow,
	}
}

// TestExecuteAddCollaborator_Valid tests the owning club linking another.
func TestExecuteAddCollaborator_Valid(t *testing.T) {
	events := newMockEventStore()
	seedPendingEvent(events)
	links := newMockCollaboratorStore()

	c, err := ExecuteAddCollaborator(context.Background(), CollaboratorInput{
		EventID: "e1", ClubID: "c2",
		ActorRole: identity.RoleClub, ActorClubID: "c1",
	}, collabDeps(events, links))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.EventID != "e1" || c.ClubID != "c2" {
		t.Errorf("unexpected link: %+v", c)
	}
	if len(links.links) != 1 {
		t.Errorf("expected 1 link, got %d", len(links.links))
	}
}

// TestExecuteAddCollaborator_OwnerAsCollaborator is a conflict.
func TestExecuteAddCollaborator_OwnerAsCollaborator(t *testing.T) {
	events := newMockEventStore()
	seedPendingEvent(events)

	_, err := ExecuteAddCollaborator(context.Background(), CollaboratorInput{
		EventID: "e1", ClubID: "c1",
		ActorRole: identity.RoleClub, ActorClubID: "c1",
	}, collabDeps(events, newMockCollaboratorStore()))
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

// TestExecuteAddCollaborator_Duplicate tests the unique pair.
func TestExecuteAddCollaborator_Duplicate(t *testing.T) {
	events := newMockEventStore()
	seedPendingEvent(events)
	links := newMockCollaboratorStore()
	deps := collabDeps(events, links)
	input := CollaboratorInput{
		EventID: "e1", ClubID: "c2",
		ActorRole: identity.RoleAdmin,
	}

	if _, err := ExecuteAddCollaborator(context.Background(), input, deps); err != nil {
		t.Fatalf("first link failed: %v", err)
	}
	_, err := ExecuteAddCollaborator(context.Background(), input, deps)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

// TestExecuteAddCollaborator_UnknownClub tests the not-found path.
func TestExecuteAddCollaborator_UnknownClub(t *testing.T) {
	events := newMockEventStore()
	seedPendingEvent(events)

	_, err := ExecuteAddCollaborator(context.Background(), CollaboratorInput{
		EventID: "e1", ClubID: "ghost",
		ActorRole: identity.RoleAdmin,
	}, collabDeps(events, newMockCollaboratorStore()))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// TestExecuteAddCollaborator_ForeignClubForbidden tests access control.
func TestExecuteAddCollaborator_ForeignClubForbidden(t *testing.T) {
	events := newMockEventStore()
	seedPendingEvent(events)

	_, err := ExecuteAddCollaborator(context.Background(), CollaboratorInput{
		EventID: "e1", ClubID: "c2",
		ActorRole: identity.RoleClub, ActorClubID: "c2",
	}, collabDeps(events, newMockCollaboratorStore()))
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

// TestExecuteRemoveCollaborator tests unlinking, including the no-op case.
func TestExecuteRemoveCollaborator(t *testing.T) {
	events := newMockEventStore()
	seedPendingEvent(events)
	links := newMockCollaboratorStore()
	deps := collabDeps(events, links)

	if _, err := ExecuteAddCollaborator(context.Background(), CollaboratorInput{
		EventID: "e1", ClubID: "c2", ActorRole: identity.RoleAdmin,
	}, deps); err != nil {
		t.Fatalf("link failed: %v", err)
	}

	if err := ExecuteRemoveCollaborator(context.Background(), CollaboratorInput{
		EventID: "e1", ClubID: "c2", ActorRole: identity.RoleAdmin,
	}, deps); err != nil {
		t.Fatalf("unlink failed: %v", err)
	}
	if len(links.links) != 0 {
		t.Errorf("expected 0 links, got %d", len(links.links))
	}

	// Removing an absent link is a no-op.
	if err := ExecuteRemoveCollaborator(context.Background(), CollaboratorInput{
		EventID: "e1", ClubID: "c2", ActorRole: identity.RoleAdmin,
	}, deps); err != nil {
		t.Fatalf("unexpected error on repeat unlink: %v", err)
	}
}
