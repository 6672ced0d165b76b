package collaborator

import (
	"context"

	domain "github.com/J11tendra/saac-event-management/internal/domain/collaborator"
)

// Store persists Collaborator links between events and co-hosting clubs.
type Store interface {
	Insert(ctx context.Context, value domain.Collaborator) error
	Delete(ctx context.Context, eventID, clubID string) error
	ListByEventID(ctx context.Context, eventID string) ([]domain.Collaborator, error)
	ListEventIDsByClub(ctx context.Context, clubID string) ([]string, error)
}
