package budget

import (
	"context"

	domain "github.com/J11tendra/saac-event-management/internal/domain/budget"
)

// Store persists budget Request state.
type Store interface {
	GetByEventID(ctx context.Context, eventID string) (domain.Request, error)
	Insert(ctx context.Context, value domain.Request) error
	SaveApproval(ctx context.Context, value domain.Request) error
}
