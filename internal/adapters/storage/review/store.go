package review

import (
	"context"

	domain "github.com/J11tendra/saac-event-management/internal/domain/review"
)

// Store persists Review state. Reviews are append-only.
type Store interface {
	Insert(ctx context.Context, value domain.Review) error
	ListByEventID(ctx context.Context, eventID string) ([]domain.Review, error)
}
