package club

import (
	"context"

	domain "github.com/J11tendra/saac-event-management/internal/domain/identity"
)

// Store persists Club state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Club, error)
	GetByEmail(ctx context.Context, email string) (domain.Club, error)
	Insert(ctx context.Context, value domain.Club) error
	List(ctx context.Context) ([]domain.Club, error)
}
