package admin

import (
	"context"

	domain "github.com/J11tendra/saac-event-management/internal/domain/identity"
)

// Store persists Admin state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (domain.Admin, error)
	Insert(ctx context.Context, value domain.Admin) error
}
