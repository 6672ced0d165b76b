package reimbursement

import (
	"context"

	domain "github.com/J11tendra/saac-event-management/internal/domain/reimbursement"
)

// Store persists Treasurer and Reimbursement state.
type Store interface {
	GetTreasurerByClubID(ctx context.Context, clubID string) (domain.Treasurer, error)
	SaveTreasurer(ctx context.Context, value domain.Treasurer) error
	CreateReimbursement(ctx context.Context, value domain.Reimbursement) error
	ListByTreasurer(ctx context.Context, treasurerID string) ([]domain.Reimbursement, error)
}
