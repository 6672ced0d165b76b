package event

import (
	"context"

	budgetdomain "github.com/J11tendra/saac-event-management/internal/domain/budget"
	domain "github.com/J11tendra/saac-event-management/internal/domain/event"
)

// Store persists Event state together with its date preferences.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Event, error)
	CreateWithRelated(ctx context.Context, value domain.Event, prefs []domain.DatePreference, req *budgetdomain.Request) error
	ReplacePreferences(ctx context.Context, eventID string, prefs []domain.DatePreference) error
	SaveDecision(ctx context.Context, value domain.Event) error
	ListByClub(ctx context.Context, clubID string) ([]domain.Event, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.Event, error)
	ListAll(ctx context.Context) ([]domain.Event, error)
	GetPreference(ctx context.Context, id string) (domain.DatePreference, error)
	ListPreferences(ctx context.Context, eventID string) ([]domain.DatePreference, error)
	ListAcceptedBetween(ctx context.Context, fromDate, toDate string) ([]AcceptedOccurrence, error)
}

// AcceptedOccurrence is the read model for calendar views: an accepted
// event joined with its accepted date preference and the owning club name.
type AcceptedOccurrence struct {
	EventID   string
	EventName string
	ClubName  string
	Date      string // YYYY-MM-DD
	StartTime string // HH:MM
	EndTime   string // HH:MM
}
