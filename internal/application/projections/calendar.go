package projections

import (
	"context"
	"fmt"
	"sort"
	"time"

	storeevent "github.com/J11tendra/saac-event-management/internal/adapters/storage/event"
	"github.com/J11tendra/saac-event-management/internal/domain/event"
	"github.com/J11tendra/saac-event-management/internal/domain/identity"
)

// CalendarEventStore defines the event store interface for the calendar.
type CalendarEventStore interface {
	ListAll(ctx context.Context) ([]event.Event, error)
	ListPreferences(ctx context.Context, eventID string) ([]event.DatePreference, error)
	ListAcceptedBetween(ctx context.Context, fromDate, toDate string) ([]storeevent.AcceptedOccurrence, error)
}

// CalendarClubStore resolves club display names.
type CalendarClubStore interface {
	List(ctx context.Context) ([]identity.Club, error)
}

// CalendarDeps holds dependencies for the monthly calendar projection.
type CalendarDeps struct {
	EventStore CalendarEventStore
	ClubStore  CalendarClubStore
}

// CalendarEntry is one event occurrence on a calendar day. Accepted events
// appear once on their accepted date; pending events appear on every
// proposed date so reviewers can see contention at a glance.
type CalendarEntry struct {
	EventID   string
	EventName string
	ClubName  string
	Status    string
	StartTime string
	EndTime   string
}

// CalendarDay groups the entries of one date.
type CalendarDay struct {
	Date    string // YYYY-MM-DD
	Entries []CalendarEntry
}

// QueryMonthlyCalendar builds the admin month view.
// PRE: month in 1..12
// POST: Days with at least one entry, ascending by date
func QueryMonthlyCalendar(ctx context.Context, year int, month time.Month, deps CalendarDeps) ([]CalendarDay, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("month out of range: %d", month)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	fromDate := first.Format(event.DateLayout)
	toDate := last.Format(event.DateLayout)

	byDate := make(map[string][]CalendarEntry)

	accepted, err := deps.EventStore.ListAcceptedBetween(ctx, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	for _, o := range accepted {
		byDate[o.Date] = append(byDate[o.Date], CalendarEntry{
			EventID:   o.EventID,
			EventName: o.EventName,
			ClubName:  o.ClubName,
			Status:    event.StatusAccepted,
			StartTime: o.StartTime,
			EndTime:   o.EndTime,
		})
	}

	clubNames, err := clubNameIndex(ctx, deps.ClubStore)
	if err != nil {
		return nil, err
	}

	all, err := deps.EventStore.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range all {
		if !e.IsPending() {
			continue
		}
		prefs, err := deps.EventStore.ListPreferences(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		for _, p := range prefs {
			if p.Date < fromDate || p.Date > toDate {
				continue
			}
			byDate[p.Date] = append(byDate[p.Date], CalendarEntry{
				EventID:   e.ID,
				EventName: e.Name,
				ClubName:  clubNames[e.ClubID],
				Status:    event.StatusPending,
				StartTime: p.StartTime,
				EndTime:   p.EndTime,
			})
		}
	}

	days := make([]CalendarDay, 0, len(byDate))
	for date, entries := range byDate {
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].StartTime != entries[j].StartTime {
				return entries[i].StartTime < entries[j].StartTime
			}
			return entries[i].EventID < entries[j].EventID
		})
		days = append(days, CalendarDay{Date: date, Entries: entries})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days, nil
}

// clubNameIndex maps club IDs to display names.
func clubNameIndex(ctx context.Context, store CalendarClubStore) (map[string]string, error) {
	clubs, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(clubs))
	for _, c := range clubs {
		names[c.ID] = c.Name
	}
	return names, nil
}
