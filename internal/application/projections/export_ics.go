package projections

import (
	"context"
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	storeevent "github.com/J11tendra/saac-event-management/internal/adapters/storage/event"
	"github.com/J11tendra/saac-event-management/internal/domain/event"
)

// icsWindowYears bounds the feed to a rolling window around now; clients
// refetch the feed, so far-past events only add weight.
const icsWindowYears = 1

// ExportICSEventStore defines the event store interface for the feed.
type ExportICSEventStore interface {
	ListAcceptedBetween(ctx context.Context, fromDate, toDate string) ([]storeevent.AcceptedOccurrence, error)
}

// ExportICSDeps holds dependencies for the iCalendar export.
type ExportICSDeps struct {
	EventStore ExportICSEventStore
	Now        func() time.Time
}

// QueryCalendarICS serializes accepted events as an iCalendar feed that
// calendar clients can subscribe to.
// POST: Returns a VCALENDAR payload with one VEVENT per accepted event
func QueryCalendarICS(ctx context.Context, deps ExportICSDeps) (string, error) {
	now := deps.Now()
	from := now.AddDate(-icsWindowYears, 0, 0).Format(event.DateLayout)
	to := now.AddDate(icsWindowYears, 0, 0).Format(event.DateLayout)

	occs, err := deps.EventStore.ListAcceptedBetween(ctx, from, to)
	if err != nil {
		return "", err
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//SAAC Event Management//EN")

	for _, o := range occs {
		start, err := time.Parse(event.DateLayout+" "+event.TimeLayout, o.Date+" "+o.StartTime)
		if err != nil {
			return "", fmt.Errorf("bad occurrence start for event %s: %w", o.EventID, err)
		}
		end, err := time.Parse(event.DateLayout+" "+event.TimeLayout, o.Date+" "+o.EndTime)
		if err != nil {
			return "", fmt.Errorf("bad occurrence end for event %s: %w", o.EventID, err)
		}

		ev := cal.AddEvent(o.EventID + "@saac")
		ev.SetDtStampTime(now)
		ev.SetStartAt(start)
		ev.SetEndAt(end)
		ev.SetSummary(o.EventName)
		ev.SetDescription("Hosted by " + o.ClubName)
	}

	return cal.Serialize(), nil
}
