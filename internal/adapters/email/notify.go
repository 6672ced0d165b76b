package email

import (
	"fmt"
	"html"

	budgetdomain "github.com/J11tendra/saac-event-management/internal/domain/budget"
	"github.com/J11tendra/saac-event-management/internal/domain/event"
	"github.com/J11tendra/saac-event-management/internal/domain/identity"
)

// DecisionNotification builds the email sent to the owning club when an
// admin decides on an event. The From address is left empty so the sender's
// configured default applies.
func DecisionNotification(club identity.Club, e event.Event, pref *event.DatePreference, approved *budgetdomain.Request) SendRequest {
	name := html.EscapeString(e.Name)

	var subject, body string
	if e.IsAccepted() {
		subject = fmt.Sprintf("Event approved: %s", e.Name)
		body = fmt.Sprintf("<p>Your event <strong>%s</strong> has been approved.</p>", name)
		if pref != nil {
			body += fmt.Sprintf("<p>Scheduled for <strong>%s</strong>, %s&ndash;%s.</p>",
				html.EscapeString(pref.Date), html.EscapeString(pref.StartTime), html.EscapeString(pref.EndTime))
		}
		if approved != nil && approved.ApprovedAmount.Valid {
			body += fmt.Sprintf("<p>Approved budget: <strong>%s</strong>.</p>",
				approved.ApprovedAmount.Decimal.StringFixed(2))
			if approved.ApprovalComments != "" {
				body += fmt.Sprintf("<p>Budget comments: %s</p>", html.EscapeString(approved.ApprovalComments))
			}
		}
	} else {
		subject = fmt.Sprintf("Event rejected: %s", e.Name)
		body = fmt.Sprintf("<p>Your event <strong>%s</strong> has been rejected. "+
			"Check the review thread for details and feel free to resubmit.</p>", name)
	}

	return SendRequest{
		To:      []string{club.Email},
		Subject: subject,
		HTML:    body,
	}
}
