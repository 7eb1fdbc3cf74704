package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/crm-backend/internal/domain/entities"
	"github.com/johnquangdev/crm-backend/internal/domain/repositories"
	"github.com/johnquangdev/crm-backend/internal/infrastructure/mail"
	"github.com/johnquangdev/crm-backend/pkg/metrics"
)

// Action identifies which lifecycle event a notification describes
type Action string

const (
	ActionCreated   Action = "created"
	ActionUpdated   Action = "updated"
	ActionCancelled Action = "cancelled"
)

// timeLayout is the format used for meeting times in notification bodies
const timeLayout = "02 Jan 2006, 03:04 PM"

// Dispatcher composes and sends meeting notification emails to the
// participants that have an email address on file. Participants with a user
// account that disabled email notifications are skipped. Delivery failures
// are logged and counted but never surfaced to the caller: a broken relay
// must not fail the meeting mutation that triggered it.
type Dispatcher struct {
	sender mail.Sender
	users  repositories.UserRepository
	from   string
	logger *zap.Logger
}

// NewDispatcher creates a new notification dispatcher
func NewDispatcher(sender mail.Sender, users repositories.UserRepository, from string, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		users:  users,
		from:   from,
		logger: logger,
	}
}

// Dispatch sends a notification for the given meeting event. previousTime is
// only consulted for ActionCreated: when set, the body announces a reschedule
// from that time instead of a fresh booking.
func (d *Dispatcher) Dispatch(ctx context.Context, meeting *entities.Meeting, action Action, previousTime *time.Time) {
	recipients := d.filterOptedOut(ctx, meeting.RecipientEmails())
	if len(recipients) == 0 {
		d.logger.Debug("notification.skip: no recipients", zap.Uint("meeting_id", meeting.ID))
		return
	}

	subject, body := Compose(meeting, action, previousTime)

	msg := &mail.Message{
		Subject:    subject,
		Body:       body,
		From:       d.from,
		Recipients: recipients,
	}

	if err := d.sender.Send(ctx, msg); err != nil {
		metrics.NotificationsFailed.Inc()
		d.logger.Warn("notification.send failed",
			zap.Uint("meeting_id", meeting.ID),
			zap.String("action", string(action)),
			zap.Error(err),
		)
		return
	}

	metrics.NotificationsSent.Inc()
	d.logger.Info("notification.sent",
		zap.Uint("meeting_id", meeting.ID),
		zap.String("action", string(action)),
		zap.Int("recipients", len(recipients)),
	)
}

// filterOptedOut drops addresses whose user account disabled email
// notifications. Contacts without an account are external and always kept.
func (d *Dispatcher) filterOptedOut(ctx context.Context, emails []string) []string {
	kept := make([]string, 0, len(emails))
	for _, email := range emails {
		user, err := d.users.FindByEmail(ctx, email)
		if err != nil {
			if !errors.Is(err, entities.ErrUserNotFound) {
				d.logger.Warn("notification.preference lookup failed", zap.String("email", email), zap.Error(err))
			}
			kept = append(kept, email)
			continue
		}
		if !user.WantsEmail() {
			d.logger.Debug("notification.skip: opted out", zap.String("email", email))
			continue
		}
		kept = append(kept, email)
	}
	return kept
}

// Compose builds the subject and body for a meeting notification
func Compose(meeting *entities.Meeting, action Action, previousTime *time.Time) (string, string) {
	when := meeting.DateTime.Local().Format(timeLayout)

	var subject, body string
	switch action {
	case ActionCreated:
		subject = fmt.Sprintf("Meeting Created: %s", meeting.Title)
		if previousTime != nil {
			oldWhen := previousTime.Local().Format(timeLayout)
			body = fmt.Sprintf("Meeting '%s' rescheduled from %s to %s.", meeting.Title, oldWhen, when)
		} else {
			body = fmt.Sprintf("Meeting '%s' scheduled for %s.", meeting.Title, when)
		}
	case ActionUpdated:
		subject = fmt.Sprintf("Meeting Updated: %s", meeting.Title)
		body = fmt.Sprintf("Meeting '%s' updated. New time: %s.", meeting.Title, when)
	case ActionCancelled:
		subject = fmt.Sprintf("Meeting Cancelled: %s", meeting.Title)
		body = fmt.Sprintf("Meeting '%s' scheduled for %s has been cancelled.", meeting.Title, when)
	}

	if meeting.Location != "" {
		body += fmt.Sprintf(" Location: %s.", meeting.Location)
	}

	return subject, body
}
