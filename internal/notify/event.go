// Package notify delivers Schengen allowance alerts. Alerts are written to
// the structured log and, when a broker is configured, published to a
// RabbitMQ topic exchange for downstream mailers.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/pkordes/stay-planner/internal/domain"
	"github.com/pkordes/stay-planner/internal/service"
)

// Event is the JSON body published for one alert.
type Event struct {
	UserID        string `json:"user_id"`
	Email         string `json:"email"`
	Threshold     int    `json:"threshold"`
	Date          string `json:"date"`
	UsedDays      int    `json:"used_days"`
	RemainingDays int    `json:"remaining_days"`
	WindowStart   string `json:"window_start"`
	WindowEnd     string `json:"window_end"`
	Message       string `json:"message"`
}

// NewEvent flattens an alert into its wire form.
func NewEvent(a domain.Alert) Event {
	return Event{
		UserID:        a.UserID.String(),
		Email:         a.Email,
		Threshold:     a.Threshold,
		Date:          domain.FormatDate(a.Date),
		UsedDays:      a.Status.UsedDays,
		RemainingDays: a.Status.RemainingDays,
		WindowStart:   domain.FormatDate(a.Status.WindowStart),
		WindowEnd:     domain.FormatDate(a.Status.WindowEnd),
		Message:       Message(a),
	}
}

// Message is the human-readable alert text.
func Message(a domain.Alert) string {
	if a.Status.RemainingDays == 0 {
		return fmt.Sprintf("You have used all 90 Schengen days (%d days in the window %s to %s). Leave the Schengen area or you will overstay.",
			a.Status.UsedDays, domain.FormatDate(a.Status.WindowStart), domain.FormatDate(a.Status.WindowEnd))
	}
	return fmt.Sprintf("Only %d Schengen day(s) left as of %s (%d of 90 used).",
		a.Status.RemainingDays, domain.FormatDate(a.Date), a.Status.UsedDays)
}

// RoutingKey is the topic key for an alert, e.g. "schengen.alert.7".
func RoutingKey(a domain.Alert) string {
	return fmt.Sprintf("schengen.alert.%d", a.Threshold)
}

// Multi delivers every alert to each notifier in order. All notifiers are
// attempted; their errors are joined.
type Multi []service.Notifier

func (m Multi) Notify(ctx context.Context, a domain.Alert) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, a); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
