package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Alert is a Schengen allowance warning for one user on one day.
// Threshold is the alert level that was crossed (e.g. 7 means "7 days or fewer left").
type Alert struct {
	UserID    uuid.UUID
	Email     string
	Threshold int
	Date      time.Time
	Status    ComplianceResult
}

// AlertReport summarises one sweep over all users.
type AlertReport struct {
	Date           time.Time
	UsersProcessed int
	UsersSkipped   int
	AlertsSent     int
	Duplicates     int
	Errors         int
}

// AlertKey identifies one alert for de-duplication: a user is told about a
// given threshold at most once per day.
func AlertKey(userID uuid.UUID, threshold int, day time.Time) string {
	return fmt.Sprintf("alert:%s:%d:%s", userID, threshold, FormatDate(day))
}
