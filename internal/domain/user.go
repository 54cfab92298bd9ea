package domain

import (
	"time"

	"github.com/google/uuid"
)

// User owns a list of trips and receives compliance alerts at Email.
type User struct {
	ID        uuid.UUID
	Email     string
	CreatedAt time.Time
}
