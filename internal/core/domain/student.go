package domain

import (
	"time"

	"github.com/google/uuid"
)

// Student is a roster entry, read-only reference data used to resolve
// display identities for restricted-roster questions.
type Student struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	USN       string    `json:"usn"`
	Section   string    `json:"section,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
