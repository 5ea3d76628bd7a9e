package domain

import (
	"time"

	"github.com/google/uuid"
)

// Response records one submission. SubmitterKey is nil only for anonymous
// submissions, which are exempt from the one-response-per-submitter rule.
type Response struct {
	ID           uuid.UUID `json:"id"`
	QuestionID   uuid.UUID `json:"question_id"`
	Answer       string    `json:"answer"`
	SubmitterKey *string   `json:"submitter_key,omitempty"`
	DisplayName  string    `json:"display_name,omitempty"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

func (r Response) Anonymous() bool {
	return r.SubmitterKey == nil
}
