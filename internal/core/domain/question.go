package domain

import (
	"time"

	"github.com/google/uuid"
)

type QuestionType string

const (
	QuestionTypeYesNo       QuestionType = "yes-no"
	QuestionTypeShortAnswer QuestionType = "short-answer"
)

type Audience string

const (
	AudienceAll    Audience = "all"
	AudienceRoster Audience = "restricted-roster"
)

// Question is immutable after creation: no update or delete path exists.
type Question struct {
	ID             uuid.UUID    `json:"id"`
	Text           string       `json:"text"`
	Type           QuestionType `json:"type"`
	Audience       Audience     `json:"audience"`
	AllowAnonymous bool         `json:"allow_anonymous"`
	RequireName    bool         `json:"require_name"`
	CreatedAt      time.Time    `json:"created_at"`
	Responses      []Response   `json:"responses"`
}

// Tally holds derived counts for a question's response set.
type Tally struct {
	Yes   int64 `json:"yes"`
	No    int64 `json:"no"`
	Total int64 `json:"total"`
}
