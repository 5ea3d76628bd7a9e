package ports

import (
	"context"

	"github.com/classpulse/api/internal/core/domain"
	"github.com/google/uuid"
)

type ResponseRepository interface {
	// Save persists the response. The storage layer's uniqueness
	// constraint on (question_id, submitter_key) is the authoritative
	// duplicate detector: a violation surfaces as
	// domain.ErrAlreadyResponded, a broken question reference as
	// domain.ErrQuestionNotFound.
	Save(ctx context.Context, response *domain.Response) error
	ListForQuestion(ctx context.Context, questionID uuid.UUID) ([]domain.Response, error)
	ListAll(ctx context.Context) ([]domain.Response, error)
}

// SubmissionIdentity carries the raw identity material of a submission
// request. Exactly one of Email, StudentID or Anonymous is expected; the
// identity resolver decides which one the question's configuration accepts.
type SubmissionIdentity struct {
	Email     string
	StudentID *uuid.UUID
	Anonymous bool
	Name      string
}

type SubmitResponseInput struct {
	QuestionID uuid.UUID
	Answer     string
	Identity   SubmissionIdentity
}

type ResponseService interface {
	Submit(ctx context.Context, input SubmitResponseInput) (*domain.Response, error)
	ListForQuestion(ctx context.Context, questionID uuid.UUID) ([]domain.Response, error)
}

// IdentityResolver produces the canonical submitter key for a submission,
// or rejects it. A nil key denotes an anonymous submission.
type IdentityResolver interface {
	Resolve(ctx context.Context, question *domain.Question, identity SubmissionIdentity) (key *string, displayName string, err error)
}
