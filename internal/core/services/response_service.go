package services

import (
	"context"
	"log"
	"time"

	"github.com/classpulse/api/internal/core/domain"
	"github.com/classpulse/api/internal/core/ports"
	"github.com/google/uuid"
)

// publishTimeout bounds the fire-and-forget notification publish so a slow
// bus never delays the reply to the submitting caller.
const publishTimeout = 2 * time.Second

type responseService struct {
	questionRepo ports.QuestionRepository
	responseRepo ports.ResponseRepository
	resolver     ports.IdentityResolver
	publisher    ports.EventPublisher
}

func NewResponseService(questionRepo ports.QuestionRepository, responseRepo ports.ResponseRepository, resolver ports.IdentityResolver, publisher ports.EventPublisher) ports.ResponseService {
	return &responseService{
		questionRepo: questionRepo,
		responseRepo: responseRepo,
		resolver:     resolver,
		publisher:    publisher,
	}
}

func (s *responseService) Submit(ctx context.Context, input ports.SubmitResponseInput) (*domain.Response, error) {
	question, err := s.questionRepo.GetByID(ctx, input.QuestionID)
	if err != nil {
		return nil, err
	}

	if question.Type == domain.QuestionTypeYesNo && input.Answer != "Yes" && input.Answer != "No" {
		return nil, domain.ErrInvalidAnswer
	}

	submitterKey, displayName, err := s.resolver.Resolve(ctx, question, input.Identity)
	if err != nil {
		return nil, err
	}

	response := &domain.Response{
		ID:           uuid.New(),
		QuestionID:   input.QuestionID,
		Answer:       input.Answer,
		SubmitterKey: submitterKey,
		DisplayName:  displayName,
	}

	// The insert itself enforces uniqueness; there is no read-then-write
	// here. Concurrent duplicates lose at the storage constraint and
	// come back as domain.ErrAlreadyResponded.
	if err := s.responseRepo.Save(ctx, response); err != nil {
		return nil, err
	}

	// Publish only after the write is durable, so subscribers never hear
	// about a response that failed to persist. Failure is logged and
	// swallowed: delivery is best-effort.
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(publishCtx, ports.ResponseTopic(input.QuestionID), ports.EventResponseCreated, response); err != nil {
		log.Printf("failed to publish response-created for %s: %v", response.ID, err)
	}

	return response, nil
}

func (s *responseService) ListForQuestion(ctx context.Context, questionID uuid.UUID) ([]domain.Response, error) {
	return s.responseRepo.ListForQuestion(ctx, questionID)
}
