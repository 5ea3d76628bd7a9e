package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/classpulse/api/internal/core/domain"
	"github.com/classpulse/api/internal/core/ports"
	"github.com/google/uuid"
)

type questionService struct {
	repo      ports.QuestionRepository
	publisher ports.EventPublisher
}

func NewQuestionService(repo ports.QuestionRepository, publisher ports.EventPublisher) ports.QuestionService {
	return &questionService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *questionService) Create(ctx context.Context, input ports.CreateQuestionInput) (*domain.Question, error) {
	if input.Text == "" {
		return nil, errors.New("question text is required")
	}
	if input.Type != domain.QuestionTypeYesNo && input.Type != domain.QuestionTypeShortAnswer {
		return nil, errors.New("unknown question type")
	}
	if input.Audience != domain.AudienceAll && input.Audience != domain.AudienceRoster {
		return nil, errors.New("unknown audience")
	}

	question := &domain.Question{
		ID:             uuid.New(),
		Text:           input.Text,
		Type:           input.Type,
		Audience:       input.Audience,
		AllowAnonymous: input.AllowAnonymous,
		RequireName:    input.RequireName,
		CreatedAt:      time.Now(),
		Responses:      []domain.Response{},
	}

	if err := s.repo.Save(ctx, question); err != nil {
		return nil, err
	}

	// The question is committed at this point. Publish failures are
	// logged and swallowed: dashboards catch up on their next snapshot.
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(publishCtx, ports.TopicQuestions, ports.EventQuestionCreated, question); err != nil {
		log.Printf("failed to publish question-created for %s: %v", question.ID, err)
	}

	return question, nil
}

func (s *questionService) GetQuestion(ctx context.Context, id string) (*domain.Question, error) {
	questionID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidQuestionID
	}

	return s.repo.GetByID(ctx, questionID)
}

func (s *questionService) ListQuestions(ctx context.Context) ([]*domain.Question, error) {
	return s.repo.GetAll(ctx)
}
