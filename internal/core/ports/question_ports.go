package ports

import (
	"context"

	"github.com/classpulse/api/internal/core/domain"
	"github.com/google/uuid"
)

type QuestionRepository interface {
	Save(ctx context.Context, question *domain.Question) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	GetAll(ctx context.Context) ([]*domain.Question, error)
}

type CreateQuestionInput struct {
	Text           string
	Type           domain.QuestionType
	Audience       domain.Audience
	AllowAnonymous bool
	RequireName    bool
}

type QuestionService interface {
	Create(ctx context.Context, input CreateQuestionInput) (*domain.Question, error)
	GetQuestion(ctx context.Context, id string) (*domain.Question, error)
	ListQuestions(ctx context.Context) ([]*domain.Question, error)
}
