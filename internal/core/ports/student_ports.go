package ports

import (
	"context"

	"github.com/classpulse/api/internal/core/domain"
	"github.com/google/uuid"
)

type StudentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error)
	// Search matches name or usn case-insensitively, ordered by name
	// ascending, capped at limit entries.
	Search(ctx context.Context, query string, limit int) ([]domain.Student, error)
	Create(ctx context.Context, student *domain.Student) error
}

type StudentService interface {
	Search(ctx context.Context, query string) ([]domain.Student, error)
}
