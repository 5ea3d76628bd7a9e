package services

import (
	"context"
	"fmt"

	"github.com/classpulse/api/internal/core/domain"
	"github.com/classpulse/api/internal/core/ports"
)

// searchLimit caps roster search results, matching the picker's page size.
const searchLimit = 100

type studentService struct {
	repo ports.StudentRepository
}

func NewStudentService(repo ports.StudentRepository) ports.StudentService {
	return &studentService{
		repo: repo,
	}
}

func (s *studentService) Search(ctx context.Context, query string) ([]domain.Student, error) {
	students, err := s.repo.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search students: %w", err)
	}
	return students, nil
}
