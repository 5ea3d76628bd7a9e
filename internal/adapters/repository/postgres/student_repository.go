package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/classpulse/api/internal/core/domain"
	"github.com/classpulse/api/internal/core/ports"
	"github.com/google/uuid"
)

type studentRepository struct {
	db *sql.DB
}

func NewStudentRepository(db *sql.DB) ports.StudentRepository {
	return &studentRepository{
		db: db,
	}
}

func (r *studentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	query := `SELECT id, name, usn, section, created_at FROM students WHERE id = $1`
	student := &domain.Student{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&student.ID, &student.Name, &student.USN, &student.Section, &student.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return student, nil
}

func (r *studentRepository) Search(ctx context.Context, q string, limit int) ([]domain.Student, error) {
	query := `
		SELECT id, name, usn, section, created_at
		FROM students
		WHERE name ILIKE $1 OR usn ILIKE $1
		ORDER BY name ASC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, "%"+q+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search students: %w", err)
	}
	defer rows.Close()

	students := []domain.Student{}
	for rows.Next() {
		var student domain.Student
		if err := rows.Scan(&student.ID, &student.Name, &student.USN, &student.Section, &student.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating students: %w", err)
	}
	return students, nil
}

func (r *studentRepository) Create(ctx context.Context, student *domain.Student) error {
	query := `INSERT INTO students (id, name, usn, section) VALUES ($1, $2, $3, $4) RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, student.ID, student.Name, student.USN, student.Section).Scan(&student.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}
