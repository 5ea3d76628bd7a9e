package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/classpulse/api/internal/core/domain"
	"github.com/classpulse/api/internal/core/ports"
	"github.com/google/uuid"
)

type questionRepository struct {
	db *sql.DB
}

func NewQuestionRepository(db *sql.DB) ports.QuestionRepository {
	return &questionRepository{
		db: db,
	}
}

func (r *questionRepository) Save(ctx context.Context, question *domain.Question) error {
	query := `
		INSERT INTO questions (id, text, type, audience, allow_anonymous, require_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		question.ID, question.Text, question.Type, question.Audience,
		question.AllowAnonymous, question.RequireName, question.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert question: %w", err)
	}

	return nil
}

func (r *questionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	query := `
		SELECT id, text, type, audience, allow_anonymous, require_name, created_at
		FROM questions
		WHERE id = $1
	`

	var question domain.Question
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&question.ID, &question.Text, &question.Type, &question.Audience,
		&question.AllowAnonymous, &question.RequireName, &question.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	responses, err := r.fetchResponses(ctx, question.ID)
	if err != nil {
		return nil, err
	}
	question.Responses = responses

	return &question, nil
}

func (r *questionRepository) GetAll(ctx context.Context) ([]*domain.Question, error) {
	query := `
		SELECT id, text, type, audience, allow_anonymous, require_name, created_at
		FROM questions
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all questions: %w", err)
	}
	defer rows.Close()

	var questions []*domain.Question
	for rows.Next() {
		var question domain.Question
		if err := rows.Scan(
			&question.ID, &question.Text, &question.Type, &question.Audience,
			&question.AllowAnonymous, &question.RequireName, &question.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}

		responses, err := r.fetchResponses(ctx, question.ID)
		if err != nil {
			return nil, err
		}
		question.Responses = responses

		questions = append(questions, &question)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}
	return questions, nil
}

func (r *questionRepository) fetchResponses(ctx context.Context, questionID uuid.UUID) ([]domain.Response, error) {
	query := `
		SELECT id, question_id, answer, submitter_key, display_name, submitted_at
		FROM responses
		WHERE question_id = $1
		ORDER BY submitted_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get responses: %w", err)
	}
	defer rows.Close()

	responses := []domain.Response{}
	for rows.Next() {
		response, err := scanResponse(rows)
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating responses: %w", err)
	}
	return responses, nil
}
