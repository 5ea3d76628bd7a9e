package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/classpulse/api/internal/core/domain"
	"github.com/classpulse/api/internal/core/ports"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type responseRepository struct {
	db *sql.DB
}

func NewResponseRepository(db *sql.DB) ports.ResponseRepository {
	return &responseRepository{
		db: db,
	}
}

// Save inserts the response in a single statement. Duplicate detection is
// delegated entirely to the partial unique index on
// (question_id, submitter_key): a check-then-insert here would race with
// concurrent submissions from the same submitter.
func (r *responseRepository) Save(ctx context.Context, response *domain.Response) error {
	query := `
		INSERT INTO responses (id, question_id, answer, submitter_key, display_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING submitted_at
	`
	err := r.db.QueryRowContext(ctx, query,
		response.ID, response.QuestionID, response.Answer,
		response.SubmitterKey, response.DisplayName,
	).Scan(&response.SubmittedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code.Name() {
			case "unique_violation":
				return domain.ErrAlreadyResponded
			case "foreign_key_violation":
				return domain.ErrQuestionNotFound
			}
		}
		return fmt.Errorf("failed to save response: %w", err)
	}
	return nil
}

func (r *responseRepository) ListForQuestion(ctx context.Context, questionID uuid.UUID) ([]domain.Response, error) {
	query := `
		SELECT id, question_id, answer, submitter_key, display_name, submitted_at
		FROM responses
		WHERE question_id = $1
		ORDER BY submitted_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	defer rows.Close()

	return collectResponses(rows)
}

func (r *responseRepository) ListAll(ctx context.Context) ([]domain.Response, error) {
	query := `
		SELECT id, question_id, answer, submitter_key, display_name, submitted_at
		FROM responses
		ORDER BY question_id, submitted_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list all responses: %w", err)
	}
	defer rows.Close()

	return collectResponses(rows)
}

func collectResponses(rows *sql.Rows) ([]domain.Response, error) {
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

func scanResponse(rows *sql.Rows) (domain.Response, error) {
	var response domain.Response
	var submitterKey sql.NullString
	var displayName sql.NullString
	if err := rows.Scan(
		&response.ID, &response.QuestionID, &response.Answer,
		&submitterKey, &displayName, &response.SubmittedAt,
	); err != nil {
		return domain.Response{}, fmt.Errorf("failed to scan response: %w", err)
	}
	if submitterKey.Valid {
		response.SubmitterKey = &submitterKey.String
	}
	response.DisplayName = displayName.String
	return response, nil
}
