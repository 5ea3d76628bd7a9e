package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/classpulse/api/internal/core/domain"
	"github.com/classpulse/api/internal/core/ports"
	"github.com/google/uuid"
)

type exportService struct {
	questionRepo ports.QuestionRepository
	responseRepo ports.ResponseRepository
	studentRepo  ports.StudentRepository
}

func NewExportService(questionRepo ports.QuestionRepository, responseRepo ports.ResponseRepository, studentRepo ports.StudentRepository) ports.ExportService {
	return &exportService{
		questionRepo: questionRepo,
		responseRepo: responseRepo,
		studentRepo:  studentRepo,
	}
}

func (s *exportService) WriteCSV(ctx context.Context, w io.Writer, questionID uuid.UUID) error {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return err
	}

	responses, err := s.responseRepo.ListForQuestion(ctx, question.ID)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Name", "USN", "Answer", "Submitted At"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, response := range responses {
		name, usn := "Anonymous", "N/A"
		if !response.Anonymous() {
			name, usn = s.submitterColumns(ctx, response)
		}
		record := []string{name, usn, response.Answer, response.SubmittedAt.Format("2006-01-02 15:04:05")}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func Tally(question *domain.Question, responses []domain.Response) domain.Tally {
	tally := domain.Tally{Total: int64(len(responses))}
	if question.Type != domain.QuestionTypeYesNo {
		return tally
	}
	for _, response := range responses {
		switch response.Answer {
		case "Yes":
			tally.Yes++
		case "No":
			tally.No++
		}
	}
	return tally
}

func (s *exportService) Tally(ctx context.Context, questionID uuid.UUID) (domain.Tally, error) {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return domain.Tally{}, err
	}

	responses, err := s.responseRepo.ListForQuestion(ctx, question.ID)
	if err != nil {
		return domain.Tally{}, err
	}

	return Tally(question, responses), nil
}

// submitterColumns resolves the display columns for a non-anonymous row.
// Roster-keyed responses look up the student record; email-keyed ones fall
// back to the display name and the email itself.
func (s *exportService) submitterColumns(ctx context.Context, response domain.Response) (string, string) {
	if id, err := uuid.Parse(*response.SubmitterKey); err == nil {
		if student, err := s.studentRepo.GetByID(ctx, id); err == nil && student != nil {
			return student.Name, student.USN
		}
	}

	name := response.DisplayName
	if name == "" {
		name = *response.SubmitterKey
	}
	return name, "N/A"
}
