package ports

import (
	"context"
	"io"

	"github.com/classpulse/api/internal/core/domain"
	"github.com/google/uuid"
)

type ExportService interface {
	// WriteCSV serializes a question's responses as CSV in submission order.
	WriteCSV(ctx context.Context, w io.Writer, questionID uuid.UUID) error
	Tally(ctx context.Context, questionID uuid.UUID) (domain.Tally, error)
}
