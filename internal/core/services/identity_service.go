package services

import (
	"context"
	"os"
	"strings"

	"github.com/classpulse/api/internal/core/domain"
	"github.com/classpulse/api/internal/core/ports"
)

const defaultAllowedDomain = "bmsce.ac.in"

type identityResolver struct {
	studentRepo   ports.StudentRepository
	allowedDomain string
}

func NewIdentityResolver(studentRepo ports.StudentRepository) ports.IdentityResolver {
	allowedDomain := os.Getenv("ALLOWED_EMAIL_DOMAIN")
	if allowedDomain == "" {
		allowedDomain = defaultAllowedDomain
	}
	return &identityResolver{
		studentRepo:   studentRepo,
		allowedDomain: allowedDomain,
	}
}

// Resolve maps a submission's identity material to its canonical submitter
// key. A nil key means anonymous, which is only possible when the question
// allows it and the caller opted in.
func (r *identityResolver) Resolve(ctx context.Context, question *domain.Question, identity ports.SubmissionIdentity) (*string, string, error) {
	if question.Audience == domain.AudienceRoster {
		if identity.StudentID == nil {
			return nil, "", domain.ErrMissingIdentity
		}
		student, err := r.studentRepo.GetByID(ctx, *identity.StudentID)
		if err != nil {
			return nil, "", err
		}
		if student == nil {
			return nil, "", domain.ErrUnknownSubmitter
		}
		key := student.ID.String()
		return &key, student.Name, nil
	}

	if question.AllowAnonymous && identity.Anonymous {
		return nil, "", nil
	}

	if identity.Email == "" {
		return nil, "", domain.ErrMissingIdentity
	}
	if !strings.HasSuffix(strings.ToLower(identity.Email), "@"+r.allowedDomain) {
		return nil, "", domain.ErrUnauthorizedDomain
	}

	key := strings.ToLower(identity.Email)
	return &key, identity.Name, nil
}
