package services

import (
	"context"
	"sync"
	"time"

	"github.com/classpulse/api/internal/core/domain"
	"github.com/classpulse/api/internal/core/ports"
	"github.com/google/uuid"
)

type fakeQuestionRepo struct {
	questions map[uuid.UUID]*domain.Question
	saveErr   error
}

func newFakeQuestionRepo(questions ...*domain.Question) *fakeQuestionRepo {
	repo := &fakeQuestionRepo{questions: make(map[uuid.UUID]*domain.Question)}
	for _, q := range questions {
		repo.questions[q.ID] = q
	}
	return repo
}

func (r *fakeQuestionRepo) Save(ctx context.Context, question *domain.Question) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.questions[question.ID] = question
	return nil
}

func (r *fakeQuestionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	question, ok := r.questions[id]
	if !ok {
		return nil, domain.ErrQuestionNotFound
	}
	return question, nil
}

func (r *fakeQuestionRepo) GetAll(ctx context.Context) ([]*domain.Question, error) {
	out := make([]*domain.Question, 0, len(r.questions))
	for _, q := range r.questions {
		out = append(out, q)
	}
	return out, nil
}

// fakeResponseRepo mimics the storage-level uniqueness constraint: non-nil
// submitter keys conflict per question, anonymous rows never do.
type fakeResponseRepo struct {
	mu        sync.Mutex
	responses []domain.Response
	keys      map[string]struct{}
	saveErr   error
}

func newFakeResponseRepo() *fakeResponseRepo {
	return &fakeResponseRepo{keys: make(map[string]struct{})}
}

func (r *fakeResponseRepo) Save(ctx context.Context, response *domain.Response) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	if response.SubmitterKey != nil {
		key := response.QuestionID.String() + "/" + *response.SubmitterKey
		if _, ok := r.keys[key]; ok {
			return domain.ErrAlreadyResponded
		}
		r.keys[key] = struct{}{}
	}
	response.SubmittedAt = time.Now()
	r.responses = append(r.responses, *response)
	return nil
}

func (r *fakeResponseRepo) ListForQuestion(ctx context.Context, questionID uuid.UUID) ([]domain.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Response{}
	for _, response := range r.responses {
		if response.QuestionID == questionID {
			out = append(out, response)
		}
	}
	return out, nil
}

func (r *fakeResponseRepo) ListAll(ctx context.Context) ([]domain.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Response(nil), r.responses...), nil
}

type fakeStudentRepo struct {
	students map[uuid.UUID]*domain.Student
}

func newFakeStudentRepo(students ...*domain.Student) *fakeStudentRepo {
	repo := &fakeStudentRepo{students: make(map[uuid.UUID]*domain.Student)}
	for _, s := range students {
		repo.students[s.ID] = s
	}
	return repo
}

func (r *fakeStudentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	return r.students[id], nil
}

func (r *fakeStudentRepo) Search(ctx context.Context, query string, limit int) ([]domain.Student, error) {
	out := []domain.Student{}
	for _, s := range r.students {
		out = append(out, *s)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeStudentRepo) Create(ctx context.Context, student *domain.Student) error {
	r.students[student.ID] = student
	return nil
}

type publishedEvent struct {
	Topic   string
	Name    string
	Payload any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, topic, name string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{Topic: topic, Name: name, Payload: payload})
	return nil
}

func (p *fakePublisher) published() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.events...)
}

type staticResolver struct {
	key  *string
	name string
	err  error
}

func (r *staticResolver) Resolve(ctx context.Context, question *domain.Question, identity ports.SubmissionIdentity) (*string, string, error) {
	return r.key, r.name, r.err
}
