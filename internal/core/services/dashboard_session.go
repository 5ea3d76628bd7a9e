package services

import (
	"sync"

	"github.com/classpulse/api/internal/core/domain"
	"github.com/google/uuid"
)

// DashboardSession is the client-side aggregate behind a live dashboard:
// a snapshot of questions with nested responses, merged with pushed
// events. All merges are set-like inserts keyed by id, so applying the
// same event twice is a no-op and a snapshot/event race never duplicates
// an entry.
type DashboardSession struct {
	mu        sync.Mutex
	questions []*domain.Question
	byID      map[uuid.UUID]*domain.Question
	responses map[uuid.UUID]struct{}
}

func NewDashboardSession() *DashboardSession {
	return &DashboardSession{
		byID:      make(map[uuid.UUID]*domain.Question),
		responses: make(map[uuid.UUID]struct{}),
	}
}

// Bootstrap replaces local state with a full snapshot, newest question
// first, as returned by the question listing endpoint.
func (s *DashboardSession) Bootstrap(snapshot []*domain.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.questions = nil
	s.byID = make(map[uuid.UUID]*domain.Question)
	s.responses = make(map[uuid.UUID]struct{})

	for _, question := range snapshot {
		if _, ok := s.byID[question.ID]; ok {
			continue
		}
		q := *question
		s.questions = append(s.questions, &q)
		s.byID[q.ID] = &q
		for _, response := range q.Responses {
			s.responses[response.ID] = struct{}{}
		}
	}
}

// ApplyQuestion prepends a pushed question unless it is already present.
// Reports whether local state changed.
func (s *DashboardSession) ApplyQuestion(question domain.Question) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[question.ID]; ok {
		return false
	}

	q := question
	s.questions = append([]*domain.Question{&q}, s.questions...)
	s.byID[q.ID] = &q
	for _, response := range q.Responses {
		s.responses[response.ID] = struct{}{}
	}
	return true
}

// ApplyResponse appends a pushed response to its question unless that
// response id is already present. Reports whether local state changed.
func (s *DashboardSession) ApplyResponse(response domain.Response) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	question, ok := s.byID[response.QuestionID]
	if !ok {
		return false
	}
	if _, ok := s.responses[response.ID]; ok {
		return false
	}

	question.Responses = append(question.Responses, response)
	s.responses[response.ID] = struct{}{}
	return true
}

// Questions returns a copy of the merged question list, newest first.
func (s *DashboardSession) Questions() []domain.Question {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Question, 0, len(s.questions))
	for _, question := range s.questions {
		q := *question
		q.Responses = append([]domain.Response(nil), question.Responses...)
		out = append(out, q)
	}
	return out
}

// Tally recomputes the derived counts for one question from merged state.
func (s *DashboardSession) Tally(questionID uuid.UUID) (domain.Tally, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	question, ok := s.byID[questionID]
	if !ok {
		return domain.Tally{}, false
	}
	return Tally(question, question.Responses), true
}
