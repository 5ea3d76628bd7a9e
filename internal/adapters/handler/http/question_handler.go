package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/classpulse/api/internal/core/domain"
	"github.com/classpulse/api/internal/core/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

type QuestionHandler struct {
	service ports.QuestionService
	export  ports.ExportService
}

func NewQuestionHandler(service ports.QuestionService, export ports.ExportService) *QuestionHandler {
	return &QuestionHandler{
		service: service,
		export:  export,
	}
}

type createQuestionRequest struct {
	Text           string `json:"text" validate:"required"`
	Type           string `json:"type" validate:"required,oneof=yes-no short-answer"`
	Audience       string `json:"audience" validate:"required,oneof=all restricted-roster"`
	AllowAnonymous bool   `json:"allow_anonymous"`
	RequireName    bool   `json:"require_name"`
}

func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req createQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	input := ports.CreateQuestionInput{
		Text:           req.Text,
		Type:           domain.QuestionType(req.Type),
		Audience:       domain.Audience(req.Audience),
		AllowAnonymous: req.AllowAnonymous,
		RequireName:    req.RequireName,
	}

	question, err := h.service.Create(r.Context(), input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(question); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *QuestionHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing question id", http.StatusBadRequest)
		return
	}

	question, err := h.service.GetQuestion(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidQuestionID) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if errors.Is(err, domain.ErrQuestionNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(question); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *QuestionHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.service.ListQuestions(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if questions == nil {
		questions = []*domain.Question{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(questions); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *QuestionHandler) ExportQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid question id", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", questionID.String()+"-responses.csv"))

	if err := h.export.WriteCSV(r.Context(), w, questionID); err != nil {
		if errors.Is(err, domain.ErrQuestionNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
