package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/classpulse/api/internal/core/domain"
	"github.com/classpulse/api/internal/core/ports"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ResponseHandler struct {
	service ports.ResponseService
}

func NewResponseHandler(service ports.ResponseService) *ResponseHandler {
	return &ResponseHandler{
		service: service,
	}
}

type submitResponseRequest struct {
	Answer    string     `json:"answer" validate:"required"`
	Email     string     `json:"email"`
	StudentID *uuid.UUID `json:"student_id"`
	Anonymous bool       `json:"anonymous"`
	Name      string     `json:"name"`
}

func (h *ResponseHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	questionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid question id", http.StatusBadRequest)
		return
	}

	var req submitResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	input := ports.SubmitResponseInput{
		QuestionID: questionID,
		Answer:     req.Answer,
		Identity: ports.SubmissionIdentity{
			Email:     req.Email,
			StudentID: req.StudentID,
			Anonymous: req.Anonymous,
			Name:      req.Name,
		},
	}

	response, err := h.service.Submit(r.Context(), input)
	if err != nil {
		h.writeSubmitError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// writeSubmitError keeps the duplicate case distinguishable from generic
// failure so the UI never prompts a retry for an already-counted response.
func (h *ResponseHandler) writeSubmitError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrAlreadyResponded):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrQuestionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownSubmitter):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorizedDomain):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrMissingIdentity), errors.Is(err, domain.ErrInvalidAnswer):
		status = http.StatusBadRequest
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func (h *ResponseHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
	questionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid question id", http.StatusBadRequest)
		return
	}

	responses, err := h.service.ListForQuestion(r.Context(), questionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(responses); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
