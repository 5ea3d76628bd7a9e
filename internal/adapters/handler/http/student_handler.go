package http

import (
	"encoding/json"
	"net/http"

	"github.com/classpulse/api/internal/core/ports"
)

type StudentHandler struct {
	service ports.StudentService
}

func NewStudentHandler(service ports.StudentService) *StudentHandler {
	return &StudentHandler{
		service: service,
	}
}

func (h *StudentHandler) SearchStudents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("search")

	students, err := h.service.Search(r.Context(), query)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(students); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
