package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(
	questionHandler *QuestionHandler,
	responseHandler *ResponseHandler,
	studentHandler *StudentHandler,
	eventsHandler *EventsHandler,
	authHandler *AuthHandler,
	userHandler *UserHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/google/callback", authHandler.GoogleCallback)
		r.Post("/refresh", authHandler.Refresh)
		r.Post("/logout", authHandler.Logout)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("welcome"))
		})

		r.Get("/events", eventsHandler.QuestionEvents)
		r.Get("/students", studentHandler.SearchStudents)

		r.Route("/questions", func(r chi.Router) {
			r.Get("/", questionHandler.ListQuestions)
			r.Get("/{id}", questionHandler.GetQuestion)
			r.Get("/{id}/export", questionHandler.ExportQuestion)
			r.Get("/{id}/events", eventsHandler.ResponseEvents)
			r.Get("/{id}/responses", responseHandler.ListResponses)
			r.Post("/{id}/responses", responseHandler.SubmitResponse)

			// Only signed-in organizers may create questions.
			r.With(AuthMiddleware).Post("/", questionHandler.CreateQuestion)
		})

		r.With(AuthMiddleware).Get("/me", userHandler.GetMe)
	})

	return r
}
