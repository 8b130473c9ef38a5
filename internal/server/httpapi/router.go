package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"submission_service/internal/pkg/logging"
)

func NewRouter(
	logger *logging.Logger,
	assignmentHandler *AssignmentHandler,
	submissionHandler *SubmissionHandler,
) chi.Router {
	r := chi.NewRouter()
	r.Use(NewLoggingMiddleware(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Group(func(r chi.Router) {
		r.Use(NewIdentityMiddleware())
		assignmentHandler.RegisterRoutes(r)
		submissionHandler.RegisterRoutes(r)
	})

	return r
}
