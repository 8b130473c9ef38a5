package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"submission_service/internal/domain"
	"submission_service/internal/pkg/ctxdata"
	"submission_service/internal/service"
)

type AssignmentHandler struct {
	assignments service.AssignmentServiceInterface
}

func NewAssignmentHandler(assignments service.AssignmentServiceInterface) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

func (h *AssignmentHandler) RegisterRoutes(r chi.Router) {
	r.Post("/assignments", h.Create)
	r.Get("/assignments", h.List)
	r.Get("/assignments/{id}", h.Get)
	r.Patch("/assignments/{id}", h.Update)
	r.Delete("/assignments/{id}", h.Delete)
}

func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	userID, _ := ctxdata.GetUserID(r.Context())
	instructorID, err := uuid.Parse(userID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return
	}

	assignment, err := h.assignments.CreateAssignment(r.Context(), &domain.Assignment{
		InstructorID: instructorID,
		Title:        req.Title,
		Description:  req.Description,
		Deadline:     req.Deadline,
		MaxPoints:    req.MaxPoints,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAssignmentResponse(assignment))
}

func (h *AssignmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathUUID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	assignment, err := h.assignments.GetAssignment(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAssignmentResponse(assignment))
}

func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.AssignmentFilter
	if raw := r.URL.Query().Get("instructor_id"); raw != "" {
		instructorID, err := uuid.Parse(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid instructor_id"})
			return
		}
		filter.InstructorID = instructorID
	}

	assignments, err := h.assignments.ListAssignments(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAssignmentResponses(assignments))
}

func (h *AssignmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathUUID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var req updateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	assignment, err := h.assignments.UpdateAssignment(r.Context(), &domain.Assignment{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		MaxPoints:   req.MaxPoints,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAssignmentResponse(assignment))
}

func (h *AssignmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathUUID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.assignments.DeleteAssignment(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
