package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"submission_service/internal/domain"
	"submission_service/internal/pkg/ctxdata"
	"submission_service/internal/service"
)

const statsCacheTTL = 30 * time.Second

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

type SubmissionHandler struct {
	submissions service.SubmissionServiceInterface
	reviews     service.ReviewServiceInterface
	stats       service.StatsServiceInterface
	cache       Cache
}

func NewSubmissionHandler(
	submissions service.SubmissionServiceInterface,
	reviews service.ReviewServiceInterface,
	stats service.StatsServiceInterface,
	cache Cache,
) *SubmissionHandler {
	return &SubmissionHandler{
		submissions: submissions,
		reviews:     reviews,
		stats:       stats,
		cache:       cache,
	}
}

func (h *SubmissionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/submissions", h.Create)
	r.Get("/submissions/{id}", h.Get)
	r.Patch("/submissions/{id}/review", h.Review)
	r.Get("/assignments/{assignment_id}/submissions", h.ListByAssignment)
	r.Get("/students/{student_id}/submissions", h.ListByStudent)
	r.Get("/assignments/{assignment_id}/stats", h.AssignmentStats)
	r.Get("/students/{student_id}/stats", h.StudentStats)
}

func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	assignmentID, err := uuid.Parse(req.AssignmentID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid assignmentId"})
		return
	}

	userID, _ := ctxdata.GetUserID(r.Context())
	studentID, err := uuid.Parse(userID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return
	}

	submission, err := h.submissions.SubmitWork(r.Context(), assignmentID, studentID, req.SubmissionURL, req.Note)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSubmissionResponse(submission))
}

func (h *SubmissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathUUID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	submission, err := h.submissions.GetSubmission(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSubmissionResponse(submission))
}

func (h *SubmissionHandler) Review(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathUUID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var req reviewSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	input := service.ReviewInput{
		Feedback: req.Feedback,
		Grade:    req.Grade,
	}
	if req.Status != nil {
		status := domain.ToSubmissionStatus(*req.Status)
		input.Status = &status
	}

	submission, err := h.reviews.Review(r.Context(), id, input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSubmissionResponse(submission))
}

func (h *SubmissionHandler) ListByAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := parsePathUUID(r, "assignment_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	submissions, err := h.submissions.ListSubmissionsByAssignment(r.Context(), assignmentID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSubmissionResponses(submissions))
}

func (h *SubmissionHandler) ListByStudent(w http.ResponseWriter, r *http.Request) {
	studentID, err := parsePathUUID(r, "student_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	submissions, err := h.submissions.ListSubmissionsByStudent(r.Context(), studentID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSubmissionResponses(submissions))
}

func (h *SubmissionHandler) AssignmentStats(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := parsePathUUID(r, "assignment_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	// Key includes the requester so a cached body is never served across
	// permission boundaries.
	userID, _ := ctxdata.GetUserID(r.Context())
	key := fmt.Sprintf("stats:assignment:%s:%s", assignmentID, userID)
	if h.serveCached(w, r, key) {
		return
	}

	stats, err := h.stats.AssignmentStats(r.Context(), assignmentID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.writeCached(w, r, key, toAssignmentStatsResponse(stats))
}

func (h *SubmissionHandler) StudentStats(w http.ResponseWriter, r *http.Request) {
	studentID, err := parsePathUUID(r, "student_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	userID, _ := ctxdata.GetUserID(r.Context())
	key := fmt.Sprintf("stats:student:%s:%s", studentID, userID)
	if h.serveCached(w, r, key) {
		return
	}

	stats, err := h.stats.StudentStats(r.Context(), studentID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.writeCached(w, r, key, toStudentStatsResponse(stats))
}

func (h *SubmissionHandler) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	if h.cache == nil {
		return false
	}
	data, ok := h.cache.Get(r.Context(), key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	return true
}

func (h *SubmissionHandler) writeCached(w http.ResponseWriter, r *http.Request, key string, body interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to serialize response"})
		return
	}
	if h.cache != nil {
		h.cache.Set(r.Context(), key, data, statsCacheTTL)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
