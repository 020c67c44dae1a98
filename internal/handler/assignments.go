package handler

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/classtrack-dev/classtrack/backend/internal/domain"
	"github.com/classtrack-dev/classtrack/backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	actor := h.actor(r)
	if decision := domain.Authorize(actor, domain.OpListAssignments, domain.Target{}); !decision.Allowed {
		h.errorResponse(w, r, http.StatusForbidden, decision.Reason)
		return
	}

	// reject an unknown sort field before touching the assignment store
	orderColumn, desc, err := utils.ValidateSortParams(r.URL.Query().Get("sortBy"), r.URL.Query().Get("sortOrder"))
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	assignments, err := h.store.GetAllAssignments(orderColumn, desc)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, assignments)
}

func (h *Handler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	actor := h.actor(r)
	assignment := r.Context().Value(AssignmentCtxKey).(*domain.Assignment)

	if decision := domain.Authorize(actor, domain.OpGetAssignment, domain.Target{Assignment: assignment}); !decision.Allowed {
		h.errorResponse(w, r, http.StatusForbidden, decision.Reason)
		return
	}

	h.writeJSON(w, r, http.StatusOK, assignment)
}

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title      string     `json:"title" validate:"required"`
		Subject    string     `json:"subject" validate:"required"`
		TotalScore *float64   `json:"totalScore" validate:"required,gt=0"`
		DueDate    *time.Time `json:"dueDate" validate:"required"`
		UserID     int64      `json:"userId" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	actor := h.actor(r)
	if decision := domain.Authorize(actor, domain.OpCreateAssignment, domain.Target{AssigneeID: req.UserID}); !decision.Allowed {
		h.errorResponse(w, r, http.StatusForbidden, decision.Reason)
		return
	}

	assignee, err := h.store.GetUserByID(req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusNotFound, "User not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}
	if assignee.Role != domain.RoleTeacher {
		h.errorResponse(w, r, http.StatusBadRequest, "Assignments can only be assigned to a teacher")
		return
	}

	assignment := &domain.Assignment{
		Title:      req.Title,
		Subject:    req.Subject,
		TotalScore: *req.TotalScore,
		DueDate:    *req.DueDate,
		UserID:     req.UserID,
	}

	if err := h.store.CreateAssignment(assignment); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	mine, err := h.store.GetAssignmentsByUserID(actor.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, map[string]any{
		"message":    "Assignment created successfully",
		"assignment": assignment,
		"user": struct {
			*domain.User
			Assignments []*domain.Assignment `json:"assignments"`
		}{actor, mine},
	})
}

func (h *Handler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title      *string    `json:"title"`
		Subject    *string    `json:"subject"`
		TotalScore *float64   `json:"totalScore" validate:"omitempty,gt=0"`
		DueDate    *time.Time `json:"dueDate"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	actor := h.actor(r)
	assignment := r.Context().Value(AssignmentCtxKey).(*domain.Assignment)

	if decision := domain.Authorize(actor, domain.OpUpdateAssignment, domain.Target{Assignment: assignment}); !decision.Allowed {
		h.errorResponse(w, r, http.StatusForbidden, decision.Reason)
		return
	}

	if req.Title != nil {
		assignment.Title = *req.Title
	}
	if req.Subject != nil {
		assignment.Subject = *req.Subject
	}
	if req.TotalScore != nil {
		assignment.TotalScore = *req.TotalScore
	}
	if req.DueDate != nil {
		assignment.DueDate = *req.DueDate
	}

	if err := h.store.UpdateAssignment(assignment); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"message":    "Assignment updated successfully",
		"assignment": assignment,
	})
}

func (h *Handler) SubmitAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsSubmitted *bool `json:"isSubmitted" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	actor := h.actor(r)
	assignment := r.Context().Value(AssignmentCtxKey).(*domain.Assignment)

	if decision := domain.Authorize(actor, domain.OpSubmitAssignment, domain.Target{Assignment: assignment}); !decision.Allowed {
		h.errorResponse(w, r, http.StatusForbidden, decision.Reason)
		return
	}

	wasSubmitted := assignment.IsSubmitted
	assignment.IsSubmitted = *req.IsSubmitted

	if err := h.store.UpdateAssignment(assignment); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if !wasSubmitted && assignment.IsSubmitted {
		h.notifySubmission(actor, assignment)
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"message":    "Assignment submitted successfully",
		"assignment": assignment,
	})
}

// notifySubmission queues a "submission received" mail to the assigning
// teacher. The submission itself already succeeded, so failures here are
// only logged.
func (h *Handler) notifySubmission(student *domain.User, assignment *domain.Assignment) {
	owner, err := h.store.GetUserByID(assignment.UserID)
	if err != nil {
		slog.Error("failed to load assignment owner for notification", "assignmentId", assignment.ID, "error", err)
		return
	}
	if owner.Email == "" {
		return
	}

	msg := domain.MailMessage{
		Type: "submission_received",
		To:   owner.Email,
		Data: domain.SubmissionReceivedMailData{
			Username: owner.Username,
			Title:    assignment.Title,
			Subject:  assignment.Subject,
			Student:  student.Username,
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailer.Publish(ctx, msg); err != nil {
		slog.Error("failed to queue submission mail", "assignmentId", assignment.ID, "error", err)
	}
}

func (h *Handler) MarkAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MarksObtained *float64 `json:"marksObtained" validate:"required,gte=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	actor := h.actor(r)
	assignment := r.Context().Value(AssignmentCtxKey).(*domain.Assignment)

	decision := domain.Authorize(actor, domain.OpMarkAssignment, domain.Target{
		Assignment: assignment,
		Marks:      *req.MarksObtained,
	})
	if !decision.Allowed {
		h.errorResponse(w, r, http.StatusForbidden, decision.Reason)
		return
	}

	assignment.MarksObtained = req.MarksObtained

	if err := h.store.UpdateAssignment(assignment); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"message":    "Assignment marked successfully",
		"assignment": assignment,
	})
}

func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	actor := h.actor(r)
	assignment := r.Context().Value(AssignmentCtxKey).(*domain.Assignment)

	if decision := domain.Authorize(actor, domain.OpDeleteAssignment, domain.Target{Assignment: assignment}); !decision.Allowed {
		h.errorResponse(w, r, http.StatusForbidden, decision.Reason)
		return
	}

	if err := h.store.DeleteAssignment(assignment.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]string{"message": "Assignment deleted successfully"})
}

func (h *Handler) ViewReport(w http.ResponseWriter, r *http.Request) {
	userIDParam := chi.URLParam(r, "id")
	userID, err := strconv.ParseInt(userIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "Invalid user id")
		return
	}

	// target existence is checked before the role, matching the rest of
	// the surface: a missing resource is 404 even for callers who would
	// have been denied anyway
	if _, err := h.store.GetUserByID(userID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusNotFound, "User not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	actor := h.actor(r)
	if decision := domain.Authorize(actor, domain.OpViewReport, domain.Target{}); !decision.Allowed {
		h.errorResponse(w, r, http.StatusForbidden, decision.Reason)
		return
	}

	assignments, err := h.store.GetAssignmentsByUserID(userID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, assignments)
}
