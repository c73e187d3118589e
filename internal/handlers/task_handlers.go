package handlers

import (
	"fmt"
	"net/http"
	"taskServer/internal/handlers/dto"
	"taskServer/internal/logger"
	"taskServer/internal/models/task"
	"taskServer/internal/service"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Info describes the API on the root endpoint and in health responses.
type Info struct {
	Title       string
	Description string
	Version     string
}

type TaskHandler struct {
	TaskService Service
	info        Info
	now         func() time.Time
}

func NewTaskHandler(taskService Service, info Info) *TaskHandler {
	return &TaskHandler{
		TaskService: taskService,
		info:        info,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (h *TaskHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.InfoResponse{
		Message:     fmt.Sprintf("Welcome to the %s!", h.info.Title),
		Title:       h.info.Title,
		Description: h.info.Description,
		Version:     h.info.Version,
		Endpoints: map[string]string{
			"tasks":  "/tasks",
			"health": "/health",
		},
	})
}

func (h *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	resp := dto.HealthResponse{
		Status:    "healthy",
		Service:   h.info.Title,
		Timestamp: h.now(),
	}

	if err := h.TaskService.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: Health check failed", err)
		resp.Status = "unhealthy"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	resp.TotalTasks = h.TaskService.CountTasks(r.Context())
	writeJSON(w, http.StatusOK, resp)
}

// ListTasks serves GET /tasks. Non-empty assignee, status or title_contains
// query parameters narrow the result.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := task.Filter{
		Assignee:      query.Get("assignee"),
		Status:        task.Status(query.Get("status")),
		TitleContains: query.Get("title_contains"),
	}

	tasks, err := h.TaskService.ListTasks(r.Context(), filter)
	if err != nil {
		handleError(w, r, err, "list_tasks")
		return
	}

	logger.Info("HTTP: Tasks listed",
		zap.Int("count", len(tasks)),
		zap.Bool("filtered", !filter.IsEmpty()))

	writeJSON(w, http.StatusOK, dto.FromTaskList(tasks))
}

func (h *TaskHandler) ListTasksByStatus(w http.ResponseWriter, r *http.Request) {
	status := task.Status(chi.URLParam(r, "status"))
	if status == "" {
		handleError(w, r, service.NewValidationError("status", "must not be empty"), "list_tasks_by_status")
		return
	}

	tasks, err := h.TaskService.ListTasks(r.Context(), task.Filter{Status: status})
	if err != nil {
		handleError(w, r, err, "list_tasks_by_status")
		return
	}

	writeJSON(w, http.StatusOK, dto.FromTaskList(tasks))
}

func (h *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Wrong content type",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "Content-Type must be application/json")
		return
	}

	var request dto.CreateTaskRequest
	if err := decodeJSON(r, &request); err != nil {
		logger.Warn("HTTP: Failed to decode JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		handleError(w, r, service.NewValidationError("body", err.Error()), "create_task")
		return
	}

	fields, nullField := request.ToFields()
	if nullField != "" {
		handleError(w, r, service.NewValidationError(nullField, "must not be null"), "create_task")
		return
	}
	if err := service.Validate(fields); err != nil {
		handleError(w, r, err, "create_task")
		return
	}

	created, err := h.TaskService.CreateTask(r.Context(), fields)
	if err != nil {
		handleError(w, r, err, "create_task")
		return
	}

	logger.HttpRequestInfo(r, "HTTP: Task created", zap.Int("task_id", created.ID))

	w.Header().Set("Location", fmt.Sprintf("/tasks/%d", created.ID))
	writeJSON(w, http.StatusCreated, dto.FromTask(created))
}

func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseTaskID(r)
	if err != nil {
		handleError(w, r, err, "get_task")
		return
	}

	found, err := h.TaskService.GetTask(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "get_task")
		return
	}

	logger.Debug("HTTP: Task fetched", zap.Int("task_id", found.ID))
	writeJSON(w, http.StatusOK, dto.FromTask(found))
}

// UpdateTaskByID applies only the keys present in the body. A null clears
// description, assignee or due_date.
func (h *TaskHandler) UpdateTaskByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseTaskID(r)
	if err != nil {
		handleError(w, r, err, "update_task")
		return
	}

	if !checkContentType(r, "application/json") {
		responseWithError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "Content-Type must be application/json")
		return
	}

	var request dto.UpdateTaskRequest
	if err := decodeJSON(r, &request); err != nil {
		logger.Warn("HTTP: Failed to decode JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		handleError(w, r, service.NewValidationError("body", err.Error()), "update_task")
		return
	}

	patch, nullField := request.ToPatch()
	if nullField != "" {
		handleError(w, r, service.NewValidationError(nullField, "must not be null"), "update_task")
		return
	}
	if err := service.Validate(patch); err != nil {
		handleError(w, r, err, "update_task")
		return
	}

	updated, err := h.TaskService.UpdateTask(r.Context(), id, patch)
	if err != nil {
		handleError(w, r, err, "update_task")
		return
	}

	writeJSON(w, http.StatusOK, dto.FromTask(updated))
}

func (h *TaskHandler) DeleteTaskByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseTaskID(r)
	if err != nil {
		handleError(w, r, err, "delete_task")
		return
	}

	if err := h.TaskService.DeleteTask(r.Context(), id); err != nil {
		handleError(w, r, err, "delete_task")
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{
		Message: fmt.Sprintf("Task %d deleted successfully", id),
	})
}

func (h *TaskHandler) ClearTasks(w http.ResponseWriter, r *http.Request) {
	removed := h.TaskService.ClearTasks(r.Context())

	logger.Warn("HTTP: All tasks cleared",
		zap.Int("deleted_count", removed),
		zap.String("client_ip", r.RemoteAddr))

	writeJSON(w, http.StatusOK, dto.MessageResponse{
		Message:      "All tasks cleared successfully",
		DeletedCount: &removed,
	})
}
