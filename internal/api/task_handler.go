package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service"
)

// TaskHandler handles task CRUD requests. Every operation is scoped to the
// authenticated user.
type TaskHandler struct {
	tasks  service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks service.TaskService, logger *slog.Logger) *TaskHandler {
	if tasks == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("tasks cannot be nil for TaskHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /tasks?status&priority&search&sortBy&sortOrder.
// Unknown filter and sort values are ignored rather than rejected.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := domain.TaskFilter{
		Status:   domain.TaskStatus(q.Get("status")),
		Priority: domain.TaskPriority(q.Get("priority")),
		Search:   q.Get("search"),
	}
	sort := domain.ParseTaskSort(q.Get("sortBy"), q.Get("sortOrder"))

	tasks, err := h.tasks.List(r.Context(), userID, filter, sort)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve tasks")
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, "Tasks retrieved successfully", TaskListResponse{
		Tasks: tasksToResponse(tasks),
		Count: len(tasks),
	})
}

// GetTask handles GET /tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	taskID, err := getPathTaskID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.Get(r.Context(), userID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve task")
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, "Task retrieved successfully",
		TaskEnvelope{Task: taskToResponse(task)})
}

// CreateTask handles POST /tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	var req CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.tasks.Create(r.Context(), userID, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
		DueDate:     req.DueDate.Value,
		Tags:        req.Tags,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	shared.RespondSuccess(w, r, http.StatusCreated, "Task created successfully",
		TaskEnvelope{Task: taskToResponse(task)})
}

// UpdateTask handles PUT /tasks/{id}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	taskID, err := getPathTaskID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.tasks.Update(r.Context(), userID, taskID, req.Patch())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, "Task updated successfully",
		TaskEnvelope{Task: taskToResponse(task)})
}

// DeleteTask handles DELETE /tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	taskID, err := getPathTaskID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.tasks.Delete(r.Context(), userID, taskID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, "Task deleted successfully", nil)
}
