package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cmorrow/taskhub/internal/api/shared"
	"github.com/cmorrow/taskhub/internal/domain"
	"github.com/cmorrow/taskhub/internal/service/images"
	"github.com/cmorrow/taskhub/internal/store"
)

// errInvalidCompletedFilter rejects completed query values outside
// true/false.
var errInvalidCompletedFilter = errors.New("completed must be true or false")

// TaskHandler handles the /tasks routes. Every operation on an existing
// task is scoped to the authenticated owner, so another user's task is
// reported as missing rather than forbidden.
type TaskHandler struct {
	taskStore store.TaskStore
	images    *images.Processor
	validator *validator.Validate
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskStore store.TaskStore, processor *images.Processor) *TaskHandler {
	return &TaskHandler{
		taskStore: taskStore,
		images:    processor,
		validator: validator.New(),
	}
}

// Create handles POST /tasks. Ownership always comes from the
// authenticated user; an owner field in the body is ignored.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := shared.UserFromContext(r.Context())

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := domain.NewTask(user.ID, req.Description, req.Completed)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// List handles GET /tasks with the query parameters completed,
// sortBy=field:asc|desc, limit and skip.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	user := shared.UserFromContext(r.Context())

	opts, err := parseListOptions(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	tasks, err := h.taskStore.List(r.Context(), user.ID, opts)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// parseListOptions extracts filter, sort and pagination options from the
// request query. An explicit but malformed completed value is a client
// error; malformed limit/skip values are ignored so unpaginated listings
// stay deterministic.
func parseListOptions(r *http.Request) (store.ListOptions, error) {
	var opts store.ListOptions
	query := r.URL.Query()

	if raw := query.Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, errInvalidCompletedFilter
		}
		opts.Completed = &completed
	}

	if raw := query.Get("sortBy"); raw != "" {
		field, direction, _ := strings.Cut(raw, ":")
		opts.SortBy = field
		opts.Descending = direction == "desc"
	}

	if limit, err := strconv.Atoi(query.Get("limit")); err == nil && limit > 0 {
		opts.Limit = limit
	}
	if skip, err := strconv.Atoi(query.Get("skip")); err == nil && skip > 0 {
		opts.Skip = skip
	}

	return opts, nil
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := shared.UserFromContext(r.Context())

	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), id, user.ID)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Update handles PATCH /tasks/{id}. Updates are restricted to the
// allow-list {description, completed}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := shared.UserFromContext(r.Context())

	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSONStrict(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid updates")
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), id, user.ID)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	if req.Description != nil {
		task.Description = strings.TrimSpace(*req.Description)
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	if err := task.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	if err := h.taskStore.Update(r.Context(), task); err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Delete handles DELETE /tasks/{id} and returns the deleted task.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := shared.UserFromContext(r.Context())

	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), id, user.ID)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	if err := h.taskStore.Delete(r.Context(), id, user.ID); err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UploadImage handles POST /tasks/{id}/image. The upload is normalized to
// a 250x250 PNG before storage.
func (h *TaskHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	user := shared.UserFromContext(r.Context())

	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	normalized, err := normalizeUpload(w, r, "image", h.images)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithError(w, r, status, GetSafeErrorMessage(err))
		return
	}

	if err := h.taskStore.SetImage(r.Context(), id, user.ID, normalized); err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, nil)
}

// GetImage handles GET /tasks/{id}/image. Task images are public.
func (h *TaskHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	image, err := h.taskStore.GetImage(r.Context(), id)
	if err != nil {
		if store.IsNotFoundError(err) {
			shared.RespondWithError(w, r, http.StatusNotFound, GetSafeErrorMessage(err))
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to load image", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(image); err != nil {
		slog.Error("failed to write image response", "error", err)
	}
}

// DeleteImage handles DELETE /tasks/{id}/image.
func (h *TaskHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	user := shared.UserFromContext(r.Context())

	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	if err := h.taskStore.ClearImage(r.Context(), id, user.ID); err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, nil)
}
