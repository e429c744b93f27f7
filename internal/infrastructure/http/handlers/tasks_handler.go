package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/taskhub/internal/application/command"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/http/middleware"
)

// TasksHandler serves /tasks/{id}.
type TasksHandler struct {
	changeStatus *command.ChangeTaskStatus
	deleteTask   *command.DeleteTask
	validate     *validator.Validate
	log          zerolog.Logger
}

func NewTasksHandler(changeStatus *command.ChangeTaskStatus, deleteTask *command.DeleteTask, log zerolog.Logger) *TasksHandler {
	return &TasksHandler{
		changeStatus: changeStatus,
		deleteTask:   deleteTask,
		validate:     validator.New(),
		log:          log,
	}
}

func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status   string `json:"status"`
		Priority string `json:"priority"`
		Title    string `json:"title"`
	}
	if err := decode(r, h.validate, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	result, err := h.changeStatus.Execute(r.Context(), middleware.IdentityFromContext(r.Context()), command.ChangeTaskStatusInput{
		TaskID:   chi.URLParam(r, "id"),
		Status:   body.Status,
		Priority: body.Priority,
		Title:    body.Title,
	})
	middleware.RecordCommand("change_task_status", err)
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, taskFromEntity(result.Task))
}

func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.deleteTask.Execute(r.Context(), middleware.IdentityFromContext(r.Context()), command.DeleteTaskInput{
		TaskID: chi.URLParam(r, "id"),
	})
	middleware.RecordCommand("delete_task", err)
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
