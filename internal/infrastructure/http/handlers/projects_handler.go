package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/taskhub/internal/application/command"
	"github.com/amirhosseinghanipour/taskhub/internal/application/query"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/http/middleware"
)

// ProjectsHandler serves /projects and the task collection under each project.
type ProjectsHandler struct {
	createProject *command.CreateProject
	renameProject *command.RenameProject
	createTask    *command.CreateTask
	listProjects  *query.ListProjects
	listTasks     *query.ListTasks
	validate      *validator.Validate
	log           zerolog.Logger
}

func NewProjectsHandler(createProject *command.CreateProject, renameProject *command.RenameProject, createTask *command.CreateTask, listProjects *query.ListProjects, listTasks *query.ListTasks, log zerolog.Logger) *ProjectsHandler {
	return &ProjectsHandler{
		createProject: createProject,
		renameProject: renameProject,
		createTask:    createTask,
		listProjects:  listProjects,
		listTasks:     listTasks,
		validate:      validator.New(),
		log:           log,
	}
}

func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name" validate:"required"`
	}
	if err := decode(r, h.validate, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	result, err := h.createProject.Execute(r.Context(), middleware.IdentityFromContext(r.Context()), command.CreateProjectInput{
		Name: body.Name,
	})
	middleware.RecordCommand("create_project", err)
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, projectFromEntity(result.Project))
}

func (h *ProjectsHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name" validate:"required"`
	}
	if err := decode(r, h.validate, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	result, err := h.renameProject.Execute(r.Context(), middleware.IdentityFromContext(r.Context()), command.RenameProjectInput{
		ProjectID: chi.URLParam(r, "id"),
		Name:      body.Name,
	})
	middleware.RecordCommand("rename_project", err)
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projectFromEntity(result.Project))
}

// List returns the caller's projects; admins may pass ?all=true.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	input := query.ListProjectsInput{Page: page}
	if raw := r.URL.Query().Get("all"); raw != "" {
		if input.All, err = strconv.ParseBool(raw); err != nil {
			writeError(w, h.log, r, domerrors.NewValidationError("all", "must be a boolean"))
			return
		}
	}
	res, err := h.listProjects.Execute(r.Context(), middleware.IdentityFromContext(r.Context()), input)
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPage(res, projectFromView))
}

func (h *ProjectsHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title    string `json:"title" validate:"required"`
		Priority string `json:"priority"`
	}
	if err := decode(r, h.validate, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	result, err := h.createTask.Execute(r.Context(), middleware.IdentityFromContext(r.Context()), command.CreateTaskInput{
		ProjectID: chi.URLParam(r, "id"),
		Title:     body.Title,
		Priority:  body.Priority,
	})
	middleware.RecordCommand("create_task", err)
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, taskFromEntity(result.Task))
}

// ListTasks pages through a project's tasks, optionally filtered by ?status= and ?priority=.
func (h *ProjectsHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	res, err := h.listTasks.Execute(r.Context(), middleware.IdentityFromContext(r.Context()), query.ListTasksInput{
		Page:      page,
		ProjectID: chi.URLParam(r, "id"),
		Status:    r.URL.Query().Get("status"),
		Priority:  r.URL.Query().Get("priority"),
	})
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPage(res, taskFromView))
}
