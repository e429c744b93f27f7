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

// UsersHandler serves /users/*. Authorization is decided by the use cases.
type UsersHandler struct {
	createUser *command.CreateUser
	setActive  *command.SetUserActive
	promote    *command.PromoteUser
	list       *query.ListUsers
	current    *query.GetCurrentUser
	validate   *validator.Validate
	log        zerolog.Logger
}

func NewUsersHandler(createUser *command.CreateUser, setActive *command.SetUserActive, promote *command.PromoteUser, list *query.ListUsers, current *query.GetCurrentUser, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{
		createUser: createUser,
		setActive:  setActive,
		promote:    promote,
		list:       list,
		current:    current,
		validate:   validator.New(),
		log:        log,
	}
}

// Me returns the caller.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	view, err := h.current.Execute(r.Context(), middleware.IdentityFromContext(r.Context()))
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userFromView(*view))
}

// List pages through users (admin only). ?active=true|false filters by status.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	input := query.ListUsersInput{Page: page}
	if raw := r.URL.Query().Get("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, h.log, r, domerrors.NewValidationError("active", "must be a boolean"))
			return
		}
		input.IsActive = &active
	}
	res, err := h.list.Execute(r.Context(), middleware.IdentityFromContext(r.Context()), input)
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPage(res, userFromView))
}

// Create registers a user with an explicit role; the caller's role must allow it.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username" validate:"required,max=32"`
		Email    string `json:"email" validate:"omitempty,max=254"`
		Password string `json:"password" validate:"required,max=128"`
		Role     string `json:"role" validate:"omitempty,oneof=USER ADMIN SUPER_ADMIN"`
	}
	if err := decode(r, h.validate, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	result, err := h.createUser.Execute(r.Context(), middleware.IdentityFromContext(r.Context()), command.CreateUserInput{
		Username: body.Username,
		Email:    body.Email,
		Password: body.Password,
		Role:     body.Role,
	})
	middleware.RecordCommand("create_user", err)
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, userFromEntity(result.User))
}

func (h *UsersHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Active *bool `json:"active" validate:"required"`
	}
	if err := decode(r, h.validate, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	result, err := h.setActive.Execute(r.Context(), middleware.IdentityFromContext(r.Context()), command.SetUserActiveInput{
		UserID: chi.URLParam(r, "id"),
		Active: *body.Active,
	})
	middleware.RecordCommand("set_user_active", err)
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userFromEntity(result.User))
}

func (h *UsersHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Role string `json:"role" validate:"required"`
	}
	if err := decode(r, h.validate, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	result, err := h.promote.Execute(r.Context(), middleware.IdentityFromContext(r.Context()), command.PromoteUserInput{
		UserID: chi.URLParam(r, "id"),
		Role:   body.Role,
	})
	middleware.RecordCommand("promote_user", err)
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userFromEntity(result.User))
}
