package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/taskhub/internal/application/command"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/http/middleware"
)

// AuthHandler serves /auth/*: signup, login and password change.
type AuthHandler struct {
	createUser     *command.CreateUser
	login          *command.Login
	changePassword *command.ChangePassword
	validate       *validator.Validate
	log            zerolog.Logger
}

func NewAuthHandler(createUser *command.CreateUser, login *command.Login, changePassword *command.ChangePassword, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		createUser:     createUser,
		login:          login,
		changePassword: changePassword,
		validate:       validator.New(),
		log:            log,
	}
}

// Signup registers a USER account. Privileged roles go through POST /users.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username" validate:"required,max=32"`
		Email    string `json:"email" validate:"omitempty,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := decode(r, h.validate, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	result, err := h.createUser.Execute(r.Context(), middleware.IdentityFromContext(r.Context()), command.CreateUserInput{
		Username: body.Username,
		Email:    body.Email,
		Password: body.Password,
	})
	middleware.RecordCommand("signup", err)
	if err != nil {
		AuditLog(h.log, r, "user.signup", body.Username, "", false, err.Error())
		writeError(w, h.log, r, err)
		return
	}
	AuditLog(h.log, r, "user.signup", body.Username, result.User.ID().String(), true, "")
	writeJSON(w, http.StatusCreated, userFromEntity(result.User))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username" validate:"required,max=32"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := decode(r, h.validate, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	result, err := h.login.Execute(r.Context(), command.LoginInput{
		Username: body.Username,
		Password: body.Password,
	})
	middleware.RecordCommand("login", err)
	if err != nil {
		AuditLog(h.log, r, "user.login", body.Username, "", false, err.Error())
		writeError(w, h.log, r, err)
		return
	}
	AuditLog(h.log, r, "user.login", body.Username, result.User.ID().String(), true, "")
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": result.AccessToken,
		"token_type":   "Bearer",
		"expires_in":   result.ExpiresIn,
		"user":         userFromEntity(result.User),
	})
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CurrentPassword string `json:"current_password" validate:"required,max=128"`
		NewPassword     string `json:"new_password" validate:"required,max=128"`
	}
	if err := decode(r, h.validate, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	err := h.changePassword.Execute(r.Context(), middleware.IdentityFromContext(r.Context()), command.ChangePasswordInput{
		CurrentPassword: body.CurrentPassword,
		NewPassword:     body.NewPassword,
	})
	middleware.RecordCommand("change_password", err)
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
