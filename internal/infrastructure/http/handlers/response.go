package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/taskhub/internal/application/query"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

const maxBodyBytes = 1 << 20

// writeErr sends JSON { "error": message, "code": errCode }. If errCode is empty, a default is used from code.
func writeErr(w http.ResponseWriter, code int, errCode string, message string) {
	if errCode == "" {
		errCode = defaultErrCode(code)
	}
	writeJSON(w, code, map[string]string{"error": message, "code": errCode})
}

func defaultErrCode(httpCode int) string {
	switch httpCode {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusUnprocessableEntity:
		return ErrCodeBusinessRule
	case http.StatusTooManyRequests:
		return ErrCodeAccountLocked
	default:
		return ErrCodeInternal
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a use case error onto a status code by its kind. Infrastructure failures are
// logged and reported without detail.
func writeError(w http.ResponseWriter, log zerolog.Logger, r *http.Request, err error) {
	var ve *domerrors.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": ve.Error(),
			"code":  ErrCodeValidation,
			"field": ve.Field,
		})
	case errors.Is(err, domerrors.ErrInvalidCredentials):
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, err.Error())
	case errors.Is(err, domerrors.ErrAccountLocked):
		writeErr(w, http.StatusTooManyRequests, ErrCodeAccountLocked, err.Error())
	case errors.Is(err, domerrors.ErrUnauthenticated):
		writeErr(w, http.StatusUnauthorized, "", err.Error())
	case errors.Is(err, domerrors.ErrForbidden):
		writeErr(w, http.StatusForbidden, "", err.Error())
	case errors.Is(err, domerrors.ErrNotFound):
		writeErr(w, http.StatusNotFound, "", err.Error())
	case errors.Is(err, domerrors.ErrUsernameAlreadyExists), errors.Is(err, domerrors.ErrEmailAlreadyExists):
		writeErr(w, http.StatusConflict, "", err.Error())
	case errors.Is(err, domerrors.ErrBusinessRule):
		writeErr(w, http.StatusUnprocessableEntity, "", err.Error())
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
	}
}

// decode reads a JSON body into dst and runs its validate tags.
func decode(r *http.Request, validate *validator.Validate, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid body")
	}
	return validate.Struct(dst)
}

// pageFromQuery reads ?page= and ?size=. Absent values stay zero and take the query defaults.
func pageFromQuery(r *http.Request) (query.Page, error) {
	var p query.Page
	for name, dst := range map[string]*int{"page": &p.Page, "size": &p.Size} {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return p, domerrors.NewValidationError(name, "must be an integer")
		}
		*dst = n
	}
	return p, nil
}

type pageResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
}

func toPage[V, T any](res *query.Result[V], conv func(V) T) pageResponse[T] {
	items := make([]T, 0, len(res.Items))
	for _, v := range res.Items {
		items = append(items, conv(v))
	}
	return pageResponse[T]{Items: items, Total: res.Total, Page: res.Page, Size: res.Size}
}
