package http

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/taskhub/internal/application/command"
	"github.com/amirhosseinghanipour/taskhub/internal/application/identity"
	"github.com/amirhosseinghanipour/taskhub/internal/application/query"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/auth"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/http/handlers"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/http/middleware"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/lockout"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/persistence/memory"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/queue"
)

type sha256Hasher struct{}

func (sha256Hasher) Hash(ctx context.Context, raw string) (domain.PasswordHash, error) {
	sum := sha256.Sum256([]byte(raw))
	return domain.NewPasswordHash([]byte(hex.EncodeToString(sum[:])))
}

func (sha256Hasher) Verify(ctx context.Context, raw string, hash domain.PasswordHash) (bool, error) {
	sum := sha256.Sum256([]byte(raw))
	return string(hash.Bytes()) == hex.EncodeToString(sum[:]), nil
}

type testServer struct {
	t       *testing.T
	handler http.Handler
	uow     *memory.UnitOfWorkFactory
	service *domain.UserService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	log := zerolog.Nop()
	store := memory.NewStore()
	uow := memory.NewUnitOfWorkFactory(store)
	gateway := memory.NewQueryGateway(store)
	service := domain.NewUserService(sha256Hasher{})
	issuer := auth.NewTokenIssuer(key, "taskhub", "taskhub-api")
	audit := queue.NewNoopEnqueuer()

	createUser := command.NewCreateUser(uow, service, audit)
	router := NewRouter(RouterConfig{
		AuthHandler: handlers.NewAuthHandler(createUser,
			command.NewLogin(store.Users(), service, issuer, lockout.NewMemoryStore(3, 60), command.DefaultAccessTokenExpiry),
			command.NewChangePassword(uow, service, audit), log),
		UsersHandler: handlers.NewUsersHandler(createUser,
			command.NewSetUserActive(uow, audit), command.NewPromoteUser(uow, audit),
			query.NewListUsers(gateway), query.NewGetCurrentUser(), log),
		ProjectsHandler: handlers.NewProjectsHandler(command.NewCreateProject(uow, audit), command.NewRenameProject(uow, audit), command.NewCreateTask(uow, audit),
			query.NewListProjects(gateway), query.NewListTasks(store.Projects(), gateway), log),
		TasksHandler:  handlers.NewTasksHandler(command.NewChangeTaskStatus(uow, audit), command.NewDeleteTask(uow, audit), log),
		HealthHandler: handlers.NewHealthHandler(nil),
		Identity:      middleware.NewIdentity(identity.NewFactory(issuer, store.Users())),
		Log:           log,
		CORS:          middleware.CORS([]string{"https://app.example.com"}),
		Metrics:       true,
	})
	return &testServer{t: t, handler: router, uow: uow, service: service}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// signup registers username and returns a bearer token for it.
func (s *testServer) signup(username string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/auth/signup", "", map[string]string{"username": username, "password": "Secr3t!Pass"})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	return s.login(username, "Secr3t!Pass")
}

func (s *testServer) login(username, password string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/auth/login", "", map[string]string{"username": username, "password": password})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeBody(s.t, rec)["access_token"].(string)
}

func (s *testServer) seedSuperAdmin() string {
	s.t.Helper()
	created, err := command.NewEnsureSuperAdmin(s.uow, s.service).Execute(context.Background(), "root", "Secr3t!Pass")
	require.NoError(s.t, err)
	require.True(s.t, created)
	return s.login("root", "Secr3t!Pass")
}

func TestSignupAndLogin(t *testing.T) {
	s := newTestServer(t)
	token := s.signup("alice99")

	rec := s.do(http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decodeBody(t, rec)
	assert.Equal(t, "alice99", me["username"])
	assert.Equal(t, "USER", me["role"])
	assert.NotContains(t, rec.Body.String(), "password")

	rec = s.do(http.MethodPost, "/auth/signup", "", map[string]string{"username": "alice99", "password": "Other!Pass1"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "alice99", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, handlers.ErrCodeInvalidCredentials, decodeBody(t, rec)["code"])
}

func TestLoginLockout(t *testing.T) {
	s := newTestServer(t)
	s.signup("alice99")
	for range 3 {
		s.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "alice99", "password": "wrong-pass"})
	}
	rec := s.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "alice99", "password": "Secr3t!Pass"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, handlers.ErrCodeAccountLocked, decodeBody(t, rec)["code"])
}

func TestRequestsWithoutIdentity(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/users/me", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/users/me", "not-a-jwt", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/projects", "", map[string]string{"name": "x"}).Code)
}

func TestSignupValidation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/auth/signup", "", map[string]string{"username": "1abc", "password": "Secr3t!Pass"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, handlers.ErrCodeValidation, body["code"])
	assert.Equal(t, "username", body["field"])

	rec = s.do(http.MethodPost, "/auth/signup", "", map[string]string{"username": "alice99", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/auth/signup", "", map[string]string{"username": "alice99", "password": "Secr3t!Pass", "role": "ADMIN"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "unknown fields are rejected")
}

func TestProjectAndTaskFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.signup("alice99")

	rec := s.do(http.MethodPost, "/projects", token, map[string]string{"name": "Launch"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	projectID := decodeBody(t, rec)["id"].(string)

	var taskIDs []string
	for _, title := range []string{"one", "two", "three"} {
		rec = s.do(http.MethodPost, "/projects/"+projectID+"/tasks", token, map[string]string{"title": title})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		task := decodeBody(t, rec)
		assert.Equal(t, "MEDIUM", task["priority"])
		assert.Equal(t, "TODO", task["status"])
		taskIDs = append(taskIDs, task["id"].(string))
	}

	rec = s.do(http.MethodGet, "/projects/"+projectID+"/tasks?page=1&size=2", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decodeBody(t, rec)
	assert.EqualValues(t, 3, page["total"])
	assert.Len(t, page["items"], 2)

	rec = s.do(http.MethodGet, "/projects", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	projects := decodeBody(t, rec)["items"].([]any)
	require.Len(t, projects, 1)
	assert.EqualValues(t, 3, projects[0].(map[string]any)["task_count"])

	rec = s.do(http.MethodPatch, "/tasks/"+taskIDs[0], token, map[string]string{"status": "DONE"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(http.MethodPatch, "/tasks/"+taskIDs[0], token, map[string]string{"status": "IN_PROGRESS", "priority": "HIGH"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "HIGH", decodeBody(t, rec)["priority"])

	rec = s.do(http.MethodGet, "/projects/"+projectID+"/tasks?priority=HIGH", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decodeBody(t, rec)["total"])

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/tasks/"+taskIDs[1], token, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/tasks/"+taskIDs[1], token, nil).Code)
}

func TestTaskListQueryValidation(t *testing.T) {
	s := newTestServer(t)
	token := s.signup("alice99")
	rec := s.do(http.MethodPost, "/projects", token, map[string]string{"name": "Launch"})
	require.Equal(t, http.StatusCreated, rec.Code)
	projectID := decodeBody(t, rec)["id"].(string)

	for _, q := range []string{"?status=OPEN", "?priority=NOW", "?size=101", "?page=-1", "?size=abc", "?page=99999999999&size=100"} {
		rec = s.do(http.MethodGet, "/projects/"+projectID+"/tasks"+q, token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
	rec = s.do(http.MethodGet, "/projects/not-a-uuid/tasks", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProjectIsolation(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup("alice99")
	bob := s.signup("bob1234")

	rec := s.do(http.MethodPost, "/projects", alice, map[string]string{"name": "Launch"})
	require.Equal(t, http.StatusCreated, rec.Code)
	projectID := decodeBody(t, rec)["id"].(string)

	rec = s.do(http.MethodPost, "/projects/"+projectID+"/tasks", bob, map[string]string{"title": "sneaky"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = s.do(http.MethodGet, "/projects/"+projectID+"/tasks", bob, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodGet, "/projects", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, decodeBody(t, rec)["total"])
	rec = s.do(http.MethodPatch, "/projects/"+projectID, bob, map[string]string{"name": "Mine"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestProjectRenameAndTaskRetitle(t *testing.T) {
	s := newTestServer(t)
	token := s.signup("alice99")

	rec := s.do(http.MethodPost, "/projects", token, map[string]string{"name": "Launch"})
	require.Equal(t, http.StatusCreated, rec.Code)
	projectID := decodeBody(t, rec)["id"].(string)

	rec = s.do(http.MethodPatch, "/projects/"+projectID, token, map[string]string{"name": "Relaunch"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Relaunch", decodeBody(t, rec)["name"])

	rec = s.do(http.MethodPatch, "/projects/"+projectID, token, map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(http.MethodPatch, "/projects/"+projectID, "", map[string]string{"name": "Anon"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = s.do(http.MethodPatch, "/projects/00000000-0000-4000-8000-000000000000", token, map[string]string{"name": "Ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/projects", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	projects := decodeBody(t, rec)["items"].([]any)
	require.Len(t, projects, 1)
	assert.Equal(t, "Relaunch", projects[0].(map[string]any)["name"])

	rec = s.do(http.MethodPost, "/projects/"+projectID+"/tasks", token, map[string]string{"title": "draft"})
	require.Equal(t, http.StatusCreated, rec.Code)
	taskID := decodeBody(t, rec)["id"].(string)

	rec = s.do(http.MethodPatch, "/tasks/"+taskID, token, map[string]string{"title": "Final draft"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	task := decodeBody(t, rec)
	assert.Equal(t, "Final draft", task["title"])
	assert.Equal(t, "TODO", task["status"])

	rec = s.do(http.MethodPatch, "/tasks/"+taskID, token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdministration(t *testing.T) {
	s := newTestServer(t)
	root := s.seedSuperAdmin()
	alice := s.signup("alice99")

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/users/", alice, nil).Code)

	rec := s.do(http.MethodGet, "/users/?size=10", root, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decodeBody(t, rec)["total"])

	rec = s.do(http.MethodGet, "/users/me", alice, nil)
	aliceID := decodeBody(t, rec)["id"].(string)

	rec = s.do(http.MethodPatch, "/users/"+aliceID+"/role", root, map[string]string{"role": "ADMIN"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "ADMIN", decodeBody(t, rec)["role"])

	rec = s.do(http.MethodPost, "/users/", root, map[string]string{"username": "carol77", "password": "Secr3t!Pass", "role": "ADMIN"})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPatch, "/users/"+aliceID+"/active", root, map[string]bool{"active": false})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["is_active"])

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/users/me", alice, nil).Code,
		"tokens of deactivated users resolve to nobody")
	rec = s.do(http.MethodGet, "/users/?active=false", root, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decodeBody(t, rec)["total"])
}

func TestChangePassword(t *testing.T) {
	s := newTestServer(t)
	token := s.signup("alice99")

	rec := s.do(http.MethodPut, "/users/me/password", token, map[string]string{
		"current_password": "wrong-pass", "new_password": "N3w!Password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPut, "/users/me/password", token, map[string]string{
		"current_password": "Secr3t!Pass", "new_password": "N3w!Password"})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	s.login("alice99", "N3w!Password")
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])

	s.signup("alice99")
	rec = s.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "taskhub_http_request_duration_seconds")
	assert.Contains(t, rec.Body.String(), `taskhub_commands_total{command="signup",outcome="ok"}`)
}

func TestCORSPreflightBeforeRouting(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/projects/00000000-0000-4000-8000-000000000000", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	req.Header.Set("Access-Control-Request-Headers", "authorization, content-type")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	token := s.signup("alice99")
	req = httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
