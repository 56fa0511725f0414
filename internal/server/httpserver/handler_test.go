package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/avdonin/taskhub/internal/common"
	"github.com/avdonin/taskhub/internal/logging"
	"github.com/avdonin/taskhub/internal/server/auth"
	"github.com/avdonin/taskhub/internal/server/models"
)

// ---- test logger ----

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

// ---- fakes ----

type fakeUsers struct {
	regOut *models.User
	regErr error

	loginOut string
	loginErr error

	getOut *models.User
	getErr error

	registerCalls int
}

func (f *fakeUsers) Register(ctx context.Context, username, password string) (*models.User, error) {
	f.registerCalls++
	return f.regOut, f.regErr
}

func (f *fakeUsers) Login(ctx context.Context, username, password string) (string, error) {
	return f.loginOut, f.loginErr
}

func (f *fakeUsers) GetUserByLogin(ctx context.Context, username string) (*models.User, error) {
	return f.getOut, f.getErr
}

type fakeTasks struct {
	createOut *models.Task
	createErr error

	listOut []*models.Task
	listErr error

	getOut *models.Task
	getErr error

	updateOut *models.Task
	updateErr error

	deleteErr error

	lastUserID string
	lastFilter models.TaskFilter
}

func (f *fakeTasks) Create(ctx context.Context, title, description, userID string) (*models.Task, error) {
	f.lastUserID = userID
	return f.createOut, f.createErr
}

func (f *fakeTasks) List(ctx context.Context, filter models.TaskFilter, userID string) ([]*models.Task, error) {
	f.lastUserID = userID
	f.lastFilter = filter
	return f.listOut, f.listErr
}

func (f *fakeTasks) GetByID(ctx context.Context, id, userID string) (*models.Task, error) {
	f.lastUserID = userID
	return f.getOut, f.getErr
}

func (f *fakeTasks) UpdateStatus(ctx context.Context, id string, status models.TaskStatus, userID string) (*models.Task, error) {
	f.lastUserID = userID
	return f.updateOut, f.updateErr
}

func (f *fakeTasks) Delete(ctx context.Context, id, userID string) error {
	f.lastUserID = userID
	return f.deleteErr
}

// ---- helpers ----

const testSecret = "test-secret"

func newTestServer(t *testing.T, users *fakeUsers, tasks *fakeTasks) *HTTPServer {
	t.Helper()
	s, err := NewHTTPServer(":0", nopLogger{}, users, tasks, testSecret)
	if err != nil {
		t.Fatalf("NewHTTPServer error: %v", err)
	}
	return s
}

func doJSON(t *testing.T, s *HTTPServer, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AuthHeaderName, common.BearerPrefix+token)
	}
	rec := httptest.NewRecorder()
	s.newEcho().ServeHTTP(rec, req)
	return rec
}

func mintToken(t *testing.T, username string) string {
	t.Helper()
	tok, err := auth.GenerateToken(username, []byte(testSecret), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	return tok
}

// ---- auth handlers ----

func TestSignUp_Success(t *testing.T) {
	users := &fakeUsers{regOut: &models.User{ID: "u-1", UserName: "alice"}}
	s := newTestServer(t, users, &fakeTasks{})

	rec := doJSON(t, s, http.MethodPost, "/auth/signup", `{"username":"alice","password":"hunter22"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body)
	}
}

func TestSignUp_DuplicateUsername(t *testing.T) {
	users := &fakeUsers{regErr: common.ErrorDuplicateUsername}
	s := newTestServer(t, users, &fakeTasks{})

	rec := doJSON(t, s, http.MethodPost, "/auth/signup", `{"username":"alice","password":"hunter22"}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestSignUp_ShortPassword(t *testing.T) {
	users := &fakeUsers{}
	s := newTestServer(t, users, &fakeTasks{})

	rec := doJSON(t, s, http.MethodPost, "/auth/signup", `{"username":"alice","password":"short"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if users.registerCalls != 0 {
		t.Fatal("invalid credentials must never reach the store")
	}
}

func TestSignUp_InternalError(t *testing.T) {
	users := &fakeUsers{regErr: errors.New("db down")}
	s := newTestServer(t, users, &fakeTasks{})

	rec := doJSON(t, s, http.MethodPost, "/auth/signup", `{"username":"alice","password":"hunter22"}`, "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if strings.Contains(rec.Body.String(), "db down") {
		t.Fatal("internal error details must not leak to the client")
	}
}

func TestSignIn_Success(t *testing.T) {
	users := &fakeUsers{loginOut: "tok-123"}
	s := newTestServer(t, users, &fakeTasks{})

	rec := doJSON(t, s, http.MethodPost, "/auth/signin", `{"username":"alice","password":"hunter22"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	var resp SignInResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.AccessToken != "tok-123" {
		t.Fatalf("token: got %q", resp.AccessToken)
	}
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	users := &fakeUsers{loginErr: common.ErrorUnauthorized}
	s := newTestServer(t, users, &fakeTasks{})

	// wrong password and unknown username surface identically
	for _, body := range []string{
		`{"username":"alice","password":"wrong-pass"}`,
		`{"username":"nobody","password":"whatever1"}`,
	} {
		rec := doJSON(t, s, http.MethodPost, "/auth/signin", body, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
		}
		if !strings.Contains(rec.Body.String(), "invalid credentials") {
			t.Fatalf("unexpected body: %s", rec.Body)
		}
	}
}

// ---- task handlers ----

func authedServer(t *testing.T, tasks *fakeTasks) (*HTTPServer, string) {
	t.Helper()
	users := &fakeUsers{getOut: &models.User{ID: "u-1", UserName: "alice"}}
	return newTestServer(t, users, tasks), mintToken(t, "alice")
}

func TestListTasks_PassesFilterAndCaller(t *testing.T) {
	tasks := &fakeTasks{listOut: []*models.Task{{ID: "t-1", Title: "Buy milk", Status: models.StatusDone}}}
	s, token := authedServer(t, tasks)

	rec := doJSON(t, s, http.MethodGet, "/tasks?status=done&search=milk", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
	}
	if tasks.lastUserID != "u-1" {
		t.Fatalf("caller: got %q, want u-1", tasks.lastUserID)
	}
	if tasks.lastFilter.Status != models.StatusDone || tasks.lastFilter.Search != "milk" {
		t.Fatalf("filter: %+v", tasks.lastFilter)
	}
}

func TestListTasks_InvalidStatus(t *testing.T) {
	s, token := authedServer(t, &fakeTasks{})

	rec := doJSON(t, s, http.MethodGet, "/tasks?status=bogus", "", token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestListTasks_EmptyIsJSONArray(t *testing.T) {
	s, token := authedServer(t, &fakeTasks{})

	rec := doJSON(t, s, http.MethodGet, "/tasks", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("body: got %s, want []", got)
	}
}

func TestGetTask_NotFound(t *testing.T) {
	tasks := &fakeTasks{getErr: common.ErrorNotFound}
	s, token := authedServer(t, tasks)

	rec := doJSON(t, s, http.MethodGet, "/tasks/t-9", "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestCreateTask_Success(t *testing.T) {
	tasks := &fakeTasks{createOut: &models.Task{ID: "t-1", Title: "Buy milk", Description: "2%", Status: models.StatusOpen}}
	s, token := authedServer(t, tasks)

	rec := doJSON(t, s, http.MethodPost, "/tasks", `{"title":"Buy milk","description":"2%"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body)
	}

	var task models.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &task); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if task.Status != models.StatusOpen {
		t.Fatalf("status: got %q, want %q", task.Status, models.StatusOpen)
	}
}

func TestCreateTask_MissingTitle(t *testing.T) {
	s, token := authedServer(t, &fakeTasks{})

	rec := doJSON(t, s, http.MethodPost, "/tasks", `{"description":"2%"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUpdateTaskStatus_Success(t *testing.T) {
	tasks := &fakeTasks{updateOut: &models.Task{ID: "t-1", Status: models.StatusDone}}
	s, token := authedServer(t, tasks)

	rec := doJSON(t, s, http.MethodPatch, "/tasks/t-1/status", `{"status":"done"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
	}
}

func TestUpdateTaskStatus_InvalidStatus(t *testing.T) {
	s, token := authedServer(t, &fakeTasks{})

	rec := doJSON(t, s, http.MethodPatch, "/tasks/t-1/status", `{"status":"bogus"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestDeleteTask_Success(t *testing.T) {
	s, token := authedServer(t, &fakeTasks{})

	rec := doJSON(t, s, http.MethodDelete, "/tasks/t-1", "", token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusNoContent)
	}
}

func TestDeleteTask_NotFound(t *testing.T) {
	tasks := &fakeTasks{deleteErr: common.ErrorNotFound}
	s, token := authedServer(t, tasks)

	rec := doJSON(t, s, http.MethodDelete, "/tasks/t-1", "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}
