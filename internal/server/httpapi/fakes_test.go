package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/auth"
	"github.com/dmitrijs2005/tasktracker/internal/server/events"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/pagination"
	"github.com/dmitrijs2005/tasktracker/internal/server/services"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	registerFn func(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error)
	loginFn    func(ctx context.Context, email string) (*services.AuthResult, error)
	refreshFn  func(ctx context.Context, token string) (string, error)
	listFn     func(ctx context.Context, req pagination.Request) (*pagination.Result[models.User], error)
}

func (f *fakeUsers) Register(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error) {
	return f.registerFn(ctx, in)
}

func (f *fakeUsers) Login(ctx context.Context, email string) (*services.AuthResult, error) {
	return f.loginFn(ctx, email)
}

func (f *fakeUsers) Refresh(ctx context.Context, token string) (string, error) {
	return f.refreshFn(ctx, token)
}

func (f *fakeUsers) List(ctx context.Context, req pagination.Request) (*pagination.Result[models.User], error) {
	return f.listFn(ctx, req)
}

type fakeTasks struct {
	listFn   func(ctx context.Context, req pagination.Request) (*pagination.Result[models.Task], error)
	createFn func(ctx context.Context, title string, assignedToID *int64) (*models.Task, error)
	updateFn func(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (f *fakeTasks) List(ctx context.Context, req pagination.Request) (*pagination.Result[models.Task], error) {
	return f.listFn(ctx, req)
}

func (f *fakeTasks) Create(ctx context.Context, title string, assignedToID *int64) (*models.Task, error) {
	return f.createFn(ctx, title, assignedToID)
}

func (f *fakeTasks) Update(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	return f.updateFn(ctx, id, patch)
}

func (f *fakeTasks) Delete(ctx context.Context, id int64) error {
	return f.deleteFn(ctx, id)
}

type fakeHealth struct{ err error }

func (f fakeHealth) PingContext(context.Context) error { return f.err }

type testEnv struct {
	users  *fakeUsers
	tasks  *fakeTasks
	broker *events.MemoryBroker
	codec  *auth.Codec
	router http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	codec, err := auth.NewCodec("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)

	env := &testEnv{
		users:  &fakeUsers{},
		tasks:  &fakeTasks{},
		broker: events.NewMemoryBroker(8),
		codec:  codec,
	}
	t.Cleanup(func() { _ = env.broker.Close() })

	env.router = NewRouter(Deps{
		Users:    env.users,
		Tasks:    env.tasks,
		Health:   fakeHealth{},
		Feed:     env.broker,
		Verifier: codec,
		Logger:   logging.Nop{},
	})
	return env
}

func (e *testEnv) accessToken(t *testing.T) string {
	t.Helper()
	tok, err := e.codec.Issue(auth.Access, auth.Payload{SubjectID: 1, SubjectEmail: "ann@example.com"})
	require.NoError(t, err)
	return tok
}

// do sends a request through the router. A non-empty token is sent as a
// bearer credential.
func (e *testEnv) do(t *testing.T, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func ptr[T any](v T) *T { return &v }
