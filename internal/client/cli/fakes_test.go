package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/tasktracker/internal/api"
	"github.com/dmitrijs2005/tasktracker/internal/client/session"
)

// fakeAPI implements apiClient. Unset funcs return zero values.
type fakeAPI struct {
	register   func(email, password, username string) (*session.Record, error)
	login      func(email, password string) (*session.Record, error)
	logoutErr  error
	session    *session.Record
	listTasks  func(page, limit int) (*api.TaskList, error)
	createTask func(title string, assignedToID *int64) (*api.Task, error)
	updateTask func(id int64, req api.UpdateTaskRequest) (*api.Task, error)
	deleteTask func(id int64) error
	listUsers  func(page, limit int) (*api.UserList, error)
	me         func() (*api.MeResponse, error)
	watch      func(ctx context.Context, fn func(api.TaskEvent)) error

	loggedOut bool
}

func (f *fakeAPI) Register(_ context.Context, email, password, username string) (*session.Record, error) {
	return f.register(email, password, username)
}
func (f *fakeAPI) Login(_ context.Context, email, password string) (*session.Record, error) {
	return f.login(email, password)
}
func (f *fakeAPI) Logout(context.Context) error {
	f.loggedOut = true
	return f.logoutErr
}
func (f *fakeAPI) Session(context.Context) (*session.Record, error) {
	if f.session == nil {
		return nil, io.EOF
	}
	return f.session, nil
}
func (f *fakeAPI) ListTasks(_ context.Context, page, limit int) (*api.TaskList, error) {
	return f.listTasks(page, limit)
}
func (f *fakeAPI) CreateTask(_ context.Context, title string, assignedToID *int64) (*api.Task, error) {
	return f.createTask(title, assignedToID)
}
func (f *fakeAPI) UpdateTask(_ context.Context, id int64, req api.UpdateTaskRequest) (*api.Task, error) {
	return f.updateTask(id, req)
}
func (f *fakeAPI) DeleteTask(_ context.Context, id int64) error { return f.deleteTask(id) }
func (f *fakeAPI) ListUsers(_ context.Context, page, limit int) (*api.UserList, error) {
	return f.listUsers(page, limit)
}
func (f *fakeAPI) Me(context.Context) (*api.MeResponse, error) { return f.me() }
func (f *fakeAPI) WatchTasks(ctx context.Context, fn func(api.TaskEvent)) error {
	return f.watch(ctx, fn)
}

func newTestApp(f *fakeAPI, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		api:    f,
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    &out,
	}, &out
}

// stubInputs feeds texts to successive getSimpleText calls and answers
// getPassword with password.
func stubInputs(t *testing.T, password []byte, texts ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		s := texts[0]
		texts = texts[1:]
		return s, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func loggedInRecord() *session.Record {
	return &session.Record{
		AccessToken:  "a",
		RefreshToken: "r",
		User:         session.User{ID: 1, Email: "alice@example.com", Username: "alice", Roles: []string{"user"}},
	}
}
