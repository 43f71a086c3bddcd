package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/tasktracker/internal/api"
	"github.com/dmitrijs2005/tasktracker/internal/client/client"
	"github.com/dmitrijs2005/tasktracker/internal/client/config"
	"github.com/dmitrijs2005/tasktracker/internal/client/session"
	"github.com/dmitrijs2005/tasktracker/internal/filex"
)

// apiClient is the part of *client.HTTPClient the commands use.
type apiClient interface {
	Register(ctx context.Context, email, password, username string) (*session.Record, error)
	Login(ctx context.Context, email, password string) (*session.Record, error)
	Logout(ctx context.Context) error
	Session(ctx context.Context) (*session.Record, error)
	ListTasks(ctx context.Context, page, limit int) (*api.TaskList, error)
	CreateTask(ctx context.Context, title string, assignedToID *int64) (*api.Task, error)
	UpdateTask(ctx context.Context, id int64, req api.UpdateTaskRequest) (*api.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	ListUsers(ctx context.Context, page, limit int) (*api.UserList, error)
	Me(ctx context.Context) (*api.MeResponse, error)
	WatchTasks(ctx context.Context, fn func(api.TaskEvent)) error
}

type App struct {
	config *config.Config
	api    apiClient
	db     *sql.DB
	user   *session.User
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	path, err := filex.EnsureParentDir(c.SessionDB)
	if err != nil {
		return nil, fmt.Errorf("error preparing session database: %w", err)
	}

	db, err := session.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("error initializing session database: %w", err)
	}

	app := &App{config: c, db: db, reader: bufio.NewReader(os.Stdin), out: os.Stdout}
	app.api = client.NewHTTPClient(c.ServerURL, session.NewSQLiteStore(db),
		client.WithTimeout(c.RequestTimeout),
		client.WithOnLogout(app.onLogout),
	)
	return app, nil
}

// onLogout runs when the client finds the session gone or expired.
func (a *App) onLogout() {
	if a.user != nil {
		fmt.Fprintln(a.out, "Session expired, please log in again.")
	}
	a.user = nil
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) status() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.user.Email)
}

// restoreSession picks up a session saved by an earlier run.
func (a *App) restoreSession(ctx context.Context) {
	if rec, err := a.api.Session(ctx); err == nil {
		u := rec.User
		a.user = &u
	}
}

func (a *App) Run(ctx context.Context) error {
	defer func() {
		if a.db != nil {
			_ = a.db.Close()
		}
	}()

	fmt.Fprintln(a.out, "Welcome to the task tracker CLI (type 'help' for commands)")
	a.restoreSession(ctx)
	runREPL(ctx, a, a.status, a.reader)
	return nil
}
