package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/tasktracker/internal/api"
	"github.com/dmitrijs2005/tasktracker/internal/client/session"
)

// Register creates an account and stores the returned session.
func (c *HTTPClient) Register(ctx context.Context, email, password, username string) (*session.Record, error) {
	return c.authenticate(ctx, "/api/register", http.StatusCreated,
		api.RegisterRequest{Email: email, Password: password, Username: username})
}

// Login signs in with email and stores the returned session.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*session.Record, error) {
	return c.authenticate(ctx, "/api/login", http.StatusOK,
		api.LoginRequest{Email: email, Password: password})
}

func (c *HTTPClient) authenticate(ctx context.Context, path string, want int, body any) (*session.Record, error) {
	payload, err := encode(body)
	if err != nil {
		return nil, err
	}
	resp, err := c.send(ctx, http.MethodPost, path, payload, "")
	if err != nil {
		return nil, err
	}

	var out api.AuthResponse
	if err := decodeResponse(resp, want, &out); err != nil {
		return nil, err
	}

	rec := &session.Record{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		User:         session.User{ID: out.ID, Email: out.Email, Username: out.Username, Roles: out.Roles},
	}
	if err := c.store.Set(ctx, rec); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return rec, nil
}

// Logout forgets the stored session. Tokens stay valid on the server until
// they expire.
func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.store.Clear(ctx)
}

// Session returns the stored session or ErrNotAuthenticated.
func (c *HTTPClient) Session(ctx context.Context) (*session.Record, error) {
	rec, err := c.store.Get(ctx)
	if err != nil {
		return nil, ErrNotAuthenticated
	}
	return rec, nil
}

func pageQuery(path string, page, limit int) string {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// ListTasks fetches one page of tasks. Zero page or limit lets the server
// apply its defaults.
func (c *HTTPClient) ListTasks(ctx context.Context, page, limit int) (*api.TaskList, error) {
	resp, err := c.Do(ctx, http.MethodGet, pageQuery("/api/tasks", page, limit), nil)
	if err != nil {
		return nil, err
	}
	var out api.TaskList
	if err := decodeResponse(resp, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateTask(ctx context.Context, title string, assignedToID *int64) (*api.Task, error) {
	resp, err := c.Do(ctx, http.MethodPost, "/api/tasks", api.CreateTaskRequest{Title: title, AssignedToID: assignedToID})
	if err != nil {
		return nil, err
	}
	var out api.Task
	if err := decodeResponse(resp, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateTask(ctx context.Context, id int64, req api.UpdateTaskRequest) (*api.Task, error) {
	resp, err := c.Do(ctx, http.MethodPut, "/api/tasks/"+strconv.FormatInt(id, 10), req)
	if err != nil {
		return nil, err
	}
	var out api.Task
	if err := decodeResponse(resp, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteTask(ctx context.Context, id int64) error {
	resp, err := c.Do(ctx, http.MethodDelete, "/api/tasks/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return err
	}
	return decodeResponse(resp, http.StatusNoContent, nil)
}

func (c *HTTPClient) ListUsers(ctx context.Context, page, limit int) (*api.UserList, error) {
	resp, err := c.Do(ctx, http.MethodGet, pageQuery("/api/users", page, limit), nil)
	if err != nil {
		return nil, err
	}
	var out api.UserList
	if err := decodeResponse(resp, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the identity the server reads from the current access token.
func (c *HTTPClient) Me(ctx context.Context) (*api.MeResponse, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/api/me", nil)
	if err != nil {
		return nil, err
	}
	var out api.MeResponse
	if err := decodeResponse(resp, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health reports server and database liveness. A reachable server with a
// broken database yields OK == false and a nil error.
func (c *HTTPClient) Health(ctx context.Context) (*api.HealthResponse, error) {
	resp, err := c.send(ctx, http.MethodGet, "/api/health", nil, "")
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	var out api.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: health status %d", ErrUnavailable, resp.StatusCode)
	}
	return &out, nil
}
