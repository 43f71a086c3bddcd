// Package api holds the JSON wire types shared by the HTTP server and the
// client. Field names follow the public REST contract.
package api

import (
	"encoding/json"
	"time"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Username string `json:"username"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	ID           int64    `json:"id"`
	Email        string   `json:"email"`
	Username     string   `json:"username"`
	Roles        []string `json:"roles"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type MeResponse struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	OK    bool      `json:"ok"`
	TS    time.Time `json:"ts"`
	Error string    `json:"error,omitempty"`
}

type Pagination struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	TotalItems      int  `json:"totalItems"`
	ItemsPerPage    int  `json:"itemsPerPage"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

type Profile struct {
	FullName string `json:"fullName"`
}

type Assignee struct {
	ID      int64   `json:"id"`
	Email   string  `json:"email"`
	Profile Profile `json:"profile"`
}

type Task struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Done         bool      `json:"done"`
	CreatedAt    time.Time `json:"createdAt"`
	AssignedToID *int64    `json:"assignedToId"`
	AssignedTo   *Assignee `json:"assignedTo"`
}

type TaskList struct {
	Tasks      []Task     `json:"tasks"`
	Pagination Pagination `json:"pagination"`
}

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	Profile   Profile   `json:"profile"`
	Roles     []string  `json:"roles"`
}

type UserList struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}

type CreateTaskRequest struct {
	Title        string `json:"title"`
	AssignedToID *int64 `json:"assignedToId,omitempty"`
}

// UpdateTaskRequest is a partial update. AssignedToID distinguishes an
// absent field (leave as is) from an explicit null (unassign).
type UpdateTaskRequest struct {
	Title        *string         `json:"title,omitempty"`
	Done         *bool           `json:"done,omitempty"`
	AssignedToID json.RawMessage `json:"assignedToId,omitempty"`
}

// Unassign returns an UpdateTaskRequest assignee value meaning "clear".
func Unassign() json.RawMessage { return json.RawMessage("null") }

// AssignTo returns an UpdateTaskRequest assignee value for id.
func AssignTo(id int64) json.RawMessage {
	b, _ := json.Marshal(id)
	return b
}

// TaskEvent is one message on the live task feed.
type TaskEvent struct {
	Type   string    `json:"type"`
	TaskID int64     `json:"taskId"`
	Task   *Task     `json:"task,omitempty"`
	At     time.Time `json:"at"`
}
