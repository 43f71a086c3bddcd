package httpapi

import (
	"github.com/dmitrijs2005/tasktracker/internal/api"
	"github.com/dmitrijs2005/tasktracker/internal/server/events"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/pagination"
	"github.com/dmitrijs2005/tasktracker/internal/server/services"
)

func toPagination(m pagination.Meta) api.Pagination {
	return api.Pagination{
		CurrentPage:     m.CurrentPage,
		TotalPages:      m.TotalPages,
		TotalItems:      m.TotalItems,
		ItemsPerPage:    m.ItemsPerPage,
		HasNextPage:     m.HasNextPage,
		HasPreviousPage: m.HasPreviousPage,
	}
}

func toTask(t models.Task) api.Task {
	out := api.Task{
		ID:           t.ID,
		Title:        t.Title,
		Done:         t.Done,
		CreatedAt:    t.CreatedAt,
		AssignedToID: t.AssignedToID,
	}
	if t.AssignedTo != nil {
		out.AssignedTo = &api.Assignee{
			ID:      t.AssignedTo.ID,
			Email:   t.AssignedTo.Email,
			Profile: api.Profile{FullName: t.AssignedTo.FullName},
		}
	}
	return out
}

func toTasks(ts []models.Task) []api.Task {
	out := make([]api.Task, 0, len(ts))
	for _, t := range ts {
		out = append(out, toTask(t))
	}
	return out
}

func toUser(u models.User) api.User {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return api.User{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		Profile:   api.Profile{FullName: u.Username},
		Roles:     roles,
	}
}

func toUsers(us []models.User) []api.User {
	out := make([]api.User, 0, len(us))
	for _, u := range us {
		out = append(out, toUser(u))
	}
	return out
}

func toAuthResponse(res *services.AuthResult) api.AuthResponse {
	roles := res.User.Roles
	if roles == nil {
		roles = []string{}
	}
	return api.AuthResponse{
		ID:           res.User.ID,
		Email:        res.User.Email,
		Username:     res.User.Username,
		Roles:        roles,
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
	}
}

func toTaskEvent(e events.Event) api.TaskEvent {
	out := api.TaskEvent{Type: string(e.Type), TaskID: e.TaskID, At: e.At}
	if e.Task != nil {
		t := toTask(*e.Task)
		out.Task = &t
	}
	return out
}
