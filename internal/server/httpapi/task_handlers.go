package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/tasktracker/internal/api"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/pagination"
)

const msgTaskNotFound = "task not found"

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	res, err := h.tasks.List(r.Context(), pagination.ParseRequest(r.URL.Query()))
	if err != nil {
		h.internalError(w, r, "list tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, api.TaskList{
		Tasks:      toTasks(res.Items),
		Pagination: toPagination(res.Meta),
	})
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	var req api.CreateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.tasks.Create(r.Context(), req.Title, req.AssignedToID)
	if err != nil {
		h.serviceError(w, r, "create task", err, http.StatusNotFound, msgTaskNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, toTask(*task))
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	var req api.UpdateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	patch, err := toPatch(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.tasks.Update(r.Context(), id, patch)
	if err != nil {
		h.serviceError(w, r, "update task", err, http.StatusNotFound, msgTaskNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toTask(*task))
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	if err := h.tasks.Delete(r.Context(), id); err != nil {
		h.serviceError(w, r, "delete task", err, http.StatusNotFound, msgTaskNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return 0, false
	}
	return id, true
}

func toPatch(req api.UpdateTaskRequest) (models.TaskPatch, error) {
	patch := models.TaskPatch{Title: req.Title, Done: req.Done}

	raw := bytes.TrimSpace(req.AssignedToID)
	switch {
	case len(raw) == 0:
	case bytes.Equal(raw, []byte("null")):
		patch.ClearAssignee = true
	default:
		var id int64
		if err := json.Unmarshal(raw, &id); err != nil {
			return patch, fmt.Errorf("invalid assignedToId: %s", raw)
		}
		patch.AssignedToID = &id
	}
	return patch, nil
}
