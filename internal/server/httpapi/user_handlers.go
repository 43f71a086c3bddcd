package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/tasktracker/internal/api"
	"github.com/dmitrijs2005/tasktracker/internal/server/pagination"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	res, err := h.users.List(r.Context(), pagination.ParseRequest(r.URL.Query()))
	if err != nil {
		h.internalError(w, r, "list users", err)
		return
	}
	writeJSON(w, http.StatusOK, api.UserList{
		Users:      toUsers(res.Items),
		Pagination: toPagination(res.Meta),
	})
}
