package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/api"
	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/events"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/pagination"
	"github.com/dmitrijs2005/tasktracker/internal/server/services"
)

// UserService is the subset of *services.UserService the handlers use.
type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error)
	Login(ctx context.Context, email string) (*services.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	List(ctx context.Context, req pagination.Request) (*pagination.Result[models.User], error)
}

// TaskService is the subset of *services.TaskService the handlers use.
type TaskService interface {
	List(ctx context.Context, req pagination.Request) (*pagination.Result[models.Task], error)
	Create(ctx context.Context, title string, assignedToID *int64) (*models.Task, error)
	Update(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
}

// HealthChecker is satisfied by *sql.DB.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	users  UserService
	tasks  TaskService
	health HealthChecker
	feed   events.Subscriber
	logger logging.Logger
	now    func() time.Time
}

// internalError logs err and answers 500 without leaking details.
func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.Error(r.Context(), op+" failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// serviceError maps the common service errors. notFound is the status and
// message used for common.ErrorNotFound, which differs per endpoint; zero
// means the endpoint never expects it and it is treated as internal.
func (h *Handler) serviceError(w http.ResponseWriter, r *http.Request, op string, err error, notFound int, notFoundMsg string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, detail(err, common.ErrorValidation))
	case errors.Is(err, common.ErrorAlreadyExists):
		writeError(w, http.StatusBadRequest, detail(err, common.ErrorAlreadyExists))
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusUnauthorized, msgInvalidToken)
	case notFound != 0 && errors.Is(err, common.ErrorNotFound):
		writeError(w, notFound, notFoundMsg)
	default:
		h.internalError(w, r, op, err)
	}
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.health.PingContext(ctx); err != nil {
		h.logger.Warn(r.Context(), "health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, api.HealthResponse{OK: false, TS: h.now().UTC(), Error: "database unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, api.HealthResponse{OK: true, TS: h.now().UTC()})
}
