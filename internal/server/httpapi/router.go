package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/events"
)

// Deps are the collaborators NewRouter wires into the handlers.
type Deps struct {
	Users      UserService
	Tasks      TaskService
	Health     HealthChecker
	Feed       events.Subscriber
	Verifier   TokenVerifier
	Logger     logging.Logger
	CORSOrigin string
}

// NewRouter builds the /api route tree. Everything except health, register,
// login and refresh sits behind the bearer gate.
func NewRouter(d Deps) http.Handler {
	h := &Handler{
		users:  d.Users,
		tasks:  d.Tasks,
		health: d.Health,
		feed:   d.Feed,
		logger: d.Logger,
		now:    time.Now,
	}

	r := chi.NewRouter()
	r.Use(RequestLogger(d.Logger))
	r.Use(middleware.Recoverer)
	r.Use(CORS(d.CORSOrigin))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.healthCheck)
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Post("/refresh", h.refresh)

		r.Group(func(r chi.Router) {
			r.Use(Gate(d.Verifier))

			r.Get("/me", h.me)
			r.Get("/users", h.listUsers)

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", h.listTasks)
				r.Post("/", h.createTask)
				r.Get("/events", h.taskFeed)
				r.Put("/{id}", h.updateTask)
				r.Delete("/{id}", h.deleteTask)
			})
		})
	})

	return r
}
