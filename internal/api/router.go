package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/rsfire/erp/internal/api/handlers"
	mw "github.com/rsfire/erp/internal/api/middleware"
)

type Dependencies struct {
	AllowedOrigins   []string
	RateLimitRPS     float64
	RateLimitBurst   int
	Ping             handlers.Pinger
	ApprovalsHandler *handlers.ApprovalsHandler
	ProjectsHandler  *handlers.ProjectsHandler
	EmployeesHandler *handlers.EmployeesHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	// Built-in middleware
	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS(dep.AllowedOrigins))
	if dep.RateLimitRPS > 0 {
		r.Use(mw.RateLimit(dep.RateLimitRPS, dep.RateLimitBurst))
	}
	r.Use(chimid.Compress(5))

	// Health endpoints
	hh := handlers.NewHealthHandler(dep.Ping)
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)

	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/approvals", func(ar chi.Router) {
			ar.Post("/", dep.ApprovalsHandler.Request)
			ar.Get("/pending", dep.ApprovalsHandler.Pending)
			ar.Put("/resolve", dep.ApprovalsHandler.Resolve)
		})

		api.Route("/projects", func(pr chi.Router) {
			pr.Get("/", dep.ProjectsHandler.List)
			pr.Post("/", dep.ProjectsHandler.Create)
			pr.Get("/{id}", dep.ProjectsHandler.Get)
			pr.Put("/{id}", dep.ProjectsHandler.Update)
		})

		api.Get("/employees/{id}", dep.EmployeesHandler.Get)
	})

	return r
}
