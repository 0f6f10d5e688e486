package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.metrics.instrument)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.HelloWorldHandler)
	r.Get("/health", s.healthHandler)
	r.Method(http.MethodGet, "/metrics", s.metricsHandler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", s.signupHandler)
			r.Post("/login", s.loginHandler)
			r.With(s.authenticate).Get("/me", s.meHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Route("/notes", func(r chi.Router) {
				r.Get("/", s.listNotesHandler)
				r.Post("/", s.createNoteHandler)
				r.Get("/my-notes", s.listMyNotesHandler)
				r.Get("/{id}", s.getNoteHandler)
				r.With(s.requireAdmin).Put("/{id}", s.updateNoteHandler)
				r.With(s.requireAdmin).Delete("/{id}", s.deleteNoteHandler)
			})

			r.Route("/todos", func(r chi.Router) {
				r.Get("/", s.listTodosHandler)
				r.Post("/", s.createTodoHandler)
				r.Get("/my-todos", s.listMyTodosHandler)
				r.Get("/{id}", s.getTodoHandler)
				r.With(s.requireAdmin).Put("/{id}", s.updateTodoHandler)
				r.With(s.requireAdmin).Delete("/{id}", s.deleteTodoHandler)
			})

			r.Route("/organizations", func(r chi.Router) {
				r.Get("/me", s.getMyOrganizationHandler)
				r.Route("/{id}/users", func(r chi.Router) {
					r.Use(s.requireAdmin)
					r.Get("/", s.listOrganizationUsersHandler)
					r.Put("/{user_id}", s.updateUserRoleHandler)
					r.Delete("/{user_id}", s.removeUserHandler)
				})
			})
		})
	})

	return r
}

func (s *Server) HelloWorldHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, r, http.StatusOK, map[string]string{"message": "Multi-tenant notes and todos API"})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	healthStats := s.db.Health()
	if status, ok := healthStats["status"]; ok && status == "down" {
		respondWithJSON(w, r, http.StatusServiceUnavailable, healthStats)
		return
	}
	respondWithJSON(w, r, http.StatusOK, healthStats)
}
