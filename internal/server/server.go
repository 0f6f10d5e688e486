package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Tomlord1122/tenant-backend/internal/config"
	"github.com/Tomlord1122/tenant-backend/internal/service"
)

// HealthChecker reports the state of the backing store.
type HealthChecker interface {
	Health() map[string]string
}

// Services bundles the application services the handlers call.
type Services struct {
	Auth          service.AuthService
	Notes         service.NoteService
	Todos         service.TodoService
	Organizations service.OrganizationService
}

type Server struct {
	port        int
	corsOrigins []string

	authService service.AuthService
	noteService service.NoteService
	todoService service.TodoService
	orgService  service.OrganizationService
	db          HealthChecker

	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *metrics
}

func newServer(cfg config.Config, svc Services, db HealthChecker, log *zap.Logger) *Server {
	registry := prometheus.NewRegistry()
	return &Server{
		port:        cfg.Port,
		corsOrigins: cfg.CORS.Origins,
		authService: svc.Auth,
		noteService: svc.Notes,
		todoService: svc.Todos,
		orgService:  svc.Organizations,
		db:          db,
		logger:      log.Named("http"),
		registry:    registry,
		metrics:     newMetrics(registry),
	}
}

func NewServer(cfg config.Config, svc Services, db HealthChecker, log *zap.Logger) *http.Server {
	appServer := newServer(cfg, svc, db, log)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", appServer.port),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     zap.NewStdLog(appServer.logger),
	}

	return server
}
