package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Tomlord1122/tenant-backend/internal/domain"
	"github.com/Tomlord1122/tenant-backend/internal/logger"
	"github.com/Tomlord1122/tenant-backend/internal/service"
)

type userContextKey struct{}

func withUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, u)
}

// currentUser returns the user set by authenticate. Handlers mounted behind
// authenticate can rely on it being non-nil.
func currentUser(r *http.Request) *domain.User {
	u, _ := r.Context().Value(userContextKey{}).(*domain.User)
	return u
}

// requestLogger logs one line per request and attaches a request-scoped
// logger to the context.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := s.logger.With(zap.String("request_id", middleware.GetReqID(r.Context())))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r.WithContext(logger.NewContextWithLogger(r.Context(), log)))

		log.Info("Request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("took", time.Since(start)))
	})
}

// authenticate resolves the bearer token into the current user. Every
// failure gets the same 401 response.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			respondUnauthorized(w, r, service.ErrCredentials)
			return
		}

		user, err := s.authService.Authenticate(r.Context(), token)
		if err != nil {
			s.respondWithServiceError(w, r, err)
			return
		}

		log := logger.FromContext(r.Context()).With(
			zap.Uint("user_id", user.ID),
			zap.Uint("organization_id", user.OrganizationID))
		ctx := logger.NewContextWithLogger(withUser(r.Context(), user), log)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin must be mounted after authenticate.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := service.RequireAdmin(currentUser(r)); err != nil {
			s.respondWithServiceError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
