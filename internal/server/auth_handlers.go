package server

import (
	"net/http"

	"github.com/Tomlord1122/tenant-backend/internal/service"
)

func (s *Server) signupHandler(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := s.authService.Signup(r.Context(), req)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, r, http.StatusOK, user)
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, err := s.authService.Login(r.Context(), req)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, r, http.StatusOK, token)
}

func (s *Server) meHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, r, http.StatusOK, service.NewUserResponse(currentUser(r)))
}
