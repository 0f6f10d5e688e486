package server

import (
	"net/http"

	"github.com/Tomlord1122/tenant-backend/internal/service"
)

func (s *Server) getMyOrganizationHandler(w http.ResponseWriter, r *http.Request) {
	org, err := s.orgService.GetMyOrganization(r.Context(), currentUser(r))
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, r, http.StatusOK, org)
}

func (s *Server) listOrganizationUsersHandler(w http.ResponseWriter, r *http.Request) {
	orgID, ok := parseID(w, r, "id", "organization")
	if !ok {
		return
	}

	users, err := s.orgService.ListUsers(r.Context(), currentUser(r), orgID)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, r, http.StatusOK, users)
}

func (s *Server) updateUserRoleHandler(w http.ResponseWriter, r *http.Request) {
	orgID, ok := parseID(w, r, "id", "organization")
	if !ok {
		return
	}
	userID, ok := parseID(w, r, "user_id", "user")
	if !ok {
		return
	}

	var req service.UpdateUserRoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := s.orgService.UpdateUserRole(r.Context(), currentUser(r), orgID, userID, req.Role)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, r, http.StatusOK, user)
}

func (s *Server) removeUserHandler(w http.ResponseWriter, r *http.Request) {
	orgID, ok := parseID(w, r, "id", "organization")
	if !ok {
		return
	}
	userID, ok := parseID(w, r, "user_id", "user")
	if !ok {
		return
	}

	if err := s.orgService.RemoveUser(r.Context(), currentUser(r), orgID, userID); err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithMessage(w, r, "User removed successfully")
}
