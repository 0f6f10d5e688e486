package server

import (
	"net/http"

	"github.com/Tomlord1122/tenant-backend/internal/service"
)

func (s *Server) listNotesHandler(w http.ResponseWriter, r *http.Request) {
	notes, err := s.noteService.ListNotes(r.Context(), currentUser(r))
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, r, http.StatusOK, notes)
}

func (s *Server) listMyNotesHandler(w http.ResponseWriter, r *http.Request) {
	notes, err := s.noteService.ListMyNotes(r.Context(), currentUser(r))
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, r, http.StatusOK, notes)
}

func (s *Server) createNoteHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateNoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	note, err := s.noteService.CreateNote(r.Context(), currentUser(r), req)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, r, http.StatusCreated, note)
}

func (s *Server) getNoteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "note")
	if !ok {
		return
	}

	note, err := s.noteService.GetNote(r.Context(), currentUser(r), id)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, r, http.StatusOK, note)
}

func (s *Server) updateNoteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "note")
	if !ok {
		return
	}

	var req service.UpdateNoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	note, err := s.noteService.UpdateNote(r.Context(), currentUser(r), id, req)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, r, http.StatusOK, note)
}

func (s *Server) deleteNoteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "note")
	if !ok {
		return
	}

	if err := s.noteService.DeleteNote(r.Context(), currentUser(r), id); err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithMessage(w, r, "Note deleted successfully")
}
