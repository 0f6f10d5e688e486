package server

import (
	"net/http"

	"github.com/Tomlord1122/tenant-backend/internal/service"
)

func (s *Server) listTodosHandler(w http.ResponseWriter, r *http.Request) {
	todos, err := s.todoService.ListTodos(r.Context(), currentUser(r))
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, r, http.StatusOK, todos)
}

func (s *Server) listMyTodosHandler(w http.ResponseWriter, r *http.Request) {
	todos, err := s.todoService.ListMyTodos(r.Context(), currentUser(r))
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, r, http.StatusOK, todos)
}

func (s *Server) createTodoHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	todoResp, err := s.todoService.CreateTodo(r.Context(), currentUser(r), req)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, r, http.StatusCreated, todoResp)
}

func (s *Server) getTodoHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "todo")
	if !ok {
		return
	}

	todo, err := s.todoService.GetTodo(r.Context(), currentUser(r), id)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, r, http.StatusOK, todo)
}

func (s *Server) updateTodoHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "todo")
	if !ok {
		return
	}

	var req service.UpdateTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updatedTodo, err := s.todoService.UpdateTodo(r.Context(), currentUser(r), id, req)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, r, http.StatusOK, updatedTodo)
}

func (s *Server) deleteTodoHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "todo")
	if !ok {
		return
	}

	if err := s.todoService.DeleteTodo(r.Context(), currentUser(r), id); err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}

	respondWithMessage(w, r, "Todo deleted successfully")
}
