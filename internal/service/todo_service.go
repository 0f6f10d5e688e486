package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Tomlord1122/tenant-backend/internal/domain"
	"github.com/Tomlord1122/tenant-backend/internal/repository"
)

// CreateTodoRequest holds the data needed to create a new todo
type CreateTodoRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Completed bool   `json:"completed"`
}

// UpdateTodoRequest holds the data for updating an existing todo.
// Using pointers allows distinguishing between a field being omitted
// vs. being set to its zero value (e.g., setting Completed to false).
type UpdateTodoRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Completed *bool   `json:"completed"`
}

// TodoResponse is the standard representation of a Todo returned by the service.
type TodoResponse struct {
	ID                uint   `json:"id"`
	Title             string `json:"title"`
	Content           string `json:"content"`
	Completed         bool   `json:"completed"`
	OrganizationID    uint   `json:"organization_id"`
	CreatedBy         uint   `json:"created_by"`
	CreatedByUsername string `json:"created_by_username,omitempty"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// TodoService defines the operations for managing todos. It mirrors
// NoteService.
type TodoService interface {
	ListTodos(ctx context.Context, user *domain.User) ([]TodoResponse, error)
	ListMyTodos(ctx context.Context, user *domain.User) ([]TodoResponse, error)
	CreateTodo(ctx context.Context, user *domain.User, req CreateTodoRequest) (*TodoResponse, error)
	GetTodo(ctx context.Context, user *domain.User, id uint) (*TodoResponse, error)
	UpdateTodo(ctx context.Context, user *domain.User, id uint, req UpdateTodoRequest) (*TodoResponse, error)
	DeleteTodo(ctx context.Context, user *domain.User, id uint) error
}

// todoService implements the TodoService interface.
type todoService struct {
	repo   repository.TodoRepository
	logger *zap.Logger
}

// NewTodoService creates a new instance of todoService.
func NewTodoService(repo repository.TodoRepository, log *zap.Logger) TodoService {
	return &todoService{
		repo:   repo,
		logger: log,
	}
}

func errTodoNotFound() error {
	return domain.NotFound("Todo not found")
}

func (s *todoService) ListTodos(ctx context.Context, user *domain.User) ([]TodoResponse, error) {
	todos, err := s.repo.ListByOrganization(ctx, user.OrganizationID)
	if err != nil {
		return nil, domain.Internal("service.ListTodos", err)
	}
	return todoResponses(todos), nil
}

func (s *todoService) ListMyTodos(ctx context.Context, user *domain.User) ([]TodoResponse, error) {
	todos, err := s.repo.ListByCreator(ctx, user.OrganizationID, user.ID)
	if err != nil {
		return nil, domain.Internal("service.ListMyTodos", err)
	}
	return todoResponses(todos), nil
}

func (s *todoService) CreateTodo(ctx context.Context, user *domain.User, req CreateTodoRequest) (*TodoResponse, error) {
	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}

	newTodo := &domain.Todo{
		Title:          req.Title,
		Content:        req.Content,
		Completed:      req.Completed,
		OrganizationID: user.OrganizationID,
		CreatedBy:      user.ID,
	}
	if err := s.repo.Create(ctx, newTodo); err != nil {
		return nil, domain.Internal("service.CreateTodo", err)
	}

	resp := todoResponse(newTodo)
	resp.CreatedByUsername = user.Username
	return resp, nil
}

func (s *todoService) GetTodo(ctx context.Context, user *domain.User, id uint) (*TodoResponse, error) {
	todo, err := s.repo.FindWithAuthor(ctx, user.OrganizationID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errTodoNotFound()
		}
		return nil, domain.Internal("service.GetTodo", err)
	}

	resp := todoResponse(&todo.Todo)
	resp.CreatedByUsername = todo.CreatedByUsername
	return resp, nil
}

func (s *todoService) UpdateTodo(ctx context.Context, user *domain.User, id uint, req UpdateTodoRequest) (*TodoResponse, error) {
	const op = "service.UpdateTodo"
	if err := RequireAdmin(user); err != nil {
		return nil, err
	}
	if req.Title != nil {
		if err := validateTitle(*req.Title); err != nil {
			return nil, err
		}
	}

	existingTodo, err := s.repo.FindByID(ctx, user.OrganizationID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errTodoNotFound()
		}
		return nil, domain.Internal(op, err)
	}

	if req.Title != nil {
		existingTodo.Title = *req.Title
	}
	if req.Content != nil {
		existingTodo.Content = *req.Content
	}
	if req.Completed != nil {
		existingTodo.Completed = *req.Completed
	}

	if err := s.repo.Update(ctx, existingTodo); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errTodoNotFound()
		}
		return nil, domain.Internal(op, err)
	}

	return todoResponse(existingTodo), nil
}

func (s *todoService) DeleteTodo(ctx context.Context, user *domain.User, id uint) error {
	if err := RequireAdmin(user); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, user.OrganizationID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errTodoNotFound()
		}
		return domain.Internal("service.DeleteTodo", err)
	}
	s.logger.Info("Todo deleted", zap.Uint("todo_id", id), zap.Uint("deleted_by", user.ID))
	return nil
}

func todoResponse(t *domain.Todo) *TodoResponse {
	return &TodoResponse{
		ID:             t.ID,
		Title:          t.Title,
		Content:        t.Content,
		Completed:      t.Completed,
		OrganizationID: t.OrganizationID,
		CreatedBy:      t.CreatedBy,
		CreatedAt:      formatTime(t.CreatedAt),
		UpdatedAt:      formatTime(t.UpdatedAt),
	}
}

func todoResponses(todos []domain.TodoWithAuthor) []TodoResponse {
	responses := make([]TodoResponse, 0, len(todos)) // Pre-allocate slice capacity
	for i := range todos {
		resp := todoResponse(&todos[i].Todo)
		resp.CreatedByUsername = todos[i].CreatedByUsername
		responses = append(responses, *resp)
	}
	return responses
}
