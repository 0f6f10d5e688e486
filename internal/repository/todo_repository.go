package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Tomlord1122/tenant-backend/internal/domain"
)

// gormTodoRepository implements TodoRepository using GORM
type gormTodoRepository struct {
	scoped *scopedRepository[domain.Todo, domain.TodoWithAuthor]
}

// NewGormTodoRepository creates a new GORM todo repository
func NewGormTodoRepository(db *gorm.DB) TodoRepository {
	return &gormTodoRepository{
		scoped: &scopedRepository[domain.Todo, domain.TodoWithAuthor]{
			db:      db,
			table:   "todos",
			columns: []string{"title", "content", "completed", "updated_at"},
		},
	}
}

func (r *gormTodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	return r.scoped.create(ctx, todo)
}

func (r *gormTodoRepository) FindByID(ctx context.Context, orgID, id uint) (*domain.Todo, error) {
	return r.scoped.findByID(ctx, orgID, id)
}

func (r *gormTodoRepository) FindWithAuthor(ctx context.Context, orgID, id uint) (*domain.TodoWithAuthor, error) {
	return r.scoped.findWithAuthor(ctx, orgID, id)
}

func (r *gormTodoRepository) ListByOrganization(ctx context.Context, orgID uint) ([]domain.TodoWithAuthor, error) {
	return r.scoped.list(ctx, orgID, 0)
}

func (r *gormTodoRepository) ListByCreator(ctx context.Context, orgID, userID uint) ([]domain.TodoWithAuthor, error) {
	return r.scoped.list(ctx, orgID, userID)
}

// Update writes the mutable columns of todo. The row must still belong to
// todo.OrganizationID.
func (r *gormTodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	return r.scoped.update(ctx, todo, todo.OrganizationID)
}

// Delete permanently removes a todo.
func (r *gormTodoRepository) Delete(ctx context.Context, orgID, id uint) error {
	return r.scoped.delete(ctx, orgID, id)
}
