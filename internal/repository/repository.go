package repository

import (
	"context"
	"errors"

	"github.com/Tomlord1122/tenant-backend/internal/domain"
)

var (
	// ErrNotFound is returned when no row matches. Rows belonging to another
	// organization are reported the same way.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate record")
)

// OrganizationRepository defines the data operations on organizations.
type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	FindByID(ctx context.Context, id uint) (*domain.Organization, error)
	FindByName(ctx context.Context, name string) (*domain.Organization, error)
}

// UserRepository defines the data operations on users. Lookups that take an
// orgID only match users of that organization.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindInOrganization(ctx context.Context, orgID, id uint) (*domain.User, error)
	ListByOrganization(ctx context.Context, orgID uint) ([]domain.User, error)
	UpdateRole(ctx context.Context, orgID, id uint, role domain.Role) error
	Delete(ctx context.Context, orgID, id uint) error
}

// NoteRepository defines the tenant-scoped data operations on notes.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	FindByID(ctx context.Context, orgID, id uint) (*domain.Note, error)
	FindWithAuthor(ctx context.Context, orgID, id uint) (*domain.NoteWithAuthor, error)
	ListByOrganization(ctx context.Context, orgID uint) ([]domain.NoteWithAuthor, error)
	ListByCreator(ctx context.Context, orgID, userID uint) ([]domain.NoteWithAuthor, error)
	Update(ctx context.Context, note *domain.Note) error
	Delete(ctx context.Context, orgID, id uint) error
}

// TodoRepository defines the tenant-scoped data operations on todos.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) error
	FindByID(ctx context.Context, orgID, id uint) (*domain.Todo, error)
	FindWithAuthor(ctx context.Context, orgID, id uint) (*domain.TodoWithAuthor, error)
	ListByOrganization(ctx context.Context, orgID uint) ([]domain.TodoWithAuthor, error)
	ListByCreator(ctx context.Context, orgID, userID uint) ([]domain.TodoWithAuthor, error)
	Update(ctx context.Context, todo *domain.Todo) error
	Delete(ctx context.Context, orgID, id uint) error
}

// Store groups the repositories over one backing database. Transaction runs
// fn against a Store bound to a single transaction, committing when fn
// returns nil and rolling back otherwise.
type Store interface {
	Organizations() OrganizationRepository
	Users() UserRepository
	Notes() NoteRepository
	Todos() TodoRepository
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
