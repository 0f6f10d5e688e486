package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Tomlord1122/tenant-backend/internal/domain"
)

type gormNoteRepository struct {
	scoped *scopedRepository[domain.Note, domain.NoteWithAuthor]
}

// NewGormNoteRepository creates a new GORM note repository
func NewGormNoteRepository(db *gorm.DB) NoteRepository {
	return &gormNoteRepository{
		scoped: &scopedRepository[domain.Note, domain.NoteWithAuthor]{
			db:      db,
			table:   "notes",
			columns: []string{"title", "content", "updated_at"},
		},
	}
}

func (r *gormNoteRepository) Create(ctx context.Context, note *domain.Note) error {
	return r.scoped.create(ctx, note)
}

func (r *gormNoteRepository) FindByID(ctx context.Context, orgID, id uint) (*domain.Note, error) {
	return r.scoped.findByID(ctx, orgID, id)
}

func (r *gormNoteRepository) FindWithAuthor(ctx context.Context, orgID, id uint) (*domain.NoteWithAuthor, error) {
	return r.scoped.findWithAuthor(ctx, orgID, id)
}

func (r *gormNoteRepository) ListByOrganization(ctx context.Context, orgID uint) ([]domain.NoteWithAuthor, error) {
	return r.scoped.list(ctx, orgID, 0)
}

func (r *gormNoteRepository) ListByCreator(ctx context.Context, orgID, userID uint) ([]domain.NoteWithAuthor, error) {
	return r.scoped.list(ctx, orgID, userID)
}

func (r *gormNoteRepository) Update(ctx context.Context, note *domain.Note) error {
	return r.scoped.update(ctx, note, note.OrganizationID)
}

func (r *gormNoteRepository) Delete(ctx context.Context, orgID, id uint) error {
	return r.scoped.delete(ctx, orgID, id)
}
