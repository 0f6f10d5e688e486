package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Tomlord1122/tenant-backend/internal/domain"
	"github.com/Tomlord1122/tenant-backend/internal/repository"
)

const maxTitleLength = 200

// CreateNoteRequest holds the data needed to create a new note. The
// organization and creator always come from the authenticated user.
type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateNoteRequest holds a partial update. Nil fields are left unchanged.
type UpdateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type NoteResponse struct {
	ID                uint   `json:"id"`
	Title             string `json:"title"`
	Content           string `json:"content"`
	OrganizationID    uint   `json:"organization_id"`
	CreatedBy         uint   `json:"created_by"`
	CreatedByUsername string `json:"created_by_username,omitempty"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// NoteService defines the operations for managing notes. Every operation is
// confined to the caller's organization.
type NoteService interface {
	// ListNotes returns all notes of the caller's organization.
	ListNotes(ctx context.Context, user *domain.User) ([]NoteResponse, error)

	// ListMyNotes returns the notes the caller created.
	ListMyNotes(ctx context.Context, user *domain.User) ([]NoteResponse, error)

	CreateNote(ctx context.Context, user *domain.User, req CreateNoteRequest) (*NoteResponse, error)

	// GetNote returns a not found error for notes of other organizations.
	GetNote(ctx context.Context, user *domain.User, id uint) (*NoteResponse, error)

	// UpdateNote and DeleteNote require an ADMIN caller.
	UpdateNote(ctx context.Context, user *domain.User, id uint, req UpdateNoteRequest) (*NoteResponse, error)
	DeleteNote(ctx context.Context, user *domain.User, id uint) error
}

type noteService struct {
	repo   repository.NoteRepository
	logger *zap.Logger
}

func NewNoteService(repo repository.NoteRepository, log *zap.Logger) NoteService {
	return &noteService{
		repo:   repo,
		logger: log,
	}
}

func errNoteNotFound() error {
	return domain.NotFound("Note not found")
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return domain.Invalid("title cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return domain.Invalid("title must be at most 200 characters")
	}
	return nil
}

func (s *noteService) ListNotes(ctx context.Context, user *domain.User) ([]NoteResponse, error) {
	notes, err := s.repo.ListByOrganization(ctx, user.OrganizationID)
	if err != nil {
		return nil, domain.Internal("service.ListNotes", err)
	}
	return noteResponses(notes), nil
}

func (s *noteService) ListMyNotes(ctx context.Context, user *domain.User) ([]NoteResponse, error) {
	notes, err := s.repo.ListByCreator(ctx, user.OrganizationID, user.ID)
	if err != nil {
		return nil, domain.Internal("service.ListMyNotes", err)
	}
	return noteResponses(notes), nil
}

func (s *noteService) CreateNote(ctx context.Context, user *domain.User, req CreateNoteRequest) (*NoteResponse, error) {
	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}

	note := &domain.Note{
		Title:          req.Title,
		Content:        req.Content,
		OrganizationID: user.OrganizationID,
		CreatedBy:      user.ID,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, domain.Internal("service.CreateNote", err)
	}

	resp := noteResponse(note)
	resp.CreatedByUsername = user.Username
	return resp, nil
}

func (s *noteService) GetNote(ctx context.Context, user *domain.User, id uint) (*NoteResponse, error) {
	note, err := s.repo.FindWithAuthor(ctx, user.OrganizationID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errNoteNotFound()
		}
		return nil, domain.Internal("service.GetNote", err)
	}

	resp := noteResponse(&note.Note)
	resp.CreatedByUsername = note.CreatedByUsername
	return resp, nil
}

func (s *noteService) UpdateNote(ctx context.Context, user *domain.User, id uint, req UpdateNoteRequest) (*NoteResponse, error) {
	const op = "service.UpdateNote"
	if err := RequireAdmin(user); err != nil {
		return nil, err
	}
	if req.Title != nil {
		if err := validateTitle(*req.Title); err != nil {
			return nil, err
		}
	}

	note, err := s.repo.FindByID(ctx, user.OrganizationID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errNoteNotFound()
		}
		return nil, domain.Internal(op, err)
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}

	if err := s.repo.Update(ctx, note); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errNoteNotFound()
		}
		return nil, domain.Internal(op, err)
	}

	return noteResponse(note), nil
}

func (s *noteService) DeleteNote(ctx context.Context, user *domain.User, id uint) error {
	if err := RequireAdmin(user); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, user.OrganizationID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errNoteNotFound()
		}
		return domain.Internal("service.DeleteNote", err)
	}
	s.logger.Info("Note deleted", zap.Uint("note_id", id), zap.Uint("deleted_by", user.ID))
	return nil
}

func noteResponse(n *domain.Note) *NoteResponse {
	return &NoteResponse{
		ID:             n.ID,
		Title:          n.Title,
		Content:        n.Content,
		OrganizationID: n.OrganizationID,
		CreatedBy:      n.CreatedBy,
		CreatedAt:      formatTime(n.CreatedAt),
		UpdatedAt:      formatTime(n.UpdatedAt),
	}
}

func noteResponses(notes []domain.NoteWithAuthor) []NoteResponse {
	responses := make([]NoteResponse, 0, len(notes))
	for i := range notes {
		resp := noteResponse(&notes[i].Note)
		resp.CreatedByUsername = notes[i].CreatedByUsername
		responses = append(responses, *resp)
	}
	return responses
}
