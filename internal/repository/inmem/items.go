package inmem

import (
	"context"

	"github.com/Tomlord1122/tenant-backend/internal/domain"
	"github.com/Tomlord1122/tenant-backend/internal/repository"
)

// checkOwner enforces the foreign keys notes and todos carry.
func checkOwner(st *state, orgID, userID uint) error {
	if _, ok := st.orgs[orgID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := st.users[userID]; !ok {
		return repository.ErrNotFound
	}
	return nil
}

type noteRepository struct {
	s *Store
}

func (r *noteRepository) Create(_ context.Context, note *domain.Note) error {
	return r.s.with(func(st *state) error {
		if err := checkOwner(st, note.OrganizationID, note.CreatedBy); err != nil {
			return err
		}
		now := r.s.db.now()
		st.nextNoteID++
		note.ID = st.nextNoteID
		note.CreatedAt, note.UpdatedAt = now, now
		st.notes[note.ID] = *note
		return nil
	})
}

func (r *noteRepository) FindByID(_ context.Context, orgID, id uint) (*domain.Note, error) {
	var out *domain.Note
	err := r.s.with(func(st *state) error {
		n, ok := st.notes[id]
		if !ok || n.OrganizationID != orgID {
			return repository.ErrNotFound
		}
		out = &n
		return nil
	})
	return out, err
}

func (r *noteRepository) FindWithAuthor(_ context.Context, orgID, id uint) (*domain.NoteWithAuthor, error) {
	var out *domain.NoteWithAuthor
	err := r.s.with(func(st *state) error {
		n, ok := st.notes[id]
		if !ok || n.OrganizationID != orgID {
			return repository.ErrNotFound
		}
		out = &domain.NoteWithAuthor{Note: n, CreatedByUsername: st.users[n.CreatedBy].Username}
		return nil
	})
	return out, err
}

func (r *noteRepository) ListByOrganization(_ context.Context, orgID uint) ([]domain.NoteWithAuthor, error) {
	return r.list(orgID, 0)
}

func (r *noteRepository) ListByCreator(_ context.Context, orgID, userID uint) ([]domain.NoteWithAuthor, error) {
	return r.list(orgID, userID)
}

func (r *noteRepository) list(orgID, creatorID uint) ([]domain.NoteWithAuthor, error) {
	out := []domain.NoteWithAuthor{}
	err := r.s.with(func(st *state) error {
		for _, id := range sortedKeys(st.notes) {
			n := st.notes[id]
			if n.OrganizationID != orgID || (creatorID != 0 && n.CreatedBy != creatorID) {
				continue
			}
			out = append(out, domain.NoteWithAuthor{Note: n, CreatedByUsername: st.users[n.CreatedBy].Username})
		}
		return nil
	})
	return out, err
}

func (r *noteRepository) Update(_ context.Context, note *domain.Note) error {
	return r.s.with(func(st *state) error {
		cur, ok := st.notes[note.ID]
		if !ok || cur.OrganizationID != note.OrganizationID {
			return repository.ErrNotFound
		}
		cur.Title = note.Title
		cur.Content = note.Content
		cur.UpdatedAt = r.s.db.now()
		note.UpdatedAt = cur.UpdatedAt
		st.notes[note.ID] = cur
		return nil
	})
}

func (r *noteRepository) Delete(_ context.Context, orgID, id uint) error {
	return r.s.with(func(st *state) error {
		n, ok := st.notes[id]
		if !ok || n.OrganizationID != orgID {
			return repository.ErrNotFound
		}
		delete(st.notes, id)
		return nil
	})
}

type todoRepository struct {
	s *Store
}

func (r *todoRepository) Create(_ context.Context, todo *domain.Todo) error {
	return r.s.with(func(st *state) error {
		if err := checkOwner(st, todo.OrganizationID, todo.CreatedBy); err != nil {
			return err
		}
		now := r.s.db.now()
		st.nextTodoID++
		todo.ID = st.nextTodoID
		todo.CreatedAt, todo.UpdatedAt = now, now
		st.todos[todo.ID] = *todo
		return nil
	})
}

func (r *todoRepository) FindByID(_ context.Context, orgID, id uint) (*domain.Todo, error) {
	var out *domain.Todo
	err := r.s.with(func(st *state) error {
		t, ok := st.todos[id]
		if !ok || t.OrganizationID != orgID {
			return repository.ErrNotFound
		}
		out = &t
		return nil
	})
	return out, err
}

func (r *todoRepository) FindWithAuthor(_ context.Context, orgID, id uint) (*domain.TodoWithAuthor, error) {
	var out *domain.TodoWithAuthor
	err := r.s.with(func(st *state) error {
		t, ok := st.todos[id]
		if !ok || t.OrganizationID != orgID {
			return repository.ErrNotFound
		}
		out = &domain.TodoWithAuthor{Todo: t, CreatedByUsername: st.users[t.CreatedBy].Username}
		return nil
	})
	return out, err
}

func (r *todoRepository) ListByOrganization(_ context.Context, orgID uint) ([]domain.TodoWithAuthor, error) {
	return r.list(orgID, 0)
}

func (r *todoRepository) ListByCreator(_ context.Context, orgID, userID uint) ([]domain.TodoWithAuthor, error) {
	return r.list(orgID, userID)
}

func (r *todoRepository) list(orgID, creatorID uint) ([]domain.TodoWithAuthor, error) {
	out := []domain.TodoWithAuthor{}
	err := r.s.with(func(st *state) error {
		for _, id := range sortedKeys(st.todos) {
			t := st.todos[id]
			if t.OrganizationID != orgID || (creatorID != 0 && t.CreatedBy != creatorID) {
				continue
			}
			out = append(out, domain.TodoWithAuthor{Todo: t, CreatedByUsername: st.users[t.CreatedBy].Username})
		}
		return nil
	})
	return out, err
}

func (r *todoRepository) Update(_ context.Context, todo *domain.Todo) error {
	return r.s.with(func(st *state) error {
		cur, ok := st.todos[todo.ID]
		if !ok || cur.OrganizationID != todo.OrganizationID {
			return repository.ErrNotFound
		}
		cur.Title = todo.Title
		cur.Content = todo.Content
		cur.Completed = todo.Completed
		cur.UpdatedAt = r.s.db.now()
		todo.UpdatedAt = cur.UpdatedAt
		st.todos[todo.ID] = cur
		return nil
	})
}

func (r *todoRepository) Delete(_ context.Context, orgID, id uint) error {
	return r.s.with(func(st *state) error {
		t, ok := st.todos[id]
		if !ok || t.OrganizationID != orgID {
			return repository.ErrNotFound
		}
		delete(st.todos, id)
		return nil
	})
}
