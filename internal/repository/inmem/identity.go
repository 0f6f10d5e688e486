package inmem

import (
	"context"

	"github.com/Tomlord1122/tenant-backend/internal/domain"
	"github.com/Tomlord1122/tenant-backend/internal/repository"
)

type organizationRepository struct {
	s *Store
}

func (r *organizationRepository) Create(_ context.Context, org *domain.Organization) error {
	return r.s.with(func(st *state) error {
		for _, o := range st.orgs {
			if o.Name == org.Name {
				return repository.ErrDuplicate
			}
		}
		now := r.s.db.now()
		st.nextOrgID++
		org.ID = st.nextOrgID
		org.CreatedAt, org.UpdatedAt = now, now
		st.orgs[org.ID] = *org
		return nil
	})
}

func (r *organizationRepository) FindByID(_ context.Context, id uint) (*domain.Organization, error) {
	var out *domain.Organization
	err := r.s.with(func(st *state) error {
		o, ok := st.orgs[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &o
		return nil
	})
	return out, err
}

func (r *organizationRepository) FindByName(_ context.Context, name string) (*domain.Organization, error) {
	var out *domain.Organization
	err := r.s.with(func(st *state) error {
		for _, o := range st.orgs {
			if o.Name == name {
				o := o
				out = &o
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return out, err
}

type userRepository struct {
	s *Store
}

func (r *userRepository) Create(_ context.Context, user *domain.User) error {
	return r.s.with(func(st *state) error {
		if _, ok := st.orgs[user.OrganizationID]; !ok {
			return repository.ErrNotFound
		}
		for _, u := range st.users {
			if u.Username == user.Username {
				return repository.ErrDuplicate
			}
		}
		now := r.s.db.now()
		st.nextUserID++
		user.ID = st.nextUserID
		user.CreatedAt, user.UpdatedAt = now, now
		st.users[user.ID] = *user
		return nil
	})
}

func (r *userRepository) FindByID(_ context.Context, id uint) (*domain.User, error) {
	var out *domain.User
	err := r.s.with(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &u
		return nil
	})
	return out, err
}

func (r *userRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	var out *domain.User
	err := r.s.with(func(st *state) error {
		for _, u := range st.users {
			if u.Username == username {
				u := u
				out = &u
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return out, err
}

func (r *userRepository) FindInOrganization(_ context.Context, orgID, id uint) (*domain.User, error) {
	var out *domain.User
	err := r.s.with(func(st *state) error {
		u, ok := st.users[id]
		if !ok || u.OrganizationID != orgID {
			return repository.ErrNotFound
		}
		out = &u
		return nil
	})
	return out, err
}

func (r *userRepository) ListByOrganization(_ context.Context, orgID uint) ([]domain.User, error) {
	out := []domain.User{}
	err := r.s.with(func(st *state) error {
		for _, id := range sortedKeys(st.users) {
			if u := st.users[id]; u.OrganizationID == orgID {
				out = append(out, u)
			}
		}
		return nil
	})
	return out, err
}

func (r *userRepository) UpdateRole(_ context.Context, orgID, id uint, role domain.Role) error {
	return r.s.with(func(st *state) error {
		u, ok := st.users[id]
		if !ok || u.OrganizationID != orgID {
			return repository.ErrNotFound
		}
		u.Role = role
		u.UpdatedAt = r.s.db.now()
		st.users[id] = u
		return nil
	})
}

// Delete removes the user together with every note and todo they created.
func (r *userRepository) Delete(_ context.Context, orgID, id uint) error {
	return r.s.with(func(st *state) error {
		u, ok := st.users[id]
		if !ok || u.OrganizationID != orgID {
			return repository.ErrNotFound
		}
		delete(st.users, id)
		for nid, n := range st.notes {
			if n.CreatedBy == id {
				delete(st.notes, nid)
			}
		}
		for tid, t := range st.todos {
			if t.CreatedBy == id {
				delete(st.todos, tid)
			}
		}
		return nil
	})
}
