// Package inmem implements repository.Store in process memory. It is used by
// the test suites and by DATABASE_DRIVER=memory for local development; data
// does not survive a restart.
package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Tomlord1122/tenant-backend/internal/domain"
	"github.com/Tomlord1122/tenant-backend/internal/repository"
)

type state struct {
	orgs  map[uint]domain.Organization
	users map[uint]domain.User
	notes map[uint]domain.Note
	todos map[uint]domain.Todo

	nextOrgID, nextUserID, nextNoteID, nextTodoID uint
}

func newState() *state {
	return &state{
		orgs:  map[uint]domain.Organization{},
		users: map[uint]domain.User{},
		notes: map[uint]domain.Note{},
		todos: map[uint]domain.Todo{},
	}
}

func (s *state) clone() *state {
	c := &state{
		orgs:       make(map[uint]domain.Organization, len(s.orgs)),
		users:      make(map[uint]domain.User, len(s.users)),
		notes:      make(map[uint]domain.Note, len(s.notes)),
		todos:      make(map[uint]domain.Todo, len(s.todos)),
		nextOrgID:  s.nextOrgID,
		nextUserID: s.nextUserID,
		nextNoteID: s.nextNoteID,
		nextTodoID: s.nextTodoID,
	}
	for k, v := range s.orgs {
		c.orgs[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.notes {
		c.notes[k] = v
	}
	for k, v := range s.todos {
		c.todos[k] = v
	}
	return c
}

type db struct {
	mu  sync.Mutex
	st  *state
	now func() time.Time
}

// Store is an in-memory repository.Store. Transactions serialize all access
// and operate on a copy that replaces the live state on commit.
type Store struct {
	db *db
	tx *state // non-nil inside Transaction; db.mu is already held
}

var _ repository.Store = (*Store)(nil)

func New() *Store {
	return NewWithClock(time.Now)
}

// NewWithClock creates a Store that stamps created_at/updated_at with now.
func NewWithClock(now func() time.Time) *Store {
	return &Store{db: &db{st: newState(), now: now}}
}

func (s *Store) with(fn func(st *state) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return fn(s.db.st)
}

func (s *Store) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	if s.tx != nil {
		return fn(s)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	work := s.db.st.clone()
	if err := fn(&Store{db: s.db, tx: work}); err != nil {
		return err
	}
	s.db.st = work
	return nil
}

// Health reports the store as always available.
func (s *Store) Health() map[string]string {
	return map[string]string{
		"status":  "up",
		"message": "It's healthy",
		"driver":  "memory",
	}
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

func (s *Store) Organizations() repository.OrganizationRepository {
	return &organizationRepository{s: s}
}

func (s *Store) Users() repository.UserRepository {
	return &userRepository{s: s}
}

func (s *Store) Notes() repository.NoteRepository {
	return &noteRepository{s: s}
}

func (s *Store) Todos() repository.TodoRepository {
	return &todoRepository{s: s}
}

func sortedKeys[V any](m map[uint]V) []uint {
	keys := make([]uint, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
