package inmem

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tomlord1122/tenant-backend/internal/domain"
	"github.com/Tomlord1122/tenant-backend/internal/repository"
)

func seed(t *testing.T, s *Store, orgName, username string) (*domain.Organization, *domain.User) {
	t.Helper()
	ctx := context.Background()

	org := &domain.Organization{Name: orgName}
	require.NoError(t, s.Organizations().Create(ctx, org))

	user := &domain.User{Username: username, PasswordHash: "x", Role: domain.RoleAdmin, OrganizationID: org.ID}
	require.NoError(t, s.Users().Create(ctx, user))
	return org, user
}

func TestUniqueConstraints(t *testing.T) {
	ctx := context.Background()
	s := New()
	org, _ := seed(t, s, "acme", "alice")

	err := s.Organizations().Create(ctx, &domain.Organization{Name: "acme"})
	require.ErrorIs(t, err, repository.ErrDuplicate)

	err = s.Users().Create(ctx, &domain.User{Username: "alice", Role: domain.RoleMember, OrganizationID: org.ID})
	require.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestTransactionRollback(t *testing.T) {
	ctx := context.Background()
	s := New()
	boom := errors.New("boom")

	err := s.Transaction(ctx, func(tx repository.Store) error {
		require.NoError(t, tx.Organizations().Create(ctx, &domain.Organization{Name: "acme"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Organizations().FindByName(ctx, "acme")
	require.ErrorIs(t, err, repository.ErrNotFound)

	err = s.Transaction(ctx, func(tx repository.Store) error {
		return tx.Organizations().Create(ctx, &domain.Organization{Name: "acme"})
	})
	require.NoError(t, err)

	org, err := s.Organizations().FindByName(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "acme", org.Name)
}

func TestTenantScopedItems(t *testing.T) {
	ctx := context.Background()
	s := New()
	org1, alice := seed(t, s, "acme", "alice")
	org2, bob := seed(t, s, "globex", "bob")

	n1 := &domain.Note{Title: "one", OrganizationID: org1.ID, CreatedBy: alice.ID}
	n2 := &domain.Note{Title: "two", OrganizationID: org2.ID, CreatedBy: bob.ID}
	require.NoError(t, s.Notes().Create(ctx, n1))
	require.NoError(t, s.Notes().Create(ctx, n2))

	list, err := s.Notes().ListByOrganization(ctx, org1.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "alice", list[0].CreatedByUsername)

	_, err = s.Notes().FindByID(ctx, org1.ID, n2.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	n2.OrganizationID = org1.ID
	require.ErrorIs(t, s.Notes().Update(ctx, n2), repository.ErrNotFound)
	require.ErrorIs(t, s.Notes().Delete(ctx, org1.ID, n2.ID), repository.ErrNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	s := New()
	org, alice := seed(t, s, "acme", "alice")

	require.NoError(t, s.Notes().Create(ctx, &domain.Note{Title: "n", OrganizationID: org.ID, CreatedBy: alice.ID}))
	require.NoError(t, s.Todos().Create(ctx, &domain.Todo{Title: "t", OrganizationID: org.ID, CreatedBy: alice.ID}))

	require.NoError(t, s.Users().Delete(ctx, org.ID, alice.ID))

	notes, err := s.Notes().ListByOrganization(ctx, org.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)

	todos, err := s.Todos().ListByOrganization(ctx, org.ID)
	require.NoError(t, err)
	assert.Empty(t, todos)
}
