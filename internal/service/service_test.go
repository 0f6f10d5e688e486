package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Tomlord1122/tenant-backend/internal/auth"
	"github.com/Tomlord1122/tenant-backend/internal/domain"
	"github.com/Tomlord1122/tenant-backend/internal/repository/inmem"
)

const testSecret = "test-secret-key"

type fixture struct {
	store  *inmem.Store
	tokens *auth.TokenService
	auth   AuthService
	notes  NoteService
	todos  TodoService
	orgs   OrganizationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithStore(t, inmem.New())
}

func newFixtureWithStore(t *testing.T, store *inmem.Store) *fixture {
	t.Helper()
	log := zap.NewNop()
	tokens := auth.NewTokenService(testSecret, time.Hour)
	return &fixture{
		store:  store,
		tokens: tokens,
		auth:   NewAuthService(store, tokens, log),
		notes:  NewNoteService(store.Notes(), log),
		todos:  NewTodoService(store.Todos(), log),
		orgs:   NewOrganizationService(store, log),
	}
}

// signup registers username in orgName and returns the stored user.
func (f *fixture) signup(t *testing.T, username, orgName string) *domain.User {
	t.Helper()
	ctx := context.Background()
	resp, err := f.auth.Signup(ctx, SignupRequest{Username: username, Password: "password123", OrganizationName: orgName})
	require.NoError(t, err)
	u, err := f.store.Users().FindByID(ctx, resp.ID)
	require.NoError(t, err)
	return u
}

func requireCode(t *testing.T, err error, code, msg string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, domain.ErrorCode(err))
	if msg != "" {
		assert.Equal(t, msg, domain.ErrorMessage(err))
	}
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	admin, err := f.auth.Signup(ctx, SignupRequest{Username: "alice", Password: "password123", OrganizationName: "acme"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.NotZero(t, admin.OrganizationID)

	member, err := f.auth.Signup(ctx, SignupRequest{Username: "bob", Password: "password123", OrganizationName: "acme"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, member.Role)
	assert.Equal(t, admin.OrganizationID, member.OrganizationID)

	other, err := f.auth.Signup(ctx, SignupRequest{Username: "carol", Password: "password123", OrganizationName: "globex"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, other.Role)
	assert.NotEqual(t, admin.OrganizationID, other.OrganizationID)

	stored, err := f.store.Users().FindByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NoError(t, auth.CheckPassword(stored.PasswordHash, "password123"))
}

func TestSignupValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.signup(t, "alice", "acme")

	tests := []struct {
		name string
		req  SignupRequest
		msg  string
	}{
		{"duplicate username", SignupRequest{Username: "alice", Password: "password123", OrganizationName: "globex"}, "Username already registered"},
		{"empty username", SignupRequest{Username: "  ", Password: "password123", OrganizationName: "acme"}, "username is required"},
		{"empty organization", SignupRequest{Username: "bob", Password: "password123"}, "organization_name is required"},
		{"empty password", SignupRequest{Username: "bob", OrganizationName: "acme"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.auth.Signup(ctx, tt.req)
			requireCode(t, err, domain.EInvalid, tt.msg)
		})
	}

	// A rejected signup leaves no organization behind.
	_, err := f.store.Organizations().FindByName(ctx, "globex")
	assert.Error(t, err)
}

func TestSignupConcurrentSameOrganization(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	names := []string{"u1", "u2", "u3", "u4"}
	var wg sync.WaitGroup
	errs := make([]error, len(names))
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			_, errs[i] = f.auth.Signup(ctx, SignupRequest{Username: name, Password: "password123", OrganizationName: "acme"})
		}(i, name)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	org, err := f.store.Organizations().FindByName(ctx, "acme")
	require.NoError(t, err)
	users, err := f.store.Users().ListByOrganization(ctx, org.ID)
	require.NoError(t, err)
	require.Len(t, users, len(names))

	admins := 0
	for _, u := range users {
		if u.IsAdmin() {
			admins++
		}
	}
	assert.Equal(t, 1, admins)
}

func TestLoginAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.signup(t, "alice", "acme")

	tok, err := f.auth.Login(ctx, LoginRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", tok.TokenType)
	assert.Equal(t, int64(3600), tok.ExpiresIn)

	claims, err := f.tokens.Verify(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, claims.UserID)
	assert.Equal(t, alice.OrganizationID, claims.OrganizationID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, "alice", claims.Subject)

	u, err := f.auth.Authenticate(ctx, tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, u.ID)

	_, err = f.auth.Login(ctx, LoginRequest{Username: "alice", Password: "wrong"})
	requireCode(t, err, domain.EUnauthorized, "Incorrect username or password")

	_, err = f.auth.Login(ctx, LoginRequest{Username: "nobody", Password: "password123"})
	requireCode(t, err, domain.EUnauthorized, "Incorrect username or password")
}

func TestLoginRejectsSuffixBeyondBcryptLimit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	password := strings.Repeat("a", auth.MaxPasswordLength)

	_, err := f.auth.Signup(ctx, SignupRequest{Username: "alice", Password: password, OrganizationName: "acme"})
	require.NoError(t, err)

	_, err = f.auth.Login(ctx, LoginRequest{Username: "alice", Password: password})
	require.NoError(t, err)

	_, err = f.auth.Login(ctx, LoginRequest{Username: "alice", Password: password + "WRONG-SUFFIX"})
	requireCode(t, err, domain.EUnauthorized, "Incorrect username or password")
}

func TestAuthenticateRejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.signup(t, "alice", "acme")
	bob := f.signup(t, "bob", "acme")

	expired, _, err := auth.NewTokenService(testSecret, -time.Minute).Issue(alice)
	require.NoError(t, err)
	forged, _, err := auth.NewTokenService("another-secret", time.Hour).Issue(alice)
	require.NoError(t, err)
	removed, _, err := f.tokens.Issue(bob)
	require.NoError(t, err)
	require.NoError(t, f.orgs.RemoveUser(ctx, alice, alice.OrganizationID, bob.ID))

	for name, token := range map[string]string{
		"garbage":      "not-a-token",
		"expired":      expired,
		"wrong secret": forged,
		"deleted user": removed,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.auth.Authenticate(ctx, token)
			requireCode(t, err, domain.EUnauthorized, ErrCredentials)
		})
	}
}

func TestAuthenticateUsesCurrentRole(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.signup(t, "alice", "acme")
	bob := f.signup(t, "bob", "acme")

	token, _, err := f.tokens.Issue(bob)
	require.NoError(t, err)

	_, err = f.orgs.UpdateUserRole(ctx, alice, alice.OrganizationID, bob.ID, domain.RoleAdmin)
	require.NoError(t, err)

	u, err := f.auth.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())
}
