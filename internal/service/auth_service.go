package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Tomlord1122/tenant-backend/internal/auth"
	"github.com/Tomlord1122/tenant-backend/internal/domain"
	"github.com/Tomlord1122/tenant-backend/internal/repository"
)

const (
	maxUsernameLength         = 50
	maxOrganizationNameLength = 100
)

// SignupRequest creates a user. OrganizationName selects the organization:
// an existing name joins it as MEMBER, a new name creates it with the user
// as ADMIN.
type SignupRequest struct {
	Username         string `json:"username"`
	Password         string `json:"password"`
	OrganizationName string `json:"organization_name"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// UserResponse is the public representation of a user. It never carries the
// password hash.
type UserResponse struct {
	ID             uint        `json:"id"`
	Username       string      `json:"username"`
	Role           domain.Role `json:"role"`
	OrganizationID uint        `json:"organization_id"`
	CreatedAt      string      `json:"created_at"`
}

func NewUserResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Role:           u.Role,
		OrganizationID: u.OrganizationID,
		CreatedAt:      formatTime(u.CreatedAt),
	}
}

// Tokens issues and verifies access tokens.
type Tokens interface {
	Issue(u *domain.User) (string, time.Time, error)
	Verify(token string) (*auth.Claims, error)
	TTL() time.Duration
}

// AuthService handles the identity flow.
type AuthService interface {
	// Signup creates a user and, when needed, its organization.
	Signup(ctx context.Context, req SignupRequest) (*UserResponse, error)

	// Login checks credentials and issues an access token.
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)

	// Authenticate resolves the user a bearer token belongs to. Any failure
	// (bad token, expired token, deleted user) is an unauthorized error.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

type authService struct {
	store  repository.Store
	tokens Tokens
	logger *zap.Logger
}

func NewAuthService(store repository.Store, tokens Tokens, log *zap.Logger) AuthService {
	return &authService{
		store:  store,
		tokens: tokens,
		logger: log,
	}
}

var errOrganizationRace = errors.New("organization created concurrently")

func errUsernameTaken() error {
	return domain.Invalid("Username already registered")
}

func errInvalidCredentials() error {
	return domain.Unauthorized("Incorrect username or password")
}

// ErrCredentials is the uniform message for unusable bearer tokens.
const ErrCredentials = "Could not validate credentials"

func (s *authService) Signup(ctx context.Context, req SignupRequest) (*UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	orgName := strings.TrimSpace(req.OrganizationName)

	switch {
	case username == "":
		return nil, domain.Invalid("username is required")
	case utf8.RuneCountInString(username) > maxUsernameLength:
		return nil, domain.Invalid("username must be at most 50 characters")
	case orgName == "":
		return nil, domain.Invalid("organization_name is required")
	case utf8.RuneCountInString(orgName) > maxOrganizationNameLength:
		return nil, domain.Invalid("organization_name must be at most 100 characters")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordEmpty) || errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, domain.Invalid(err.Error())
		}
		return nil, domain.Internal("service.Signup", err)
	}

	// A concurrent signup may create the same organization between our
	// lookup and insert; the second attempt then joins it.
	var user *domain.User
	for attempt := 0; attempt < 2; attempt++ {
		user, err = s.signup(ctx, username, hash, orgName)
		if !errors.Is(err, errOrganizationRace) {
			break
		}
	}
	if errors.Is(err, errOrganizationRace) {
		return nil, domain.Internal("service.Signup", err)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("User signed up",
		zap.Uint("user_id", user.ID),
		zap.Uint("organization_id", user.OrganizationID),
		zap.Stringer("role", user.Role))
	return NewUserResponse(user), nil
}

func (s *authService) signup(ctx context.Context, username, hash, orgName string) (*domain.User, error) {
	const op = "service.Signup"
	var created *domain.User

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		_, err := tx.Users().FindByUsername(ctx, username)
		if err == nil {
			return errUsernameTaken()
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return domain.Internal(op, err)
		}

		role := domain.RoleMember
		org, err := tx.Organizations().FindByName(ctx, orgName)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			org = &domain.Organization{Name: orgName}
			if err := tx.Organizations().Create(ctx, org); err != nil {
				if errors.Is(err, repository.ErrDuplicate) {
					return errOrganizationRace
				}
				return domain.Internal(op, err)
			}
			role = domain.RoleAdmin
		case err != nil:
			return domain.Internal(op, err)
		}

		user := &domain.User{
			Username:       username,
			PasswordHash:   hash,
			Role:           role,
			OrganizationID: org.ID,
		}
		if err := tx.Users().Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return errUsernameTaken()
			}
			return domain.Internal(op, err)
		}
		created = user
		return nil
	})
	return created, err
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.store.Users().FindByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, domain.Internal("service.Login", err)
		}
		_ = auth.CheckPasswordAgainstDummy(req.Password)
		return nil, errInvalidCredentials()
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return nil, errInvalidCredentials()
	}

	token, _, err := s.tokens.Issue(user)
	if err != nil {
		return nil, domain.Internal("service.Login", err)
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
	}, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		s.logger.Debug("Rejected bearer token", zap.Error(err))
		return nil, domain.Unauthorized(ErrCredentials)
	}

	user, err := s.store.Users().FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.Unauthorized(ErrCredentials)
		}
		return nil, domain.Internal("service.Authenticate", err)
	}
	if user.OrganizationID != claims.OrganizationID {
		return nil, domain.Unauthorized(ErrCredentials)
	}
	return user, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
