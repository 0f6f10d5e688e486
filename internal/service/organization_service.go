package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Tomlord1122/tenant-backend/internal/domain"
	"github.com/Tomlord1122/tenant-backend/internal/repository"
)

type OrganizationResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type UpdateUserRoleRequest struct {
	Role domain.Role `json:"role"`
}

// OrganizationService covers the caller's organization and the ADMIN-only
// management of its members. Operations taking an orgID check it against
// the caller before touching any data.
type OrganizationService interface {
	GetMyOrganization(ctx context.Context, user *domain.User) (*OrganizationResponse, error)
	ListUsers(ctx context.Context, admin *domain.User, orgID uint) ([]UserResponse, error)
	UpdateUserRole(ctx context.Context, admin *domain.User, orgID, userID uint, role domain.Role) (*UserResponse, error)
	RemoveUser(ctx context.Context, admin *domain.User, orgID, userID uint) error
}

type organizationService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewOrganizationService(store repository.Store, log *zap.Logger) OrganizationService {
	return &organizationService{
		store:  store,
		logger: log,
	}
}

func errUserNotFound() error {
	return domain.NotFound("User not found")
}

func (s *organizationService) GetMyOrganization(ctx context.Context, user *domain.User) (*OrganizationResponse, error) {
	org, err := s.store.Organizations().FindByID(ctx, user.OrganizationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("Organization not found")
		}
		return nil, domain.Internal("service.GetMyOrganization", err)
	}
	return &OrganizationResponse{
		ID:        org.ID,
		Name:      org.Name,
		CreatedAt: formatTime(org.CreatedAt),
	}, nil
}

// checkAdminOf runs the guards shared by every member-management operation.
func checkAdminOf(admin *domain.User, orgID uint) error {
	if err := RequireAdmin(admin); err != nil {
		return err
	}
	return RequireSameOrganization(admin, orgID)
}

func (s *organizationService) ListUsers(ctx context.Context, admin *domain.User, orgID uint) ([]UserResponse, error) {
	if err := checkAdminOf(admin, orgID); err != nil {
		return nil, err
	}

	users, err := s.store.Users().ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, domain.Internal("service.ListUsers", err)
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *NewUserResponse(&users[i]))
	}
	return responses, nil
}

func (s *organizationService) UpdateUserRole(ctx context.Context, admin *domain.User, orgID, userID uint, role domain.Role) (*UserResponse, error) {
	const op = "service.UpdateUserRole"
	if err := checkAdminOf(admin, orgID); err != nil {
		return nil, err
	}
	if userID == admin.ID {
		return nil, domain.Invalid("You cannot change your own role")
	}
	if !role.IsValid() {
		return nil, domain.Invalid("role must be ADMIN or MEMBER")
	}

	var updated *domain.User
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.Users().UpdateRole(ctx, orgID, userID, role); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return errUserNotFound()
			}
			return domain.Internal(op, err)
		}
		u, err := tx.Users().FindInOrganization(ctx, orgID, userID)
		if err != nil {
			return domain.Internal(op, err)
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User role changed",
		zap.Uint("user_id", userID),
		zap.Stringer("role", role),
		zap.Uint("changed_by", admin.ID))
	return NewUserResponse(updated), nil
}

// RemoveUser deletes a member. The notes and todos they created go with them.
func (s *organizationService) RemoveUser(ctx context.Context, admin *domain.User, orgID, userID uint) error {
	if err := checkAdminOf(admin, orgID); err != nil {
		return err
	}
	if userID == admin.ID {
		return domain.Invalid("You cannot remove yourself")
	}

	if err := s.store.Users().Delete(ctx, orgID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errUserNotFound()
		}
		return domain.Internal("service.RemoveUser", err)
	}

	s.logger.Info("User removed", zap.Uint("user_id", userID), zap.Uint("removed_by", admin.ID))
	return nil
}
