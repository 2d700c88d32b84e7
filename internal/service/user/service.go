package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/leadwise/crm-backend-go/internal/domain/user"
	"github.com/leadwise/crm-backend-go/internal/domain/visibility"
	"github.com/leadwise/crm-backend-go/internal/pkg/database"
	"github.com/leadwise/crm-backend-go/internal/repository/postgresql"
)

type serviceImpl struct {
	db       *database.DB
	userRepo user.UserRepository
	roleRepo user.RoleRepository
	deptRepo user.DepartmentRepository
}

func NewService(
	db *database.DB,
	userRepo user.UserRepository,
	roleRepo user.RoleRepository,
	deptRepo user.DepartmentRepository,
) user.Service {
	return &serviceImpl{
		db:       db,
		userRepo: userRepo,
		roleRepo: roleRepo,
		deptRepo: deptRepo,
	}
}

// ==================== USER OPERATIONS ====================

func (s *serviceImpl) CreateUser(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if req.RoleID != nil {
		if _, err := s.roleRepo.GetByID(ctx, *req.RoleID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return user.UserResponse{}, user.ErrRoleNotFound
			}
			return user.UserResponse{}, err
		}
	}

	entity := user.User{
		Email:        req.Email,
		Name:         req.Name,
		RoleID:       req.RoleID,
		DepartmentID: req.DepartmentID,
		IsActive:     true,
	}

	created, err := s.userRepo.Create(ctx, entity)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return user.UserResponse{}, user.ErrUserEmailExists
			}
		}
		return user.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	return toUserResponse(created), nil
}

func (s *serviceImpl) GetUser(ctx context.Context, id string) (user.UserResponse, error) {
	entity, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.UserResponse{}, user.ErrUserNotFound
		}
		return user.UserResponse{}, err
	}

	return toUserResponse(entity), nil
}

func (s *serviceImpl) ListUsers(ctx context.Context, filter user.UserFilter) ([]user.UserResponse, int64, error) {
	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toUserResponse(u))
	}

	return responses, total, nil
}

func (s *serviceImpl) UpdateUser(ctx context.Context, req user.UpdateUserRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if req.RoleID != nil {
		if _, err := s.roleRepo.GetByID(ctx, *req.RoleID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return user.ErrRoleNotFound
			}
			return err
		}
	}

	return s.userRepo.Update(ctx, req)
}

func (s *serviceImpl) SetUserActive(ctx context.Context, id string, active bool) error {
	return s.userRepo.SetActive(ctx, id, active)
}

func (s *serviceImpl) PermissionsFor(ctx context.Context, userID string) ([]visibility.Entry, error) {
	entity, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	if !entity.IsActive {
		return nil, user.ErrUserInactive
	}
	if entity.RoleID == nil {
		return nil, nil
	}

	role, err := s.roleRepo.GetByID(ctx, *entity.RoleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Dangling role reference reads as no permissions, not a failure.
			return nil, nil
		}
		return nil, err
	}

	return role.Permissions, nil
}

// ==================== ROLE OPERATIONS ====================

func (s *serviceImpl) CreateRole(ctx context.Context, req user.CreateRoleRequest) (user.RoleResponse, error) {
	if err := req.Validate(); err != nil {
		return user.RoleResponse{}, err
	}

	if req.ParentRoleID != nil {
		if _, err := s.roleRepo.GetByID(ctx, *req.ParentRoleID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return user.RoleResponse{}, user.ErrRoleParentMissing
			}
			return user.RoleResponse{}, err
		}
	}

	entity := user.Role{
		Name:         req.Name,
		ParentRoleID: req.ParentRoleID,
		Permissions:  req.Permissions,
	}
	if entity.Permissions == nil {
		entity.Permissions = []visibility.Entry{}
	}

	created, err := s.roleRepo.Create(ctx, entity)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return user.RoleResponse{}, user.ErrRoleNameExists
			}
		}
		return user.RoleResponse{}, fmt.Errorf("failed to create role: %w", err)
	}

	return toRoleResponse(created), nil
}

func (s *serviceImpl) GetRole(ctx context.Context, id string) (user.RoleResponse, error) {
	entity, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.RoleResponse{}, user.ErrRoleNotFound
		}
		return user.RoleResponse{}, err
	}

	return toRoleResponse(entity), nil
}

func (s *serviceImpl) ListRoles(ctx context.Context) ([]user.RoleResponse, error) {
	roles, err := s.roleRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]user.RoleResponse, 0, len(roles))
	for _, r := range roles {
		responses = append(responses, toRoleResponse(r))
	}

	return responses, nil
}

func (s *serviceImpl) UpdateRole(ctx context.Context, req user.UpdateRoleRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if req.ParentRoleID != nil {
		if *req.ParentRoleID == req.ID {
			return user.ErrRoleParentMissing
		}
		if _, err := s.roleRepo.GetByID(ctx, *req.ParentRoleID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return user.ErrRoleParentMissing
			}
			return err
		}
	}

	err := s.roleRepo.Update(ctx, req)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return user.ErrRoleNameExists
			}
		}
		return err
	}
	return nil
}

// DeleteRole removes an unused role. The in-use checks and the delete run
// in one transaction so a concurrent assignment cannot slip between them.
func (s *serviceImpl) DeleteRole(ctx context.Context, id string) error {
	return postgresql.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		holders, err := s.userRepo.ListByRole(ctx, id)
		if err != nil {
			return err
		}
		if len(holders) > 0 {
			return user.ErrRoleInUse
		}

		children, err := s.roleRepo.GetChildren(ctx, id)
		if err != nil {
			return err
		}
		if len(children) > 0 {
			return user.ErrRoleInUse
		}

		return s.roleRepo.Delete(ctx, id)
	})
}

// ==================== DEPARTMENT OPERATIONS ====================

func (s *serviceImpl) CreateDepartment(ctx context.Context, req user.CreateDepartmentRequest) (user.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return user.DepartmentResponse{}, err
	}

	created, err := s.deptRepo.Create(ctx, user.Department{Name: req.Name})
	if err != nil {
		return user.DepartmentResponse{}, fmt.Errorf("failed to create department: %w", err)
	}

	return user.DepartmentResponse{
		ID:        created.ID,
		Name:      created.Name,
		CreatedAt: created.CreatedAt.Format(time.RFC3339),
		UpdatedAt: created.UpdatedAt.Format(time.RFC3339),
	}, nil
}

func (s *serviceImpl) ListDepartments(ctx context.Context) ([]user.DepartmentResponse, error) {
	depts, err := s.deptRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]user.DepartmentResponse, 0, len(depts))
	for _, d := range depts {
		responses = append(responses, user.DepartmentResponse{
			ID:        d.ID,
			Name:      d.Name,
			CreatedAt: d.CreatedAt.Format(time.RFC3339),
			UpdatedAt: d.UpdatedAt.Format(time.RFC3339),
		})
	}

	return responses, nil
}

func (s *serviceImpl) DeleteDepartment(ctx context.Context, id string) error {
	return s.deptRepo.Delete(ctx, id)
}

// ==================== MAPPERS ====================

func toUserResponse(u user.User) user.UserResponse {
	return user.UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		RoleID:         u.RoleID,
		RoleName:       u.RoleName,
		DepartmentID:   u.DepartmentID,
		DepartmentName: u.DepartmentName,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      u.UpdatedAt.Format(time.RFC3339),
	}
}

func toRoleResponse(r user.Role) user.RoleResponse {
	perms := r.Permissions
	if perms == nil {
		perms = []visibility.Entry{}
	}
	return user.RoleResponse{
		ID:           r.ID,
		Name:         r.Name,
		ParentRoleID: r.ParentRoleID,
		Permissions:  perms,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    r.UpdatedAt.Format(time.RFC3339),
	}
}
