package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gilandre/senator-dashboard-sub005/internal/dto"
	"github.com/gilandre/senator-dashboard-sub005/internal/model"
	"github.com/gilandre/senator-dashboard-sub005/internal/repository"
)

// ── 角色模块业务错误 ──

var (
	ErrRoleNameTaken = errors.New("角色名已存在")
)

// RoleService 角色/权限业务接口
type RoleService interface {
	Create(ctx context.Context, req *dto.CreateRoleRequest, callerID string) (*dto.RoleResponse, error)
	GetByID(ctx context.Context, id string) (*dto.RoleResponse, error)
	List(ctx context.Context) ([]dto.RoleResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateRoleRequest, callerID string) (*dto.RoleResponse, error)
	Delete(ctx context.Context, id string) error
	SetPermissions(ctx context.Context, id string, permissionIDs []string) (*dto.RoleResponse, error)
	ListPermissions(ctx context.Context) ([]dto.PermissionResponse, error)
}

type roleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRoleService 创建 RoleService 实例
func NewRoleService(repo *repository.Repository, logger *zap.Logger) RoleService {
	return &roleService{repo: repo, logger: logger}
}

func (s *roleService) Create(ctx context.Context, req *dto.CreateRoleRequest, callerID string) (*dto.RoleResponse, error) {
	if _, err := s.repo.Role.GetByName(ctx, req.Name); err == nil {
		return nil, ErrRoleNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询角色失败", zap.Error(err))
		return nil, err
	}

	role := &model.Role{
		Name:        req.Name,
		Description: req.Description,
	}
	role.CreatedBy = &callerID

	if err := s.repo.Role.Create(ctx, role); err != nil {
		s.logger.Error("创建角色失败", zap.Error(err))
		return nil, err
	}

	return toRoleResponse(role), nil
}

func (s *roleService) GetByID(ctx context.Context, id string) (*dto.RoleResponse, error) {
	role, err := s.repo.Role.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		s.logger.Error("查询角色失败", zap.Error(err))
		return nil, err
	}
	return toRoleResponse(role), nil
}

func (s *roleService) List(ctx context.Context) ([]dto.RoleResponse, error) {
	roles, err := s.repo.Role.List(ctx)
	if err != nil {
		s.logger.Error("查询角色列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.RoleResponse, 0, len(roles))
	for i := range roles {
		result = append(result, *toRoleResponse(&roles[i]))
	}
	return result, nil
}

func (s *roleService) Update(ctx context.Context, id string, req *dto.UpdateRoleRequest, callerID string) (*dto.RoleResponse, error) {
	role, err := s.repo.Role.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		s.logger.Error("查询角色失败", zap.Error(err))
		return nil, err
	}

	if req.Name != nil && *req.Name != role.Name {
		if _, err := s.repo.Role.GetByName(ctx, *req.Name); err == nil {
			return nil, ErrRoleNameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		role.Name = *req.Name
	}
	if req.Description != nil {
		role.Description = *req.Description
	}
	role.UpdatedBy = &callerID

	if err := s.repo.Role.Update(ctx, role); err != nil {
		s.logger.Error("更新角色失败", zap.Error(err))
		return nil, err
	}

	return toRoleResponse(role), nil
}

func (s *roleService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Role.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleNotFound
		}
		return err
	}
	if err := s.repo.Role.Delete(ctx, id); err != nil {
		s.logger.Error("删除角色失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *roleService) SetPermissions(ctx context.Context, id string, permissionIDs []string) (*dto.RoleResponse, error) {
	if _, err := s.repo.Role.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}

	if err := s.repo.Role.ReplacePermissions(ctx, id, permissionIDs); err != nil {
		s.logger.Error("设置角色权限失败", zap.Error(err))
		return nil, err
	}

	role, err := s.repo.Role.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRoleResponse(role), nil
}

func (s *roleService) ListPermissions(ctx context.Context) ([]dto.PermissionResponse, error) {
	permissions, err := s.repo.Role.ListPermissions(ctx)
	if err != nil {
		s.logger.Error("查询权限列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.PermissionResponse, 0, len(permissions))
	for _, p := range permissions {
		result = append(result, dto.PermissionResponse{
			ID:          p.PermissionID,
			Code:        p.Code,
			Description: p.Description,
		})
	}
	return result, nil
}
