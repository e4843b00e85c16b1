package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/gilandre/senator-dashboard-sub005/internal/dto"
	"github.com/gilandre/senator-dashboard-sub005/internal/service"
	"github.com/gilandre/senator-dashboard-sub005/pkg/response"
)

// RoleHandler 角色/权限模块 HTTP 处理器
type RoleHandler struct {
	roleSvc service.RoleService
}

// NewRoleHandler 创建 RoleHandler
func NewRoleHandler(roleSvc service.RoleService) *RoleHandler {
	return &RoleHandler{roleSvc: roleSvc}
}

// Create 创建角色
// POST /api/v1/roles
func (h *RoleHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	role, err := h.roleSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrRoleNameTaken) {
			response.Conflict(c, 13001, "角色名已存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, role)
}

// Get 查询单个角色
// GET /api/v1/roles/:id
func (h *RoleHandler) Get(c *gin.Context) {
	role, err := h.roleSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRoleNotFound) {
			response.NotFound(c, 13002, "角色不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, role)
}

// List 角色列表
// GET /api/v1/roles
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roleSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, roles)
}

// Update 更新角色
// PUT /api/v1/roles/:id
func (h *RoleHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	role, err := h.roleSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoleNotFound):
			response.NotFound(c, 13002, "角色不存在")
		case errors.Is(err, service.ErrRoleNameTaken):
			response.Conflict(c, 13001, "角色名已存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, role)
}

// Delete 删除角色
// DELETE /api/v1/roles/:id
func (h *RoleHandler) Delete(c *gin.Context) {
	if err := h.roleSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrRoleNotFound) {
			response.NotFound(c, 13002, "角色不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// SetPermissions 覆盖式设置角色权限
// PUT /api/v1/roles/:id/permissions
func (h *RoleHandler) SetPermissions(c *gin.Context) {
	var req dto.SetPermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	role, err := h.roleSvc.SetPermissions(c.Request.Context(), c.Param("id"), req.PermissionIDs)
	if err != nil {
		if errors.Is(err, service.ErrRoleNotFound) {
			response.NotFound(c, 13002, "角色不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, role)
}

// ListPermissions 权限字典
// GET /api/v1/permissions
func (h *RoleHandler) ListPermissions(c *gin.Context) {
	permissions, err := h.roleSvc.ListPermissions(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, permissions)
}
