package dto

// ── 用户模块 DTO ──

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Name     string `json:"name"     binding:"required,min=1,max=100"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	RoleID   string `json:"role_id"  binding:"required,uuid"`
}

// UpdateUserRequest 更新用户请求（部分更新）
type UpdateUserRequest struct {
	Name  *string `json:"name"  binding:"omitempty,min=1,max=100"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// AssignRoleRequest 分配角色请求
type AssignRoleRequest struct {
	RoleID string `json:"role_id" binding:"required,uuid"`
}

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Email string        `json:"email"`
	Role  *RoleResponse `json:"role,omitempty"`
}

// UserDetailResponse 用户详细信息（GET /auth/me）
type UserDetailResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Role      *RoleResponse `json:"role,omitempty"`
	CreatedAt string        `json:"created_at"`
}

// ── 角色/权限模块 DTO ──

// CreateRoleRequest 创建角色请求
type CreateRoleRequest struct {
	Name        string `json:"name"        binding:"required,min=1,max=50"`
	Description string `json:"description" binding:"max=255"`
}

// UpdateRoleRequest 更新角色请求（部分更新）
type UpdateRoleRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=1,max=50"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

// SetPermissionsRequest 设置角色权限请求
type SetPermissionsRequest struct {
	PermissionIDs []string `json:"permission_ids" binding:"required,dive,uuid"`
}

// RoleResponse 角色响应
type RoleResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Permissions []PermissionResponse `json:"permissions,omitempty"`
}

// PermissionResponse 权限响应
type PermissionResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
}
