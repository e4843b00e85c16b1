package model

// Role 角色表 — 对应 roles
type Role struct {
	RoleID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"role_id"`
	Name        string `gorm:"type:varchar(50);not null;uniqueIndex"          json:"name"`
	Description string `gorm:"type:varchar(255);not null;default:''"          json:"description"`
	BaseModel

	// 关联
	Permissions []Permission `gorm:"many2many:role_permissions;foreignKey:RoleID;joinForeignKey:RoleID;references:PermissionID;joinReferences:PermissionID" json:"permissions,omitempty"`
}

// TableName 指定表名
func (Role) TableName() string { return "roles" }

// Permission 权限表 — 对应 permissions
type Permission struct {
	PermissionID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"permission_id"`
	Code         string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"code"`
	Description  string `gorm:"type:varchar(255);not null;default:''"          json:"description"`
	BaseModel
}

// TableName 指定表名
func (Permission) TableName() string { return "permissions" }
