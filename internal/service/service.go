package service

import (
	"go.uber.org/zap"

	"github.com/gilandre/senator-dashboard-sub005/config"
	"github.com/gilandre/senator-dashboard-sub005/internal/repository"
	"github.com/gilandre/senator-dashboard-sub005/pkg/jwt"
	"github.com/gilandre/senator-dashboard-sub005/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth             AuthService
	User             UserService
	Role             RoleService
	AccessLog        AccessLogService
	Attendance       AttendanceService
	AttendanceConfig AttendanceConfigService
	Import           ImportService
	Sync             SyncService
	Export           ExportService
	Directory        DirectoryService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	attendance := NewAttendanceService(repo, logger)
	return &Service{
		Auth:             NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:             NewUserService(repo, logger),
		Role:             NewRoleService(repo, logger),
		AccessLog:        NewAccessLogService(repo, logger),
		Attendance:       attendance,
		AttendanceConfig: NewAttendanceConfigService(repo, logger),
		Import:           NewImportService(cfg, repo, logger),
		Sync:             NewSyncService(cfg, repo, logger),
		Export:           NewExportService(repo, attendance, logger),
		Directory:        NewDirectoryService(repo, logger),
	}
}
