package handler

import (
	"github.com/gilandre/senator-dashboard-sub005/config"
	"github.com/gilandre/senator-dashboard-sub005/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth             *AuthHandler
	User             *UserHandler
	Role             *RoleHandler
	AccessLog        *AccessLogHandler
	Attendance       *AttendanceHandler
	AttendanceConfig *AttendanceConfigHandler
	Import           *ImportHandler
	Export           *ExportHandler
	Sync             *SyncHandler
	Employee         *EmployeeHandler
	Visitor          *VisitorHandler
	Holiday          *HolidayHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Auth:             NewAuthHandler(svc.Auth),
		User:             NewUserHandler(svc.User),
		Role:             NewRoleHandler(svc.Role),
		AccessLog:        NewAccessLogHandler(svc.AccessLog),
		Attendance:       NewAttendanceHandler(svc.Attendance),
		AttendanceConfig: NewAttendanceConfigHandler(svc.AttendanceConfig),
		Import:           NewImportHandler(cfg, svc.Import),
		Export:           NewExportHandler(svc.Export),
		Sync:             NewSyncHandler(svc.Sync),
		Employee:         NewEmployeeHandler(svc.Directory),
		Visitor:          NewVisitorHandler(svc.Directory),
		Holiday:          NewHolidayHandler(svc.Directory),
	}
}
