package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/gilandre/senator-dashboard-sub005/internal/dto"
	"github.com/gilandre/senator-dashboard-sub005/internal/service"
	"github.com/gilandre/senator-dashboard-sub005/pkg/response"
)

// AttendanceConfigHandler 考勤策略模块 HTTP 处理器
type AttendanceConfigHandler struct {
	configSvc service.AttendanceConfigService
}

// NewAttendanceConfigHandler 创建 AttendanceConfigHandler
func NewAttendanceConfigHandler(configSvc service.AttendanceConfigService) *AttendanceConfigHandler {
	return &AttendanceConfigHandler{configSvc: configSvc}
}

// Get 读取考勤策略
// GET /api/v1/attendance/config
func (h *AttendanceConfigHandler) Get(c *gin.Context) {
	cfg, err := h.configSvc.Get(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, cfg)
}

// Update 部分更新考勤策略（管理员）
// PUT /api/v1/attendance/config
func (h *AttendanceConfigHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateAttendanceConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	cfg, err := h.configSvc.Update(c.Request.Context(), &req, callerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConfigBadHourRange),
			errors.Is(err, service.ErrConfigBadLunchRange),
			errors.Is(err, service.ErrConfigBadWorkDays):
			response.BadRequest(c, 15002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, cfg)
}
