package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gilandre/senator-dashboard-sub005/internal/dto"
	"github.com/gilandre/senator-dashboard-sub005/internal/service"
	"github.com/gilandre/senator-dashboard-sub005/pkg/response"
)

// AttendanceHandler 考勤模块 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// parseDateRange 解析 DD/MM/YYYY 日期范围查询参数
// 格式错误或 start > end 均返回 false 并写入 400 响应
func parseDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	var q dto.AttendanceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "start_date 与 end_date 不能为空")
		return time.Time{}, time.Time{}, false
	}

	start, err := time.Parse("02/01/2006", q.StartDate)
	if err != nil {
		response.BadRequest(c, 10001, "start_date 格式无效，应为 DD/MM/YYYY")
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse("02/01/2006", q.EndDate)
	if err != nil {
		response.BadRequest(c, 10001, "end_date 格式无效，应为 DD/MM/YYYY")
		return time.Time{}, time.Time{}, false
	}
	if end.Before(start) {
		response.BadRequest(c, 10001, "end_date 不能早于 start_date")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// Derive 推导日期范围内的考勤记录
// GET /api/v1/attendance?start_date=DD/MM/YYYY&end_date=DD/MM/YYYY
func (h *AttendanceHandler) Derive(c *gin.Context) {
	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	records, err := h.attendanceSvc.Derive(c.Request.Context(), start, end)
	if err != nil {
		if errors.Is(err, service.ErrAttendanceConfigMissing) {
			response.Error(c, http.StatusInternalServerError, 15001, "考勤策略缺失")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, records)
}

// Anomalies 检出日期范围内的打卡异常
// GET /api/v1/attendance/anomalies?start_date=...&end_date=...
func (h *AttendanceHandler) Anomalies(c *gin.Context) {
	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	anomalies, err := h.attendanceSvc.Anomalies(c.Request.Context(), start, end)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, anomalies)
}
