package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/gilandre/senator-dashboard-sub005/internal/dto"
	"github.com/gilandre/senator-dashboard-sub005/internal/service"
	pkgerrors "github.com/gilandre/senator-dashboard-sub005/pkg/errors"
	"github.com/gilandre/senator-dashboard-sub005/pkg/response"
)

// AccessLogHandler 门禁事件模块 HTTP 处理器
type AccessLogHandler struct {
	accessLogSvc service.AccessLogService
}

// NewAccessLogHandler 创建 AccessLogHandler
func NewAccessLogHandler(accessLogSvc service.AccessLogService) *AccessLogHandler {
	return &AccessLogHandler{accessLogSvc: accessLogSvc}
}

// Create 手工录入门禁事件
// POST /api/v1/access-logs
func (h *AccessLogHandler) Create(c *gin.Context) {
	var req dto.CreateAccessLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	event, err := h.accessLogSvc.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccessLogDuplicate):
			response.Conflict(c, 14001, "门禁事件已存在")
		case errors.Is(err, service.ErrAccessLogBadClock),
			errors.Is(err, service.ErrInvalidDateRange):
			response.BadRequest(c, 10001, "参数校验失败")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, event)
}

// Get 查询单条门禁事件
// GET /api/v1/access-logs/:id
func (h *AccessLogHandler) Get(c *gin.Context) {
	event, err := h.accessLogSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrAccessLogNotFound) {
			response.NotFound(c, 14002, "门禁事件不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, event)
}

// List 门禁事件分页查询
// GET /api/v1/access-logs
func (h *AccessLogHandler) List(c *gin.Context) {
	var filter dto.AccessLogFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	events, total, err := h.accessLogSvc.List(c.Request.Context(), &filter)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, events, total, filter.GetPage(), filter.GetPageSize())
}

// Update 更新门禁事件标记（事件本体不可变）
// PATCH /api/v1/access-logs/:id
func (h *AccessLogHandler) Update(c *gin.Context) {
	var req dto.UpdateAccessLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	event, err := h.accessLogSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccessLogNotFound):
			response.NotFound(c, 14002, "门禁事件不存在")
		case errors.Is(err, pkgerrors.ErrImmutableRecord):
			response.BadRequest(c, 14003, "门禁事件入库后不可修改")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, event)
}

// Delete 删除门禁事件（管理员）
// DELETE /api/v1/access-logs/:id
func (h *AccessLogHandler) Delete(c *gin.Context) {
	if err := h.accessLogSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrAccessLogNotFound) {
			response.NotFound(c, 14002, "门禁事件不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
