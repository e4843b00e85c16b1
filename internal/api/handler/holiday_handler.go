package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/gilandre/senator-dashboard-sub005/internal/dto"
	"github.com/gilandre/senator-dashboard-sub005/internal/service"
	"github.com/gilandre/senator-dashboard-sub005/pkg/response"
)

// HolidayHandler 节假日模块 HTTP 处理器
type HolidayHandler struct {
	directorySvc service.DirectoryService
}

// NewHolidayHandler 创建 HolidayHandler
func NewHolidayHandler(directorySvc service.DirectoryService) *HolidayHandler {
	return &HolidayHandler{directorySvc: directorySvc}
}

// Create 创建节假日
// POST /api/v1/holidays
func (h *HolidayHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	holiday, err := h.directorySvc.CreateHoliday(c.Request.Context(), &req, callerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHolidayDateTaken):
			response.Conflict(c, 18004, "该日期已存在节假日")
		case errors.Is(err, service.ErrInvalidDateRange):
			response.BadRequest(c, 10001, "参数校验失败")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, holiday)
}

// List 节假日列表
// GET /api/v1/holidays
func (h *HolidayHandler) List(c *gin.Context) {
	holidays, err := h.directorySvc.ListHolidays(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, holidays)
}

// Update 更新节假日
// PUT /api/v1/holidays/:id
func (h *HolidayHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	holiday, err := h.directorySvc.UpdateHoliday(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHolidayNotFound):
			response.NotFound(c, 18005, "节假日不存在")
		case errors.Is(err, service.ErrInvalidDateRange):
			response.BadRequest(c, 10001, "参数校验失败")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, holiday)
}

// Delete 删除节假日
// DELETE /api/v1/holidays/:id
func (h *HolidayHandler) Delete(c *gin.Context) {
	if err := h.directorySvc.DeleteHoliday(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrHolidayNotFound) {
			response.NotFound(c, 18005, "节假日不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
