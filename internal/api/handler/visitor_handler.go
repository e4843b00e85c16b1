package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/gilandre/senator-dashboard-sub005/internal/dto"
	"github.com/gilandre/senator-dashboard-sub005/internal/service"
	"github.com/gilandre/senator-dashboard-sub005/pkg/response"
)

// VisitorHandler 访客名录模块 HTTP 处理器
type VisitorHandler struct {
	directorySvc service.DirectoryService
}

// NewVisitorHandler 创建 VisitorHandler
func NewVisitorHandler(directorySvc service.DirectoryService) *VisitorHandler {
	return &VisitorHandler{directorySvc: directorySvc}
}

// Create 手工创建访客
// POST /api/v1/visitors
func (h *VisitorHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateVisitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	visitor, err := h.directorySvc.CreateVisitor(c.Request.Context(), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrBadgeTaken) {
			response.Conflict(c, 18001, "该卡号已被占用")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, visitor)
}

// Get 查询单个访客
// GET /api/v1/visitors/:id
func (h *VisitorHandler) Get(c *gin.Context) {
	visitor, err := h.directorySvc.GetVisitor(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrVisitorNotFound) {
			response.NotFound(c, 18003, "访客不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, visitor)
}

// List 访客列表
// GET /api/v1/visitors
func (h *VisitorHandler) List(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	visitors, total, err := h.directorySvc.ListVisitors(c.Request.Context(), &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, visitors, total, page.GetPage(), page.GetPageSize())
}

// Update 更新访客
// PUT /api/v1/visitors/:id
func (h *VisitorHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateVisitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	visitor, err := h.directorySvc.UpdateVisitor(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrVisitorNotFound) {
			response.NotFound(c, 18003, "访客不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, visitor)
}

// Delete 删除访客（软删除）
// DELETE /api/v1/visitors/:id
func (h *VisitorHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.directorySvc.DeleteVisitor(c.Request.Context(), c.Param("id"), callerID); err != nil {
		if errors.Is(err, service.ErrVisitorNotFound) {
			response.NotFound(c, 18003, "访客不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
