package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/gilandre/senator-dashboard-sub005/internal/dto"
	"github.com/gilandre/senator-dashboard-sub005/internal/service"
	"github.com/gilandre/senator-dashboard-sub005/pkg/response"
)

// EmployeeHandler 员工名录模块 HTTP 处理器
type EmployeeHandler struct {
	directorySvc service.DirectoryService
}

// NewEmployeeHandler 创建 EmployeeHandler
func NewEmployeeHandler(directorySvc service.DirectoryService) *EmployeeHandler {
	return &EmployeeHandler{directorySvc: directorySvc}
}

// Create 手工创建员工
// POST /api/v1/employees
func (h *EmployeeHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	employee, err := h.directorySvc.CreateEmployee(c.Request.Context(), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrBadgeTaken) {
			response.Conflict(c, 18001, "该卡号已被占用")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, employee)
}

// Get 查询单个员工
// GET /api/v1/employees/:id
func (h *EmployeeHandler) Get(c *gin.Context) {
	employee, err := h.directorySvc.GetEmployee(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrEmployeeNotFound) {
			response.NotFound(c, 18002, "员工不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, employee)
}

// List 员工列表
// GET /api/v1/employees
func (h *EmployeeHandler) List(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	employees, total, err := h.directorySvc.ListEmployees(c.Request.Context(), &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, employees, total, page.GetPage(), page.GetPageSize())
}

// Update 更新员工
// PUT /api/v1/employees/:id
func (h *EmployeeHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	employee, err := h.directorySvc.UpdateEmployee(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrEmployeeNotFound) {
			response.NotFound(c, 18002, "员工不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, employee)
}

// Delete 删除员工（软删除）
// DELETE /api/v1/employees/:id
func (h *EmployeeHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.directorySvc.DeleteEmployee(c.Request.Context(), c.Param("id"), callerID); err != nil {
		if errors.Is(err, service.ErrEmployeeNotFound) {
			response.NotFound(c, 18002, "员工不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
