package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/gilandre/senator-dashboard-sub005/internal/service"
	"github.com/gilandre/senator-dashboard-sub005/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportAttendance 导出考勤报表
// GET /api/v1/export/attendance?start_date=...&end_date=...&format=xlsx|csv|pdf
func (h *ExportHandler) ExportAttendance(c *gin.Context) {
	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}
	format := c.DefaultQuery("format", "xlsx")

	buf, filename, contentType, err := h.exportSvc.ExportAttendance(c.Request.Context(), start, end, format)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, buf.Bytes(), filename, contentType)
}

// ExportAnomalies 导出异常报表
// GET /api/v1/export/anomalies?start_date=...&end_date=...&format=xlsx|csv|pdf
func (h *ExportHandler) ExportAnomalies(c *gin.Context) {
	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}
	format := c.DefaultQuery("format", "xlsx")

	buf, filename, contentType, err := h.exportSvc.ExportAnomalies(c.Request.Context(), start, end, format)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, buf.Bytes(), filename, contentType)
}

// ExportHolidayCalendar 导出节假日 iCalendar
// GET /api/v1/export/holidays.ics
func (h *ExportHandler) ExportHolidayCalendar(c *gin.Context) {
	buf, filename, contentType, err := h.exportSvc.ExportHolidayCalendar(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, buf.Bytes(), filename, contentType)
}

// writeDownload 设置文件下载响应头并写入内容
func writeDownload(c *gin.Context, data []byte, filename, contentType string) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, data)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportBadFormat):
		response.BadRequest(c, 17001, "不支持的导出格式")
	case errors.Is(err, service.ErrExportNoData):
		response.NotFound(c, 17002, "该日期范围内无数据")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
