package handler

import (
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gilandre/senator-dashboard-sub005/config"
	"github.com/gilandre/senator-dashboard-sub005/internal/service"
	"github.com/gilandre/senator-dashboard-sub005/pkg/response"
)

// ImportHandler CSV 导入模块 HTTP 处理器
type ImportHandler struct {
	cfg       *config.Config
	importSvc service.ImportService
}

// NewImportHandler 创建 ImportHandler
func NewImportHandler(cfg *config.Config, importSvc service.ImportService) *ImportHandler {
	return &ImportHandler{cfg: cfg, importSvc: importSvc}
}

// readUploadedCSV 从 multipart 表单字段 file 读取 CSV 内容
// 超出 import.max_file_size 或非 .csv 扩展名时返回 false 并写入 400 响应
func (h *ImportHandler) readUploadedCSV(c *gin.Context) (string, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 16001, "缺少上传文件字段 file")
		return "", false
	}

	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".csv") {
		response.BadRequest(c, 16002, "仅支持 .csv 文件")
		return "", false
	}
	if fileHeader.Size > h.cfg.Import.MaxFileSize {
		response.BadRequest(c, 16003, "文件大小超出上限")
		return "", false
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c)
		return "", false
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		response.InternalError(c)
		return "", false
	}
	return string(content), true
}

// Preview 导入预览（仅校验预览窗口内的行，不入库）
// POST /api/v1/import/preview
func (h *ImportHandler) Preview(c *gin.Context) {
	content, ok := h.readUploadedCSV(c)
	if !ok {
		return
	}

	preview, err := h.importSvc.Preview(content)
	if err != nil {
		h.handleImportError(c, err)
		return
	}

	response.OK(c, preview)
}

// Import 全量导入
// POST /api/v1/import
func (h *ImportHandler) Import(c *gin.Context) {
	content, ok := h.readUploadedCSV(c)
	if !ok {
		return
	}

	report, err := h.importSvc.Import(c.Request.Context(), content)
	if err != nil {
		h.handleImportError(c, err)
		return
	}

	response.OK(c, report)
}

func (h *ImportHandler) handleImportError(c *gin.Context, err error) {
	var valErr *service.ImportValidationError
	switch {
	case errors.Is(err, service.ErrImportNoDelimiter):
		response.BadRequest(c, 16004, "无法识别 CSV 分隔符")
	case errors.Is(err, service.ErrImportTooShort):
		response.BadRequest(c, 16005, "文件内容不足（至少需要表头与一行数据）")
	case errors.As(err, &valErr):
		response.BadRequest(c, 16006, valErr.Error())
	default:
		response.InternalError(c)
	}
}
