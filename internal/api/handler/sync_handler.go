package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/gilandre/senator-dashboard-sub005/internal/service"
	"github.com/gilandre/senator-dashboard-sub005/pkg/response"
)

// SyncHandler 同步任务模块 HTTP 处理器
// 定时任务之外的手动触发入口
type SyncHandler struct {
	syncSvc service.SyncService
}

// NewSyncHandler 创建 SyncHandler
func NewSyncHandler(syncSvc service.SyncService) *SyncHandler {
	return &SyncHandler{syncSvc: syncSvc}
}

// Run 手动触发一次同步
// POST /api/v1/sync/run
func (h *SyncHandler) Run(c *gin.Context) {
	report, err := h.syncSvc.Run(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, report)
}
