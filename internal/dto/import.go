package dto

// ── CSV 导入模块 DTO ──

// CSVPreviewResponse 导入预览响应
// 仅校验预览窗口内的行；确认后再全量导入
type CSVPreviewResponse struct {
	Headers   []string            `json:"headers"`
	Rows      []map[string]string `json:"rows"` // 列名 → 值，最多预览窗口行数
	TotalRows int                 `json:"total_rows"`
}

// ImportReport 全量导入结果
type ImportReport struct {
	TotalRows     int `json:"total_rows"`
	ImportedRows  int `json:"imported_rows"`
	DuplicateRows int `json:"duplicate_rows"`
	SkippedRows   int `json:"skipped_rows"` // 行级校验失败，记日志后跳过
	EmployeeCount int `json:"employee_count"`
	VisitorCount  int `json:"visitor_count"`
	EntryCount    int `json:"entry_count"`
	ExitCount     int `json:"exit_count"`
}

// SyncReport 同步任务结果
type SyncReport struct {
	ScannedEvents    int `json:"scanned_events"`
	CreatedEmployees int `json:"created_employees"`
	CreatedVisitors  int `json:"created_visitors"`
	UpdatedVisitors  int `json:"updated_visitors"`
	MarkedProcessed  int `json:"marked_processed"`
	FailedEvents     int `json:"failed_events"`
}
