package dto

// ── 门禁事件模块 DTO ──

// AccessLogFilter 门禁事件查询参数（类型化过滤，绑定校验后再转查询）
type AccessLogFilter struct {
	PaginationRequest
	BadgeNumber string `form:"badge_number" binding:"omitempty,max=50"`
	StartDate   string `form:"start_date"   binding:"omitempty,datetime=02/01/2006"`
	EndDate     string `form:"end_date"     binding:"omitempty,datetime=02/01/2006"`
	Reader      string `form:"reader"       binding:"omitempty,max=100"`
	EventType   string `form:"event_type"   binding:"omitempty,oneof=entry exit unknown"`
	PersonType  string `form:"person_type"  binding:"omitempty,oneof=employee visitor unknown"`
	GroupName   string `form:"group_name"   binding:"omitempty,max=100"`
	Processed   *bool  `form:"processed"`
}

// CreateAccessLogRequest 手工录入门禁事件请求
type CreateAccessLogRequest struct {
	BadgeNumber string `json:"badge_number" binding:"required,max=50"`
	EventDate   string `json:"event_date"   binding:"required,datetime=02/01/2006"`
	EventTime   string `json:"event_time"   binding:"required"`
	Controller  string `json:"controller"   binding:"max=100"`
	Reader      string `json:"reader"       binding:"required,max=100"`
	EventType   string `json:"event_type"   binding:"omitempty,oneof=entry exit unknown"`
	Direction   string `json:"direction"    binding:"omitempty,oneof=in out"`
	FullName    string `json:"full_name"    binding:"max=200"`
	GroupName   string `json:"group_name"   binding:"max=100"`
}

// UpdateAccessLogRequest 更新门禁事件请求
// 事件本体不可变，仅允许翻转 processed 标记
type UpdateAccessLogRequest struct {
	Processed *bool `json:"processed" binding:"required"`
}

// AccessLogResponse 门禁事件响应
type AccessLogResponse struct {
	ID          string `json:"id"`
	BadgeNumber string `json:"badge_number"`
	EventDate   string `json:"event_date"` // DD/MM/YYYY
	EventTime   string `json:"event_time"` // HH:MM:SS
	Controller  string `json:"controller"`
	Reader      string `json:"reader"`
	EventType   string `json:"event_type"`
	Direction   string `json:"direction"`
	FullName    string `json:"full_name"`
	GroupName   string `json:"group_name"`
	PersonType  string `json:"person_type"`
	Processed   bool   `json:"processed"`
}
