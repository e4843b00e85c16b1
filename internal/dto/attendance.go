package dto

// ── 考勤模块 DTO ──

// AttendanceQuery 考勤查询参数
type AttendanceQuery struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date"   binding:"required"`
}

// AttendanceEvent 考勤记录内嵌的原始打卡事件
type AttendanceEvent struct {
	Time      string `json:"time"` // HH:MM:SS
	Reader    string `json:"reader"`
	EventType string `json:"event_type"`
}

// AttendanceRecord 派生考勤记录（按需重算，不落库）
// 每 (badge, date) 一条；不变式：arrival ≤ departure，除非 is_continuous_day
type AttendanceRecord struct {
	BadgeNumber     string            `json:"badge_number"`
	Date            string            `json:"date"` // DD/MM/YYYY
	FullName        string            `json:"full_name"`
	GroupName       string            `json:"group_name"`
	ArrivalTime     string            `json:"arrival_time"` // HH:MM
	ArrivalReader   string            `json:"arrival_reader"`
	DepartureTime   string            `json:"departure_time"` // HH:MM
	DepartureReader string            `json:"departure_reader"`
	TotalHours      float64           `json:"total_hours"`
	LunchMinutes    int               `json:"lunch_minutes"`
	PauseMinutes    int               `json:"pause_minutes"`
	IsContinuousDay bool              `json:"is_continuous_day"`
	IsHalfDay       bool              `json:"is_half_day"`
	HalfDayType     string            `json:"half_day_type,omitempty"` // morning | afternoon
	IsWeekend       bool              `json:"is_weekend"`
	IsHoliday       bool              `json:"is_holiday"`
	Events          []AttendanceEvent `json:"events"`
}

// ── 异常模块 DTO ──

// 异常类型
const (
	AnomalyMissingExit  = "missing_exit"  // 打卡次数为奇数，缺出场记录
	AnomalyZeroDuration = "zero_duration" // 多次打卡但时长为零
	AnomalyUnknownEvent = "unknown_event" // 事件类型无法识别
)

// AnomalyRecord 考勤异常记录
type AnomalyRecord struct {
	BadgeNumber string `json:"badge_number"`
	Date        string `json:"date"` // DD/MM/YYYY
	FullName    string `json:"full_name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	EventCount  int    `json:"event_count"`
}
