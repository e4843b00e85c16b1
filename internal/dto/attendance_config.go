package dto

// ── 考勤策略模块 DTO ──

// UpdateAttendanceConfigRequest 更新考勤策略请求（部分更新）
type UpdateAttendanceConfigRequest struct {
	StartHour           *string  `json:"start_hour"            binding:"omitempty,datetime=15:04"`
	EndHour             *string  `json:"end_hour"              binding:"omitempty,datetime=15:04"`
	DailyHours          *float64 `json:"daily_hours"           binding:"omitempty,gt=0,lte=24"`
	CountWeekends       *bool    `json:"count_weekends"`
	CountHolidays       *bool    `json:"count_holidays"`
	LunchBreak          *bool    `json:"lunch_break"`
	LunchBreakStart     *string  `json:"lunch_break_start"     binding:"omitempty,datetime=15:04"`
	LunchBreakEnd       *string  `json:"lunch_break_end"       binding:"omitempty,datetime=15:04"`
	LunchBreakDuration  *int     `json:"lunch_break_duration"  binding:"omitempty,min=0,max=240"`
	AllowOtherBreaks    *bool    `json:"allow_other_breaks"`
	MaxBreakTime        *int     `json:"max_break_time"        binding:"omitempty,min=0,max=240"`
	RoundAttendanceTime *bool    `json:"round_attendance_time"`
	RoundingInterval    *int     `json:"rounding_interval"     binding:"omitempty,min=1,max=60"`
	RoundingDirection   *string  `json:"rounding_direction"    binding:"omitempty,oneof=nearest up down"`
	WorkingDays         *string  `json:"working_days"          binding:"omitempty,max=20"`
}

// AttendanceConfigResponse 考勤策略响应
type AttendanceConfigResponse struct {
	StartHour           string  `json:"start_hour"`
	EndHour             string  `json:"end_hour"`
	DailyHours          float64 `json:"daily_hours"`
	CountWeekends       bool    `json:"count_weekends"`
	CountHolidays       bool    `json:"count_holidays"`
	LunchBreak          bool    `json:"lunch_break"`
	LunchBreakStart     string  `json:"lunch_break_start"`
	LunchBreakEnd       string  `json:"lunch_break_end"`
	LunchBreakDuration  int     `json:"lunch_break_duration"`
	AllowOtherBreaks    bool    `json:"allow_other_breaks"`
	MaxBreakTime        int     `json:"max_break_time"`
	RoundAttendanceTime bool    `json:"round_attendance_time"`
	RoundingInterval    int     `json:"rounding_interval"`
	RoundingDirection   string  `json:"rounding_direction"`
	WorkingDays         string  `json:"working_days"`
	UpdatedAt           string  `json:"updated_at"`
}
