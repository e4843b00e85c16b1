package model

import (
	"strconv"
	"strings"
)

// 取整方向
const (
	RoundNearest = "nearest"
	RoundUp      = "up"
	RoundDown    = "down"
)

// AttendanceConfig 考勤策略表 — 对应 attendance_config（单行强类型）
type AttendanceConfig struct {
	Singleton           bool    `gorm:"primaryKey;default:true"                    json:"-"`
	StartHour           string  `gorm:"type:varchar(5);not null;default:'08:00'"   json:"start_hour"`
	EndHour             string  `gorm:"type:varchar(5);not null;default:'17:00'"   json:"end_hour"`
	DailyHours          float64 `gorm:"type:numeric(4,2);not null;default:8.0"     json:"daily_hours"`
	CountWeekends       bool    `gorm:"not null;default:false"                     json:"count_weekends"`
	CountHolidays       bool    `gorm:"not null;default:false"                     json:"count_holidays"`
	LunchBreak          bool    `gorm:"not null;default:true"                      json:"lunch_break"`
	LunchBreakStart     string  `gorm:"type:varchar(5);not null;default:'12:00'"   json:"lunch_break_start"`
	LunchBreakEnd       string  `gorm:"type:varchar(5);not null;default:'14:00'"   json:"lunch_break_end"`
	LunchBreakDuration  int     `gorm:"not null;default:60"                        json:"lunch_break_duration"` // 分钟
	AllowOtherBreaks    bool    `gorm:"not null;default:true"                      json:"allow_other_breaks"`
	MaxBreakTime        int     `gorm:"not null;default:30"                        json:"max_break_time"` // 分钟
	RoundAttendanceTime bool    `gorm:"not null;default:false"                     json:"round_attendance_time"`
	RoundingInterval    int     `gorm:"not null;default:15"                        json:"rounding_interval"` // 分钟
	RoundingDirection   string  `gorm:"type:varchar(10);not null;default:'nearest'" json:"rounding_direction"` // nearest | up | down
	WorkingDays         string  `gorm:"type:varchar(20);not null;default:'1,2,3,4,5'" json:"working_days"`     // 逗号分隔的星期索引，0=周日
	BaseModel
}

// TableName 指定表名
func (AttendanceConfig) TableName() string { return "attendance_config" }

// WorkingDaySet 解析 working_days 为星期索引集合
// 非法片段忽略
func (c *AttendanceConfig) WorkingDaySet() map[int]bool {
	set := make(map[int]bool)
	for _, part := range strings.Split(c.WorkingDays, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 6 {
			continue
		}
		set[n] = true
	}
	return set
}
