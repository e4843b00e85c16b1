package model

import "time"

// Holiday 节假日表 — 对应 holidays
type Holiday struct {
	HolidayID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"holiday_id"`
	HolidayDate   time.Time `gorm:"type:date;not null;uniqueIndex;column:holiday_date" json:"holiday_date"`
	Name          string    `gorm:"type:varchar(100);not null"                     json:"name"`
	RepeatsYearly bool      `gorm:"not null;default:false"                         json:"repeats_yearly"`
	BaseModel
}

// TableName 指定表名
func (Holiday) TableName() string { return "holidays" }

// Matches 判断给定日期是否为该节假日
// repeats_yearly 的节日按 月-日 匹配任意年份
func (h *Holiday) Matches(date time.Time) bool {
	if h.RepeatsYearly {
		return h.HolidayDate.Month() == date.Month() && h.HolidayDate.Day() == date.Day()
	}
	return h.HolidayDate.Year() == date.Year() &&
		h.HolidayDate.Month() == date.Month() &&
		h.HolidayDate.Day() == date.Day()
}
