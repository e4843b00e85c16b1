package model

import "time"

// 门禁事件类型
const (
	EventTypeEntry   = "entry"
	EventTypeExit    = "exit"
	EventTypeUnknown = "unknown"
)

// 持卡人类型
const (
	PersonTypeEmployee = "employee"
	PersonTypeVisitor  = "visitor"
	PersonTypeUnknown  = "unknown"
)

// AccessEvent 原始门禁事件表 — 对应 access_events
// 入库后不可变；仅同步任务可翻转 processed 标记
type AccessEvent struct {
	EventID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	BadgeNumber  string    `gorm:"type:varchar(50);not null;index:uq_access_events_dedup,unique" json:"badge_number"`
	EventDate    time.Time `gorm:"type:date;not null;index:uq_access_events_dedup,unique"        json:"event_date"`
	EventTime    string    `gorm:"type:varchar(8);not null;index:uq_access_events_dedup,unique"  json:"event_time"` // HH:MM:SS
	Controller   string    `gorm:"type:varchar(100);not null;default:''"                         json:"controller"`
	Reader       string    `gorm:"type:varchar(100);not null;default:'';index:uq_access_events_dedup,unique" json:"reader"`
	EventType    string    `gorm:"type:varchar(10);not null;default:'unknown'"    json:"event_type"` // entry | exit | unknown
	Direction    string    `gorm:"type:varchar(5);not null;default:''"            json:"direction"`  // in | out
	RawEventType string    `gorm:"type:varchar(100);not null;default:''"          json:"raw_event_type"`
	FullName     string    `gorm:"type:varchar(200);not null;default:''"          json:"full_name"`
	GroupName    string    `gorm:"type:varchar(100);not null;default:''"          json:"group_name"`
	PersonType   string    `gorm:"type:varchar(10);not null;default:'unknown'"    json:"person_type"` // employee | visitor | unknown
	Processed    bool      `gorm:"not null;default:false"                         json:"processed"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (AccessEvent) TableName() string { return "access_events" }
