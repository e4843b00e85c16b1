package model

import "time"

// Visitor 访客表 — 对应 visitors
type Visitor struct {
	VisitorID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"visitor_id"`
	BadgeNumber string     `gorm:"type:varchar(50);not null;uniqueIndex"          json:"badge_number"`
	FirstName   string     `gorm:"type:varchar(100);not null;default:''"          json:"first_name"`
	LastName    string     `gorm:"type:varchar(100);not null;default:''"          json:"last_name"`
	Company     string     `gorm:"type:varchar(200);not null;default:''"          json:"company"`
	FirstSeen   *time.Time `gorm:"type:date" json:"first_seen,omitempty"`
	LastSeen    *time.Time `gorm:"type:date" json:"last_seen,omitempty"`
	SoftDeleteModel
}

// TableName 指定表名
func (Visitor) TableName() string { return "visitors" }
