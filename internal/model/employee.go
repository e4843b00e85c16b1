package model

// Employee 员工表 — 对应 employees
// 由同步任务从未处理门禁事件派生，或由管理端手工维护
type Employee struct {
	EmployeeID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"employee_id"`
	BadgeNumber string `gorm:"type:varchar(50);not null;uniqueIndex"          json:"badge_number"`
	FirstName   string `gorm:"type:varchar(100);not null;default:''"          json:"first_name"`
	LastName    string `gorm:"type:varchar(100);not null;default:''"          json:"last_name"`
	Email       string `gorm:"type:varchar(255);not null;default:''"          json:"email"`
	Department  string `gorm:"type:varchar(100);not null;default:''"          json:"department"`
	Status      string `gorm:"type:varchar(10);not null;default:'active'"     json:"status"` // active | inactive
	SoftDeleteModel
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }
