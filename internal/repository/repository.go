package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	AccessEvent      AccessEventRepository
	Employee         EmployeeRepository
	Visitor          VisitorRepository
	Holiday          HolidayRepository
	AttendanceConfig AttendanceConfigRepository
	User             UserRepository
	Role             RoleRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		AccessEvent:      NewAccessEventRepo(db),
		Employee:         NewEmployeeRepo(db),
		Visitor:          NewVisitorRepo(db),
		Holiday:          NewHolidayRepo(db),
		AttendanceConfig: NewAttendanceConfigRepo(db),
		User:             NewUserRepo(db),
		Role:             NewRoleRepo(db),
	}
}
