package dto

// ── 员工/访客/节假日模块 DTO ──

// CreateEmployeeRequest 创建员工请求
type CreateEmployeeRequest struct {
	BadgeNumber string `json:"badge_number" binding:"required,max=50"`
	FirstName   string `json:"first_name"   binding:"max=100"`
	LastName    string `json:"last_name"    binding:"required,max=100"`
	Email       string `json:"email"        binding:"omitempty,email"`
	Department  string `json:"department"   binding:"max=100"`
}

// UpdateEmployeeRequest 更新员工请求（部分更新）
type UpdateEmployeeRequest struct {
	FirstName  *string `json:"first_name" binding:"omitempty,max=100"`
	LastName   *string `json:"last_name"  binding:"omitempty,min=1,max=100"`
	Email      *string `json:"email"      binding:"omitempty,email"`
	Department *string `json:"department" binding:"omitempty,max=100"`
	Status     *string `json:"status"     binding:"omitempty,oneof=active inactive"`
}

// EmployeeResponse 员工响应
type EmployeeResponse struct {
	ID          string `json:"id"`
	BadgeNumber string `json:"badge_number"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	Status      string `json:"status"`
}

// CreateVisitorRequest 创建访客请求
type CreateVisitorRequest struct {
	BadgeNumber string `json:"badge_number" binding:"required,max=50"`
	FirstName   string `json:"first_name"   binding:"max=100"`
	LastName    string `json:"last_name"    binding:"required,max=100"`
	Company     string `json:"company"      binding:"max=200"`
}

// UpdateVisitorRequest 更新访客请求（部分更新）
type UpdateVisitorRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `json:"last_name"  binding:"omitempty,min=1,max=100"`
	Company   *string `json:"company"    binding:"omitempty,max=200"`
}

// VisitorResponse 访客响应
type VisitorResponse struct {
	ID          string `json:"id"`
	BadgeNumber string `json:"badge_number"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Company     string `json:"company"`
	FirstSeen   string `json:"first_seen,omitempty"` // DD/MM/YYYY
	LastSeen    string `json:"last_seen,omitempty"`  // DD/MM/YYYY
}

// CreateHolidayRequest 创建节假日请求
type CreateHolidayRequest struct {
	Date          string `json:"date" binding:"required,datetime=02/01/2006"`
	Name          string `json:"name" binding:"required,min=1,max=100"`
	RepeatsYearly bool   `json:"repeats_yearly"`
}

// UpdateHolidayRequest 更新节假日请求（部分更新）
type UpdateHolidayRequest struct {
	Date          *string `json:"date" binding:"omitempty,datetime=02/01/2006"`
	Name          *string `json:"name" binding:"omitempty,min=1,max=100"`
	RepeatsYearly *bool   `json:"repeats_yearly"`
}

// HolidayResponse 节假日响应
type HolidayResponse struct {
	ID            string `json:"id"`
	Date          string `json:"date"` // DD/MM/YYYY
	Name          string `json:"name"`
	RepeatsYearly bool   `json:"repeats_yearly"`
}
