package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gilandre/senator-dashboard-sub005/internal/dto"
	"github.com/gilandre/senator-dashboard-sub005/internal/model"
	"github.com/gilandre/senator-dashboard-sub005/internal/repository"
)

// ── 人员名录/节假日模块业务错误 ──

var (
	ErrEmployeeNotFound = errors.New("员工不存在")
	ErrVisitorNotFound  = errors.New("访客不存在")
	ErrHolidayNotFound  = errors.New("节假日不存在")
	ErrBadgeTaken       = errors.New("该卡号已被占用")
	ErrHolidayDateTaken = errors.New("该日期已存在节假日")
)

// DirectoryService 员工/访客/节假日业务接口
// 员工与访客通常由同步任务派生，此处提供管理端手工维护入口
type DirectoryService interface {
	CreateEmployee(ctx context.Context, req *dto.CreateEmployeeRequest, callerID string) (*dto.EmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (*dto.EmployeeResponse, error)
	ListEmployees(ctx context.Context, page *dto.PaginationRequest) ([]dto.EmployeeResponse, int64, error)
	UpdateEmployee(ctx context.Context, id string, req *dto.UpdateEmployeeRequest, callerID string) (*dto.EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, id string, callerID string) error

	CreateVisitor(ctx context.Context, req *dto.CreateVisitorRequest, callerID string) (*dto.VisitorResponse, error)
	GetVisitor(ctx context.Context, id string) (*dto.VisitorResponse, error)
	ListVisitors(ctx context.Context, page *dto.PaginationRequest) ([]dto.VisitorResponse, int64, error)
	UpdateVisitor(ctx context.Context, id string, req *dto.UpdateVisitorRequest, callerID string) (*dto.VisitorResponse, error)
	DeleteVisitor(ctx context.Context, id string, callerID string) error

	CreateHoliday(ctx context.Context, req *dto.CreateHolidayRequest, callerID string) (*dto.HolidayResponse, error)
	ListHolidays(ctx context.Context) ([]dto.HolidayResponse, error)
	UpdateHoliday(ctx context.Context, id string, req *dto.UpdateHolidayRequest, callerID string) (*dto.HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error
}

type directoryService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDirectoryService 创建 DirectoryService 实例
func NewDirectoryService(repo *repository.Repository, logger *zap.Logger) DirectoryService {
	return &directoryService{repo: repo, logger: logger}
}

// ── 员工 ──

func (s *directoryService) CreateEmployee(ctx context.Context, req *dto.CreateEmployeeRequest, callerID string) (*dto.EmployeeResponse, error) {
	if _, err := s.repo.Employee.GetByBadge(ctx, req.BadgeNumber); err == nil {
		return nil, ErrBadgeTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	employee := &model.Employee{
		BadgeNumber: req.BadgeNumber,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Department:  req.Department,
		Status:      "active",
	}
	employee.CreatedBy = &callerID

	if err := s.repo.Employee.Create(ctx, employee); err != nil {
		s.logger.Error("创建员工失败", zap.Error(err))
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

func (s *directoryService) GetEmployee(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	employee, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

func (s *directoryService) ListEmployees(ctx context.Context, page *dto.PaginationRequest) ([]dto.EmployeeResponse, int64, error) {
	employees, total, err := s.repo.Employee.List(ctx, page.Offset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("查询员工列表失败", zap.Error(err))
		return nil, 0, err
	}
	result := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		result = append(result, *toEmployeeResponse(&employees[i]))
	}
	return result, total, nil
}

func (s *directoryService) UpdateEmployee(ctx context.Context, id string, req *dto.UpdateEmployeeRequest, callerID string) (*dto.EmployeeResponse, error) {
	employee, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	if req.FirstName != nil {
		employee.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		employee.LastName = *req.LastName
	}
	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.Department != nil {
		employee.Department = *req.Department
	}
	if req.Status != nil {
		employee.Status = *req.Status
	}
	employee.UpdatedBy = &callerID

	if err := s.repo.Employee.Update(ctx, employee); err != nil {
		s.logger.Error("更新员工失败", zap.Error(err))
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

func (s *directoryService) DeleteEmployee(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Employee.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}
	if err := s.repo.Employee.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除员工失败", zap.Error(err))
		return err
	}
	return nil
}

// ── 访客 ──

func (s *directoryService) CreateVisitor(ctx context.Context, req *dto.CreateVisitorRequest, callerID string) (*dto.VisitorResponse, error) {
	if _, err := s.repo.Visitor.GetByBadge(ctx, req.BadgeNumber); err == nil {
		return nil, ErrBadgeTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	visitor := &model.Visitor{
		BadgeNumber: req.BadgeNumber,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Company:     req.Company,
	}
	visitor.CreatedBy = &callerID

	if err := s.repo.Visitor.Create(ctx, visitor); err != nil {
		s.logger.Error("创建访客失败", zap.Error(err))
		return nil, err
	}
	return toVisitorResponse(visitor), nil
}

func (s *directoryService) GetVisitor(ctx context.Context, id string) (*dto.VisitorResponse, error) {
	visitor, err := s.repo.Visitor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVisitorNotFound
		}
		return nil, err
	}
	return toVisitorResponse(visitor), nil
}

func (s *directoryService) ListVisitors(ctx context.Context, page *dto.PaginationRequest) ([]dto.VisitorResponse, int64, error) {
	visitors, total, err := s.repo.Visitor.List(ctx, page.Offset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("查询访客列表失败", zap.Error(err))
		return nil, 0, err
	}
	result := make([]dto.VisitorResponse, 0, len(visitors))
	for i := range visitors {
		result = append(result, *toVisitorResponse(&visitors[i]))
	}
	return result, total, nil
}

func (s *directoryService) UpdateVisitor(ctx context.Context, id string, req *dto.UpdateVisitorRequest, callerID string) (*dto.VisitorResponse, error) {
	visitor, err := s.repo.Visitor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVisitorNotFound
		}
		return nil, err
	}

	if req.FirstName != nil {
		visitor.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		visitor.LastName = *req.LastName
	}
	if req.Company != nil {
		visitor.Company = *req.Company
	}
	visitor.UpdatedBy = &callerID

	if err := s.repo.Visitor.Update(ctx, visitor); err != nil {
		s.logger.Error("更新访客失败", zap.Error(err))
		return nil, err
	}
	return toVisitorResponse(visitor), nil
}

func (s *directoryService) DeleteVisitor(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Visitor.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVisitorNotFound
		}
		return err
	}
	if err := s.repo.Visitor.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除访客失败", zap.Error(err))
		return err
	}
	return nil
}

// ── 节假日 ──

func (s *directoryService) CreateHoliday(ctx context.Context, req *dto.CreateHolidayRequest, callerID string) (*dto.HolidayResponse, error) {
	date, err := time.Parse("02/01/2006", req.Date)
	if err != nil {
		return nil, ErrInvalidDateRange
	}

	holidays, err := s.repo.Holiday.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range holidays {
		if holidays[i].Matches(date) {
			return nil, ErrHolidayDateTaken
		}
	}

	holiday := &model.Holiday{
		HolidayDate:   date,
		Name:          req.Name,
		RepeatsYearly: req.RepeatsYearly,
	}
	holiday.CreatedBy = &callerID

	if err := s.repo.Holiday.Create(ctx, holiday); err != nil {
		s.logger.Error("创建节假日失败", zap.Error(err))
		return nil, err
	}
	return toHolidayResponse(holiday), nil
}

func (s *directoryService) ListHolidays(ctx context.Context) ([]dto.HolidayResponse, error) {
	holidays, err := s.repo.Holiday.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询节假日列表失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.HolidayResponse, 0, len(holidays))
	for i := range holidays {
		result = append(result, *toHolidayResponse(&holidays[i]))
	}
	return result, nil
}

func (s *directoryService) UpdateHoliday(ctx context.Context, id string, req *dto.UpdateHolidayRequest, callerID string) (*dto.HolidayResponse, error) {
	holiday, err := s.repo.Holiday.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHolidayNotFound
		}
		return nil, err
	}

	if req.Date != nil {
		date, err := time.Parse("02/01/2006", *req.Date)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		holiday.HolidayDate = date
	}
	if req.Name != nil {
		holiday.Name = *req.Name
	}
	if req.RepeatsYearly != nil {
		holiday.RepeatsYearly = *req.RepeatsYearly
	}
	holiday.UpdatedBy = &callerID

	if err := s.repo.Holiday.Update(ctx, holiday); err != nil {
		s.logger.Error("更新节假日失败", zap.Error(err))
		return nil, err
	}
	return toHolidayResponse(holiday), nil
}

func (s *directoryService) DeleteHoliday(ctx context.Context, id string) error {
	if _, err := s.repo.Holiday.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHolidayNotFound
		}
		return err
	}
	if err := s.repo.Holiday.Delete(ctx, id); err != nil {
		s.logger.Error("删除节假日失败", zap.Error(err))
		return err
	}
	return nil
}

// ── 映射 ──

func toEmployeeResponse(e *model.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:          e.EmployeeID,
		BadgeNumber: e.BadgeNumber,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		Email:       e.Email,
		Department:  e.Department,
		Status:      e.Status,
	}
}

func toVisitorResponse(v *model.Visitor) *dto.VisitorResponse {
	resp := &dto.VisitorResponse{
		ID:          v.VisitorID,
		BadgeNumber: v.BadgeNumber,
		FirstName:   v.FirstName,
		LastName:    v.LastName,
		Company:     v.Company,
	}
	if v.FirstSeen != nil {
		resp.FirstSeen = v.FirstSeen.Format("02/01/2006")
	}
	if v.LastSeen != nil {
		resp.LastSeen = v.LastSeen.Format("02/01/2006")
	}
	return resp
}

func toHolidayResponse(h *model.Holiday) *dto.HolidayResponse {
	return &dto.HolidayResponse{
		ID:            h.HolidayID,
		Date:          h.HolidayDate.Format("02/01/2006"),
		Name:          h.Name,
		RepeatsYearly: h.RepeatsYearly,
	}
}
