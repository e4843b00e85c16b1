package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/gilandre/senator-dashboard-sub005/internal/dto"
	"github.com/gilandre/senator-dashboard-sub005/internal/model"
	"github.com/gilandre/senator-dashboard-sub005/internal/repository"
)

// ── Mock Repositories ──

// dedupKey 唯一索引 (badge, date, time, reader) 的内存表示
func dedupKey(e *model.AccessEvent) string {
	return fmt.Sprintf("%s|%s|%s|%s",
		e.BadgeNumber, e.EventDate.Format("2006-01-02"), e.EventTime, e.Reader)
}

type mockAccessEventRepo struct {
	events  []*model.AccessEvent
	keys    map[string]bool
	nextID  int
	creates int // CreateIgnoreDuplicate 实际写入次数，用于幂等断言
}

func newMockAccessEventRepo() *mockAccessEventRepo {
	return &mockAccessEventRepo{keys: make(map[string]bool)}
}

func (m *mockAccessEventRepo) Create(_ context.Context, event *model.AccessEvent) error {
	m.nextID++
	if event.EventID == "" {
		event.EventID = fmt.Sprintf("event-%d", m.nextID)
	}
	m.events = append(m.events, event)
	m.keys[dedupKey(event)] = true
	return nil
}

func (m *mockAccessEventRepo) CreateIgnoreDuplicate(_ context.Context, event *model.AccessEvent) (bool, error) {
	if m.keys[dedupKey(event)] {
		return false, nil
	}
	m.creates++
	return true, m.Create(nil, event)
}

func (m *mockAccessEventRepo) GetByID(_ context.Context, id string) (*model.AccessEvent, error) {
	for _, e := range m.events {
		if e.EventID == id {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAccessEventRepo) List(_ context.Context, filter *dto.AccessLogFilter) ([]model.AccessEvent, int64, error) {
	var result []model.AccessEvent
	for _, e := range m.events {
		if filter.BadgeNumber != "" && e.BadgeNumber != filter.BadgeNumber {
			continue
		}
		result = append(result, *e)
	}
	return result, int64(len(result)), nil
}

func (m *mockAccessEventRepo) ListByDateRange(_ context.Context, start, end time.Time) ([]model.AccessEvent, error) {
	var result []model.AccessEvent
	for _, e := range m.events {
		if e.EventDate.Before(start) || e.EventDate.After(end) {
			continue
		}
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].EventDate.Equal(result[j].EventDate) {
			return result[i].EventDate.Before(result[j].EventDate)
		}
		return result[i].EventTime < result[j].EventTime
	})
	return result, nil
}

func (m *mockAccessEventRepo) ListUnprocessed(_ context.Context, limit int) ([]model.AccessEvent, error) {
	var result []model.AccessEvent
	for _, e := range m.events {
		if e.Processed {
			continue
		}
		result = append(result, *e)
		if len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (m *mockAccessEventRepo) SetProcessed(_ context.Context, ids []string) error {
	for _, id := range ids {
		for _, e := range m.events {
			if e.EventID == id {
				e.Processed = true
			}
		}
	}
	return nil
}

func (m *mockAccessEventRepo) ClearProcessed(_ context.Context, ids []string) error {
	for _, id := range ids {
		for _, e := range m.events {
			if e.EventID == id {
				e.Processed = false
			}
		}
	}
	return nil
}

func (m *mockAccessEventRepo) Delete(_ context.Context, id string) error {
	for i, e := range m.events {
		if e.EventID == id {
			delete(m.keys, dedupKey(e))
			m.events = append(m.events[:i], m.events[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type mockEmployeeRepo struct {
	employees map[string]*model.Employee // key: employee_id
	creates   int
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: make(map[string]*model.Employee)}
}

func (m *mockEmployeeRepo) Create(_ context.Context, employee *model.Employee) error {
	if employee.EmployeeID == "" {
		employee.EmployeeID = "emp-" + employee.BadgeNumber
	}
	m.employees[employee.EmployeeID] = employee
	m.creates++
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id string) (*model.Employee, error) {
	if e, ok := m.employees[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetByBadge(_ context.Context, badgeNumber string) (*model.Employee, error) {
	for _, e := range m.employees {
		if e.BadgeNumber == badgeNumber {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) Update(_ context.Context, employee *model.Employee) error {
	m.employees[employee.EmployeeID] = employee
	return nil
}

func (m *mockEmployeeRepo) List(_ context.Context, offset, limit int) ([]model.Employee, int64, error) {
	var all []model.Employee
	for _, e := range m.employees {
		all = append(all, *e)
	}
	total := int64(len(all))
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	if offset > len(all) {
		return nil, total, nil
	}
	return all[offset:end], total, nil
}

func (m *mockEmployeeRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.employees, id)
	return nil
}

type mockVisitorRepo struct {
	visitors map[string]*model.Visitor
	creates  int
	touches  int
}

func newMockVisitorRepo() *mockVisitorRepo {
	return &mockVisitorRepo{visitors: make(map[string]*model.Visitor)}
}

func (m *mockVisitorRepo) Create(_ context.Context, visitor *model.Visitor) error {
	if visitor.VisitorID == "" {
		visitor.VisitorID = "vis-" + visitor.BadgeNumber
	}
	m.visitors[visitor.VisitorID] = visitor
	m.creates++
	return nil
}

func (m *mockVisitorRepo) GetByID(_ context.Context, id string) (*model.Visitor, error) {
	if v, ok := m.visitors[id]; ok {
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockVisitorRepo) GetByBadge(_ context.Context, badgeNumber string) (*model.Visitor, error) {
	for _, v := range m.visitors {
		if v.BadgeNumber == badgeNumber {
			return v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockVisitorRepo) Update(_ context.Context, visitor *model.Visitor) error {
	m.visitors[visitor.VisitorID] = visitor
	return nil
}

func (m *mockVisitorRepo) TouchSeen(_ context.Context, id string, seen time.Time) error {
	v, ok := m.visitors[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v.FirstSeen == nil {
		t := seen
		v.FirstSeen = &t
	}
	t := seen
	v.LastSeen = &t
	m.touches++
	return nil
}

func (m *mockVisitorRepo) List(_ context.Context, offset, limit int) ([]model.Visitor, int64, error) {
	var all []model.Visitor
	for _, v := range m.visitors {
		all = append(all, *v)
	}
	total := int64(len(all))
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	if offset > len(all) {
		return nil, total, nil
	}
	return all[offset:end], total, nil
}

func (m *mockVisitorRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.visitors, id)
	return nil
}

type mockHolidayRepo struct {
	holidays map[string]*model.Holiday
}

func newMockHolidayRepo() *mockHolidayRepo {
	return &mockHolidayRepo{holidays: make(map[string]*model.Holiday)}
}

func (m *mockHolidayRepo) Create(_ context.Context, holiday *model.Holiday) error {
	if holiday.HolidayID == "" {
		holiday.HolidayID = "hol-" + holiday.HolidayDate.Format("2006-01-02")
	}
	m.holidays[holiday.HolidayID] = holiday
	return nil
}

func (m *mockHolidayRepo) GetByID(_ context.Context, id string) (*model.Holiday, error) {
	if h, ok := m.holidays[id]; ok {
		return h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHolidayRepo) ListAll(_ context.Context) ([]model.Holiday, error) {
	var result []model.Holiday
	for _, h := range m.holidays {
		result = append(result, *h)
	}
	return result, nil
}

func (m *mockHolidayRepo) Update(_ context.Context, holiday *model.Holiday) error {
	m.holidays[holiday.HolidayID] = holiday
	return nil
}

func (m *mockHolidayRepo) Delete(_ context.Context, id string) error {
	delete(m.holidays, id)
	return nil
}

type mockAttendanceConfigRepo struct {
	cfg *model.AttendanceConfig
}

// defaultTestConfig 接近出厂默认的考勤策略
func defaultTestConfig() *model.AttendanceConfig {
	return &model.AttendanceConfig{
		Singleton:           true,
		StartHour:           "08:00",
		EndHour:             "17:00",
		DailyHours:          8.0,
		CountWeekends:       false,
		CountHolidays:       false,
		LunchBreak:          true,
		LunchBreakStart:     "12:00",
		LunchBreakEnd:       "14:00",
		LunchBreakDuration:  60,
		AllowOtherBreaks:    true,
		MaxBreakTime:        30,
		RoundAttendanceTime: false,
		RoundingInterval:    15,
		RoundingDirection:   model.RoundNearest,
		WorkingDays:         "1,2,3,4,5",
	}
}

func newMockAttendanceConfigRepo() *mockAttendanceConfigRepo {
	return &mockAttendanceConfigRepo{cfg: defaultTestConfig()}
}

func (m *mockAttendanceConfigRepo) Get(_ context.Context) (*model.AttendanceConfig, error) {
	if m.cfg == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m.cfg
	return &cp, nil
}

func (m *mockAttendanceConfigRepo) Update(_ context.Context, cfg *model.AttendanceConfig) error {
	m.cfg = cfg
	return nil
}

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	var all []model.User
	for _, u := range m.users {
		all = append(all, *u)
	}
	total := int64(len(all))
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	if offset > len(all) {
		return nil, total, nil
	}
	return all[offset:end], total, nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.users, id)
	return nil
}

type mockRoleRepo struct {
	roles       map[string]*model.Role
	permissions []model.Permission
}

func newMockRoleRepo() *mockRoleRepo {
	return &mockRoleRepo{
		roles: map[string]*model.Role{
			"role-admin": {RoleID: "role-admin", Name: "admin"},
		},
	}
}

func (m *mockRoleRepo) Create(_ context.Context, role *model.Role) error {
	if role.RoleID == "" {
		role.RoleID = "role-" + role.Name
	}
	m.roles[role.RoleID] = role
	return nil
}

func (m *mockRoleRepo) GetByID(_ context.Context, id string) (*model.Role, error) {
	if r, ok := m.roles[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoleRepo) GetByName(_ context.Context, name string) (*model.Role, error) {
	for _, r := range m.roles {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoleRepo) List(_ context.Context) ([]model.Role, error) {
	var result []model.Role
	for _, r := range m.roles {
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockRoleRepo) Update(_ context.Context, role *model.Role) error {
	m.roles[role.RoleID] = role
	return nil
}

func (m *mockRoleRepo) Delete(_ context.Context, id string) error {
	delete(m.roles, id)
	return nil
}

func (m *mockRoleRepo) ReplacePermissions(_ context.Context, roleID string, permissionIDs []string) error {
	role, ok := m.roles[roleID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	role.Permissions = nil
	for _, pid := range permissionIDs {
		for _, p := range m.permissions {
			if p.PermissionID == pid {
				role.Permissions = append(role.Permissions, p)
			}
		}
	}
	return nil
}

func (m *mockRoleRepo) ListPermissions(_ context.Context) ([]model.Permission, error) {
	return m.permissions, nil
}

// newMockRepository 构造全 mock 的 Repository 聚合
func newMockRepository() (*repository.Repository, *mockAccessEventRepo, *mockEmployeeRepo, *mockVisitorRepo) {
	eventRepo := newMockAccessEventRepo()
	employeeRepo := newMockEmployeeRepo()
	visitorRepo := newMockVisitorRepo()
	repo := &repository.Repository{
		AccessEvent:      eventRepo,
		Employee:         employeeRepo,
		Visitor:          visitorRepo,
		Holiday:          newMockHolidayRepo(),
		AttendanceConfig: newMockAttendanceConfigRepo(),
		User:             newMockUserRepo(),
		Role:             newMockRoleRepo(),
	}
	return repo, eventRepo, employeeRepo, visitorRepo
}
