package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/gilandre/senator-dashboard-sub005/internal/dto"
	"github.com/gilandre/senator-dashboard-sub005/internal/model"
	"github.com/gilandre/senator-dashboard-sub005/internal/repository"
)

func setupTestDirectoryService() (DirectoryService, *repository.Repository) {
	repo, _, _, _ := newMockRepository()
	svc := NewDirectoryService(repo, zap.NewNop())
	return svc, repo
}

func TestCreateEmployee_Success(t *testing.T) {
	svc, _ := setupTestDirectoryService()

	resp, err := svc.CreateEmployee(context.Background(), &dto.CreateEmployeeRequest{
		BadgeNumber: "B100",
		FirstName:   "Marie",
		LastName:    "DUPONT",
		Department:  "Direction",
	}, "admin-1")
	if err != nil {
		t.Fatalf("CreateEmployee 应成功: %v", err)
	}
	if resp.Status != "active" {
		t.Errorf("新员工状态应为 active，实际 %s", resp.Status)
	}
	if resp.BadgeNumber != "B100" || resp.LastName != "DUPONT" {
		t.Errorf("响应字段不符: %+v", resp)
	}
}

func TestCreateEmployee_BadgeTaken(t *testing.T) {
	svc, _ := setupTestDirectoryService()

	req := &dto.CreateEmployeeRequest{BadgeNumber: "B100", LastName: "DUPONT"}
	if _, err := svc.CreateEmployee(context.Background(), req, "admin-1"); err != nil {
		t.Fatalf("首次创建应成功: %v", err)
	}
	_, err := svc.CreateEmployee(context.Background(), &dto.CreateEmployeeRequest{
		BadgeNumber: "B100",
		LastName:    "MARTIN",
	}, "admin-1")
	if !errors.Is(err, ErrBadgeTaken) {
		t.Errorf("期望 ErrBadgeTaken，实际: %v", err)
	}
}

func TestUpdateVisitor_NotFound(t *testing.T) {
	svc, _ := setupTestDirectoryService()

	company := "ACME"
	_, err := svc.UpdateVisitor(context.Background(), "missing", &dto.UpdateVisitorRequest{
		Company: &company,
	}, "admin-1")
	if !errors.Is(err, ErrVisitorNotFound) {
		t.Errorf("期望 ErrVisitorNotFound，实际: %v", err)
	}
}

func TestCreateHoliday_Success(t *testing.T) {
	svc, _ := setupTestDirectoryService()

	resp, err := svc.CreateHoliday(context.Background(), &dto.CreateHolidayRequest{
		Date: "14/07/2026",
		Name: "Fête nationale",
	}, "admin-1")
	if err != nil {
		t.Fatalf("CreateHoliday 应成功: %v", err)
	}
	if resp.Date != "14/07/2026" {
		t.Errorf("日期应为 14/07/2026，实际 %s", resp.Date)
	}
}

func TestCreateHoliday_BadDate(t *testing.T) {
	svc, _ := setupTestDirectoryService()

	_, err := svc.CreateHoliday(context.Background(), &dto.CreateHolidayRequest{
		Date: "2026-07-14",
		Name: "Fête nationale",
	}, "admin-1")
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("期望 ErrInvalidDateRange，实际: %v", err)
	}
}

func TestCreateHoliday_DateTaken(t *testing.T) {
	svc, repo := setupTestDirectoryService()

	// 2020 年录入的年度重复节假日，应与 2026 年同月日冲突
	holidayRepo := repo.Holiday.(*mockHolidayRepo)
	holidayRepo.Create(context.Background(), &model.Holiday{
		HolidayDate:   time.Date(2020, 12, 25, 0, 0, 0, 0, time.UTC),
		Name:          "Noël",
		RepeatsYearly: true,
	})

	_, err := svc.CreateHoliday(context.Background(), &dto.CreateHolidayRequest{
		Date: "25/12/2026",
		Name: "Noël",
	}, "admin-1")
	if !errors.Is(err, ErrHolidayDateTaken) {
		t.Errorf("期望 ErrHolidayDateTaken，实际: %v", err)
	}
}

func TestDeleteHoliday_NotFound(t *testing.T) {
	svc, _ := setupTestDirectoryService()

	if err := svc.DeleteHoliday(context.Background(), "missing"); !errors.Is(err, ErrHolidayNotFound) {
		t.Errorf("期望 ErrHolidayNotFound，实际: %v", err)
	}
}
