package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/gilandre/senator-dashboard-sub005/internal/dto"
)

func setupTestConfigService() (AttendanceConfigService, *mockAttendanceConfigRepo) {
	repo, _, _, _ := newMockRepository()
	cfgRepo := repo.AttendanceConfig.(*mockAttendanceConfigRepo)
	svc := NewAttendanceConfigService(repo, zap.NewNop())
	return svc, cfgRepo
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func TestConfigGet_Defaults(t *testing.T) {
	svc, _ := setupTestConfigService()

	cfg, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get 应成功: %v", err)
	}
	if cfg.StartHour != "08:00" || cfg.EndHour != "17:00" {
		t.Errorf("默认工作时段应为 08:00-17:00，实际 %s-%s", cfg.StartHour, cfg.EndHour)
	}
	if cfg.WorkingDays != "1,2,3,4,5" {
		t.Errorf("默认工作日应为 1,2,3,4,5，实际 %s", cfg.WorkingDays)
	}
}

func TestConfigUpdate_Partial(t *testing.T) {
	svc, cfgRepo := setupTestConfigService()

	resp, err := svc.Update(context.Background(), &dto.UpdateAttendanceConfigRequest{
		RoundAttendanceTime: boolPtr(true),
		RoundingInterval:    intPtr(30),
	}, "admin-1")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if !resp.RoundAttendanceTime || resp.RoundingInterval != 30 {
		t.Errorf("取整配置未生效: %v/%d", resp.RoundAttendanceTime, resp.RoundingInterval)
	}
	// 未出现在请求中的字段保持原值
	if resp.StartHour != "08:00" || resp.LunchBreakDuration != 60 {
		t.Errorf("部分更新不应覆盖未提交字段: %s / %d", resp.StartHour, resp.LunchBreakDuration)
	}
	if cfgRepo.cfg.RoundingInterval != 30 {
		t.Error("更新应持久化")
	}
}

func TestConfigUpdate_BadLunchRange(t *testing.T) {
	svc, _ := setupTestConfigService()

	_, err := svc.Update(context.Background(), &dto.UpdateAttendanceConfigRequest{
		LunchBreakStart: strPtr("14:00"),
		LunchBreakEnd:   strPtr("12:00"),
	}, "admin-1")
	if !errors.Is(err, ErrConfigBadLunchRange) {
		t.Errorf("期望 ErrConfigBadLunchRange，实际: %v", err)
	}
}

func TestConfigUpdate_BadWorkingDays(t *testing.T) {
	svc, _ := setupTestConfigService()

	_, err := svc.Update(context.Background(), &dto.UpdateAttendanceConfigRequest{
		WorkingDays: strPtr("7,8"),
	}, "admin-1")
	if !errors.Is(err, ErrConfigBadWorkDays) {
		t.Errorf("期望 ErrConfigBadWorkDays，实际: %v", err)
	}
}
