package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/gilandre/senator-dashboard-sub005/internal/dto"
	"github.com/gilandre/senator-dashboard-sub005/internal/model"
	"github.com/gilandre/senator-dashboard-sub005/internal/repository"
)

// ── 考勤策略模块业务错误 ──

var (
	ErrConfigBadHourRange  = errors.New("下班时间必须晚于上班时间（连续日模式除外）")
	ErrConfigBadLunchRange = errors.New("午休结束时间必须晚于开始时间")
	ErrConfigBadWorkDays   = errors.New("working_days 仅接受 0-6 的逗号分隔索引")
)

// AttendanceConfigService 考勤策略业务接口（单行配置）
type AttendanceConfigService interface {
	Get(ctx context.Context) (*dto.AttendanceConfigResponse, error)
	Update(ctx context.Context, req *dto.UpdateAttendanceConfigRequest, callerID string) (*dto.AttendanceConfigResponse, error)
}

type attendanceConfigService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAttendanceConfigService 创建 AttendanceConfigService 实例
func NewAttendanceConfigService(repo *repository.Repository, logger *zap.Logger) AttendanceConfigService {
	return &attendanceConfigService{repo: repo, logger: logger}
}

func (s *attendanceConfigService) Get(ctx context.Context) (*dto.AttendanceConfigResponse, error) {
	cfg, err := s.repo.AttendanceConfig.Get(ctx)
	if err != nil {
		s.logger.Error("读取考勤策略失败", zap.Error(err))
		return nil, ErrAttendanceConfigMissing
	}
	return toAttendanceConfigResponse(cfg), nil
}

// Update 部分更新：仅请求中出现的字段覆盖现值，其余保持不变
func (s *attendanceConfigService) Update(ctx context.Context, req *dto.UpdateAttendanceConfigRequest, callerID string) (*dto.AttendanceConfigResponse, error) {
	cfg, err := s.repo.AttendanceConfig.Get(ctx)
	if err != nil {
		s.logger.Error("读取考勤策略失败", zap.Error(err))
		return nil, ErrAttendanceConfigMissing
	}

	applyConfigPatch(cfg, req)

	if _, err := parseClockMinutes(cfg.StartHour); err != nil {
		return nil, ErrConfigBadHourRange
	}
	if _, err := parseClockMinutes(cfg.EndHour); err != nil {
		return nil, ErrConfigBadHourRange
	}
	if cfg.LunchBreak {
		start, err1 := parseClockMinutes(cfg.LunchBreakStart)
		end, err2 := parseClockMinutes(cfg.LunchBreakEnd)
		if err1 != nil || err2 != nil || end <= start {
			return nil, ErrConfigBadLunchRange
		}
	}
	if req.WorkingDays != nil && len(cfg.WorkingDaySet()) == 0 {
		return nil, ErrConfigBadWorkDays
	}

	cfg.UpdatedBy = &callerID
	if err := s.repo.AttendanceConfig.Update(ctx, cfg); err != nil {
		s.logger.Error("更新考勤策略失败", zap.Error(err))
		return nil, err
	}

	return toAttendanceConfigResponse(cfg), nil
}

func applyConfigPatch(cfg *model.AttendanceConfig, req *dto.UpdateAttendanceConfigRequest) {
	if req.StartHour != nil {
		cfg.StartHour = *req.StartHour
	}
	if req.EndHour != nil {
		cfg.EndHour = *req.EndHour
	}
	if req.DailyHours != nil {
		cfg.DailyHours = *req.DailyHours
	}
	if req.CountWeekends != nil {
		cfg.CountWeekends = *req.CountWeekends
	}
	if req.CountHolidays != nil {
		cfg.CountHolidays = *req.CountHolidays
	}
	if req.LunchBreak != nil {
		cfg.LunchBreak = *req.LunchBreak
	}
	if req.LunchBreakStart != nil {
		cfg.LunchBreakStart = *req.LunchBreakStart
	}
	if req.LunchBreakEnd != nil {
		cfg.LunchBreakEnd = *req.LunchBreakEnd
	}
	if req.LunchBreakDuration != nil {
		cfg.LunchBreakDuration = *req.LunchBreakDuration
	}
	if req.AllowOtherBreaks != nil {
		cfg.AllowOtherBreaks = *req.AllowOtherBreaks
	}
	if req.MaxBreakTime != nil {
		cfg.MaxBreakTime = *req.MaxBreakTime
	}
	if req.RoundAttendanceTime != nil {
		cfg.RoundAttendanceTime = *req.RoundAttendanceTime
	}
	if req.RoundingInterval != nil {
		cfg.RoundingInterval = *req.RoundingInterval
	}
	if req.RoundingDirection != nil {
		cfg.RoundingDirection = *req.RoundingDirection
	}
	if req.WorkingDays != nil {
		cfg.WorkingDays = *req.WorkingDays
	}
}

func toAttendanceConfigResponse(cfg *model.AttendanceConfig) *dto.AttendanceConfigResponse {
	return &dto.AttendanceConfigResponse{
		StartHour:           cfg.StartHour,
		EndHour:             cfg.EndHour,
		DailyHours:          cfg.DailyHours,
		CountWeekends:       cfg.CountWeekends,
		CountHolidays:       cfg.CountHolidays,
		LunchBreak:          cfg.LunchBreak,
		LunchBreakStart:     cfg.LunchBreakStart,
		LunchBreakEnd:       cfg.LunchBreakEnd,
		LunchBreakDuration:  cfg.LunchBreakDuration,
		AllowOtherBreaks:    cfg.AllowOtherBreaks,
		MaxBreakTime:        cfg.MaxBreakTime,
		RoundAttendanceTime: cfg.RoundAttendanceTime,
		RoundingInterval:    cfg.RoundingInterval,
		RoundingDirection:   cfg.RoundingDirection,
		WorkingDays:         cfg.WorkingDays,
		UpdatedAt:           cfg.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
