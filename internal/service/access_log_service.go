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
	pkgerrors "github.com/gilandre/senator-dashboard-sub005/pkg/errors"
)

// ── 门禁事件模块业务错误 ──

var (
	ErrAccessLogNotFound  = errors.New("门禁事件不存在")
	ErrAccessLogDuplicate = errors.New("门禁事件已存在（同卡号/日期/时间/读卡器）")
	ErrAccessLogBadClock  = errors.New("时间格式无效，应为 HH:MM 或 HH:MM:SS")
)

// AccessLogService 门禁事件业务接口
// 事件入库后本体不可变：Update 仅允许翻转 processed 标记
type AccessLogService interface {
	Create(ctx context.Context, req *dto.CreateAccessLogRequest) (*dto.AccessLogResponse, error)
	GetByID(ctx context.Context, id string) (*dto.AccessLogResponse, error)
	List(ctx context.Context, filter *dto.AccessLogFilter) ([]dto.AccessLogResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateAccessLogRequest) (*dto.AccessLogResponse, error)
	Delete(ctx context.Context, id string) error
}

type accessLogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAccessLogService 创建 AccessLogService 实例
func NewAccessLogService(repo *repository.Repository, logger *zap.Logger) AccessLogService {
	return &accessLogService{repo: repo, logger: logger}
}

func (s *accessLogService) Create(ctx context.Context, req *dto.CreateAccessLogRequest) (*dto.AccessLogResponse, error) {
	eventDate, err := time.Parse("02/01/2006", req.EventDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}

	clock := normalizeClock(req.EventTime)
	if !timePattern.MatchString(req.EventTime) {
		return nil, ErrAccessLogBadClock
	}

	eventType := req.EventType
	if eventType == "" {
		eventType = model.EventTypeUnknown
	}

	event := &model.AccessEvent{
		BadgeNumber: req.BadgeNumber,
		EventDate:   eventDate,
		EventTime:   clock,
		Controller:  req.Controller,
		Reader:      req.Reader,
		EventType:   eventType,
		Direction:   req.Direction,
		FullName:    req.FullName,
		GroupName:   req.GroupName,
		PersonType:  model.PersonTypeUnknown,
	}

	inserted, err := s.repo.AccessEvent.CreateIgnoreDuplicate(ctx, event)
	if err != nil {
		s.logger.Error("创建门禁事件失败", zap.Error(err))
		return nil, err
	}
	if !inserted {
		return nil, ErrAccessLogDuplicate
	}

	return toAccessLogResponse(event), nil
}

func (s *accessLogService) GetByID(ctx context.Context, id string) (*dto.AccessLogResponse, error) {
	event, err := s.repo.AccessEvent.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccessLogNotFound
		}
		s.logger.Error("查询门禁事件失败", zap.Error(err))
		return nil, err
	}
	return toAccessLogResponse(event), nil
}

func (s *accessLogService) List(ctx context.Context, filter *dto.AccessLogFilter) ([]dto.AccessLogResponse, int64, error) {
	events, total, err := s.repo.AccessEvent.List(ctx, filter)
	if err != nil {
		s.logger.Error("查询门禁事件列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.AccessLogResponse, 0, len(events))
	for i := range events {
		result = append(result, *toAccessLogResponse(&events[i]))
	}
	return result, total, nil
}

// Update 门禁事件不可变，仅接受 processed 标记的翻转；
// 其余字段的修改请求一律拒绝（由 DTO 绑定约束保证）
func (s *accessLogService) Update(ctx context.Context, id string, req *dto.UpdateAccessLogRequest) (*dto.AccessLogResponse, error) {
	event, err := s.repo.AccessEvent.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccessLogNotFound
		}
		return nil, err
	}

	if req.Processed == nil {
		return nil, pkgerrors.ErrImmutableRecord
	}

	if *req.Processed && !event.Processed {
		if err := s.repo.AccessEvent.SetProcessed(ctx, []string{event.EventID}); err != nil {
			s.logger.Error("更新门禁事件标记失败", zap.Error(err))
			return nil, err
		}
		event.Processed = true
	} else if !*req.Processed && event.Processed {
		if err := s.repo.AccessEvent.ClearProcessed(ctx, []string{event.EventID}); err != nil {
			s.logger.Error("更新门禁事件标记失败", zap.Error(err))
			return nil, err
		}
		event.Processed = false
	}

	return toAccessLogResponse(event), nil
}

func (s *accessLogService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.AccessEvent.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccessLogNotFound
		}
		return err
	}
	if err := s.repo.AccessEvent.Delete(ctx, id); err != nil {
		s.logger.Error("删除门禁事件失败", zap.Error(err))
		return err
	}
	return nil
}

func toAccessLogResponse(event *model.AccessEvent) *dto.AccessLogResponse {
	return &dto.AccessLogResponse{
		ID:          event.EventID,
		BadgeNumber: event.BadgeNumber,
		EventDate:   event.EventDate.Format("02/01/2006"),
		EventTime:   event.EventTime,
		Controller:  event.Controller,
		Reader:      event.Reader,
		EventType:   event.EventType,
		Direction:   event.Direction,
		FullName:    event.FullName,
		GroupName:   event.GroupName,
		PersonType:  event.PersonType,
		Processed:   event.Processed,
	}
}
