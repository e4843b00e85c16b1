package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gilandre/senator-dashboard-sub005/config"
	"github.com/gilandre/senator-dashboard-sub005/internal/dto"
	"github.com/gilandre/senator-dashboard-sub005/internal/model"
	"github.com/gilandre/senator-dashboard-sub005/internal/repository"
)

// SyncService 员工/访客同步业务接口
//
// 从未处理 (processed=false) 的门禁事件派生员工与访客档案，完成后把
// 事件标记为 processed。任务幂等：已处理的行不会再被扫描，重跑零写入；
// 单条失败记日志跳过，不中断整批。
type SyncService interface {
	Run(ctx context.Context) (*dto.SyncReport, error)
}

type syncService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSyncService 创建 SyncService 实例
func NewSyncService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) SyncService {
	return &syncService{cfg: cfg, repo: repo, logger: logger}
}

func (s *syncService) Run(ctx context.Context) (*dto.SyncReport, error) {
	batchSize := s.cfg.Sync.BatchSize
	if batchSize <= 0 {
		batchSize = 500
	}

	events, err := s.repo.AccessEvent.ListUnprocessed(ctx, batchSize)
	if err != nil {
		s.logger.Error("查询未处理事件失败", zap.Error(err))
		return nil, err
	}

	report := &dto.SyncReport{ScannedEvents: len(events)}
	processedIDs := make([]string, 0, len(events))

	for _, ev := range events {
		if err := s.syncOne(ctx, &ev, report); err != nil {
			// 失败的行保留 processed=false，等待下一轮重试
			s.logger.Warn("同步单条事件失败",
				zap.String("event_id", ev.EventID),
				zap.String("badge", ev.BadgeNumber),
				zap.Error(err),
			)
			report.FailedEvents++
			continue
		}
		processedIDs = append(processedIDs, ev.EventID)
	}

	if err := s.repo.AccessEvent.SetProcessed(ctx, processedIDs); err != nil {
		s.logger.Error("标记 processed 失败", zap.Error(err))
		return nil, err
	}
	report.MarkedProcessed = len(processedIDs)

	s.logger.Info("同步任务完成",
		zap.Int("scanned", report.ScannedEvents),
		zap.Int("created_employees", report.CreatedEmployees),
		zap.Int("created_visitors", report.CreatedVisitors),
		zap.Int("failed", report.FailedEvents),
	)

	return report, nil
}

// syncOne 按事件的持卡人类型派生档案
func (s *syncService) syncOne(ctx context.Context, ev *model.AccessEvent, report *dto.SyncReport) error {
	if strings.TrimSpace(ev.BadgeNumber) == "" {
		return nil // 无工牌号的事件只标记处理，不派生档案
	}

	firstName, lastName := splitFullName(ev.FullName)

	switch ev.PersonType {
	case model.PersonTypeEmployee:
		_, err := s.repo.Employee.GetByBadge(ctx, ev.BadgeNumber)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := s.repo.Employee.Create(ctx, &model.Employee{
			BadgeNumber: ev.BadgeNumber,
			FirstName:   firstName,
			LastName:    lastName,
			Department:  ev.GroupName,
			Status:      "active",
		}); err != nil {
			return err
		}
		report.CreatedEmployees++

	case model.PersonTypeVisitor:
		visitor, err := s.repo.Visitor.GetByBadge(ctx, ev.BadgeNumber)
		if err == nil {
			if err := s.repo.Visitor.TouchSeen(ctx, visitor.VisitorID, ev.EventDate); err != nil {
				return err
			}
			report.UpdatedVisitors++
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		seen := ev.EventDate
		if err := s.repo.Visitor.Create(ctx, &model.Visitor{
			BadgeNumber: ev.BadgeNumber,
			FirstName:   firstName,
			LastName:    lastName,
			Company:     ev.GroupName,
			FirstSeen:   &seen,
			LastSeen:    &seen,
		}); err != nil {
			return err
		}
		report.CreatedVisitors++
	}

	// person_type 未知的事件只标记处理
	return nil
}

// splitFullName 将 "Prénom Nom" 拆为姓与名；单段文本归入姓
func splitFullName(fullName string) (firstName, lastName string) {
	parts := strings.Fields(fullName)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return "", parts[0]
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
