package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/gilandre/senator-dashboard-sub005/config"
	"github.com/gilandre/senator-dashboard-sub005/internal/service"
	"github.com/gilandre/senator-dashboard-sub005/pkg/mailer"
)

// syncRunTimeout 单次同步任务的最长运行时间
const syncRunTimeout = 5 * time.Minute

// SyncJob 未处理门禁事件的后台同步任务
// 按 sync.cron_spec 周期运行；每轮结束后若检出昨日异常且配置了邮箱，
// 发送汇总邮件提醒管理员。
type SyncJob struct {
	cfg        *config.Config
	syncSvc    service.SyncService
	attendSvc  service.AttendanceService
	mail       *mailer.Mailer
	logger     *zap.Logger
	cron       *cron.Cron
	lastMailed string // 已发送异常邮件的日期（DD/MM/YYYY），避免重复提醒
}

// NewSyncJob 创建 SyncJob；mail 为 nil 时跳过异常邮件
func NewSyncJob(
	cfg *config.Config,
	syncSvc service.SyncService,
	attendSvc service.AttendanceService,
	mail *mailer.Mailer,
	logger *zap.Logger,
) *SyncJob {
	return &SyncJob{
		cfg:       cfg,
		syncSvc:   syncSvc,
		attendSvc: attendSvc,
		mail:      mail,
		logger:    logger,
	}
}

// Start 注册并启动定时任务；sync.enabled 为 false 时不启动
func (j *SyncJob) Start() error {
	if !j.cfg.Sync.Enabled {
		j.logger.Info("同步任务已禁用")
		return nil
	}

	j.cron = cron.New()
	if _, err := j.cron.AddFunc(j.cfg.Sync.CronSpec, j.runOnce); err != nil {
		return fmt.Errorf("注册同步任务失败: %w", err)
	}
	j.cron.Start()
	j.logger.Info("同步任务已启动", zap.String("cron_spec", j.cfg.Sync.CronSpec))
	return nil
}

// Stop 停止定时任务，等待进行中的一轮结束
func (j *SyncJob) Stop() {
	if j.cron == nil {
		return
	}
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.logger.Info("同步任务已停止")
}

func (j *SyncJob) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), syncRunTimeout)
	defer cancel()

	report, err := j.syncSvc.Run(ctx)
	if err != nil {
		j.logger.Error("同步任务执行失败", zap.Error(err))
		return
	}

	j.logger.Info("同步任务完成",
		zap.Int("scanned", report.ScannedEvents),
		zap.Int("created_employees", report.CreatedEmployees),
		zap.Int("created_visitors", report.CreatedVisitors),
		zap.Int("marked_processed", report.MarkedProcessed),
		zap.Int("failed", report.FailedEvents),
	)

	j.notifyAnomalies(ctx)
}

// notifyAnomalies 检出昨日打卡异常并邮件汇总
// 每个日期只发一次
func (j *SyncJob) notifyAnomalies(ctx context.Context) {
	if j.mail == nil {
		return
	}

	yesterday := time.Now().AddDate(0, 0, -1).Truncate(24 * time.Hour)
	dateLabel := yesterday.Format("02/01/2006")
	if j.lastMailed == dateLabel {
		return
	}

	anomalies, err := j.attendSvc.Anomalies(ctx, yesterday, yesterday)
	if err != nil {
		j.logger.Error("异常检出失败", zap.Error(err))
		return
	}
	if len(anomalies) == 0 {
		j.lastMailed = dateLabel
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<p>%s 检出 %d 条打卡异常：</p><ul>", dateLabel, len(anomalies))
	for _, a := range anomalies {
		fmt.Fprintf(&b, "<li>%s（%s）: %s</li>", a.BadgeNumber, a.FullName, a.Description)
	}
	b.WriteString("</ul>")

	subject := fmt.Sprintf("Anomalies de pointage — %s", dateLabel)
	if err := j.mail.Send(subject, b.String()); err != nil {
		j.logger.Error("异常邮件发送失败", zap.Error(err))
		return
	}
	j.lastMailed = dateLabel
	j.logger.Info("异常汇总邮件已发送", zap.String("date", dateLabel), zap.Int("count", len(anomalies)))
}
