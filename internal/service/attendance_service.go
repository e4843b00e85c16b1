package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gilandre/senator-dashboard-sub005/internal/dto"
	"github.com/gilandre/senator-dashboard-sub005/internal/model"
	"github.com/gilandre/senator-dashboard-sub005/internal/repository"
)

// ── 考勤模块业务错误 ──

var (
	ErrAttendanceConfigMissing = errors.New("考勤策略未初始化")
	ErrInvalidDateRange        = errors.New("日期范围无效：start_date 必须不晚于 end_date")
)

const minutesPerDay = 24 * 60

// AttendanceService 考勤推导业务接口
//
// 设计说明：
//   - 考勤记录按需从原始门禁事件重算，不落库
//   - 每 (badge, date) 分组产出一条记录；组内推导失败只跳过该组，不中断整批
//   - 取整、午休扣减、跨夜班次等规则全部来自单行考勤策略
type AttendanceService interface {
	// Derive 推导日期范围内的考勤记录
	Derive(ctx context.Context, start, end time.Time) ([]dto.AttendanceRecord, error)
	// Anomalies 检出日期范围内的打卡异常
	Anomalies(ctx context.Context, start, end time.Time) ([]dto.AnomalyRecord, error)
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, logger: logger}
}

// ────────────────────── Derive ──────────────────────

func (s *attendanceService) Derive(ctx context.Context, start, end time.Time) ([]dto.AttendanceRecord, error) {
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	cfg, err := s.repo.AttendanceConfig.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendanceConfigMissing
		}
		s.logger.Error("查询考勤策略失败", zap.Error(err))
		return nil, err
	}

	holidays, err := s.repo.Holiday.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询节假日失败", zap.Error(err))
		return nil, err
	}

	events, err := s.repo.AccessEvent.ListByDateRange(ctx, start, end)
	if err != nil {
		s.logger.Error("查询门禁事件失败", zap.Error(err))
		return nil, err
	}

	groups := groupByBadgeAndDay(events)

	records := make([]dto.AttendanceRecord, 0, len(groups))
	for _, group := range groups {
		record, err := s.deriveGroup(group, cfg, holidays)
		if err != nil {
			// 单组推导失败只跳过该组
			s.logger.Warn("考勤推导跳过异常分组",
				zap.String("badge", group.badge),
				zap.String("date", group.dateKey),
				zap.Error(err),
			)
			continue
		}
		records = append(records, *record)
	}

	// 输出按日期升序，再按到场时间升序，最后按工牌号
	sort.Slice(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			di, _ := time.Parse("02/01/2006", records[i].Date)
			dj, _ := time.Parse("02/01/2006", records[j].Date)
			return di.Before(dj)
		}
		if records[i].ArrivalTime != records[j].ArrivalTime {
			return records[i].ArrivalTime < records[j].ArrivalTime
		}
		return records[i].BadgeNumber < records[j].BadgeNumber
	})

	return records, nil
}

// eventGroup 单人单日的打卡事件分组
type eventGroup struct {
	badge   string
	dateKey string // YYYY-MM-DD
	date    time.Time
	events  []model.AccessEvent
}

// groupByBadgeAndDay 按 (badge, 自然日) 分组，丢弃空工牌号事件
func groupByBadgeAndDay(events []model.AccessEvent) []*eventGroup {
	index := make(map[string]*eventGroup)
	var order []string

	for _, ev := range events {
		if strings.TrimSpace(ev.BadgeNumber) == "" {
			continue
		}
		dateKey := ev.EventDate.Format("2006-01-02")
		key := ev.BadgeNumber + "|" + dateKey
		g, ok := index[key]
		if !ok {
			g = &eventGroup{badge: ev.BadgeNumber, dateKey: dateKey, date: ev.EventDate}
			index[key] = g
			order = append(order, key)
		}
		g.events = append(g.events, ev)
	}

	groups := make([]*eventGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, index[key])
	}
	return groups
}

// deriveGroup 推导单个 (badge, date) 分组的考勤记录
func (s *attendanceService) deriveGroup(
	group *eventGroup,
	cfg *model.AttendanceConfig,
	holidays []model.Holiday,
) (*dto.AttendanceRecord, error) {
	if len(group.events) == 0 {
		return nil, errors.New("空分组")
	}

	// 组内按时间升序；首条为到场，末条为离场（仅一条时两者相同）
	sort.SliceStable(group.events, func(i, j int) bool {
		return group.events[i].EventTime < group.events[j].EventTime
	})

	first := group.events[0]
	last := group.events[len(group.events)-1]

	arrivalMin, err := parseClockMinutes(first.EventTime)
	if err != nil {
		return nil, fmt.Errorf("到场时间无法解析: %w", err)
	}
	departureMin, err := parseClockMinutes(last.EventTime)
	if err != nil {
		return nil, fmt.Errorf("离场时间无法解析: %w", err)
	}

	// 到场/离场独立取整；分钟进位到下一小时由纯分钟运算自然处理
	if cfg.RoundAttendanceTime && cfg.RoundingInterval > 0 {
		arrivalMin = roundClockMinutes(arrivalMin, cfg.RoundingInterval, cfg.RoundingDirection)
		departureMin = roundClockMinutes(departureMin, cfg.RoundingInterval, cfg.RoundingDirection)
	}

	// 离场早于到场 ⇒ 跨夜班次
	duration := departureMin - arrivalMin
	isContinuous := false
	if duration < 0 {
		isContinuous = true
		duration = (minutesPerDay - arrivalMin) + departureMin
	}

	// "其他休息" 固定扣减（按策略近似扣除，不校验与在场时段的重叠）
	pauseMinutes := 0
	if cfg.AllowOtherBreaks && cfg.MaxBreakTime > 0 {
		pauseMinutes = cfg.MaxBreakTime
		duration -= pauseMinutes
	}

	// 午休扣减：时长超过午休时才扣
	lunchMinutes := 0
	if cfg.LunchBreak && duration > cfg.LunchBreakDuration {
		lunchMinutes = cfg.LunchBreakDuration
		duration -= lunchMinutes
	}

	if duration < 0 {
		duration = 0
	}
	totalHours := math.Round(float64(duration)/60*100) / 100

	isHoliday := false
	for i := range holidays {
		if holidays[i].Matches(group.date) {
			isHoliday = true
			break
		}
	}
	weekday := int(group.date.Weekday())
	isWeekend := weekday == 0 || weekday == 6

	// 半天判定；策略配置的工作日永不降级为半天
	isHalfDay := totalHours < cfg.DailyHours*0.6
	halfDayType := ""
	if isHalfDay {
		if arrivalMin/60 < 12 {
			halfDayType = "morning"
		} else {
			halfDayType = "afternoon"
		}
	}
	if cfg.WorkingDaySet()[weekday] {
		isHalfDay = false
		halfDayType = ""
	}

	attEvents := make([]dto.AttendanceEvent, 0, len(group.events))
	for _, ev := range group.events {
		attEvents = append(attEvents, dto.AttendanceEvent{
			Time:      ev.EventTime,
			Reader:    ev.Reader,
			EventType: ev.EventType,
		})
	}

	return &dto.AttendanceRecord{
		BadgeNumber:     group.badge,
		Date:            group.date.Format("02/01/2006"),
		FullName:        first.FullName,
		GroupName:       first.GroupName,
		ArrivalTime:     formatClockMinutes(arrivalMin),
		ArrivalReader:   first.Reader,
		DepartureTime:   formatClockMinutes(departureMin),
		DepartureReader: last.Reader,
		TotalHours:      totalHours,
		LunchMinutes:    lunchMinutes,
		PauseMinutes:    pauseMinutes,
		IsContinuousDay: isContinuous,
		IsHalfDay:       isHalfDay,
		HalfDayType:     halfDayType,
		IsWeekend:       isWeekend,
		IsHoliday:       isHoliday,
		Events:          attEvents,
	}, nil
}

// ────────────────────── Anomalies ──────────────────────

func (s *attendanceService) Anomalies(ctx context.Context, start, end time.Time) ([]dto.AnomalyRecord, error) {
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	events, err := s.repo.AccessEvent.ListByDateRange(ctx, start, end)
	if err != nil {
		s.logger.Error("查询门禁事件失败", zap.Error(err))
		return nil, err
	}

	var anomalies []dto.AnomalyRecord
	for _, group := range groupByBadgeAndDay(events) {
		sort.SliceStable(group.events, func(i, j int) bool {
			return group.events[i].EventTime < group.events[j].EventTime
		})
		first := group.events[0]
		date := group.date.Format("02/01/2006")

		if len(group.events)%2 == 1 {
			anomalies = append(anomalies, dto.AnomalyRecord{
				BadgeNumber: group.badge,
				Date:        date,
				FullName:    first.FullName,
				Type:        dto.AnomalyMissingExit,
				Description: "打卡次数为奇数，疑似缺少出场记录",
				EventCount:  len(group.events),
			})
		}

		last := group.events[len(group.events)-1]
		if len(group.events) > 1 && first.EventTime == last.EventTime {
			anomalies = append(anomalies, dto.AnomalyRecord{
				BadgeNumber: group.badge,
				Date:        date,
				FullName:    first.FullName,
				Type:        dto.AnomalyZeroDuration,
				Description: "多次打卡但在场时长为零",
				EventCount:  len(group.events),
			})
		}

		for _, ev := range group.events {
			if ev.EventType == model.EventTypeUnknown {
				anomalies = append(anomalies, dto.AnomalyRecord{
					BadgeNumber: group.badge,
					Date:        date,
					FullName:    first.FullName,
					Type:        dto.AnomalyUnknownEvent,
					Description: "事件类型无法识别: " + ev.RawEventType,
					EventCount:  len(group.events),
				})
				break
			}
		}
	}

	sort.Slice(anomalies, func(i, j int) bool {
		if anomalies[i].Date != anomalies[j].Date {
			di, _ := time.Parse("02/01/2006", anomalies[i].Date)
			dj, _ := time.Parse("02/01/2006", anomalies[j].Date)
			return di.Before(dj)
		}
		return anomalies[i].BadgeNumber < anomalies[j].BadgeNumber
	})

	return anomalies, nil
}

// ── 时钟分钟运算 ──

// parseClockMinutes 将 HH:MM 或 HH:MM:SS 解析为当日分钟数
func parseClockMinutes(clock string) (int, error) {
	t, err := time.Parse("15:04:05", clock)
	if err != nil {
		t, err = time.Parse("15:04", clock)
		if err != nil {
			return 0, fmt.Errorf("时间格式无效 %q", clock)
		}
	}
	return t.Hour()*60 + t.Minute(), nil
}

// roundClockMinutes 将分钟数按 interval 取整
// nearest 四舍五入；up 向上；down 向下
func roundClockMinutes(minutes, interval int, direction string) int {
	remainder := minutes % interval
	if remainder == 0 {
		return minutes
	}
	switch direction {
	case model.RoundUp:
		return minutes + (interval - remainder)
	case model.RoundDown:
		return minutes - remainder
	default: // nearest
		if remainder*2 >= interval {
			return minutes + (interval - remainder)
		}
		return minutes - remainder
	}
}

// formatClockMinutes 分钟数转 HH:MM；向上取整越过午夜时回绕到 00:00
func formatClockMinutes(minutes int) string {
	minutes %= minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
