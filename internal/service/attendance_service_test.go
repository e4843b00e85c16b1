package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/gilandre/senator-dashboard-sub005/internal/dto"
	"github.com/gilandre/senator-dashboard-sub005/internal/model"
)

// 2026-01-05 周一 / 2026-01-03 周六
var (
	testMonday   = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	testSaturday = time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)
)

func setupTestAttendanceService() (AttendanceService, *mockAccessEventRepo, *mockAttendanceConfigRepo, *mockHolidayRepo) {
	repo, eventRepo, _, _ := newMockRepository()
	cfgRepo := repo.AttendanceConfig.(*mockAttendanceConfigRepo)
	holidayRepo := repo.Holiday.(*mockHolidayRepo)
	svc := NewAttendanceService(repo, zap.NewNop())
	return svc, eventRepo, cfgRepo, holidayRepo
}

func addEvent(eventRepo *mockAccessEventRepo, badge string, date time.Time, clock, reader, eventType string) {
	_ = eventRepo.Create(nil, &model.AccessEvent{
		BadgeNumber: badge,
		EventDate:   date,
		EventTime:   clock,
		Reader:      reader,
		EventType:   eventType,
		FullName:    "DUPONT Marie",
		GroupName:   "Direction",
	})
}

// ── 推导测试 ──

func TestDerive_FullDay(t *testing.T) {
	svc, eventRepo, _, _ := setupTestAttendanceService()
	addEvent(eventRepo, "B1", testMonday, "08:02:00", "Lecteur entrée", model.EventTypeEntry)
	addEvent(eventRepo, "B1", testMonday, "12:30:00", "Lecteur sortie", model.EventTypeExit)
	addEvent(eventRepo, "B1", testMonday, "13:10:00", "Lecteur entrée", model.EventTypeEntry)
	addEvent(eventRepo, "B1", testMonday, "17:05:00", "Lecteur sortie", model.EventTypeExit)

	records, err := svc.Derive(context.Background(), testMonday, testMonday)
	if err != nil {
		t.Fatalf("Derive 应成功: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("期望 1 条记录，实际 %d", len(records))
	}

	r := records[0]
	if r.ArrivalTime != "08:02" {
		t.Errorf("期望到场 08:02，实际 %s", r.ArrivalTime)
	}
	if r.DepartureTime != "17:05" {
		t.Errorf("期望离场 17:05，实际 %s", r.DepartureTime)
	}
	// 543 分钟 − 30 休息 − 60 午休 = 453 分钟 = 7.55 小时
	if r.TotalHours != 7.55 {
		t.Errorf("期望 TotalHours=7.55，实际 %v", r.TotalHours)
	}
	if r.LunchMinutes != 60 || r.PauseMinutes != 30 {
		t.Errorf("期望扣减 lunch=60 pause=30，实际 lunch=%d pause=%d", r.LunchMinutes, r.PauseMinutes)
	}
	if r.IsHalfDay {
		t.Error("整天出勤不应判为半天")
	}
	if r.IsWeekend || r.IsHoliday {
		t.Error("周一不应标记为周末或节假日")
	}
	if r.ArrivalReader != "Lecteur entrée" || r.DepartureReader != "Lecteur sortie" {
		t.Errorf("读卡器归属错误: arrival=%s departure=%s", r.ArrivalReader, r.DepartureReader)
	}
	if len(r.Events) != 4 {
		t.Errorf("期望内嵌 4 条事件，实际 %d", len(r.Events))
	}
}

func TestDerive_RoundingNearest(t *testing.T) {
	svc, eventRepo, cfgRepo, _ := setupTestAttendanceService()
	cfgRepo.cfg.RoundAttendanceTime = true
	cfgRepo.cfg.RoundingInterval = 15
	cfgRepo.cfg.RoundingDirection = model.RoundNearest

	// 08:07 距 08:00 仅 7 分钟（7*2 < 15）⇒ 取 08:00；17:08 ⇒ 17:15
	addEvent(eventRepo, "B1", testMonday, "08:07:00", "R1", model.EventTypeEntry)
	addEvent(eventRepo, "B1", testMonday, "17:08:00", "R2", model.EventTypeExit)

	records, err := svc.Derive(context.Background(), testMonday, testMonday)
	if err != nil {
		t.Fatalf("Derive 应成功: %v", err)
	}
	if records[0].ArrivalTime != "08:00" {
		t.Errorf("期望取整后到场 08:00，实际 %s", records[0].ArrivalTime)
	}
	if records[0].DepartureTime != "17:15" {
		t.Errorf("期望取整后离场 17:15，实际 %s", records[0].DepartureTime)
	}
}

func TestDerive_RoundingUp(t *testing.T) {
	svc, eventRepo, cfgRepo, _ := setupTestAttendanceService()
	cfgRepo.cfg.RoundAttendanceTime = true
	cfgRepo.cfg.RoundingInterval = 15
	cfgRepo.cfg.RoundingDirection = model.RoundUp

	addEvent(eventRepo, "B1", testMonday, "08:07:00", "R1", model.EventTypeEntry)
	addEvent(eventRepo, "B1", testMonday, "17:00:00", "R2", model.EventTypeExit)

	records, err := svc.Derive(context.Background(), testMonday, testMonday)
	if err != nil {
		t.Fatalf("Derive 应成功: %v", err)
	}
	if records[0].ArrivalTime != "08:15" {
		t.Errorf("期望向上取整到 08:15，实际 %s", records[0].ArrivalTime)
	}
}

func TestDerive_ContinuousDay(t *testing.T) {
	svc, eventRepo, _, _ := setupTestAttendanceService()
	// 夜班：离场时间未补零，字符串排序后落在到场之后，触发跨夜公式
	addEvent(eventRepo, "B1", testMonday, "22:00:00", "R1", model.EventTypeEntry)
	addEvent(eventRepo, "B1", testMonday, "6:00:00", "R2", model.EventTypeExit)

	records, err := svc.Derive(context.Background(), testMonday, testMonday)
	if err != nil {
		t.Fatalf("Derive 应成功: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("期望 1 条记录，实际 %d", len(records))
	}

	r := records[0]
	if !r.IsContinuousDay {
		t.Error("离场早于到场应标记 IsContinuousDay")
	}
	// (1440 − 1320) + 360 = 480 分钟，再扣 30 休息与 60 午休 = 390 分钟 = 6.5 小时
	if r.TotalHours != 6.5 {
		t.Errorf("期望 TotalHours=6.5，实际 %v", r.TotalHours)
	}
	if r.ArrivalTime != "22:00" {
		t.Errorf("期望到场 22:00，实际 %s", r.ArrivalTime)
	}
	if r.DepartureTime != "06:00" {
		t.Errorf("期望离场 06:00，实际 %s", r.DepartureTime)
	}
}

func TestDerive_RoundingUpPastMidnight(t *testing.T) {
	svc, eventRepo, cfgRepo, _ := setupTestAttendanceService()
	cfgRepo.cfg.RoundAttendanceTime = true
	cfgRepo.cfg.RoundingInterval = 15
	cfgRepo.cfg.RoundingDirection = model.RoundUp

	// 23:55 向上取整越过午夜 ⇒ 显示回绕为 00:00 而非 24:00
	addEvent(eventRepo, "B1", testMonday, "23:46:00", "R1", model.EventTypeEntry)
	addEvent(eventRepo, "B1", testMonday, "23:55:00", "R2", model.EventTypeExit)

	records, err := svc.Derive(context.Background(), testMonday, testMonday)
	if err != nil {
		t.Fatalf("Derive 应成功: %v", err)
	}
	if records[0].DepartureTime != "00:00" {
		t.Errorf("期望离场回绕为 00:00，实际 %s", records[0].DepartureTime)
	}
}

func TestDerive_HalfDayOnSaturday(t *testing.T) {
	svc, eventRepo, _, _ := setupTestAttendanceService()
	// 周六短时出勤：180 − 30 − 60 = 90 分钟 = 1.5 小时 < 8*0.6
	addEvent(eventRepo, "B1", testSaturday, "08:00:00", "R1", model.EventTypeEntry)
	addEvent(eventRepo, "B1", testSaturday, "11:00:00", "R2", model.EventTypeExit)

	records, err := svc.Derive(context.Background(), testSaturday, testSaturday)
	if err != nil {
		t.Fatalf("Derive 应成功: %v", err)
	}

	r := records[0]
	if r.TotalHours != 1.5 {
		t.Errorf("期望 TotalHours=1.5，实际 %v", r.TotalHours)
	}
	if !r.IsWeekend {
		t.Error("周六应标记 IsWeekend")
	}
	if !r.IsHalfDay || r.HalfDayType != "morning" {
		t.Errorf("期望上午半天，实际 half=%v type=%s", r.IsHalfDay, r.HalfDayType)
	}
}

func TestDerive_WorkingDayNeverHalfDay(t *testing.T) {
	svc, eventRepo, _, _ := setupTestAttendanceService()
	// 同样的短时出勤发生在策略工作日（周一）⇒ 不降级为半天
	addEvent(eventRepo, "B1", testMonday, "08:00:00", "R1", model.EventTypeEntry)
	addEvent(eventRepo, "B1", testMonday, "11:00:00", "R2", model.EventTypeExit)

	records, err := svc.Derive(context.Background(), testMonday, testMonday)
	if err != nil {
		t.Fatalf("Derive 应成功: %v", err)
	}
	if records[0].IsHalfDay {
		t.Error("策略工作日不应判为半天")
	}
	if records[0].HalfDayType != "" {
		t.Errorf("HalfDayType 应为空，实际 %s", records[0].HalfDayType)
	}
}

func TestDerive_HolidayFlag(t *testing.T) {
	svc, eventRepo, _, holidayRepo := setupTestAttendanceService()
	_ = holidayRepo.Create(nil, &model.Holiday{
		HolidayDate:   time.Date(2020, 1, 5, 0, 0, 0, 0, time.UTC),
		Name:          "Jour férié",
		RepeatsYearly: true,
	})
	addEvent(eventRepo, "B1", testMonday, "09:00:00", "R1", model.EventTypeEntry)
	addEvent(eventRepo, "B1", testMonday, "17:00:00", "R2", model.EventTypeExit)

	records, err := svc.Derive(context.Background(), testMonday, testMonday)
	if err != nil {
		t.Fatalf("Derive 应成功: %v", err)
	}
	if !records[0].IsHoliday {
		t.Error("按年重复的节假日应匹配任意年份同月日")
	}
}

func TestDerive_SkipsEmptyBadge(t *testing.T) {
	svc, eventRepo, _, _ := setupTestAttendanceService()
	addEvent(eventRepo, "", testMonday, "08:00:00", "R1", model.EventTypeEntry)
	addEvent(eventRepo, "  ", testMonday, "09:00:00", "R1", model.EventTypeEntry)

	records, err := svc.Derive(context.Background(), testMonday, testMonday)
	if err != nil {
		t.Fatalf("Derive 应成功: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("空工牌号事件应被丢弃，实际产出 %d 条记录", len(records))
	}
}

func TestDerive_InvalidDateRange(t *testing.T) {
	svc, _, _, _ := setupTestAttendanceService()

	_, err := svc.Derive(context.Background(), testMonday, testSaturday)
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("期望 ErrInvalidDateRange，实际: %v", err)
	}
}

func TestDerive_ConfigMissing(t *testing.T) {
	svc, eventRepo, cfgRepo, _ := setupTestAttendanceService()
	cfgRepo.cfg = nil
	addEvent(eventRepo, "B1", testMonday, "08:00:00", "R1", model.EventTypeEntry)

	_, err := svc.Derive(context.Background(), testMonday, testMonday)
	if !errors.Is(err, ErrAttendanceConfigMissing) {
		t.Errorf("期望 ErrAttendanceConfigMissing，实际: %v", err)
	}
}

func TestDerive_SingleEventZeroHours(t *testing.T) {
	svc, eventRepo, _, _ := setupTestAttendanceService()
	addEvent(eventRepo, "B1", testMonday, "08:00:00", "R1", model.EventTypeEntry)

	records, err := svc.Derive(context.Background(), testMonday, testMonday)
	if err != nil {
		t.Fatalf("Derive 应成功: %v", err)
	}

	r := records[0]
	if r.TotalHours != 0 {
		t.Errorf("单次打卡时长应钳为 0，实际 %v", r.TotalHours)
	}
	if r.ArrivalTime != r.DepartureTime {
		t.Errorf("单次打卡到离场应相同: %s vs %s", r.ArrivalTime, r.DepartureTime)
	}
}

func TestDerive_SortedOutput(t *testing.T) {
	svc, eventRepo, _, _ := setupTestAttendanceService()
	addEvent(eventRepo, "B2", testMonday, "09:00:00", "R1", model.EventTypeEntry)
	addEvent(eventRepo, "B2", testMonday, "17:00:00", "R2", model.EventTypeExit)
	addEvent(eventRepo, "B1", testMonday, "08:00:00", "R1", model.EventTypeEntry)
	addEvent(eventRepo, "B1", testMonday, "16:00:00", "R2", model.EventTypeExit)
	addEvent(eventRepo, "B3", testSaturday, "10:00:00", "R1", model.EventTypeEntry)

	records, err := svc.Derive(context.Background(), testSaturday, testMonday)
	if err != nil {
		t.Fatalf("Derive 应成功: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("期望 3 条记录，实际 %d", len(records))
	}
	if records[0].BadgeNumber != "B3" {
		t.Errorf("日期靠前的记录应排首位，实际 %s", records[0].BadgeNumber)
	}
	if records[1].BadgeNumber != "B1" || records[2].BadgeNumber != "B2" {
		t.Errorf("同日应按到场时间升序: %s, %s", records[1].BadgeNumber, records[2].BadgeNumber)
	}
}

// ── 异常检出测试 ──

func TestAnomalies_MissingExit(t *testing.T) {
	svc, eventRepo, _, _ := setupTestAttendanceService()
	addEvent(eventRepo, "B1", testMonday, "08:00:00", "R1", model.EventTypeEntry)
	addEvent(eventRepo, "B1", testMonday, "12:00:00", "R2", model.EventTypeExit)
	addEvent(eventRepo, "B1", testMonday, "13:00:00", "R1", model.EventTypeEntry)

	anomalies, err := svc.Anomalies(context.Background(), testMonday, testMonday)
	if err != nil {
		t.Fatalf("Anomalies 应成功: %v", err)
	}
	if len(anomalies) != 1 {
		t.Fatalf("期望 1 条异常，实际 %d", len(anomalies))
	}
	if anomalies[0].Type != dto.AnomalyMissingExit {
		t.Errorf("期望 missing_exit，实际 %s", anomalies[0].Type)
	}
	if anomalies[0].EventCount != 3 {
		t.Errorf("期望 EventCount=3，实际 %d", anomalies[0].EventCount)
	}
}

func TestAnomalies_ZeroDuration(t *testing.T) {
	svc, eventRepo, _, _ := setupTestAttendanceService()
	addEvent(eventRepo, "B1", testMonday, "08:00:00", "R1", model.EventTypeEntry)
	addEvent(eventRepo, "B1", testMonday, "08:00:00", "R2", model.EventTypeExit)

	anomalies, err := svc.Anomalies(context.Background(), testMonday, testMonday)
	if err != nil {
		t.Fatalf("Anomalies 应成功: %v", err)
	}
	if len(anomalies) != 1 || anomalies[0].Type != dto.AnomalyZeroDuration {
		t.Fatalf("期望 1 条 zero_duration，实际 %+v", anomalies)
	}
}

func TestAnomalies_UnknownEvent(t *testing.T) {
	svc, eventRepo, _, _ := setupTestAttendanceService()
	addEvent(eventRepo, "B1", testMonday, "08:00:00", "R1", model.EventTypeUnknown)
	addEvent(eventRepo, "B1", testMonday, "17:00:00", "R2", model.EventTypeUnknown)

	anomalies, err := svc.Anomalies(context.Background(), testMonday, testMonday)
	if err != nil {
		t.Fatalf("Anomalies 应成功: %v", err)
	}
	// 同一分组内多条未知事件只报一次
	if len(anomalies) != 1 || anomalies[0].Type != dto.AnomalyUnknownEvent {
		t.Fatalf("期望 1 条 unknown_event，实际 %+v", anomalies)
	}
}

func TestAnomalies_CleanDay(t *testing.T) {
	svc, eventRepo, _, _ := setupTestAttendanceService()
	addEvent(eventRepo, "B1", testMonday, "08:00:00", "R1", model.EventTypeEntry)
	addEvent(eventRepo, "B1", testMonday, "17:00:00", "R2", model.EventTypeExit)

	anomalies, err := svc.Anomalies(context.Background(), testMonday, testMonday)
	if err != nil {
		t.Fatalf("Anomalies 应成功: %v", err)
	}
	if len(anomalies) != 0 {
		t.Errorf("正常打卡不应产生异常，实际 %d 条", len(anomalies))
	}
}

// ── 取整运算测试 ──

func TestRoundClockMinutes(t *testing.T) {
	cases := []struct {
		minutes   int
		interval  int
		direction string
		want      int
	}{
		{487, 15, model.RoundNearest, 480}, // 08:07 → 08:00
		{488, 15, model.RoundNearest, 495}, // 08:08 → 08:15
		{487, 15, model.RoundUp, 495},      // 08:07 → 08:15
		{487, 15, model.RoundDown, 480},    // 08:07 → 08:00
		{480, 15, model.RoundUp, 480},      // 整点不动
		{1075, 30, model.RoundUp, 1080},    // 17:55 → 18:00 分钟进位
	}
	for _, c := range cases {
		got := roundClockMinutes(c.minutes, c.interval, c.direction)
		if got != c.want {
			t.Errorf("roundClockMinutes(%d, %d, %s) = %d，期望 %d",
				c.minutes, c.interval, c.direction, got, c.want)
		}
	}
}

func TestFormatClockMinutes(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{510, "08:30"},
		{0, "00:00"},
		{1439, "23:59"},
		{1440, "00:00"}, // 取整越过午夜后回绕
		{1445, "00:05"},
	}
	for _, c := range cases {
		if got := formatClockMinutes(c.minutes); got != c.want {
			t.Errorf("formatClockMinutes(%d) = %s，期望 %s", c.minutes, got, c.want)
		}
	}
}
