package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gilandre/senator-dashboard-sub005/config"
	"github.com/gilandre/senator-dashboard-sub005/internal/dto"
	"github.com/gilandre/senator-dashboard-sub005/internal/model"
	"github.com/gilandre/senator-dashboard-sub005/internal/repository"
)

// ── 导入模块业务错误 ──

var (
	ErrImportNoDelimiter = errors.New("文件不是 ';' 分隔的 CSV")
	ErrImportTooShort    = errors.New("文件至少需要表头行和一行数据")
)

// ImportValidationError 行级/表头校验错误，面向调用方的可读信息
type ImportValidationError struct {
	Line    int // 0 表示表头
	Message string
}

func (e *ImportValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("第 %d 行: %s", e.Line, e.Message)
	}
	return e.Message
}

// ── 列定义 ──
//
// SENATOR 导出的 CSV 使用法文列名；按大小写不敏感的子串匹配定位，
// 缺少必需列时报错并指出列名。

type csvColumn struct {
	display string   // 报错与预览中展示的规范列名
	matches []string // 子串匹配关键字（小写）
}

var requiredColumns = []csvColumn{
	{display: "Numéro de badge", matches: []string{"numéro de badge", "badge"}},
	{display: "Date évènements", matches: []string{"date"}},
	{display: "Heure évènements", matches: []string{"heure"}},
	{display: "Lecteur", matches: []string{"lecteur"}},
}

var optionalColumns = []csvColumn{
	{display: "Centrale", matches: []string{"centrale"}},
	{display: "Nature Evenement", matches: []string{"nature"}},
	{display: "Nom", matches: []string{"nom"}},
	{display: "Prénom", matches: []string{"prénom", "prenom"}},
	{display: "Statut", matches: []string{"statut"}},
	{display: "Groupe", matches: []string{"groupe"}},
}

var (
	datePattern  = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	timePattern  = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?$`)
	shortTimeLen = len("15:04")
)

// ImportService CSV 导入业务接口
//
// 两阶段：Preview 只校验预览窗口内的行供前端确认；Import 全量入库，
// 借唯一索引 (badge, date, time, reader) 去重，重复行静默跳过。
type ImportService interface {
	Preview(content string) (*dto.CSVPreviewResponse, error)
	Import(ctx context.Context, content string) (*dto.ImportReport, error)
}

type importService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewImportService 创建 ImportService 实例
func NewImportService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ImportService {
	return &importService{cfg: cfg, repo: repo, logger: logger}
}

// ────────────────────── Preview ──────────────────────

func (s *importService) Preview(content string) (*dto.CSVPreviewResponse, error) {
	headers, rows, err := parseDelimited(content)
	if err != nil {
		return nil, err
	}

	columnIndex, err := locateColumns(headers)
	if err != nil {
		return nil, err
	}

	previewLines := s.cfg.Import.PreviewLines
	preview := make([]map[string]string, 0, previewLines)

	// 仅校验预览窗口内的行，遇到首个失败立即返回
	for i, row := range rows {
		if i >= previewLines {
			break
		}
		if err := validateRow(row, columnIndex, i+2); err != nil {
			return nil, err
		}

		record := make(map[string]string, len(headers))
		for j, h := range headers {
			if j < len(row) {
				record[h] = strings.TrimSpace(row[j])
			} else {
				record[h] = ""
			}
		}
		preview = append(preview, record)
	}

	return &dto.CSVPreviewResponse{
		Headers:   headers,
		Rows:      preview,
		TotalRows: len(rows),
	}, nil
}

// ────────────────────── Import ──────────────────────

func (s *importService) Import(ctx context.Context, content string) (*dto.ImportReport, error) {
	headers, rows, err := parseDelimited(content)
	if err != nil {
		return nil, err
	}

	columnIndex, err := locateColumns(headers)
	if err != nil {
		return nil, err
	}

	report := &dto.ImportReport{TotalRows: len(rows)}

	for i, row := range rows {
		line := i + 2
		if err := validateRow(row, columnIndex, line); err != nil {
			// 行级失败记日志后跳过，不中断整批
			s.logger.Warn("导入跳过非法行", zap.Int("line", line), zap.Error(err))
			report.SkippedRows++
			continue
		}

		event, err := rowToEvent(row, columnIndex)
		if err != nil {
			s.logger.Warn("导入跳过无法映射的行", zap.Int("line", line), zap.Error(err))
			report.SkippedRows++
			continue
		}

		inserted, err := s.repo.AccessEvent.CreateIgnoreDuplicate(ctx, event)
		if err != nil {
			s.logger.Error("写入门禁事件失败", zap.Int("line", line), zap.Error(err))
			report.SkippedRows++
			continue
		}
		if !inserted {
			report.DuplicateRows++
			continue
		}

		report.ImportedRows++
		switch event.PersonType {
		case model.PersonTypeEmployee:
			report.EmployeeCount++
		case model.PersonTypeVisitor:
			report.VisitorCount++
		}
		switch event.EventType {
		case model.EventTypeEntry:
			report.EntryCount++
		case model.EventTypeExit:
			report.ExitCount++
		}
	}

	s.logger.Info("CSV 导入完成",
		zap.Int("total", report.TotalRows),
		zap.Int("imported", report.ImportedRows),
		zap.Int("duplicates", report.DuplicateRows),
		zap.Int("skipped", report.SkippedRows),
	)

	return report, nil
}

// ── 解析与校验 ──

// parseDelimited 解析 ';' 分隔文本，返回表头与数据行
func parseDelimited(content string) ([]string, [][]string, error) {
	if !strings.Contains(content, ";") {
		return nil, nil, ErrImportNoDelimiter
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1 // 容忍列数不齐的行
	reader.LazyQuotes = true

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, &ImportValidationError{Message: "CSV 解析失败: " + err.Error()}
	}
	if len(all) < 2 {
		return nil, nil, ErrImportTooShort
	}

	headers := make([]string, len(all[0]))
	for i, h := range all[0] {
		headers[i] = strings.TrimSpace(h)
	}
	return headers, all[1:], nil
}

// locateColumns 按关键字定位各列下标；缺少必需列时报错并指出列名
func locateColumns(headers []string) (map[string]int, error) {
	lower := make([]string, len(headers))
	for i, h := range headers {
		lower[i] = strings.ToLower(h)
	}

	find := func(col csvColumn) int {
		for i, h := range lower {
			for _, m := range col.matches {
				if strings.Contains(h, m) {
					return i
				}
			}
		}
		return -1
	}

	index := make(map[string]int)
	for _, col := range requiredColumns {
		i := find(col)
		if i < 0 {
			return nil, &ImportValidationError{
				Message: fmt.Sprintf("缺少必需列: %s", col.display),
			}
		}
		index[col.display] = i
	}
	for _, col := range optionalColumns {
		if i := find(col); i >= 0 {
			index[col.display] = i
		}
	}
	return index, nil
}

// field 读取行内某列的值，行过短时返回空串
func field(row []string, index map[string]int, display string) string {
	i, ok := index[display]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// validateRow 校验单行数据
// 工牌号/读卡器非空；日期 DD/MM/YYYY；时间 HH:MM 或 HH:MM:SS
func validateRow(row []string, index map[string]int, line int) error {
	if field(row, index, "Numéro de badge") == "" {
		return &ImportValidationError{Line: line, Message: "Numéro de badge 不能为空"}
	}

	date := field(row, index, "Date évènements")
	if !datePattern.MatchString(date) {
		return &ImportValidationError{Line: line, Message: fmt.Sprintf("日期格式无效 %q，期望 DD/MM/YYYY", date)}
	}
	if _, err := time.Parse("02/01/2006", date); err != nil {
		return &ImportValidationError{Line: line, Message: fmt.Sprintf("日期无效 %q", date)}
	}

	clock := field(row, index, "Heure évènements")
	if !timePattern.MatchString(clock) {
		return &ImportValidationError{Line: line, Message: fmt.Sprintf("时间格式无效 %q，期望 HH:MM 或 HH:MM:SS", clock)}
	}

	if field(row, index, "Lecteur") == "" {
		return &ImportValidationError{Line: line, Message: "Lecteur 不能为空"}
	}
	return nil
}

// normalizeClock HH:MM 自动补秒为 HH:MM:SS
func normalizeClock(clock string) string {
	if len(clock) == shortTimeLen {
		return clock + ":00"
	}
	return clock
}

// rowToEvent 将校验通过的行映射为门禁事件
func rowToEvent(row []string, index map[string]int) (*model.AccessEvent, error) {
	date, err := time.Parse("02/01/2006", field(row, index, "Date évènements"))
	if err != nil {
		return nil, err
	}

	event := &model.AccessEvent{
		BadgeNumber:  field(row, index, "Numéro de badge"),
		EventDate:    date,
		EventTime:    normalizeClock(field(row, index, "Heure évènements")),
		Controller:   field(row, index, "Centrale"),
		Reader:       field(row, index, "Lecteur"),
		RawEventType: field(row, index, "Nature Evenement"),
		GroupName:    field(row, index, "Groupe"),
	}

	event.EventType, event.Direction = classifyEventNature(event.RawEventType)
	event.PersonType = classifyStatus(field(row, index, "Statut"))
	event.FullName = strings.TrimSpace(field(row, index, "Prénom") + " " + field(row, index, "Nom"))

	return event, nil
}

// classifyEventNature 从法文事件性质推断类型与方向
func classifyEventNature(nature string) (eventType, direction string) {
	n := strings.ToLower(nature)
	switch {
	case strings.Contains(n, "entr"): // entrée
		return model.EventTypeEntry, "in"
	case strings.Contains(n, "sort"): // sortie
		return model.EventTypeExit, "out"
	default:
		return model.EventTypeUnknown, ""
	}
}

// classifyStatus 从法文状态列推断持卡人类型
func classifyStatus(status string) string {
	s := strings.ToLower(status)
	switch {
	case strings.Contains(s, "visiteur"):
		return model.PersonTypeVisitor
	case s != "":
		return model.PersonTypeEmployee
	default:
		return model.PersonTypeUnknown
	}
}
