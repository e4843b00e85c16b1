package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gilandre/senator-dashboard-sub005/internal/dto"
	"github.com/gilandre/senator-dashboard-sub005/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportBadFormat    = errors.New("导出格式无效，支持 csv | xlsx | pdf")
	ErrExportNoData       = errors.New("日期范围内无可导出数据")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// 导出格式对应的 Content-Type
const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportService 报表导出业务接口
//
// 设计说明：
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置响应头后写入 Response
//   - 考勤/异常数据即时推导；周末与节假日行按策略开关过滤
//   - 纯格式化，无业务逻辑：列布局在各 render 函数内部
type ExportService interface {
	// ExportAttendance 导出考勤报表；返回 buf、建议文件名、Content-Type
	ExportAttendance(ctx context.Context, start, end time.Time, format string) (*bytes.Buffer, string, string, error)
	// ExportAnomalies 导出异常报表
	ExportAnomalies(ctx context.Context, start, end time.Time, format string) (*bytes.Buffer, string, string, error)
	// ExportHolidayCalendar 导出节假日 iCalendar
	ExportHolidayCalendar(ctx context.Context) (*bytes.Buffer, string, string, error)
}

type exportService struct {
	repo          *repository.Repository
	attendanceSvc AttendanceService
	logger        *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, attendanceSvc AttendanceService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, attendanceSvc: attendanceSvc, logger: logger}
}

// ────────────────────── ExportAttendance ──────────────────────

func (s *exportService) ExportAttendance(ctx context.Context, start, end time.Time, format string) (*bytes.Buffer, string, string, error) {
	records, err := s.attendanceSvc.Derive(ctx, start, end)
	if err != nil {
		return nil, "", "", err
	}

	records, err = s.filterCountedDays(ctx, records)
	if err != nil {
		return nil, "", "", err
	}
	if len(records) == 0 {
		return nil, "", "", ErrExportNoData
	}

	header := []string{"Badge", "Date", "Nom", "Groupe", "Arrivée", "Lecteur arrivée", "Départ", "Lecteur départ", "Heures", "Pause déj. (min)", "Autres pauses (min)", "Indicateurs"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.BadgeNumber, r.Date, r.FullName, r.GroupName,
			r.ArrivalTime, r.ArrivalReader, r.DepartureTime, r.DepartureReader,
			strconv.FormatFloat(r.TotalHours, 'f', 2, 64),
			strconv.Itoa(r.LunchMinutes),
			strconv.Itoa(r.PauseMinutes),
			attendanceFlags(&r),
		})
	}

	return s.render(format, "Rapport de présence", "presence_"+rangeStamp(start, end), header, rows)
}

// rangeStamp 报表文件名的日期范围戳
// 正文日期为 DD/MM/YYYY，文件名用 '-' 代替 '/' 保持路径安全
func rangeStamp(start, end time.Time) string {
	return start.Format("02-01-2006") + "_" + end.Format("02-01-2006")
}

// attendanceFlags 指标列（半天/跨夜/周末/节假日）
func attendanceFlags(r *dto.AttendanceRecord) string {
	var flags []string
	if r.IsHalfDay {
		flags = append(flags, "demi-journée "+r.HalfDayType)
	}
	if r.IsContinuousDay {
		flags = append(flags, "nuit")
	}
	if r.IsWeekend {
		flags = append(flags, "week-end")
	}
	if r.IsHoliday {
		flags = append(flags, "férié")
	}
	if len(flags) == 0 {
		return "-"
	}
	result := flags[0]
	for _, f := range flags[1:] {
		result += ", " + f
	}
	return result
}

// filterCountedDays 按策略开关过滤周末/节假日行
func (s *exportService) filterCountedDays(ctx context.Context, records []dto.AttendanceRecord) ([]dto.AttendanceRecord, error) {
	cfg, err := s.repo.AttendanceConfig.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendanceConfigMissing
		}
		return nil, err
	}
	if cfg.CountWeekends && cfg.CountHolidays {
		return records, nil
	}

	filtered := records[:0]
	for _, r := range records {
		if !cfg.CountWeekends && r.IsWeekend {
			continue
		}
		if !cfg.CountHolidays && r.IsHoliday {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered, nil
}

// ────────────────────── ExportAnomalies ──────────────────────

func (s *exportService) ExportAnomalies(ctx context.Context, start, end time.Time, format string) (*bytes.Buffer, string, string, error) {
	anomalies, err := s.attendanceSvc.Anomalies(ctx, start, end)
	if err != nil {
		return nil, "", "", err
	}
	if len(anomalies) == 0 {
		return nil, "", "", ErrExportNoData
	}

	header := []string{"Badge", "Date", "Nom", "Type", "Description", "Nb évènements"}
	rows := make([][]string, 0, len(anomalies))
	for _, a := range anomalies {
		rows = append(rows, []string{
			a.BadgeNumber, a.Date, a.FullName, a.Type, a.Description, strconv.Itoa(a.EventCount),
		})
	}

	return s.render(format, "Rapport d'anomalies", "anomalies_"+rangeStamp(start, end), header, rows)
}

// ────────────────────── ExportHolidayCalendar ──────────────────────

func (s *exportService) ExportHolidayCalendar(ctx context.Context) (*bytes.Buffer, string, string, error) {
	holidays, err := s.repo.Holiday.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询节假日失败", zap.Error(err))
		return nil, "", "", err
	}
	if len(holidays) == 0 {
		return nil, "", "", ErrExportNoData
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//senator-dashboard//holidays//FR")

	now := time.Now()
	for i := range holidays {
		h := &holidays[i]
		event := cal.AddEvent(h.HolidayID + "@senator-dashboard")
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetAllDayStartAt(h.HolidayDate)
		event.SetAllDayEndAt(h.HolidayDate.AddDate(0, 0, 1))
		event.SetSummary(h.Name)
		if h.RepeatsYearly {
			event.AddRrule("FREQ=YEARLY")
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	return buf, "jours_feries.ics", contentTypeICS, nil
}

// ── 渲染 ──

// render 按格式分派到具体渲染器
func (s *exportService) render(format, title, basename string, header []string, rows [][]string) (*bytes.Buffer, string, string, error) {
	switch format {
	case "csv":
		buf, err := renderCSV(header, rows)
		if err != nil {
			s.logger.Error("生成 CSV 失败", zap.Error(err))
			return nil, "", "", ErrExportGenerateFail
		}
		return buf, basename + ".csv", contentTypeCSV, nil
	case "xlsx":
		buf, err := renderXLSX(title, header, rows)
		if err != nil {
			s.logger.Error("生成 Excel 失败", zap.Error(err))
			return nil, "", "", ErrExportGenerateFail
		}
		return buf, basename + ".xlsx", contentTypeXLSX, nil
	case "pdf":
		buf, err := renderPDF(title, header, rows)
		if err != nil {
			s.logger.Error("生成 PDF 失败", zap.Error(err))
			return nil, "", "", ErrExportGenerateFail
		}
		return buf, basename + ".pdf", contentTypePDF, nil
	default:
		return nil, "", "", ErrExportBadFormat
	}
}

// renderCSV ';' 分隔，与导入格式一致
func renderCSV(header []string, rows [][]string) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	w.Comma = ';'

	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf, nil
}

func renderXLSX(title string, header []string, rows [][]string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Rapport"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽
	for i := range header {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", title)
	endCol, _ := excelize.ColumnNumberToName(len(header))
	f.MergeCell(sheetName, "A1", endCol+"1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(sheetName, cell, h)
	}
	f.SetCellStyle(sheetName, "A2", fmt.Sprintf("%s2", endCol), headerStyle)

	// 数据行
	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+3)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func renderPDF(title string, header []string, rows [][]string) (*bytes.Buffer, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("") // 核心字体为 cp1252，法文注音需转换

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(header))

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(68, 114, 196)
	pdf.SetTextColor(255, 255, 255)
	for _, h := range header {
		pdf.CellFormat(colWidth, 8, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(0, 0, 0)
	for _, row := range rows {
		for _, value := range row {
			pdf.CellFormat(colWidth, 7, tr(value), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf, nil
}
