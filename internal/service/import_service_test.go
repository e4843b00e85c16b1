package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/gilandre/senator-dashboard-sub005/config"
)

const csvHeader = "Numéro de badge;Date évènements;Heure évènements;Centrale;Lecteur;Nature Evenement;Nom;Prénom;Statut;Groupe"

func setupTestImportService() (ImportService, *mockAccessEventRepo) {
	repo, eventRepo, _, _ := newMockRepository()
	cfg := &config.Config{}
	cfg.Import.PreviewLines = 3
	cfg.Import.MaxFileSize = 10 << 20
	svc := NewImportService(cfg, repo, zap.NewNop())
	return svc, eventRepo
}

func csvContent(rows ...string) string {
	return csvHeader + "\n" + strings.Join(rows, "\n") + "\n"
}

// ── 导入测试 ──

func TestImport_Success(t *testing.T) {
	svc, eventRepo := setupTestImportService()
	content := csvContent(
		"B100;05/01/2026;08:02:10;C1;Lecteur entrée;Entrée badge;DUPONT;Marie;Permanent;Direction",
		"B100;05/01/2026;17:05:00;C1;Lecteur sortie;Sortie badge;DUPONT;Marie;Permanent;Direction",
		"V200;05/01/2026;09:30:00;C1;Lecteur entrée;Entrée badge;MARTIN;Paul;Visiteur;Externe",
	)

	report, err := svc.Import(context.Background(), content)
	if err != nil {
		t.Fatalf("Import 应成功: %v", err)
	}
	if report.TotalRows != 3 || report.ImportedRows != 3 {
		t.Errorf("期望导入 3/3 行，实际 %d/%d", report.ImportedRows, report.TotalRows)
	}
	if report.EmployeeCount != 2 || report.VisitorCount != 1 {
		t.Errorf("期望 employee=2 visitor=1，实际 %d/%d", report.EmployeeCount, report.VisitorCount)
	}
	if report.EntryCount != 2 || report.ExitCount != 1 {
		t.Errorf("期望 entry=2 exit=1，实际 %d/%d", report.EntryCount, report.ExitCount)
	}
	if len(eventRepo.events) != 3 {
		t.Errorf("期望入库 3 条事件，实际 %d", len(eventRepo.events))
	}

	// 姓名拼装为 Prénom + Nom；方向来自事件性质
	first := eventRepo.events[0]
	if first.FullName != "Marie DUPONT" {
		t.Errorf("期望 FullName=Marie DUPONT，实际 %q", first.FullName)
	}
	if first.Direction != "in" {
		t.Errorf("期望 Direction=in，实际 %q", first.Direction)
	}
}

func TestImport_NormalizesShortClock(t *testing.T) {
	svc, eventRepo := setupTestImportService()
	content := csvContent("B100;05/01/2026;08:02;C1;Lecteur entrée;Entrée;DUPONT;Marie;Permanent;Direction")

	report, err := svc.Import(context.Background(), content)
	if err != nil {
		t.Fatalf("Import 应成功: %v", err)
	}
	if report.ImportedRows != 1 {
		t.Fatalf("期望导入 1 行，实际 %d", report.ImportedRows)
	}
	if eventRepo.events[0].EventTime != "08:02:00" {
		t.Errorf("HH:MM 应补秒为 HH:MM:SS，实际 %q", eventRepo.events[0].EventTime)
	}
}

func TestImport_SkipsInvalidRows(t *testing.T) {
	svc, _ := setupTestImportService()
	content := csvContent(
		"B100;05/01/2026;08:00:00;C1;L1;Entrée;DUPONT;Marie;Permanent;Direction",
		";05/01/2026;09:00:00;C1;L1;Entrée;X;Y;Permanent;G",   // 工牌号为空
		"B101;05/01/2026;9:5;C1;L1;Entrée;X;Y;Permanent;G",    // 时间格式无效
		"B102;2026-01-05;10:00:00;C1;L1;Entrée;X;Y;Permanent;G", // 日期格式无效
	)

	report, err := svc.Import(context.Background(), content)
	if err != nil {
		t.Fatalf("行级失败不应中断整批: %v", err)
	}
	if report.ImportedRows != 1 {
		t.Errorf("期望导入 1 行，实际 %d", report.ImportedRows)
	}
	if report.SkippedRows != 3 {
		t.Errorf("期望跳过 3 行，实际 %d", report.SkippedRows)
	}
}

func TestImport_DeduplicatesOnRerun(t *testing.T) {
	svc, eventRepo := setupTestImportService()
	content := csvContent(
		"B100;05/01/2026;08:00:00;C1;L1;Entrée;DUPONT;Marie;Permanent;Direction",
		"B100;05/01/2026;17:00:00;C1;L2;Sortie;DUPONT;Marie;Permanent;Direction",
	)

	if _, err := svc.Import(context.Background(), content); err != nil {
		t.Fatalf("首次导入应成功: %v", err)
	}
	writesAfterFirst := eventRepo.creates

	report, err := svc.Import(context.Background(), content)
	if err != nil {
		t.Fatalf("重复导入应成功: %v", err)
	}
	if report.ImportedRows != 0 || report.DuplicateRows != 2 {
		t.Errorf("重复导入应全部去重: imported=%d duplicates=%d", report.ImportedRows, report.DuplicateRows)
	}
	if eventRepo.creates != writesAfterFirst {
		t.Errorf("重复导入不应产生新写入: %d → %d", writesAfterFirst, eventRepo.creates)
	}
}

func TestImport_MissingRequiredColumn(t *testing.T) {
	svc, _ := setupTestImportService()
	content := "Date évènements;Heure évènements;Lecteur\n05/01/2026;08:00:00;L1\n"

	_, err := svc.Import(context.Background(), content)
	var valErr *ImportValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("期望 ImportValidationError，实际: %v", err)
	}
	if !strings.Contains(valErr.Message, "Numéro de badge") {
		t.Errorf("报错应指出缺失列名，实际: %s", valErr.Message)
	}
}

func TestImport_NoDelimiter(t *testing.T) {
	svc, _ := setupTestImportService()

	_, err := svc.Import(context.Background(), "badge,date,heure\nB1,05/01/2026,08:00\n")
	if !errors.Is(err, ErrImportNoDelimiter) {
		t.Errorf("期望 ErrImportNoDelimiter，实际: %v", err)
	}
}

func TestImport_TooShort(t *testing.T) {
	svc, _ := setupTestImportService()

	_, err := svc.Import(context.Background(), csvHeader+"\n")
	if !errors.Is(err, ErrImportTooShort) {
		t.Errorf("期望 ErrImportTooShort，实际: %v", err)
	}
}

// ── 预览测试 ──

func TestPreview_WindowOnly(t *testing.T) {
	svc, _ := setupTestImportService()
	// 预览窗口为 3 行；窗口外的非法行不应导致预览失败
	content := csvContent(
		"B100;05/01/2026;08:00:00;C1;L1;Entrée;DUPONT;Marie;Permanent;G",
		"B101;05/01/2026;08:10:00;C1;L1;Entrée;X;Y;Permanent;G",
		"B102;05/01/2026;08:20:00;C1;L1;Entrée;X;Y;Permanent;G",
		"B103;05/01/2026;bad-time;C1;L1;Entrée;X;Y;Permanent;G",
	)

	preview, err := svc.Preview(content)
	if err != nil {
		t.Fatalf("窗口外的非法行不应影响预览: %v", err)
	}
	if len(preview.Rows) != 3 {
		t.Errorf("期望预览 3 行，实际 %d", len(preview.Rows))
	}
	if preview.TotalRows != 4 {
		t.Errorf("TotalRows 应统计全部数据行，实际 %d", preview.TotalRows)
	}
	if preview.Rows[0]["Numéro de badge"] != "B100" {
		t.Errorf("预览行应为 列名→值 映射，实际 %+v", preview.Rows[0])
	}
}

func TestPreview_InvalidRowInWindow(t *testing.T) {
	svc, _ := setupTestImportService()
	content := csvContent("B100;05/01/2026;9:5;C1;L1;Entrée;X;Y;Permanent;G")

	_, err := svc.Preview(content)
	var valErr *ImportValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("窗口内的非法行应使预览失败，实际: %v", err)
	}
	if valErr.Line != 2 {
		t.Errorf("期望报错行号 2（表头为第 1 行），实际 %d", valErr.Line)
	}
}

// ── 字段推断测试 ──

func TestClassifyEventNature(t *testing.T) {
	cases := []struct {
		nature    string
		eventType string
		direction string
	}{
		{"Entrée badge valide", "entry", "in"},
		{"Sortie badge", "exit", "out"},
		{"Accès refusé", "unknown", ""},
		{"", "unknown", ""},
	}
	for _, c := range cases {
		et, dir := classifyEventNature(c.nature)
		if et != c.eventType || dir != c.direction {
			t.Errorf("classifyEventNature(%q) = (%s, %s)，期望 (%s, %s)",
				c.nature, et, dir, c.eventType, c.direction)
		}
	}
}

func TestClassifyStatus(t *testing.T) {
	if got := classifyStatus("Visiteur"); got != "visitor" {
		t.Errorf("期望 visitor，实际 %s", got)
	}
	if got := classifyStatus("Permanent"); got != "employee" {
		t.Errorf("期望 employee，实际 %s", got)
	}
	if got := classifyStatus(""); got != "unknown" {
		t.Errorf("期望 unknown，实际 %s", got)
	}
}
