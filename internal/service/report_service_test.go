package service

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/foodikal/ny-backend/internal/config"
	"github.com/foodikal/ny-backend/internal/domain"
	"github.com/foodikal/ny-backend/internal/storage"
)

func testReportConfig(t *testing.T) config.ReportConfig {
	t.Helper()
	return config.ReportConfig{
		WindowStart: "2025-12-25",
		WindowDays:  7,
		WindowSplit: 4,
		ArchiveDir:  t.TempDir(),
	}
}

func newReportService(t *testing.T, orders []domain.Order) *ReportService {
	t.Helper()
	menu := &fakeMenuRepo{items: []domain.MenuItem{
		{ID: 1, Name: "Канапе с сыром", Category: "Канапе", Price: 190},
		{ID: 2, Name: "Салат Оливье", Category: "Салат", Price: 450},
	}}
	cfg := testReportConfig(t)
	svc, err := NewReportService(&fakeOrderRepo{orders: orders}, menu, cfg, storage.NewLocalArchive(cfg.ArchiveDir))
	if err != nil {
		t.Fatalf("NewReportService: %v", err)
	}
	return svc
}

func reportOrders() []domain.Order {
	return []domain.Order{
		{
			CustomerName: "Анна",
			DeliveryDate: "2025-12-26",
			Items:        []domain.OrderItem{{ItemID: 1, Quantity: 10}},
		},
		{
			CustomerName: "Иван",
			DeliveryDate: "2025-12-30",
			Items:        []domain.OrderItem{{ItemID: 2, Quantity: 4}},
		},
	}
}

func TestWorkbookData(t *testing.T) {
	svc := newReportService(t, reportOrders())

	data, err := svc.WorkbookData(t.Context())
	if err != nil {
		t.Fatalf("WorkbookData: %v", err)
	}
	if data.StartDate != "2025-12-25" || data.EndDate != "2025-12-31" {
		t.Errorf("window bounds = %s..%s", data.StartDate, data.EndDate)
	}
	if len(data.Dates) != 7 {
		t.Errorf("len(Dates) = %d, want 7", len(data.Dates))
	}
	if len(data.Customers) != 2 {
		t.Errorf("customers = %v, want both", data.Customers)
	}
	if got := data.Quantities.Qty("Анна", "2025-12-26", 1); got != 10 {
		t.Errorf("quantity in payload = %v, want 10", got)
	}
}

func TestGenerateWorkbookFullWeek(t *testing.T) {
	svc := newReportService(t, reportOrders())

	filename, data, err := svc.GenerateWorkbook(t.Context(), "")
	if err != nil {
		t.Fatalf("GenerateWorkbook: %v", err)
	}
	if filename != "ny_full_week.xlsx" {
		t.Errorf("filename = %q", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("generated bytes are not a workbook: %v", err)
	}
	defer f.Close()
	if idx, _ := f.GetSheetIndex("Неделя"); idx < 0 {
		t.Error("matrix sheet missing from workbook")
	}

	// The run is also retained in the archive.
	archived, err := svc.ListArchived(t.Context())
	if err != nil {
		t.Fatalf("ListArchived: %v", err)
	}
	if len(archived) != 1 || archived[0].Preset != "ny_full_week" {
		t.Errorf("archived runs = %+v, want one ny_full_week entry", archived)
	}
}

func TestGenerateWorkbookFiltersHalfWeekCustomers(t *testing.T) {
	svc := newReportService(t, reportOrders())

	_, data, err := svc.GenerateWorkbook(t.Context(), "second_half")
	if err != nil {
		t.Fatalf("GenerateWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	// Only Иван delivers in the second half; Анна must not get a column.
	name, err := f.GetCellValue("НГ Вт", "D1")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if name != "Иван" {
		t.Errorf("first customer column = %q, want Иван", name)
	}
}

func TestGenerateWorkbookRejectsBadRange(t *testing.T) {
	svc := newReportService(t, nil)

	if _, _, err := svc.GenerateWorkbook(t.Context(), "whole_month"); err == nil {
		t.Fatal("invalid range preset accepted")
	}
}
