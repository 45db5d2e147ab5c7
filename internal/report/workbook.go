package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/foodikal/ny-backend/internal/domain"
)

// Input carries everything the assembler needs for one report run. Customers
// must already be filtered to the resolved date range (see ActiveCustomers)
// and Dates must be in business-week order.
type Input struct {
	Customers  []string
	MenuItems  []domain.MenuItem
	Aggregated Aggregated
	Dates      []string
	Preset     Preset
}

// Filename returns the fixed artifact name for a preset, so half-week and
// full-week workbooks never collide.
func Filename(p Preset) string {
	switch p {
	case PresetFirstHalf:
		return "ny_first_half.xlsx"
	case PresetSecondHalf:
		return "ny_second_half.xlsx"
	default:
		return "ny_full_week.xlsx"
	}
}

// ContentType identifies the emitted document.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Generate assembles the whole workbook: one daily sheet per date, the main
// matrix sheet, the weekly summary (full week only), the confirmation sheet
// and the static packing sheets. An empty customer list still yields a
// structurally valid workbook.
func Generate(in Input) ([]byte, error) {
	if len(in.Dates) == 0 {
		return nil, fmt.Errorf("report: no dates resolved for preset %q", in.Preset)
	}

	b := &builder{
		f:      excelize.NewFile(),
		layout: BuildLayout(in.MenuItems),
		in:     in,
	}
	if err := b.initStyles(); err != nil {
		return nil, fmt.Errorf("report: build styles: %w", err)
	}

	for i, date := range in.Dates {
		if err := b.addSheet(DailySheetName(date), i == 0); err != nil {
			return nil, err
		}
		if err := b.buildDaily(date); err != nil {
			return nil, fmt.Errorf("report: daily sheet %s: %w", date, err)
		}
	}
	if err := b.addSheet(matrixSheetName, false); err != nil {
		return nil, err
	}
	if err := b.buildMatrix(); err != nil {
		return nil, fmt.Errorf("report: matrix sheet: %w", err)
	}
	if in.Preset == PresetFullWeek {
		if err := b.addSheet(summarySheetName, false); err != nil {
			return nil, err
		}
		if err := b.buildSummary(); err != nil {
			return nil, fmt.Errorf("report: summary sheet: %w", err)
		}
	}
	if err := b.addSheet(confirmSheetName, false); err != nil {
		return nil, err
	}
	if err := b.buildConfirmation(); err != nil {
		return nil, fmt.Errorf("report: confirmation sheet: %w", err)
	}
	for _, name := range packingSheetNames {
		if err := b.addSheet(name, false); err != nil {
			return nil, err
		}
		if err := b.buildPacking(name); err != nil {
			return nil, fmt.Errorf("report: packing sheet %s: %w", name, err)
		}
	}

	b.f.SetActiveSheet(0)
	buf, err := b.f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("report: serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type builder struct {
	f      *excelize.File
	layout *Layout
	in     Input
	sheets map[string]bool

	headerStyle   int
	categoryStyle int
	totalStyle    int
}

// addSheet registers a sheet, renaming the default sheet for the first one.
// A duplicate name means the naming scheme broke and formulas would dangle.
func (b *builder) addSheet(name string, first bool) error {
	if b.sheets == nil {
		b.sheets = make(map[string]bool)
	}
	if b.sheets[name] {
		return fmt.Errorf("report: duplicate sheet name %q", name)
	}
	b.sheets[name] = true

	if first {
		return b.f.SetSheetName("Sheet1", name)
	}
	_, err := b.f.NewSheet(name)
	return err
}

func (b *builder) initStyles() error {
	var err error
	thin := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	b.headerStyle, err = b.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thin,
	})
	if err != nil {
		return err
	}
	b.categoryStyle, err = b.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDDDDD"}},
	})
	if err != nil {
		return err
	}
	b.totalStyle, err = b.f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Border: thin,
	})
	return err
}

// writeSkeleton emits the shared row skeleton into the name column of a
// sheet and hides the filler rows.
func (b *builder) writeSkeleton(sheet string) error {
	for i, row := range b.layout.Rows() {
		r := b.layout.SheetRow(i)
		switch row.Kind {
		case RowCategory:
			if err := b.f.SetCellValue(sheet, cellName(dailyNameCol, r), row.Label); err != nil {
				return err
			}
			if err := b.f.SetCellStyle(sheet, cellName(dailyNameCol, r), cellName(dailyNameCol, r), b.categoryStyle); err != nil {
				return err
			}
		case RowItem:
			if err := b.f.SetCellValue(sheet, cellName(dailyNameCol, r), row.Label); err != nil {
				return err
			}
		}
	}
	for _, r := range b.layout.HiddenRows() {
		if err := b.f.SetRowVisible(sheet, r, false); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) buildDaily(date string) error {
	sheet := DailySheetName(date)

	// Fixed leading header block.
	title := fmt.Sprintf("%s %s", WeekdayCode(date), displayDate(date))
	if err := b.f.MergeCell(sheet, cellName(dailyNameCol, 1), cellName(dailyCustomTotalCol, 1)); err != nil {
		return err
	}
	if err := b.f.SetCellValue(sheet, cellName(dailyNameCol, 1), title); err != nil {
		return err
	}
	for col, label := range map[int]string{
		dailyNameCol:        "Наименование",
		dailyTotalCol:       "Итого",
		dailyCustomTotalCol: "Кастом",
	} {
		if err := b.f.SetCellValue(sheet, cellName(col, headerRows), label); err != nil {
			return err
		}
	}

	// Customer header blocks: merged name over the pair, sub-labels below.
	for i, name := range b.in.Customers {
		qty, custom := DailyQtyCol(i), DailyCustomCol(i)
		if err := b.f.MergeCell(sheet, cellName(qty, 1), cellName(custom, 1)); err != nil {
			return err
		}
		if err := b.f.SetCellValue(sheet, cellName(qty, 1), name); err != nil {
			return err
		}
		if err := b.f.SetCellValue(sheet, cellName(qty, 2), "Кол-во"); err != nil {
			return err
		}
		if err := b.f.SetCellValue(sheet, cellName(custom, 2), "Кастом"); err != nil {
			return err
		}
	}

	if err := b.writeSkeleton(sheet); err != nil {
		return err
	}

	// Data region: raw quantities as literals (blank when zero), row totals
	// as formulas so the document recomputes after manual edits.
	for i, row := range b.layout.Rows() {
		if row.Kind != RowItem {
			continue
		}
		r := b.layout.SheetRow(i)
		for ci, customer := range b.in.Customers {
			qty := b.in.Aggregated.Qty(customer, date, row.ItemID)
			if qty == 0 {
				continue
			}
			if err := b.f.SetCellValue(sheet, cellName(DailyQtyCol(ci), r), qty); err != nil {
				return err
			}
		}
		if len(b.in.Customers) > 0 {
			if err := b.f.SetCellFormula(sheet, cellName(dailyTotalCol, r), DailyRowTotal(len(b.in.Customers), r)); err != nil {
				return err
			}
			if err := b.f.SetCellStyle(sheet, cellName(dailyTotalCol, r), cellName(dailyTotalCol, r), b.totalStyle); err != nil {
				return err
			}
		}
	}

	if err := b.styleHeader(sheet, lastDailyCol(len(b.in.Customers))); err != nil {
		return err
	}
	if err := b.f.SetColWidth(sheet, "A", "A", 40); err != nil {
		return err
	}
	if len(b.in.Customers) > 0 {
		return b.f.SetColWidth(sheet, columnName(dailyFirstBlockCol), columnName(lastDailyCol(len(b.in.Customers))), 7)
	}
	return nil
}

func (b *builder) buildMatrix() error {
	sheet := matrixSheetName
	days := len(b.in.Dates)

	if err := b.f.MergeCell(sheet, cellName(matrixNameCol, 1), cellName(matrixNameCol, headerRows)); err != nil {
		return err
	}
	if err := b.f.SetCellValue(sheet, cellName(matrixNameCol, 1), "Наименование"); err != nil {
		return err
	}

	for i, name := range b.in.Customers {
		block := MatrixBlock(i, days)

		// Row 1: customer name over the whole block.
		if err := b.f.MergeCell(sheet, cellName(block.FirstCol(), 1), cellName(block.TotalCol(), 1)); err != nil {
			return err
		}
		if err := b.f.SetCellValue(sheet, cellName(block.FirstCol(), 1), name); err != nil {
			return err
		}

		// Row 2: merged sub-labels over the day and customization halves.
		if err := b.f.MergeCell(sheet, cellName(block.DayCol(0), 2), cellName(block.DayCol(days-1), 2)); err != nil {
			return err
		}
		if err := b.f.SetCellValue(sheet, cellName(block.DayCol(0), 2), "Итого"); err != nil {
			return err
		}
		if err := b.f.MergeCell(sheet, cellName(block.CustomCol(0), 2), cellName(block.CustomCol(days-1), 2)); err != nil {
			return err
		}
		if err := b.f.SetCellValue(sheet, cellName(block.CustomCol(0), 2), "Кастом"); err != nil {
			return err
		}
		if err := b.f.MergeCell(sheet, cellName(block.TotalCol(), 2), cellName(block.TotalCol(), headerRows)); err != nil {
			return err
		}
		if err := b.f.SetCellValue(sheet, cellName(block.TotalCol(), 2), "Всего"); err != nil {
			return err
		}

		// Row 3: weekday abbreviations, repeated for both halves.
		for d, date := range b.in.Dates {
			if err := b.f.SetCellValue(sheet, cellName(block.DayCol(d), headerRows), WeekdayCode(date)); err != nil {
				return err
			}
			if err := b.f.SetCellValue(sheet, cellName(block.CustomCol(d), headerRows), WeekdayCode(date)); err != nil {
				return err
			}
		}
	}

	if err := b.writeSkeleton(sheet); err != nil {
		return err
	}

	// Day cells reference the matching daily sheet cell; customization cells
	// stay empty (reserved layout); the block total sums its own block only.
	for i, row := range b.layout.Rows() {
		if row.Kind != RowItem {
			continue
		}
		r := b.layout.SheetRow(i)
		for ci := range b.in.Customers {
			block := MatrixBlock(ci, days)
			for d, date := range b.in.Dates {
				if err := b.f.SetCellFormula(sheet, cellName(block.DayCol(d), r), MatrixDayRef(date, ci, r)); err != nil {
					return err
				}
			}
			if err := b.f.SetCellFormula(sheet, cellName(block.TotalCol(), r), MatrixBlockTotal(block, r)); err != nil {
				return err
			}
			if err := b.f.SetCellStyle(sheet, cellName(block.TotalCol(), r), cellName(block.TotalCol(), r), b.totalStyle); err != nil {
				return err
			}
		}
	}

	lastCol := matrixNameCol
	if n := len(b.in.Customers); n > 0 {
		lastCol = MatrixBlock(n-1, days).TotalCol()
	}
	if err := b.styleHeader(sheet, lastCol); err != nil {
		return err
	}
	if err := b.f.SetColWidth(sheet, "A", "A", 40); err != nil {
		return err
	}
	if len(b.in.Customers) > 0 {
		return b.f.SetColWidth(sheet, columnName(matrixFirstBlockCol), columnName(lastCol), 6)
	}
	return nil
}

func (b *builder) buildSummary() error {
	sheet := summarySheetName
	days := len(b.in.Dates)

	if err := b.f.MergeCell(sheet, cellName(summaryNameCol, 1), cellName(summaryNameCol, headerRows)); err != nil {
		return err
	}
	if err := b.f.SetCellValue(sheet, cellName(summaryNameCol, 1), "Наименование"); err != nil {
		return err
	}
	if err := b.f.MergeCell(sheet, cellName(summaryFirstDayCol, 1), cellName(SummaryTotalCol(days), 1)); err != nil {
		return err
	}
	if err := b.f.SetCellValue(sheet, cellName(summaryFirstDayCol, 1), "Итого по дням"); err != nil {
		return err
	}
	for d, date := range b.in.Dates {
		if err := b.f.SetCellValue(sheet, cellName(SummaryDayCol(d), headerRows), WeekdayCode(date)); err != nil {
			return err
		}
	}
	if err := b.f.SetCellValue(sheet, cellName(SummaryTotalCol(days), headerRows), "Неделя"); err != nil {
		return err
	}

	if err := b.writeSkeleton(sheet); err != nil {
		return err
	}

	for i, row := range b.layout.Rows() {
		if row.Kind != RowItem {
			continue
		}
		r := b.layout.SheetRow(i)
		for d, date := range b.in.Dates {
			if err := b.f.SetCellFormula(sheet, cellName(SummaryDayCol(d), r), SummaryDayRef(date, r)); err != nil {
				return err
			}
		}
		if err := b.f.SetCellFormula(sheet, cellName(SummaryTotalCol(days), r), SummaryWeekTotal(days, r)); err != nil {
			return err
		}
	}

	if err := b.styleHeader(sheet, SummaryTotalCol(days)); err != nil {
		return err
	}
	return b.f.SetColWidth(sheet, "A", "A", 40)
}

func (b *builder) buildConfirmation() error {
	sheet := confirmSheetName
	days := len(b.in.Dates)

	for col, label := range []string{"Клиент", "Всего порций", "Отметка"} {
		if err := b.f.SetCellValue(sheet, cellName(col+1, 1), label); err != nil {
			return err
		}
	}
	if err := b.f.SetCellStyle(sheet, cellName(1, 1), cellName(3, 1), b.headerStyle); err != nil {
		return err
	}

	for i, name := range b.in.Customers {
		r := 2 + i
		if err := b.f.SetCellValue(sheet, cellName(1, r), name); err != nil {
			return err
		}
		block := MatrixBlock(i, days)
		formula := ConfirmationGrandTotal(block, dataStartRow, b.layout.LastRow())
		if err := b.f.SetCellFormula(sheet, cellName(2, r), formula); err != nil {
			return err
		}
	}

	if err := b.f.SetColWidth(sheet, "A", "A", 35); err != nil {
		return err
	}
	return b.f.SetColWidth(sheet, "B", "C", 14)
}

// buildPacking emits a simplified static packing list: the shared item
// skeleton plus an empty count column filled in by hand in the kitchen.
func (b *builder) buildPacking(sheet string) error {
	if err := b.f.SetCellValue(sheet, cellName(1, headerRows), "Наименование"); err != nil {
		return err
	}
	if err := b.f.SetCellValue(sheet, cellName(2, headerRows), "Кол-во"); err != nil {
		return err
	}
	if err := b.writeSkeleton(sheet); err != nil {
		return err
	}
	if err := b.styleHeader(sheet, 2); err != nil {
		return err
	}
	return b.f.SetColWidth(sheet, "A", "A", 40)
}

func (b *builder) styleHeader(sheet string, lastCol int) error {
	return b.f.SetCellStyle(sheet, cellName(1, 1), cellName(lastCol, headerRows), b.headerStyle)
}

func lastDailyCol(customers int) int {
	if customers == 0 {
		return dailyCustomTotalCol
	}
	return DailyCustomCol(customers - 1)
}

func columnName(col int) string {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		panic(fmt.Sprintf("report: bad column number %d: %v", col, err))
	}
	return name
}

func displayDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02.01.2006")
}
