package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// Sheet names are the coupling point between the assembler and every
// cross-sheet formula, so they are derived in exactly one place.
const (
	dailySheetPrefix = "НГ "
	matrixSheetName  = "Неделя"
	summarySheetName = "Итого"
	confirmSheetName = "Подтверждение"
)

var packingSheetNames = []string{"Упаковка 1", "Упаковка 2"}

var weekdayCodes = map[time.Weekday]string{
	time.Monday:    "Пн",
	time.Tuesday:   "Вт",
	time.Wednesday: "Ср",
	time.Thursday:  "Чт",
	time.Friday:    "Пт",
	time.Saturday:  "Сб",
	time.Sunday:    "Вс",
}

// WeekdayCode returns the short Cyrillic weekday label for an ISO date.
func WeekdayCode(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return weekdayCodes[t.Weekday()]
}

// DailySheetName derives the sheet name for one calendar date. Names are
// unique for any window of at most seven days.
func DailySheetName(date string) string {
	return dailySheetPrefix + WeekdayCode(date)
}

// cellName converts 1-based coordinates to an A1 address.
func cellName(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		// Coordinates are produced by the layout planner and are always >= 1.
		panic(fmt.Sprintf("report: bad cell coordinates (%d,%d): %v", col, row, err))
	}
	return name
}

// cellRef builds a cross-sheet reference. Sheet names contain spaces, so the
// name is always quoted.
func cellRef(sheet string, col, row int) string {
	return fmt.Sprintf("'%s'!%s", sheet, cellName(col, row))
}

// sumRowRange builds a same-row range sum covering columns colFrom..colTo.
func sumRowRange(colFrom, colTo, row int) string {
	return fmt.Sprintf("SUM(%s:%s)", cellName(colFrom, row), cellName(colTo, row))
}

// sumColRange builds a same-column range sum covering rows rowFrom..rowTo.
func sumColRange(col, rowFrom, rowTo int) string {
	return fmt.Sprintf("SUM(%s:%s)", cellName(col, rowFrom), cellName(col, rowTo))
}

// DailyRowTotal sums one item row across all customer blocks of a daily
// sheet. Customization columns inside the span are always empty, so the
// contiguous range stays correct.
func DailyRowTotal(customers, row int) string {
	return sumRowRange(DailyQtyCol(0), DailyCustomCol(customers-1), row)
}

// MatrixDayRef points a matrix day cell at the matching cell of the daily
// sheet: same row, the customer's quantity column in the daily layout.
func MatrixDayRef(date string, customerIdx, row int) string {
	return cellRef(DailySheetName(date), DailyQtyCol(customerIdx), row)
}

// MatrixBlockTotal sums exactly one customer's 2×days sub-columns on one
// row, never bleeding into a neighboring block.
func MatrixBlockTotal(b Block, row int) string {
	return sumRowRange(b.FirstCol(), b.LastDataCol(), row)
}

// SummaryDayRef points a weekly-summary day cell at the row-total column of
// the corresponding daily sheet.
func SummaryDayRef(date string, row int) string {
	return cellRef(DailySheetName(date), dailyTotalCol, row)
}

// SummaryWeekTotal sums the day-reference columns of one summary row.
func SummaryWeekTotal(days, row int) string {
	return sumRowRange(summaryFirstDayCol, SummaryDayCol(days-1), row)
}

// ConfirmationGrandTotal sums a customer's matrix block-total sub-column over
// the whole item skeleton.
func ConfirmationGrandTotal(b Block, firstRow, lastRow int) string {
	return fmt.Sprintf("SUM(%s:%s)",
		fmt.Sprintf("'%s'!%s", matrixSheetName, cellName(b.TotalCol(), firstRow)),
		cellName(b.TotalCol(), lastRow))
}
