package report

import "github.com/foodikal/ny-backend/internal/domain"

// RowKind tags a row of the shared sheet skeleton.
type RowKind int

const (
	// RowCategory is a category label row.
	RowCategory RowKind = iota
	// RowItem carries one menu item.
	RowItem
	// RowFiller is legacy padding between category groups. Filler rows are
	// emitted hidden, never removed: removing one would shift every later row
	// and break cross-sheet formulas.
	RowFiller
)

// Row is one descriptor of the sheet skeleton.
type Row struct {
	Kind   RowKind
	ItemID int64
	Label  string
}

// Every sheet carries the same three header rows so that item rows land on
// identical row numbers across daily sheets, the matrix sheet and the weekly
// summary.
const (
	headerRows   = 3
	dataStartRow = headerRows + 1
)

// Layout is the row skeleton shared by all item-listing sheets of one report
// run. It is built once from the catalog and reused for every sheet and every
// customer block.
type Layout struct {
	rows    []Row
	itemRow map[int64]int
}

// BuildLayout derives the skeleton from the catalog: categories in the fixed
// catalog order, items in insertion order within a category, one hidden
// filler row after each category group.
func BuildLayout(items []domain.MenuItem) *Layout {
	grouped := domain.GroupMenuByCategory(items)

	l := &Layout{itemRow: make(map[int64]int, len(items))}
	for _, cat := range domain.Categories {
		group := grouped[cat]
		if len(group) == 0 {
			continue
		}
		l.rows = append(l.rows, Row{Kind: RowCategory, Label: cat})
		for _, item := range group {
			l.itemRow[item.ID] = dataStartRow + len(l.rows)
			l.rows = append(l.rows, Row{Kind: RowItem, ItemID: item.ID, Label: item.Name})
		}
		l.rows = append(l.rows, Row{Kind: RowFiller})
	}
	return l
}

// Rows returns the skeleton descriptors in order.
func (l *Layout) Rows() []Row {
	return l.rows
}

// SheetRow converts a skeleton index to an absolute sheet row.
func (l *Layout) SheetRow(i int) int {
	return dataStartRow + i
}

// ItemRow returns the absolute sheet row of a menu item. The row is the same
// on every sheet of the workbook.
func (l *Layout) ItemRow(itemID int64) (int, bool) {
	row, ok := l.itemRow[itemID]
	return row, ok
}

// LastRow is the absolute row of the final skeleton row.
func (l *Layout) LastRow() int {
	return dataStartRow + len(l.rows) - 1
}

// HiddenRows lists the absolute rows that must be flagged hidden.
func (l *Layout) HiddenRows() []int {
	var hidden []int
	for i, r := range l.rows {
		if r.Kind == RowFiller {
			hidden = append(hidden, l.SheetRow(i))
		}
	}
	return hidden
}

// Daily sheet columns: item name, row total, a reserved customization total,
// then a two-column block (quantity + customization placeholder) per customer.
const (
	dailyNameCol        = 1
	dailyTotalCol       = 2
	dailyCustomTotalCol = 3
	dailyFirstBlockCol  = 4
	dailyBlockWidth     = 2
)

// DailyQtyCol returns the quantity column of the i-th customer (0-based).
func DailyQtyCol(i int) int {
	return dailyFirstBlockCol + i*dailyBlockWidth
}

// DailyCustomCol returns the customization placeholder column of the i-th
// customer. The column is reserved layout; it is always emitted empty.
func DailyCustomCol(i int) int {
	return DailyQtyCol(i) + 1
}

// Matrix sheet columns: item name, then per customer a fixed-width block of
// one day sub-column per date, a parallel set of customization sub-columns
// and one trailing block total.
const (
	matrixNameCol       = 1
	matrixFirstBlockCol = 2
)

// Block locates one customer's column block on the matrix sheet.
type Block struct {
	start int
	days  int
}

// MatrixBlock returns the i-th customer's block for a range of the given
// number of days. Blocks are contiguous and identically shaped; only the
// starting column differs.
func MatrixBlock(i, days int) Block {
	width := 2*days + 1
	return Block{start: matrixFirstBlockCol + i*width, days: days}
}

// DayCol is the day-total sub-column for date index d.
func (b Block) DayCol(d int) int {
	return b.start + d
}

// CustomCol is the customization sub-column for date index d.
func (b Block) CustomCol(d int) int {
	return b.start + b.days + d
}

// TotalCol is the trailing sub-column summing exactly this block.
func (b Block) TotalCol() int {
	return b.start + 2*b.days
}

// FirstCol and LastDataCol bound the block's summable sub-columns.
func (b Block) FirstCol() int {
	return b.start
}

func (b Block) LastDataCol() int {
	return b.start + 2*b.days - 1
}

// Weekly summary columns: item name, one column per date referencing the
// daily sheet's row-total column, one trailing week total.
const (
	summaryNameCol     = 1
	summaryFirstDayCol = 2
)

// SummaryDayCol is the column for date index d on the weekly summary.
func SummaryDayCol(d int) int {
	return summaryFirstDayCol + d
}

// SummaryTotalCol is the week-total column for a range of the given length.
func SummaryTotalCol(days int) int {
	return summaryFirstDayCol + days
}
