package report

import (
	"reflect"
	"testing"

	"github.com/foodikal/ny-backend/internal/domain"
)

func TestBuildLayoutRowPlacement(t *testing.T) {
	items := []domain.MenuItem{
		{ID: 1, Name: "Брускетта с лососем", Category: "Брускетты"},
		{ID: 2, Name: "Брускетта с томатами", Category: "Брускетты"},
		{ID: 3, Name: "Тарталетка с икрой", Category: "Тарталетки"},
	}
	l := BuildLayout(items)

	// Row 4: category, 5-6: items, 7: filler, 8: category, 9: item, 10: filler.
	wantRows := []struct {
		row  int
		id   int64
		name string
	}{
		{5, 1, "Брускетта с лососем"},
		{6, 2, "Брускетта с томатами"},
		{9, 3, "Тарталетка с икрой"},
	}
	for _, w := range wantRows {
		got, ok := l.ItemRow(w.id)
		if !ok {
			t.Fatalf("item %d (%s) missing from layout", w.id, w.name)
		}
		if got != w.row {
			t.Errorf("ItemRow(%d) = %d, want %d", w.id, got, w.row)
		}
	}
	if got := l.LastRow(); got != 10 {
		t.Errorf("LastRow() = %d, want 10", got)
	}
	if got, want := l.HiddenRows(), []int{7, 10}; !reflect.DeepEqual(got, want) {
		t.Errorf("HiddenRows() = %v, want %v", got, want)
	}
}

func TestBuildLayoutSkipsEmptyCategories(t *testing.T) {
	items := []domain.MenuItem{
		{ID: 1, Name: "Салат Оливье", Category: "Салат"},
	}
	l := BuildLayout(items)

	for _, row := range l.Rows() {
		if row.Kind == RowCategory && row.Label != "Салат" {
			t.Errorf("empty category %q emitted into skeleton", row.Label)
		}
	}
	if row, _ := l.ItemRow(1); row != 5 {
		t.Errorf("single item row = %d, want 5", row)
	}
}

func TestBuildLayoutIgnoresUnknownCategory(t *testing.T) {
	items := []domain.MenuItem{
		{ID: 1, Name: "Салат Оливье", Category: "Салат"},
		{ID: 2, Name: "Нечто", Category: "Десерты"},
	}
	l := BuildLayout(items)

	if _, ok := l.ItemRow(2); ok {
		t.Error("item with unknown category placed into skeleton")
	}
}

func TestDailyColumns(t *testing.T) {
	if got := DailyQtyCol(0); got != 4 {
		t.Errorf("DailyQtyCol(0) = %d, want 4", got)
	}
	if got := DailyCustomCol(0); got != 5 {
		t.Errorf("DailyCustomCol(0) = %d, want 5", got)
	}
	if got := DailyQtyCol(2); got != 8 {
		t.Errorf("DailyQtyCol(2) = %d, want 8", got)
	}
}

func TestMatrixBlocksAreContiguous(t *testing.T) {
	days := 7
	first := MatrixBlock(0, days)
	second := MatrixBlock(1, days)

	if got := first.FirstCol(); got != 2 {
		t.Errorf("block 0 FirstCol = %d, want 2", got)
	}
	if got := first.TotalCol(); got != 16 {
		t.Errorf("block 0 TotalCol = %d, want 16", got)
	}
	if got, want := second.FirstCol(), first.TotalCol()+1; got != want {
		t.Errorf("block 1 FirstCol = %d, want %d (right after block 0)", got, want)
	}
	if got, want := first.CustomCol(0), first.DayCol(days-1)+1; got != want {
		t.Errorf("customization half starts at %d, want %d", got, want)
	}
	if got, want := first.LastDataCol(), first.TotalCol()-1; got != want {
		t.Errorf("LastDataCol = %d, want %d", got, want)
	}
}

func TestSummaryColumns(t *testing.T) {
	if got := SummaryDayCol(0); got != 2 {
		t.Errorf("SummaryDayCol(0) = %d, want 2", got)
	}
	if got := SummaryTotalCol(7); got != 9 {
		t.Errorf("SummaryTotalCol(7) = %d, want 9", got)
	}
}
