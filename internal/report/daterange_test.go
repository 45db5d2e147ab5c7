package report

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func testWindow(t *testing.T) Window {
	t.Helper()
	w, err := NewWindow("2025-12-25", 7, 4)
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	return w
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    Preset
		wantErr bool
	}{
		{"", PresetFullWeek, false},
		{"full_week", PresetFullWeek, false},
		{"first_half", PresetFirstHalf, false},
		{"second_half", PresetSecondHalf, false},
		{"last_half", "", true},
		{"FULL_WEEK", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePreset(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil {
			if !errors.Is(err, ErrInvalidPreset) {
				t.Errorf("ParsePreset(%q) error %v is not ErrInvalidPreset", tt.in, err)
			}
			if !strings.Contains(err.Error(), "full_week") {
				t.Errorf("ParsePreset(%q) error %q does not list valid values", tt.in, err)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewWindowValidation(t *testing.T) {
	tests := []struct {
		name  string
		start string
		days  int
		split int
	}{
		{"bad date", "25.12.2025", 7, 4},
		{"zero days", "2025-12-25", 0, 0},
		{"zero split", "2025-12-25", 7, 0},
		{"split past end", "2025-12-25", 7, 7},
	}
	for _, tt := range tests {
		if _, err := NewWindow(tt.start, tt.days, tt.split); err == nil {
			t.Errorf("%s: NewWindow(%q, %d, %d) accepted invalid input", tt.name, tt.start, tt.days, tt.split)
		}
	}
}

func TestWindowDates(t *testing.T) {
	w := testWindow(t)
	dates := w.Dates()

	if len(dates) != 7 {
		t.Fatalf("len(Dates()) = %d, want 7", len(dates))
	}
	if dates[0] != "2025-12-25" || dates[6] != "2025-12-31" {
		t.Errorf("window bounds = %s..%s, want 2025-12-25..2025-12-31", dates[0], dates[6])
	}
	if w.StartDate() != "2025-12-25" || w.EndDate() != "2025-12-31" {
		t.Errorf("StartDate/EndDate = %s/%s", w.StartDate(), w.EndDate())
	}
}

// The two halves together must cover the full window exactly once, in order.
func TestRangePartition(t *testing.T) {
	w := testWindow(t)

	first := w.Range(PresetFirstHalf)
	second := w.Range(PresetSecondHalf)
	full := w.Range(PresetFullWeek)

	if len(first) != 4 || len(second) != 3 {
		t.Fatalf("partition sizes = %d/%d, want 4/3", len(first), len(second))
	}
	joined := append(append([]string{}, first...), second...)
	if !reflect.DeepEqual(joined, full) {
		t.Errorf("first_half + second_half = %v, want %v", joined, full)
	}
}

func TestActiveCustomersFiltersByRange(t *testing.T) {
	w := testWindow(t)
	agg := Aggregated{
		"Анна":  {"2025-12-26": {1: 2}},
		"Иван":  {"2025-12-30": {2: 1}},
		"Света": {"2025-12-27": {3: 0}},
	}
	customers := []string{"Света", "Анна", "Иван"}

	firstHalf := ActiveCustomers(customers, w.Range(PresetFirstHalf), agg)
	want := []string{"Анна"}
	if !reflect.DeepEqual(firstHalf, want) {
		t.Errorf("first half customers = %v, want %v", firstHalf, want)
	}

	secondHalf := ActiveCustomers(customers, w.Range(PresetSecondHalf), agg)
	want = []string{"Иван"}
	if !reflect.DeepEqual(secondHalf, want) {
		t.Errorf("second half customers = %v, want %v", secondHalf, want)
	}
}

func TestActiveCustomersKeepsInputOrder(t *testing.T) {
	w := testWindow(t)
	agg := Aggregated{
		"Анна": {"2025-12-25": {1: 1}},
		"Иван": {"2025-12-25": {1: 1}},
	}

	got := ActiveCustomers([]string{"Иван", "Анна"}, w.Dates(), agg)
	want := []string{"Иван", "Анна"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ActiveCustomers reordered input: got %v, want %v", got, want)
	}
}
