package report

import (
	"errors"
	"fmt"
	"time"
)

// Preset selects which part of the configured business week a report covers.
type Preset string

const (
	PresetFullWeek   Preset = "full_week"
	PresetFirstHalf  Preset = "first_half"
	PresetSecondHalf Preset = "second_half"
)

// ErrInvalidPreset marks a range value outside the three known tags.
var ErrInvalidPreset = errors.New("invalid range")

// ParsePreset parses the range query value. An empty value means the full
// week; anything outside the three known tags is a client error.
func ParsePreset(s string) (Preset, error) {
	switch s {
	case "", string(PresetFullWeek):
		return PresetFullWeek, nil
	case string(PresetFirstHalf):
		return PresetFirstHalf, nil
	case string(PresetSecondHalf):
		return PresetSecondHalf, nil
	default:
		return "", fmt.Errorf("%w %q: valid values are %s, %s, %s",
			ErrInvalidPreset, s, PresetFullWeek, PresetFirstHalf, PresetSecondHalf)
	}
}

// Window is the business period the generator reports on: Days consecutive
// calendar dates starting at Start, with first_half covering the first Split
// dates and second_half the rest.
type Window struct {
	Start time.Time
	Days  int
	Split int
}

// NewWindow builds a Window from its configured parts. start is an ISO date.
func NewWindow(start string, days, split int) (Window, error) {
	t, err := time.Parse("2006-01-02", start)
	if err != nil {
		return Window{}, fmt.Errorf("invalid window start date %q: %w", start, err)
	}
	if days < 1 {
		return Window{}, fmt.Errorf("window length must be positive, got %d", days)
	}
	if split < 1 || split >= days {
		return Window{}, fmt.Errorf("window split %d must fall inside a %d-day window", split, days)
	}
	return Window{Start: t, Days: days, Split: split}, nil
}

// Dates returns every ISO date of the window in business-week order.
func (w Window) Dates() []string {
	dates := make([]string, w.Days)
	for i := 0; i < w.Days; i++ {
		dates[i] = w.Start.AddDate(0, 0, i).Format("2006-01-02")
	}
	return dates
}

// Range resolves a preset to its concrete ordered date list. first_half and
// second_half partition the full window exactly.
func (w Window) Range(p Preset) []string {
	dates := w.Dates()
	switch p {
	case PresetFirstHalf:
		return dates[:w.Split]
	case PresetSecondHalf:
		return dates[w.Split:]
	default:
		return dates
	}
}

// StartDate and EndDate bound the full window for storage queries.
func (w Window) StartDate() string {
	return w.Start.Format("2006-01-02")
}

func (w Window) EndDate() string {
	return w.Start.AddDate(0, 0, w.Days-1).Format("2006-01-02")
}

// ActiveCustomers filters customers down to those with at least one nonzero
// quantity on at least one of the given dates, preserving input order. A
// customer who only ordered in the other half of the week must not appear as
// an all-zero column block.
func ActiveCustomers(customers []string, dates []string, agg Aggregated) []string {
	active := make([]string, 0, len(customers))
	for _, name := range customers {
		byDate, ok := agg[name]
		if !ok {
			continue
		}
		for _, date := range dates {
			if hasActivity(byDate[date]) {
				active = append(active, name)
				break
			}
		}
	}
	return active
}

func hasActivity(byItem map[int64]float64) bool {
	for _, qty := range byItem {
		if qty != 0 {
			return true
		}
	}
	return false
}
