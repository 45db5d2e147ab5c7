package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/foodikal/ny-backend/internal/config"
	"github.com/foodikal/ny-backend/internal/domain"
	"github.com/foodikal/ny-backend/internal/report"
	"github.com/foodikal/ny-backend/internal/repository"
	"github.com/foodikal/ny-backend/internal/storage"
	"github.com/foodikal/ny-backend/pkg/logger"
)

type ReportService struct {
	orders  repository.OrderRepository
	menu    repository.MenuRepository
	window  report.Window
	archive storage.WorkbookArchive
}

func NewReportService(orders repository.OrderRepository, menu repository.MenuRepository, cfg config.ReportConfig, archive storage.WorkbookArchive) (*ReportService, error) {
	window, err := report.NewWindow(cfg.WindowStart, cfg.WindowDays, cfg.WindowSplit)
	if err != nil {
		return nil, fmt.Errorf("invalid report window config: %w", err)
	}
	return &ReportService{orders: orders, menu: menu, window: window, archive: archive}, nil
}

// WorkbookData is the raw aggregation payload, exposed so external tooling
// can build its own views without parsing xlsx.
type WorkbookData struct {
	StartDate  string            `json:"start_date"`
	EndDate    string            `json:"end_date"`
	Dates      []string          `json:"dates"`
	Customers  []string          `json:"customers"`
	Items      []domain.MenuItem `json:"items"`
	Quantities report.Aggregated `json:"quantities"`
}

func (s *ReportService) WorkbookData(ctx context.Context) (*WorkbookData, error) {
	agg, items, err := s.aggregateWindow(ctx)
	if err != nil {
		return nil, err
	}
	dates := s.window.Dates()
	return &WorkbookData{
		StartDate:  s.window.StartDate(),
		EndDate:    s.window.EndDate(),
		Dates:      dates,
		Customers:  report.ActiveCustomers(agg.Customers(), dates, agg),
		Items:      items,
		Quantities: agg,
	}, nil
}

// GenerateWorkbook builds the xlsx for the requested range preset and files
// a copy in the archive. The archive write is best effort; a full disk must
// not block the download.
func (s *ReportService) GenerateWorkbook(ctx context.Context, rangeValue string) (string, []byte, error) {
	preset, err := report.ParsePreset(rangeValue)
	if err != nil {
		return "", nil, err
	}

	agg, items, err := s.aggregateWindow(ctx)
	if err != nil {
		return "", nil, err
	}

	dates := s.window.Range(preset)
	data, err := report.Generate(report.Input{
		Customers:  report.ActiveCustomers(agg.Customers(), dates, agg),
		MenuItems:  items,
		Aggregated: agg,
		Dates:      dates,
		Preset:     preset,
	})
	if err != nil {
		return "", nil, err
	}

	filename := report.Filename(preset)
	if s.archive != nil {
		if _, err := s.archive.Save(ctx, strings.TrimSuffix(filename, ".xlsx"), data); err != nil {
			log.Warn().Err(err).Str("preset", string(preset)).Msg("workbook archive write failed")
		}
	}
	logger.Event("workbook_generated").
		Str("preset", string(preset)).
		Int("size_bytes", len(data)).
		Msg("workbook generated")

	return filename, data, nil
}

func (s *ReportService) ListArchived(ctx context.Context) ([]storage.ArchivedWorkbook, error) {
	return s.archive.List(ctx)
}

func (s *ReportService) GetArchived(ctx context.Context, key string) ([]byte, error) {
	return s.archive.Get(ctx, key)
}

// aggregateWindow loads every order of the configured window and folds it
// against the current catalog. Half-week requests still aggregate the full
// window; the assembler selects dates afterwards.
func (s *ReportService) aggregateWindow(ctx context.Context) (report.Aggregated, []domain.MenuItem, error) {
	orders, err := s.orders.ListForDateRange(ctx, s.window.StartDate(), s.window.EndDate())
	if err != nil {
		return nil, nil, err
	}
	items, err := s.menu.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return report.Aggregate(orders, items), items, nil
}
