package report

import (
	"sort"

	"github.com/foodikal/ny-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// Aggregated is the customer → delivery date → item id → summed quantity
// mapping every report sheet is built from. It is derived fresh for each
// report request and never persisted.
type Aggregated map[string]map[string]map[int64]float64

// Aggregate folds orders into an Aggregated mapping. Order items referencing
// an item id missing from the catalog are dropped with a warning; a malformed
// legacy order must not abort a whole report.
func Aggregate(orders []domain.Order, catalog []domain.MenuItem) Aggregated {
	known := make(map[int64]bool, len(catalog))
	for _, item := range catalog {
		known[item.ID] = true
	}

	agg := make(Aggregated)
	for _, order := range orders {
		for _, line := range order.Items {
			if !known[line.ItemID] {
				log.Warn().
					Int64("order_id", order.ID).
					Int64("item_id", line.ItemID).
					Msg("order references unknown menu item, skipping line")
				continue
			}
			byDate, ok := agg[order.CustomerName]
			if !ok {
				byDate = make(map[string]map[int64]float64)
				agg[order.CustomerName] = byDate
			}
			byItem, ok := byDate[order.DeliveryDate]
			if !ok {
				byItem = make(map[int64]float64)
				byDate[order.DeliveryDate] = byItem
			}
			byItem[line.ItemID] += line.Quantity
		}
	}
	return agg
}

// Qty returns the summed quantity for a (customer, date, item) key, zero when
// the key is absent.
func (a Aggregated) Qty(customer, date string, itemID int64) float64 {
	byDate, ok := a[customer]
	if !ok {
		return 0
	}
	byItem, ok := byDate[date]
	if !ok {
		return 0
	}
	return byItem[itemID]
}

// Customers returns the distinct customer names in the aggregate, sorted.
func (a Aggregated) Customers() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
