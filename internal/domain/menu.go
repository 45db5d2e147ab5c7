package domain

import "time"

// Categories is the fixed menu category set, in catalog display order. The
// order also drives the row layout of every generated workbook sheet.
var Categories = []string{
	"Брускетты",
	"Горячее",
	"Закуски",
	"Канапе",
	"Салат",
	"Тарталетки",
}

// ValidCategory reports whether c is one of the known menu categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// MenuItem represents one catalog entry. Price is whole RSD.
type MenuItem struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Category    string    `json:"category" db:"category"`
	Description string    `json:"description" db:"description"`
	Price       int       `json:"price" db:"price"`
	Image       string    `json:"image" db:"image"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// GroupMenuByCategory buckets catalog items under the fixed category set.
// Items with an unknown category are skipped.
func GroupMenuByCategory(items []MenuItem) map[string][]MenuItem {
	grouped := make(map[string][]MenuItem, len(Categories))
	for _, cat := range Categories {
		grouped[cat] = []MenuItem{}
	}
	for _, item := range items {
		if _, ok := grouped[item.Category]; ok {
			grouped[item.Category] = append(grouped[item.Category], item)
		}
	}
	return grouped
}
