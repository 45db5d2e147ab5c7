package domain

import "time"

// OrderItem is one line of an order. Name and Price are snapshotted from the
// catalog at order time, never trusted from the client.
type OrderItem struct {
	ItemID   int64   `json:"item_id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    int     `json:"price"`
}

// Order represents a customer order. DeliveryDate is an ISO calendar date
// (YYYY-MM-DD); CustomerName doubles as the aggregation key for reports.
type Order struct {
	ID                      int64       `json:"id" db:"id"`
	CustomerName            string      `json:"customer_name" db:"customer_name"`
	CustomerContact         string      `json:"customer_contact" db:"customer_contact"`
	DeliveryAddress         string      `json:"delivery_address" db:"delivery_address"`
	DeliveryDate            string      `json:"delivery_date" db:"delivery_date"`
	Comments                string      `json:"comments" db:"comments"`
	Items                   []OrderItem `json:"order_items" db:"-"`
	ItemsSubtotal           int         `json:"items_subtotal" db:"items_subtotal"`
	DeliveryFee             int         `json:"delivery_fee" db:"delivery_fee"`
	TotalPrice              int         `json:"total_price" db:"total_price"`
	PromoCode               string      `json:"promo_code,omitempty" db:"promo_code"`
	OriginalPrice           int         `json:"original_price" db:"original_price"`
	DiscountAmount          int         `json:"discount_amount" db:"discount_amount"`
	ConfirmedAfterCreation  bool        `json:"confirmed_after_creation" db:"confirmed_after_creation"`
	ConfirmedBeforeDelivery bool        `json:"confirmed_before_delivery" db:"confirmed_before_delivery"`
	CreatedAt               time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time   `json:"updated_at" db:"updated_at"`
}

// PromoCode is a flat 5%-discount code; existence is the only validity check.
type PromoCode struct {
	Code      string    `json:"code" db:"code"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Banner is a promotional banner shown on the storefront.
type Banner struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	ItemLink     string    `json:"item_link" db:"item_link"`
	ImageURL     string    `json:"image_url" db:"image_url"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
