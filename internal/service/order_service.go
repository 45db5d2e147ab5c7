package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/foodikal/ny-backend/internal/domain"
	"github.com/foodikal/ny-backend/internal/repository"
	"github.com/foodikal/ny-backend/pkg/logger"
)

const (
	promoDiscountPercent = 5
	priceRoundStep       = 50
)

// OrderNotifier announces new orders out of band. Delivery is best effort.
type OrderNotifier interface {
	Enabled() bool
	Send(ctx context.Context, text string) error
	FormatOrderMessage(o *domain.Order) string
}

type OrderService struct {
	orders   repository.OrderRepository
	menu     repository.MenuRepository
	promos   repository.PromoRepository
	notifier OrderNotifier
}

func NewOrderService(orders repository.OrderRepository, menu repository.MenuRepository, promos repository.PromoRepository, notifier OrderNotifier) *OrderService {
	return &OrderService{orders: orders, menu: menu, promos: promos, notifier: notifier}
}

// CreateOrderInput is what the storefront submits. Prices are never taken
// from the client; only item ids and quantities are.
type CreateOrderInput struct {
	CustomerName    string           `json:"customer_name"`
	CustomerContact string           `json:"customer_contact"`
	DeliveryAddress string           `json:"delivery_address"`
	DeliveryDate    string           `json:"delivery_date"`
	Comments        string           `json:"comments"`
	Items           []OrderItemInput `json:"order_items"`
	PromoCode       string           `json:"promo_code"`
	DeliveryFee     int              `json:"delivery_fee"`
}

type OrderItemInput struct {
	ItemID   int64   `json:"item_id"`
	Quantity float64 `json:"quantity"`
}

func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	if err := validateOrderInput(in); err != nil {
		return nil, err
	}

	lines, subtotal, err := s.priceItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		CustomerName:    in.CustomerName,
		CustomerContact: in.CustomerContact,
		DeliveryAddress: in.DeliveryAddress,
		DeliveryDate:    in.DeliveryDate,
		Comments:        in.Comments,
		DeliveryFee:     in.DeliveryFee,
		Items:           lines,
	}

	order.ItemsSubtotal = subtotal
	order.OriginalPrice = subtotal + order.DeliveryFee

	if in.PromoCode != "" {
		valid, err := s.promos.Exists(ctx, in.PromoCode)
		if err != nil {
			return nil, err
		}
		if !valid {
			return nil, fmt.Errorf("invalid promo code")
		}
		order.PromoCode = in.PromoCode
		discounted, discount := applyPromoDiscount(subtotal)
		order.DiscountAmount = discount
		order.TotalPrice = discounted + order.DeliveryFee
	} else {
		order.TotalPrice = order.OriginalPrice
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	logger.Event("order_created").
		Int64("order_id", order.ID).
		Str("customer", order.CustomerName).
		Int("total", order.TotalPrice).
		Msg("order stored")

	s.notifyAsync(order)
	return order, nil
}

// priceItems resolves the submitted lines against the catalog and returns the
// priced lines plus their subtotal. Prices and names come from the database.
func (s *OrderService) priceItems(ctx context.Context, items []OrderItemInput) ([]domain.OrderItem, int, error) {
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ItemID)
	}
	catalog, err := s.menu.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[int64]domain.MenuItem, len(catalog))
	for _, item := range catalog {
		byID[item.ID] = item
	}

	lines := make([]domain.OrderItem, 0, len(items))
	subtotal := 0
	for _, line := range items {
		item, ok := byID[line.ItemID]
		if !ok {
			return nil, 0, fmt.Errorf("unknown menu item %d", line.ItemID)
		}
		lines = append(lines, domain.OrderItem{
			ItemID:   item.ID,
			Name:     item.Name,
			Quantity: line.Quantity,
			Price:    item.Price,
		})
		subtotal += int(math.Round(float64(item.Price) * line.Quantity))
	}
	return lines, subtotal, nil
}

// notifyAsync fires the Telegram announcement without blocking the request.
func (s *OrderService) notifyAsync(order *domain.Order) {
	if s.notifier == nil || !s.notifier.Enabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.notifier.Send(ctx, s.notifier.FormatOrderMessage(order)); err != nil {
			log.Warn().Err(err).Int64("order_id", order.ID).Msg("order notification failed")
		}
	}()
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

func (s *OrderService) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *OrderService) UpdateConfirmations(ctx context.Context, id int64, afterCreation, beforeDelivery bool) error {
	return s.orders.UpdateConfirmations(ctx, id, afterCreation, beforeDelivery)
}

func (s *OrderService) Delete(ctx context.Context, id int64) error {
	return s.orders.Delete(ctx, id)
}

// PromoQuoteInput is the storefront's pre-checkout promo check: the code plus
// the current cart, priced server side the same way Create prices it.
type PromoQuoteInput struct {
	PromoCode string           `json:"promo_code"`
	Items     []OrderItemInput `json:"order_items"`
}

type PromoQuote struct {
	Valid          bool `json:"valid"`
	Subtotal       int  `json:"subtotal,omitempty"`
	DiscountAmount int  `json:"discount_amount,omitempty"`
	FinalTotal     int  `json:"final_total,omitempty"`
}

// QuotePromo checks a promo code and, when it exists, prices the cart with
// the discount applied. An unknown code is not an error, just an invalid
// quote.
func (s *OrderService) QuotePromo(ctx context.Context, in PromoQuoteInput) (*PromoQuote, error) {
	valid, err := s.ValidatePromo(ctx, in.PromoCode)
	if err != nil {
		return nil, err
	}
	if !valid {
		return &PromoQuote{}, nil
	}

	_, subtotal, err := s.priceItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}
	discounted, discount := applyPromoDiscount(subtotal)
	return &PromoQuote{
		Valid:          true,
		Subtotal:       subtotal,
		DiscountAmount: discount,
		FinalTotal:     discounted,
	}, nil
}

func (s *OrderService) ValidatePromo(ctx context.Context, code string) (bool, error) {
	if code == "" {
		return false, nil
	}
	return s.promos.Exists(ctx, code)
}

func validateOrderInput(in CreateOrderInput) error {
	if in.CustomerName == "" {
		return fmt.Errorf("customer name is required")
	}
	if in.CustomerContact == "" {
		return fmt.Errorf("customer contact is required")
	}
	if _, err := time.Parse("2006-01-02", in.DeliveryDate); err != nil {
		return fmt.Errorf("delivery date must be YYYY-MM-DD")
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("order must contain at least one item")
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("item %d quantity must be positive", item.ItemID)
		}
	}
	if in.DeliveryFee < 0 {
		return fmt.Errorf("delivery fee must not be negative")
	}
	return nil
}

// applyPromoDiscount takes promoDiscountPercent off the subtotal, truncating
// the cut to whole dinars, then rounds the result to the nearest
// priceRoundStep so totals stay in round dinars. Rounding near the step
// boundary may land above the subtotal; the cap keeps a discounted order
// from ever costing more than the undiscounted one.
func applyPromoDiscount(subtotal int) (discounted, discount int) {
	base := subtotal - int(float64(subtotal)*promoDiscountPercent/100)
	discounted = int(math.Round(float64(base)/priceRoundStep)) * priceRoundStep
	if discounted > subtotal {
		discounted = subtotal
	}
	return discounted, subtotal - discounted
}
