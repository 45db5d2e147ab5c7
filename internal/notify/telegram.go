package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/foodikal/ny-backend/internal/config"
	"github.com/foodikal/ny-backend/internal/domain"
)

const defaultBaseURL = "https://api.telegram.org"

// Telegram posts order notifications to a group chat through the Bot API.
// With no token or chat id configured it degrades to a disabled client.
type Telegram struct {
	botToken string
	chatID   string
	env      string
	baseURL  string
	client   *http.Client
}

func NewTelegram(cfg config.TelegramConfig) *Telegram {
	return &Telegram{
		botToken: cfg.BotToken,
		chatID:   cfg.ChatID,
		env:      cfg.Environment,
		baseURL:  defaultBaseURL,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *Telegram) Enabled() bool {
	return t.botToken != "" && t.chatID != ""
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Send delivers one Markdown-formatted message. Callers treat delivery as
// best effort; a failed notification never fails the order it announces.
func (t *Telegram) Send(ctx context.Context, text string) error {
	if !t.Enabled() {
		return nil
	}

	body, err := json.Marshal(sendMessageRequest{
		ChatID:    t.chatID,
		Text:      text,
		ParseMode: "Markdown",
	})
	if err != nil {
		return fmt.Errorf("encode telegram message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	var parsed sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("decode telegram response: %w", err)
	}
	if !parsed.OK {
		return fmt.Errorf("telegram rejected message: %s", parsed.Description)
	}
	return nil
}

// markdownEscaper covers the characters the legacy Markdown parse mode treats
// as formatting. Customer-supplied text goes through this before interpolation.
var markdownEscaper = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"`", "\\`",
	"[", "\\[",
)

func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// FormatOrderMessage renders the group-chat announcement for a new order.
func (t *Telegram) FormatOrderMessage(o *domain.Order) string {
	var b strings.Builder

	if t.env != "production" {
		fmt.Fprintf(&b, "[%s] ", strings.ToUpper(t.env))
	}
	fmt.Fprintf(&b, "🎄 *Новый заказ #%d*\n\n", o.ID)
	fmt.Fprintf(&b, "👤 Клиент: %s\n", EscapeMarkdown(o.CustomerName))
	fmt.Fprintf(&b, "📞 Контакт: %s\n", EscapeMarkdown(o.CustomerContact))
	if o.DeliveryAddress != "" {
		fmt.Fprintf(&b, "📍 Адрес: %s\n", EscapeMarkdown(o.DeliveryAddress))
	}
	fmt.Fprintf(&b, "📅 Доставка: %s\n\n", o.DeliveryDate)

	for _, item := range o.Items {
		fmt.Fprintf(&b, "• %s × %g\n", EscapeMarkdown(item.Name), item.Quantity)
	}

	if o.DiscountAmount > 0 {
		fmt.Fprintf(&b, "\nПромокод %s: -%d RSD\n", EscapeMarkdown(o.PromoCode), o.DiscountAmount)
	}
	fmt.Fprintf(&b, "\n💰 Итого: *%d RSD*", o.TotalPrice)

	if o.Comments != "" {
		fmt.Fprintf(&b, "\n\n💬 %s", EscapeMarkdown(o.Comments))
	}
	return b.String()
}
