package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/foodikal/ny-backend/internal/config"
	"github.com/foodikal/ny-backend/internal/domain"
)

func TestEscapeMarkdown(t *testing.T) {
	got := EscapeMarkdown("ООО _Ёлка_ *срочно* [тест] `x`")
	want := "ООО \\_Ёлка\\_ \\*срочно\\* \\[тест] \\`x\\`"
	if got != want {
		t.Errorf("EscapeMarkdown = %q, want %q", got, want)
	}
}

func TestSendPostsToBotAPI(t *testing.T) {
	var gotPath string
	var gotReq sendMessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(sendMessageResponse{OK: true})
	}))
	defer srv.Close()

	tg := NewTelegram(config.TelegramConfig{BotToken: "token123", ChatID: "-100", Environment: "production"})
	tg.baseURL = srv.URL

	if err := tg.Send(t.Context(), "привет"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotPath != "/bottoken123/sendMessage" {
		t.Errorf("request path = %q", gotPath)
	}
	if gotReq.ChatID != "-100" || gotReq.Text != "привет" || gotReq.ParseMode != "Markdown" {
		t.Errorf("request payload = %+v", gotReq)
	}
}

func TestSendSurfacesAPIRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sendMessageResponse{OK: false, Description: "chat not found"})
	}))
	defer srv.Close()

	tg := NewTelegram(config.TelegramConfig{BotToken: "t", ChatID: "c"})
	tg.baseURL = srv.URL

	err := tg.Send(t.Context(), "x")
	if err == nil || !strings.Contains(err.Error(), "chat not found") {
		t.Errorf("Send error = %v, want api description surfaced", err)
	}
}

func TestSendDisabledIsNoop(t *testing.T) {
	tg := NewTelegram(config.TelegramConfig{})
	if tg.Enabled() {
		t.Fatal("client without credentials reports enabled")
	}
	if err := tg.Send(t.Context(), "x"); err != nil {
		t.Errorf("disabled Send returned error: %v", err)
	}
}

func TestFormatOrderMessage(t *testing.T) {
	tg := NewTelegram(config.TelegramConfig{BotToken: "t", ChatID: "c", Environment: "staging"})
	msg := tg.FormatOrderMessage(&domain.Order{
		ID:              7,
		CustomerName:    "ООО _Ёлка_",
		CustomerContact: "+381601234567",
		DeliveryDate:    "2025-12-25",
		Items:           []domain.OrderItem{{Name: "Канапе с сыром", Quantity: 12}},
		PromoCode:       "NY2026",
		DiscountAmount:  250,
		TotalPrice:      4750,
	})

	for _, want := range []string{
		"[STAGING]",
		"Новый заказ #7",
		"ООО \\_Ёлка\\_",
		"Канапе с сыром × 12",
		"NY2026: -250 RSD",
		"*4750 RSD*",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}
