// Package notify implements driver notification over Telegram, plus a
// recording variant used when no bot token is configured.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
)

const telegramAPIBase = "https://api.telegram.org"

var numericChatID = regexp.MustCompile(`^\d+$`)

// TelegramNotifier sends assignment and review messages through the
// Telegram Bot API. Sends are best effort: errors are returned to the
// caller, which records the outcome and moves on.
type TelegramNotifier struct {
	token   string
	apiBase string
	client  *http.Client
	logger  *slog.Logger
}

// NewTelegramNotifier creates a notifier for the given bot token.
func NewTelegramNotifier(token string, logger *slog.Logger) *TelegramNotifier {
	return newTelegramNotifier(token, telegramAPIBase, &http.Client{Timeout: 10 * time.Second}, logger)
}

func newTelegramNotifier(token, apiBase string, client *http.Client, logger *slog.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		token:   token,
		apiBase: apiBase,
		client:  client,
		logger:  logger.With("component", "telegram_notifier"),
	}
}

// NotifyAssignment sends the assignment details to the driver's chat.
func (n *TelegramNotifier) NotifyAssignment(ctx context.Context, d *driver.Driver,
	o *order.Order, distanceKm float64) error {
	message := fmt.Sprintf(`🚗 *New Delivery Assignment*

📦 *Order:* %s
🏪 *Restaurant:* %s
🏠 *Delivery:* %s
💰 *Amount:* $%s
📏 *Distance:* %.2f km`,
		o.OrderNumber(), o.RestaurantName(), o.DeliveryAddress(), o.Amount(), distanceKm)

	return n.sendMessage(ctx, d.ChatID(), message)
}

// NotifyReviewOutcome tells the driver whether onboarding was approved.
func (n *TelegramNotifier) NotifyReviewOutcome(ctx context.Context, d *driver.Driver, approved bool) error {
	var message string
	if approved {
		message = fmt.Sprintf("✅ *Welcome aboard, %s!*\n\nYour registration was approved. "+
			"Go online to start receiving delivery assignments.", d.Name())
	} else {
		message = fmt.Sprintf("❌ *Sorry, %s.*\n\nYour registration was not approved. "+
			"Contact support if you believe this is a mistake.", d.Name())
	}

	return n.sendMessage(ctx, d.ChatID(), message)
}

// normalizeChatID maps the stored contact handle to what the Bot API
// expects: numeric chat ids go through untouched, usernames get an "@".
func normalizeChatID(chatID string) string {
	if numericChatID.MatchString(chatID) {
		return chatID
	}
	if len(chatID) > 0 && chatID[0] == '@' {
		return chatID
	}
	return "@" + chatID
}

func (n *TelegramNotifier) sendMessage(ctx context.Context, chatID, text string) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id":    normalizeChatID(chatID),
		"text":       text,
		"parse_mode": "Markdown",
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram send failed: status %d: %s", resp.StatusCode, body)
	}

	n.logger.Debug("message delivered", "chatId", chatID)
	return nil
}
