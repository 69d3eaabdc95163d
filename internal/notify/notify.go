// Package notify tells the operator about new leads.
package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/surplus-deals/internal/model"
	"github.com/fairyhunter13/surplus-deals/internal/pricing"
)

// Noop discards notifications. Used when Telegram is not configured.
type Noop struct{}

// LeadCreated does nothing.
func (Noop) LeadCreated(ctx context.Context, lead model.Lead, deal model.Deal) error {
	return nil
}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts a message to an operator chat for every lead.
type Telegram struct {
	api    sender
	chatID int64
}

// NewTelegram authorises the bot token against the Telegram API.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token is empty")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}
	bot.Debug = false
	log.Info().Str("bot", bot.Self.UserName).Int64("chat_id", chatID).Msg("telegram notifier authorised")
	return &Telegram{api: bot, chatID: chatID}, nil
}

// LeadCreated sends the lead summary to the operator chat.
func (t *Telegram) LeadCreated(ctx context.Context, lead model.Lead, deal model.Deal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(t.chatID, FormatLead(lead, deal))
	msg.DisableWebPagePreview = true
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

// FormatLead renders a lead as a short chat message.
func FormatLead(lead model.Lead, deal model.Deal) string {
	return fmt.Sprintf("New lead: %s at %s (%s)\nPrice ₹%s, %d left\nRevenue ₹%s",
		lead.Item, lead.Shop, deal.Location,
		pricing.Format(deal.NewPrice), deal.Quantity,
		pricing.Format(lead.Revenue))
}
