package notify

import (
	"encoding/json"
	"fmt"

	"harustay/internal/config"
	"harustay/internal/events"
	"harustay/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// TelegramNotifier pushes reservation events to the host's Telegram chat so
// new requests are seen without watching the admin panel.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *zerolog.Logger
}

func NewTelegramNotifier(cfg config.TelegramConfig, logger *zerolog.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &TelegramNotifier{
		bot:    bot,
		chatID: cfg.AdminChatID,
		logger: logger,
	}, nil
}

// SubscribeTo wires the notifier to every reservation event on the bus.
func (n *TelegramNotifier) SubscribeTo(bus *events.EventBus) {
	for _, eventType := range []string{
		events.EventReservationCreated,
		events.EventReservationConfirmed,
		events.EventReservationCancelled,
		events.EventReservationCompleted,
	} {
		bus.Subscribe(eventType, n.handleEvent)
	}
}

func (n *TelegramNotifier) handleEvent(event *events.Event) error {
	var payload events.ReservationEventPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		n.logger.Error().Err(err).Str("event", event.Type).Msg("failed to decode event payload")
		return err
	}

	text := formatMessage(event.Type, payload)
	if text == "" {
		return nil
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error().Err(err).Str("event", event.Type).Msg("failed to send telegram notification")
		return err
	}
	return nil
}

func formatMessage(eventType string, p events.ReservationEventPayload) string {
	stay := fmt.Sprintf("%s → %s", p.CheckIn.Format(models.DateLayout), p.CheckOut.Format(models.DateLayout))

	switch eventType {
	case events.EventReservationCreated:
		return fmt.Sprintf("🆕 New reservation %s\nRoom: %s\nGuest: %s\nStay: %s\nTotal: ₩%d",
			p.ReservationID, p.RoomName, p.GuestName, stay, p.TotalPrice)
	case events.EventReservationConfirmed:
		return fmt.Sprintf("✅ Reservation %s confirmed\nRoom: %s\nStay: %s",
			p.ReservationID, p.RoomName, stay)
	case events.EventReservationCancelled:
		return fmt.Sprintf("❌ Reservation %s cancelled\nRoom: %s\nGuest: %s\nStay: %s",
			p.ReservationID, p.RoomName, p.GuestName, stay)
	case events.EventReservationCompleted:
		return fmt.Sprintf("🏁 Reservation %s completed\nRoom: %s", p.ReservationID, p.RoomName)
	}
	return ""
}
