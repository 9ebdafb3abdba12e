package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sadopc/vital/internal/reminder"
)

const telegramAPIBase = "https://api.telegram.org"

// Telegram pushes reminder events to a Telegram chat through the Bot API.
// Delivery is best-effort: failures are logged and swallowed.
type Telegram struct {
	token   string
	chatID  string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewTelegram builds a notifier for the given bot token and chat id.
func NewTelegram(token, chatID string, logger *slog.Logger) *Telegram {
	if logger == nil {
		logger = slog.Default()
	}
	return &Telegram{
		token:   token,
		chatID:  chatID,
		baseURL: telegramAPIBase,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

// Configured reports whether both token and chat id are set.
func (t *Telegram) Configured() bool {
	return t.token != "" && t.chatID != ""
}

func (t *Telegram) Handle(ev reminder.Event) {
	if !t.Configured() {
		return
	}
	if err := t.sendMessage(formatMessage(ev)); err != nil {
		t.logger.Error("telegram send", "kind", ev.Kind, "err", err)
	}
}

func (t *Telegram) sendMessage(text string) error {
	body, err := json.Marshal(map[string]string{
		"chat_id":    t.chatID,
		"text":       text,
		"parse_mode": "HTML",
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)
	resp, err := t.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram api status %d", resp.StatusCode)
	}
	return nil
}

func formatMessage(ev reminder.Event) string {
	switch ev.Kind {
	case reminder.EventWaterReminder:
		return fmt.Sprintf(
			"💧 <b>Water reminder</b>\n\n%s\nProgress today: <b>%s%%</b>",
			ev.Description, ev.Payload[reminder.PayloadProgressPct],
		)
	case reminder.EventBreakReminder:
		return fmt.Sprintf(
			"⏰ <b>Break reminder</b>\n\n%s\nSessions completed: <b>%s</b>",
			ev.Description, ev.Payload[reminder.PayloadSessions],
		)
	case reminder.EventAchievement:
		return fmt.Sprintf("🏆 <b>Achievement!</b>\n\n%s", ev.Description)
	default:
		return ev.Description
	}
}
