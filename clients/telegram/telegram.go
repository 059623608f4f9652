package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"polydash/clients/notifier"
	"polydash/config"
	"strings"
	"time"

	"go.uber.org/zap"
)

const telegramAPIURL = "https://api.telegram.org/bot%s/%s"

// TelegramClient sends status alerts to Telegram.
// Implements notifier.Notifier interface.
type TelegramClient struct {
	logger   *zap.Logger
	botToken string
	chatID   string
	isProd   bool
	client   *http.Client
}

func NewTelegramClient(logger *zap.Logger, cfg *config.Config) *TelegramClient {
	if logger == nil {
		logger = zap.NewNop()
	}

	chatID := cfg.Telegram.BetaChatID
	if cfg.IsProd {
		chatID = cfg.Telegram.ProdChatID
	}

	token := cfg.Telegram.BotToken
	if token == "" {
		logger.Warn("TELEGRAM_BOT_KEY not set, Telegram alerts disabled")
		return &TelegramClient{
			logger: logger,
			chatID: chatID,
			isProd: cfg.IsProd,
		}
	}

	logger.Info("telegram bot initialized",
		zap.Bool("isProd", cfg.IsProd),
		zap.String("chatID", chatID),
	)

	return &TelegramClient{
		logger:   logger,
		botToken: token,
		chatID:   chatID,
		isProd:   cfg.IsProd,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// SendStatusAlert sends a status alert notification.
// Implements notifier.Notifier interface.
func (tc *TelegramClient) SendStatusAlert(alert notifier.StatusAlert) {
	if tc.botToken == "" || tc.chatID == "" {
		tc.logger.Warn("telegram not configured, skipping alert")
		return
	}

	message := tc.buildStatusMessage(alert)

	if err := tc.sendMessage(message); err != nil {
		tc.logger.Error("failed to send telegram message", zap.Error(err))
		return
	}

	tc.logger.Info("sent telegram status alert",
		zap.String("severity", string(alert.Severity)),
	)
}

func (tc *TelegramClient) buildStatusMessage(alert notifier.StatusAlert) string {
	var sb strings.Builder

	title := "🔴 Market refresh failed"
	if alert.Severity == notifier.SeverityRecovered {
		title = "🟢 Market refresh recovered"
	}
	sb.WriteString(fmt.Sprintf("*%s*\n\n", escapeMarkdown(title)))

	if alert.Message != "" {
		sb.WriteString(fmt.Sprintf("%s\n\n", escapeMarkdown(alert.Message)))
	}

	sb.WriteString(fmt.Sprintf("*Queries:* %d/%d failed\n", alert.FailedQueries, alert.TotalQueries))
	servedStr := fmt.Sprintf("%d markets", alert.MarketCount)
	if alert.Stale {
		servedStr += " (stale)"
	}
	sb.WriteString(fmt.Sprintf("*Serving:* %s\n", escapeMarkdown(servedStr)))

	ts := alert.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	pst, _ := time.LoadLocation("America/Los_Angeles")
	sb.WriteString(fmt.Sprintf("\n_polydash • %s_", ts.In(pst).Format("1/2/2006, 3:04:05PM (MST)")))

	return sb.String()
}

func (tc *TelegramClient) sendMessage(text string) error {
	url := fmt.Sprintf(telegramAPIURL, tc.botToken, "sendMessage")

	payload := map[string]interface{}{
		"chat_id":    tc.chatID,
		"text":       text,
		"parse_mode": "Markdown",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	resp, err := tc.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}

	return nil
}

// Close cleans up resources. Implements notifier.Notifier interface.
func (tc *TelegramClient) Close() error {
	return nil
}

// escapeMarkdown escapes special characters for Telegram Markdown.
func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
