package discord

import (
	"fmt"
	"polydash/clients/notifier"
	"polydash/config"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// DiscordClient sends status alerts to Discord.
// Implements notifier.Notifier interface.
type DiscordClient struct {
	logger    *zap.Logger
	session   *discordgo.Session
	channelID string
	isProd    bool
}

func NewDiscordClient(logger *zap.Logger, cfg *config.Config) *DiscordClient {
	if logger == nil {
		logger = zap.NewNop()
	}

	channelID := cfg.Discord.BetaChannelID
	if cfg.IsProd {
		channelID = cfg.Discord.ProdChannelID
	}

	token := cfg.Discord.BotToken
	if token == "" {
		logger.Warn("DISCORD_BOT_TOKEN not set, Discord alerts disabled")
		return &DiscordClient{
			logger:    logger,
			channelID: channelID,
			isProd:    cfg.IsProd,
		}
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		logger.Error("failed to create discord session", zap.Error(err))
		return &DiscordClient{
			logger:    logger,
			channelID: channelID,
			isProd:    cfg.IsProd,
		}
	}

	logger.Info("discord bot initialized",
		zap.Bool("isProd", cfg.IsProd),
		zap.String("channelID", channelID),
	)

	return &DiscordClient{
		logger:    logger,
		session:   session,
		channelID: channelID,
		isProd:    cfg.IsProd,
	}
}

// SendStatusAlert sends a rich embedded status alert.
// Implements notifier.Notifier interface.
func (dc *DiscordClient) SendStatusAlert(alert notifier.StatusAlert) {
	if dc.session == nil {
		dc.logger.Warn("discord session not initialized, skipping alert")
		return
	}

	embed := dc.buildStatusEmbed(alert)

	_, err := dc.session.ChannelMessageSendEmbed(dc.channelID, embed)
	if err != nil {
		dc.logger.Error("failed to send discord embed", zap.Error(err))
		return
	}

	dc.logger.Info("sent discord status alert",
		zap.String("severity", string(alert.Severity)),
	)
}

func (dc *DiscordClient) buildStatusEmbed(alert notifier.StatusAlert) *discordgo.MessageEmbed {
	color := 0xE74C3C // Red for errors
	title := "🔴 Market refresh failed"
	if alert.Severity == notifier.SeverityRecovered {
		color = 0x2ECC71 // Green for recovery
		title = "🟢 Market refresh recovered"
	}

	servedStr := fmt.Sprintf("%d markets", alert.MarketCount)
	if alert.Stale {
		servedStr += " (stale)"
	}

	fields := []*discordgo.MessageEmbedField{
		{
			Name:   "Queries",
			Value:  fmt.Sprintf("%d/%d failed", alert.FailedQueries, alert.TotalQueries),
			Inline: true,
		},
		{
			Name:   "Serving",
			Value:  servedStr,
			Inline: true,
		},
	}

	ts := alert.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	pst, _ := time.LoadLocation("America/Los_Angeles")
	footerText := fmt.Sprintf("polydash * %s", ts.In(pst).Format("1/2/2006, 3:04:05PM (MST)"))

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: alert.Message,
		Color:       color,
		Fields:      fields,
		Footer: &discordgo.MessageEmbedFooter{
			Text: footerText,
		},
		Timestamp: ts.Format(time.RFC3339),
	}
}

// Close closes the Discord session. Implements notifier.Notifier interface.
func (dc *DiscordClient) Close() error {
	if dc.session == nil {
		return nil
	}
	return dc.session.Close()
}
