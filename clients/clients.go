package clients

import (
	"polydash/clients/discord"
	"polydash/clients/gammaapi"
	"polydash/clients/notifier"
	"polydash/clients/telegram"
	"polydash/config"

	"go.uber.org/zap"
)

type Clients struct {
	Logger *zap.Logger

	Discord  *discord.DiscordClient
	Telegram *telegram.TelegramClient
	Notifier notifier.Notifier // Combined notifier for all channels
	Gamma    *gammaapi.GammaApiClient
}

func NewClients(logger *zap.Logger, cfg *config.Config) *Clients {
	discordClient := discord.NewDiscordClient(logger, cfg)
	telegramClient := telegram.NewTelegramClient(logger, cfg)

	// Create combined notifier for all channels
	multiNotifier := notifier.NewMultiNotifier(discordClient, telegramClient)

	return &Clients{
		Logger:   logger,
		Discord:  discordClient,
		Telegram: telegramClient,
		Notifier: multiNotifier,
		Gamma:    gammaapi.NewGammaApiClient(logger, cfg),
	}
}
