package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Environment
	IsProd bool `json:"is_prod"`

	// Discord
	Discord DiscordConfig `json:"discord"`

	// Telegram
	Telegram TelegramConfig `json:"telegram"`

	// Market fetching
	Markets MarketsConfig `json:"markets"`

	// Dashboard view defaults
	Dashboard DashboardConfig `json:"dashboard"`

	// Polymarket API
	Polymarket PolymarketConfig `json:"polymarket"`

	// View server (renderer boundary)
	ViewServer ViewServerConfig `json:"view_server"`
}

// DiscordConfig holds Discord-related configuration.
type DiscordConfig struct {
	BotToken      string `json:"-"` // Excluded - env var only
	ProdChannelID string `json:"prod_channel_id"`
	BetaChannelID string `json:"beta_channel_id"`
}

// TelegramConfig holds Telegram-related configuration.
type TelegramConfig struct {
	BotToken   string `json:"-"` // Excluded - env var only
	ProdChatID string `json:"prod_chat_id"`
	BetaChatID string `json:"beta_chat_id"`
}

// MarketsConfig holds market fetching configuration.
type MarketsConfig struct {
	PageLimit       int           `json:"page_limit"`       // Markets requested per aggregator query
	RefreshInterval time.Duration `json:"refresh_interval"` // How often the market set is rebuilt
	TagSlugs        []string      `json:"tag_slugs"`        // Tag-scoped aggregator queries (an untagged query always runs first)
}

// DashboardConfig holds initial filter-state defaults for the dashboard view.
type DashboardConfig struct {
	DefaultThreshold int `json:"default_threshold"` // Minimum probability (0-100) shown at startup
}

// PolymarketConfig holds Polymarket API configuration.
type PolymarketConfig struct {
	GammaAPIURL string `json:"gamma_api_url"`
}

// ViewServerConfig holds view server configuration.
type ViewServerConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}

// Clone creates a deep copy of the config.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	if c.Markets.TagSlugs != nil {
		clone.Markets.TagSlugs = make([]string, len(c.Markets.TagSlugs))
		copy(clone.Markets.TagSlugs, c.Markets.TagSlugs)
	}
	return &clone
}

// Defaults returns a config with hardcoded default values.
func Defaults() *Config {
	return &Config{
		IsProd:   false,
		Discord:  DiscordConfig{},
		Telegram: TelegramConfig{},
		Markets: MarketsConfig{
			PageLimit:       100,
			RefreshInterval: 1 * time.Minute,
			TagSlugs:        []string{"politics", "finance", "economics", "crypto"},
		},
		Dashboard: DashboardConfig{
			DefaultThreshold: 70,
		},
		Polymarket: PolymarketConfig{
			GammaAPIURL: "https://gamma-api.polymarket.com",
		},
		ViewServer: ViewServerConfig{
			Enabled: true,
			Port:    8080,
		},
	}
}

// Load loads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		IsProd: envBool("STAGE", "PROD"),

		Discord: DiscordConfig{
			BotToken:      envString("DISCORD_BOT_TOKEN", ""),
			ProdChannelID: envString("DISCORD_PROD_CHANNEL_ID", ""),
			BetaChannelID: envString("DISCORD_BETA_CHANNEL_ID", ""),
		},

		Telegram: TelegramConfig{
			BotToken:   envString("TELEGRAM_BOT_KEY", ""),
			ProdChatID: envString("TELEGRAM_PROD_CHAT_ID", ""),
			BetaChatID: envString("TELEGRAM_BETA_CHAT_ID", ""),
		},

		Markets: MarketsConfig{
			PageLimit:       envInt("MARKET_PAGE_LIMIT", 100),
			RefreshInterval: envDuration("MARKET_REFRESH_INTERVAL", 1*time.Minute),
			TagSlugs:        envStringSliceDefault("MARKET_TAG_SLUGS", []string{"politics", "finance", "economics", "crypto"}),
		},

		Dashboard: DashboardConfig{
			DefaultThreshold: envInt("DASHBOARD_DEFAULT_THRESHOLD", 70),
		},

		Polymarket: PolymarketConfig{
			GammaAPIURL: envString("POLYMARKET_GAMMA_API_URL", "https://gamma-api.polymarket.com"),
		},

		ViewServer: ViewServerConfig{
			Enabled: envBoolDefault("VIEW_SERVER_ENABLED", true),
			Port:    envInt("VIEW_SERVER_PORT", 8080),
		},
	}
}

// Helper functions for parsing environment variables

func envString(key, defaultVal string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func envBool(key, trueValue string) bool {
	return strings.EqualFold(strings.TrimSpace(os.Getenv(key)), trueValue)
}

func envBoolDefault(key string, defaultVal bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultVal
	}
	return strings.EqualFold(v, "true") || strings.EqualFold(v, "1") || strings.EqualFold(v, "yes")
}

func envStringSliceDefault(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	parts := strings.Split(val, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
