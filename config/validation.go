package config

import (
	"time"
)

// ValidationError represents a validation error for a specific field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of config validation.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// Validate checks the config for invalid values.
func (c *Config) Validate() ValidationResult {
	var errors []ValidationError

	errors = append(errors, validateMarkets(&c.Markets)...)
	errors = append(errors, validateDashboard(&c.Dashboard)...)
	errors = append(errors, validatePolymarket(&c.Polymarket)...)
	errors = append(errors, validateViewServer(&c.ViewServer)...)

	return ValidationResult{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}

func validateMarkets(m *MarketsConfig) []ValidationError {
	var errors []ValidationError

	if m.PageLimit < 1 {
		errors = append(errors, ValidationError{
			Field:   "markets.page_limit",
			Message: "must be at least 1",
		})
	}

	if m.RefreshInterval < 5*time.Second {
		errors = append(errors, ValidationError{
			Field:   "markets.refresh_interval",
			Message: "must be at least 5 seconds",
		})
	}

	return errors
}

func validateDashboard(d *DashboardConfig) []ValidationError {
	var errors []ValidationError

	if d.DefaultThreshold < 0 || d.DefaultThreshold > 100 {
		errors = append(errors, ValidationError{
			Field:   "dashboard.default_threshold",
			Message: "must be between 0 and 100",
		})
	}

	return errors
}

func validatePolymarket(p *PolymarketConfig) []ValidationError {
	var errors []ValidationError

	if p.GammaAPIURL == "" {
		errors = append(errors, ValidationError{
			Field:   "polymarket.gamma_api_url",
			Message: "must not be empty",
		})
	}

	return errors
}

func validateViewServer(v *ViewServerConfig) []ValidationError {
	var errors []ValidationError

	if v.Enabled && (v.Port < 1 || v.Port > 65535) {
		errors = append(errors, ValidationError{
			Field:   "view_server.port",
			Message: "must be a valid port number",
		})
	}

	return errors
}
