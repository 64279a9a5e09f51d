package config

import (
	"fmt"
	"os"

	"LeapsRadar/internal/model"
	"LeapsRadar/internal/signal"
	"LeapsRadar/internal/suggest"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Notifier struct {
		Kind   string `yaml:"kind"` // "github", "telegram", or "email"
		GitHub struct {
			Repo  string `yaml:"repo"`
			Token string `yaml:"token"`
		} `yaml:"github"`
		Telegram struct {
			BotToken string `yaml:"bot_token"`
			ChatID   string `yaml:"chat_id"`
		} `yaml:"telegram"`
		Email struct {
			Host     string   `yaml:"host"`
			Port     int      `yaml:"port"`
			Username string   `yaml:"username"`
			Password string   `yaml:"password"`
			From     string   `yaml:"from"`
			To       []string `yaml:"to"`
		} `yaml:"email"`
	} `yaml:"notifier"`
	DataSource struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"data_source"`
	Scan struct {
		RSIPeriod           int     `yaml:"rsi_period"`
		FetchWeeks          int     `yaml:"fetch_weeks"`
		RSIThreshold        float64 `yaml:"rsi_threshold"`
		ApproachingUpper    float64 `yaml:"approaching_upper"`
		RecoveryThreshold   float64 `yaml:"recovery_threshold"`
		MinDTE              int     `yaml:"min_dte"`
		OTMPercent          float64 `yaml:"otm_percent"`
		RealertCooldownDays int     `yaml:"realert_cooldown_days"`
		Concurrency         int     `yaml:"concurrency"`
	} `yaml:"scan"`
	Schedule struct {
		WeeklyCron string `yaml:"weekly_cron"`
	} `yaml:"schedule"`
	Ledger struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"ledger"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy     string                 `yaml:"proxy"`
	Watchlist []model.WatchlistEntry `yaml:"watchlist"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("NOTIFIER_KIND"); v != "" {
		cfg.Notifier.Kind = v
	}
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		cfg.Notifier.GitHub.Token = v
	}
	if v := os.Getenv("GITHUB_REPOSITORY"); v != "" {
		cfg.Notifier.GitHub.Repo = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Notifier.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Notifier.Telegram.ChatID = v
	}
	if v := os.Getenv("BARSERVER_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("BARSERVER_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_WEEKLY"); v != "" {
		cfg.Schedule.WeeklyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LEDGER_STATE_FILE"); v != "" {
		cfg.Ledger.StateFile = v
	}
	scanFloat := func(env string, dst *float64) {
		if v := os.Getenv(env); v != "" {
			var f float64
			if _, err := fmt.Sscanf(v, "%f", &f); err == nil {
				*dst = f
			}
		}
	}
	scanInt := func(env string, dst *int) {
		if v := os.Getenv(env); v != "" {
			var n int
			if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
				*dst = n
			}
		}
	}
	scanFloat("RSI_THRESHOLD", &cfg.Scan.RSIThreshold)
	scanFloat("APPROACHING_UPPER", &cfg.Scan.ApproachingUpper)
	scanFloat("RECOVERY_THRESHOLD", &cfg.Scan.RecoveryThreshold)
	scanFloat("OTM_PERCENT", &cfg.Scan.OTMPercent)
	scanInt("MIN_DTE", &cfg.Scan.MinDTE)
	scanInt("REALERT_COOLDOWN_DAYS", &cfg.Scan.RealertCooldownDays)

	// Defaults
	if cfg.Notifier.Kind == "" {
		cfg.Notifier.Kind = "github"
	}
	if cfg.Scan.RSIPeriod == 0 {
		cfg.Scan.RSIPeriod = 14
	}
	if cfg.Scan.FetchWeeks == 0 {
		cfg.Scan.FetchWeeks = 56
	}
	if cfg.Scan.RSIThreshold == 0 {
		cfg.Scan.RSIThreshold = 30
	}
	if cfg.Scan.ApproachingUpper == 0 {
		cfg.Scan.ApproachingUpper = 35
	}
	if cfg.Scan.RecoveryThreshold == 0 {
		cfg.Scan.RecoveryThreshold = 40
	}
	if cfg.Scan.MinDTE == 0 {
		cfg.Scan.MinDTE = 360
	}
	if cfg.Scan.OTMPercent == 0 {
		cfg.Scan.OTMPercent = 10
	}
	if cfg.Scan.RealertCooldownDays == 0 {
		cfg.Scan.RealertCooldownDays = 7
	}
	if cfg.Scan.Concurrency == 0 {
		cfg.Scan.Concurrency = 4
	}
	if cfg.Schedule.WeeklyCron == "" {
		// Monday 14:00 UTC, after the weekly bar has closed
		cfg.Schedule.WeeklyCron = "0 0 14 * * 1"
	}
	if cfg.Ledger.StateFile == "" {
		cfg.Ledger.StateFile = "data/alert_ledger.json"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/leaps_radar.db"
	}
	if len(cfg.Watchlist) == 0 {
		cfg.Watchlist = DefaultWatchlist()
	}

	return cfg, nil
}

// Validate checks that all required fields are set and the bands are ordered.
func (c *Config) Validate() error {
	switch c.Notifier.Kind {
	case "github":
		if c.Notifier.GitHub.Repo == "" || c.Notifier.GitHub.Token == "" {
			return fmt.Errorf("notifier.github.repo and notifier.github.token are required")
		}
	case "telegram":
		if c.Notifier.Telegram.BotToken == "" || c.Notifier.Telegram.ChatID == "" {
			return fmt.Errorf("notifier.telegram.bot_token and notifier.telegram.chat_id are required")
		}
	case "email":
		if c.Notifier.Email.Host == "" || c.Notifier.Email.From == "" || len(c.Notifier.Email.To) == 0 {
			return fmt.Errorf("notifier.email.host, from, and to are required")
		}
	default:
		return fmt.Errorf("notifier.kind must be github, telegram, or email, got %q", c.Notifier.Kind)
	}
	if c.Scan.RSIThreshold >= c.Scan.ApproachingUpper {
		return fmt.Errorf("scan.rsi_threshold must be below scan.approaching_upper")
	}
	if c.Scan.ApproachingUpper > c.Scan.RecoveryThreshold {
		return fmt.Errorf("scan.approaching_upper must not exceed scan.recovery_threshold")
	}
	if c.Scan.RealertCooldownDays < 1 {
		return fmt.Errorf("scan.realert_cooldown_days must be at least 1")
	}
	if len(c.Watchlist) == 0 {
		return fmt.Errorf("watchlist must not be empty")
	}
	return nil
}

// Thresholds returns the classifier bands configured for this deployment.
func (c *Config) Thresholds() signal.Thresholds {
	return signal.Thresholds{
		Oversold:         c.Scan.RSIThreshold,
		ApproachingUpper: c.Scan.ApproachingUpper,
		Recovery:         c.Scan.RecoveryThreshold,
	}
}

// SuggestionParams returns the trade-suggestion knobs.
func (c *Config) SuggestionParams() suggest.Params {
	return suggest.Params{
		OTMPercent: c.Scan.OTMPercent,
		MinDTE:     c.Scan.MinDTE,
	}
}
