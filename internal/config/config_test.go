package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load with missing file should use defaults: %v", err)
	}
	if cfg.Scan.RSIPeriod != 14 {
		t.Errorf("default rsi_period: got %d", cfg.Scan.RSIPeriod)
	}
	if cfg.Scan.RSIThreshold != 30 || cfg.Scan.ApproachingUpper != 35 || cfg.Scan.RecoveryThreshold != 40 {
		t.Errorf("default thresholds: got %.0f/%.0f/%.0f",
			cfg.Scan.RSIThreshold, cfg.Scan.ApproachingUpper, cfg.Scan.RecoveryThreshold)
	}
	if cfg.Scan.MinDTE != 360 || cfg.Scan.OTMPercent != 10 {
		t.Errorf("default suggestion knobs: got %d/%.0f", cfg.Scan.MinDTE, cfg.Scan.OTMPercent)
	}
	if cfg.Scan.RealertCooldownDays != 7 {
		t.Errorf("default cooldown: got %d", cfg.Scan.RealertCooldownDays)
	}
	if cfg.Schedule.WeeklyCron != "0 0 14 * * 1" {
		t.Errorf("default cron: got %q", cfg.Schedule.WeeklyCron)
	}
	if len(cfg.Watchlist) == 0 {
		t.Error("default watchlist should not be empty")
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, `
notifier:
  kind: telegram
  telegram:
    bot_token: tok123
    chat_id: "42"
scan:
  rsi_threshold: 25
  realert_cooldown_days: 14
watchlist:
  - ticker: AAPL
    tier: mega-cap
  - ticker: NVDA
    tier: semis
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Notifier.Kind != "telegram" || cfg.Notifier.Telegram.BotToken != "tok123" {
		t.Errorf("notifier not parsed: %+v", cfg.Notifier)
	}
	if cfg.Scan.RSIThreshold != 25 {
		t.Errorf("rsi_threshold: got %.0f", cfg.Scan.RSIThreshold)
	}
	if cfg.Scan.RealertCooldownDays != 14 {
		t.Errorf("cooldown: got %d", cfg.Scan.RealertCooldownDays)
	}
	// Unset fields still fall back to defaults.
	if cfg.Scan.ApproachingUpper != 35 {
		t.Errorf("approaching_upper default: got %.0f", cfg.Scan.ApproachingUpper)
	}
	if len(cfg.Watchlist) != 2 || cfg.Watchlist[0].Ticker != "AAPL" {
		t.Errorf("watchlist not parsed: %+v", cfg.Watchlist)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
notifier:
  kind: github
  github:
    repo: user/repo
    token: filetoken
`)
	t.Setenv("GITHUB_TOKEN", "envtoken")
	t.Setenv("RSI_THRESHOLD", "28.5")
	t.Setenv("REALERT_COOLDOWN_DAYS", "10")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Notifier.GitHub.Token != "envtoken" {
		t.Errorf("env should override file token, got %q", cfg.Notifier.GitHub.Token)
	}
	if cfg.Scan.RSIThreshold != 28.5 {
		t.Errorf("RSI_THRESHOLD override: got %.1f", cfg.Scan.RSIThreshold)
	}
	if cfg.Scan.RealertCooldownDays != 10 {
		t.Errorf("REALERT_COOLDOWN_DAYS override: got %d", cfg.Scan.RealertCooldownDays)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		cfg.Notifier.GitHub.Repo = "user/repo"
		cfg.Notifier.GitHub.Token = "tok"
		return cfg
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("baseline config should validate: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"github without token", func(c *Config) { c.Notifier.GitHub.Token = "" }},
		{"unknown notifier kind", func(c *Config) { c.Notifier.Kind = "pager" }},
		{"telegram without chat id", func(c *Config) {
			c.Notifier.Kind = "telegram"
			c.Notifier.Telegram.BotToken = "tok"
		}},
		{"oversold above approaching", func(c *Config) { c.Scan.RSIThreshold = 36 }},
		{"approaching above recovery", func(c *Config) { c.Scan.ApproachingUpper = 45 }},
		{"zero cooldown", func(c *Config) { c.Scan.RealertCooldownDays = 0 }},
		{"empty watchlist", func(c *Config) { c.Watchlist = nil }},
	}
	for _, tt := range tests {
		cfg := valid()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestThresholdAccessors(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	th := cfg.Thresholds()
	if th.Oversold != 30 || th.ApproachingUpper != 35 || th.Recovery != 40 {
		t.Errorf("unexpected thresholds: %+v", th)
	}
	p := cfg.SuggestionParams()
	if p.OTMPercent != 10 || p.MinDTE != 360 {
		t.Errorf("unexpected suggestion params: %+v", p)
	}
}
