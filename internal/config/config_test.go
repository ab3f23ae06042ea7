package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_USER_ID", "42")
	t.Setenv("CHANNEL_ID", "-1001234567890")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg := Load()

	if got := strings.Join(cfg.Sources, ","); got != "slavelabour,forhire,Jobs4Bitcoins,taskrabbit" {
		t.Errorf("unexpected default sources: %s", got)
	}
	if got := strings.Join(cfg.Keywords, ","); got != "task,micro job,hiring,help needed,small job" {
		t.Errorf("unexpected default keywords: %s", got)
	}
	if cfg.PollInterval != 10*time.Minute {
		t.Errorf("PollInterval = %v", cfg.PollInterval)
	}
	if cfg.FetchLimit != 10 || cfg.BodyMaxChars != 500 {
		t.Errorf("FetchLimit = %d, BodyMaxChars = %d", cfg.FetchLimit, cfg.BodyMaxChars)
	}
	if cfg.SourceLang != "en" || cfg.DestLang != "vi" {
		t.Errorf("languages = %s → %s", cfg.SourceLang, cfg.DestLang)
	}
	if cfg.SeenTTL != 0 {
		t.Errorf("expected seen TTL disabled by default, got %v", cfg.SeenTTL)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %s", cfg.Port)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SOURCES", "slavelabour, forhire")
	t.Setenv("KEYWORDS", "gig,việc nhỏ")
	t.Setenv("POLL_INTERVAL", "5m")
	t.Setenv("FETCH_LIMIT", "25")
	t.Setenv("SEEN_TTL", "72h")
	t.Setenv("RUN_ON_START", "false")

	cfg := Load()

	if len(cfg.Sources) != 2 || cfg.Sources[1] != "forhire" {
		t.Errorf("Sources = %v", cfg.Sources)
	}
	if len(cfg.Keywords) != 2 || cfg.Keywords[1] != "việc nhỏ" {
		t.Errorf("Keywords = %v", cfg.Keywords)
	}
	if cfg.PollInterval != 5*time.Minute {
		t.Errorf("PollInterval = %v", cfg.PollInterval)
	}
	if cfg.FetchLimit != 25 {
		t.Errorf("FetchLimit = %d", cfg.FetchLimit)
	}
	if cfg.SeenTTL != 72*time.Hour {
		t.Errorf("SeenTTL = %v", cfg.SeenTTL)
	}
	if cfg.RunOnStart {
		t.Error("expected RunOnStart disabled")
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FETCH_LIMIT", "lots")
	t.Setenv("POLL_INTERVAL", "soon")

	cfg := Load()

	if cfg.FetchLimit != 10 {
		t.Errorf("expected default fetch limit, got %d", cfg.FetchLimit)
	}
	if cfg.PollInterval != 10*time.Minute {
		t.Errorf("expected default poll interval, got %v", cfg.PollInterval)
	}
}

func TestValidateMissingRequired(t *testing.T) {
	cfg := &Config{
		Sources:          []string{"slavelabour"},
		Keywords:         []string{"task"},
		PollInterval:     time.Minute,
		FetchLimit:       10,
		BodyMaxChars:     500,
		SourceBaseURL:    "https://www.reddit.com",
		FetchTimeout:     time.Second,
		TranslateURL:     "https://translate.googleapis.com/translate_a/single",
		SourceLang:       "en",
		DestLang:         "vi",
		TranslateTimeout: time.Second,
		Port:             "8080",
		HTTPTimeout:      time.Second,
		ShutdownTimeout:  time.Second,
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error without Telegram settings")
	}
	for _, field := range []string{"TelegramToken", "AdminUserID", "ChannelID"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("expected %s in error, got %v", field, err)
		}
	}
}

func TestValidateBadURL(t *testing.T) {
	cfg := &Config{
		TelegramToken:    "123:abc",
		AdminUserID:      42,
		ChannelID:        -100,
		Sources:          []string{"slavelabour"},
		Keywords:         []string{"task"},
		PollInterval:     time.Minute,
		FetchLimit:       10,
		BodyMaxChars:     500,
		SourceBaseURL:    "not a url",
		FetchTimeout:     time.Second,
		TranslateURL:     "https://translate.googleapis.com/translate_a/single",
		SourceLang:       "en",
		DestLang:         "vi",
		TranslateTimeout: time.Second,
		Port:             "8080",
		HTTPTimeout:      time.Second,
		ShutdownTimeout:  time.Second,
	}

	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "SourceBaseURL") {
		t.Errorf("expected SourceBaseURL validation error, got %v", err)
	}
}
