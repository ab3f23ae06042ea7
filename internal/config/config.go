package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application. Everything the
// pipeline and the command surfaces need is resolved once at startup.
type Config struct {
	Env string `json:"env"`

	// Telegram
	TelegramToken string `json:"-" validate:"required"`
	AdminUserID   int64  `json:"admin_user_id" validate:"required"`
	ChannelID     int64  `json:"channel_id" validate:"required"`

	// Ingestion
	Sources      []string      `json:"sources" validate:"min=1"`
	Keywords     []string      `json:"keywords" validate:"min=1"`
	PollInterval time.Duration `json:"poll_interval" validate:"gt=0"`
	FetchLimit   int           `json:"fetch_limit" validate:"gt=0"`
	BodyMaxChars int           `json:"body_max_chars" validate:"gt=0"`
	RunOnStart   bool          `json:"run_on_start"`

	// Source connector
	SourceBaseURL string        `json:"source_base_url" validate:"required,url"`
	FetchTimeout  time.Duration `json:"fetch_timeout" validate:"gt=0"`

	// Translation
	TranslateURL     string        `json:"translate_url" validate:"required,url"`
	SourceLang       string        `json:"source_lang" validate:"required"`
	DestLang         string        `json:"dest_lang" validate:"required"`
	TranslateTimeout time.Duration `json:"translate_timeout" validate:"gt=0"`

	// Dedup store. Empty RedisURL keeps the seen-set in memory. SeenTTL of
	// zero means IDs are never evicted, matching the reference behavior.
	RedisURL string        `json:"redis_url"`
	SeenTTL  time.Duration `json:"seen_ttl"`

	// CloudFlare R2 archive of published posts (optional)
	R2Endpoint  string `json:"r2_endpoint"`
	R2AccessKey string `json:"-"`
	R2SecretKey string `json:"-"`
	R2Bucket    string `json:"r2_bucket"`

	// Admin HTTP API
	Port            string        `json:"port" validate:"required"`
	AdminAPIKey     string        `json:"-"`
	HTTPTimeout     time.Duration `json:"http_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" validate:"gt=0"`

	// Logging
	LogLevel string `json:"log_level"`
}

// Load reads configuration from environment variables and validates it.
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := &Config{
		Env: getEnv("APP_ENV", "development"),

		TelegramToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		AdminUserID:   getEnvAsInt64("ADMIN_USER_ID", 0),
		ChannelID:     getEnvAsInt64("CHANNEL_ID", 0),

		Sources:      getEnvAsSlice("SOURCES", []string{"slavelabour", "forhire", "Jobs4Bitcoins", "taskrabbit"}),
		Keywords:     getEnvAsSlice("KEYWORDS", []string{"task", "micro job", "hiring", "help needed", "small job"}),
		PollInterval: getEnvAsDuration("POLL_INTERVAL", 10*time.Minute),
		FetchLimit:   getEnvAsInt("FETCH_LIMIT", 10),
		BodyMaxChars: getEnvAsInt("BODY_MAX_CHARS", 500),
		RunOnStart:   getEnvAsBool("RUN_ON_START", true),

		SourceBaseURL: getEnv("SOURCE_BASE_URL", "https://www.reddit.com"),
		FetchTimeout:  getEnvAsDuration("FETCH_TIMEOUT", 30*time.Second),

		TranslateURL:     getEnv("TRANSLATE_URL", "https://translate.googleapis.com/translate_a/single"),
		SourceLang:       getEnv("TRANSLATE_SOURCE_LANG", "en"),
		DestLang:         getEnv("TRANSLATE_DEST_LANG", "vi"),
		TranslateTimeout: getEnvAsDuration("TRANSLATE_TIMEOUT", 15*time.Second),

		RedisURL: getEnv("REDIS_URL", ""),
		SeenTTL:  getEnvAsDuration("SEEN_TTL", 0),

		R2Endpoint:  getEnv("R2_ENDPOINT", ""),
		R2AccessKey: getEnv("R2_ACCESS_KEY", ""),
		R2SecretKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2Bucket:    getEnv("R2_BUCKET", "gigfeed"),

		Port:            getEnv("PORT", "8080"),
		AdminAPIKey:     getEnv("ADMIN_API_KEY", ""),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	return cfg
}

// Validate checks the loaded configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if fields, ok := err.(validator.ValidationErrors); ok {
			names := make([]string, 0, len(fields))
			for _, f := range fields {
				names = append(names, f.Field())
			}
			return fmt.Errorf("invalid fields: %s", strings.Join(names, ", "))
		}
		return err
	}
	return nil
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsInt64(name string, defaultVal int64) int64 {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %t", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsSlice(name string, defaultVal []string) []string {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if len(values) == 0 {
		return defaultVal
	}
	return values
}
