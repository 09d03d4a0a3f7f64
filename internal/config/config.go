package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AppConfig carries all engine tunables. Components receive it (or slices of
// it) explicitly; nothing reads the environment after Load returns.
type AppConfig struct {
	HTTPAddr string
	DBPath   string

	// Bidding rules
	DefaultIncrement decimal.Decimal
	SnipeWindow      time.Duration

	// Lifecycle and notifications
	EvaluatorTick    time.Duration
	EndingSoonWindow time.Duration

	// Realtime fan-out
	SubscriberBuffer int

	// Notification delivery queue (empty AMQPURL keeps enqueue in-process)
	AMQPURL   string
	AMQPQueue string

	// Token guarding the admin force-transition endpoint
	AdminToken string
}

// Load reads configuration from the environment, falling back to defaults
// suitable for local runs.
func Load() (AppConfig, error) {
	cfg := AppConfig{
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		DBPath:           getEnv("DB_PATH", "auction.db"),
		DefaultIncrement: decimal.NewFromInt(10),
		SnipeWindow:      60 * time.Second,
		EvaluatorTick:    time.Second,
		EndingSoonWindow: 5 * time.Minute,
		SubscriberBuffer: 16,
		AMQPURL:          getEnv("AMQP_URL", ""),
		AMQPQueue:        getEnv("AMQP_QUEUE", "auction-notifications"),
		AdminToken:       getEnv("ADMIN_TOKEN", "dev-admin-token"),
	}

	if raw := strings.TrimSpace(os.Getenv("DEFAULT_INCREMENT")); raw != "" {
		inc, err := decimal.NewFromString(raw)
		if err != nil {
			return AppConfig{}, fmt.Errorf("invalid DEFAULT_INCREMENT: %w", err)
		}
		if inc.Sign() <= 0 {
			return AppConfig{}, fmt.Errorf("DEFAULT_INCREMENT must be > 0")
		}
		cfg.DefaultIncrement = inc
	}

	snipeSec, err := getEnvInt("SNIPE_WINDOW_SEC", int(cfg.SnipeWindow.Seconds()))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid SNIPE_WINDOW_SEC: %w", err)
	}
	if snipeSec < 0 {
		return AppConfig{}, fmt.Errorf("SNIPE_WINDOW_SEC must be >= 0")
	}
	cfg.SnipeWindow = time.Duration(snipeSec) * time.Second

	tickMs, err := getEnvInt("EVALUATOR_TICK_MS", int(cfg.EvaluatorTick.Milliseconds()))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid EVALUATOR_TICK_MS: %w", err)
	}
	if tickMs <= 0 {
		return AppConfig{}, fmt.Errorf("EVALUATOR_TICK_MS must be > 0")
	}
	cfg.EvaluatorTick = time.Duration(tickMs) * time.Millisecond

	soonSec, err := getEnvInt("ENDING_SOON_WINDOW_SEC", int(cfg.EndingSoonWindow.Seconds()))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid ENDING_SOON_WINDOW_SEC: %w", err)
	}
	if soonSec <= 0 {
		return AppConfig{}, fmt.Errorf("ENDING_SOON_WINDOW_SEC must be > 0")
	}
	cfg.EndingSoonWindow = time.Duration(soonSec) * time.Second

	buf, err := getEnvInt("SUBSCRIBER_BUFFER", cfg.SubscriberBuffer)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid SUBSCRIBER_BUFFER: %w", err)
	}
	if buf <= 0 {
		return AppConfig{}, fmt.Errorf("SUBSCRIBER_BUFFER must be > 0")
	}
	cfg.SubscriberBuffer = buf

	if cfg.AMQPURL != "" && cfg.AMQPQueue == "" {
		return AppConfig{}, fmt.Errorf("AMQP_QUEUE must not be empty when AMQP_URL is set")
	}

	return cfg, nil
}

// getEnv reads a string variable, returning the fallback when unset or blank.
func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

// getEnvInt reads an integer variable, returning the fallback when unset.
func getEnvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
