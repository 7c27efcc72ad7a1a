package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ricirt/dingtalk-alert/internal/dingtalk"
)

// Config holds all runtime configuration loaded from environment variables.
// Every field has a sensible default; only DINGTALK_TOKEN is required.
type Config struct {
	// Server
	HTTPPort        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// DingTalk robot
	Token              string
	BaseURL            string
	ConnectTimeout     time.Duration
	RequestTimeout     time.Duration
	InsecureSkipVerify bool

	// Stack frames rendered per text alert. 0 falls back to the client
	// default of 5; only a negative value renders the header line alone.
	TraceDepth int

	// Logging level: debug, info, warn or error
	LogLevel string

	// Push a text alert for every panic recovered by the relay
	AlertOnPanic bool
}

func Load() (*Config, error) {
	token := os.Getenv("DINGTALK_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("DINGTALK_TOKEN is required")
	}

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		ReadTimeout:     getDuration("READ_TIMEOUT", 5*time.Second),
		WriteTimeout:    getDuration("WRITE_TIMEOUT", 130*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		Token:              token,
		BaseURL:            getEnv("DINGTALK_BASE_URL", dingtalk.DefaultBaseURL),
		ConnectTimeout:     getDuration("DINGTALK_CONNECT_TIMEOUT", 20*time.Second),
		RequestTimeout:     getDuration("DINGTALK_REQUEST_TIMEOUT", 120*time.Second),
		InsecureSkipVerify: getBool("DINGTALK_INSECURE_SKIP_VERIFY", false),
		TraceDepth:         getInt("TRACE_DEPTH", dingtalk.DefaultTraceDepth),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		AlertOnPanic: getBool("ALERT_ON_PANIC", true),
	}, nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
