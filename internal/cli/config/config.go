package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultServer   = "http://localhost:8000"
	defaultTelegram = "https://t.me/InvestMateAI_bot"
)

// LogConfig controls the debug log sink.
type LogConfig struct {
	Level    string
	Format   string
	Output   string
	FilePath string
}

// Config holds client configuration resolved once at startup.
// The server base URL is used for every capability call.
type Config struct {
	Server      string
	TelegramURL string
	Log         LogConfig
}

// Load resolves configuration from the environment, falling back to a local
// default server. A .env file in the working directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	logOutput := "discard"
	logPath := ""
	if lvl := os.Getenv("IMCTL_LOG"); lvl != "" {
		logOutput = "file"
		logPath = defaultLogPath()
	}

	return &Config{
		Server:      getEnv("IMCTL_SERVER", defaultServer),
		TelegramURL: getEnv("IMCTL_TELEGRAM_URL", defaultTelegram),
		Log: LogConfig{
			Level:    getEnv("IMCTL_LOG", "info"),
			Format:   getEnv("IMCTL_LOG_FORMAT", "text"),
			Output:   logOutput,
			FilePath: logPath,
		},
	}
}

// ConfigDir returns the imctl state directory (~/.imctl), creating it if needed.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".imctl")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return dir, nil
}

func defaultLogPath() string {
	dir, err := ConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "imctl.log")
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
