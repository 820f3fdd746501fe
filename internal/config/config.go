package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	BotToken           string
	LogLevel           string
	LogFile            string
	PollTimeoutSeconds int
	DataDir            string
	DatabasePath       string
	CascadePath        string
	SampleRate         int
}

func Load() (Config, error) {
	pollTimeout, err := getInt("POLL_TIMEOUT_SECONDS", 30)
	if err != nil {
		return Config{}, err
	}

	sampleRate, err := getInt("TARGET_SAMPLE_RATE", 16000)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		BotToken:           strings.TrimSpace(os.Getenv("BOT_TOKEN")),
		LogLevel:           getString("LOG_LEVEL", "info"),
		LogFile:            getString("LOG_FILE", ""),
		PollTimeoutSeconds: pollTimeout,
		DataDir:            getString("DATA_DIR", "."),
		DatabasePath:       getString("DATABASE_PATH", "audio_messages.db"),
		CascadePath:        getString("CASCADE_PATH", "cascade/facefinder"),
		SampleRate:         sampleRate,
	}

	if cfg.BotToken == "" {
		return Config{}, errors.New("BOT_TOKEN is required")
	}

	if cfg.PollTimeoutSeconds <= 0 {
		cfg.PollTimeoutSeconds = 30
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 16000
	}

	return cfg, nil
}

func getString(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}
