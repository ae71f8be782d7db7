package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the connection and batching settings for a session.
type Config struct {
	APIURL    string
	Token     string
	BatchSize int
	Queue     bool
	Timeout   time.Duration
	// Template is the default project template file for reorder.
	Template string
}

const (
	defaultConfigPath = "~/.config/todosync/config.toml"
	defaultAPIURL     = "https://todoist.com/API/v6/"
	defaultBatchSize  = 50
	defaultTimeout    = 10 * time.Second

	// TokenEnv overrides the API token from the file or .env.
	TokenEnv = "TODOSYNC_TOKEN"
	envFile  = ".env"
)

// Load locates and parses the config, falling back to defaults when missing.
// The token is taken from TODOSYNC_TOKEN, then a .env file beside the config,
// then the token key in the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIURL:    defaultAPIURL,
		BatchSize: defaultBatchSize,
		Timeout:   defaultTimeout,
	}

	if err := readFile(resolved, &cfg); err != nil {
		return Config{}, err
	}

	dotenv, err := readDotenv(filepath.Join(filepath.Dir(resolved), envFile))
	if err != nil {
		return Config{}, err
	}
	if token := strings.TrimSpace(dotenv[TokenEnv]); token != "" {
		cfg.Token = token
	}
	if token := strings.TrimSpace(os.Getenv(TokenEnv)); token != "" {
		cfg.Token = token
	}

	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL         string `toml:"api_url"`
		Token          string `toml:"token"`
		BatchSize      int    `toml:"batch_size"`
		Queue          bool   `toml:"queue"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
		Template       string `toml:"template"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if url := strings.TrimSpace(raw.APIURL); url != "" {
		cfg.APIURL = url
	}
	cfg.Token = strings.TrimSpace(raw.Token)
	if raw.BatchSize < 0 {
		return fmt.Errorf("parse config: batch_size must not be negative, got %d", raw.BatchSize)
	}
	if raw.BatchSize > 0 {
		cfg.BatchSize = raw.BatchSize
	}
	cfg.Queue = raw.Queue
	if raw.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}
	if tmpl := strings.TrimSpace(raw.Template); tmpl != "" {
		cfg.Template = mustExpand(tmpl)
	}
	return nil
}

func readDotenv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", envFile, err)
	}
	return values, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
