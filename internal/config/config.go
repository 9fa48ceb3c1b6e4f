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

// Config holds everything marquee reads at startup.
type Config struct {
	APIKey            string
	APIBaseURL        string
	ImageBaseURL      string
	Language          string
	DataDir           string
	LogFile           string
	LogLevel          string
	RequestsPerSecond float64
	Timeout           time.Duration
}

const (
	defaultConfigPath   = "~/.config/marquee/config.toml"
	defaultDataDir      = "~/.local/share/marquee"
	defaultAPIBaseURL   = "https://api.themoviedb.org/3"
	defaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
	defaultLanguage     = "en"
	defaultLogLevel     = "info"
	defaultTimeout      = 10 * time.Second
	defaultRPS          = 4

	// EnvAPIKey overrides api_key.
	EnvAPIKey = "TMDB_API_KEY"
	// EnvAPIBaseURL overrides api_base_url.
	EnvAPIBaseURL = "MARQUEE_API_BASE_URL"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// LoadEnv reads KEY=VALUE pairs from the given dotenv files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load env %s: %w", p, err)
		}
	}
	return nil
}

// Load locates and parses the marquee config, falling back to defaults when
// the file is missing. Environment overrides are applied last.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIKey            string   `toml:"api_key"`
		APIBaseURL        string   `toml:"api_base_url"`
		ImageBaseURL      string   `toml:"image_base_url"`
		Language          string   `toml:"language"`
		DataDir           string   `toml:"data_dir"`
		LogFile           string   `toml:"log_file"`
		LogLevel          string   `toml:"log_level"`
		RequestsPerSecond *float64 `toml:"requests_per_second"`
		TimeoutSeconds    int      `toml:"timeout_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIKey = strings.TrimSpace(raw.APIKey)
	cfg.APIBaseURL = orDefault(raw.APIBaseURL, defaultAPIBaseURL)
	cfg.ImageBaseURL = orDefault(raw.ImageBaseURL, defaultImageBaseURL)
	cfg.Language = orDefault(raw.Language, defaultLanguage)
	cfg.LogLevel = strings.ToLower(orDefault(raw.LogLevel, defaultLogLevel))
	if raw.RequestsPerSecond != nil && *raw.RequestsPerSecond >= 0 {
		cfg.RequestsPerSecond = *raw.RequestsPerSecond
	}
	if raw.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}

	cfg.DataDir = mustExpand(orDefault(raw.DataDir, defaultDataDir))
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	} else {
		cfg.LogFile = filepath.Join(cfg.DataDir, "marquee.log")
	}

	applyEnv(&cfg)
	return cfg, nil
}

// Validate reports settings that would make every API call fail.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("api key missing: set api_key in %s or %s", defaultConfigPath, EnvAPIKey)
	}
	return nil
}

// StateDir is where the persisted store lives.
func (c Config) StateDir() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return mustExpand(defaultDataDir + "/state")
	}
	return filepath.Join(c.DataDir, "state")
}

func defaults() Config {
	dataDir := mustExpand(defaultDataDir)
	return Config{
		APIBaseURL:        defaultAPIBaseURL,
		ImageBaseURL:      defaultImageBaseURL,
		Language:          defaultLanguage,
		DataDir:           dataDir,
		LogFile:           filepath.Join(dataDir, "marquee.log"),
		LogLevel:          defaultLogLevel,
		RequestsPerSecond: defaultRPS,
		Timeout:           defaultTimeout,
	}
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		cfg.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIBaseURL)); v != "" {
		cfg.APIBaseURL = v
	}
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
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
