package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Auth
	TripgestAPIKey string

	// LLM provider: anthropic, openai or mock
	LLMProvider     string
	AnthropicAPIKey string
	AnthropicModel  string
	OpenAIAPIKey    string
	OpenAIModel     string
	OpenAIBaseURL   string
	LLMTimeout      time.Duration

	// Trip storage: sqlite or pathstore
	StoreBackend    string
	DBPath          string
	PathstoreURL    string
	PathstoreAPIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload and request limits
	MaxUploadBytes int64
	MaxTripDays    int

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool

	// Logging
	LogLevel     string
	LogFormat    string
	LogAddSource bool
}

// fileConfig is the optional TOML file named by TRIPGEST_CONFIG. Every key is
// optional; environment variables override whatever the file sets.
type fileConfig struct {
	Port           string `toml:"port"`
	LLMProvider    string `toml:"llm_provider"`
	AnthropicModel string `toml:"anthropic_model"`
	OpenAIModel    string `toml:"openai_model"`
	OpenAIBaseURL  string `toml:"openai_base_url"`
	LLMTimeout     string `toml:"llm_timeout"`
	StoreBackend   string `toml:"store_backend"`
	DBPath         string `toml:"db_path"`
	PathstoreURL   string `toml:"pathstore_url"`
	WorkerCount    int    `toml:"worker_count"`
	MaxQueueSize   int    `toml:"max_queue_size"`
	MaxUploadBytes int64  `toml:"max_upload_bytes"`
	MaxTripDays    int    `toml:"max_trip_days"`
	JobTTL         string `toml:"job_ttl"`
	LogLevel       string `toml:"log_level"`
	LogFormat      string `toml:"log_format"`
}

func defaults() Config {
	return Config{
		Port:                 "8090",
		LLMProvider:          "anthropic",
		AnthropicModel:       "claude-sonnet-4-5-20250929",
		OpenAIModel:          "gpt-4o-mini",
		LLMTimeout:           120 * time.Second,
		StoreBackend:         "sqlite",
		DBPath:               "tripgest.db",
		PathstoreURL:         "http://localhost:8080",
		WorkerCount:          4,
		MaxQueueSize:         100,
		MaxUploadBytes:       10485760, // 10MB
		MaxTripDays:          30,
		JobTTL:               1 * time.Hour,
		PDFFallbackPdftotext: true,
		LogLevel:             "info",
		LogFormat:            "json",
	}
}

// Load builds the configuration from, in increasing precedence: built-in
// defaults, the TOML file named by TRIPGEST_CONFIG, a .env file in the
// working directory, and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := defaults()
	if path := os.Getenv("TRIPGEST_CONFIG"); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	cfg.Port = envOr("PORT", cfg.Port)
	cfg.TripgestAPIKey = os.Getenv("TRIPGEST_API_KEY")

	cfg.LLMProvider = envOr("LLM_PROVIDER", cfg.LLMProvider)
	cfg.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	cfg.AnthropicModel = envOr("ANTHROPIC_MODEL", cfg.AnthropicModel)
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAIModel = envOr("OPENAI_MODEL", cfg.OpenAIModel)
	cfg.OpenAIBaseURL = envOr("OPENAI_BASE_URL", cfg.OpenAIBaseURL)
	cfg.LLMTimeout = envDuration("LLM_TIMEOUT", cfg.LLMTimeout)

	cfg.StoreBackend = envOr("STORE_BACKEND", cfg.StoreBackend)
	cfg.DBPath = envOr("DB_PATH", cfg.DBPath)
	cfg.PathstoreURL = envOr("PATHSTORE_URL", cfg.PathstoreURL)
	cfg.PathstoreAPIKey = os.Getenv("PATHSTORE_API_KEY")

	cfg.WorkerCount = envInt("WORKER_COUNT", cfg.WorkerCount)
	cfg.MaxQueueSize = envInt("MAX_QUEUE_SIZE", cfg.MaxQueueSize)
	cfg.MaxUploadBytes = envInt64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)
	cfg.MaxTripDays = envInt("MAX_TRIP_DAYS", cfg.MaxTripDays)
	cfg.JobTTL = envDuration("JOB_TTL", cfg.JobTTL)
	cfg.PDFFallbackPdftotext = envBool("PDF_FALLBACK_PDFTOTEXT", cfg.PDFFallbackPdftotext)

	cfg.LogLevel = envOr("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envOr("LOG_FORMAT", cfg.LogFormat)
	cfg.LogAddSource = envBool("LOG_ADD_SOURCE", cfg.LogAddSource)

	def := defaults()
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = def.WorkerCount
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = def.MaxQueueSize
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = def.MaxUploadBytes
	}
	if cfg.MaxTripDays <= 0 {
		cfg.MaxTripDays = def.MaxTripDays
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = def.JobTTL
	}
	if cfg.LLMTimeout <= 0 {
		cfg.LLMTimeout = def.LLMTimeout
	}

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	setStr := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setStr(&cfg.Port, fc.Port)
	setStr(&cfg.LLMProvider, fc.LLMProvider)
	setStr(&cfg.AnthropicModel, fc.AnthropicModel)
	setStr(&cfg.OpenAIModel, fc.OpenAIModel)
	setStr(&cfg.OpenAIBaseURL, fc.OpenAIBaseURL)
	setStr(&cfg.StoreBackend, fc.StoreBackend)
	setStr(&cfg.DBPath, fc.DBPath)
	setStr(&cfg.PathstoreURL, fc.PathstoreURL)
	setStr(&cfg.LogLevel, fc.LogLevel)
	setStr(&cfg.LogFormat, fc.LogFormat)

	if fc.WorkerCount > 0 {
		cfg.WorkerCount = fc.WorkerCount
	}
	if fc.MaxQueueSize > 0 {
		cfg.MaxQueueSize = fc.MaxQueueSize
	}
	if fc.MaxUploadBytes > 0 {
		cfg.MaxUploadBytes = fc.MaxUploadBytes
	}
	if fc.MaxTripDays > 0 {
		cfg.MaxTripDays = fc.MaxTripDays
	}

	for _, d := range []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"llm_timeout", fc.LLMTimeout, &cfg.LLMTimeout},
		{"job_ttl", fc.JobTTL, &cfg.JobTTL},
	} {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("config %s: %s: %w", path, d.key, err)
		}
		*d.dst = v
	}
	return nil
}

func (c Config) Validate() error {
	if c.TripgestAPIKey == "" {
		return fmt.Errorf("TRIPGEST_API_KEY is required")
	}

	switch c.LLMProvider {
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for provider anthropic")
		}
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for provider openai")
		}
	case "mock":
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider)
	}

	switch c.StoreBackend {
	case "sqlite":
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH is required for store backend sqlite")
		}
	case "pathstore":
		if c.PathstoreAPIKey == "" {
			return fmt.Errorf("PATHSTORE_API_KEY is required for store backend pathstore")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
