package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/medvalidate-backend/internal/data/db"
	"github.com/yungbote/medvalidate-backend/internal/platform/envutil"
	"github.com/yungbote/medvalidate-backend/internal/platform/llm"
	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
	"github.com/yungbote/medvalidate-backend/internal/platform/objectstore"
)

const configPathEnv = "MEDVALIDATE_CONFIG_PATH"

type HTTPConfig struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	CORSOrigins       []string      `yaml:"cors_origins"`
}

type LLMConfig struct {
	BaseURL     string        `yaml:"base_url"`
	APIKey      string        `yaml:"api_key"`
	Model       string        `yaml:"model"`
	Temperature float64       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type RedisConfig struct {
	Addr       string `yaml:"addr"`
	LockPrefix string `yaml:"lock_prefix"`
}

type AnalysisConfig struct {
	LockTTL      time.Duration `yaml:"lock_ttl"`
	SagaSweepAge time.Duration `yaml:"saga_sweep_age"`
}

type OtelConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`
	Headers     string  `yaml:"headers"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

type MetricsConfig struct {
	Enabled        bool          `yaml:"enabled"`
	ScrapeInterval time.Duration `yaml:"scrape_interval"`
}

type Config struct {
	ServiceName string `yaml:"service_name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
	LogMode     string `yaml:"log_mode"`

	HTTP     HTTPConfig         `yaml:"http"`
	DB       db.Config          `yaml:"db"`
	LLM      LLMConfig          `yaml:"llm"`
	Auth     AuthConfig         `yaml:"auth"`
	Storage  objectstore.Config `yaml:"storage"`
	Redis    RedisConfig        `yaml:"redis"`
	Analysis AnalysisConfig     `yaml:"analysis"`
	Otel     OtelConfig         `yaml:"otel"`
	Metrics  MetricsConfig      `yaml:"metrics"`
}

func defaultConfig() Config {
	return Config{
		ServiceName: "medvalidate",
		Environment: "development",
		LogMode:     "development",
		HTTP: HTTPConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      5 * time.Minute,
			IdleTimeout:       2 * time.Minute,
			ShutdownTimeout:   20 * time.Second,
		},
		DB: db.Config{
			Driver:  db.DriverPostgres,
			Host:    "localhost",
			Port:    "5432",
			Name:    "medvalidate",
			SSLMode: "disable",
		},
		LLM: LLMConfig{
			BaseURL:     llm.DefaultBaseURL,
			Model:       llm.DefaultModel,
			Temperature: llm.DefaultTemperature,
			Timeout:     llm.DefaultTimeout,
		},
		Redis: RedisConfig{LockPrefix: "medvalidate:lock:"},
		Analysis: AnalysisConfig{
			LockTTL:      3 * time.Minute,
			SagaSweepAge: 15 * time.Minute,
		},
		Otel:    OtelConfig{SampleRatio: 1},
		Metrics: MetricsConfig{Enabled: true, ScrapeInterval: 15 * time.Second},
	}
}

// LoadConfig reads .env (if present), then the YAML file named by
// MEDVALIDATE_CONFIG_PATH (if set), then environment overrides.
func LoadConfig(log *logger.Logger) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg := defaultConfig()
	if path := envutil.String(configPathEnv, ""); path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			return Config{}, err
		}
		if log != nil {
			log.Info("Loaded config file", "path", path)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.ServiceName = envutil.FirstString(cfg.ServiceName, "OTEL_SERVICE_NAME", "SERVICE_NAME")
	cfg.Environment = envutil.String("APP_ENV", cfg.Environment)
	cfg.Version = envutil.String("APP_VERSION", cfg.Version)
	cfg.LogMode = envutil.String("LOG_MODE", cfg.LogMode)

	if port := envutil.String("PORT", ""); port != "" {
		cfg.HTTP.Addr = ":" + strings.TrimPrefix(port, ":")
	}
	cfg.HTTP.Addr = envutil.String("HTTP_ADDR", cfg.HTTP.Addr)
	cfg.HTTP.ReadHeaderTimeout = envutil.Duration("HTTP_READ_HEADER_TIMEOUT", cfg.HTTP.ReadHeaderTimeout)
	cfg.HTTP.WriteTimeout = envutil.Duration("HTTP_WRITE_TIMEOUT", cfg.HTTP.WriteTimeout)
	cfg.HTTP.IdleTimeout = envutil.Duration("HTTP_IDLE_TIMEOUT", cfg.HTTP.IdleTimeout)
	cfg.HTTP.ShutdownTimeout = envutil.Duration("HTTP_SHUTDOWN_TIMEOUT", cfg.HTTP.ShutdownTimeout)
	if raw := envutil.String("CORS_ALLOWED_ORIGINS", ""); raw != "" {
		cfg.HTTP.CORSOrigins = splitList(raw)
	}

	cfg.DB.Driver = envutil.String("DB_DRIVER", cfg.DB.Driver)
	cfg.DB.Host = envutil.String("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = envutil.String("POSTGRES_PORT", cfg.DB.Port)
	cfg.DB.User = envutil.String("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Password = envutil.String("POSTGRES_PASSWORD", cfg.DB.Password)
	cfg.DB.Name = envutil.String("POSTGRES_NAME", cfg.DB.Name)
	cfg.DB.SSLMode = envutil.String("POSTGRES_SSLMODE", cfg.DB.SSLMode)
	cfg.DB.SQLitePath = envutil.String("SQLITE_PATH", cfg.DB.SQLitePath)

	cfg.LLM.BaseURL = envutil.String("LLM_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.APIKey = envutil.FirstString(cfg.LLM.APIKey, "GROQ_API_KEY", "LLM_API_KEY")
	cfg.LLM.Model = envutil.String("LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.Temperature = envutil.Float("LLM_TEMPERATURE", cfg.LLM.Temperature)
	cfg.LLM.Timeout = envutil.Duration("LLM_TIMEOUT", cfg.LLM.Timeout)

	cfg.Auth.JWTSecret = envutil.FirstString(cfg.Auth.JWTSecret, "AUTH_JWT_SECRET", "JWT_SECRET_KEY")

	cfg.Storage = objectstore.ConfigFromEnv(cfg.Storage)

	cfg.Redis.Addr = envutil.String("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.LockPrefix = envutil.String("REDIS_LOCK_PREFIX", cfg.Redis.LockPrefix)

	cfg.Analysis.LockTTL = envutil.Duration("ANALYSIS_LOCK_TTL", cfg.Analysis.LockTTL)
	cfg.Analysis.SagaSweepAge = envutil.Duration("SAGA_SWEEP_AGE", cfg.Analysis.SagaSweepAge)

	cfg.Otel.Enabled = envutil.Bool("OTEL_ENABLED", cfg.Otel.Enabled)
	cfg.Otel.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Otel.Endpoint)
	cfg.Otel.Headers = envutil.String("OTEL_EXPORTER_OTLP_HEADERS", cfg.Otel.Headers)
	cfg.Otel.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Otel.Insecure)
	cfg.Otel.SampleRatio = envutil.Float("OTEL_SAMPLER_RATIO", cfg.Otel.SampleRatio)

	cfg.Metrics.Enabled = envutil.Bool("METRICS_ENABLED", cfg.Metrics.Enabled)
	cfg.Metrics.ScrapeInterval = envutil.Duration("METRICS_SCRAPE_INTERVAL_SECONDS", cfg.Metrics.ScrapeInterval)
}

// ValidateServe checks what the HTTP server needs beyond the database.
func (c Config) ValidateServe() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("AUTH_JWT_SECRET is required")
	}
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return errors.New("GROQ_API_KEY is required")
	}
	return c.Storage.Validate()
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
