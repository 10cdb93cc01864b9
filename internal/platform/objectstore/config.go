package objectstore

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/yungbote/medvalidate-backend/internal/platform/envutil"
)

type Mode string

const (
	ModeGCS         Mode = "gcs"
	ModeGCSEmulator Mode = "gcs_emulator"
	ModeS3          Mode = "s3"
	ModeMemory      Mode = "memory"
)

type Config struct {
	Mode          Mode   `yaml:"mode"`
	ReportsBucket string `yaml:"reports_bucket"`
	CDNDomain     string `yaml:"cdn_domain"`
	PublicBaseURL string `yaml:"public_base_url"`
	EmulatorHost  string `yaml:"emulator_host"`
	S3Region      string `yaml:"s3_region"`
	S3Endpoint    string `yaml:"s3_endpoint"`
	S3PathStyle   bool   `yaml:"s3_path_style"`
}

type ConfigErrorCode string

const (
	ConfigErrorInvalidMode         ConfigErrorCode = "invalid_mode"
	ConfigErrorMissingBucket       ConfigErrorCode = "missing_bucket"
	ConfigErrorMissingEmulatorHost ConfigErrorCode = "missing_emulator_host"
	ConfigErrorInvalidURL          ConfigErrorCode = "invalid_url"
)

type ConfigError struct {
	Code  ConfigErrorCode
	Mode  string
	Value string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return "invalid object storage config"
	}
	switch e.Code {
	case ConfigErrorInvalidMode:
		return fmt.Sprintf("invalid OBJECT_STORAGE_MODE=%q (allowed: %q, %q, %q, %q)",
			e.Mode, ModeGCS, ModeGCSEmulator, ModeS3, ModeMemory)
	case ConfigErrorMissingBucket:
		return fmt.Sprintf("OBJECT_STORAGE_MODE=%q requires REPORTS_BUCKET_NAME to be set", e.Mode)
	case ConfigErrorMissingEmulatorHost:
		return fmt.Sprintf("OBJECT_STORAGE_MODE=%q requires STORAGE_EMULATOR_HOST to be set", e.Mode)
	case ConfigErrorInvalidURL:
		return fmt.Sprintf("invalid object storage URL %q; expected absolute URL like http://localhost:4443", e.Value)
	default:
		return "invalid object storage config"
	}
}

// ConfigFromEnv overlays environment variables on base.
func ConfigFromEnv(base Config) Config {
	cfg := base
	cfg.EmulatorHost = envutil.String("STORAGE_EMULATOR_HOST", cfg.EmulatorHost)
	if raw := envutil.String("OBJECT_STORAGE_MODE", ""); raw != "" {
		cfg.Mode = Mode(strings.ToLower(raw))
	}
	if cfg.Mode == "" {
		if cfg.EmulatorHost != "" {
			cfg.Mode = ModeGCSEmulator
		} else {
			cfg.Mode = ModeMemory
		}
	}
	cfg.ReportsBucket = envutil.String("REPORTS_BUCKET_NAME", cfg.ReportsBucket)
	cfg.CDNDomain = envutil.String("REPORTS_CDN_DOMAIN", cfg.CDNDomain)
	cfg.PublicBaseURL = strings.TrimRight(envutil.String("OBJECT_STORAGE_PUBLIC_BASE_URL", cfg.PublicBaseURL), "/")
	cfg.S3Region = envutil.FirstString(cfg.S3Region, "S3_REGION", "AWS_REGION")
	cfg.S3Endpoint = envutil.String("S3_ENDPOINT", cfg.S3Endpoint)
	cfg.S3PathStyle = envutil.Bool("S3_USE_PATH_STYLE", cfg.S3PathStyle)
	return cfg
}

func (cfg Config) Validate() error {
	switch cfg.Mode {
	case ModeMemory:
		return validateOptionalURL(cfg.PublicBaseURL)
	case ModeGCS, ModeS3:
	case ModeGCSEmulator:
		if strings.TrimSpace(cfg.EmulatorHost) == "" {
			return &ConfigError{Code: ConfigErrorMissingEmulatorHost, Mode: string(cfg.Mode)}
		}
		if err := validateOptionalURL(cfg.EmulatorHost); err != nil {
			return err
		}
	default:
		return &ConfigError{Code: ConfigErrorInvalidMode, Mode: string(cfg.Mode)}
	}
	if strings.TrimSpace(cfg.ReportsBucket) == "" {
		return &ConfigError{Code: ConfigErrorMissingBucket, Mode: string(cfg.Mode)}
	}
	if err := validateOptionalURL(cfg.S3Endpoint); err != nil {
		return err
	}
	return validateOptionalURL(cfg.PublicBaseURL)
}

func validateOptionalURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || strings.TrimSpace(u.Scheme) == "" || strings.TrimSpace(u.Host) == "" {
		return &ConfigError{Code: ConfigErrorInvalidURL, Value: raw}
	}
	return nil
}
