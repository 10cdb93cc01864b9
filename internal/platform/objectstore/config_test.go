package objectstore

import (
	"errors"
	"testing"
)

func TestConfigFromEnvDefaultsToMemory(t *testing.T) {
	t.Setenv("OBJECT_STORAGE_MODE", "")
	t.Setenv("STORAGE_EMULATOR_HOST", "")

	cfg := ConfigFromEnv(Config{})
	if cfg.Mode != ModeMemory {
		t.Fatalf("mode: want=%q got=%q", ModeMemory, cfg.Mode)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestConfigFromEnvEmulatorFallback(t *testing.T) {
	t.Setenv("OBJECT_STORAGE_MODE", "")
	t.Setenv("STORAGE_EMULATOR_HOST", "http://fake-gcs:4443")
	t.Setenv("REPORTS_BUCKET_NAME", "reports")

	cfg := ConfigFromEnv(Config{})
	if cfg.Mode != ModeGCSEmulator {
		t.Fatalf("mode: want=%q got=%q", ModeGCSEmulator, cfg.Mode)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		code ConfigErrorCode
	}{
		{"bad mode", Config{Mode: "ftp"}, ConfigErrorInvalidMode},
		{"gcs without bucket", Config{Mode: ModeGCS}, ConfigErrorMissingBucket},
		{"emulator without host", Config{Mode: ModeGCSEmulator, ReportsBucket: "r"}, ConfigErrorMissingEmulatorHost},
		{"s3 bad endpoint", Config{Mode: ModeS3, ReportsBucket: "r", S3Endpoint: "localhost:9000"}, ConfigErrorInvalidURL},
	}
	for _, tc := range cases {
		err := tc.cfg.Validate()
		var ce *ConfigError
		if !errors.As(err, &ce) {
			t.Fatalf("%s: want ConfigError got=%v", tc.name, err)
		}
		if ce.Code != tc.code {
			t.Fatalf("%s: code want=%q got=%q", tc.name, tc.code, ce.Code)
		}
	}
}
