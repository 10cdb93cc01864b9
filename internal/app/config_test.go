package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yungbote/medvalidate-backend/internal/platform/llm"
	"github.com/yungbote/medvalidate-backend/internal/platform/objectstore"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		configPathEnv, "PORT", "HTTP_ADDR", "DB_DRIVER", "SQLITE_PATH",
		"LLM_MODEL", "LLM_TIMEOUT", "SAGA_SWEEP_AGE", "CORS_ALLOWED_ORIGINS",
		"OBJECT_STORAGE_MODE", "STORAGE_EMULATOR_HOST", "REPORTS_BUCKET_NAME",
	} {
		t.Setenv(name, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	clearConfigEnv(t)

	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("addr: want=:8080 got=%q", cfg.HTTP.Addr)
	}
	if cfg.LLM.Model != llm.DefaultModel || cfg.LLM.Temperature != llm.DefaultTemperature {
		t.Fatalf("llm defaults: got model=%q temperature=%v", cfg.LLM.Model, cfg.LLM.Temperature)
	}
	if cfg.Storage.Mode != objectstore.ModeMemory {
		t.Fatalf("storage mode: want=memory got=%q", cfg.Storage.Mode)
	}
	if cfg.Analysis.SagaSweepAge != 15*time.Minute {
		t.Fatalf("sweep age: want=15m got=%v", cfg.Analysis.SagaSweepAge)
	}
}

func TestLoadConfigYAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "medvalidate.yaml")
	yml := `
http:
  addr: ":9000"
  cors_origins: ["https://app.example.com"]
db:
  driver: sqlite
  sqlite_path: /tmp/mv.db
llm:
  model: llama-3.1-8b-instant
  timeout: 30s
analysis:
  saga_sweep_age: 1h
storage:
  mode: s3
  reports_bucket: mv-reports
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	clearConfigEnv(t)
	t.Setenv(configPathEnv, path)
	t.Setenv("PORT", "7070")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("SAGA_SWEEP_AGE", "90")

	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.HTTP.Addr != ":7070" {
		t.Fatalf("addr: want=:7070 got=%q", cfg.HTTP.Addr)
	}
	if len(cfg.HTTP.CORSOrigins) != 1 || cfg.HTTP.CORSOrigins[0] != "https://app.example.com" {
		t.Fatalf("cors: got=%v", cfg.HTTP.CORSOrigins)
	}
	if cfg.DB.Driver != "sqlite" || cfg.DB.SQLitePath != "/tmp/mv.db" {
		t.Fatalf("db: got=%+v", cfg.DB)
	}
	if cfg.DB.Port != "5432" {
		t.Fatalf("db port default lost: got=%q", cfg.DB.Port)
	}
	if cfg.LLM.Model != "llama-3.1-8b-instant" || cfg.LLM.Timeout != 30*time.Second {
		t.Fatalf("llm: got=%+v", cfg.LLM)
	}
	if cfg.LLM.APIKey != "gsk_test" || cfg.Auth.JWTSecret != "s3cret" {
		t.Fatalf("secrets not read from env")
	}
	if cfg.Analysis.SagaSweepAge != 90*time.Second {
		t.Fatalf("sweep age: want=90s got=%v", cfg.Analysis.SagaSweepAge)
	}
	if cfg.Storage.Mode != objectstore.ModeS3 || cfg.Storage.ReportsBucket != "mv-reports" {
		t.Fatalf("storage: got=%+v", cfg.Storage)
	}
	if err := cfg.ValidateServe(); err != nil {
		t.Fatalf("ValidateServe: %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	clearConfigEnv(t)
	t.Setenv(configPathEnv, filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := LoadConfig(nil); err == nil {
		t.Fatalf("want error for missing config file")
	}
}

func TestValidateServe(t *testing.T) {
	cfg := defaultConfig()
	cfg.Storage.Mode = objectstore.ModeMemory
	if err := cfg.ValidateServe(); err == nil {
		t.Fatalf("want error without jwt secret")
	}
	cfg.Auth.JWTSecret = "s3cret"
	if err := cfg.ValidateServe(); err == nil {
		t.Fatalf("want error without api key")
	}
	cfg.LLM.APIKey = "gsk_test"
	if err := cfg.ValidateServe(); err != nil {
		t.Fatalf("ValidateServe: %v", err)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" https://a.example , ,https://b.example")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("splitList: got=%v", got)
	}
}
