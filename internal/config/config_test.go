package config

import (
	"testing"
	"time"

	"github.com/deepceutix/datagen/internal/logging"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":8080" || cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Database.Driver != "libsql" || cfg.Database.URL != "file:datagen.db" {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.Blob.Driver != "fs" || cfg.Blob.FSRoot != "./temp" {
		t.Errorf("blob = %+v", cfg.Blob)
	}
	if cfg.OtelConfig().Active() {
		t.Error("otel should be inactive by default")
	}
	if cfg.Level() != logging.LevelInfo {
		t.Errorf("level = %v", cfg.Level())
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("DATAGEN_ADDR", ":9090")
	t.Setenv("DATAGEN_DB_DRIVER", "sqlite")
	t.Setenv("DATAGEN_DB_URL", "file:/tmp/runs.db")
	t.Setenv("DATAGEN_BLOB_DRIVER", "s3")
	t.Setenv("DATAGEN_BLOB_S3_BUCKET", "artifacts")
	t.Setenv("DATAGEN_BLOB_S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("DATAGEN_BLOB_S3_PATH_STYLE", "true")
	t.Setenv("DATAGEN_OTEL_ENABLED", "true")
	t.Setenv("DATAGEN_OTEL_ENDPOINT", "localhost:4317")
	t.Setenv("GEMINI_API_KEY", "g")
	t.Setenv("LLAMA_API_KEY", "l")
	t.Setenv("OPENROUTER_SITE_TITLE", "Deepceutix")
	t.Setenv("DATAGEN_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if opts := cfg.DatabaseOptions(); opts.Driver != "sqlite" || opts.URL != "file:/tmp/runs.db" || !opts.Ping {
		t.Errorf("database options = %+v", opts)
	}
	sc := cfg.StorageConfig()
	if sc.Driver != "s3" || sc.S3.Bucket != "artifacts" || !sc.S3.PathStyle || sc.S3.Region != "us-east-1" {
		t.Errorf("storage config = %+v", sc)
	}
	if !cfg.OtelConfig().Active() {
		t.Error("otel should be active")
	}
	lc := cfg.LLMConfig()
	if lc.GeminiAPIKey != "g" || lc.LlamaAPIKey != "l" || lc.SiteTitle != "Deepceutix" || lc.Timeout != time.Minute {
		t.Errorf("llm config = %+v", lc)
	}
	if cfg.Level() != logging.LevelDebug {
		t.Errorf("level = %v", cfg.Level())
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("DATAGEN_SHUTDOWN_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Error("expected error for invalid duration")
	}
}
