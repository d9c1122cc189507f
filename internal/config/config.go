// Package config loads datagen settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/deepceutix/datagen/internal/adapters/otel"
	"github.com/deepceutix/datagen/internal/adapters/storage"
	"github.com/deepceutix/datagen/internal/database"
	"github.com/deepceutix/datagen/internal/llm"
	"github.com/deepceutix/datagen/internal/logging"
)

// Server holds HTTP server configuration.
type Server struct {
	Addr            string        `envconfig:"DATAGEN_ADDR" default:":8080"`
	ShutdownTimeout time.Duration `envconfig:"DATAGEN_SHUTDOWN_TIMEOUT" default:"10s"`
}

// Database holds run store configuration.
type Database struct {
	Driver    string `envconfig:"DATAGEN_DB_DRIVER" default:"libsql"`
	URL       string `envconfig:"DATAGEN_DB_URL" default:"file:datagen.db"`
	AuthToken string `envconfig:"DATAGEN_DB_AUTH_TOKEN"`
}

// Blob holds artifact store configuration.
type Blob struct {
	Driver            string `envconfig:"DATAGEN_BLOB_DRIVER" default:"fs"`
	FSRoot            string `envconfig:"DATAGEN_BLOB_FS_ROOT" default:"./temp"`
	S3Bucket          string `envconfig:"DATAGEN_BLOB_S3_BUCKET"`
	S3Region          string `envconfig:"DATAGEN_BLOB_S3_REGION" default:"us-east-1"`
	S3Endpoint        string `envconfig:"DATAGEN_BLOB_S3_ENDPOINT"`
	S3Prefix          string `envconfig:"DATAGEN_BLOB_S3_PREFIX"`
	S3AccessKeyID     string `envconfig:"DATAGEN_BLOB_S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `envconfig:"DATAGEN_BLOB_S3_SECRET_ACCESS_KEY"`
	S3PathStyle       bool   `envconfig:"DATAGEN_BLOB_S3_PATH_STYLE"`
}

// Otel holds OTLP metrics exporter configuration.
type Otel struct {
	Enabled  bool   `envconfig:"DATAGEN_OTEL_ENABLED"`
	Endpoint string `envconfig:"DATAGEN_OTEL_ENDPOINT"`
	Insecure bool   `envconfig:"DATAGEN_OTEL_INSECURE"`
}

// LLM holds provider keys. The names match the ones the providers document.
type LLM struct {
	GeminiAPIKey    string        `envconfig:"GEMINI_API_KEY"`
	AnthropicAPIKey string        `envconfig:"ANTHROPIC_API_KEY"`
	DeepSeekAPIKey  string        `envconfig:"DEEPSEEK_R1_API_KEY"`
	LlamaAPIKey     string        `envconfig:"LLAMA_API_KEY"`
	QwenAPIKey      string        `envconfig:"QWEN2_5_VL_72B_API_KEY"`
	GptOssAPIKey    string        `envconfig:"GPT_OSS_20B_API_KEY"`
	SiteURL         string        `envconfig:"OPENROUTER_SITE_URL"`
	SiteTitle       string        `envconfig:"OPENROUTER_SITE_TITLE"`
	Timeout         time.Duration `envconfig:"DATAGEN_LLM_TIMEOUT" default:"60s"`
}

// Config is the full datagen configuration.
type Config struct {
	Server   Server
	Database Database
	Blob     Blob
	Otel     Otel
	LLM      LLM
	LogLevel string
}

// Load reads every section from environment variables.
func Load() (*Config, error) {
	var cfg Config
	sections := []any{&cfg.Server, &cfg.Database, &cfg.Blob, &cfg.Otel, &cfg.LLM}
	for _, s := range sections {
		if err := envconfig.Process("", s); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	var top struct {
		LogLevel string `envconfig:"DATAGEN_LOG_LEVEL" default:"info"`
	}
	if err := envconfig.Process("", &top); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.LogLevel = top.LogLevel
	return &cfg, nil
}

// Level returns the parsed log level.
func (c *Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// DatabaseOptions returns the run store connection options.
func (c *Config) DatabaseOptions() database.Options {
	return database.Options{
		Driver:    c.Database.Driver,
		URL:       c.Database.URL,
		AuthToken: c.Database.AuthToken,
		Ping:      true,
	}
}

// StorageConfig returns the artifact store configuration.
func (c *Config) StorageConfig() storage.Config {
	return storage.Config{
		Driver: c.Blob.Driver,
		FSRoot: c.Blob.FSRoot,
		S3: storage.S3Config{
			Bucket:          c.Blob.S3Bucket,
			Region:          c.Blob.S3Region,
			Endpoint:        c.Blob.S3Endpoint,
			Prefix:          c.Blob.S3Prefix,
			AccessKeyID:     c.Blob.S3AccessKeyID,
			SecretAccessKey: c.Blob.S3SecretAccessKey,
			PathStyle:       c.Blob.S3PathStyle,
		},
	}
}

// OtelConfig returns the metrics exporter configuration.
func (c *Config) OtelConfig() otel.Config {
	return otel.Config{
		Endpoint: c.Otel.Endpoint,
		Enabled:  c.Otel.Enabled,
		Insecure: c.Otel.Insecure,
	}
}

// LLMConfig returns the provider configuration.
func (c *Config) LLMConfig() llm.Config {
	return llm.Config{
		GeminiAPIKey:    c.LLM.GeminiAPIKey,
		AnthropicAPIKey: c.LLM.AnthropicAPIKey,
		DeepSeekAPIKey:  c.LLM.DeepSeekAPIKey,
		LlamaAPIKey:     c.LLM.LlamaAPIKey,
		QwenAPIKey:      c.LLM.QwenAPIKey,
		GptOssAPIKey:    c.LLM.GptOssAPIKey,
		SiteURL:         c.LLM.SiteURL,
		SiteTitle:       c.LLM.SiteTitle,
		Timeout:         c.LLM.Timeout,
	}
}
