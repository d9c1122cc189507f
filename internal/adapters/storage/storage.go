// Package storage implements ports.ArtifactStore on the local filesystem,
// S3-compatible object storage, or process memory.
package storage

import (
	"context"
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/deepceutix/datagen/internal/ports"
)

const (
	DriverFilesystem = "fs"
	DriverS3         = "s3"
	DriverMemory     = "memory"
)

// Config selects and configures a driver.
type Config struct {
	Driver string
	FSRoot string
	S3     S3Config
}

// Open returns the store named by cfg.Driver (default fs).
func Open(ctx context.Context, cfg Config) (ports.ArtifactStore, error) {
	switch cfg.Driver {
	case "", DriverFilesystem:
		return NewFilesystem(cfg.FSRoot)
	case DriverS3:
		return NewS3(ctx, cfg.S3)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown artifact driver %q", cfg.Driver)
	}
}

// sanitizeKey rejects keys that could escape the store root.
func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("empty key")
	}
	if strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return "", fmt.Errorf("invalid key %q contains '..'", key)
		}
	}
	return path.Clean(key), nil
}

func contentTypeFor(key, given string) string {
	if given != "" {
		return given
	}
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
