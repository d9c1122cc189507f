package ports

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrArtifactNotFound is returned by Get for unknown keys.
var ErrArtifactNotFound = errors.New("artifact not found")

// ArtifactInfo describes a stored artifact.
type ArtifactInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size_bytes"`
	ContentType  string    `json:"content_type,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

// ArtifactStore keeps run outputs (charts, sidecars) under "<runID>/<file>" keys.
type ArtifactStore interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (ArtifactInfo, error)
	Get(ctx context.Context, key string) (ArtifactInfo, io.ReadCloser, error)
	List(ctx context.Context, prefix string) ([]ArtifactInfo, error)
	Delete(ctx context.Context, key string) (bool, error)
	Driver() string
}
