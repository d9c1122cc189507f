package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/deepceutix/datagen/internal/ports"
)

type memoryEntry struct {
	info ports.ArtifactInfo
	data []byte
}

// Memory keeps artifacts in process memory. Used by tests and throwaway servers.
type Memory struct {
	mu   sync.RWMutex
	objs map[string]memoryEntry
}

func NewMemory() *Memory { return &Memory{objs: make(map[string]memoryEntry)} }

func (s *Memory) Driver() string { return DriverMemory }

func (s *Memory) Put(_ context.Context, key string, r io.Reader, contentType string) (ports.ArtifactInfo, error) {
	if _, err := sanitizeKey(key); err != nil {
		return ports.ArtifactInfo{}, err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return ports.ArtifactInfo{}, fmt.Errorf("failed to read artifact: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.objs[key]; exists {
		return ports.ArtifactInfo{}, fmt.Errorf("artifact %s already exists", key)
	}
	info := ports.ArtifactInfo{
		Key:          key,
		Size:         int64(len(b)),
		ContentType:  contentTypeFor(key, contentType),
		LastModified: time.Now().UTC(),
	}
	s.objs[key] = memoryEntry{info: info, data: b}
	return info, nil
}

func (s *Memory) Get(_ context.Context, key string) (ports.ArtifactInfo, io.ReadCloser, error) {
	s.mu.RLock()
	obj, ok := s.objs[key]
	s.mu.RUnlock()
	if !ok {
		return ports.ArtifactInfo{}, nil, fmt.Errorf("%w: %s", ports.ErrArtifactNotFound, key)
	}
	return obj.info, io.NopCloser(bytes.NewReader(slices.Clone(obj.data))), nil
}

func (s *Memory) List(_ context.Context, prefix string) ([]ports.ArtifactInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ports.ArtifactInfo, 0, len(s.objs))
	for k, v := range s.objs {
		if strings.HasPrefix(k, prefix) {
			out = append(out, v.info)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *Memory) Delete(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objs[key]
	delete(s.objs, key)
	return ok, nil
}
