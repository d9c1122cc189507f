package scenario

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/deepceutix/datagen/internal/domain"
	"github.com/deepceutix/datagen/internal/ports"
)

// mockRunRepository keeps runs in memory. Func fields override behaviour.
type mockRunRepository struct {
	mu   sync.Mutex
	runs map[string]domain.Run

	CreateFunc func(ctx context.Context, run *domain.Run) error
	UpdateFunc func(ctx context.Context, run *domain.Run) error
}

func newMockRunRepository() *mockRunRepository {
	return &mockRunRepository{runs: make(map[string]domain.Run)}
}

func (m *mockRunRepository) Create(ctx context.Context, run *domain.Run) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, run)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[run.ID] = *run
	return nil
}

func (m *mockRunRepository) Update(ctx context.Context, run *domain.Run) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, run)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[run.ID] = *run
	return nil
}

func (m *mockRunRepository) GetByID(_ context.Context, id string) (*domain.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.runs[id]
	if !ok {
		return nil, domain.ErrRunNotFound
	}
	return &r, nil
}

func (m *mockRunRepository) List(_ context.Context, _ ports.ListRunsOptions) ([]*domain.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Run, 0, len(m.runs))
	for _, r := range m.runs {
		out = append(out, &r)
	}
	return out, nil
}

type mockArtifactStore struct {
	mu   sync.Mutex
	objs map[string][]byte

	PutFunc func(ctx context.Context, key string, r io.Reader, contentType string) (ports.ArtifactInfo, error)
}

func newMockArtifactStore() *mockArtifactStore {
	return &mockArtifactStore{objs: make(map[string][]byte)}
}

func (m *mockArtifactStore) Put(ctx context.Context, key string, r io.Reader, contentType string) (ports.ArtifactInfo, error) {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, key, r, contentType)
	}
	return m.put(key, r, contentType)
}

func (m *mockArtifactStore) put(key string, r io.Reader, contentType string) (ports.ArtifactInfo, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return ports.ArtifactInfo{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objs[key] = b
	return ports.ArtifactInfo{Key: key, Size: int64(len(b)), ContentType: contentType, LastModified: time.Now()}, nil
}

func (m *mockArtifactStore) Get(_ context.Context, key string) (ports.ArtifactInfo, io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objs[key]
	if !ok {
		return ports.ArtifactInfo{}, nil, ports.ErrArtifactNotFound
	}
	return ports.ArtifactInfo{Key: key, Size: int64(len(b))}, io.NopCloser(bytes.NewReader(b)), nil
}

func (m *mockArtifactStore) List(_ context.Context, prefix string) ([]ports.ArtifactInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ports.ArtifactInfo
	for k, b := range m.objs {
		if strings.HasPrefix(k, prefix) {
			out = append(out, ports.ArtifactInfo{Key: k, Size: int64(len(b))})
		}
	}
	return out, nil
}

func (m *mockArtifactStore) Delete(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objs[key]
	delete(m.objs, key)
	return ok, nil
}

func (m *mockArtifactStore) Driver() string { return "mock" }

type mockMetricsExporter struct {
	mu       sync.Mutex
	exported []*ports.RunMetrics
}

func (m *mockMetricsExporter) ExportRunMetrics(_ context.Context, rm *ports.RunMetrics) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exported = append(m.exported, rm)
	return nil
}

func (m *mockMetricsExporter) Close(context.Context) error { return nil }

type mockLogger struct {
	mu     sync.Mutex
	debugs []string
	infos  []string
	errors []string
}

func (l *mockLogger) Debug(msg string) { l.mu.Lock(); l.debugs = append(l.debugs, msg); l.mu.Unlock() }
func (l *mockLogger) Info(msg string)  { l.mu.Lock(); l.infos = append(l.infos, msg); l.mu.Unlock() }
func (l *mockLogger) Error(msg string) { l.mu.Lock(); l.errors = append(l.errors, msg); l.mu.Unlock() }
