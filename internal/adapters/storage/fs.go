package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/deepceutix/datagen/internal/ports"
)

// Filesystem stores artifacts as plain files under a root directory, so a
// run's outputs land in <root>/<runID>/.
type Filesystem struct {
	root string
}

// NewFilesystem creates the root directory if needed.
func NewFilesystem(root string) (*Filesystem, error) {
	if root == "" {
		root = "./temp"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact root: %w", err)
	}
	return &Filesystem{root: root}, nil
}

func (s *Filesystem) Driver() string { return DriverFilesystem }

// Root returns the directory artifacts are written under.
func (s *Filesystem) Root() string { return s.root }

func (s *Filesystem) pathFor(key string) (string, error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(k)), nil
}

// Put writes through a temp file and renames it into place. Existing keys
// are rejected.
func (s *Filesystem) Put(_ context.Context, key string, r io.Reader, contentType string) (ports.ArtifactInfo, error) {
	dest, err := s.pathFor(key)
	if err != nil {
		return ports.ArtifactInfo{}, err
	}
	if _, err := os.Stat(dest); err == nil {
		return ports.ArtifactInfo{}, fmt.Errorf("artifact %s already exists", key)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return ports.ArtifactInfo{}, fmt.Errorf("failed to create run directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".tmp-*")
	if err != nil {
		return ports.ArtifactInfo{}, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	size, err := io.Copy(tmp, r)
	if err != nil {
		_ = tmp.Close()
		return ports.ArtifactInfo{}, fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return ports.ArtifactInfo{}, fmt.Errorf("failed to close artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return ports.ArtifactInfo{}, fmt.Errorf("failed to move artifact into place: %w", err)
	}

	st, err := os.Stat(dest)
	if err != nil {
		return ports.ArtifactInfo{}, err
	}
	return ports.ArtifactInfo{
		Key:          key,
		Size:         size,
		ContentType:  contentTypeFor(key, contentType),
		LastModified: st.ModTime().UTC(),
	}, nil
}

func (s *Filesystem) Get(_ context.Context, key string) (ports.ArtifactInfo, io.ReadCloser, error) {
	p, err := s.pathFor(key)
	if err != nil {
		return ports.ArtifactInfo{}, nil, err
	}
	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return ports.ArtifactInfo{}, nil, fmt.Errorf("%w: %s", ports.ErrArtifactNotFound, key)
	}
	if err != nil {
		return ports.ArtifactInfo{}, nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return ports.ArtifactInfo{}, nil, err
	}
	if st.IsDir() {
		_ = f.Close()
		return ports.ArtifactInfo{}, nil, fmt.Errorf("%w: %s", ports.ErrArtifactNotFound, key)
	}
	return s.info(key, st), f, nil
}

func (s *Filesystem) List(_ context.Context, prefix string) ([]ports.ArtifactInfo, error) {
	var infos []ports.ArtifactInfo
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".tmp-") {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		st, err := d.Info()
		if err != nil {
			return err
		}
		infos = append(infos, s.info(key, st))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

func (s *Filesystem) Delete(_ context.Context, key string) (bool, error) {
	p, err := s.pathFor(key)
	if err != nil {
		return false, err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete artifact: %w", err)
	}
	return true, nil
}

func (s *Filesystem) info(key string, st fs.FileInfo) ports.ArtifactInfo {
	return ports.ArtifactInfo{
		Key:          key,
		Size:         st.Size(),
		ContentType:  contentTypeFor(key, ""),
		LastModified: st.ModTime().UTC(),
	}
}
