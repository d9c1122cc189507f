// Package sidecar writes the declared plot series next to the rendered chart
// as data.json. Export is best effort: a failed export never fails a run.
package sidecar

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/deepceutix/datagen/internal/ports"
	"github.com/deepceutix/datagen/internal/series"
)

// FileName is the sidecar name inside a run directory.
const FileName = "data.json"

type payload struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// Write validates xy and encodes it as {"x": [...], "y": [...]}.
func Write(w io.Writer, xy *series.XY) error {
	if xy == nil {
		return series.ErrEmpty
	}
	if err := xy.Validate(); err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(payload{X: xy.X, Y: xy.Y})
}

// WriteFile writes xy to path.
func WriteFile(path string, xy *series.XY) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return Write(f, xy)
}

// Read decodes and validates a sidecar document.
func Read(r io.Reader) (*series.XY, error) {
	var p payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode sidecar: %w", err)
	}
	xy := &series.XY{X: p.X, Y: p.Y}
	if err := xy.Validate(); err != nil {
		return nil, err
	}
	return xy, nil
}

// ReadFile reads the sidecar at path.
func ReadFile(path string) (*series.XY, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Outcome reports what Export did.
type Outcome struct {
	Written bool
	Err     error
}

// Export writes xy to path and logs instead of failing. A nil series is
// skipped.
func Export(logger ports.Logger, path string, xy *series.XY) Outcome {
	if xy == nil {
		logger.Debug("data export skipped: no declared series")
		return Outcome{}
	}
	if err := WriteFile(path, xy); err != nil {
		logger.Error(fmt.Sprintf("could not export data: %v", err))
		return Outcome{Err: err}
	}
	logger.Debug(fmt.Sprintf("data exported to %s", path))
	return Outcome{Written: true}
}
