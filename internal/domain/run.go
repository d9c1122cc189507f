package domain

import (
	"errors"
	"time"
)

// ErrRunNotFound is returned when a run ID is unknown to the store.
var ErrRunNotFound = errors.New("run not found")

type RunKind string

const (
	RunKindScenario RunKind = "scenario"
	RunKindGenerate RunKind = "generate"
)

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

// RunParams are the knobs a scenario run was started with.
type RunParams struct {
	Seed   int64 `json:"seed"`
	Noise  bool  `json:"noise"`
	Points int   `json:"points"`
}

// Run is one execution: a scenario producing a chart, or an LLM generation.
// Target is the scenario name or the model name depending on Kind.
type Run struct {
	ID           string
	Kind         RunKind
	Target       string
	Params       RunParams
	Status       RunStatus
	Summary      []string
	Artifacts    []string
	DataExported bool
	Error        string
	StartedAt    time.Time
	EndedAt      *time.Time
	DurationMs   *int64
}

// Finish stamps the end time, duration and final status.
func (r *Run) Finish(at time.Time, err error) {
	r.EndedAt = &at
	d := at.Sub(r.StartedAt).Milliseconds()
	r.DurationMs = &d
	if err != nil {
		r.Status = RunStatusFailed
		r.Error = err.Error()
		return
	}
	r.Status = RunStatusSucceeded
}

// PlotKey is the artifact key of a run's chart.
func PlotKey(runID string) string { return runID + "/plot.png" }

// DataKey is the artifact key of a run's x/y sidecar.
func DataKey(runID string) string { return runID + "/data.json" }
