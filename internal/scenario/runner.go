package scenario

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/deepceutix/datagen/internal/domain"
	"github.com/deepceutix/datagen/internal/ports"
	"github.com/deepceutix/datagen/internal/render"
	"github.com/deepceutix/datagen/internal/sidecar"
)

// Runner executes scenarios and records their artifacts under "<runID>/".
type Runner struct {
	registry  *Registry
	runs      ports.RunRepository
	artifacts ports.ArtifactStore
	metrics   ports.MetricsExporter
	logger    ports.Logger

	now   func() time.Time
	newID func() string
}

func NewRunner(registry *Registry, runs ports.RunRepository, artifacts ports.ArtifactStore, metrics ports.MetricsExporter, logger ports.Logger) *Runner {
	return &Runner{
		registry:  registry,
		runs:      runs,
		artifacts: artifacts,
		metrics:   metrics,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// Registry exposes the scenarios the runner can execute.
func (r *Runner) Registry() *Registry { return r.registry }

// Outcome pairs the stored run record with the scenario output. Result is nil
// when the scenario itself failed.
type Outcome struct {
	Run    *domain.Run
	Result *Result
}

// Run executes the named scenario. A scenario or render failure is recorded
// as a failed run and also returned as an error alongside the outcome; a
// failed data export is only logged.
func (r *Runner) Run(ctx context.Context, name string, p Params) (*Outcome, error) {
	s, err := r.registry.Get(name)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	run := &domain.Run{
		ID:        r.newID(),
		Kind:      domain.RunKindScenario,
		Target:    name,
		Params:    domain.RunParams{Seed: p.Seed, Noise: p.Noise, Points: p.Points},
		Status:    domain.RunStatusRunning,
		StartedAt: r.now(),
	}
	if err := r.runs.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	r.logger.Debug(fmt.Sprintf("run %s: scenario %s started", run.ID, name))

	out := &Outcome{Run: run}
	var size int64

	res, err := s.Run(ctx, p)
	if err != nil {
		return out, r.fail(ctx, run, fmt.Errorf("scenario %s failed: %w", name, err))
	}
	out.Result = res
	run.Summary = res.Summary

	var png bytes.Buffer
	if err := render.Render(&png, res.Chart); err != nil {
		return out, r.fail(ctx, run, err)
	}
	info, err := r.artifacts.Put(ctx, domain.PlotKey(run.ID), &png, "image/png")
	if err != nil {
		return out, r.fail(ctx, run, fmt.Errorf("failed to store plot: %w", err))
	}
	run.Artifacts = append(run.Artifacts, info.Key)
	size += info.Size

	if info, ok := r.exportData(ctx, run.ID, res); ok {
		run.DataExported = true
		run.Artifacts = append(run.Artifacts, info.Key)
		size += info.Size
	}

	run.Finish(r.now(), nil)
	if err := r.runs.Update(ctx, run); err != nil {
		return out, fmt.Errorf("failed to update run: %w", err)
	}
	r.export(ctx, run, size)
	r.logger.Info(fmt.Sprintf("run %s: scenario %s succeeded in %dms", run.ID, name, *run.DurationMs))
	return out, nil
}

// RunAll executes several scenarios concurrently with the same params.
// Outcomes keep the order of names; individual scenario failures are in the
// outcomes, only bookkeeping errors abort the batch.
func (r *Runner) RunAll(ctx context.Context, names []string, p Params) ([]*Outcome, error) {
	outs := make([]*Outcome, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, name := range names {
		g.Go(func() error {
			out, err := r.Run(gctx, name, p)
			if out == nil {
				return err
			}
			outs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outs, nil
}

// exportData writes the declared series next to the plot. Failures are
// logged and never fail the run.
func (r *Runner) exportData(ctx context.Context, runID string, res *Result) (ports.ArtifactInfo, bool) {
	if res.Data == nil {
		r.logger.Debug(fmt.Sprintf("run %s: data export skipped: no declared series", runID))
		return ports.ArtifactInfo{}, false
	}
	var buf bytes.Buffer
	if err := sidecar.Write(&buf, res.Data); err != nil {
		r.logger.Error(fmt.Sprintf("run %s: could not export data: %v", runID, err))
		return ports.ArtifactInfo{}, false
	}
	info, err := r.artifacts.Put(ctx, domain.DataKey(runID), &buf, "application/json")
	if err != nil {
		r.logger.Error(fmt.Sprintf("run %s: could not export data: %v", runID, err))
		return ports.ArtifactInfo{}, false
	}
	return info, true
}

func (r *Runner) fail(ctx context.Context, run *domain.Run, cause error) error {
	run.Finish(r.now(), cause)
	r.logger.Error(fmt.Sprintf("run %s: %v", run.ID, cause))
	if err := r.runs.Update(ctx, run); err != nil {
		r.logger.Error(fmt.Sprintf("run %s: failed to record failure: %v", run.ID, err))
	}
	r.export(ctx, run, 0)
	return cause
}

func (r *Runner) export(ctx context.Context, run *domain.Run, size int64) {
	m := &ports.RunMetrics{
		RunID:         run.ID,
		Kind:          string(run.Kind),
		Target:        run.Target,
		Status:        string(run.Status),
		DataExported:  run.DataExported,
		ArtifactCount: int64(len(run.Artifacts)),
		ArtifactBytes: size,
		StartedAt:     run.StartedAt,
		EndedAt:       *run.EndedAt,
	}
	if err := r.metrics.ExportRunMetrics(ctx, m); err != nil {
		r.logger.Error(fmt.Sprintf("run %s: failed to export metrics: %v", run.ID, err))
	}
}
