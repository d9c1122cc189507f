// Package generate orchestrates model calls and scenario runs for the API and CLI.
package generate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/deepceutix/datagen/internal/domain"
	"github.com/deepceutix/datagen/internal/llm"
	"github.com/deepceutix/datagen/internal/parser"
	"github.com/deepceutix/datagen/internal/ports"
	"github.com/deepceutix/datagen/internal/render"
	"github.com/deepceutix/datagen/internal/scenario"
	"github.com/deepceutix/datagen/internal/sidecar"
)

// ErrEmptyPrompt is returned when Generate is called without a prompt.
var ErrEmptyPrompt = errors.New("prompt is required")

// Providers resolves a model name to a client.
type Providers interface {
	Get(model string) (llm.Provider, error)
}

// Service ties the model clients, the parser and the scenario runner to the
// run store.
type Service struct {
	providers Providers
	parser    *parser.Parser
	runner    *scenario.Runner
	runs      ports.RunRepository
	artifacts ports.ArtifactStore
	metrics   ports.MetricsExporter
	logger    ports.Logger

	now   func() time.Time
	newID func() string
}

// Deps groups the collaborators of a Service.
type Deps struct {
	Providers Providers
	Runner    *scenario.Runner
	Runs      ports.RunRepository
	Artifacts ports.ArtifactStore
	Metrics   ports.MetricsExporter
	Logger    ports.Logger
}

func NewService(d Deps) *Service {
	return &Service{
		providers: d.Providers,
		parser:    parser.New(d.Logger),
		runner:    d.Runner,
		runs:      d.Runs,
		artifacts: d.Artifacts,
		metrics:   d.Metrics,
		logger:    d.Logger,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// Result is a parsed model answer plus the run that recorded it.
type Result struct {
	Run      *domain.Run
	Response parser.Response
}

// Generate sends prompt to model and parses the answer. The call is recorded
// as a generate run; a parsed chart is stored as plot.png and data.json.
func (s *Service) Generate(ctx context.Context, prompt, model string) (*Result, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}
	provider, err := s.providers.Get(model)
	if err != nil {
		return nil, err
	}
	model = strings.ToLower(strings.TrimSpace(model))

	run := &domain.Run{
		ID:        s.newID(),
		Kind:      domain.RunKindGenerate,
		Target:    model,
		Status:    domain.RunStatusRunning,
		StartedAt: s.now(),
	}
	if err := s.runs.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	text, err := provider.Complete(ctx, prompt)
	if err != nil {
		return &Result{Run: run}, s.fail(ctx, run, fmt.Errorf("model %s failed: %w", model, err))
	}

	resp := s.parser.Parse(text, model)
	run.Summary = summarize(resp)
	size := s.storeChart(ctx, run, resp)

	run.Finish(s.now(), nil)
	if err := s.runs.Update(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to update run: %w", err)
	}
	s.export(ctx, run, size)
	s.logger.Info(fmt.Sprintf("run %s: model %s answered in %dms", run.ID, model, *run.DurationMs))
	return &Result{Run: run, Response: resp}, nil
}

// RunScenario runs a built-in scenario.
func (s *Service) RunScenario(ctx context.Context, name string, p scenario.Params) (*scenario.Outcome, error) {
	return s.runner.Run(ctx, name, p)
}

// RunScenarios runs several scenarios concurrently with the same params.
func (s *Service) RunScenarios(ctx context.Context, names []string, p scenario.Params) ([]*scenario.Outcome, error) {
	return s.runner.RunAll(ctx, names, p)
}

// Scenarios lists the registered scenarios.
func (s *Service) Scenarios() []scenario.Scenario {
	return s.runner.Registry().All()
}

// Run returns a stored run.
func (s *Service) Run(ctx context.Context, id string) (*domain.Run, error) {
	return s.runs.GetByID(ctx, id)
}

// Runs lists stored runs, newest first.
func (s *Service) Runs(ctx context.Context, opts ports.ListRunsOptions) ([]*domain.Run, error) {
	return s.runs.List(ctx, opts)
}

func summarize(resp parser.Response) []string {
	chart := "Chart: none"
	if resp.Chart != nil {
		chart = fmt.Sprintf("Chart: %d points", resp.Chart.Len())
	}
	code := "Code: none"
	if resp.Code != "" {
		code = fmt.Sprintf("Code: %d lines", strings.Count(resp.Code, "\n")+1)
	}
	return []string{chart, fmt.Sprintf("Tables: %d", len(resp.Tables)), code}
}

// storeChart renders and exports a parsed chart. Failures are logged only.
func (s *Service) storeChart(ctx context.Context, run *domain.Run, resp parser.Response) int64 {
	if resp.Chart == nil {
		s.logger.Debug(fmt.Sprintf("run %s: data export skipped: no chart in answer", run.ID))
		return 0
	}
	var size int64

	var png bytes.Buffer
	c := render.Chart{
		Title:  resp.Chart.Label,
		Series: []render.Line{{Name: resp.Chart.Label, X: resp.Chart.X, Y: resp.Chart.Y}},
	}
	if err := render.Render(&png, c); err != nil {
		s.logger.Error(fmt.Sprintf("run %s: could not render chart: %v", run.ID, err))
	} else if info, err := s.artifacts.Put(ctx, domain.PlotKey(run.ID), &png, "image/png"); err != nil {
		s.logger.Error(fmt.Sprintf("run %s: failed to store plot: %v", run.ID, err))
	} else {
		run.Artifacts = append(run.Artifacts, info.Key)
		size += info.Size
	}

	var data bytes.Buffer
	if err := sidecar.Write(&data, resp.Chart); err != nil {
		s.logger.Error(fmt.Sprintf("run %s: could not export data: %v", run.ID, err))
		return size
	}
	info, err := s.artifacts.Put(ctx, domain.DataKey(run.ID), &data, "application/json")
	if err != nil {
		s.logger.Error(fmt.Sprintf("run %s: could not export data: %v", run.ID, err))
		return size
	}
	run.DataExported = true
	run.Artifacts = append(run.Artifacts, info.Key)
	return size + info.Size
}

func (s *Service) fail(ctx context.Context, run *domain.Run, cause error) error {
	run.Finish(s.now(), cause)
	s.logger.Error(fmt.Sprintf("run %s: %v", run.ID, cause))
	if err := s.runs.Update(ctx, run); err != nil {
		s.logger.Error(fmt.Sprintf("run %s: failed to record failure: %v", run.ID, err))
	}
	s.export(ctx, run, 0)
	return cause
}

func (s *Service) export(ctx context.Context, run *domain.Run, size int64) {
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
	if err := s.metrics.ExportRunMetrics(ctx, m); err != nil {
		s.logger.Error(fmt.Sprintf("run %s: failed to export metrics: %v", run.ID, err))
	}
}
