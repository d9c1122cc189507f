// Package scenario holds the named chart generators and the runner that turns
// one invocation into stored artifacts and a run record.
//
// Every scenario is a straight line: build arrays, derive statistics, describe
// one chart and declare which series is its data. Scenarios never share state.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/deepceutix/datagen/internal/render"
	"github.com/deepceutix/datagen/internal/series"
	"github.com/deepceutix/datagen/internal/table"
)

var (
	// ErrUnknownScenario is returned for names the registry does not hold.
	ErrUnknownScenario = errors.New("unknown scenario")
	// ErrInvalidParams is returned by Params.Validate.
	ErrInvalidParams = errors.New("invalid scenario params")
)

// Bounds for Params.Points when it is set.
const (
	MinPoints = 2
	MaxPoints = 10000
)

// Params tune a run. Points of 0 selects the scenario default; Noise adds
// simulated measurement noise where the scenario supports it.
type Params struct {
	Seed   int64 `json:"seed"`
	Noise  bool  `json:"noise"`
	Points int   `json:"points"`
}

// Validate rejects a Points value outside [MinPoints, MaxPoints]. Zero is
// valid and keeps the scenario default.
func (p Params) Validate() error {
	if p.Points == 0 {
		return nil
	}
	if p.Points < MinPoints || p.Points > MaxPoints {
		return fmt.Errorf("%w: points must be 0 or between %d and %d, got %d",
			ErrInvalidParams, MinPoints, MaxPoints, p.Points)
	}
	return nil
}

func (p Params) points(def int) int {
	if p.Points <= 0 {
		return def
	}
	return p.Points
}

func (p Params) rng() *rand.Rand {
	s := uint64(p.Seed)
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// Result is everything a scenario produces. Data is the declared x/y series
// written to the sidecar; nil means the scenario has none.
type Result struct {
	Chart   render.Chart
	Data    *series.XY
	Tables  []table.Table
	Summary []string
}

type Scenario interface {
	Name() string
	Describe() string
	Run(ctx context.Context, p Params) (*Result, error)
}

type funcScenario struct {
	name string
	desc string
	run  func(ctx context.Context, p Params) (*Result, error)
}

func (s funcScenario) Name() string     { return s.name }
func (s funcScenario) Describe() string { return s.desc }
func (s funcScenario) Run(ctx context.Context, p Params) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.run(ctx, p)
}

// Registry maps names to scenarios.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Scenario
}

// NewRegistry returns a registry holding scenarios.
func NewRegistry(scenarios ...Scenario) *Registry {
	r := &Registry{byName: make(map[string]Scenario)}
	for _, s := range scenarios {
		r.byName[s.Name()] = s
	}
	return r
}

// Register adds s, rejecting duplicate names.
func (r *Registry) Register(s Scenario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[s.Name()]; ok {
		return fmt.Errorf("scenario %q already registered", s.Name())
	}
	r.byName[s.Name()] = s
	return nil
}

// Get looks a scenario up by name.
func (r *Registry) Get(name string) (Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScenario, name)
	}
	return s, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// All returns the scenarios sorted by name.
func (r *Registry) All() []Scenario {
	names := r.Names()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Scenario, len(names))
	for i, n := range names {
		out[i] = r.byName[n]
	}
	return out
}

// Builtins returns a registry with every built-in scenario.
func Builtins() *Registry {
	return NewRegistry(
		pkScenario(),
		ftirScenario(),
		xrdScenario(),
		dscScenario(),
		tgaScenario(),
		dissolutionScenario(),
		particleScenario(),
		patientsScenario(),
		squareScenario(),
		sineScenario(),
	)
}
