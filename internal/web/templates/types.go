package templates

// RunRow is one line of the runs table.
type RunRow struct {
	ID        string
	Kind      string
	Target    string
	Status    string
	StartedAt string
	Duration  string
}

// RunDetail backs the run page.
type RunDetail struct {
	RunRow
	Seed         int64
	Noise        bool
	Points       int
	Error        string
	Summary      []string
	DataExported bool
	PlotURL      string
	DataURL      string
	Artifacts    []Artifact
}

// Artifact is a stored file of a run.
type Artifact struct {
	Name string
	URL  string
	Size string
}
