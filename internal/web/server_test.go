package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deepceutix/datagen/internal/adapters/storage"
	"github.com/deepceutix/datagen/internal/adapters/turso"
	"github.com/deepceutix/datagen/internal/database"
	"github.com/deepceutix/datagen/internal/generate"
	"github.com/deepceutix/datagen/internal/llm"
	"github.com/deepceutix/datagen/internal/logging"
	"github.com/deepceutix/datagen/internal/migrate"
	"github.com/deepceutix/datagen/internal/scenario"
)

type stubProvider struct {
	answer string
	err    error
}

func (p stubProvider) Complete(context.Context, string) (string, error) {
	return p.answer, p.err
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, database.Options{Driver: database.DriverSQLite, URL: ":memory:"})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := migrate.RunAll(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	runs := turso.NewRunRepository(db)
	artifacts := storage.NewMemory()
	metrics := NewMetrics()
	logger := logging.Nop{}

	providers := llm.NewRegistry()
	providers.Register("gemini", stubProvider{answer: "A linear ramp, exactly as requested in the prompt above.\n```json\n{\"x\": [0, 1], \"y\": [0, 2]}\n```"})

	runner := scenario.NewRunner(scenario.Builtins(), runs, artifacts, metrics, logger)
	svc := generate.NewService(generate.Deps{
		Providers: providers,
		Runner:    runner,
		Runs:      runs,
		Artifacts: artifacts,
		Metrics:   metrics,
		Logger:    logger,
	})

	srv := httptest.NewServer(NewServer(svc, artifacts, metrics, logger))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string, header map[string]string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, string(b)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, body := do(t, http.MethodGet, srv.URL+"/health", "", nil)
	if resp.StatusCode != http.StatusOK || body != "ok" {
		t.Errorf("health = %d %q", resp.StatusCode, body)
	}
}

func TestAPIScenarios(t *testing.T) {
	srv := newTestServer(t)
	resp, body := do(t, http.MethodGet, srv.URL+"/api/scenarios", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got []scenarioResponse
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	names := map[string]bool{}
	for _, s := range got {
		names[s.Name] = true
		if s.Description == "" {
			t.Errorf("scenario %s has no description", s.Name)
		}
	}
	for _, want := range []string{"pk", "ftir", "xrd", "dsc", "tga", "dissolution", "particle-size", "patients", "square", "sine"} {
		if !names[want] {
			t.Errorf("missing scenario %s", want)
		}
	}
}

func TestAPIRunScenario(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, http.MethodPost, srv.URL+"/api/scenarios/pk/run", `{"seed": 7, "noise": true}`, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d body %s", resp.StatusCode, body)
	}
	var got scenarioRunResponse
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Run.Status != "succeeded" || got.Run.Params.Seed != 7 || !got.Run.Params.Noise {
		t.Errorf("run = %+v", got.Run)
	}
	if got.Run.ImagePath != "/api/temp-image/"+got.Run.ID+"/plot.png" {
		t.Errorf("image_path = %q", got.Run.ImagePath)
	}
	if got.Data == nil || got.Data.Len() != 25 {
		t.Errorf("data = %+v", got.Data)
	}
	if len(got.Tables) == 0 {
		t.Error("expected tables")
	}

	img, _ := do(t, http.MethodGet, srv.URL+got.Run.ImagePath, "", nil)
	if img.StatusCode != http.StatusOK || img.Header.Get("Content-Type") != "image/png" {
		t.Errorf("plot = %d %q", img.StatusCode, img.Header.Get("Content-Type"))
	}
	data, body := do(t, http.MethodGet, srv.URL+"/api/temp-image/"+got.Run.ID+"/data.json", "", nil)
	if data.StatusCode != http.StatusOK || !strings.HasPrefix(body, `{"x":[`) {
		t.Errorf("data.json = %d %q", data.StatusCode, body)
	}

	one, body := do(t, http.MethodGet, srv.URL+"/api/runs/"+got.Run.ID, "", nil)
	if one.StatusCode != http.StatusOK || !strings.Contains(body, `"target":"pk"`) {
		t.Errorf("run = %d %s", one.StatusCode, body)
	}
}

func TestAPIRunScenario_Errors(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"unknown scenario", "/api/scenarios/nope/run", "", http.StatusNotFound},
		{"bad json", "/api/scenarios/pk/run", "{", http.StatusBadRequest},
		{"unknown field", "/api/scenarios/pk/run", `{"colour": 1}`, http.StatusBadRequest},
		{"negative points", "/api/scenarios/pk/run", `{"points": -1}`, http.StatusBadRequest},
		{"single point", "/api/scenarios/pk/run", `{"points": 1}`, http.StatusBadRequest},
		{"too many points", "/api/scenarios/square/run", `{"points": 2000000}`, http.StatusBadRequest},
		{"too many rows", "/api/scenarios/patients/run", `{"points": 100000}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, http.MethodPost, srv.URL+tt.path, tt.body, nil)
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d (%s)", resp.StatusCode, tt.want, body)
			}
		})
	}
}

func TestAPIGenerate(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, http.MethodPost, srv.URL+"/api/generate", `{"prompt": "ramp", "model": "Gemini"}`, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d body %s", resp.StatusCode, body)
	}
	var got generateResponse
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Chart == nil || got.Chart.Len() != 2 || got.ImagePath == "" {
		t.Errorf("response = %+v", got)
	}

	for _, tc := range []struct{ body string }{
		{`{"prompt": "", "model": "gemini"}`},
		{`{"prompt": "hi", "model": "mistral"}`},
	} {
		resp, _ := do(t, http.MethodPost, srv.URL+"/api/generate", tc.body, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.body, resp.StatusCode)
		}
	}
}

func TestAPIRuns(t *testing.T) {
	srv := newTestServer(t)
	do(t, http.MethodPost, srv.URL+"/api/scenarios/sine/run", "", nil)
	do(t, http.MethodPost, srv.URL+"/api/scenarios/square/run", "", nil)

	resp, body := do(t, http.MethodGet, srv.URL+"/api/runs?target=sine", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got []runResponse
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Target != "sine" {
		t.Errorf("runs = %+v", got)
	}

	missing, _ := do(t, http.MethodGet, srv.URL+"/api/runs/does-not-exist", "", nil)
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("missing run status = %d", missing.StatusCode)
	}
	art, _ := do(t, http.MethodGet, srv.URL+"/api/temp-image/does-not-exist/plot.png", "", nil)
	if art.StatusCode != http.StatusNotFound {
		t.Errorf("missing artifact status = %d", art.StatusCode)
	}
}

func TestRunPages(t *testing.T) {
	srv := newTestServer(t)
	_, body := do(t, http.MethodPost, srv.URL+"/api/scenarios/xrd/run", "", nil)
	var run scenarioRunResponse
	if err := json.Unmarshal([]byte(body), &run); err != nil {
		t.Fatalf("decode: %v", err)
	}

	resp, page := do(t, http.MethodGet, srv.URL+"/runs/"+run.Run.ID, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(page, "<html") || !strings.Contains(page, "scenario xrd") || !strings.Contains(page, run.Run.ImagePath) {
		t.Errorf("unexpected page: %s", page)
	}
	if !strings.Contains(page, "<h2>Artifacts</h2>") || !strings.Contains(page, "KiB") {
		t.Errorf("run page should list artifacts with sizes: %s", page)
	}

	_, fragment := do(t, http.MethodGet, srv.URL+"/runs/"+run.Run.ID, "", map[string]string{"HX-Request": "true"})
	if strings.Contains(fragment, "<html") || !strings.Contains(fragment, "scenario xrd") {
		t.Errorf("htmx request should get a fragment: %s", fragment)
	}

	_, list := do(t, http.MethodGet, srv.URL+"/runs", "", nil)
	if !strings.Contains(list, "/runs/"+run.Run.ID) {
		t.Errorf("runs page should link the run: %s", list)
	}

	missing, _ := do(t, http.MethodGet, srv.URL+"/runs/nope", "", nil)
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("missing run page status = %d", missing.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	do(t, http.MethodPost, srv.URL+"/api/scenarios/sine/run", "", nil)
	do(t, http.MethodGet, srv.URL+"/health", "", nil)

	resp, body := do(t, http.MethodGet, srv.URL+"/metrics", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, want := range []string{
		`datagen_http_requests_total{code="200",method="GET",route="/health"} 1`,
		`datagen_runs_total{kind="scenario",status="succeeded",target="sine"} 1`,
		`route="/api/scenarios/{name}/run"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}
