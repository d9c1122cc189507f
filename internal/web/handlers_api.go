package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/deepceutix/datagen/internal/domain"
	"github.com/deepceutix/datagen/internal/generate"
	"github.com/deepceutix/datagen/internal/llm"
	"github.com/deepceutix/datagen/internal/ports"
	"github.com/deepceutix/datagen/internal/scenario"
	"github.com/deepceutix/datagen/internal/series"
	"github.com/deepceutix/datagen/internal/table"
)

const maxBodyBytes = 1 << 20

type scenarioResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type runResponse struct {
	ID           string           `json:"id"`
	Kind         domain.RunKind   `json:"kind"`
	Target       string           `json:"target"`
	Params       domain.RunParams `json:"params"`
	Status       domain.RunStatus `json:"status"`
	Summary      []string         `json:"summary"`
	Artifacts    []string         `json:"artifacts"`
	DataExported bool             `json:"data_exported"`
	Error        string           `json:"error,omitempty"`
	StartedAt    time.Time        `json:"started_at"`
	EndedAt      *time.Time       `json:"ended_at,omitempty"`
	DurationMs   *int64           `json:"duration_ms,omitempty"`
	ImagePath    string           `json:"image_path,omitempty"`
}

type scenarioRunResponse struct {
	Run    runResponse   `json:"run"`
	Data   *series.XY    `json:"data"`
	Tables []table.Table `json:"tables"`
}

type generateRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
}

type generateResponse struct {
	RunID       string        `json:"run_id"`
	Chart       *series.XY    `json:"chart"`
	Tables      []table.Table `json:"tables"`
	Code        string        `json:"code,omitempty"`
	Explanation string        `json:"explanation"`
	ImagePath   string        `json:"image_path,omitempty"`
}

func imagePath(run *domain.Run) string {
	key := domain.PlotKey(run.ID)
	for _, a := range run.Artifacts {
		if a == key {
			return "/api/temp-image/" + key
		}
	}
	return ""
}

func toRunResponse(run *domain.Run) runResponse {
	summary := run.Summary
	if summary == nil {
		summary = []string{}
	}
	artifacts := run.Artifacts
	if artifacts == nil {
		artifacts = []string{}
	}
	return runResponse{
		ID:           run.ID,
		Kind:         run.Kind,
		Target:       run.Target,
		Params:       run.Params,
		Status:       run.Status,
		Summary:      summary,
		Artifacts:    artifacts,
		DataExported: run.DataExported,
		Error:        run.Error,
		StartedAt:    run.StartedAt,
		EndedAt:      run.EndedAt,
		DurationMs:   run.DurationMs,
		ImagePath:    imagePath(run),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// decodeBody reads an optional JSON body; an empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func (s *Server) handleAPIScenarios(w http.ResponseWriter, r *http.Request) {
	all := s.svc.Scenarios()
	out := make([]scenarioResponse, len(all))
	for i, sc := range all {
		out[i] = scenarioResponse{Name: sc.Name(), Description: sc.Describe()}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAPIRunScenario(w http.ResponseWriter, r *http.Request) {
	var p scenario.Params
	if err := decodeBody(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := p.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	out, err := s.svc.RunScenario(r.Context(), chi.URLParam(r, "name"), p)
	switch {
	case errors.Is(err, scenario.ErrUnknownScenario):
		writeError(w, http.StatusNotFound, err)
		return
	case errors.Is(err, scenario.ErrInvalidParams):
		writeError(w, http.StatusBadRequest, err)
		return
	case err != nil && out == nil:
		writeError(w, http.StatusInternalServerError, err)
		return
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error": err.Error(),
			"run":   toRunResponse(out.Run),
		})
		return
	}

	resp := scenarioRunResponse{Run: toRunResponse(out.Run), Tables: []table.Table{}}
	if out.Result != nil {
		resp.Data = out.Result.Data
		resp.Tables = out.Result.Tables
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAPIGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := s.svc.Generate(r.Context(), req.Prompt, req.Model)
	switch {
	case errors.Is(err, generate.ErrEmptyPrompt), errors.Is(err, llm.ErrUnsupportedModel):
		writeError(w, http.StatusBadRequest, err)
		return
	case err != nil && res != nil:
		writeError(w, http.StatusBadGateway, err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		RunID:       res.Run.ID,
		Chart:       res.Response.Chart,
		Tables:      res.Response.Tables,
		Code:        res.Response.Code,
		Explanation: res.Response.Explanation,
		ImagePath:   imagePath(res.Run),
	})
}

// listOptions reads kind, target and limit query parameters.
func listOptions(r *http.Request) ports.ListRunsOptions {
	q := r.URL.Query()
	opts := ports.ListRunsOptions{Limit: 50}
	if l, err := strconv.Atoi(q.Get("limit")); err == nil && l > 0 && l <= 500 {
		opts.Limit = l
	}
	if k := q.Get("kind"); k != "" {
		kind := domain.RunKind(k)
		opts.Kind = &kind
	}
	if t := q.Get("target"); t != "" {
		opts.Target = &t
	}
	return opts
}

func (s *Server) handleAPIRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.svc.Runs(r.Context(), listOptions(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]runResponse, len(runs))
	for i, run := range runs {
		out[i] = toRunResponse(run)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAPIRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.svc.Run(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrRunNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, toRunResponse(run))
}

func (s *Server) handleAPIArtifact(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "run") + "/" + chi.URLParam(r, "file")
	info, body, err := s.artifacts.Get(r.Context(), key)
	if errors.Is(err, ports.ErrArtifactNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		// Keys with traversal segments are rejected by the store.
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer body.Close()

	if info.ContentType != "" {
		w.Header().Set("Content-Type", info.ContentType)
	}
	if info.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := io.Copy(w, body); err != nil {
		s.logger.Error(fmt.Sprintf("failed to stream artifact %s: %v", key, err))
	}
}
