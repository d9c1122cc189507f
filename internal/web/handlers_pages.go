package web

import (
	"errors"
	"fmt"
	"net/http"
	"path"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/deepceutix/datagen/internal/domain"
	"github.com/deepceutix/datagen/internal/util"
	"github.com/deepceutix/datagen/internal/web/templates"
)

func runRow(run *domain.Run) templates.RunRow {
	return templates.RunRow{
		ID:        run.ID,
		Kind:      string(run.Kind),
		Target:    run.Target,
		Status:    string(run.Status),
		StartedAt: util.FormatDateTime(run.StartedAt),
		Duration:  util.FormatDurationMs(run.DurationMs),
	}
}

// render writes a page, or only its fragment for htmx requests.
func (s *Server) render(w http.ResponseWriter, r *http.Request, title string, body templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	c := body
	if !IsHTMX(r) {
		c = templates.Layout(title, body)
	}
	if err := c.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleRunsPage(w http.ResponseWriter, r *http.Request) {
	runs, err := s.svc.Runs(r.Context(), listOptions(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rows := make([]templates.RunRow, len(runs))
	for i, run := range runs {
		rows[i] = runRow(run)
	}
	s.render(w, r, "Runs", templates.RunsTable(rows))
}

func (s *Server) handleRunPage(w http.ResponseWriter, r *http.Request) {
	run, err := s.svc.Run(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrRunNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	detail := templates.RunDetail{
		RunRow:       runRow(run),
		Seed:         run.Params.Seed,
		Noise:        run.Params.Noise,
		Points:       run.Params.Points,
		Error:        run.Error,
		Summary:      run.Summary,
		DataExported: run.DataExported,
		PlotURL:      imagePath(run),
	}
	if run.DataExported {
		detail.DataURL = "/api/temp-image/" + domain.DataKey(run.ID)
	}
	infos, err := s.artifacts.List(r.Context(), run.ID+"/")
	if err != nil {
		s.logger.Error(fmt.Sprintf("failed to list artifacts for run %s: %v", run.ID, err))
	}
	for _, info := range infos {
		detail.Artifacts = append(detail.Artifacts, templates.Artifact{
			Name: path.Base(info.Key),
			URL:  "/api/temp-image/" + info.Key,
			Size: util.FormatBytes(info.Size),
		})
	}
	s.render(w, r, "Run "+run.ID, templates.RunPage(detail))
}
