package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

const styles = `<style>
body{font-family:system-ui,sans-serif;margin:2rem;color:#222}
table{border-collapse:collapse}td,th{padding:.3rem .8rem;border-bottom:1px solid #ddd;text-align:left}
.status{padding:0 .4rem;border-radius:3px}.status-ok{background:#d4f5d4}.status-failed{background:#f8d0d0}.status-running{background:#f5f0c8}
pre{background:#f6f6f6;padding:.8rem}img{max-width:100%}
</style>`

// Layout wraps body in the page chrome.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		w.text(title)
		w.raw(`</title>` + styles + `</head><body><nav><a href="/runs">Runs</a></nav><main id="content">`)
		if w.err != nil {
			return w.err
		}
		if err := body.Render(ctx, out); err != nil {
			return err
		}
		w.raw(`</main></body></html>`)
		return w.err
	})
}

// RunsTable lists runs newest first.
func RunsTable(rows []RunRow) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<h1>Runs</h1>`)
		if len(rows) == 0 {
			w.raw(`<p>No runs yet.</p>`)
			return w.err
		}
		w.raw(`<table><thead><tr><th>ID</th><th>Kind</th><th>Target</th><th>Status</th><th>Started</th><th>Duration</th></tr></thead><tbody>`)
		for _, r := range rows {
			w.raw(`<tr><td><a href="`)
			w.text(string(runURL(r.ID)))
			w.raw(`">`)
			w.text(truncateID(r.ID))
			w.raw(`</a></td><td>`)
			w.text(r.Kind)
			w.raw(`</td><td>`)
			w.text(r.Target)
			w.raw(`</td><td><span class="`)
			w.text(statusClass(r.Status))
			w.raw(`">`)
			w.text(r.Status)
			w.raw(`</span></td><td>`)
			w.text(r.StartedAt)
			w.raw(`</td><td>`)
			w.text(r.Duration)
			w.raw(`</td></tr>`)
		}
		w.raw(`</tbody></table>`)
		return w.err
	})
}

// RunPage shows one run: parameters, summary lines and its plot.
func RunPage(d RunDetail) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<h1>`)
		w.text(d.Kind + " " + d.Target)
		w.raw(` <span class="`)
		w.text(statusClass(d.Status))
		w.raw(`">`)
		w.text(d.Status)
		w.raw(`</span></h1><dl><dt>Run</dt><dd>`)
		w.text(d.ID)
		w.raw(`</dd><dt>Started</dt><dd>`)
		w.text(d.StartedAt)
		w.raw(`</dd><dt>Duration</dt><dd>`)
		w.text(d.Duration)
		w.raw(`</dd>`)
		if d.Kind == "scenario" {
			w.raw(`<dt>Seed</dt><dd>`)
			w.text(strconv.FormatInt(d.Seed, 10))
			w.raw(`</dd><dt>Noise</dt><dd>`)
			w.text(strconv.FormatBool(d.Noise))
			w.raw(`</dd><dt>Points</dt><dd>`)
			if d.Points == 0 {
				w.raw(`default`)
			} else {
				w.text(strconv.Itoa(d.Points))
			}
			w.raw(`</dd>`)
		}
		w.raw(`</dl>`)

		if d.Error != "" {
			w.raw(`<p class="status status-failed">`)
			w.text(d.Error)
			w.raw(`</p>`)
		}
		if len(d.Summary) > 0 {
			w.raw(`<h2>Summary</h2><pre>`)
			for _, line := range d.Summary {
				w.text(line)
				w.raw("\n")
			}
			w.raw(`</pre>`)
		}
		if d.PlotURL != "" {
			w.raw(`<h2>Plot</h2><img alt="plot" src="`)
			w.text(string(templ.URL(d.PlotURL)))
			w.raw(`">`)
		}
		if d.DataExported {
			w.raw(`<p><a href="`)
			w.text(string(templ.URL(d.DataURL)))
			w.raw(`">data.json</a></p>`)
		}
		if len(d.Artifacts) > 0 {
			w.raw(`<h2>Artifacts</h2><ul>`)
			for _, a := range d.Artifacts {
				w.raw(`<li><a href="`)
				w.text(string(templ.URL(a.URL)))
				w.raw(`">`)
				w.text(a.Name)
				w.raw(`</a> `)
				w.text(a.Size)
				w.raw(`</li>`)
			}
			w.raw(`</ul>`)
		}
		return w.err
	})
}
