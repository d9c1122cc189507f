package templates

import (
	"io"

	"github.com/a-h/templ"
)

func statusClass(status string) string {
	switch status {
	case "succeeded":
		return "status status-ok"
	case "failed":
		return "status status-failed"
	default:
		return "status status-running"
	}
}

func runURL(id string) templ.SafeURL {
	return templ.URL("/runs/" + id)
}

func truncateID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// writer collects the first write error so components read top to bottom.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(s string) {
	if w.err == nil {
		_, w.err = io.WriteString(w.w, s)
	}
}

func (w *writer) text(s string) { w.raw(templ.EscapeString(s)) }
