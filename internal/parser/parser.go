// Package parser extracts a chart, tables and code from free-form model output.
package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/deepceutix/datagen/internal/logging"
	"github.com/deepceutix/datagen/internal/ports"
	"github.com/deepceutix/datagen/internal/series"
	"github.com/deepceutix/datagen/internal/table"
)

// MinExplanationLength is the shortest cleaned explanation kept; anything
// shorter is replaced by the raw text.
const MinExplanationLength = 50

var (
	jsonFenceRe  = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	bareObjectRe = regexp.MustCompile(`(?s)\{.*?\}`)
	tableRe      = regexp.MustCompile(`\|(.+\|)+\s*\n\s*\|[-:\s|]+\|\s*\n((?:\|.+\|\s*\n?)*)`)
	codeFenceRe  = regexp.MustCompile("(?s)```(?:python|py)?\\s*(.*?)\\s*```")
	anyFenceRe   = regexp.MustCompile("(?s)```.*?```")
	blankLineRe  = regexp.MustCompile(`(?m)^\s*[\r\n]`)
	manyNewlines = regexp.MustCompile(`\n{3,}`)
)

// Response is the structured form of a model answer.
type Response struct {
	Chart       *series.XY    `json:"chart"`
	Tables      []table.Table `json:"tables"`
	Code        string        `json:"code,omitempty"`
	Explanation string        `json:"explanation"`
}

// Parser turns model output into a Response.
type Parser struct {
	logger ports.Logger
}

// New creates a parser that reports skipped fragments to logger.
func New(logger ports.Logger) *Parser {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Parser{logger: logger}
}

// Parse extracts structure from text. label names the chart when the JSON
// carries no label of its own. Parse never fails: whatever cannot be
// extracted stays in the explanation.
func (p *Parser) Parse(text, label string) Response {
	res := Response{Tables: []table.Table{}}
	clean := text

	for _, m := range jsonFenceRe.FindAllStringSubmatch(text, -1) {
		xy, err := chartFromJSON(m[1], label)
		if err != nil {
			p.logger.Debug(fmt.Sprintf("skipping json block: %v", err))
			continue
		}
		if xy != nil {
			res.Chart = xy
			clean = strings.Replace(clean, m[0], "", 1)
		}
	}

	if res.Chart == nil {
		for _, m := range bareObjectRe.FindAllString(text, -1) {
			xy, err := chartFromJSON(m, label)
			if err != nil || xy == nil {
				continue
			}
			res.Chart = xy
			clean = strings.Replace(clean, m, "", 1)
		}
	}

	for _, m := range tableRe.FindAllString(text, -1) {
		t, ok := parseTable(m)
		if !ok {
			continue
		}
		res.Tables = append(res.Tables, t)
		clean = strings.Replace(clean, m, "", 1)
	}

	for _, m := range codeFenceRe.FindAllStringSubmatch(text, -1) {
		block := m[0]
		if strings.Contains(block, "matplotlib") || strings.Contains(block, "plt.") ||
			strings.Contains(block, "import") || !strings.Contains(block, "{") {
			res.Code = strings.TrimSpace(m[1])
			clean = strings.Replace(clean, block, "", 1)
			break
		}
	}

	res.Explanation = explanation(clean)
	if utf8.RuneCountInString(res.Explanation) < MinExplanationLength {
		res.Explanation = text
	}
	return res
}

type chartPayload struct {
	X     []any  `json:"x"`
	Y     []any  `json:"y"`
	Label string `json:"label"`
}

// chartFromJSON returns nil, nil for valid JSON that is not a chart.
func chartFromJSON(raw, label string) (*series.XY, error) {
	var c chartPayload
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if c.X == nil || c.Y == nil {
		return nil, nil
	}
	x, err := numbers(c.X)
	if err != nil {
		return nil, fmt.Errorf("x: %w", err)
	}
	y, err := numbers(c.Y)
	if err != nil {
		return nil, fmt.Errorf("y: %w", err)
	}
	if c.Label != "" {
		label = c.Label
	}
	xy := &series.XY{X: x, Y: y, Label: label}
	if err := xy.Validate(); err != nil {
		return nil, err
	}
	return xy, nil
}

func numbers(vals []any) ([]float64, error) {
	out := make([]float64, len(vals))
	for i, v := range vals {
		switch n := v.(type) {
		case float64:
			out[i] = n
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
			if err != nil {
				return nil, fmt.Errorf("value %d %q is not a number", i, n)
			}
			out[i] = f
		case bool:
			if n {
				out[i] = 1
			}
		case nil:
			out[i] = 0
		default:
			return nil, fmt.Errorf("value %d has unsupported type %T", i, v)
		}
	}
	return out, nil
}

func parseTable(block string) (table.Table, bool) {
	lines := strings.Split(strings.TrimSpace(block), "\n")
	if len(lines) < 3 {
		return table.Table{}, false
	}
	headers := cells(lines[0])
	var rows [][]string
	for _, line := range lines[2:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, cells(line))
	}
	if len(headers) == 0 || len(rows) == 0 {
		return table.Table{}, false
	}
	return table.Table{Headers: headers, Rows: rows}, true
}

// cells splits a pipe row, dropping empty cells.
func cells(line string) []string {
	var out []string
	for _, c := range strings.Split(line, "|") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func explanation(s string) string {
	s = anyFenceRe.ReplaceAllString(s, "")
	s = tableRe.ReplaceAllString(s, "")
	s = bareObjectRe.ReplaceAllString(s, "")
	s = blankLineRe.ReplaceAllString(s, "")
	s = manyNewlines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
