// Package report renders the check run for humans and machines and
// computes the final verdict.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jhouston2019/auditresponse.ai/internal/config"
	"github.com/jhouston2019/auditresponse.ai/internal/core/check"
)

type VarStatus struct {
	Name    string `json:"name"`
	Present bool   `json:"present"`
	Source  string `json:"source,omitempty"`
}

type CheckStatus struct {
	Name      string `json:"name"`
	OK        bool   `json:"ok"`
	ElapsedMS int64  `json:"elapsed_ms"`
	Kind      string `json:"kind,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// Summary is the aggregate outcome of one run. OK is true only when
// every required variable is present and every check passed.
type Summary struct {
	OK        bool          `json:"ok"`
	Vars      []VarStatus   `json:"vars"`
	Missing   []string      `json:"missing_vars,omitempty"`
	Checks    []CheckStatus `json:"checks"`
	AverageMS int64         `json:"average_ms"`
}

// Build assembles a Summary. Variable order follows the declared
// required list; check order follows the runner's probe order.
func Build(res *config.Resolution, results []check.Result) Summary {
	s := Summary{
		Vars:    make([]VarStatus, 0, len(config.RequiredVars)),
		Missing: res.Missing(),
		Checks:  make([]CheckStatus, 0, len(results)),
	}
	for _, key := range config.RequiredVars {
		s.Vars = append(s.Vars, VarStatus{
			Name:    key,
			Present: res.Has(key),
			Source:  res.SourceOf(key),
		})
	}

	allOK := true
	for _, r := range results {
		if !r.OK {
			allOK = false
		}
		s.Checks = append(s.Checks, CheckStatus{
			Name:      r.Name,
			OK:        r.OK,
			ElapsedMS: r.Millis(),
			Kind:      string(r.Kind),
			Detail:    r.Detail,
		})
	}

	s.AverageMS = averageMillis(results)
	s.OK = allOK && len(s.Missing) == 0
	return s
}

func averageMillis(results []check.Result) int64 {
	if len(results) == 0 {
		return 0
	}
	var total float64
	for _, r := range results {
		total += float64(r.Millis())
	}
	return int64(math.Round(total / float64(len(results))))
}

type Reporter struct {
	Out io.Writer
}

// Render prints the human-readable report.
func (r *Reporter) Render(s Summary) {
	fmt.Fprintln(r.Out, "Environment:")
	for _, v := range s.Vars {
		fmt.Fprintf(r.Out, "  %s %s\n", glyph(v.Present), v.Name)
	}

	fmt.Fprintln(r.Out, "Checks:")
	for _, c := range s.Checks {
		line := fmt.Sprintf("  %s %-9s %5dms", glyph(c.OK), c.Name, c.ElapsedMS)
		if c.Detail != "" {
			line += "  " + c.Detail
		}
		fmt.Fprintln(r.Out, line)
	}

	fmt.Fprintf(r.Out, "Average check latency: %dms\n", s.AverageMS)
	if len(s.Missing) > 0 {
		fmt.Fprintf(r.Out, "Missing variables: %s\n", strings.Join(s.Missing, ", "))
	}

	if s.OK {
		fmt.Fprintln(r.Out, "PRODUCTION READY: all variables present, all checks passed")
	} else {
		fmt.Fprintln(r.Out, "NOT PRODUCTION READY: see failures above")
	}
}

// RenderJSON prints the machine-readable summary instead of the text
// report.
func (r *Reporter) RenderJSON(s Summary) error {
	enc := json.NewEncoder(r.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func glyph(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}
