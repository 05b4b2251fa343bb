package journal

import (
	"bytes"
	"io"
	"os"
	"text/template"
	"time"

	"github.com/rustyeddy/barscope/market"
)

var runOrgFuncs = template.FuncMap{
	"mul100": func(x float64) float64 { return x * 100.0 },
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
	"tf": func(m float64) string {
		s, err := market.MinutesToTFString(m)
		if err != nil {
			return "(timeframe?)"
		}
		return s
	},
}

var runOrg = template.Must(template.New("run").Funcs(runOrgFuncs).Parse(RunOrgTemplate))

// RenderOrg writes the org-mode summary of the run to w.
func (r *Run) RenderOrg(w io.Writer) error {
	return runOrg.Execute(w, r)
}

// WriteOrg renders the run summary to r.OrgPath.
func (r *Run) WriteOrg() error {
	buf := new(bytes.Buffer)
	if err := r.RenderOrg(buf); err != nil {
		return err
	}
	return os.WriteFile(r.OrgPath, buf.Bytes(), 0644)
}

const RunOrgTemplate = `
* SNAPSHOTS: {{.Symbol}} {{tf .TimeframeMinutes}}
:PROPERTIES:
:RUN_ID:      {{if .RunID}}{{.RunID}}{{else}}(run-id?){{end}}
:SYMBOL:      {{.Symbol}}
:TIMEFRAME:   {{tf .TimeframeMinutes}}
:DATASET:     {{if .Dataset}}{{.Dataset}}{{else}}(dataset?){{end}}
:START:       {{.Start.Format "2006-01-02 15:04"}}
:END:         {{.End.Format "2006-01-02 15:04"}}
:BARS:        {{.Bars}}
:SNAPSHOTS:   {{.Snapshots}}
:FAILURES:    {{.Failures}}
:CREATED:     [{{(orTime .CreatedAt).Format "2006-01-02 Mon 15:04"}}]
:END:

** Configuration
{{- if .Config }}
#+begin_src json
{{printf "%s" .Config}}
#+end_src
{{- else }}
# (defaults)
{{- end }}

** Regime Summary
| Regime         | Mean score % |
|----------------+--------------|
| Trending       | {{printf "%.1f" (mul100 .AvgTrending)}} |
| Ranging        | {{printf "%.1f" (mul100 .AvgRanging)}} |
| Reversal setup | {{printf "%.1f" (mul100 .AvgReversalSetup)}} |
| Breakout mode  | {{printf "%.1f" (mul100 .AvgBreakoutMode)}} |

{{- if .Notes }}

** Observations
{{- range .Notes }}
- {{.}}
{{- end }}
{{- end }}
`
