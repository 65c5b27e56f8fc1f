package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/eri-adepoju/sqlscore/internal/runner"
	"github.com/eri-adepoju/sqlscore/pkg/score"
)

// Mode selects the rendering format.
type Mode string

// Rendering modes.
const (
	ModeTable Mode = "table"
	ModeJSON  Mode = "json"
	ModeYAML  Mode = "yaml"
)

// Renderer writes scoring results in one format.
type Renderer struct {
	out    io.Writer
	mode   Mode
	styles *Styles
}

// NewRenderer builds a renderer. Unknown modes fall back to the table.
func NewRenderer(out io.Writer, mode Mode) *Renderer {
	switch mode {
	case ModeJSON, ModeYAML:
	default:
		mode = ModeTable
	}
	return &Renderer{out: out, mode: mode, styles: DefaultStyles()}
}

// Results renders one row per scored file plus a tier summary line.
func (r *Renderer) Results(results []runner.FileResult) error {
	switch r.mode {
	case ModeJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case ModeYAML:
		return yaml.NewEncoder(r.out).Encode(results)
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"FILE", "DIALECT", "TIER", "STMTS", "LOOPS", "NOTES"})

	counts := map[score.Tier]int{}
	for _, res := range results {
		if res.Report == nil {
			t.AppendRow(table.Row{res.Path, "", r.styles.Mismatch.Render("ERROR"), "", "", res.ErrText})
			continue
		}
		rep := res.Report
		counts[rep.Tier]++
		t.AppendRow(table.Row{
			res.Path,
			rep.Dialect,
			r.styles.TierStyle(rep.Tier).Render(rep.Tier.String()),
			rep.StatementCount,
			rep.ConstructCounts[string(score.CategoryLoop)],
			r.notes(res),
		})
	}
	t.Render()

	fmt.Fprintln(r.out, r.summary(counts, len(results)))
	return nil
}

func (r *Renderer) notes(res runner.FileResult) string {
	var notes []string
	if res.Report.Partial {
		notes = append(notes, r.styles.Dim.Render("partial"))
	}
	if res.Expected != nil {
		if res.Match {
			notes = append(notes, r.styles.Dim.Render("verified"))
		} else {
			notes = append(notes, r.styles.Mismatch.Render("expected "+res.Expected.String()))
		}
	}
	if n := len(res.Report.Diagnostics); n > 0 {
		notes = append(notes, r.styles.Dim.Render(fmt.Sprintf("%d diagnostics", n)))
	}
	return strings.Join(notes, ", ")
}

func (r *Renderer) summary(counts map[score.Tier]int, total int) string {
	parts := make([]string, 0, 4)
	for _, tier := range []score.Tier{score.TierLow, score.TierMedium, score.TierComplex, score.TierUnparseable} {
		if n := counts[tier]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", r.styles.TierStyle(tier).Render(tier.String()), n))
		}
	}
	return fmt.Sprintf("%d files: %s", total, strings.Join(parts, ", "))
}

// Detail renders one report in full, including the rule trace and
// construct counts. Table mode gets a readable breakdown; json and yaml
// marshal the report as-is.
func (r *Renderer) Detail(path string, rep *score.Report) error {
	switch r.mode {
	case ModeJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case ModeYAML:
		return yaml.NewEncoder(r.out).Encode(rep)
	}

	fmt.Fprintf(r.out, "%s  %s  (%s)\n",
		r.styles.Header.Render(path),
		r.styles.TierStyle(rep.Tier).Render(rep.Tier.String()),
		rep.Dialect)
	fmt.Fprintf(r.out, "statements: %d (%d conventional)\n",
		rep.StatementCount, rep.ConventionalStatementCount)

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"CONSTRUCT", "COUNT"})
	for _, c := range score.Categories {
		if n := rep.ConstructCounts[string(c)]; n > 0 {
			t.AppendRow(table.Row{string(c), n})
		}
	}
	t.Render()

	for _, entry := range rep.RuleTrace {
		detail := entry.Detail
		if detail == "" {
			detail = fmt.Sprintf("observed %d, threshold %d", entry.Observed, entry.Threshold)
		}
		fmt.Fprintf(r.out, "rule %s -> %s: %s\n",
			entry.RuleID, r.styles.TierStyle(entry.Tier).Render(entry.Tier.String()), detail)
	}
	for _, d := range rep.Diagnostics {
		fmt.Fprintf(r.out, "%s\n", r.styles.Dim.Render(
			fmt.Sprintf("%s at offset %d: %s", d.Kind, d.Offset, d.Message)))
	}
	return nil
}

// Rules renders the classifier rule table.
func (r *Renderer) Rules(rules []score.Rule, th score.Thresholds) error {
	type ruleDoc struct {
		ID          string `json:"id" yaml:"id"`
		Tier        string `json:"tier" yaml:"tier"`
		Description string `json:"description" yaml:"description"`
	}
	docs := make([]ruleDoc, len(rules))
	for i, rule := range rules {
		docs[i] = ruleDoc{ID: rule.ID, Tier: rule.Tier.String(), Description: rule.Description}
	}

	switch r.mode {
	case ModeJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Thresholds score.Thresholds `json:"thresholds"`
			Rules      []ruleDoc        `json:"rules"`
		}{th, docs})
	case ModeYAML:
		return yaml.NewEncoder(r.out).Encode(struct {
			Thresholds score.Thresholds `yaml:"thresholds"`
			Rules      []ruleDoc        `yaml:"rules"`
		}{th, docs})
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"RULE", "TIER", "DESCRIPTION"})
	for i, rule := range rules {
		t.AppendRow(table.Row{rule.ID, r.styles.TierStyle(rule.Tier).Render(docs[i].Tier), rule.Description})
	}
	t.Render()
	fmt.Fprintf(r.out, "thresholds: statements>%d medium, loops>%d complex, band %d-%d, subquery depth >=%d\n",
		th.MediumStatementCount, th.LoopCount, th.ComplexStatementMin, th.ComplexStatementMax, th.SubqueryDepth)
	return nil
}
