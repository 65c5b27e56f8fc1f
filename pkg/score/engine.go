package score

import (
	"context"
	"errors"
	"fmt"

	"github.com/eri-adepoju/sqlscore/pkg/dialect"
	"github.com/eri-adepoju/sqlscore/pkg/scanner"
)

// Engine scores scripts. It is immutable after construction and safe for
// concurrent use; all per-script state lives on the call stack.
type Engine struct {
	thresholds Thresholds
}

// Option configures an Engine.
type Option func(*Engine)

// WithThresholds overrides the default classification cutoffs.
func WithThresholds(th Thresholds) Option {
	return func(e *Engine) { e.thresholds = th }
}

// NewEngine constructs an engine with the default thresholds unless
// overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{thresholds: DefaultThresholds()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Thresholds returns the engine's active cutoffs.
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// Score runs the full pipeline on one script. Scoring the same script
// twice yields identical reports.
//
// An unknown dialect is the caller's error and returns no report. A lex
// error is the script's problem: it yields an UNPARSEABLE report and a nil
// error. Context cancellation between statements returns the partial
// report alongside ctx.Err().
func (e *Engine) Score(ctx context.Context, script Script) (*Report, error) {
	profile, err := dialect.Get(script.Dialect)
	if err != nil {
		return nil, fmt.Errorf("score: %w", err)
	}

	stmts, diags, err := Segment(script.Text, profile)
	if err != nil {
		var lexErr *scanner.LexError
		if errors.As(err, &lexErr) {
			return e.unparseable(profile.Name, lexErr), nil
		}
		return nil, fmt.Errorf("score: %w", err)
	}

	metrics := NewMetrics()
	for i := range stmts {
		if ctxErr := ctx.Err(); ctxErr != nil {
			diags = append(diags, Diagnostic{
				Kind:    DiagCancelled,
				Offset:  stmts[i].Start,
				Message: "scoring cancelled: " + ctxErr.Error(),
			})
			report := e.buildReport(profile.Name, metrics, diags)
			report.Partial = true
			return report, ctxErr
		}
		res := Analyze(&stmts[i], profile)
		metrics.AddStatement(res)
		diags = append(diags, res.Diagnostics...)
	}

	return e.buildReport(profile.Name, metrics, diags), nil
}

func (e *Engine) buildReport(dialectName string, m *Metrics, diags []Diagnostic) *Report {
	tier, trace := Classify(m, e.thresholds)

	counts := make(map[string]int, len(Categories))
	for _, c := range Categories {
		counts[string(c)] = m.Count(c)
	}

	partial := false
	for _, d := range diags {
		if d.Kind == DiagSegmentation {
			partial = true
			break
		}
	}

	return &Report{
		Dialect:                    dialectName,
		Tier:                       tier,
		StatementCount:             m.StatementCount,
		ConventionalStatementCount: m.ConventionalCount,
		ConstructCounts:            counts,
		CategoryBreak: map[string]bool{
			"medium":  m.MediumBreak(e.thresholds),
			"complex": m.ComplexBreak(e.thresholds),
		},
		RuleTrace:   trace,
		Diagnostics: diags,
		Partial:     partial,
	}
}

// unparseable builds the fatal-lex-error report. Construct counts are
// untrustworthy after a lex error, so none are reported.
func (e *Engine) unparseable(dialectName string, lexErr *scanner.LexError) *Report {
	return &Report{
		Dialect:         dialectName,
		Tier:            TierUnparseable,
		ConstructCounts: map[string]int{},
		CategoryBreak:   map[string]bool{},
		Diagnostics: []Diagnostic{{
			Kind:    DiagLexError,
			Offset:  lexErr.Pos.Offset,
			Message: lexErr.Error(),
		}},
	}
}
