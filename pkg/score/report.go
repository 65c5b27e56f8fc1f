// Package score implements the multi-dialect SQL complexity scoring engine.
//
// The pipeline is: dialect profile -> segmenter -> (per statement)
// construct analyzer -> metric aggregator -> classifier -> report. The
// engine consumes raw script text plus a dialect identifier and returns a
// structured report; it performs no I/O of its own.
package score

import "fmt"

// Tier is the final classification label assigned to a script.
type Tier int

const (
	// TierLow is the default tier for small declarative scripts.
	TierLow Tier = iota
	// TierMedium marks scripts with analytic or volume signals.
	TierMedium
	// TierComplex marks heavily procedural scripts.
	TierComplex
	// TierUnparseable marks scripts whose offsets became unreliable due
	// to a lex error. It is never produced by classifier rules.
	TierUnparseable
)

// String returns the tier label.
func (t Tier) String() string {
	switch t {
	case TierLow:
		return "LOW"
	case TierMedium:
		return "MEDIUM"
	case TierComplex:
		return "COMPLEX"
	case TierUnparseable:
		return "UNPARSEABLE"
	default:
		return fmt.Sprintf("TIER(%d)", t)
	}
}

// MarshalText implements encoding.TextMarshaler so tiers serialize as their
// labels in JSON and YAML reports.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ParseTier converts a tier label back into a Tier.
func ParseTier(s string) (Tier, bool) {
	switch s {
	case "LOW":
		return TierLow, true
	case "MEDIUM":
		return TierMedium, true
	case "COMPLEX":
		return TierComplex, true
	case "UNPARSEABLE":
		return TierUnparseable, true
	default:
		return TierLow, false
	}
}

// Category identifies a complexity-relevant construct family.
type Category string

// Construct categories counted by the analyzer.
const (
	CategoryLoop        Category = "loop"
	CategoryConditional Category = "conditional"
	CategoryCursor      Category = "cursor"
	CategoryDynamicSQL  Category = "dynamic-sql"
	CategoryException   Category = "exception-handler"
	CategoryWindow      Category = "window-function"
	CategoryHeavy       Category = "heavy-native"
	CategoryCTE         Category = "cte"
	CategoryJoin        Category = "join"
	CategorySubquery    Category = "subquery"
	CategoryDML         Category = "dml"
)

// Categories lists all construct categories in report order.
var Categories = []Category{
	CategoryLoop, CategoryConditional, CategoryCursor, CategoryDynamicSQL,
	CategoryException, CategoryWindow, CategoryHeavy, CategoryCTE,
	CategoryJoin, CategorySubquery, CategoryDML,
}

// DiagKind classifies a diagnostic attached to a report.
type DiagKind string

// Diagnostic kinds.
const (
	DiagLexError         DiagKind = "lex-error"
	DiagSegmentation     DiagKind = "segmentation-error"
	DiagUnknownConstruct DiagKind = "unknown-construct"
	DiagCancelled        DiagKind = "cancelled"
)

// Diagnostic records a non-fatal finding or the fatal lex error.
type Diagnostic struct {
	Kind    DiagKind `json:"kind" yaml:"kind"`
	Offset  int      `json:"offset" yaml:"offset"`
	Message string   `json:"message" yaml:"message"`
}

// Script is the immutable input to the engine.
type Script struct {
	Text    string
	Dialect string
}

// Report is the immutable result of scoring one script.
type Report struct {
	Dialect                    string          `json:"dialect" yaml:"dialect"`
	Tier                       Tier            `json:"tier" yaml:"tier"`
	StatementCount             int             `json:"statement_count" yaml:"statement_count"`
	ConventionalStatementCount int             `json:"conventional_statement_count" yaml:"conventional_statement_count"`
	ConstructCounts            map[string]int  `json:"construct_counts" yaml:"construct_counts"`
	CategoryBreak              map[string]bool `json:"category_break" yaml:"category_break"`
	RuleTrace                  []TraceEntry    `json:"rule_trace" yaml:"rule_trace"`
	Diagnostics                []Diagnostic    `json:"diagnostics" yaml:"diagnostics"`
	Partial                    bool            `json:"partial" yaml:"partial"`
}
