package score

import "fmt"

// TraceEntry records one classifier rule that fired, with the observed
// value and the threshold it was compared against.
type TraceEntry struct {
	RuleID    string `json:"rule_id" yaml:"rule_id"`
	Observed  int    `json:"observed" yaml:"observed"`
	Threshold int    `json:"threshold" yaml:"threshold"`
	Tier      Tier   `json:"tier" yaml:"tier"`
	Detail    string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Rule is one classification rule. Rules only ever raise the tier; the
// final tier is the maximum over all rules that fired.
type Rule struct {
	ID          string
	Tier        Tier
	Description string
	eval        func(m *Metrics, th Thresholds) (observed, threshold int, detail string, fired bool)
}

// rules is the fixed rule table, evaluated in order.
var rules = []Rule{
	{
		ID:          "VOLUME",
		Tier:        TierMedium,
		Description: "conventional statement count exceeds the medium cutoff",
		eval: func(m *Metrics, th Thresholds) (int, int, string, bool) {
			return m.ConventionalCount, th.MediumStatementCount, "",
				m.ConventionalCount > th.MediumStatementCount
		},
	},
	{
		ID:          "ANALYTIC",
		Tier:        TierMedium,
		Description: "window functions, heavy native functions, CTE feeding a window, or deep subquery nesting",
		eval: func(m *Metrics, th Thresholds) (int, int, string, bool) {
			if !m.MediumBreak(th) {
				return 0, 0, "", false
			}
			return m.MaxSubqueryDepth, th.SubqueryDepth, analyticDetail(m), true
		},
	},
	{
		ID:          "LOOPS",
		Tier:        TierComplex,
		Description: "loop count exceeds the complex cutoff",
		eval: func(m *Metrics, th Thresholds) (int, int, string, bool) {
			loops := m.Count(CategoryLoop)
			return loops, th.LoopCount, "", loops > th.LoopCount
		},
	},
	{
		ID:          "PROCEDURAL-MIX",
		Tier:        TierComplex,
		Description: "mid-sized script combining dynamic SQL with cursor processing",
		eval: func(m *Metrics, th Thresholds) (int, int, string, bool) {
			if !m.proceduralMix(th) {
				return 0, 0, "", false
			}
			detail := fmt.Sprintf("%d conventional statements with %d dynamic-sql and %d cursor constructs",
				m.ConventionalCount, m.Count(CategoryDynamicSQL), m.Count(CategoryCursor))
			return m.ConventionalCount, th.ComplexStatementMin, detail, true
		},
	},
}

// Rules returns the rule table for listing. Callers must not mutate it.
func Rules() []Rule {
	return rules
}

func analyticDetail(m *Metrics) string {
	switch {
	case m.Count(CategoryWindow) > 0:
		return fmt.Sprintf("%d window function calls", m.Count(CategoryWindow))
	case m.Count(CategoryHeavy) > 0:
		return fmt.Sprintf("%d heavy native function calls", m.Count(CategoryHeavy))
	case m.CTEWithWindow:
		return "CTE statement feeding a window function"
	default:
		return fmt.Sprintf("subquery nesting depth %d", m.MaxSubqueryDepth)
	}
}

// Classify evaluates every rule against the aggregate and returns the
// highest tier reached plus the trace of rules that fired. A script with no
// firing rules is LOW.
func Classify(m *Metrics, th Thresholds) (Tier, []TraceEntry) {
	tier := TierLow
	var trace []TraceEntry
	for _, r := range rules {
		observed, threshold, detail, fired := r.eval(m, th)
		if !fired {
			continue
		}
		trace = append(trace, TraceEntry{
			RuleID:    r.ID,
			Observed:  observed,
			Threshold: threshold,
			Tier:      r.Tier,
			Detail:    detail,
		})
		if r.Tier > tier {
			tier = r.Tier
		}
	}
	return tier, trace
}
