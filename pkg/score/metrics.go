package score

// Metrics is the aggregate of construct counts across a script's statements.
// Aggregation is associative, so per-statement metrics computed in any order
// merge into the same totals.
type Metrics struct {
	Counts map[Category]int

	StatementCount    int
	ConventionalCount int
	ProceduralCount   int
	ControlCount      int

	MaxSubqueryDepth int
	CTEWithWindow    bool
}

// NewMetrics returns an empty aggregate.
func NewMetrics() *Metrics {
	return &Metrics{Counts: make(map[Category]int)}
}

// AddStatement folds one analyzed statement into the aggregate.
func (m *Metrics) AddStatement(res *StatementAnalysis) {
	m.StatementCount++
	switch res.Kind {
	case KindConventional:
		m.ConventionalCount++
	case KindProcedural:
		m.ProceduralCount++
		// A procedure's volume lives in its body.
		m.ConventionalCount += res.InnerConventional
	case KindControl:
		m.ControlCount++
	}

	for _, occ := range res.Occurrences {
		m.Counts[occ.Category]++
	}
	if res.MaxSubqueryDepth > m.MaxSubqueryDepth {
		m.MaxSubqueryDepth = res.MaxSubqueryDepth
	}
	if res.HasCTE && res.HasWindow {
		m.CTEWithWindow = true
	}
}

// Merge folds another aggregate into m.
func (m *Metrics) Merge(other *Metrics) {
	for c, n := range other.Counts {
		m.Counts[c] += n
	}
	m.StatementCount += other.StatementCount
	m.ConventionalCount += other.ConventionalCount
	m.ProceduralCount += other.ProceduralCount
	m.ControlCount += other.ControlCount
	if other.MaxSubqueryDepth > m.MaxSubqueryDepth {
		m.MaxSubqueryDepth = other.MaxSubqueryDepth
	}
	m.CTEWithWindow = m.CTEWithWindow || other.CTEWithWindow
}

// Count returns the total for one category.
func (m *Metrics) Count(c Category) int {
	return m.Counts[c]
}

// MediumBreak reports whether any analytic-complexity signal fires. Any one
// of these lifts a script out of LOW regardless of statement counts.
func (m *Metrics) MediumBreak(th Thresholds) bool {
	return m.Count(CategoryWindow) > 0 ||
		m.Count(CategoryHeavy) > 0 ||
		m.CTEWithWindow ||
		m.MaxSubqueryDepth >= th.SubqueryDepth
}

// ComplexBreak reports whether any COMPLEX category signal fires: the
// loop count crossing its cutoff, or the procedural mix.
func (m *Metrics) ComplexBreak(th Thresholds) bool {
	return m.Count(CategoryLoop) > th.LoopCount || m.proceduralMix(th)
}

// proceduralMix is the combined signal of a mid-sized script mixing
// dynamic SQL with cursor processing.
func (m *Metrics) proceduralMix(th Thresholds) bool {
	return m.ConventionalCount >= th.ComplexStatementMin &&
		m.ConventionalCount <= th.ComplexStatementMax &&
		m.Count(CategoryDynamicSQL) > 0 &&
		m.Count(CategoryCursor) > 0
}
