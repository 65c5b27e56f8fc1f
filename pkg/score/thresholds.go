package score

// Thresholds holds the numeric cutoffs used by the aggregator and the
// classifier. They are configuration, not constants: the statement-count
// and loop-count boundaries were inferred from annotated sample scripts
// and may need tuning against the authoritative scoring tool.
type Thresholds struct {
	// MediumStatementCount raises to MEDIUM when the conventional
	// statement count exceeds it (strictly greater).
	MediumStatementCount int `koanf:"medium_statement_count" json:"medium_statement_count" yaml:"medium_statement_count"`

	// LoopCount raises to COMPLEX when the loop count exceeds it
	// (strictly greater).
	LoopCount int `koanf:"loop_count" json:"loop_count" yaml:"loop_count"`

	// ComplexStatementMin and ComplexStatementMax bound the conventional
	// statement band (inclusive) of the COMPLEX category break.
	ComplexStatementMin int `koanf:"complex_statement_min" json:"complex_statement_min" yaml:"complex_statement_min"`
	ComplexStatementMax int `koanf:"complex_statement_max" json:"complex_statement_max" yaml:"complex_statement_max"`

	// SubqueryDepth is the nesting depth (inclusive) at which subqueries
	// trigger the MEDIUM category break.
	SubqueryDepth int `koanf:"subquery_depth" json:"subquery_depth" yaml:"subquery_depth"`
}

// DefaultThresholds returns the cutoffs inferred from the sample corpus.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MediumStatementCount: 10,
		LoopCount:            5,
		ComplexStatementMin:  30,
		ComplexStatementMax:  50,
		SubqueryDepth:        2,
	}
}
