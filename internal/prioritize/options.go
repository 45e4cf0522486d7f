// Package prioritize implements the variant prioritization engine: optional
// prefilters, the nine-component weighted scorer, the score-independent
// clinical classifier, and deterministic ranking.
package prioritize

// Options is the in-memory configuration surface of the engine. Flag and
// config-file parsing live in the CLI layer; the engine only sees values.
type Options struct {
	// MinCADD drops rows whose CADD phred score parses below it. Rows with a
	// missing or unparsable score are kept. Zero disables the stage.
	MinCADD float64

	// MaxGnomAD drops rows whose gnomAD frequency parses above it. Rows with
	// a missing or unparsable frequency are kept. 1.0 disables the stage.
	MaxGnomAD float64

	// IncludeBenign keeps rows whose ACMG text marks them clearly benign.
	IncludeBenign bool

	// TopN truncates the ranked output to the first N rows when positive.
	TopN int

	// GenesOfInterest restricts the row set to these genes when non-empty and
	// boosts their phenotype component.
	GenesOfInterest map[string]bool

	// PhenotypeTerms are matched case-insensitively against OMIM and Orphanet
	// annotation text.
	PhenotypeTerms []string

	// InheritancePatterns maps gene symbol to its known inheritance pattern.
	InheritancePatterns map[string]string

	// Workers sets the scoring worker count; 0 means one per CPU.
	Workers int
}

// DefaultOptions returns the engine defaults: no filtering, full output.
func DefaultOptions() Options {
	return Options{
		MaxGnomAD: 1.0,
	}
}
