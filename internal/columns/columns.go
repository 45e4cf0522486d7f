// Package columns resolves semantic variant fields against the concrete
// column names of a given table.
//
// Upstream annotators emit the same information under many header spellings
// (e.g. the gene symbol as ANN[0].GENE, Gene, RefGene or Ref.Gene). Each
// semantic field carries a priority-ordered candidate list; the first
// candidate literally present in the header wins. Unresolved fields are
// simply absent from the map, never an error.
package columns

import (
	"math"
	"strconv"

	"github.com/lcvar/varprio/internal/tsv"
)

// Field names a semantic variant attribute independent of header spelling.
type Field string

// The closed set of semantic fields the prioritization engine understands.
const (
	ACMG       Field = "ACMG"
	ACMGRules  Field = "ACMG_Rules"
	ClinVar    Field = "clinvar"
	CLNSIGCONF Field = "CLNSIGCONF"
	CADDPhred  Field = "CADD_phred"
	SIFTScore  Field = "SIFT_score"
	GnomADFreq Field = "gnomAD_freq"
	ESPFreq    Field = "esp_freq"
	G1000Freq  Field = "g1000_freq"
	PopFreqs   Field = "pop_freqs"
	GERP       Field = "GERP"
	PhyloP     Field = "phyloP"
	ADAScore   Field = "ADA_score"
	RFScore    Field = "RF_score"
	MetaSVM    Field = "MetaSVM"
	Gene       Field = "gene"
	Effect     Field = "effect"
	Impact     Field = "impact"
	HGVSp      Field = "hgvs_p"
	HGVSc      Field = "hgvs_c"
	Depth      Field = "depth"
	AF         Field = "af"
	AD         Field = "ad"
	OMIM       Field = "OMIM"
	Orpha      Field = "Orpha"
	Origin     Field = "origin"
	Filter     Field = "filter"
)

// candidates maps each semantic field to its header spellings in priority
// order. The first spelling present in a table's header is bound.
var candidates = map[Field][]string{
	ACMG:       {"ACMG", "acmg", "ACMG Classification"},
	ACMGRules:  {"ACMG_Rules", "acmg_rules", "ACMG Rules"},
	ClinVar:    {"clinvar: Clinvar ", "clinvar: Clinvar", "clinvar:", "Clinvar", "clinvar"},
	CLNSIGCONF: {"CLNSIGCONF", "clnsigconf", "ClinVar_conflicting"},
	CADDPhred:  {"CADD_phred", "CADD_PHRED", "CADD Phred"},
	SIFTScore:  {"SIFT_score", "SIFT Score", "SIFT_Score"},
	GnomADFreq: {"Freq_gnomAD_genome_ALL", "gnomAD_AF", "gnomAD_freq"},
	ESPFreq:    {"Freq_esp6500siv2_all", "ESP_freq", "ESP6500_freq"},
	G1000Freq:  {"Freq_1000g2015aug_all", "1000g_freq", "1000G_freq"},
	PopFreqs:   {"Freq_gnomAD_genome_POPs", "gnomAD_pops", "gnomAD_POPs"},
	GERP:       {"GERP++_RS", "GERP_RS", "GERP"},
	PhyloP:     {"phyloP46way_placental", "phyloP", "PhyloP"},
	ADAScore:   {"dbscSNV_ADA_SCORE", "ADA_SCORE", "ada_score"},
	RFScore:    {"dbscSNV_RF_SCORE", "RF_SCORE", "rf_score"},
	MetaSVM:    {"MetaSVM_score", "metaSVM", "MetaSVM Score"},
	Gene:       {"ANN[0].GENE", "Gene", "RefGene", "Ref.Gene"},
	Effect:     {"ANN[0].EFFECT", "Effect", "ExonicFunc", "ExonicFunc.refGene"},
	Impact:     {"ANN[0].IMPACT", "Impact", "Func.refGene"},
	HGVSp:      {"ANN[0].HGVS_P", "HGVS_P", "AAChange"},
	HGVSc:      {"ANN[0].HGVS_C", "HGVS_C", "GeneDetail"},
	Depth:      {"DP", "depth", "Coverage"},
	AF:         {"AF", "alt_freq", "VAF"},
	AD:         {"GEN[0].AD", "AD", "Allele Depth"},
	OMIM:       {"OMIM", "omim", "OMIM_Gene"},
	Orpha:      {"Orpha", "orpha", "OrphaNumber", "Orphanet"},
	Origin:     {"origin", "Origin", "Inheritance"},
	Filter:     {"FILTER", "filter", "Filter"},
}

// Important lists the fields whose absence warrants a warning. Scoring still
// proceeds; the dependent components contribute zero.
var Important = []Field{ACMG, Gene, Effect, Impact}

// Map binds semantic fields to the column name and index actually present in
// a specific table's header. Built once per input and immutable thereafter.
type Map struct {
	names map[Field]string
	index map[Field]int
}

// Resolve builds a Map for the given header.
func Resolve(header []string) *Map {
	pos := make(map[string]int, len(header))
	for i, col := range header {
		if _, dup := pos[col]; !dup {
			pos[col] = i
		}
	}

	m := &Map{
		names: make(map[Field]string),
		index: make(map[Field]int),
	}
	for field, names := range candidates {
		for _, name := range names {
			if i, ok := pos[name]; ok {
				m.names[field] = name
				m.index[field] = i
				break
			}
		}
	}
	return m
}

// Has reports whether the field resolved to a column.
func (m *Map) Has(f Field) bool {
	_, ok := m.index[f]
	return ok
}

// Name returns the concrete header name the field resolved to.
func (m *Map) Name(f Field) (string, bool) {
	n, ok := m.names[f]
	return n, ok
}

// MissingImportant returns the important fields that did not resolve.
func (m *Map) MissingImportant() []Field {
	var missing []Field
	for _, f := range Important {
		if !m.Has(f) {
			missing = append(missing, f)
		}
	}
	return missing
}

// Get returns the field's cell value for the row, or "." when the field is
// unresolved or the cell is empty. It never fails.
func (m *Map) Get(f Field, rec tsv.Record) string {
	return m.GetDefault(f, rec, tsv.Missing)
}

// GetDefault is Get with a caller-chosen default.
func (m *Map) GetDefault(f Field, rec tsv.Record, def string) string {
	i, ok := m.index[f]
	if !ok {
		return def
	}
	v := rec.Value(i)
	if v == "" {
		return def
	}
	return v
}

// Number parses a cell value as a float. The missing sentinel, empty strings,
// NaN and anything unparsable report ok=false; callers treat that as "no
// value", never as an error.
func Number(s string) (float64, bool) {
	if s == "" || s == tsv.Missing {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
