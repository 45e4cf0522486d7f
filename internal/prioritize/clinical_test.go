package prioritize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clinical(t *testing.T, pairs ...string) int {
	t.Helper()
	cols, rec := testRow(t, pairs...)
	return clinicalScore(cols, rec)
}

func TestClinicalScore_ACMGBuckets(t *testing.T) {
	for acmg, want := range map[string]int{
		"Pathogenic":             2000,
		"Likely pathogenic":      1800,
		"Uncertain significance": 600,
		"Likely benign":          200,
		"Benign":                 100,
		"something else":         0,
		".":                      0,
	} {
		assert.Equal(t, want, clinical(t, "ACMG", acmg), "acmg=%s", acmg)
	}
}

func TestClinicalScore_ClinVarLadder(t *testing.T) {
	tests := []struct {
		clinvar string
		want    int
	}{
		// First-match-wins, top to bottom.
		{"Pathogenic", 1800},
		{"Pathogenic|risk_factor", 1800 + 180},
		// The pure-pathogenic pattern wins even over the low-penetrance
		// escape form; 1700 needs another disqualifier in the text.
		{`Pathogenic\x2c_low_penetrance`, 1800},
		{`Likely_pathogenic\x2c_low_penetrance`, 1700},
		{"Pathogenic/Likely_pathogenic", 1600},
		{"Likely_pathogenic/Pathogenic", 1600},
		// Like the \x2c form, the bare risk-allele combo still satisfies
		// the pure-pathogenic pattern; reaching 1500 needs one of that
		// pattern's disqualifiers in the text.
		{"Pathogenic/Likely_risk_allele", 1800},
		{"Pathogenic/Likely_risk_allele|Uncertain_significance", 1500},
		{"Pathogenic/Uncertain_risk_allele", 1400},
		{"Likely_pathogenic", 1400},
		{"Likely_risk_allele", 500},
		{"Conflicting_classifications_of_pathogenicity", 400},
		{"Uncertain_significance", 300},
		{"Uncertain_risk_allele", 250},
		{"Likely_benign", 100},
		{"Benign", 50},
		// Benign dilutes every pathogenic bucket, and likely_benign
		// outranks pure benign.
		{"Pathogenic/Benign", 0},
		{"Benign/Likely_benign", 100},
		{".", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clinical(t, "Clinvar", tt.clinvar), "clinvar=%s", tt.clinvar)
	}
}

func TestClinicalScore_ClinVarModifiers(t *testing.T) {
	tests := []struct {
		clinvar string
		want    int
	}{
		{"Uncertain_significance|affects", 300 + 120},
		{"Likely_benign|drug_response", 100 + 80},
		{"Benign|association|protective", 50 + 100 + 120},
		{"Uncertain_significance|confers_sensitivity", 300 + 100},
		// Bare low_penetrance counts; the \x2c escape form does not
		// double-count on top of its bucket.
		{"risk_factor|low_penetrance", 180 + 70},
		{`Likely_pathogenic\x2c_low_penetrance`, 1700},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clinical(t, "Clinvar", tt.clinvar), "clinvar=%s", tt.clinvar)
	}
}

func TestClinicalScore_ACMGAndClinVarAdd(t *testing.T) {
	got := clinical(t, "ACMG", "Pathogenic", "Clinvar", "Pathogenic")
	assert.Equal(t, 2000+1800, got)
}

func TestCLNSIGCONFScore(t *testing.T) {
	tests := []struct {
		val  string
		want int
	}{
		{"Pathogenic(3)", 3 * 200},
		{"Likely_pathogenic(2)", 2 * 150},
		{"Pathogenic(2)|Likely_pathogenic(1)|Benign(4)", 2*200 + 1*150},
		{"Uncertain_significance(5)", 0},
		{"Pathogenic/Likely_risk_allele(1)", 200},
		{"garbage", 0},
		{".", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clnsigconfScore(tt.val), "val=%s", tt.val)
	}
}

func TestClinicalScore_CLNSIGCONFAdds(t *testing.T) {
	got := clinical(t,
		"Clinvar", "Conflicting_classifications_of_pathogenicity",
		"CLNSIGCONF", "Pathogenic(2)|Benign(1)",
	)
	assert.Equal(t, 400+2*200, got)
}
