package prioritize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lcvar/varprio/internal/columns"
	"github.com/lcvar/varprio/internal/tsv"
)

// clinicalScore combines ACMG classification text, ClinVar significance text
// and the CLNSIGCONF conflict counts into one raw sub-score.
//
// The ClinVar ladder below is strictly first-match-wins and its check order
// is load-bearing: many submitted values textually satisfy several patterns
// (e.g. "Pathogenic/Likely_pathogenic" also contains "likely_pathogenic"),
// so reordering the cases changes scores.
func clinicalScore(cols *columns.Map, rec tsv.Record) int {
	score := 0

	if v := cols.Get(columns.ACMG, rec); v != tsv.Missing {
		acmg := strings.ToLower(v)
		switch {
		case strings.Contains(acmg, "pathogenic") && !strings.Contains(acmg, "likely"):
			score += 2000
		case strings.Contains(acmg, "likely pathogenic"):
			score += 1800
		case strings.Contains(acmg, "uncertain significance"):
			score += 600
		case strings.Contains(acmg, "likely benign"):
			score += 200
		case strings.Contains(acmg, "benign"):
			score += 100
		}
	}

	if v := cols.Get(columns.ClinVar, rec); v != tsv.Missing {
		cv := strings.ToLower(v)
		benign := strings.Contains(cv, "benign")

		switch {
		// Pure pathogenic, no dilution by other assertions.
		case strings.Contains(cv, "pathogenic") &&
			!strings.Contains(cv, "likely_pathogenic") &&
			!benign &&
			!strings.Contains(cv, "conflicting") &&
			!strings.Contains(cv, "uncertain"):
			score += 1800

		// ClinVar escapes the comma in "Pathogenic, low penetrance" as \x2c.
		case strings.Contains(cv, `pathogenic\x2c_low_penetrance`) && !benign:
			score += 1700

		case (strings.Contains(cv, "pathogenic/likely_pathogenic") ||
			strings.Contains(cv, "likely_pathogenic/pathogenic")) && !benign:
			score += 1600

		case strings.Contains(cv, "pathogenic/likely_risk_allele") && !benign:
			score += 1500

		// Any other pathogenic combination.
		case (strings.Contains(cv, "pathogenic/") || strings.Contains(cv, "/pathogenic")) && !benign:
			score += 1400

		// Standalone likely_pathogenic.
		case strings.Contains(cv, "likely_pathogenic") &&
			!strings.Contains(cv, "pathogenic/") &&
			!strings.Contains(cv, "/pathogenic") &&
			!benign:
			score += 1400

		case strings.Contains(cv, "likely_risk_allele") && !strings.Contains(cv, "uncertain"):
			score += 500

		case strings.Contains(cv, "conflicting_classifications_of_pathogenicity"):
			score += 400

		case strings.Contains(cv, "uncertain_significance"):
			score += 300

		case strings.Contains(cv, "uncertain_risk_allele"):
			score += 250

		case strings.Contains(cv, "likely_benign") &&
			!strings.Contains(cv, "pathogenic") &&
			!strings.Contains(cv, "conflicting"):
			score += 100

		case benign &&
			!strings.Contains(cv, "likely") &&
			!strings.Contains(cv, "pathogenic") &&
			!strings.Contains(cv, "conflicting"):
			score += 50
		}

		// Additive modifiers, independent of the primary bucket.
		if strings.Contains(cv, "affects") {
			score += 120
		}
		if strings.Contains(cv, "risk_factor") {
			score += 180
		}
		if strings.Contains(cv, "association") {
			score += 100
		}
		if strings.Contains(cv, "protective") {
			score += 120
		}
		if strings.Contains(cv, "drug_response") {
			score += 80
		}
		if strings.Contains(cv, "confers_sensitivity") {
			score += 100
		}
		// The low-penetrance pathogenic phrase was already counted above.
		if strings.Contains(cv, "low_penetrance") && !strings.Contains(cv, `\x2c_low_penetrance`) {
			score += 70
		}
	}

	score += clnsigconfScore(cols.Get(columns.CLNSIGCONF, rec))

	return score
}

// clnsigconfEntry matches one "Classification_name(count)" entry.
var clnsigconfEntry = regexp.MustCompile(`^([^(]+)\((\d+)\)`)

// clnsigconfScore scores the CLNSIGCONF conflict field: pipe-separated
// classification names with submission counts. Pathogenic submissions weigh
// 200 per count, likely-pathogenic 150; everything else is ignored.
func clnsigconfScore(val string) int {
	if val == tsv.Missing {
		return 0
	}

	score := 0
	for _, entry := range strings.Split(val, "|") {
		m := clnsigconfEntry.FindStringSubmatch(strings.TrimSpace(entry))
		if m == nil {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(m[1]))
		count, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}

		if strings.Contains(name, "pathogenic") && !strings.Contains(name, "likely_pathogenic") {
			score += count * 200
		} else if strings.Contains(name, "likely_pathogenic") {
			score += count * 150
		}
	}
	return score
}
