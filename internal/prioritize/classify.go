package prioritize

import (
	"strings"

	"github.com/lcvar/varprio/internal/columns"
	"github.com/lcvar/varprio/internal/tsv"
)

// Classification is the categorical clinical verdict for a variant. It is
// derived from annotation text only and is independent of the priority
// score: a variant may classify Unknown yet rank highly on other signals.
type Classification string

const (
	Pathogenic       Classification = "Pathogenic"
	LikelyPathogenic Classification = "Likely Pathogenic"
	VUS              Classification = "VUS"
	LikelyBenign     Classification = "Likely Benign"
	Benign           Classification = "Benign"
	Conflicting      Classification = "Conflicting"
	Unknown          Classification = "Unknown"
)

// Classify derives the classification from the ACMG text, falling back to
// ClinVar when ACMG is absent. Both ladders are first-match-wins in the
// order written here.
func Classify(cols *columns.Map, rec tsv.Record) Classification {
	if v := cols.Get(columns.ACMG, rec); v != tsv.Missing {
		acmg := strings.ToLower(v)
		switch {
		case strings.Contains(acmg, "pathogenic") && !strings.Contains(acmg, "likely"):
			return Pathogenic
		case strings.Contains(acmg, "likely pathogenic"):
			return LikelyPathogenic
		case strings.Contains(acmg, "uncertain significance"):
			return VUS
		case strings.Contains(acmg, "likely benign"):
			return LikelyBenign
		case strings.Contains(acmg, "benign") && !strings.Contains(acmg, "likely"):
			return Benign
		}
	}

	if v := cols.Get(columns.ClinVar, rec); v != tsv.Missing {
		cv := strings.ToLower(v)
		switch {
		case strings.Contains(cv, "pathogenic") && !strings.Contains(cv, "likely") &&
			!strings.Contains(cv, "benign"):
			return Pathogenic
		case strings.Contains(cv, "likely_pathogenic") && !strings.Contains(cv, "benign"):
			return LikelyPathogenic
		case strings.Contains(cv, "uncertain_significance"):
			return VUS
		case strings.Contains(cv, "likely_benign") && !strings.Contains(cv, "pathogenic"):
			return LikelyBenign
		case strings.Contains(cv, "benign") && !strings.Contains(cv, "likely") &&
			!strings.Contains(cv, "pathogenic"):
			return Benign
		case strings.Contains(cv, "conflicting"):
			return Conflicting
		}
	}

	return Unknown
}
