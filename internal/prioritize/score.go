package prioritize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lcvar/varprio/internal/columns"
	"github.com/lcvar/varprio/internal/tsv"
)

// Component display names, in computation order. The order is fixed so that
// ScoreComponents renderings and JSON breakdowns are reproducible.
const (
	CompClinical     = "ACMG/Clinical"
	CompImpact       = "Impact"
	CompFrequency    = "Frequency"
	CompPrediction   = "Prediction"
	CompACMGRules    = "ACMG_Rules"
	CompConservation = "Conservation"
	CompInheritance  = "Inheritance"
	CompPhenotype    = "Phenotype"
	CompQuality      = "Quality"
)

// Per-component weights applied to the raw sub-scores.
const (
	weightClinical     = 5
	weightImpact       = 3
	weightFrequency    = 2
	weightPrediction   = 2
	weightACMGRules    = 4
	weightConservation = 1
	weightInheritance  = 2
	weightPhenotype    = 3
	weightQuality      = 1
)

// Component is one named, already-weighted contribution to the composite.
type Component struct {
	Name  string
	Value int
}

// Breakdown is the per-component decomposition of a composite score, in
// computation order.
type Breakdown []Component

// Total returns the composite priority score.
func (b Breakdown) Total() int {
	sum := 0
	for _, c := range b {
		sum += c.Value
	}
	return sum
}

// String renders the breakdown as a comma-joined "Name: value" list.
// Components without a positive contribution are omitted.
func (b Breakdown) String() string {
	var parts []string
	for _, c := range b {
		if c.Value > 0 {
			parts = append(parts, c.Name+": "+strconv.Itoa(c.Value))
		}
	}
	return strings.Join(parts, ", ")
}

// EffectTier is the coarse effect-severity bucket a row's effect text fell
// into during scoring. Used only for run statistics.
type EffectTier int

const (
	TierOther EffectTier = iota
	TierHigh
	TierModerate
	TierLow
)

// Scorer computes composite priority scores. It is a pure function of
// (row, column map, options) and safe for concurrent use.
type Scorer struct {
	cols *columns.Map
	opts Options
}

// NewScorer creates a scorer bound to a resolved column map.
func NewScorer(cols *columns.Map, opts Options) *Scorer {
	return &Scorer{cols: cols, opts: opts}
}

// Score computes the weighted nine-component breakdown for one row, plus the
// effect tier the row's effect text matched.
func (s *Scorer) Score(rec tsv.Record) (Breakdown, EffectTier) {
	impact, tier := s.impactScore(rec)

	b := Breakdown{
		{CompClinical, clinicalScore(s.cols, rec) * weightClinical},
		{CompImpact, impact * weightImpact},
		{CompFrequency, s.frequencyScore(rec) * weightFrequency},
		{CompPrediction, s.predictionScore(rec) * weightPrediction},
		{CompACMGRules, s.acmgRuleScore(rec) * weightACMGRules},
		{CompConservation, s.conservationScore(rec) * weightConservation},
		{CompInheritance, s.inheritanceScore(rec) * weightInheritance},
		{CompPhenotype, s.phenotypeScore(rec) * weightPhenotype},
		{CompQuality, s.qualityScore(rec) * weightQuality},
	}
	return b, tier
}

// impactScore buckets the annotated effect text by severity keywords, then
// adds the SnpEff impact level independently.
func (s *Scorer) impactScore(rec tsv.Record) (int, EffectTier) {
	score := 0
	tier := TierOther

	if v := s.cols.Get(columns.Effect, rec); v != tsv.Missing {
		effect := strings.ToLower(v)
		switch {
		case containsAny(effect, "frameshift", "stop_gained", "stop_lost", "start_lost",
			"splice_donor", "splice_acceptor"):
			score += 500
			tier = TierHigh
		case containsAny(effect, "missense", "inframe_insertion", "inframe_deletion",
			"protein_altering", "splice_region"):
			score += 300
			tier = TierModerate
		case containsAny(effect, "synonymous", "stop_retained", "start_retained"):
			score += 150
			tier = TierLow
		case containsAny(effect, "utr", "intron", "upstream", "downstream",
			"intergenic", "non_coding"):
			score += 50
		}
	}

	if v := s.cols.Get(columns.Impact, rec); v != tsv.Missing {
		switch strings.ToUpper(v) {
		case "HIGH":
			score += 300
		case "MODERATE":
			score += 200
		case "LOW":
			score += 100
		case "MODIFIER":
			score += 50
		}
	}

	return score, tier
}

// popFreqEntry matches one "POP:freq" pair in a population-frequency field.
var popFreqEntry = regexp.MustCompile(`([A-Z]+):([0-9.]+)`)

// frequencyScore rewards rarity. Only the first frequency field that parses
// is used, in gnomAD > ESP > 1000G priority order.
func (s *Scorer) frequencyScore(rec tsv.Record) int {
	score := 0

	for _, field := range []columns.Field{columns.GnomADFreq, columns.ESPFreq, columns.G1000Freq} {
		freq, ok := columns.Number(s.cols.Get(field, rec))
		if !ok {
			continue
		}
		switch {
		case freq == 0: // novel
			score += 500
		case freq < 0.0001:
			score += 400
		case freq < 0.001:
			score += 300
		case freq < 0.01:
			score += 200
		case freq < 0.05:
			score += 100
		}
		break
	}

	// A variant common in any single population is slightly down-weighted.
	if v := s.cols.Get(columns.PopFreqs, rec); v != tsv.Missing {
		maxPop := 0.0
		for _, m := range popFreqEntry.FindAllStringSubmatch(v, -1) {
			if f, err := strconv.ParseFloat(m[2], 64); err == nil && f > maxPop {
				maxPop = f
			}
		}
		if maxPop > 0.05 {
			score -= 50
		}
	}

	return score
}

// predictionScore sums the in-silico tool buckets: CADD, SIFT, MetaSVM and
// the dbscSNV splicing scores.
func (s *Scorer) predictionScore(rec tsv.Record) int {
	score := 0

	if cadd, ok := columns.Number(s.cols.Get(columns.CADDPhred, rec)); ok {
		switch {
		case cadd > 30:
			score += 300
		case cadd > 25:
			score += 250
		case cadd > 20:
			score += 200
		case cadd > 15:
			score += 150
		case cadd > 10:
			score += 100
		}
	}

	// SIFT: lower is more deleterious.
	if sift, ok := columns.Number(s.cols.Get(columns.SIFTScore, rec)); ok {
		switch {
		case sift < 0.05:
			score += 200
		case sift < 0.1:
			score += 100
		case sift < 0.2:
			score += 50
		}
	}

	if svm, ok := columns.Number(s.cols.Get(columns.MetaSVM, rec)); ok && svm > 0.5 {
		score += 150
	}

	for _, field := range []columns.Field{columns.ADAScore, columns.RFScore} {
		if v, ok := columns.Number(s.cols.Get(field, rec)); ok {
			if v > 0.8 {
				score += 150
			} else if v > 0.6 {
				score += 75
			}
		}
	}

	return score
}

// acmgRuleWeights are the per-rule evidence weights: pathogenic criteria
// positive (very strong to supporting), benign criteria negative.
var acmgRuleWeights = map[string]int{
	"PVS1": 30,

	"PS1": 10, "PS2": 10, "PS3": 10, "PS4": 10,
	"BA1": -7,

	"PM1": 6, "PM2": 6, "PM3": 6, "PM4": 6, "PM5": 6, "PM6": 6,
	"BS1": -5, "BS2": -5, "BS3": -5, "BS4": -5,

	"PP1": 3, "PP2": 3, "PP3": 3, "PP4": 3, "PP5": 3,
	"BP1": -2, "BP2": -2, "BP3": -2, "BP4": -2, "BP5": -2, "BP6": -2, "BP7": -2,
}

// acmgRuleScore sums the weight of each comma-separated ACMG rule token and
// scales by 20 to sit alongside the other components. Unrecognized tokens
// contribute zero.
func (s *Scorer) acmgRuleScore(rec tsv.Record) int {
	v := s.cols.Get(columns.ACMGRules, rec)
	if v == tsv.Missing {
		return 0
	}

	total := 0
	for _, rule := range strings.Split(v, ",") {
		total += acmgRuleWeights[strings.TrimSpace(rule)]
	}
	return total * 20
}

// conservationScore buckets GERP++ and phyloP conservation, additively.
func (s *Scorer) conservationScore(rec tsv.Record) int {
	score := 0

	if gerp, ok := columns.Number(s.cols.Get(columns.GERP, rec)); ok {
		switch {
		case gerp > 5:
			score += 200
		case gerp > 4:
			score += 150
		case gerp > 2:
			score += 100
		case gerp > 0:
			score += 50
		}
	}

	if phylop, ok := columns.Number(s.cols.Get(columns.PhyloP, rec)); ok {
		switch {
		case phylop > 3:
			score += 150
		case phylop > 2:
			score += 100
		case phylop > 1:
			score += 75
		case phylop > 0:
			score += 50
		}
	}

	return score
}

// inheritanceScore combines the reported variant origin, the allele-depth
// derived VAF, and configured gene-specific inheritance knowledge.
func (s *Scorer) inheritanceScore(rec tsv.Record) int {
	score := 0

	if v := s.cols.Get(columns.Origin, rec); v != tsv.Missing {
		origin := strings.ToLower(v)
		switch {
		case strings.Contains(origin, "de novo") || strings.Contains(origin, "denovo"):
			score += 500
		case strings.Contains(origin, "compound") && strings.Contains(origin, "heterozygous"):
			score += 300
		case strings.Contains(origin, "homozygous"):
			score += 300
		case strings.Contains(origin, "hemizygous") || strings.Contains(origin, "hemizygote"):
			score += 300
		case containsAny(origin, "x-linked", "dominant", "recessive"):
			score += 200
		}
	}

	// VAF from the ref,alt allele-depth pair.
	if ad := s.cols.Get(columns.AD, rec); ad != tsv.Missing && strings.Contains(ad, ",") {
		parts := strings.Split(ad, ",")
		refDepth, err1 := strconv.Atoi(parts[0])
		altDepth, err2 := strconv.Atoi(parts[1])
		if err1 == nil && err2 == nil && refDepth+altDepth > 0 {
			vaf := float64(altDepth) / float64(refDepth+altDepth)
			if vaf > 0.8 {
				score += 200 // likely homozygous
			} else if vaf >= 0.3 && vaf <= 0.7 {
				score += 100 // well-balanced heterozygous
			}
		}
	}

	if gene := s.cols.Get(columns.Gene, rec); gene != tsv.Missing {
		if pattern, ok := s.opts.InheritancePatterns[gene]; ok {
			score += 150
			if strings.Contains(strings.ToLower(pattern), "x-linked") {
				score += 100
			}
		}
	}

	return score
}

// phenotypeScore counts configured phenotype-term matches in the OMIM and
// Orphanet annotation text (uncapped, once per term per field) and boosts
// genes of interest.
func (s *Scorer) phenotypeScore(rec tsv.Record) int {
	score := 0

	for _, field := range []columns.Field{columns.OMIM, columns.Orpha} {
		v := s.cols.Get(field, rec)
		if v == tsv.Missing {
			continue
		}
		text := strings.ToLower(v)
		for _, term := range s.opts.PhenotypeTerms {
			if strings.Contains(text, strings.ToLower(term)) {
				score += 100
			}
		}
	}

	if gene := s.cols.Get(columns.Gene, rec); gene != tsv.Missing && s.opts.GenesOfInterest[gene] {
		score += 200
	}

	return score
}

// qualityScore buckets read depth, sample allele fraction and the caller's
// FILTER verdict. Poor support scores negative.
func (s *Scorer) qualityScore(rec tsv.Record) int {
	score := 0

	if depth, ok := columns.Number(s.cols.Get(columns.Depth, rec)); ok {
		switch {
		case depth >= 50:
			score += 150
		case depth >= 30:
			score += 100
		case depth >= 20:
			score += 50
		case depth >= 10:
			// acceptable, no adjustment
		default:
			score -= 100
		}
	}

	if af, ok := columns.Number(s.cols.Get(columns.AF, rec)); ok {
		switch {
		case af >= 0.3:
			score += 100
		case af >= 0.2:
			score += 50
		case af < 0.1: // possible artifact
			score -= 50
		}
	}

	if v := s.cols.Get(columns.Filter, rec); v != tsv.Missing {
		if v == "PASS" {
			score += 100
		} else {
			score -= 200
		}
	}

	return score
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
