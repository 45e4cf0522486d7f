package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcvar/varprio/internal/columns"
	"github.com/lcvar/varprio/internal/prioritize"
	"github.com/lcvar/varprio/internal/tsv"
)

func sampleResult() *prioritize.Result {
	header := []string{"Gene", "ACMG", "ANN[0].IMPACT"}
	rows := []prioritize.RowResult{
		{
			Record: tsv.Record{Fields: []string{"BRCA1", "Pathogenic", "HIGH"}},
			Breakdown: prioritize.Breakdown{
				{Name: prioritize.CompClinical, Value: 10000},
				{Name: prioritize.CompImpact, Value: 900},
				{Name: prioritize.CompFrequency, Value: 0},
				{Name: prioritize.CompPrediction, Value: 0},
				{Name: prioritize.CompACMGRules, Value: 0},
				{Name: prioritize.CompConservation, Value: 0},
				{Name: prioritize.CompInheritance, Value: 0},
				{Name: prioritize.CompPhenotype, Value: 0},
				{Name: prioritize.CompQuality, Value: -200},
			},
			Score:          10700,
			Classification: prioritize.Pathogenic,
		},
		{
			Record: tsv.Record{Fields: []string{"TP53", "Uncertain significance", "MODERATE"}},
			Breakdown: prioritize.Breakdown{
				{Name: prioritize.CompClinical, Value: 3000},
				{Name: prioritize.CompImpact, Value: 600},
				{Name: prioritize.CompFrequency, Value: 0},
				{Name: prioritize.CompPrediction, Value: 0},
				{Name: prioritize.CompACMGRules, Value: 0},
				{Name: prioritize.CompConservation, Value: 0},
				{Name: prioritize.CompInheritance, Value: 0},
				{Name: prioritize.CompPhenotype, Value: 0},
				{Name: prioritize.CompQuality, Value: 0},
			},
			Score:          3600,
			Classification: prioritize.VUS,
		},
	}

	return &prioritize.Result{
		Columns: header,
		Map:     columns.Resolve(header),
		Rows:    rows,
		ClassCounts: map[prioritize.Classification]int{
			prioritize.Pathogenic: 1,
			prioritize.VUS:        1,
		},
		Stats: prioritize.Stats{
			TotalVariants: 5,
			Pathogenic:    1,
			VUS:           1,
			HighImpact:    1,
		},
	}
}

func TestWriteTab(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTab(&buf, sampleResult()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "Gene\tACMG\tANN[0].IMPACT\tPriorityScore\tScoreComponents", lines[0])
	assert.Equal(t, "BRCA1\tPathogenic\tHIGH\t10700\tACMG/Clinical: 10000, Impact: 900", lines[1])
	assert.Equal(t, "TP53\tUncertain significance\tMODERATE\t3600\tACMG/Clinical: 3000, Impact: 600", lines[2])
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	meta := Metadata{InputFile: "variants.tsv", Date: "2026-08-25 12:00:00"}
	require.NoError(t, WriteSummary(&buf, meta, sampleResult()))

	out := buf.String()

	for _, section := range []string{
		"Variant Prioritization Summary",
		"Input file: variants.tsv",
		"Date: 2026-08-25 12:00:00",
		"Variant Statistics:",
		"Total variants processed: 5",
		"Variants after filtering: 2",
		"Classification Distribution:",
		"Impact Distribution:",
		"Top Genes:",
	} {
		assert.Contains(t, out, section)
	}

	// Pathogenic leads the classification section.
	clsIdx := strings.Index(out, "Classification Distribution:")
	pathIdx := strings.Index(out, "  Pathogenic: 1")
	vusIdx := strings.Index(out, "  VUS: 1")
	require.Positive(t, pathIdx)
	require.Positive(t, vusIdx)
	assert.Less(t, clsIdx, pathIdx)
	assert.Less(t, pathIdx, vusIdx)

	// HIGH precedes MODERATE in the impact section.
	assert.Less(t, strings.Index(out, "  HIGH: 1"), strings.Index(out, "  MODERATE: 1"))

	assert.Contains(t, out, "  BRCA1: 1")
	assert.Contains(t, out, "  TP53: 1")
}

func TestWriteSummary_Deterministic(t *testing.T) {
	meta := Metadata{InputFile: "variants.tsv", Date: "2026-08-25 12:00:00"}

	var a, b bytes.Buffer
	require.NoError(t, WriteSummary(&a, meta, sampleResult()))
	require.NoError(t, WriteSummary(&b, meta, sampleResult()))
	assert.Equal(t, a.String(), b.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	meta := Metadata{InputFile: "variants.tsv", Date: "2026-08-25 12:00:00"}
	require.NoError(t, WriteJSON(&buf, meta, sampleResult()))

	out := buf.String()

	assert.Contains(t, out, `"input_file": "variants.tsv"`)
	assert.Contains(t, out, `"total_variants": 2`)
	assert.Contains(t, out, `"priority_score": 10700`)
	assert.Contains(t, out, `"classification": "Pathogenic"`)
	assert.Contains(t, out, `"score_components"`)
	// Negative components stay in the JSON breakdown.
	assert.Contains(t, out, `"Quality": -200`)

	// Original column order is preserved in each variant object.
	assert.Less(t, strings.Index(out, `"Gene"`), strings.Index(out, `"ACMG"`))

	// Byte-identical on rerun.
	var again bytes.Buffer
	require.NoError(t, WriteJSON(&again, meta, sampleResult()))
	assert.Equal(t, buf.String(), again.String())
}

func TestOrderedMap_MarshalOrder(t *testing.T) {
	m := newOrderedMap()
	m.set("zebra", 1)
	m.set("alpha", 2)
	m.set("zebra", 3) // overwrite keeps original position

	out, err := m.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"zebra":3,"alpha":2}`, string(out))
}
