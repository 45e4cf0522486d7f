package prioritize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lcvar/varprio/internal/columns"
	"github.com/lcvar/varprio/internal/tsv"
)

func filterRows(t *testing.T, opts Options, header []string, rows ...[]string) []tsv.Record {
	t.Helper()
	cols := columns.Resolve(header)
	recs := make([]tsv.Record, len(rows))
	for i, fields := range rows {
		recs[i] = tsv.Record{Fields: fields}
	}
	return NewPrefilter(cols, opts, nil).Apply(recs)
}

func TestPrefilter_CADDFloor(t *testing.T) {
	opts := DefaultOptions()
	opts.MinCADD = 15

	kept := filterRows(t, opts, []string{"CADD_phred"},
		[]string{"20"},
		[]string{"10"},
		[]string{"."},    // missing: kept
		[]string{"abcd"}, // unparsable: kept
		[]string{"15"},
	)
	assert.Len(t, kept, 4)
	assert.Equal(t, "20", kept[0].Value(0))
	assert.Equal(t, ".", kept[1].Value(0))
	assert.Equal(t, "15", kept[3].Value(0))
}

func TestPrefilter_CADDDisabledAtZero(t *testing.T) {
	kept := filterRows(t, DefaultOptions(), []string{"CADD_phred"},
		[]string{"0.5"},
	)
	assert.Len(t, kept, 1)
}

func TestPrefilter_GnomADCeiling(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxGnomAD = 0.01

	kept := filterRows(t, opts, []string{"Freq_gnomAD_genome_ALL"},
		[]string{"0.05"}, // dropped
		[]string{"."},    // missing: kept
		[]string{"0.001"},
		[]string{"0.01"},
	)
	assert.Len(t, kept, 3)
	assert.Equal(t, ".", kept[0].Value(0))
}

func TestPrefilter_BenignExclusion(t *testing.T) {
	header := []string{"ACMG"}
	rows := [][]string{
		{"Benign"},
		{"Likely Benign"},
		{"benign"},
		{"Pathogenic"},
		{"."},
	}

	kept := filterRows(t, DefaultOptions(), header, rows...)
	assert.Len(t, kept, 3)
	assert.Equal(t, "Likely Benign", kept[0].Value(0))
	assert.Equal(t, "Pathogenic", kept[1].Value(0))

	opts := DefaultOptions()
	opts.IncludeBenign = true
	kept = filterRows(t, opts, header, rows...)
	assert.Len(t, kept, 5)
}

func TestPrefilter_GenesOfInterest(t *testing.T) {
	opts := DefaultOptions()
	opts.GenesOfInterest = map[string]bool{"BRCA1": true, "TP53": true}

	kept := filterRows(t, opts, []string{"Gene"},
		[]string{"BRCA1"},
		[]string{"BRCA2"}, // not an exact member
		[]string{"TP53"},
		[]string{"."},
	)
	assert.Len(t, kept, 2)
}

func TestPrefilter_SkipsUnresolvedFields(t *testing.T) {
	opts := DefaultOptions()
	opts.MinCADD = 30
	opts.MaxGnomAD = 0.0001
	opts.GenesOfInterest = map[string]bool{"BRCA1": true}

	// None of the filter fields resolve: every stage is a no-op.
	kept := filterRows(t, opts, []string{"Something"},
		[]string{"x"},
		[]string{"y"},
	)
	assert.Len(t, kept, 2)
}

func TestPrefilter_MonotonicCADD(t *testing.T) {
	header := []string{"CADD_phred"}
	rows := [][]string{{"5"}, {"12"}, {"."}, {"25"}, {"18"}}

	keptAt := func(min float64) []tsv.Record {
		opts := DefaultOptions()
		opts.MinCADD = min
		return filterRows(t, opts, header, rows...)
	}

	loose := keptAt(10)
	strict := keptAt(20)

	// Raising the floor only removes rows, and keeps relative order.
	assert.Len(t, loose, 4)
	assert.Len(t, strict, 2)
	j := 0
	for _, rec := range loose {
		if j < len(strict) && strict[j].Value(0) == rec.Value(0) {
			j++
		}
	}
	assert.Equal(t, len(strict), j, "strict result must be an ordered subset of loose")
}
