package prioritize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcvar/varprio/internal/tsv"
)

func readTable(t *testing.T, input string) *tsv.Table {
	t.Helper()
	r, err := tsv.NewReaderFrom(strings.NewReader(input))
	require.NoError(t, err)
	table, err := r.ReadAll()
	require.NoError(t, err)
	return table
}

const engineInput = "Gene\tACMG\tANN[0].EFFECT\tANN[0].IMPACT\tCADD_phred\n" +
	"GENE1\tBenign\tsynonymous_variant\tLOW\t2\n" +
	"GENE2\tPathogenic\tstop_gained\tHIGH\t35\n" +
	"GENE3\tLikely pathogenic\tmissense_variant\tMODERATE\t25\n" +
	"GENE4\tUncertain significance\tmissense_variant\tMODERATE\t18\n"

func TestEngine_RanksByDescendingScore(t *testing.T) {
	res, err := New(DefaultOptions()).Run(readTable(t, engineInput))
	require.NoError(t, err)

	// The benign row is dropped by the default prefilter.
	require.Len(t, res.Rows, 3)
	assert.Equal(t, "GENE2", res.Rows[0].Record.Value(0))
	assert.Equal(t, "GENE3", res.Rows[1].Record.Value(0))
	assert.Equal(t, "GENE4", res.Rows[2].Record.Value(0))

	for i := 1; i < len(res.Rows); i++ {
		assert.GreaterOrEqual(t, res.Rows[i-1].Score, res.Rows[i].Score)
	}

	// Scores equal the breakdown totals.
	for _, row := range res.Rows {
		assert.Equal(t, row.Breakdown.Total(), row.Score)
		assert.Len(t, row.Breakdown, 9)
	}

	assert.Equal(t, 4, res.Stats.TotalVariants)
	assert.Equal(t, 1, res.Stats.Pathogenic)
	assert.Equal(t, 1, res.Stats.LikelyPathogenic)
	assert.Equal(t, 1, res.Stats.VUS)
	assert.Equal(t, 1, res.Stats.HighImpact)
	assert.Equal(t, 2, res.Stats.ModerateImpact)
}

func TestEngine_StableTieOrder(t *testing.T) {
	// Identical rows score identically; input order must survive ranking.
	input := "Gene\tACMG\n" +
		"FIRST\tUncertain significance\n" +
		"SECOND\tUncertain significance\n" +
		"THIRD\tUncertain significance\n"

	res, err := New(DefaultOptions()).Run(readTable(t, input))
	require.NoError(t, err)

	require.Len(t, res.Rows, 3)
	assert.Equal(t, "FIRST", res.Rows[0].Record.Value(0))
	assert.Equal(t, "SECOND", res.Rows[1].Record.Value(0))
	assert.Equal(t, "THIRD", res.Rows[2].Record.Value(0))
	assert.Equal(t, res.Rows[0].Score, res.Rows[2].Score)
}

func TestEngine_TopN(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeBenign = true
	opts.TopN = 2

	res, err := New(opts).Run(readTable(t, engineInput))
	require.NoError(t, err)

	require.Len(t, res.Rows, 2)
	assert.Equal(t, "GENE2", res.Rows[0].Record.Value(0))
	assert.Equal(t, "GENE3", res.Rows[1].Record.Value(0))

	// Classification counts cover all scored rows, not just the top N.
	assert.Equal(t, 1, res.ClassCounts[Benign])
}

func TestEngine_Deterministic(t *testing.T) {
	opts := DefaultOptions()
	opts.Workers = 4

	run := func() *Result {
		res, err := New(opts).Run(readTable(t, engineInput))
		require.NoError(t, err)
		return res
	}

	a, b := run(), run()
	require.Equal(t, len(a.Rows), len(b.Rows))
	for i := range a.Rows {
		assert.Equal(t, a.Rows[i].Record, b.Rows[i].Record)
		assert.Equal(t, a.Rows[i].Score, b.Rows[i].Score)
		assert.Equal(t, a.Rows[i].Breakdown, b.Rows[i].Breakdown)
	}
	assert.Equal(t, a.Stats, b.Stats)
}

func TestEngine_EmptySurvivorSet(t *testing.T) {
	// Everything is benign and excluded: a valid terminal state.
	input := "Gene\tACMG\nGENE1\tBenign\n"

	res, err := New(DefaultOptions()).Run(readTable(t, input))
	require.NoError(t, err)

	assert.Empty(t, res.Rows)
	assert.Equal(t, 1, res.Stats.TotalVariants)
	assert.Equal(t, []string{"Gene", "ACMG"}, res.Columns)
}

func TestEngine_PreservesOriginalValues(t *testing.T) {
	input := "Gene\tACMG\tWeird Column\n" +
		"GENE1\tPathogenic\tvalue with  spaces, \"quotes\"\n"

	res, err := New(DefaultOptions()).Run(readTable(t, input))
	require.NoError(t, err)

	require.Len(t, res.Rows, 1)
	assert.Equal(t, []string{"GENE1", "Pathogenic", "value with  spaces, \"quotes\""},
		res.Rows[0].Record.Fields)
}

func TestRank(t *testing.T) {
	rows := []RowResult{
		{Index: 0, Score: 100},
		{Index: 1, Score: 300},
		{Index: 2, Score: 100},
		{Index: 3, Score: 200},
	}

	ranked := Rank(rows, 0)
	require.Len(t, ranked, 4)
	assert.Equal(t, []int{1, 3, 0, 2}, []int{
		ranked[0].Index, ranked[1].Index, ranked[2].Index, ranked[3].Index,
	})

	top := Rank(rows, 2)
	require.Len(t, top, 2)
	assert.Equal(t, 300, top[0].Score)
	assert.Equal(t, 200, top[1].Score)
}
