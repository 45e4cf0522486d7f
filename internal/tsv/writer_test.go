package tsv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_RoundTrip(t *testing.T) {
	input := "Chr\tGene\tNote\n" +
		"1\tBRCA1\thas \"quotes\" and, commas\n" +
		"2\tTP53\t.\n"

	r, err := NewReaderFrom(strings.NewReader(input))
	require.NoError(t, err)
	table, err := r.ReadAll()
	require.NoError(t, err)

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader(table.Columns))
	for _, rec := range table.Rows {
		require.NoError(t, w.WriteRow(rec))
	}
	require.NoError(t, w.Flush())

	// Values pass through verbatim, no quoting or escaping.
	assert.Equal(t, input, buf.String())
}

func TestWriter_ExtraCells(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader([]string{"A", "B"}))

	rec := Record{Fields: []string{"1", "2"}}
	require.NoError(t, w.WriteRow(rec, "950", "Impact: 900"))
	require.NoError(t, w.Flush())

	assert.Equal(t, "A\tB\n1\t2\t950\tImpact: 900\n", buf.String())
	// The record itself is not mutated.
	assert.Equal(t, []string{"1", "2"}, rec.Fields)
}
