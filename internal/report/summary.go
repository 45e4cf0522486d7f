package report

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/lcvar/varprio/internal/columns"
	"github.com/lcvar/varprio/internal/prioritize"
	"github.com/lcvar/varprio/internal/tsv"
)

// Metadata identifies one prioritization run in the summary and JSON
// outputs. Date is injected by the caller so the writers themselves stay
// deterministic.
type Metadata struct {
	InputFile string `json:"input_file"`
	Date      string `json:"date"`
}

// WriteSummary writes the deterministic plain-text run summary.
func WriteSummary(w io.Writer, meta Metadata, res *prioritize.Result) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Variant Prioritization Summary\n")
	fmt.Fprintf(bw, "==============================\n\n")
	fmt.Fprintf(bw, "Input file: %s\n", meta.InputFile)
	fmt.Fprintf(bw, "Date: %s\n\n", meta.Date)

	fmt.Fprintf(bw, "Variant Statistics:\n")
	fmt.Fprintf(bw, "------------------\n")
	fmt.Fprintf(bw, "Total variants processed: %d\n", res.Stats.TotalVariants)
	fmt.Fprintf(bw, "Variants after filtering: %d\n\n", len(res.Rows))

	fmt.Fprintf(bw, "Classification Distribution:\n")
	for _, cls := range sortedClassifications(res.ClassCounts) {
		fmt.Fprintf(bw, "  %s: %d\n", cls, res.ClassCounts[cls])
	}
	fmt.Fprintf(bw, "\n")

	if impacts := countColumn(res, columns.Impact); len(impacts) > 0 {
		fmt.Fprintf(bw, "Impact Distribution:\n")
		for _, impact := range sortedImpacts(impacts) {
			fmt.Fprintf(bw, "  %s: %d\n", impact, impacts[impact])
		}
		fmt.Fprintf(bw, "\n")
	}

	if genes := countColumn(res, columns.Gene); len(genes) > 0 {
		fmt.Fprintf(bw, "Top Genes:\n")
		for _, gene := range topGenes(genes, 10) {
			fmt.Fprintf(bw, "  %s: %d\n", gene, genes[gene])
		}
	}

	return bw.Flush()
}

// countColumn tallies the raw values of a resolved field over the ranked
// rows. Returns nil when the field did not resolve.
func countColumn(res *prioritize.Result, field columns.Field) map[string]int {
	if !res.Map.Has(field) {
		return nil
	}
	counts := make(map[string]int)
	for _, row := range res.Rows {
		counts[res.Map.Get(field, row.Record)]++
	}
	return counts
}

// sortedClassifications orders classes pathogenic-first: Pathogenic, then
// Likely Pathogenic, then the rest alphabetically.
func sortedClassifications(counts map[prioritize.Classification]int) []prioritize.Classification {
	classes := make([]prioritize.Classification, 0, len(counts))
	for cls := range counts {
		classes = append(classes, cls)
	}
	sort.Slice(classes, func(i, j int) bool {
		return classRank(classes[i]) < classRank(classes[j]) ||
			(classRank(classes[i]) == classRank(classes[j]) && classes[i] < classes[j])
	})
	return classes
}

func classRank(cls prioritize.Classification) int {
	switch cls {
	case prioritize.Pathogenic:
		return 0
	case prioritize.LikelyPathogenic:
		return 1
	default:
		return 2
	}
}

// sortedImpacts orders impact levels HIGH, MODERATE, then alphabetically.
func sortedImpacts(counts map[string]int) []string {
	impacts := make([]string, 0, len(counts))
	for impact := range counts {
		impacts = append(impacts, impact)
	}
	rank := func(s string) int {
		switch s {
		case "HIGH":
			return 0
		case "MODERATE":
			return 1
		default:
			return 2
		}
	}
	sort.Slice(impacts, func(i, j int) bool {
		return rank(impacts[i]) < rank(impacts[j]) ||
			(rank(impacts[i]) == rank(impacts[j]) && impacts[i] < impacts[j])
	})
	return impacts
}

// topGenes picks the n most frequent genes (count descending, name ascending
// on ties, "." excluded) and returns them alphabetically for display.
func topGenes(counts map[string]int, n int) []string {
	genes := make([]string, 0, len(counts))
	for gene := range counts {
		if gene != tsv.Missing {
			genes = append(genes, gene)
		}
	}
	sort.Slice(genes, func(i, j int) bool {
		if counts[genes[i]] != counts[genes[j]] {
			return counts[genes[i]] > counts[genes[j]]
		}
		return genes[i] < genes[j]
	})
	if len(genes) > n {
		genes = genes[:n]
	}
	sort.Strings(genes)
	return genes
}
