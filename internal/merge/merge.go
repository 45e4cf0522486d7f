// Package merge joins an InterVar-style variant table with SnpSift-annotated
// variants on the (chrom, start, end, ref, alt) key, appending a fixed set
// of annotation columns to matched rows.
package merge

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// AnnotationColumns are the SnpSift columns carried over to matched rows, in
// output order. Columns missing from the annotation header yield empty cells.
var AnnotationColumns = []string{
	"ANN[0].GENE", "ANN[0].FEATUREID", "ANN[0].HGVS_P", "ANN[0].HGVS_C",
	"ANN[0].EFFECT", "ANN[0].IMPACT", "ANN[0].RANK", "DP", "AF",
	"GEN[0].AD", "CLNHGVS", "CLNSIGCONF", "ALLELEID", "FILTER", "RS",
}

// Key columns in the SnpSift table identifying a variant.
var keyColumns = []string{"CHROM", "AVINPUTSTART", "AVINPUTEND", "AVINPUTREF", "AVINPUTALT"}

// Stats counts the outcome of one merge.
type Stats struct {
	Matched   int
	Unmatched int
}

// Total returns the number of base rows processed.
func (s Stats) Total() int {
	return s.Matched + s.Unmatched
}

// Merge reads the SnpSift annotation table from ann, then streams the base
// table from base: matched rows go to matched with the annotation columns
// appended, the rest go to unmatched unchanged.
func Merge(base, ann io.Reader, matched, unmatched io.Writer) (Stats, error) {
	lookup, err := loadAnnotations(ann)
	if err != nil {
		return Stats{}, err
	}

	baseScan := bufio.NewScanner(base)
	baseScan.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	mw := bufio.NewWriter(matched)
	uw := bufio.NewWriter(unmatched)

	if !baseScan.Scan() {
		if err := baseScan.Err(); err != nil {
			return Stats{}, fmt.Errorf("read base header: %w", err)
		}
		return Stats{}, fmt.Errorf("base table is empty")
	}
	header := strings.TrimRight(baseScan.Text(), "\r\n")
	fmt.Fprintf(mw, "%s\t%s\n", header, strings.Join(AnnotationColumns, "\t"))
	fmt.Fprintf(uw, "%s\n", header)

	var stats Stats
	for baseScan.Scan() {
		line := strings.TrimRight(baseScan.Text(), "\r\n")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 5 {
			fmt.Fprintf(uw, "%s\n", line)
			stats.Unmatched++
			continue
		}

		key := strings.Join(fields[:5], "\t")
		if values, ok := lookup[key]; ok {
			fmt.Fprintf(mw, "%s\t%s\n", line, strings.Join(values, "\t"))
			stats.Matched++
		} else {
			fmt.Fprintf(uw, "%s\n", line)
			stats.Unmatched++
		}
	}
	if err := baseScan.Err(); err != nil {
		return stats, fmt.Errorf("read base table: %w", err)
	}

	if err := mw.Flush(); err != nil {
		return stats, fmt.Errorf("flush matched output: %w", err)
	}
	if err := uw.Flush(); err != nil {
		return stats, fmt.Errorf("flush unmatched output: %w", err)
	}
	return stats, nil
}

// loadAnnotations indexes the SnpSift table by variant key.
func loadAnnotations(r io.Reader) (map[string][]string, error) {
	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)

	if !scan.Scan() {
		if err := scan.Err(); err != nil {
			return nil, fmt.Errorf("read annotation header: %w", err)
		}
		return nil, fmt.Errorf("annotation table is empty")
	}
	header := strings.Split(strings.TrimRight(scan.Text(), "\r\n"), "\t")

	index := func(name string) int {
		for i, col := range header {
			if col == name {
				return i
			}
		}
		return -1
	}

	keyIdx := make([]int, len(keyColumns))
	maxKeyIdx := 0
	for i, name := range keyColumns {
		keyIdx[i] = index(name)
		if keyIdx[i] < 0 {
			return nil, fmt.Errorf("required column %q not found in annotation table", name)
		}
		if keyIdx[i] > maxKeyIdx {
			maxKeyIdx = keyIdx[i]
		}
	}

	extractIdx := make([]int, len(AnnotationColumns))
	for i, name := range AnnotationColumns {
		extractIdx[i] = index(name)
	}

	lookup := make(map[string][]string)
	for scan.Scan() {
		fields := strings.Split(strings.TrimRight(scan.Text(), "\r\n"), "\t")
		if len(fields) <= maxKeyIdx {
			continue
		}

		keyParts := make([]string, len(keyIdx))
		for i, idx := range keyIdx {
			keyParts[i] = fields[idx]
		}

		values := make([]string, len(extractIdx))
		for i, idx := range extractIdx {
			if idx >= 0 && idx < len(fields) {
				values[i] = fields[idx]
			}
		}

		lookup[strings.Join(keyParts, "\t")] = values
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("read annotation table: %w", err)
	}

	return lookup, nil
}
