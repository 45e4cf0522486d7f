// Package convert rewrites bare chromosome names (1..22, X, Y, M, MT) to the
// chr-prefixed form in annotator output tables. Everything else on each line
// passes through byte for byte.
package convert

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Rewrite copies r to w, prefixing the first column with "chr" where it is a
// bare chromosome name. Header lines (starting with "#Chr") pass through
// untouched. Returns the number of rewritten lines.
func Rewrite(r io.Reader, w io.Writer) (int, error) {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	rewritten := 0

	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return rewritten, fmt.Errorf("read line: %w", err)
		}
		if line != "" {
			out := line
			if !strings.HasPrefix(line, "#Chr") {
				fields := strings.SplitN(line, "\t", 2)
				if bareChrom(fields[0]) {
					fields[0] = "chr" + fields[0]
					out = strings.Join(fields, "\t")
					rewritten++
				}
			}
			if _, werr := bw.WriteString(out); werr != nil {
				return rewritten, fmt.Errorf("write line: %w", werr)
			}
		}
		if err == io.EOF {
			break
		}
	}

	return rewritten, bw.Flush()
}

// bareChrom reports whether s is a chromosome name without the chr prefix.
func bareChrom(s string) bool {
	switch s {
	case "X", "Y", "M", "MT":
		return true
	}
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
