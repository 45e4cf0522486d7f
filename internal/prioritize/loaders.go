package prioritize

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// The supporting-data files are plain text, one entry per line, with '#'
// comments and blank lines ignored.

// LoadGeneList reads a gene-of-interest file, one gene symbol per line.
func LoadGeneList(path string) (map[string]bool, error) {
	genes := make(map[string]bool)
	err := eachLine(path, func(line string) {
		genes[line] = true
	})
	if err != nil {
		return nil, err
	}
	return genes, nil
}

// LoadPhenotypeTerms reads phenotype keywords or HPO terms, one per line.
func LoadPhenotypeTerms(path string) ([]string, error) {
	var terms []string
	err := eachLine(path, func(line string) {
		terms = append(terms, line)
	})
	if err != nil {
		return nil, err
	}
	return terms, nil
}

// LoadInheritancePatterns reads gene-specific inheritance patterns, one
// "gene<TAB>pattern" pair per line. Lines without a pattern are skipped.
func LoadInheritancePatterns(path string) (map[string]string, error) {
	patterns := make(map[string]string)
	err := eachLine(path, func(line string) {
		parts := strings.Split(line, "\t")
		if len(parts) >= 2 {
			patterns[parts[0]] = parts[1]
		}
	})
	if err != nil {
		return nil, err
	}
	return patterns, nil
}

func eachLine(path string, fn func(line string)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fn(line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}
