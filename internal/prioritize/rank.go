package prioritize

import "sort"

// Rank stable-sorts rows by descending composite score, so rows with equal
// scores keep their original relative input order, then truncates to the
// first topN entries when topN is positive. Truncation happens strictly
// after sorting.
func Rank(rows []RowResult, topN int) []RowResult {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})
	if topN > 0 && len(rows) > topN {
		rows = rows[:topN]
	}
	return rows
}
