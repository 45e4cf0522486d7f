package prioritize

import (
	"go.uber.org/zap"

	"github.com/lcvar/varprio/internal/columns"
	"github.com/lcvar/varprio/internal/tsv"
)

// RowResult is one scored, classified variant row. Record holds the original
// cell values untouched; only the computed attributes are new.
type RowResult struct {
	// Index is the row's position among the surviving rows, in input order.
	Index int

	Record         tsv.Record
	Breakdown      Breakdown
	Score          int
	Classification Classification

	tier EffectTier
}

// Stats are the running statistics of one prioritization run. The JSON field
// names are part of the report format.
type Stats struct {
	TotalVariants    int `json:"total_variants"`
	Pathogenic       int `json:"pathogenic"`
	LikelyPathogenic int `json:"likely_pathogenic"`
	VUS              int `json:"vus"`
	LikelyBenign     int `json:"likely_benign"`
	Benign           int `json:"benign"`
	HighImpact       int `json:"high_impact"`
	ModerateImpact   int `json:"moderate_impact"`
	LowImpact        int `json:"low_impact"`
}

// Result is the terminal output of one run.
type Result struct {
	// Columns is the original header, in original order.
	Columns []string

	// Map is the resolved column map the run used.
	Map *columns.Map

	// Rows are the ranked (and possibly truncated) scored rows.
	Rows []RowResult

	// ClassCounts counts classifications over all scored rows, before any
	// top-N truncation.
	ClassCounts map[Classification]int

	Stats Stats
}

// Engine ties the pipeline together: resolve columns, prefilter, score and
// classify each surviving row, rank, and accumulate statistics.
type Engine struct {
	opts   Options
	logger *zap.Logger
}

// New creates an engine with the given options.
func New(opts Options) *Engine {
	return &Engine{opts: opts, logger: zap.NewNop()}
}

// SetLogger sets the logger for warning and progress messages.
func (e *Engine) SetLogger(l *zap.Logger) {
	if l != nil {
		e.logger = l
	}
}

// Run processes the whole table in one batch and returns the ranked result.
// Zero surviving rows is a valid terminal state, not an error.
func (e *Engine) Run(table *tsv.Table) (*Result, error) {
	cols := columns.Resolve(table.Columns)
	for _, f := range cols.MissingImportant() {
		e.logger.Warn("important column not found in input", zap.String("field", string(f)))
	}

	stats := Stats{TotalVariants: len(table.Rows)}
	e.logger.Info("read variants", zap.Int("count", len(table.Rows)))

	rows := NewPrefilter(cols, e.opts, e.logger).Apply(table.Rows)
	e.logger.Info("applied prefilters",
		zap.Int("removed", len(table.Rows)-len(rows)),
		zap.Int("remaining", len(rows)))

	scorer := NewScorer(cols, e.opts)

	items := make(chan workItem, 2*max(e.opts.Workers, 1))
	go func() {
		defer close(items)
		for i, rec := range rows {
			items <- workItem{seq: i, rec: rec}
		}
	}()

	results := evaluateParallel(items, e.opts.Workers, func(rec tsv.Record) RowResult {
		breakdown, tier := scorer.Score(rec)
		return RowResult{
			Record:         rec,
			Breakdown:      breakdown,
			Score:          breakdown.Total(),
			Classification: Classify(cols, rec),
			tier:           tier,
		}
	})

	scored := make([]RowResult, 0, len(rows))
	classCounts := make(map[Classification]int)
	orderedCollect(results, func(r workResult) {
		scored = append(scored, r.res)
		classCounts[r.res.Classification]++
		switch r.res.tier {
		case TierHigh:
			stats.HighImpact++
		case TierModerate:
			stats.ModerateImpact++
		case TierLow:
			stats.LowImpact++
		}
	})

	stats.Pathogenic = classCounts[Pathogenic]
	stats.LikelyPathogenic = classCounts[LikelyPathogenic]
	stats.VUS = classCounts[VUS] + classCounts[Unknown]
	stats.LikelyBenign = classCounts[LikelyBenign]
	stats.Benign = classCounts[Benign]

	ranked := Rank(scored, e.opts.TopN)
	if e.opts.TopN > 0 && len(scored) > e.opts.TopN {
		e.logger.Info("selected top variants", zap.Int("top_n", e.opts.TopN))
	}

	return &Result{
		Columns:     table.Columns,
		Map:         cols,
		Rows:        ranked,
		ClassCounts: classCounts,
		Stats:       stats,
	}, nil
}
