package prioritize

import (
	"strings"

	"go.uber.org/zap"

	"github.com/lcvar/varprio/internal/columns"
	"github.com/lcvar/varprio/internal/tsv"
)

// Prefilter narrows the row set before scoring. The four stages run in a
// fixed order and each intersects with the running set; a stage whose field
// did not resolve, or whose threshold is not constraining, is skipped
// entirely. Unparsable values are treated permissively: a row is never
// dropped because a threshold could not be evaluated against it.
type Prefilter struct {
	cols   *columns.Map
	opts   Options
	logger *zap.Logger
}

// NewPrefilter creates a prefilter bound to a resolved column map.
func NewPrefilter(cols *columns.Map, opts Options, logger *zap.Logger) *Prefilter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prefilter{cols: cols, opts: opts, logger: logger}
}

// Apply runs all stages and returns the surviving rows in input order.
func (f *Prefilter) Apply(rows []tsv.Record) []tsv.Record {
	if f.opts.MinCADD > 0 && f.cols.Has(columns.CADDPhred) {
		rows = f.keep(rows, func(rec tsv.Record) bool {
			cadd, ok := columns.Number(f.cols.Get(columns.CADDPhred, rec))
			return !ok || cadd >= f.opts.MinCADD
		})
		f.logger.Info("filtered by CADD",
			zap.Float64("min_cadd", f.opts.MinCADD),
			zap.Int("remaining", len(rows)))
	}

	if f.opts.MaxGnomAD < 1.0 && f.cols.Has(columns.GnomADFreq) {
		rows = f.keep(rows, func(rec tsv.Record) bool {
			freq, ok := columns.Number(f.cols.Get(columns.GnomADFreq, rec))
			return !ok || freq <= f.opts.MaxGnomAD
		})
		f.logger.Info("filtered by gnomAD frequency",
			zap.Float64("max_gnomad", f.opts.MaxGnomAD),
			zap.Int("remaining", len(rows)))
	}

	if !f.opts.IncludeBenign && f.cols.Has(columns.ACMG) {
		rows = f.keep(rows, func(rec tsv.Record) bool {
			acmg := strings.ToLower(f.cols.Get(columns.ACMG, rec))
			// "Likely Benign" stays; only clear benign calls are dropped.
			return !(strings.Contains(acmg, "benign") && !strings.Contains(acmg, "likely"))
		})
		f.logger.Info("excluded benign variants", zap.Int("remaining", len(rows)))
	}

	if len(f.opts.GenesOfInterest) > 0 && f.cols.Has(columns.Gene) {
		rows = f.keep(rows, func(rec tsv.Record) bool {
			return f.opts.GenesOfInterest[f.cols.Get(columns.Gene, rec)]
		})
		f.logger.Info("filtered for genes of interest",
			zap.Int("genes", len(f.opts.GenesOfInterest)),
			zap.Int("remaining", len(rows)))
	}

	return rows
}

func (f *Prefilter) keep(rows []tsv.Record, pred func(tsv.Record) bool) []tsv.Record {
	out := rows[:0:0]
	for _, rec := range rows {
		if pred(rec) {
			out = append(out, rec)
		}
	}
	return out
}
