package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lcvar/varprio/internal/merge"
)

func newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge <intervar-file> <snpsift-file> <matched-output> <unmatched-output>",
		Short: "Join an InterVar table with SnpSift annotations",
		Long: `Join the two annotation tables on (chrom, start, end, ref, alt).
Matched rows get the SnpSift annotation columns appended; unmatched rows are
written unchanged to a separate file.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open intervar file: %w", err)
			}
			defer base.Close()

			ann, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("open snpsift file: %w", err)
			}
			defer ann.Close()

			matched, err := os.Create(args[2])
			if err != nil {
				return fmt.Errorf("create matched output: %w", err)
			}
			defer matched.Close()

			unmatched, err := os.Create(args[3])
			if err != nil {
				return fmt.Errorf("create unmatched output: %w", err)
			}
			defer unmatched.Close()

			stats, err := merge.Merge(base, ann, matched, unmatched)
			if err != nil {
				return err
			}

			logger.Info("merge complete",
				zap.Int("total", stats.Total()),
				zap.Int("matched", stats.Matched),
				zap.Int("unmatched", stats.Unmatched))
			return nil
		},
	}
}
