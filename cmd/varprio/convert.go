package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lcvar/varprio/internal/convert"
)

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <input-file> <output-file>",
		Short: "Rewrite chromosome names to the chr-prefixed form",
		Long:  "Rewrite bare chromosome names (1..22, X, Y, M, MT) in the first column\nto chr1, chrX, ... for tools that require the UCSC naming convention.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open input file: %w", err)
			}
			defer in.Close()

			out, err := os.Create(args[1])
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}

			rewritten, err := convert.Rewrite(in, out)
			if err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return fmt.Errorf("close output file: %w", err)
			}

			logger.Info("conversion complete",
				zap.String("input", args[0]),
				zap.String("output", args[1]),
				zap.Int("rewritten", rewritten))
			return nil
		},
	}
}
