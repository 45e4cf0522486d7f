package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/lcvar/varprio/internal/prioritize"
	"github.com/lcvar/varprio/internal/report"
	"github.com/lcvar/varprio/internal/tsv"
)

func newPrioritizeCmd() *cobra.Command {
	var (
		outputFile      string
		outputFormat    string
		topN            int
		geneFile        string
		phenotypeFile   string
		inheritanceFile string
		includeBenign   bool
		minCADD         float64
		maxGnomAD       float64
		workers         int
	)

	cmd := &cobra.Command{
		Use:   "prioritize <input-file>",
		Short: "Rank annotated variants by clinical priority",
		Long: `Read a tab-separated variant table (use '-' for stdin, .gz supported),
apply the optional prefilters, score and classify every surviving variant,
and write the ranked table plus a run summary.`,
		Example: `  varprio prioritize -o ranked.tsv annotated.tsv
  varprio prioritize -o ranked.tsv -c 15 --max-gnomad 0.01 annotated.tsv.gz
  varprio prioritize -o ranked.tsv -g panel_genes.txt -p hpo_terms.txt -f json annotated.tsv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := prioritize.DefaultOptions()
			opts.TopN = topN
			opts.IncludeBenign = includeBenign
			opts.MinCADD = minCADD
			opts.MaxGnomAD = maxGnomAD
			opts.Workers = workers

			loadSupportingData(&opts, geneFile, phenotypeFile, inheritanceFile)

			return runPrioritize(args[0], outputFile, outputFormat, opts)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output TSV file (required)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tsv", "output format: tsv, excel, json")
	cmd.Flags().IntVarP(&topN, "top", "n", viper.GetInt("prioritize.top_n"), "number of top variants to keep (0 for all)")
	cmd.Flags().StringVarP(&geneFile, "genes", "g", viper.GetString("prioritize.genes"), "file with genes of interest, one per line")
	cmd.Flags().StringVarP(&phenotypeFile, "phenotype", "p", viper.GetString("prioritize.phenotype"), "file with HPO terms or phenotype keywords, one per line")
	cmd.Flags().StringVar(&inheritanceFile, "inheritance", viper.GetString("prioritize.inheritance"), "file with gene-specific inheritance patterns (gene<TAB>pattern)")
	cmd.Flags().BoolVar(&includeBenign, "include-benign", viper.GetBool("prioritize.include_benign"), "keep clearly benign variants")
	cmd.Flags().Float64VarP(&minCADD, "min-cadd", "c", viper.GetFloat64("prioritize.min_cadd"), "minimum CADD phred score")
	cmd.Flags().Float64Var(&maxGnomAD, "max-gnomad", defaultMaxGnomAD(), "maximum gnomAD global allele frequency")
	cmd.Flags().IntVar(&workers, "workers", 0, "scoring worker count (0 for one per CPU)")
	cmd.MarkFlagRequired("output")

	return cmd
}

func defaultMaxGnomAD() float64 {
	if viper.IsSet("prioritize.max_gnomad") {
		return viper.GetFloat64("prioritize.max_gnomad")
	}
	return 1.0
}

// loadSupportingData fills the gene, phenotype and inheritance collections.
// A missing or unreadable optional file is a warning, never a fatal error.
func loadSupportingData(opts *prioritize.Options, geneFile, phenotypeFile, inheritanceFile string) {
	if geneFile != "" {
		genes, err := prioritize.LoadGeneList(geneFile)
		if err != nil {
			logger.Warn("could not load gene list", zap.Error(err))
		} else {
			opts.GenesOfInterest = genes
		}
	}
	if phenotypeFile != "" {
		terms, err := prioritize.LoadPhenotypeTerms(phenotypeFile)
		if err != nil {
			logger.Warn("could not load phenotype terms", zap.Error(err))
		} else {
			opts.PhenotypeTerms = terms
		}
	}
	if inheritanceFile != "" {
		patterns, err := prioritize.LoadInheritancePatterns(inheritanceFile)
		if err != nil {
			logger.Warn("could not load inheritance patterns", zap.Error(err))
		} else {
			opts.InheritancePatterns = patterns
		}
	}
}

func runPrioritize(inputPath, outputPath, format string, opts prioritize.Options) error {
	switch format {
	case "tsv", "excel", "json":
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	logger.Info("processing file", zap.String("input", inputPath))

	reader, err := tsv.NewReader(inputPath)
	if err != nil {
		return err
	}
	table, err := reader.ReadAll()
	reader.Close()
	if err != nil {
		return err
	}

	engine := prioritize.New(opts)
	engine.SetLogger(logger)

	res, err := engine.Run(table)
	if err != nil {
		return err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := report.WriteTab(out, res); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}
	logger.Info("wrote prioritized variants",
		zap.Int("count", len(res.Rows)),
		zap.String("output", outputPath))

	meta := report.Metadata{
		InputFile: inputPath,
		Date:      time.Now().Format("2006-01-02 15:04:05"),
	}

	base := strings.TrimSuffix(outputPath, filepath.Ext(outputPath))

	summaryPath := base + ".summary.txt"
	summary, err := os.Create(summaryPath)
	if err != nil {
		return fmt.Errorf("create summary file: %w", err)
	}
	if err := report.WriteSummary(summary, meta, res); err != nil {
		summary.Close()
		return err
	}
	if err := summary.Close(); err != nil {
		return fmt.Errorf("close summary file: %w", err)
	}
	logger.Info("wrote summary", zap.String("output", summaryPath))

	switch format {
	case "excel":
		excelPath := base + ".xlsx"
		if err := report.WriteExcel(excelPath, res); err != nil {
			return err
		}
		logger.Info("wrote spreadsheet", zap.String("output", excelPath))
	case "json":
		jsonPath := base + ".json"
		jf, err := os.Create(jsonPath)
		if err != nil {
			return fmt.Errorf("create json file: %w", err)
		}
		if err := report.WriteJSON(jf, meta, res); err != nil {
			jf.Close()
			return err
		}
		if err := jf.Close(); err != nil {
			return fmt.Errorf("close json file: %w", err)
		}
		logger.Info("wrote json report", zap.String("output", jsonPath))
	}

	logger.Info("prioritization complete",
		zap.Int("total", res.Stats.TotalVariants),
		zap.Int("pathogenic", res.Stats.Pathogenic),
		zap.Int("likely_pathogenic", res.Stats.LikelyPathogenic),
		zap.Int("vus", res.Stats.VUS),
		zap.Int("likely_benign", res.Stats.LikelyBenign),
		zap.Int("benign", res.Stats.Benign))

	return nil
}
