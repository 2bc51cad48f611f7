package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Shekhar67907/SPC/internal/config"
	"github.com/Shekhar67907/SPC/internal/inspection"
	"github.com/Shekhar67907/SPC/internal/report"
	"github.com/Shekhar67907/SPC/internal/spc"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Input selection: a local CSV export or a service fetch.
	csvPath   string
	fromDate  string
	toDate    string
	shift     string
	material  string
	operation string
	gauge     string

	// Analysis parameters
	subgroupSize int
	lsl          float64
	usl          float64

	// Output
	outPath string

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "spc_report",
	Short: "Generate a statistical process control report",
	Long: `spc_report fetches inspection measurements (from a CSV export or the
remote inspection service), runs the SPC pipeline (X-bar/Range control
limits, Cp/Cpk capability indices, histogram binning), and writes a PDF
report with the charts and summary tables.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runReport,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "spc.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.Flags().StringVar(&csvPath, "csv", "", "inspection CSV export (skips the service fetch)")
	rootCmd.Flags().StringVar(&fromDate, "from", "", "start date (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&toDate, "to", "", "end date (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&shift, "shift", "", "shift filter")
	rootCmd.Flags().StringVar(&material, "material", "", "material filter")
	rootCmd.Flags().StringVar(&operation, "operation", "", "operation filter")
	rootCmd.Flags().StringVar(&gauge, "gauge", "", "gauge filter")

	rootCmd.Flags().IntVar(&subgroupSize, "subgroup-size", 0, "subgroup size (1-5; default from config)")
	rootCmd.Flags().Float64Var(&lsl, "lsl", 0, "lower specification limit")
	rootCmd.Flags().Float64Var(&usl, "usl", 0, "upper specification limit")

	rootCmd.Flags().StringVarP(&outPath, "out", "o", "spc_report.pdf", "output PDF path")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	opts := spc.Options{
		SubgroupSize: cfg.Analysis.SubgroupSize,
		LSL:          cfg.Analysis.LSL,
		USL:          cfg.Analysis.USL,
	}
	if cmd.Flags().Changed("subgroup-size") {
		opts.SubgroupSize = subgroupSize
	}
	if cmd.Flags().Changed("lsl") {
		opts.LSL = lsl
	}
	if cmd.Flags().Changed("usl") {
		opts.USL = usl
	}

	parsed, source, err := loadMeasurements(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	for _, warn := range parsed.ParseErrors {
		logger.Warn("measurement skipped", zap.String("reason", warn))
	}
	logger.Info("measurements loaded",
		zap.String("source", source),
		zap.Int("records", len(parsed.Records)),
		zap.Int("measurements", len(parsed.Measurements)))

	res, err := spc.Analyze(parsed.Measurements, opts)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	logger.Info("analysis complete",
		zap.String("run_id", res.RunID),
		zap.Int("subgroups", len(res.Subgroups)),
		zap.Float64("cp", res.Capability.Cp),
		zap.Float64("cpk", res.Capability.Cpk))

	charts := map[string][]byte{}
	for key, create := range map[string]func(*spc.Result) ([]byte, error){
		"xbar":      report.CreateXBarChart,
		"range":     report.CreateRangeChart,
		"histogram": report.CreateHistogramChart,
	} {
		img, err := create(res)
		if err != nil {
			logger.Warn("chart generation failed", zap.String("chart", key), zap.Error(err))
			continue
		}
		charts[key] = img
	}

	meta := report.Meta{
		Source:      source,
		From:        fromDate,
		To:          toDate,
		Shift:       shift,
		Material:    material,
		Operation:   operation,
		Gauge:       gauge,
		GeneratedAt: time.Now(),
	}
	if err := report.BuildPDFReport(outPath, res, meta, charts); err != nil {
		return fmt.Errorf("PDF generation failed: %w", err)
	}
	logger.Info("report written", zap.String("path", outPath))
	return nil
}

func loadMeasurements(ctx context.Context, cfg *config.Config) (*inspection.ParsedData, string, error) {
	if csvPath != "" {
		parsed, err := inspection.ParseCSV(csvPath)
		if err != nil {
			return nil, "", err
		}
		return parsed, csvPath, nil
	}

	filter := inspection.Filter{
		Shift:     shift,
		Material:  material,
		Operation: operation,
		Gauge:     gauge,
	}
	if fromDate != "" {
		t, err := time.Parse("2006-01-02", fromDate)
		if err != nil {
			return nil, "", fmt.Errorf("invalid --from date %q: %w", fromDate, err)
		}
		filter.From = t
	}
	if toDate != "" {
		t, err := time.Parse("2006-01-02", toDate)
		if err != nil {
			return nil, "", fmt.Errorf("invalid --to date %q: %w", toDate, err)
		}
		filter.To = t
	}

	client := inspection.NewClient(cfg.Service.BaseURL, cfg.ServiceTimeout())
	records, err := client.FetchRecords(ctx, filter)
	if err != nil {
		return nil, "", err
	}
	return inspection.ExtractMeasurements(records), cfg.Service.BaseURL, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
