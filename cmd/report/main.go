// Command report generates a segment performance report from a transaction
// batch and writes CSV and XLSX artifacts.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"salespulse/internal/analytics"
	"salespulse/internal/config"
	"salespulse/internal/exporter"
	"salespulse/internal/generator"
	"salespulse/internal/infrastructure"
	"salespulse/internal/report"
	"salespulse/internal/store"
)

func main() {
	dimension := flag.String("dimension", "", "grouping dimension: product | region | channel | customer_type (defaults from config)")
	granularity := flag.String("granularity", "weekly", "comparison granularity: weekly | monthly")
	metric := flag.String("metric", "", "metric to compare: revenue | cost | profit (defaults from config)")
	input := flag.String("input", "", "transaction CSV file (defaults to a generated mock batch)")
	outDir := flag.String("out", "", "output directory for report artifacts (defaults from config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}

	if *dimension == "" {
		*dimension = cfg.Report.Dimension
	}
	if *metric == "" {
		*metric = cfg.Report.Metric
	}
	if *input == "" {
		*input = cfg.Report.InputFile
	}
	if *outDir == "" {
		*outDir = cfg.Report.OutputDir
	}

	if err := run(logger, cfg, *dimension, *granularity, *metric, *input, *outDir); err != nil {
		logger.Error("report generation failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, cfg *config.Config, dimension, granularity, metric, input, outDir string) error {
	ctx := context.Background()

	dim, err := analytics.ParseDimension(dimension)
	if err != nil {
		return err
	}
	g, err := analytics.ParseGranularity(granularity)
	if err != nil {
		return err
	}
	m, err := analytics.ParseMetric(metric)
	if err != nil {
		return err
	}

	var st *store.Store
	if input != "" {
		st, err = store.LoadCSV(input)
		if err != nil {
			return err
		}
		logger.Info("loaded transaction batch",
			slog.String("input", input),
			slog.Int("record_count", st.Len()))
	} else {
		gcfg := generator.DefaultConfig(time.Now())
		gcfg.Seed = cfg.Report.MockSeed
		gcfg.Days = cfg.Report.MockDays
		st = store.New(generator.Generate(gcfg))
		logger.Info("generated mock transaction batch",
			slog.Int64("seed", gcfg.Seed),
			slog.Int("record_count", st.Len()))
	}

	engine := analytics.NewEngine(logger)
	result, err := engine.Compare(ctx, st.All(), dim, g, m)
	if err != nil {
		return err
	}
	insight, err := analytics.Rank(result.Rows)
	if err != nil {
		return err
	}

	logger.Info("period comparison complete",
		slog.String("dimension", string(dim)),
		slog.String("granularity", string(g)),
		slog.String("current_bucket", result.CurrentBucket),
		slog.String("previous_bucket", result.PreviousBucket),
		slog.String("best_segment", insight.Best.Segment),
		slog.Float64("best_change_percent", insight.Best.ChangePercent),
		slog.String("worst_segment", insight.Worst.Segment),
		slog.Float64("worst_change_percent", insight.Worst.ChangePercent))

	svc := report.NewService(logger, st, engine)
	overview := svc.Overview(ctx)
	fmt.Printf("Total Revenue: %s  Total Profit: %s  Margin: %.2f%%\n",
		exporter.FormatMoney(overview.TotalRevenue),
		exporter.FormatMoney(overview.TotalProfit),
		overview.ProfitMargin)
	fmt.Printf("Comparing %s %s vs %s\n", g, result.CurrentBucket, result.PreviousBucket)
	fmt.Printf("Best performing %s: %s (%+.1f%%)\n", dim, insight.Best.Segment, insight.Best.ChangePercent)
	fmt.Printf("Needs attention: %s (%+.1f%%)\n", insight.Worst.Segment, insight.Worst.ChangePercent)

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	table := exporter.ComparisonTable(result)
	stamp := time.Now().Format("20060102_150405")
	for _, format := range []exporter.Format{exporter.FormatCSV, exporter.FormatXLSX} {
		data, err := exporter.Serialize(table, format)
		if err != nil {
			// Recoverable per format: keep going so the caller still
			// gets the alternate artifact.
			logger.Error("export failed",
				slog.String("format", string(format)),
				slog.String("error", err.Error()))
			continue
		}
		path := filepath.Join(outDir, fmt.Sprintf("%s_performance_%s.%s", dim, stamp, format))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s artifact: %w", format, err)
		}
		logger.Info("wrote report artifact",
			slog.String("path", path),
			slog.Int("bytes", len(data)))
	}

	return nil
}
