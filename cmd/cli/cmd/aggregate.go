// Package cmd - aggregate command
package cmd

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tender-markup/adapters/tender"
	"tender-markup/core/aggregate"
	"tender-markup/core/output"
	"tender-markup/internal/config"
	"tender-markup/internal/logging"
)

var (
	aggFormat  string
	aggWorkers int
)

// aggregateCmd represents the aggregate command
var aggregateCmd = &cobra.Command{
	Use:   "aggregate [tender file]",
	Short: "Aggregate markup contributions across a whole tender",
	Long: `Evaluate every line item of a tender file and fold the per-step
markup contributions into per-parameter and per-category roll-ups.

Examples:
  tender-markup aggregate tender.hcl
  tender-markup aggregate --workers 8 --format json tender.hcl`,
	Args: cobra.ExactArgs(1),
	RunE: runAggregate,
}

func init() {
	aggregateCmd.Flags().StringVarP(&aggFormat, "format", "f", "", "output format (cli, json)")
	aggregateCmd.Flags().IntVarP(&aggWorkers, "workers", "w", 0, "parallel workers (0 uses config)")
}

func runAggregate(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, err := tender.Load(args[0])
	if err != nil {
		return err
	}

	appCfg := config.Get()
	workers := appCfg.Engine.Workers
	if aggWorkers > 0 {
		workers = aggWorkers
	}

	agg := aggregate.NewAggregator(cfg.Tactic, cfg.Parameters, cfg.Exclusions,
		aggregate.WithWorkers(workers),
		aggregate.WithFilterCacheSize(appCfg.Engine.FilterCacheSize))

	result := agg.Aggregate(context.Background(), cfg.Items)

	logging.Info("tender aggregated",
		zap.Int("items", result.ItemCount),
		zap.Duration("duration", time.Since(start)))

	formatter := output.New(outputFormat(aggFormat, appCfg), appCfg.Output.Precision)
	return formatter.RenderAggregation(os.Stdout, result)
}
