package cmd

import (
	"context"
	"time"

	"theaterwecker/core/reconcile"
	"theaterwecker/feature/performance"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var dryRunScrape bool

// scrapeCmd runs one reconciliation pass.
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Run one reconciliation pass against the published schedule",
	Long: `Fetch the current and the next month of the schedule, then create newly
ticketed performances and delete the ones whose ticket link disappeared.

Examples:
  # Apply changes
  theaterwecker scrape

  # Report what would change
  theaterwecker scrape --dry-run`,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().BoolVar(&dryRunScrape, "dry-run", false, "Plan only, no mutations")
	RootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer rt.logger.Sync()

	report, err := rt.performances.RunPass(ctx, time.Now(), reconcile.ReconcileOptions{DryRun: dryRunScrape})
	if err != nil {
		return err
	}

	printPassReport(rt.logger, report)
	if report.DryRun {
		rt.logger.Info("Dry-run mode: No changes were made.")
	}
	return nil
}

// printPassReport prints a formatted pass report using logger.
func printPassReport(l *zap.Logger, report *performance.PassReport) {
	for _, w := range report.Windows {
		fields := []zap.Field{
			zap.String("window", w.Window),
			zap.Int("candidates", w.Candidates),
		}
		if w.Error != "" {
			fields = append(fields, zap.String("error", w.Error))
		}
		if w.Anomaly {
			fields = append(fields, zap.Bool("anomaly", true))
		}
		l.Info("Window", fields...)
	}

	s := report.Plan.Summary
	l.Info("Reconciliation report",
		zap.Int("total_items", s.TotalItems),
		zap.Int("ticketed", s.Ticketed),
		zap.Int("unticketed", s.Unticketed),
		zap.Int("planned_creates", s.Creates),
		zap.Int("planned_deletes", s.Deletes),
		zap.Int("unchanged", s.Unchanged),
		zap.Int("dropped", report.Dropped),
		zap.Int("created", report.Created),
		zap.Int("deleted", report.Deleted),
		zap.Int("skipped", report.Skipped),
	)

	for _, a := range report.Plan.Actions {
		l.Debug("Planned action",
			zap.String("type", string(a.Type)),
			zap.String("key", a.Key),
			zap.String("reason", a.Reason))
	}
}
