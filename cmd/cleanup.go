package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cleanupCmd removes performances that already began.
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete performances whose begin lies in the past",
	Long:  `Runs the cleanup sweep once, using the current time as the threshold.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		rt, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		report, err := rt.performances.Cleanup(ctx, time.Now())
		if err != nil {
			return err
		}

		rt.logger.Info("Cleanup report",
			zap.Int64("deleted", report.Deleted),
			zap.Int("archives_removed", report.ArchivesRemoved))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(cleanupCmd)
}
