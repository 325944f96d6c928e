package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// notifyCmd attempts every due notification once.
var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Deliver due notifications",
	Long:  `Attempts every pending notification whose retry delay has elapsed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		rt, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		report, err := rt.dispatcher.ProcessDue(ctx, time.Now())
		if err != nil {
			return err
		}

		rt.logger.Info("Notification report",
			zap.Int("delivered", report.Delivered),
			zap.Int("retried", report.Retried),
			zap.Int("abandoned", report.Abandoned),
			zap.Int("rejected", report.Rejected))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(notifyCmd)
}
