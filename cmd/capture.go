package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var captureCount int

// captureCmd preloads recent draws into the persisted tiers.
var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Fetch and store the most recent draws",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		rt, err := newRuntime(ctx)
		if err != nil {
			return err
		}
		defer rt.close()
		if err := rt.migrate(); err != nil {
			return err
		}

		count := captureCount
		if count <= 0 {
			count = rt.cfg.Reconcile.CaptureCount
		}
		summary, err := rt.draws.Service().Capture(ctx, count)
		if err != nil {
			return err
		}

		fmt.Println("\n=== Capture ===")
		fmt.Printf("Draws: %d..%d\n", summary.From, summary.Latest)
		fmt.Printf("Stored: %d\n", len(summary.Resolved))
		fmt.Printf("Pending: %v\n", summary.Pending)
		fmt.Printf("Failed: %v\n", summary.Failed)
		return nil
	},
}

func init() {
	captureCmd.Flags().IntVar(&captureCount, "count", 0, "Number of recent draws (default reconcile.capture_count)")
	RootCmd.AddCommand(captureCmd)
}
